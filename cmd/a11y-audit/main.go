package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/anditpl/a11y-audit/internal/adapters/inbound/cli"
)

func main() {
	// Load .env if it exists; explicit environment always wins.
	_ = godotenv.Load()

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
