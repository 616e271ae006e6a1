package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/anditpl/a11y-audit/internal/adapters/outbound/config"
	"github.com/anditpl/a11y-audit/internal/adapters/outbound/targets"
	"github.com/anditpl/a11y-audit/internal/logging"
)

func newTargetsCmd() *cobra.Command {
	var (
		jsonOutput  bool
		pagesDir    string
		targetsFile string
	)

	cmd := &cobra.Command{
		Use:   "targets [target...]",
		Short: "Print the resolved audit target list without auditing",
		Long:  "Resolve targets exactly as the audit command would: explicit arguments are exclusive, otherwise the pages directory and the JSON targets file contribute in order.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.New().Load(".")
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("pages-dir") {
				cfg.PagesDir = pagesDir
			}
			if cmd.Flags().Changed("targets-file") {
				cfg.TargetsFile = targetsFile
			}

			resolver := targets.New(cfg.PagesDir, cfg.TargetsFile, logging.NewNop())
			resolved := resolver.Resolve(args)

			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(resolved)
			}

			if len(resolved) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No targets resolved.")
				return nil
			}
			for i, t := range resolved {
				fmt.Fprintf(cmd.OutOrStdout(), "%d. %s\n", i+1, t.URL)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the target list as JSON")
	cmd.Flags().StringVar(&pagesDir, "pages-dir", "pages", "Directory of local page files")
	cmd.Flags().StringVar(&targetsFile, "targets-file", "targets.json", "JSON file listing additional targets")

	return cmd
}
