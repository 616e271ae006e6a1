package report

import (
	"encoding/json"
	"fmt"

	"github.com/anditpl/a11y-audit/internal/domain"
)

// JSONEncoder renders one target's raw violation data as indented JSON.
type JSONEncoder struct{}

// NewJSONEncoder creates a JSONEncoder.
func NewJSONEncoder() *JSONEncoder { return &JSONEncoder{} }

// jsonReport is the persisted document shape.
type jsonReport struct {
	Target         domain.AuditTarget `json:"target"`
	ViolationCount int                `json:"violation_count"`
	RuleCount      int                `json:"rule_count"`
	Violations     []domain.Violation `json:"violations"`
}

// Encode implements domain.ViolationEncoder.
func (e *JSONEncoder) Encode(target domain.AuditTarget, violations []domain.Violation) ([]byte, error) {
	doc := jsonReport{
		Target:         target,
		ViolationCount: len(violations),
		RuleCount:      domain.DistinctRules(violations),
		Violations:     violations,
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding violation report: %w", err)
	}
	return data, nil
}
