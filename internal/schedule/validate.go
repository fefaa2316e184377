package schedule

import (
	"fmt"

	"github.com/hashicorp/cronexpr"
)

// ValidateExpression parses a full five-field cron expression with a
// second, independent parser. The per-field grammar is the source of
// truth for diagnostics; this is a coarse cross-check used by the dev
// CLI's strict mode and by tests.
func ValidateExpression(expr string) error {
	if _, err := cronexpr.Parse(expr); err != nil {
		return fmt.Errorf("invalid cron expression: %w", err)
	}
	return nil
}
