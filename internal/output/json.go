package output

import (
	"github.com/goccy/go-json"

	"github.com/finplan/household-planner/internal/calculation"
)

// JSONFormatter emits the full run result, snapshots and summary, as
// indented JSON.
type JSONFormatter struct{}

func (JSONFormatter) Name() string { return "json" }

// Format renders the projection as JSON.
func (JSONFormatter) Format(result *calculation.RunResult) ([]byte, error) {
	return json.MarshalIndent(result, "", "  ")
}
