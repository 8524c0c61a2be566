package harness

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/consulta/internal/querysql"
)

// Render formats a scenario result for golden comparison:
//
//	scenario: <name>
//
//	[1] usuarios
//	SELECT ...
//	-- params: [...]
//	rows: 2
//	{"id":3,"login":"carla"}
//	...
//
// Rows are JSON objects with sorted keys.
func Render(name string, result *Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "scenario: %s\n", name)

	for i, step := range result.Steps {
		fmt.Fprintf(&b, "\n[%d] %s\n", i+1, step.Entity)
		if step.SQL != "" {
			b.WriteString(querysql.Explain(step.SQL, step.Params))
		}
		if step.Error != "" {
			fmt.Fprintf(&b, "error: %s\n", step.Error)
			continue
		}
		fmt.Fprintf(&b, "rows: %d\n", len(step.Rows))
		for _, row := range step.Rows {
			data, err := json.Marshal(row)
			if err != nil {
				fmt.Fprintf(&b, "<unrenderable row: %v>\n", err)
				continue
			}
			b.Write(data)
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// RunWithGolden executes a scenario, fails the test on unmet expectations
// and compares the rendered result against
// testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, scenario *Scenario) error {
	t.Helper()

	result, err := Run(context.Background(), scenario)
	if err != nil {
		return err
	}
	for _, msg := range result.Errors {
		t.Error(msg)
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenario.Name, []byte(Render(scenario.Name, result)))

	return nil
}
