package harness

import (
	"bytes"
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/roach88/consulta/internal/entity"
	"github.com/roach88/consulta/internal/query"
)

// Entities lists the entity names a step may query.
var Entities = []string{"usuarios", "perfis"}

// Scenario defines a query conformance scenario.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario checks.
	Description string `yaml:"description"`

	// Seed is the initial data. When nil the default usuarios and perfis
	// are inserted.
	Seed *Seed `yaml:"seed,omitempty"`

	// Steps are executed in order against the same store.
	Steps []Step `yaml:"steps"`
}

// Seed holds the rows inserted before the steps run.
type Seed struct {
	Usuarios []entity.NovoUsuario `yaml:"usuarios,omitempty"`
	Perfis   []entity.NovoPerfil  `yaml:"perfis,omitempty"`
}

// Step is one filtered query.
type Step struct {
	Entity  string        `yaml:"entity"`
	Request query.Request `yaml:"request"`
	Expect  *Expect       `yaml:"expect,omitempty"`
}

// Expect describes the expected outcome of a step. Every set field is
// checked; unset fields are not.
type Expect struct {
	// Error is the expected query error code (e.g. UNKNOWN_OPERATOR).
	Error string `yaml:"error,omitempty"`

	// Count is the expected number of rows.
	Count *int `yaml:"count,omitempty"`

	// Column and Values check one column of every row, in order.
	Column string `yaml:"column,omitempty"`
	Values []any  `yaml:"values,omitempty"`
}

// LoadScenario reads and parses a scenario YAML file.
// Unknown fields are rejected so typos surface as errors.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	for i, step := range s.Steps {
		if !slices.Contains(Entities, step.Entity) {
			return fmt.Errorf("steps[%d]: unknown entity %q (want one of %v)", i, step.Entity, Entities)
		}
		if e := step.Expect; e != nil {
			if e.Error != "" && (e.Count != nil || e.Column != "") {
				return fmt.Errorf("steps[%d].expect: error cannot be combined with count or column", i)
			}
			if e.Column == "" && len(e.Values) > 0 {
				return fmt.Errorf("steps[%d].expect: values require column", i)
			}
			if e.Count != nil && *e.Count < 0 {
				return fmt.Errorf("steps[%d].expect: count must be non-negative", i)
			}
		}
	}

	return nil
}
