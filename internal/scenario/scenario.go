package scenario

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario defines a declarative simulation run.
//
// Exactly one arrival schedule must be configured: either Deposits (the run
// length is the list length) or Hours with a seeded uniform range.
type Scenario struct {
	// Name uniquely identifies this scenario. It doubles as the golden
	// file name, so keep it filesystem-safe.
	Name string `yaml:"name"`

	// Description explains what this scenario demonstrates.
	Description string `yaml:"description"`

	// InitialUsers is the anonymity-set size before the first hour.
	InitialUsers int `yaml:"initial_users"`

	// SyntheticRatio is the decoy-to-deposit ratio applied each hour.
	SyntheticRatio float64 `yaml:"synthetic_ratio"`

	// Deposits is an explicit per-hour arrival schedule.
	Deposits []int `yaml:"deposits,omitempty"`

	// Hours is the run length when drawing arrivals from a seeded range.
	Hours int `yaml:"hours,omitempty"`

	// Seed drives both arrival draws and deposit identifier generation.
	Seed int64 `yaml:"seed,omitempty"`

	// DepositsMin and DepositsMax bound the uniform arrival range.
	// Both zero means the default range [1, 5].
	DepositsMin int `yaml:"deposits_min,omitempty"`
	DepositsMax int `yaml:"deposits_max,omitempty"`

	// Expect holds optional assertions evaluated after the run.
	Expect *ExpectClause `yaml:"expect,omitempty"`
}

// ExpectClause specifies expected end-of-run behavior.
// Nil fields are not checked.
type ExpectClause struct {
	// FinalAnonymitySet is the expected anonymity-set size after the run.
	FinalAnonymitySet *int `yaml:"final_anonymity_set,omitempty"`

	// FinalSynthetic is the expected cumulative decoy count.
	FinalSynthetic *int `yaml:"final_synthetic,omitempty"`

	// FinalHour is the expected clock value after the run.
	FinalHour *int64 `yaml:"final_hour,omitempty"`

	// MaxLinkabilityBelow requires every sample's bound to stay strictly
	// below this threshold.
	MaxLinkabilityBelow *float64 `yaml:"max_linkability_below,omitempty"`
}

// RandomSchedule reports whether arrivals come from the seeded uniform
// range rather than an explicit deposit list.
func (s *Scenario) RandomSchedule() bool {
	return len(s.Deposits) == 0
}

// RunHours returns the number of hours this scenario simulates.
func (s *Scenario) RunHours() int {
	if s.RandomSchedule() {
		return s.Hours
	}
	return len(s.Deposits)
}

// ArrivalRange returns the uniform arrival bounds, applying the default
// range [1, 5] when neither bound is set.
func (s *Scenario) ArrivalRange() (min, max int) {
	if s.DepositsMin == 0 && s.DepositsMax == 0 {
		return 1, 5
	}
	return s.DepositsMin, s.DepositsMax
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, fails the CUE schema, contains
// unknown fields (typos), or mixes the two schedule modes.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Structural validation first: types, ranges, unknown fields.
	if err := validateSchema(path, data); err != nil {
		return nil, fmt.Errorf("invalid scenario %s: %w", path, err)
	}

	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario %s: %w", path, err)
	}

	return &scenario, nil
}

// validateScenario checks cross-field constraints the schema cannot express.
func validateScenario(s *Scenario) error {
	if len(s.Deposits) > 0 && s.Hours > 0 {
		return fmt.Errorf("deposits and hours are mutually exclusive: the deposit list fixes the run length")
	}

	if s.RandomSchedule() {
		if s.Hours <= 0 {
			return fmt.Errorf("a schedule is required: set deposits or hours")
		}
		min, max := s.ArrivalRange()
		if min > max {
			return fmt.Errorf("deposits_min (%d) must not exceed deposits_max (%d)", min, max)
		}
	} else {
		if s.DepositsMin != 0 || s.DepositsMax != 0 {
			return fmt.Errorf("deposits_min/deposits_max only apply to seeded schedules")
		}
	}

	return nil
}
