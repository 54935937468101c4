package scenario

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueyaml "cuelang.org/go/encoding/yaml"
)

// schemaSource is the structural contract every scenario file must satisfy.
// The definition is closed, so unknown fields are rejected at this layer as
// well as by the strict YAML decoder.
const schemaSource = `
#Scenario: {
	name:            string & !=""
	description:     string & !=""
	initial_users:   int & >=0
	synthetic_ratio: number & >=0

	// Explicit per-hour arrival schedule.
	deposits?: [...int & >=0]

	// Seeded uniform schedule.
	hours?:        int & >0
	seed?:         int
	deposits_min?: int & >=0
	deposits_max?: int & >=0

	expect?: {
		final_anonymity_set?:   int & >=0
		final_synthetic?:       int & >=0
		final_hour?:            int & >=0
		max_linkability_below?: number & >0 & <=1
	}
}
`

// validateSchema checks raw scenario YAML against the embedded CUE schema.
// The filename is only used in error positions.
func validateSchema(filename string, data []byte) error {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaSource)
	if err := schema.Err(); err != nil {
		return fmt.Errorf("internal scenario schema is broken: %w", err)
	}
	def := schema.LookupPath(cue.ParsePath("#Scenario"))

	file, err := cueyaml.Extract(filename, data)
	if err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}
	doc := ctx.BuildFile(file)
	if err := doc.Err(); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}

	unified := def.Unify(doc)
	if err := unified.Validate(cue.Concrete(true), cue.Final()); err != nil {
		return fmt.Errorf("schema validation: %w", err)
	}
	return nil
}
