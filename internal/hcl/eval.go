package hcl

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
)

// evalContext returns the evaluation context shared by every program file.
// Time-unit constants are expressed in nanoseconds; `infinite` is the loop
// count sentinel.
func evalContext() *hcl.EvalContext {
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"ns":       cty.NumberIntVal(1),
			"us":       cty.NumberIntVal(1_000),
			"ms":       cty.NumberIntVal(1_000_000),
			"s":        cty.NumberIntVal(1_000_000_000),
			"infinite": cty.NumberIntVal(-1),
		},
	}
}
