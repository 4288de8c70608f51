package plan

import "fmt"

// SynthesizeCauses produces the cause decision table: exactly one
// branch per variant, in declaration order. Cause-bearing variants
// reference their sole field; all others resolve to no cause.
func SynthesizeCauses(policies []ResolvedPolicy) ([]CauseBranch, error) {
	branches := make([]CauseBranch, 0, len(policies))

	for _, p := range policies {
		branch := CauseBranch{Variant: p.Variant.Name}

		if p.IsCause {
			field, ok := p.Variant.SoleField()
			if !ok {
				// Resolution guarantees cause variants have exactly
				// one field; anything else is an internal defect.
				return nil, fmt.Errorf("%w: cause variant %s has %d fields",
					ErrIncompleteCoverage, p.Variant.Name, len(p.Variant.Fields))
			}

			branch.IsCause = true
			branch.FieldArg = field.Index
		}

		branches = append(branches, branch)
	}

	if len(branches) != len(policies) {
		return nil, fmt.Errorf("%w: %d cause branches for %d variants",
			ErrIncompleteCoverage, len(branches), len(policies))
	}

	return branches, nil
}
