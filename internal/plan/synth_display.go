package plan

import (
	"fmt"
	"strings"
)

// fieldDelimiter separates interpolated fields in default templates
// for variants with more than one field.
const fieldDelimiter = ", "

// SynthesizeDisplay produces the display decision table: exactly one
// branch per variant, in declaration order. Literal branches carry
// the format_str text verbatim; template branches carry the variant
// name followed by one %v verb per field.
func SynthesizeDisplay(policies []ResolvedPolicy) ([]DisplayBranch, error) {
	branches := make([]DisplayBranch, 0, len(policies))

	for _, p := range policies {
		branch := DisplayBranch{Variant: p.Variant.Name}

		switch p.Display.Kind {
		case DisplayLiteral:
			branch.Format = p.Display.Text

		case DisplayTemplate:
			branch.Format = p.Display.Text

			if len(p.Variant.Fields) > 0 {
				verbs := make([]string, len(p.Variant.Fields))
				for i, f := range p.Variant.Fields {
					verbs[i] = "%v"
					branch.FieldArgs = append(branch.FieldArgs, f.Index)
				}

				branch.Format += ": " + strings.Join(verbs, fieldDelimiter)
			}

		default:
			return nil, fmt.Errorf("%w: variant %s has unresolved display kind",
				ErrIncompleteCoverage, p.Variant.Name)
		}

		branches = append(branches, branch)
	}

	if len(branches) != len(policies) {
		return nil, fmt.Errorf("%w: %d display branches for %d variants",
			ErrIncompleteCoverage, len(branches), len(policies))
	}

	return branches, nil
}
