package plan

import (
	"fmt"
	"slices"

	"errenum-generator/internal/diagnostic"
	"errenum-generator/internal/enumspec"
)

// ResolutionConfig holds configuration for the resolution process.
type ResolutionConfig struct {
	// CauseTypeNames lists type names recognized as error-like when
	// inferring cause treatment. Matching is against the final path
	// segment of the field type unless MatchQualified is set.
	CauseTypeNames []string
	// MatchQualified matches CauseTypeNames against the fully
	// qualified reference (import path + name) instead of the bare
	// type name.
	MatchQualified bool
}

// DefaultConfig returns the default resolution configuration: only a
// field whose type is named exactly "Error" is inferred as a cause.
func DefaultConfig() ResolutionConfig {
	return ResolutionConfig{
		CauseTypeNames: []string{"Error"},
		MatchQualified: false,
	}
}

// Resolver performs the resolution pipeline.
type Resolver struct {
	config ResolutionConfig
}

// NewResolver creates a new Resolver.
func NewResolver(config ResolutionConfig) *Resolver {
	if len(config.CauseTypeNames) == 0 {
		config.CauseTypeNames = DefaultConfig().CauseTypeNames
	}

	return &Resolver{config: config}
}

// BuildAll runs the full pipeline for every declaration and returns
// the combined plan. The first failure aborts the pass; no partial
// plan is returned.
func (r *Resolver) BuildAll(decls []enumspec.TypeDeclaration) (*Plan, error) {
	p := &Plan{}

	for _, decl := range decls {
		ep, err := r.Build(decl, &p.Diagnostics)
		if err != nil {
			return nil, err
		}

		p.Enums = append(p.Enums, *ep)
	}

	return p, nil
}

// Build runs extraction, policy resolution, and the three behavior
// synthesizers for one declaration. Non-fatal observations are
// appended to diags; any failure aborts with no partial plan.
func (r *Resolver) Build(decl enumspec.TypeDeclaration, diags *diagnostic.Diagnostics) (*EnumPlan, error) {
	infos, err := enumspec.Extract(decl)
	if err != nil {
		return nil, err
	}

	policies := make([]ResolvedPolicy, 0, len(infos))
	for _, info := range infos {
		policy, err := r.resolvePolicy(decl.Name, info, diags)
		if err != nil {
			return nil, err
		}

		policies = append(policies, policy)
	}

	display, err := SynthesizeDisplay(policies)
	if err != nil {
		return nil, fmt.Errorf("enum %s: %w", decl.Name, err)
	}

	causes, err := SynthesizeCauses(policies)
	if err != nil {
		return nil, fmt.Errorf("enum %s: %w", decl.Name, err)
	}

	conversions, err := SynthesizeConversions(policies)
	if err != nil {
		return nil, fmt.Errorf("enum %s: %w", decl.Name, err)
	}

	return &EnumPlan{
		Name:        decl.Name,
		Policies:    policies,
		Display:     display,
		Causes:      causes,
		Conversions: conversions,
	}, nil
}

// resolvePolicy applies the default-inference rules for one variant,
// overridden by its explicit annotations.
func (r *Resolver) resolvePolicy(
	enum string,
	info enumspec.VariantInfo,
	diags *diagnostic.Diagnostics,
) (ResolvedPolicy, error) {
	policy := ResolvedPolicy{Variant: info}

	inferred := r.inferIsCause(info)

	// is_cause: explicit err annotation wins over inference.
	if info.Overrides.Err != nil {
		policy.IsCause = *info.Overrides.Err

		if policy.IsCause && len(info.Fields) != 1 {
			return ResolvedPolicy{}, fmt.Errorf(
				"%w: enum %s: variant %s: err=true requires exactly 1 field, found %d",
				enumspec.ErrMalformedInput, enum, info.Name, len(info.Fields))
		}

		if policy.IsCause == inferred {
			diags.AddInfo("redundant_annotation",
				"err annotation matches the inferred default", enum, info.Name)
		} else if !policy.IsCause && inferred {
			diags.AddWarning("inference_suppressed",
				"err=false suppresses cause treatment of an error-like field", enum, info.Name)
		}
	} else {
		policy.IsCause = inferred
	}

	// make_from: explicit annotation wins; forcing it on a variant
	// without exactly one field is a hard constraint violation.
	if info.Overrides.MakeFrom != nil {
		policy.MakeFrom = *info.Overrides.MakeFrom

		if policy.MakeFrom && len(info.Fields) != 1 {
			return ResolvedPolicy{}, fmt.Errorf(
				"%w: enum %s: variant %s: make_from=true requires exactly 1 field, found %d",
				enumspec.ErrMalformedInput, enum, info.Name, len(info.Fields))
		}
	} else {
		_, single := info.SoleField()
		policy.MakeFrom = single && policy.IsCause
	}

	// display: format_str literal wins; otherwise the default
	// field-interpolating template.
	if info.Overrides.FormatStr != nil {
		policy.Display = DisplaySpec{Kind: DisplayLiteral, Text: *info.Overrides.FormatStr}

		if len(info.Fields) > 0 {
			diags.AddInfo("interpolation_disabled",
				"format_str is rendered verbatim; fields are not interpolated", enum, info.Name)
		}
	} else {
		policy.Display = DisplaySpec{Kind: DisplayTemplate, Text: info.Name}
	}

	return policy, nil
}

// inferIsCause applies the error-like heuristic: exactly one field
// whose type name matches a recognized cause type name.
func (r *Resolver) inferIsCause(info enumspec.VariantInfo) bool {
	field, ok := info.SoleField()
	if !ok {
		return false
	}

	name := field.Type.Name
	if r.config.MatchQualified {
		name = field.Type.String()
	}

	return slices.Contains(r.config.CauseTypeNames, name)
}
