package plan

import (
	"errenum-generator/internal/common"
	"errenum-generator/internal/diagnostic"
	"errenum-generator/internal/enumspec"
)

// Plan is the final output of the resolution pipeline for one
// declaration file: one EnumPlan per declared enum plus the
// diagnostics accumulated along the way.
type Plan struct {
	// Enums holds the resolved plans in declaration order.
	Enums []EnumPlan
	// Diagnostics contains warnings and infos from resolution.
	// Errors abort the pass and are returned as Go errors instead.
	Diagnostics diagnostic.Diagnostics
}

// EnumPlan is everything code generation needs for one enum: the
// resolved per-variant policies and the three behavior tables derived
// from them.
type EnumPlan struct {
	// Name of the enum type.
	Name string
	// Policies is the resolved policy list, one per variant, in
	// declaration order.
	Policies []ResolvedPolicy
	// Display holds one branch per variant for the formatting body.
	Display []DisplayBranch
	// Causes holds one branch per variant for the cause accessor body.
	Causes []CauseBranch
	// Conversions holds one entry per generated conversion.
	Conversions []Conversion
}

// HasCause reports whether any variant is cause-bearing.
func (p *EnumPlan) HasCause() bool {
	for _, c := range p.Causes {
		if c.IsCause {
			return true
		}
	}

	return false
}

// ResolvedPolicy is the fully resolved decision record for one
// variant. It is immutable once built; the synthesizers only read it.
type ResolvedPolicy struct {
	// Variant is the validated variant record this policy applies to.
	Variant enumspec.VariantInfo
	// Display describes what text the variant formats to.
	Display DisplaySpec
	// IsCause marks the variant as wrapping an underlying error,
	// exposed through the cause accessor.
	IsCause bool
	// MakeFrom marks the variant as the target of a generated
	// conversion from its sole field type.
	MakeFrom bool
}

// DisplayKind distinguishes literal display text from the default
// field-interpolating template.
type DisplayKind int

const (
	// DisplayLiteral renders fixed text with no interpolation.
	DisplayLiteral DisplayKind = iota
	// DisplayTemplate renders the variant name with its fields
	// interpolated positionally.
	DisplayTemplate
)

// String returns a human-readable kind name.
func (k DisplayKind) String() string {
	switch k {
	case DisplayLiteral:
		return "literal"
	case DisplayTemplate:
		return "template"
	default:
		return common.UnknownStr
	}
}

// DisplaySpec is the resolved display rule for one variant.
type DisplaySpec struct {
	// Kind selects literal or template rendering.
	Kind DisplayKind
	// Text is the literal text, or the variant-name prefix for
	// templates.
	Text string
}

// DisplayBranch is one row of the display decision table.
type DisplayBranch struct {
	// Variant name this branch matches on.
	Variant string
	// Format is the fmt-style format string for the branch. It
	// contains one %v verb per entry of FieldArgs; a branch without
	// field args is plain text.
	Format string
	// FieldArgs lists the field indexes interpolated into Format, in
	// order. Empty for literal branches and field-less variants.
	FieldArgs []int
}

// CauseBranch is one row of the cause decision table.
type CauseBranch struct {
	// Variant name this branch matches on.
	Variant string
	// IsCause marks whether the branch returns an underlying error.
	IsCause bool
	// FieldArg is the index of the wrapped field when IsCause is set.
	FieldArg int
}

// Conversion is one generated conversion entry point.
type Conversion struct {
	// Variant is the target variant wrapping the converted value.
	Variant string
	// Source is the field type converted from.
	Source enumspec.TypeRef
}
