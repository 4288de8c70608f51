package plan

import "fmt"

// SynthesizeConversions produces the conversion table: one entry per
// make_from variant, in declaration order. Two variants converting
// from the identical source type make the target variant ambiguous
// and fail the pass before anything is emitted.
func SynthesizeConversions(policies []ResolvedPolicy) ([]Conversion, error) {
	var conversions []Conversion

	bySource := make(map[string]string)

	for _, p := range policies {
		if !p.MakeFrom {
			continue
		}

		field, ok := p.Variant.SoleField()
		if !ok {
			return nil, fmt.Errorf("%w: conversion variant %s has %d fields",
				ErrIncompleteCoverage, p.Variant.Name, len(p.Variant.Fields))
		}

		source := field.Type.String()
		if prev, exists := bySource[source]; exists {
			return nil, fmt.Errorf("%w: variants %s and %s both convert from %s",
				ErrConflictingConversion, prev, p.Variant.Name, source)
		}
		bySource[source] = p.Variant.Name

		conversions = append(conversions, Conversion{
			Variant: p.Variant.Name,
			Source:  field.Type,
		})
	}

	return conversions, nil
}
