package enumspec

import (
	"errors"
	"fmt"
	"unicode"
	"unicode/utf8"
)

// ErrMalformedInput is the failure class for structurally invalid
// declarations: bad names, duplicate variants, unknown or duplicated
// annotation keys, and annotations forced on ineligible variants.
// All wrapped errors carry the enum and variant context.
var ErrMalformedInput = errors.New("malformed input")

// Extract normalizes a declaration into validated variant records.
// It is a pure function: the declaration is never mutated and repeated
// calls yield identical results.
func Extract(decl TypeDeclaration) ([]VariantInfo, error) {
	if !isIdent(decl.Name) {
		return nil, fmt.Errorf("%w: enum name %q is not a valid identifier", ErrMalformedInput, decl.Name)
	}

	if len(decl.Variants) == 0 {
		return nil, fmt.Errorf("%w: enum %s declares no variants", ErrMalformedInput, decl.Name)
	}

	seen := make(map[string]bool, len(decl.Variants))
	infos := make([]VariantInfo, 0, len(decl.Variants))

	for _, v := range decl.Variants {
		if !isIdent(v.Name) {
			return nil, fmt.Errorf("%w: enum %s: variant name %q is not a valid identifier",
				ErrMalformedInput, decl.Name, v.Name)
		}

		if seen[v.Name] {
			return nil, fmt.Errorf("%w: enum %s: duplicate variant %s", ErrMalformedInput, decl.Name, v.Name)
		}
		seen[v.Name] = true

		info := VariantInfo{Name: v.Name}

		for i, f := range v.Fields {
			if f.Type.Name == "" {
				return nil, fmt.Errorf("%w: enum %s: variant %s: field %d has no type",
					ErrMalformedInput, decl.Name, v.Name, i)
			}

			info.Fields = append(info.Fields, Field{Index: i, Type: f.Type})
		}

		overrides, err := parseAnnotations(v.Annotations)
		if err != nil {
			return nil, fmt.Errorf("%w: enum %s: variant %s: %v", ErrMalformedInput, decl.Name, v.Name, err)
		}
		info.Overrides = overrides

		infos = append(infos, info)
	}

	return infos, nil
}

// parseAnnotations folds the raw annotation list into Overrides,
// rejecting unknown keys, duplicates, and wrong value kinds.
func parseAnnotations(anns []Annotation) (Overrides, error) {
	var o Overrides

	for _, a := range anns {
		switch a.Key {
		case KeyFormatStr:
			if o.FormatStr != nil {
				return Overrides{}, fmt.Errorf("duplicate annotation %s", a.Key)
			}
			if a.Kind != AnnotationString {
				return Overrides{}, fmt.Errorf("annotation %s expects a string, got %s", a.Key, a.Kind)
			}
			s := a.Str
			o.FormatStr = &s

		case KeyMakeFrom:
			if o.MakeFrom != nil {
				return Overrides{}, fmt.Errorf("duplicate annotation %s", a.Key)
			}
			if a.Kind != AnnotationBool {
				return Overrides{}, fmt.Errorf("annotation %s expects a bool, got %s", a.Key, a.Kind)
			}
			b := a.Bool
			o.MakeFrom = &b

		case KeyErr:
			if o.Err != nil {
				return Overrides{}, fmt.Errorf("duplicate annotation %s", a.Key)
			}
			if a.Kind != AnnotationBool {
				return Overrides{}, fmt.Errorf("annotation %s expects a bool, got %s", a.Key, a.Kind)
			}
			b := a.Bool
			o.Err = &b

		default:
			return Overrides{}, fmt.Errorf("unknown annotation %q", a.Key)
		}
	}

	return o, nil
}

// isIdent reports whether s is a valid exported-or-not Go identifier.
func isIdent(s string) bool {
	if s == "" {
		return false
	}

	for i, r := range s {
		if unicode.IsLetter(r) || r == '_' {
			continue
		}
		if i > 0 && unicode.IsDigit(r) {
			continue
		}

		return false
	}

	return utf8.ValidString(s)
}
