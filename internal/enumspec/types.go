package enumspec

import (
	"strings"

	"errenum-generator/internal/common"
)

// TypeDeclaration is the input sum type: a name and an ordered
// sequence of variants. Declarations are immutable once built; the
// pipeline never mutates them.
type TypeDeclaration struct {
	// Name of the enum type, e.g. "DocumentError".
	Name string
	// Variants in declaration order.
	Variants []Variant
}

// Variant is one named alternative of the enum.
type Variant struct {
	// Name of the variant, unique within the enum.
	Name string
	// Fields in declaration order. Fields are unnamed; only the
	// position and the type reference are known.
	Fields []Field
	// Annotations as written, in order, duplicates preserved so
	// extraction can reject them.
	Annotations []Annotation
}

// Field is a positional, unnamed field of a variant.
type Field struct {
	// Index is the zero-based position within the variant.
	Index int
	// Type is the opaque reference to the field type.
	Type TypeRef
}

// TypeRef is an opaque type reference: an optional import path plus a
// type name, or a bare builtin name. It is never resolved during the
// core pass; only its textual shape is inspected.
type TypeRef struct {
	// ImportPath is the package import path, empty for builtins.
	ImportPath string
	// Name is the bare type name, e.g. "PathError" or "string".
	Name string
}

// ParseTypeRef splits a declaration-file reference into import path
// and type name. The name is everything after the last dot, so
// "net/http.ProtocolError" imports "net/http" and names
// "ProtocolError"; a dotless reference is a builtin.
func ParseTypeRef(ref string) TypeRef {
	i := strings.LastIndex(ref, ".")
	if i < 0 {
		return TypeRef{Name: ref}
	}

	return TypeRef{ImportPath: ref[:i], Name: ref[i+1:]}
}

// String renders the reference the way it appears in a declaration
// file.
func (r TypeRef) String() string {
	if r.ImportPath == "" {
		return r.Name
	}

	return r.ImportPath + "." + r.Name
}

// Qualified renders the reference as it appears in Go source, using
// the package alias derived from the import path.
func (r TypeRef) Qualified() string {
	if r.ImportPath == "" {
		return r.Name
	}

	return common.PkgAlias(r.ImportPath) + "." + r.Name
}

// IsBuiltin reports whether the reference names a predeclared type.
func (r TypeRef) IsBuiltin() bool {
	return r.ImportPath == ""
}

// AnnotationKind is the value kind carried by an annotation.
type AnnotationKind int

const (
	AnnotationString AnnotationKind = iota
	AnnotationBool
)

// String returns a human-readable kind name.
func (k AnnotationKind) String() string {
	switch k {
	case AnnotationString:
		return "string"
	case AnnotationBool:
		return "bool"
	default:
		return common.UnknownStr
	}
}

// Recognized annotation keys.
const (
	KeyFormatStr = "format_str"
	KeyMakeFrom  = "make_from"
	KeyErr       = "err"
)

// Annotation is one key/value pair attached to a variant, exactly as
// written. Unknown keys and duplicates survive until extraction so the
// extractor can report them.
type Annotation struct {
	Key  string
	Kind AnnotationKind
	Str  string // value when Kind == AnnotationString
	Bool bool   // value when Kind == AnnotationBool
}

// Overrides holds the parsed explicit annotations of one variant. Nil
// pointers mean "not annotated, infer the default".
type Overrides struct {
	FormatStr *string
	MakeFrom  *bool
	Err       *bool
}

// VariantInfo is a validated variant record: the output of extraction
// and the input to policy resolution.
type VariantInfo struct {
	// Name of the variant.
	Name string
	// Fields in declaration order.
	Fields []Field
	// Overrides parsed from the variant's annotations.
	Overrides Overrides
}

// SoleField returns the variant's only field, when it has exactly one.
func (v *VariantInfo) SoleField() (Field, bool) {
	return common.Single(v.Fields)
}
