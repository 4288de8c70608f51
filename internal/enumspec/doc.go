// Package enumspec defines the canonical in-memory model of an error
// enum declaration and its validation.
//
// Key types:
//   - TypeDeclaration: enum name + ordered variants
//   - Variant: name, ordered unnamed fields, raw annotations
//   - TypeRef: opaque type reference (import path + name)
//   - VariantInfo: validated variant record with parsed overrides
//
// Extraction is the first pipeline stage: it normalizes a declaration
// into VariantInfo records and rejects structural problems with
// ErrMalformedInput.
package enumspec
