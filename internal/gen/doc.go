// Package gen provides deterministic Go code generation for resolved
// enum plans.
//
// Generation approach uses text/template + go/format for readable
// output. Per enum it emits:
//   - a Kind type with one const per variant and a String method
//   - a tagged struct with one typed slot per variant field
//   - Error() from the display table (exhaustive switch)
//   - Unwrap() from the cause table
//   - one conversion function per conversion entry
//   - per-variant constructors
package gen
