// Package analyze provides best-effort verification of declared field
// type references against real Go packages.
//
// It uses golang.org/x/tools/go/packages with go/types to answer two
// questions about a type reference: does the type exist, and does it
// satisfy the error interface. Verification is optional; the core
// pipeline treats type references as opaque and never depends on this
// package.
package analyze
