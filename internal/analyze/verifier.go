package analyze

import (
	"fmt"
	"go/types"

	"golang.org/x/tools/go/packages"

	"errenum-generator/internal/diagnostic"
	"errenum-generator/internal/enumspec"
	"errenum-generator/internal/plan"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedTypes |
	packages.NeedImports |
	packages.NeedDeps

// Verifier resolves declared type references against loaded packages.
type Verifier struct {
	pkgs map[string]*packages.Package
}

// NewVerifier creates a new Verifier with no packages loaded.
func NewVerifier() *Verifier {
	return &Verifier{pkgs: make(map[string]*packages.Package)}
}

// LoadPackages loads the given package patterns and indexes them by
// import path. Patterns are standard Go package patterns (e.g. "os",
// "./internal/...").
func (v *Verifier) LoadPackages(patterns ...string) error {
	cfg := &packages.Config{Mode: LoadMode}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return fmt.Errorf("failed to load packages: %w", err)
	}

	var errs []error
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			errs = append(errs, e)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("package errors: %v", errs)
	}

	for _, pkg := range pkgs {
		v.pkgs[pkg.PkgPath] = pkg
	}

	return nil
}

// Lookup resolves a type reference to its go/types representation.
// Builtins resolve through the universe scope; qualified references
// require their package to have been loaded.
func (v *Verifier) Lookup(ref enumspec.TypeRef) (types.Type, error) {
	if ref.IsBuiltin() {
		obj := types.Universe.Lookup(ref.Name)
		if obj == nil {
			return nil, fmt.Errorf("unknown builtin type %q", ref.Name)
		}

		return obj.Type(), nil
	}

	pkg, ok := v.pkgs[ref.ImportPath]
	if !ok {
		return nil, fmt.Errorf("package %s not loaded", ref.ImportPath)
	}

	obj := pkg.Types.Scope().Lookup(ref.Name)
	if obj == nil {
		return nil, fmt.Errorf("type %s not found in package %s", ref.Name, ref.ImportPath)
	}

	typeName, ok := obj.(*types.TypeName)
	if !ok {
		return nil, fmt.Errorf("%s.%s is not a type", ref.ImportPath, ref.Name)
	}

	return typeName.Type(), nil
}

// ImplementsError reports whether the referenced type (or a pointer
// to it) satisfies the error interface.
func (v *Verifier) ImplementsError(ref enumspec.TypeRef) (bool, error) {
	t, err := v.Lookup(ref)
	if err != nil {
		return false, err
	}

	errIface := types.Universe.Lookup("error").Type().Underlying().(*types.Interface)

	if types.Implements(t, errIface) {
		return true, nil
	}

	return types.Implements(types.NewPointer(t), errIface), nil
}

// VerifyPlan checks every field type reference of the plan: the type
// must exist, and cause slots must satisfy the error interface.
// Findings are reported as diagnostics; verification never mutates
// the plan.
func (v *Verifier) VerifyPlan(p *plan.Plan, diags *diagnostic.Diagnostics) {
	for i := range p.Enums {
		ep := &p.Enums[i]

		for _, policy := range ep.Policies {
			for _, field := range policy.Variant.Fields {
				_, err := v.Lookup(field.Type)
				if err != nil {
					diags.AddError("unknown_type",
						fmt.Sprintf("field %d: %v", field.Index, err),
						ep.Name, policy.Variant.Name)

					continue
				}

				if !policy.IsCause {
					continue
				}

				ok, err := v.ImplementsError(field.Type)
				if err == nil && !ok {
					diags.AddError("not_an_error",
						fmt.Sprintf("cause field type %s does not implement error", field.Type),
						ep.Name, policy.Variant.Name)
				}
			}
		}
	}
}
