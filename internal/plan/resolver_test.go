package plan

import (
	"errors"
	"reflect"
	"testing"

	"errenum-generator/internal/diagnostic"
	"errenum-generator/internal/enumspec"
)

func variant(name string, fieldRefs ...string) enumspec.Variant {
	v := enumspec.Variant{Name: name}
	for i, ref := range fieldRefs {
		v.Fields = append(v.Fields, enumspec.Field{Index: i, Type: enumspec.ParseTypeRef(ref)})
	}

	return v
}

func annotated(v enumspec.Variant, anns ...enumspec.Annotation) enumspec.Variant {
	v.Annotations = anns

	return v
}

func boolAnn(key string, val bool) enumspec.Annotation {
	return enumspec.Annotation{Key: key, Kind: enumspec.AnnotationBool, Bool: val}
}

func strAnn(key, val string) enumspec.Annotation {
	return enumspec.Annotation{Key: key, Kind: enumspec.AnnotationString, Str: val}
}

func buildOne(t *testing.T, decl enumspec.TypeDeclaration) *EnumPlan {
	t.Helper()

	var diags diagnostic.Diagnostics

	ep, err := NewResolver(DefaultConfig()).Build(decl, &diags)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	return ep
}

func TestZeroFieldDefaults(t *testing.T) {
	ep := buildOne(t, enumspec.TypeDeclaration{
		Name:     "E",
		Variants: []enumspec.Variant{variant("NotFound")},
	})

	p := ep.Policies[0]
	if p.IsCause || p.MakeFrom {
		t.Errorf("zero-field variant defaulted to is_cause=%v make_from=%v, want false/false",
			p.IsCause, p.MakeFrom)
	}

	if ep.Display[0].Format != "NotFound" || len(ep.Display[0].FieldArgs) != 0 {
		t.Errorf("zero-field display branch = %+v, want bare variant name", ep.Display[0])
	}
}

func TestZeroFieldForcedAnnotationsRejected(t *testing.T) {
	for _, key := range []string{enumspec.KeyErr, enumspec.KeyMakeFrom} {
		t.Run(key, func(t *testing.T) {
			decl := enumspec.TypeDeclaration{
				Name:     "E",
				Variants: []enumspec.Variant{annotated(variant("NotFound"), boolAnn(key, true))},
			}

			var diags diagnostic.Diagnostics
			_, err := NewResolver(DefaultConfig()).Build(decl, &diags)
			if !errors.Is(err, enumspec.ErrMalformedInput) {
				t.Errorf("forcing %s=true on a zero-field variant: got %v, want ErrMalformedInput", key, err)
			}
		})
	}
}

func TestErrorNamedFieldInference(t *testing.T) {
	ep := buildOne(t, enumspec.TypeDeclaration{
		Name:     "E",
		Variants: []enumspec.Variant{variant("Storage", "github.com/acme/storage.Error")},
	})

	p := ep.Policies[0]
	if !p.IsCause || !p.MakeFrom {
		t.Errorf("Error-named field: is_cause=%v make_from=%v, want true/true", p.IsCause, p.MakeFrom)
	}

	if len(ep.Conversions) != 1 || ep.Conversions[0].Variant != "Storage" {
		t.Errorf("expected one conversion into Storage, got %+v", ep.Conversions)
	}

	if !ep.Causes[0].IsCause || ep.Causes[0].FieldArg != 0 {
		t.Errorf("cause branch = %+v, want field 0", ep.Causes[0])
	}
}

func TestNonErrorNamedFieldDefaults(t *testing.T) {
	// IoError is not exactly "Error"; substring matches must not count.
	ep := buildOne(t, enumspec.TypeDeclaration{
		Name:     "E",
		Variants: []enumspec.Variant{variant("IO", "github.com/acme/ioutil.IoError")},
	})

	p := ep.Policies[0]
	if p.IsCause || p.MakeFrom {
		t.Errorf("non-Error field: is_cause=%v make_from=%v, want false/false", p.IsCause, p.MakeFrom)
	}
}

func TestExplicitOverridesBeatInference(t *testing.T) {
	decl := enumspec.TypeDeclaration{
		Name: "E",
		Variants: []enumspec.Variant{
			// Error-like, but both behaviors suppressed.
			annotated(variant("A", "net.Error"),
				boolAnn(enumspec.KeyErr, false), boolAnn(enumspec.KeyMakeFrom, false)),
			// Not error-like, but both behaviors forced.
			annotated(variant("B", "string"),
				boolAnn(enumspec.KeyErr, true), boolAnn(enumspec.KeyMakeFrom, true)),
		},
	}

	ep := buildOne(t, decl)

	if ep.Policies[0].IsCause || ep.Policies[0].MakeFrom {
		t.Errorf("suppressed variant resolved to %+v", ep.Policies[0])
	}

	if !ep.Policies[1].IsCause || !ep.Policies[1].MakeFrom {
		t.Errorf("forced variant resolved to %+v", ep.Policies[1])
	}
}

func TestForcedCauseImpliesDefaultConversion(t *testing.T) {
	// err=true on a non-error-like single field: make_from has no
	// explicit annotation, so it follows the resolved is_cause.
	ep := buildOne(t, enumspec.TypeDeclaration{
		Name:     "E",
		Variants: []enumspec.Variant{annotated(variant("A", "string"), boolAnn(enumspec.KeyErr, true))},
	})

	if !ep.Policies[0].MakeFrom {
		t.Error("make_from did not follow forced is_cause")
	}
}

func TestMultiFieldVariant(t *testing.T) {
	ep := buildOne(t, enumspec.TypeDeclaration{
		Name:     "E",
		Variants: []enumspec.Variant{variant("Pair", "string", "int")},
	})

	p := ep.Policies[0]
	if p.IsCause || p.MakeFrom {
		t.Errorf("multi-field variant defaulted to %+v", p)
	}

	branch := ep.Display[0]
	if branch.Format != "Pair: %v, %v" {
		t.Errorf("multi-field display format = %q", branch.Format)
	}
	if !reflect.DeepEqual(branch.FieldArgs, []int{0, 1}) {
		t.Errorf("multi-field display args = %v", branch.FieldArgs)
	}
}

func TestMultiFieldForcedMakeFromRejected(t *testing.T) {
	decl := enumspec.TypeDeclaration{
		Name: "E",
		Variants: []enumspec.Variant{
			annotated(variant("Pair", "string", "int"), boolAnn(enumspec.KeyMakeFrom, true)),
		},
	}

	var diags diagnostic.Diagnostics
	_, err := NewResolver(DefaultConfig()).Build(decl, &diags)
	if !errors.Is(err, enumspec.ErrMalformedInput) {
		t.Errorf("make_from=true on a two-field variant: got %v, want ErrMalformedInput", err)
	}
}

func TestMultiFieldForcedErrRejected(t *testing.T) {
	decl := enumspec.TypeDeclaration{
		Name: "E",
		Variants: []enumspec.Variant{
			annotated(variant("Pair", "net.Error", "int"), boolAnn(enumspec.KeyErr, true)),
		},
	}

	var diags diagnostic.Diagnostics
	_, err := NewResolver(DefaultConfig()).Build(decl, &diags)
	if !errors.Is(err, enumspec.ErrMalformedInput) {
		t.Errorf("err=true on a two-field variant: got %v, want ErrMalformedInput", err)
	}
}

func TestFormatStrIsVerbatim(t *testing.T) {
	decl := enumspec.TypeDeclaration{
		Name: "E",
		Variants: []enumspec.Variant{
			annotated(variant("Pair", "string", "int"), strAnn(enumspec.KeyFormatStr, "broken pair")),
		},
	}

	ep := buildOne(t, decl)

	branch := ep.Display[0]
	if branch.Format != "broken pair" || len(branch.FieldArgs) != 0 {
		t.Errorf("format_str branch = %+v, want verbatim text with no interpolation", branch)
	}
}

func TestConflictingConversion(t *testing.T) {
	decl := enumspec.TypeDeclaration{
		Name: "E",
		Variants: []enumspec.Variant{
			annotated(variant("A", "string"), boolAnn(enumspec.KeyMakeFrom, true)),
			annotated(variant("B", "string"), boolAnn(enumspec.KeyMakeFrom, true)),
		},
	}

	var diags diagnostic.Diagnostics
	_, err := NewResolver(DefaultConfig()).Build(decl, &diags)
	if !errors.Is(err, ErrConflictingConversion) {
		t.Errorf("shared source type: got %v, want ErrConflictingConversion", err)
	}
}

func TestSameNameDifferentPackagesDoNotConflict(t *testing.T) {
	// e1.Error and e2.Error are distinct source types.
	decl := enumspec.TypeDeclaration{
		Name: "E",
		Variants: []enumspec.Variant{
			variant("A", "example.com/e1.Error"),
			variant("B", "example.com/e2.Error"),
		},
	}

	ep := buildOne(t, decl)
	if len(ep.Conversions) != 2 {
		t.Errorf("expected 2 conversions, got %+v", ep.Conversions)
	}
}

func TestEndToEndScenario(t *testing.T) {
	// NotFound has literal display text; IO's field is an IoError,
	// which the heuristic must not treat as error-like; Other forces
	// conversion generation only.
	decl := enumspec.TypeDeclaration{
		Name: "DocumentError",
		Variants: []enumspec.Variant{
			annotated(variant("NotFound"), strAnn(enumspec.KeyFormatStr, "Document not found")),
			variant("IO", "example.com/iofs.IoError"),
			annotated(variant("Other", "string"), boolAnn(enumspec.KeyMakeFrom, true)),
		},
	}

	ep := buildOne(t, decl)

	want := []struct {
		display  string
		isCause  bool
		makeFrom bool
	}{
		{"Document not found", false, false},
		{"IO: %v", false, false},
		{"Other: %v", false, true},
	}

	for i, w := range want {
		p := ep.Policies[i]
		if p.IsCause != w.isCause || p.MakeFrom != w.makeFrom {
			t.Errorf("%s: is_cause=%v make_from=%v, want %v/%v",
				p.Variant.Name, p.IsCause, p.MakeFrom, w.isCause, w.makeFrom)
		}

		if ep.Display[i].Format != w.display {
			t.Errorf("%s: display format %q, want %q", p.Variant.Name, ep.Display[i].Format, w.display)
		}
	}

	if len(ep.Conversions) != 1 {
		t.Fatalf("expected exactly 1 conversion, got %+v", ep.Conversions)
	}

	conv := ep.Conversions[0]
	if conv.Variant != "Other" || conv.Source.String() != "string" {
		t.Errorf("conversion = %+v, want string into Other", conv)
	}
}

func TestQualifiedMatching(t *testing.T) {
	cfg := ResolutionConfig{
		CauseTypeNames: []string{"example.com/e1.Error"},
		MatchQualified: true,
	}

	decl := enumspec.TypeDeclaration{
		Name: "E",
		Variants: []enumspec.Variant{
			variant("A", "example.com/e1.Error"),
			variant("B", "example.com/e2.Error"),
		},
	}

	var diags diagnostic.Diagnostics
	ep, err := NewResolver(cfg).Build(decl, &diags)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if !ep.Policies[0].IsCause {
		t.Error("qualified match missed example.com/e1.Error")
	}
	if ep.Policies[1].IsCause {
		t.Error("qualified match wrongly accepted example.com/e2.Error")
	}
}

func TestBuildAllAbortsWithoutPartialPlan(t *testing.T) {
	decls := []enumspec.TypeDeclaration{
		{Name: "Good", Variants: []enumspec.Variant{variant("A")}},
		{Name: "Bad", Variants: []enumspec.Variant{
			annotated(variant("B"), boolAnn(enumspec.KeyErr, true)),
		}},
	}

	p, err := NewResolver(DefaultConfig()).BuildAll(decls)
	if err == nil {
		t.Fatal("expected failure")
	}
	if p != nil {
		t.Errorf("expected no partial plan, got %+v", p)
	}
}

func TestResolutionIsIdempotent(t *testing.T) {
	decl := enumspec.TypeDeclaration{
		Name: "DocumentError",
		Variants: []enumspec.Variant{
			annotated(variant("NotFound"), strAnn(enumspec.KeyFormatStr, "Document not found")),
			variant("Storage", "example.com/storage.Error"),
			annotated(variant("Other", "string"), boolAnn(enumspec.KeyMakeFrom, true)),
			variant("Pair", "string", "int"),
		},
	}

	first := buildOne(t, decl)
	second := buildOne(t, decl)

	if !reflect.DeepEqual(first, second) {
		t.Error("two passes over the same declaration produced different plans")
	}
}

func TestDiagnostics(t *testing.T) {
	decl := enumspec.TypeDeclaration{
		Name: "E",
		Variants: []enumspec.Variant{
			// err=false suppressing an inferred cause warrants a warning.
			annotated(variant("A", "net.Error"), boolAnn(enumspec.KeyErr, false)),
			// format_str on a variant with fields warrants an info.
			annotated(variant("B", "string"), strAnn(enumspec.KeyFormatStr, "b")),
		},
	}

	var diags diagnostic.Diagnostics
	_, err := NewResolver(DefaultConfig()).Build(decl, &diags)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if len(diags.Warnings) != 1 || diags.Warnings[0].Code != "inference_suppressed" {
		t.Errorf("warnings = %+v", diags.Warnings)
	}

	if len(diags.Infos) != 1 || diags.Infos[0].Code != "interpolation_disabled" {
		t.Errorf("infos = %+v", diags.Infos)
	}

	if diags.HasErrors() {
		t.Errorf("unexpected error diagnostics: %+v", diags.Errors)
	}
}
