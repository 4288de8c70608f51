package gen

import (
	"bytes"
	"fmt"
	"go/format"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"text/template"
	"unicode"

	"errenum-generator/internal/enumspec"
	"errenum-generator/internal/plan"
)

// GeneratorConfig holds configuration for code generation.
type GeneratorConfig struct {
	// PackageName is the name of the generated package.
	PackageName string
	// OutputDir is the directory where generated files are written.
	OutputDir string
}

// DefaultGeneratorConfig returns the default generator configuration.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		PackageName: "errs",
		OutputDir:   "./generated",
	}
}

// Generator generates Go code from a resolved plan.
type Generator struct {
	config GeneratorConfig
}

// NewGenerator creates a new Generator with the given configuration.
func NewGenerator(config GeneratorConfig) *Generator {
	return &Generator{config: config}
}

// GeneratedFile represents a generated Go source file.
type GeneratedFile struct {
	// Filename is the name of the file (e.g., "document_error.go").
	Filename string
	// Content is the formatted Go source code.
	Content []byte
}

// Generate generates one Go file per enum in the plan. Output is a
// pure function of the plan: identical plans yield byte-identical
// files.
func (g *Generator) Generate(p *plan.Plan) ([]GeneratedFile, error) {
	var files []GeneratedFile

	for i := range p.Enums {
		file, err := g.generateEnum(&p.Enums[i])
		if err != nil {
			return nil, fmt.Errorf("generating %s: %w", p.Enums[i].Name, err)
		}

		files = append(files, *file)
	}

	return files, nil
}

// generateEnum renders and formats a single enum file.
func (g *Generator) generateEnum(ep *plan.EnumPlan) (*GeneratedFile, error) {
	data := g.buildTemplateData(ep)

	if err := checkIdentifiers(ep.Name, data); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := enumTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("formatting generated code: %w\n%s", err, buf.String())
	}

	return &GeneratedFile{
		Filename: snakeCase(ep.Name) + ".go",
		Content:  formatted,
	}, nil
}

// templateData holds all data needed for the enum template.
type templateData struct {
	PackageName  string
	EnumName     string
	KindType     string
	Imports      []importSpec
	Variants     []variantData
	Slots        []slotData
	DisplayCases []displayCase
	CauseCases   []causeCase
	Constructors []ctorData
	Conversions  []convData
}

// importSpec represents one import line.
type importSpec struct {
	Alias string
	Path  string
}

// variantData represents one variant of the kind enum.
type variantData struct {
	Name      string
	KindConst string
}

// slotData represents one typed slot of the tagged struct.
type slotData struct {
	Name string
	Type string
}

// displayCase is one branch of the Error() switch.
type displayCase struct {
	KindConst string
	Expr      string
}

// causeCase is one branch of the Unwrap() switch.
type causeCase struct {
	KindConst string
	Slot      string
}

// ctorData represents one per-variant constructor.
type ctorData struct {
	Name      string
	Variant   string
	KindConst string
	Params    string
	Assigns   []ctorAssign
}

// ctorAssign pairs a slot with its constructor argument.
type ctorAssign struct {
	Slot string
	Arg  string
}

// convData represents one conversion entry point.
type convData struct {
	Name       string
	Variant    string
	KindConst  string
	SourceType string
	Slot       string
}

// buildTemplateData constructs the template data from an enum plan.
func (g *Generator) buildTemplateData(ep *plan.EnumPlan) *templateData {
	data := &templateData{
		PackageName: g.config.PackageName,
		EnumName:    ep.Name,
		KindType:    ep.Name + "Kind",
	}

	imports := map[string]bool{"fmt": true}

	// Slot names per variant, keyed by variant name then field index.
	slotNames := make(map[string][]string, len(ep.Policies))

	for _, p := range ep.Policies {
		v := p.Variant

		data.Variants = append(data.Variants, variantData{
			Name:      v.Name,
			KindConst: ep.Name + v.Name,
		})

		names := make([]string, len(v.Fields))
		for _, f := range v.Fields {
			name := v.Name
			if len(v.Fields) > 1 {
				name += strconv.Itoa(f.Index)
			}
			names[f.Index] = name

			data.Slots = append(data.Slots, slotData{Name: name, Type: f.Type.Qualified()})

			if !f.Type.IsBuiltin() {
				imports[f.Type.ImportPath] = true
			}
		}
		slotNames[v.Name] = names
	}

	for _, branch := range ep.Display {
		data.DisplayCases = append(data.DisplayCases, displayCase{
			KindConst: ep.Name + branch.Variant,
			Expr:      displayExpr(branch, slotNames[branch.Variant]),
		})
	}

	for _, branch := range ep.Causes {
		if !branch.IsCause {
			continue
		}

		data.CauseCases = append(data.CauseCases, causeCase{
			KindConst: ep.Name + branch.Variant,
			Slot:      slotNames[branch.Variant][branch.FieldArg],
		})
	}

	data.Conversions = g.buildConversions(ep)

	for _, p := range ep.Policies {
		data.Constructors = append(data.Constructors, buildConstructor(ep.Name, p, slotNames[p.Variant.Name]))
	}

	for path := range imports {
		data.Imports = append(data.Imports, importSpec{Path: path})
	}
	sort.Slice(data.Imports, func(i, j int) bool {
		return data.Imports[i].Path < data.Imports[j].Path
	})

	return data
}

// checkIdentifiers rejects plans whose generated names collide with
// each other or with the fixed members of the emitted type. Variant
// names are valid identifiers by this point; collisions are a property
// of the emitted shape, so they surface here instead of silently
// producing code that cannot compile. A variant named Error would
// shadow the Error method, one named Kind would redeclare the kind
// type, and a variant A0 next to a two-field variant A would duplicate
// a slot.
func checkIdentifiers(enum string, data *templateData) error {
	members := map[string]string{
		"Kind":   "the variant tag field",
		"Error":  "the Error method",
		"Unwrap": "the Unwrap method",
	}

	for _, s := range data.Slots {
		if prev, exists := members[s.Name]; exists {
			return fmt.Errorf("%w: enum %s: slot %s collides with %s",
				enumspec.ErrMalformedInput, enum, s.Name, prev)
		}

		members[s.Name] = "the " + s.Name + " slot"
	}

	scope := map[string]string{
		data.EnumName: "the enum type",
		data.KindType: "the kind type",
	}

	declare := func(name, what string) error {
		if prev, exists := scope[name]; exists {
			return fmt.Errorf("%w: enum %s: %s %s collides with %s",
				enumspec.ErrMalformedInput, enum, what, name, prev)
		}

		scope[name] = "the " + what + " " + name

		return nil
	}

	for _, v := range data.Variants {
		if err := declare(v.KindConst, "kind const"); err != nil {
			return err
		}
	}

	for _, c := range data.Constructors {
		if err := declare(c.Name, "constructor"); err != nil {
			return err
		}
	}

	for _, c := range data.Conversions {
		if err := declare(c.Name, "conversion"); err != nil {
			return err
		}
	}

	return nil
}

// buildConversions names the conversion functions. The short form
// uses the bare source type name; when two conversions share it, both
// fall back to the fully mangled reference so the names stay unique.
func (g *Generator) buildConversions(ep *plan.EnumPlan) []convData {
	shortCount := make(map[string]int)
	for _, c := range ep.Conversions {
		shortCount[exportable(c.Source.Name)]++
	}

	var out []convData

	for _, c := range ep.Conversions {
		short := exportable(c.Source.Name)

		name := short
		if shortCount[short] > 1 {
			name = mangleRef(c.Source.String())
		}

		// Conversion targets have exactly one field, so the slot is
		// the variant name itself.
		out = append(out, convData{
			Name:       ep.Name + "From" + name,
			Variant:    c.Variant,
			KindConst:  ep.Name + c.Variant,
			SourceType: c.Source.Qualified(),
			Slot:       c.Variant,
		})
	}

	return out
}

// buildConstructor builds the New<Enum><Variant> constructor data.
func buildConstructor(enum string, p plan.ResolvedPolicy, slots []string) ctorData {
	ctor := ctorData{
		Name:      "New" + enum + p.Variant.Name,
		Variant:   p.Variant.Name,
		KindConst: enum + p.Variant.Name,
	}

	params := make([]string, len(p.Variant.Fields))
	for _, f := range p.Variant.Fields {
		arg := "v" + strconv.Itoa(f.Index)
		params[f.Index] = arg + " " + f.Type.Qualified()
		ctor.Assigns = append(ctor.Assigns, ctorAssign{Slot: slots[f.Index], Arg: arg})
	}
	ctor.Params = strings.Join(params, ", ")

	return ctor
}

// displayExpr renders the Go expression for one display branch:
// a quoted string when nothing is interpolated, fmt.Sprintf otherwise.
func displayExpr(branch plan.DisplayBranch, slots []string) string {
	if len(branch.FieldArgs) == 0 {
		return strconv.Quote(branch.Format)
	}

	args := make([]string, 0, len(branch.FieldArgs))
	for _, idx := range branch.FieldArgs {
		args = append(args, "e."+slots[idx])
	}

	return fmt.Sprintf("fmt.Sprintf(%s, %s)", strconv.Quote(branch.Format), strings.Join(args, ", "))
}

// exportable upper-cases the first rune so builtin type names form
// valid exported identifier parts ("string" -> "String").
func exportable(name string) string {
	if name == "" {
		return name
	}

	r := []rune(name)
	r[0] = unicode.ToUpper(r[0])

	return string(r)
}

// mangleRef turns a full type reference into an identifier part:
// "example.com/e1.Error" -> "ExampleComE1Error".
func mangleRef(ref string) string {
	parts := strings.FieldsFunc(ref, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	var sb strings.Builder
	for _, part := range parts {
		sb.WriteString(exportable(part))
	}

	return sb.String()
}

// snakeCase converts a Go type name to a snake_case file name.
func snakeCase(name string) string {
	var sb strings.Builder

	for i, r := range name {
		if unicode.IsUpper(r) {
			if i > 0 {
				sb.WriteByte('_')
			}
			sb.WriteRune(unicode.ToLower(r))
			continue
		}

		sb.WriteRune(r)
	}

	return sb.String()
}

// WriteFiles persists the generated files under dir, creating the
// directory first when needed.
func WriteFiles(files []GeneratedFile, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating output directory %s: %w", dir, err)
	}

	for _, f := range files {
		path := filepath.Join(dir, f.Filename)
		if err := os.WriteFile(path, f.Content, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
	}

	return nil
}

// Template for the generated enum file

var enumTemplate = template.Must(template.New("enum").Parse(`// Code generated by errenum-generator. DO NOT EDIT.

package {{.PackageName}}

{{if .Imports}}
import (
{{range .Imports}}	{{if .Alias}}{{.Alias}} {{end}}"{{.Path}}"
{{end}})
{{end}}
// {{.KindType}} identifies the variant held by a {{.EnumName}}.
type {{.KindType}} int

const (
{{range $i, $v := .Variants}}	{{$v.KindConst}}{{if eq $i 0}} {{$.KindType}} = iota{{end}}
{{end}})

// String returns the variant name.
func (k {{.KindType}}) String() string {
	switch k {
{{range .Variants}}	case {{.KindConst}}:
		return "{{.Name}}"
{{end}}	default:
		return "unknown"
	}
}

// {{.EnumName}} is a tagged error enum. Kind selects the variant and
// the slot fields named after it carry the variant's values.
type {{.EnumName}} struct {
	Kind {{.KindType}}
{{range .Slots}}	{{.Name}} {{.Type}}
{{end}}}

var _ error = (*{{.EnumName}})(nil)

// Error formats the value according to the variant's display rule.
func (e *{{.EnumName}}) Error() string {
	switch e.Kind {
{{range .DisplayCases}}	case {{.KindConst}}:
		return {{.Expr}}
{{end}}	default:
		return fmt.Sprintf("{{.EnumName}}(%d)", int(e.Kind))
	}
}

// Unwrap returns the wrapped cause of cause-bearing variants and nil
// for everything else.
func (e *{{.EnumName}}) Unwrap() error {
{{if .CauseCases}}	switch e.Kind {
{{range .CauseCases}}	case {{.KindConst}}:
		return e.{{.Slot}}
{{end}}	}

	return nil
{{else}}	return nil
{{end}}}
{{range .Constructors}}
// {{.Name}} builds a {{$.EnumName}} of the {{.Variant}} variant.
func {{.Name}}({{.Params}}) *{{$.EnumName}} {
	return &{{$.EnumName}}{Kind: {{.KindConst}}{{range .Assigns}}, {{.Slot}}: {{.Arg}}{{end}}}
}
{{end}}{{range .Conversions}}
// {{.Name}} wraps v in the {{.Variant}} variant.
func {{.Name}}(v {{.SourceType}}) *{{$.EnumName}} {
	return &{{$.EnumName}}{Kind: {{.KindConst}}, {{.Slot}}: v}
}
{{end}}`))
