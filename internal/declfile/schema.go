package declfile

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"errenum-generator/internal/enumspec"
)

// DeclFile is the root of a parsed declaration file.
type DeclFile struct {
	// Version of the declaration schema.
	Version string `yaml:"version,omitempty"`
	// Package is the Go package name for generated files.
	Package string `yaml:"package,omitempty"`
	// Enums lists the declared error enums.
	Enums []EnumDecl `yaml:"enums"`
}

// EnumDecl declares one error enum.
type EnumDecl struct {
	Name     string        `yaml:"name"`
	Variants []VariantDecl `yaml:"variants"`
}

// VariantDecl declares one variant: a name, ordered unnamed field
// type references, and optional annotations.
type VariantDecl struct {
	Name        string        `yaml:"name"`
	Fields      []string      `yaml:"fields,omitempty"`
	Annotations AnnotationSet `yaml:"annotations,omitempty"`
}

// AnnotationSet is the ordered list of annotations as written in the
// file. Duplicates are preserved deliberately; rejecting them is the
// extractor's job, not the parser's.
type AnnotationSet []enumspec.Annotation

// UnmarshalYAML decodes the annotation mapping node pairwise instead
// of into a Go map, keeping declaration order and duplicate keys.
func (s *AnnotationSet) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: annotations must be a mapping", value.Line)
	}

	for i := 0; i+1 < len(value.Content); i += 2 {
		keyNode := value.Content[i]
		valNode := value.Content[i+1]

		if valNode.Kind != yaml.ScalarNode {
			return fmt.Errorf("line %d: annotation %q value must be a scalar", valNode.Line, keyNode.Value)
		}

		ann := enumspec.Annotation{Key: keyNode.Value}

		if valNode.Tag == "!!bool" {
			var b bool
			if err := valNode.Decode(&b); err != nil {
				return fmt.Errorf("line %d: annotation %q: %w", valNode.Line, keyNode.Value, err)
			}
			ann.Kind = enumspec.AnnotationBool
			ann.Bool = b
		} else {
			ann.Kind = enumspec.AnnotationString
			ann.Str = valNode.Value
		}

		*s = append(*s, ann)
	}

	return nil
}

// MarshalYAML renders the annotation set back as a mapping in
// declaration order.
func (s AnnotationSet) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}

	for _, ann := range s {
		keyNode := &yaml.Node{Kind: yaml.ScalarNode, Value: ann.Key}

		valNode := &yaml.Node{Kind: yaml.ScalarNode}
		switch ann.Kind {
		case enumspec.AnnotationBool:
			if err := valNode.Encode(ann.Bool); err != nil {
				return nil, err
			}
		default:
			if err := valNode.Encode(ann.Str); err != nil {
				return nil, err
			}
		}

		node.Content = append(node.Content, keyNode, valNode)
	}

	return node, nil
}

// Declarations converts the file into enumspec declarations, one per
// declared enum, in file order.
func (f *DeclFile) Declarations() []enumspec.TypeDeclaration {
	decls := make([]enumspec.TypeDeclaration, 0, len(f.Enums))

	for _, e := range f.Enums {
		decl := enumspec.TypeDeclaration{Name: e.Name}

		for _, v := range e.Variants {
			variant := enumspec.Variant{
				Name:        v.Name,
				Annotations: v.Annotations,
			}

			for i, ref := range v.Fields {
				variant.Fields = append(variant.Fields, enumspec.Field{
					Index: i,
					Type:  enumspec.ParseTypeRef(ref),
				})
			}

			decl.Variants = append(decl.Variants, variant)
		}

		decls = append(decls, decl)
	}

	return decls
}
