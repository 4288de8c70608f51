// Package declfile loads YAML enum declaration files and converts
// them into the enumspec model.
//
// The declaration file is the upstream parsing facility for the
// pipeline: the core never sees YAML, only the TypeDeclaration model
// produced here. Annotation maps are decoded node-by-node so that key
// order and duplicate keys survive into extraction, where they are
// validated.
package declfile
