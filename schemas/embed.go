// Package schemas holds the JSON Schemas of the documents the tool reads and writes.
package schemas

import _ "embed"

// Resume is the JSON Schema of an imported or exported résumé.
//
//go:embed resume.schema.json
var Resume string
