package search

import (
	_ "embed"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const responseSchemaURL = "https://rxmark.dev/schema/find-medications-response.json"

//go:embed response.schema.json
var responseSchemaSource string

var responseSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(responseSchemaURL, strings.NewReader(responseSchemaSource)); err != nil {
		return nil, err
	}
	return compiler.Compile(responseSchemaURL)
})
