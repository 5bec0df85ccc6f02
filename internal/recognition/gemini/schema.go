package gemini

import (
	"bytes"
	"encoding/json"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/fairwaylab/scorelens/pkg/errors"
)

// scoresSchema constrains the handwriting payload: a players object is
// mandatory, and every score cell must be a short token or empty. The
// schema keeps a hallucinating model from injecting paragraphs into
// score cells.
const scoresSchema = `{
  "type": "object",
  "required": ["players"],
  "properties": {
    "course_name": {"type": "string"},
    "pars": {
      "type": "array",
      "items": {"type": "string", "maxLength": 3}
    },
    "players": {
      "type": "object",
      "minProperties": 1,
      "additionalProperties": {
        "type": "array",
        "items": {"type": "string", "maxLength": 4}
      }
    }
  }
}`

var compiledScoresSchema = mustCompile("scores.json", scoresSchema)

func mustCompile(name, schema string) *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(name, bytes.NewReader([]byte(schema))); err != nil {
		panic(err)
	}
	return compiler.MustCompile(name)
}

// validateScoresPayload checks a handwriting payload against the schema
// before it is decoded into domain types.
func validateScoresPayload(raw []byte) error {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return errors.NewParseError("json", "gemini", "handwriting payload is not valid JSON", err)
	}
	if err := compiledScoresSchema.Validate(v); err != nil {
		return errors.NewParseError("json", "gemini", "handwriting payload does not match schema", err)
	}
	return nil
}
