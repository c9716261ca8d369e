package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ErrInvalidResponse is returned when a backend response does not match the
// expected envelope.
var ErrInvalidResponse = errors.New("invalid API response")

const envelopeSchemaJSON = `{
	"type": "object",
	"anyOf": [
		{"required": ["messages"]},
		{"required": ["output"]}
	],
	"properties": {
		"messages": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["role", "content"],
				"properties": {
					"role": {"enum": ["user", "assistant", "system"]},
					"content": {"type": ["string", "object", "null"]}
				}
			}
		},
		"suggested_questions": {"type": "array"}
	}
}`

var envelopeSchema = mustCompileEnvelope()

func mustCompileEnvelope() *jsonschema.Schema {
	var doc any
	if err := json.Unmarshal([]byte(envelopeSchemaJSON), &doc); err != nil {
		panic(fmt.Sprintf("parsing envelope schema: %v", err))
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("envelope.json", doc); err != nil {
		panic(fmt.Sprintf("adding envelope schema: %v", err))
	}
	return compiler.MustCompile("envelope.json")
}

var printer = message.NewPrinter(language.English)

// validateEnvelope checks a raw response body against the envelope schema.
func validateEnvelope(body []byte) error {
	var value any
	if err := json.Unmarshal(body, &value); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	if err := envelopeSchema.Validate(value); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidResponse, strings.Join(validationMessages(err), "; "))
	}
	return nil
}

// validationMessages flattens a validation error into leaf messages.
func validationMessages(err error) []string {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return []string{err.Error()}
	}
	var msgs []string
	var walk func(*jsonschema.ValidationError)
	walk = func(e *jsonschema.ValidationError) {
		if e.ErrorKind != nil && len(e.Causes) == 0 {
			msg := e.ErrorKind.LocalizedString(printer)
			if len(e.InstanceLocation) > 0 {
				msg = "/" + strings.Join(e.InstanceLocation, "/") + ": " + msg
			}
			msgs = append(msgs, msg)
		}
		for _, c := range e.Causes {
			walk(c)
		}
	}
	walk(ve)
	slices.Sort(msgs)
	return slices.Compact(msgs)
}
