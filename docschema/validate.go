package docschema

import (
	"encoding/json"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
)

// Validate checks values against schema. Values are normalized through JSON
// first, so any tree produced by a value store can be passed.
func Validate(schema *jsonschema.Schema, values any) error {
	// Resolution only needs the keywords.
	unmarked := *schema
	unmarked.Schema = ""

	resolved, err := unmarked.Resolve(nil)
	if err != nil {
		return fmt.Errorf("resolve schema: %w", err)
	}

	b, err := json.Marshal(values)
	if err != nil {
		return fmt.Errorf("encode values: %w", err)
	}

	var instance any

	err = json.Unmarshal(b, &instance)
	if err != nil {
		return fmt.Errorf("decode values: %w", err)
	}

	err = resolved.Validate(instance)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	return nil
}
