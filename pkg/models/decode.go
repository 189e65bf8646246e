package models

import (
	"encoding/json"
	"fmt"

	"github.com/etapi-go/etapi.go/pkg/constants"
)

// requireKeys fails unless every key is present in the JSON object. It lets
// the schema types reject partial bodies that encoding/json would accept.
func requireKeys(data []byte, schema string, keys ...string) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	if fields == nil {
		return fmt.Errorf("%w: %s is null", constants.ErrMissingField, schema)
	}
	for _, key := range keys {
		raw, ok := fields[key]
		if !ok || string(raw) == "null" {
			return fmt.Errorf("%w: %s.%s", constants.ErrMissingField, schema, key)
		}
	}
	return nil
}
