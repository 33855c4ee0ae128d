package utils

import (
	"encoding/json"
	"fmt"
)

// MarshalWithFields encodes value as a JSON object and adds extra top-level
// fields to it. It is used for wire fields whose name is only known at request
// time, such as the token-limit parameter. Extra fields win over struct
// fields with the same name; nil values are skipped.
func MarshalWithFields(value any, extra map[string]any) ([]byte, error) {
	encoded, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("error marshaling body: %w", err)
	}
	if len(extra) == 0 {
		return encoded, nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(encoded, &fields); err != nil {
		return nil, fmt.Errorf("body is not a JSON object: %w", err)
	}
	for key, fieldValue := range extra {
		if fieldValue == nil {
			continue
		}
		raw, err := json.Marshal(fieldValue)
		if err != nil {
			return nil, fmt.Errorf("error marshaling field %q: %w", key, err)
		}
		fields[key] = raw
	}
	return json.Marshal(fields)
}
