package model

import (
	"bytes"
	"encoding/json"
	"math"

	"github.com/pkg/errors"
)

// JSONType names the JSON type of a raw value.
func JSONType(raw json.RawMessage) string {
	var v any
	if err := decodeRaw(raw, &v); err != nil {
		return "invalid"
	}
	return jsonType(v)
}

func jsonType(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case json.Number, float64:
		return "number"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return "unknown"
	}
}

func decodeRaw(raw json.RawMessage, v any) error {
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()
	return decoder.Decode(v)
}

func missingField(field string) error {
	return errors.Wrapf(ErrFieldMissing, "field %q", field)
}

func invalidField(field, want, got string) error {
	return errors.Wrapf(ErrInvalidField, "field %q must be %v, got %v", field, want, got)
}

// stringField reads a string field. Numbers are accepted in their JSON text form.
func stringField(raw json.RawMessage, field string) (string, error) {
	if raw == nil {
		return "", missingField(field)
	}
	var v any
	if err := decodeRaw(raw, &v); err != nil {
		return "", invalidField(field, "a string", "invalid JSON")
	}
	switch v := v.(type) {
	case string:
		return v, nil
	case json.Number:
		return v.String(), nil
	default:
		return "", invalidField(field, "a string", jsonType(v))
	}
}

// colorField reads [r, g, b]. Components must be integral, 255.0 is accepted.
func colorField(raw json.RawMessage) ([]int, error) {
	var values []any
	if err := decodeRaw(raw, &values); err != nil || values == nil {
		return nil, invalidField("color", "an array of numbers", JSONType(raw))
	}
	components := make([]int, 0, len(values))
	for _, v := range values {
		n, ok := v.(json.Number)
		if !ok {
			return nil, invalidField("color", "an array of numbers", "a "+jsonType(v)+" component")
		}
		f, err := n.Float64()
		if err != nil || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
			return nil, errors.Wrapf(ErrInvalidField, "color component %v is not an integer", n)
		}
		components = append(components, int(f))
	}
	return components, nil
}
