package repositoryconfig

import (
	"bytes"
	"encoding/json"

	"github.com/pkg/errors"
)

type Label struct {
	Key   string
	Value SegmentValue
}

// Labels is the labels object of an output file in the key order of the file.
// A repeated key keeps its first position and the last value.
type Labels []Label

func (l *Labels) UnmarshalJSON(data []byte) error {
	if isNull(data) {
		return nil
	}
	decoder := json.NewDecoder(bytes.NewReader(data))
	token, err := decoder.Token()
	if err != nil {
		return err
	}
	if delim, ok := token.(json.Delim); !ok || delim != '{' {
		return errors.Errorf("labels must be an object, got %v", jsonType(token))
	}
	labels := Labels{}
	positions := make(map[string]int)
	for decoder.More() {
		token, err = decoder.Token()
		if err != nil {
			return err
		}
		key, ok := token.(string)
		if !ok {
			return errors.Errorf("unexpected label key %v", token)
		}
		var value SegmentValue
		err = decoder.Decode(&value)
		if err != nil {
			return errors.Wrapf(err, "failed to decode label %v", key)
		}
		if i, ok := positions[key]; ok {
			labels[i].Value = value
			continue
		}
		positions[key] = len(labels)
		labels = append(labels, Label{Key: key, Value: value})
	}
	*l = labels
	return nil
}

// SegmentValue is a label value: a segment id string or a custom segment object.
// Values of any other JSON type keep only the type name.
type SegmentValue struct {
	ID       *string
	Custom   *CustomSegment
	JSONType string
}

func (v *SegmentValue) UnmarshalJSON(data []byte) error {
	var raw any
	err := json.Unmarshal(data, &raw)
	if err != nil {
		return err
	}
	switch raw := raw.(type) {
	case string:
		v.ID = &raw
	case map[string]any:
		var custom CustomSegment
		err = json.Unmarshal(data, &custom)
		if err != nil {
			return errors.Wrap(err, "failed to decode custom segment")
		}
		v.Custom = &custom
	default:
		v.JSONType = jsonType(raw)
	}
	return nil
}

func jsonType(v any) string {
	switch v := v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case float64, json.Number:
		return "number"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	case json.Delim:
		if v == '[' {
			return "array"
		}
		return "object"
	default:
		return "unknown"
	}
}

func isNull(data []byte) bool {
	return bytes.Equal(bytes.TrimSpace(data), []byte("null"))
}
