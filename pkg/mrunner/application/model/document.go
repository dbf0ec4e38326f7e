package model

import (
	"encoding/json"
)

// Document is the parsed repository file. Field values are kept as raw JSON and
// converted when accessed: a nil value or slice marks a key absent from the file,
// a non-empty *Type names the JSON type found where an array or object was expected.
type Document struct {
	Models     []ModelRecord
	ModelsType string
}

type ModelRecord struct {
	Name       json.RawMessage
	Dockerfile json.RawMessage
	Tag        json.RawMessage
	Type       json.RawMessage
	Output     []OutputRecord
	OutputType string
	// JSONType is set when the record itself is not an object.
	JSONType string
}

func (r ModelRecord) stringField(raw json.RawMessage, field string) (string, error) {
	if r.JSONType != "" {
		return "", invalidField("models[]", "an object", r.JSONType)
	}
	return stringField(raw, field)
}

type OutputRecord struct {
	File       json.RawMessage
	Labels     []LabelEntry
	LabelsType string
	JSONType   string
}

// LabelEntry keeps the raw label key, it is parsed as an integer on access.
type LabelEntry struct {
	Key   string
	Value SegmentValue
}

type SegmentKind int

const (
	SegmentKindInvalid SegmentKind = iota
	SegmentKindReference
	SegmentKindCustom
)

// SegmentValue is either a SegDB id reference or an inline custom segment.
// JSONType names the value type found in the file when Kind is SegmentKindInvalid.
type SegmentValue struct {
	Kind     SegmentKind
	ID       string
	Custom   CustomSegmentRecord
	JSONType string
}

type CustomSegmentRecord struct {
	Name  json.RawMessage
	Color json.RawMessage
}

func ReferenceValue(id string) SegmentValue {
	return SegmentValue{Kind: SegmentKindReference, ID: id}
}

func CustomValue(record CustomSegmentRecord) SegmentValue {
	return SegmentValue{Kind: SegmentKindCustom, Custom: record}
}

func InvalidValue(jsonType string) SegmentValue {
	return SegmentValue{Kind: SegmentKindInvalid, JSONType: jsonType}
}
