package model

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/medicalhub/mrunner/pkg/mrunner/application/model/segdb"
)

// ExpectedOutputFile is a file a model is expected to produce.
type ExpectedOutputFile struct {
	record OutputRecord
}

func (f ExpectedOutputFile) check() error {
	if f.record.JSONType != "" {
		return invalidField("output[]", "an object", f.record.JSONType)
	}
	return nil
}

func (f ExpectedOutputFile) FileName() (string, error) {
	if err := f.check(); err != nil {
		return "", err
	}
	return stringField(f.record.File, "file")
}

// Labels follows the key order of the repository file, not numeric order.
func (f ExpectedOutputFile) Labels() ([]ExpectedOutputFileLabel, error) {
	if err := f.check(); err != nil {
		return nil, err
	}
	if f.record.LabelsType != "" {
		return nil, invalidField("labels", "an object", f.record.LabelsType)
	}
	if f.record.Labels == nil {
		return nil, missingField("labels")
	}
	file := f
	labels := make([]ExpectedOutputFileLabel, 0, len(f.record.Labels))
	for _, entry := range f.record.Labels {
		id, err := parseLabelKey(entry.Key)
		if err != nil {
			return nil, err
		}
		labels = append(labels, ExpectedOutputFileLabel{
			file:    &file,
			id:      id,
			segment: entry.Value,
		})
	}
	return labels, nil
}

// parseLabelKey accepts an optionally signed decimal integer with surrounding
// whitespace. Digit separators ("1_0") and other bases are rejected.
func parseLabelKey(key string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(key))
	if err != nil {
		return 0, errors.Wrapf(ErrInvalidLabel, "label key %q is not an integer", key)
	}
	return id, nil
}

type ExpectedOutputFileLabel struct {
	file    *ExpectedOutputFile
	id      int
	segment SegmentValue
}

func (l ExpectedOutputFileLabel) ID() int {
	return l.id
}

func (l ExpectedOutputFileLabel) File() *ExpectedOutputFile {
	return l.file
}

func (l ExpectedOutputFileLabel) Segment() (segdb.Segment, error) {
	switch l.segment.Kind {
	case SegmentKindReference:
		return segdb.Ref(l.segment.ID), nil
	case SegmentKindCustom:
		return NewCustomSegment(l.segment.Custom)
	default:
		return nil, errors.Wrapf(
			ErrInvalidSegment,
			"invalid segment type %v, expect a segment id (string) or custom (object)",
			l.segment.JSONType,
		)
	}
}
