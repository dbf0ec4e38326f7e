package model

import (
	"github.com/pkg/errors"

	"github.com/medicalhub/mrunner/pkg/mrunner/application/model/segdb"
)

// CustomSegment is a segment described inline in the repository file. It has no
// taxonomy, its id is its name.
type CustomSegment struct {
	name  string
	color *segdb.Color
}

func NewCustomSegment(record CustomSegmentRecord) (CustomSegment, error) {
	segmentName, err := stringField(record.Name, "name")
	if err != nil {
		return CustomSegment{}, errors.Wrap(err, "failed to read custom segment")
	}
	segment := CustomSegment{name: segmentName}
	if record.Color != nil {
		components, err := colorField(record.Color)
		if err != nil {
			return CustomSegment{}, errors.Wrapf(err, "invalid color of custom segment %v", segmentName)
		}
		color, err := segdb.NewColor(components)
		if err != nil {
			return CustomSegment{}, errors.Wrapf(err, "invalid color of custom segment %v", segmentName)
		}
		segment.color = &color
	}
	return segment, nil
}

func (s CustomSegment) ID() string {
	return s.Name()
}

func (s CustomSegment) Category() *string {
	return nil
}

func (s CustomSegment) Type() *string {
	return nil
}

func (s CustomSegment) Modifier() *string {
	return nil
}

func (s CustomSegment) Name() string {
	return s.name
}

func (s CustomSegment) Color() *segdb.Color {
	return s.color
}
