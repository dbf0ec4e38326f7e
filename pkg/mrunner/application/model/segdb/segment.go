package segdb

import (
	"github.com/pkg/errors"
)

// Segment is an anatomical region identity.
type Segment interface {
	ID() string
	Category() *string
	Type() *string
	Modifier() *string
	Name() string
	Color() *Color
}

type Color struct {
	R uint8
	G uint8
	B uint8
}

func NewColor(values []int) (Color, error) {
	if len(values) != 3 {
		return Color{}, errors.Errorf("color must have 3 components, got %v", len(values))
	}
	for _, v := range values {
		if v < 0 || v > 255 {
			return Color{}, errors.Errorf("color component %v out of range 0..255", v)
		}
	}
	return Color{R: uint8(values[0]), G: uint8(values[1]), B: uint8(values[2])}, nil
}

// Ref returns a segment referenced by its SegDB id. The taxonomy is resolved
// against the SegDB vocabulary by consumers, the reference itself only knows the id.
func Ref(id string) Segment {
	return ref{id: id}
}

type ref struct {
	id string
}

func (r ref) ID() string {
	return r.id
}

func (r ref) Category() *string {
	return nil
}

func (r ref) Type() *string {
	return nil
}

func (r ref) Modifier() *string {
	return nil
}

func (r ref) Name() string {
	return r.id
}

func (r ref) Color() *Color {
	return nil
}
