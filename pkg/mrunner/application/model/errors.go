package model

import (
	"github.com/pkg/errors"
)

var (
	ErrFieldMissing     = errors.New("required field missing")
	ErrInvalidField     = errors.New("invalid field")
	ErrInvalidModelType = errors.New("invalid model type")
	ErrInvalidLabel     = errors.New("invalid label")
	ErrInvalidSegment   = errors.New("invalid segment")
)
