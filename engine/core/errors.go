package core

import (
	"errors"
)

var (
	// ErrConfiguration is returned when authored data names something that does not exist
	// or breaks a limit of the system it is handed to.
	ErrConfiguration = errors.New("invalid configuration")

	// ErrUnsupportedBinding is returned when a uniform exists but its binding kind cannot be animated.
	ErrUnsupportedBinding = errors.New("unsupported binding type")

	// ErrTypeMismatch is returned when a target path is applied to the wrong kind of object.
	ErrTypeMismatch = errors.New("target type mismatch")

	// ErrResolution is returned when a target path does not lead anywhere on the given object.
	ErrResolution = errors.New("target path not resolved")

	ErrPassOutOfRange = errors.New("pass index out of range")

	ErrAssetNotFound = errors.New("asset not found")
)
