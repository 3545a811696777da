package domain

import "errors"

var (
	// ErrUnknownVariable indicates the variable is not temperature, humidity or light
	ErrUnknownVariable = errors.New("unknown environment variable")

	// ErrOutOfRange indicates a write outside the variable's valid range
	ErrOutOfRange = errors.New("value out of range")

	// ErrTypeConversion indicates a value that cannot be read as the variable's type
	ErrTypeConversion = errors.New("value cannot be converted to variable type")

	// ErrInvalidBand indicates an ideal band that is inverted or outside the valid range
	ErrInvalidBand = errors.New("invalid ideal band")

	// ErrSnapshotNotFound indicates requested snapshot doesn't exist
	ErrSnapshotNotFound = errors.New("snapshot not found")
)
