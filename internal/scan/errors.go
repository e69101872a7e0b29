package scan

import "errors"

var (
	// ErrInvalidRange means the CIDR block could not be parsed. Fatal: the
	// sweep aborts before any probe is issued.
	ErrInvalidRange = errors.New("invalid CIDR range")

	// ErrEmptyRange means the block parsed but contains no usable host
	// addresses. Fatal for the same reason.
	ErrEmptyRange = errors.New("no usable host addresses in range")
)
