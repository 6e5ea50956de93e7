package domain

import "errors"

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrCapacityExceeded   = errors.New("capacity exceeded")
	ErrInsufficientSpace  = errors.New("insufficient space")
	ErrOverlap            = errors.New("network overlap")
	ErrNetworkNotFound    = errors.New("network not found")
	ErrAllocationNotFound = errors.New("allocation not found")
)
