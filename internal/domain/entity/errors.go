package entity

import "errors"

// ErrInvalidInput indicates missing or malformed creation input.
var ErrInvalidInput = errors.New("invalid entity input")
