package models

import "errors"

// ErrInvalidInput marks request parameters rejected before any upstream call.
var ErrInvalidInput = errors.New("invalid input")
