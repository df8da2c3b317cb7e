package app

import "errors"

// ErrInvalidInput marks request validation failures so the transport
// layer can answer 400 instead of blaming the upstream.
var ErrInvalidInput = errors.New("invalid input")
