package domain

import "errors"

// ErrValidation marks caller mistakes so the HTTP layer can answer 400
// instead of 500.
var ErrValidation = errors.New("validation failed")
