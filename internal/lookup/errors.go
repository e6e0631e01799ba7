package lookup

import "errors"

// ErrInvalidInput is returned when a raw string cannot be parsed as a phone
// number, neither as entered nor with the configured default region.
// Callers should report it once to the user and allow another attempt;
// it is the only error kind the analysis pipeline can surface for input.
var ErrInvalidInput = errors.New("invalid input: not a parsable phone number")
