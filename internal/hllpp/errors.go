package hllpp

import "errors"

var (
	// ErrInvalidPrecision is returned when a precision outside [4,18]
	// is supplied at construction.
	ErrInvalidPrecision = errors.New("hllpp: precision must be in [4, 18]")

	// ErrPrecisionMismatch is returned by Merge when the two sketches
	// were constructed with different precisions.
	ErrPrecisionMismatch = errors.New("hllpp: cannot merge sketches with different precisions")

	// ErrNumericDomain is returned when linearCounting is asked to
	// estimate from more empty registers than exist; this should be
	// unreachable given the sketch's own invariants and indicates an
	// internal inconsistency if it is ever observed.
	ErrNumericDomain = errors.New("hllpp: linear counting domain error, v > m")

	// ErrInvalidData is returned by Deserialize when the input is too
	// short, has a body of the wrong length, or carries an unrecognized
	// magic tag, version, precision, or mode. An unrecognized mixer id
	// is not an error; see Deserialize.
	ErrInvalidData = errors.New("hllpp: invalid serialized sketch data")
)
