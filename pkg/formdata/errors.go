package formdata

import "errors"

var (
	// ErrInvalidValue indicates a form answer that cannot be represented as a Value.
	ErrInvalidValue = errors.New("formdata: invalid value")

	// ErrInvalidMap indicates a JSON document that is not an object.
	ErrInvalidMap = errors.New("formdata: expected JSON object")
)
