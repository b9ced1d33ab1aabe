package errorz

import "errors"

var (
	EventNotFound = errors.New("event not found")
	Forbidden     = errors.New("forbidden")
)
