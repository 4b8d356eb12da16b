package compiler

import "errors"

var (
	ErrContentNil         = errors.New("aspect content is nil")
	ErrNoInstructions     = errors.New("aspect script has no content")
	ErrExecCreationFailed = errors.New("unable to create aspect executable")
)
