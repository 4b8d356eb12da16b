package parse

import "errors"

var (
	ErrMalformedDeclaration = errors.New("malformed declaration")
	ErrMalformedCondition   = errors.New("malformed condition")
	ErrMalformedComparison  = errors.New("malformed comparison")
	ErrMalformedAction      = errors.New("malformed action")
)
