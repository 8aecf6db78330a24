package errors

import "errors"

var (
	ErrEmptyBusinessCode = errors.New("reference business code is empty")
	ErrUnknownDomain     = errors.New("reference domain is not recognized")
)
