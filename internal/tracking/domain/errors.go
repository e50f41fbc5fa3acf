package domain

import "errors"

var (
	ErrUnknownStatus   = errors.New("unknown sample status")
	ErrProjectNotFound = errors.New("project not found")
)
