package service

import "errors"

// Sentinel kinds for runner errors.
var (
	ErrWriteOutput = errors.New("write summary failed")
)
