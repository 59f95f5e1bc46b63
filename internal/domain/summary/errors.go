package summary

import "errors"

// Sentinel kinds for summary errors.
var (
	ErrUnknownLocale = errors.New("unknown locale")
)
