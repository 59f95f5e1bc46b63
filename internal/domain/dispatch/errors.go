package dispatch

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel kinds for dispatch errors.
var (
	ErrUnknownWorkoutCode = errors.New("unknown workout code")
	ErrMalformedPackage   = errors.New("malformed package")
)

// UnknownWorkoutCodeError reports a code outside the dispatch table.
type UnknownWorkoutCodeError struct {
	Code  string
	Valid []string
}

func (e *UnknownWorkoutCodeError) Error() string {
	return fmt.Sprintf("%s %q, expected one of %s", ErrUnknownWorkoutCode, e.Code, strings.Join(e.Valid, ", "))
}

// Is lets errors.Is match ErrUnknownWorkoutCode.
func (e *UnknownWorkoutCodeError) Is(target error) bool {
	return target == ErrUnknownWorkoutCode
}
