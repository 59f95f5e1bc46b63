package workout

import "errors"

// Sentinel kinds for workout construction errors.
var (
	ErrInvalidMeasurement = errors.New("invalid measurement")
)
