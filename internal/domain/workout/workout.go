// Package workout defines the workout variants and the formulas that turn raw
// sensor readings into distance, mean speed and spent calories.
package workout

import (
	"fmt"
	"math"
)

// Shared unit constants.
const (
	metersPerKm    = 1000
	minutesPerHour = 60

	// landStepLength is the distance covered by one step, in meters.
	landStepLength = 0.65
	// strokeLength is the distance covered by one swimming stroke, in meters.
	strokeLength = 1.38
)

// Kind identifies a workout variant.
type Kind int

// Supported workout kinds.
const (
	KindRunning Kind = iota + 1
	KindSportsWalking
	KindSwimming
)

func (k Kind) String() string {
	switch k {
	case KindRunning:
		return "running"
	case KindSportsWalking:
		return "sports_walking"
	case KindSwimming:
		return "swimming"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Workout is one exercise session together with its computation rules.
// Implementations are immutable once constructed.
type Workout interface {
	// Kind reports which variant this workout is.
	Kind() Kind
	// Duration returns the session length in hours.
	Duration() float64
	// Distance returns the covered distance in kilometers.
	Distance() float64
	// MeanSpeed returns the mean speed in km/h.
	MeanSpeed() float64
	// SpentCalories returns the burned kilocalories.
	SpentCalories() float64
}

// training holds the fields and default formulas shared by every variant.
type training struct {
	action     int
	duration   float64
	weight     float64
	stepLength float64
}

func newTraining(action int, duration, weight, stepLength float64) (training, error) {
	if action < 0 {
		return training{}, fmt.Errorf("%w: action must not be negative, got %d", ErrInvalidMeasurement, action)
	}
	if err := positive("duration", duration); err != nil {
		return training{}, err
	}
	if err := positive("weight", weight); err != nil {
		return training{}, err
	}
	return training{
		action:     action,
		duration:   duration,
		weight:     weight,
		stepLength: stepLength,
	}, nil
}

// Duration returns the session length in hours.
func (t training) Duration() float64 { return t.duration }

// Distance returns action * step length, in kilometers.
func (t training) Distance() float64 {
	return float64(t.action) * t.stepLength / metersPerKm
}

// MeanSpeed returns Distance over Duration, in km/h.
func (t training) MeanSpeed() float64 {
	return t.Distance() / t.duration
}

func (t training) minutes() float64 {
	return t.duration * minutesPerHour
}

// positive rejects zero, negative and non-finite measurements.
func positive(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return fmt.Errorf("%w: %s must be a positive number, got %v", ErrInvalidMeasurement, field, v)
	}
	return nil
}

// floorDiv returns the floor of the exact quotient a/b. Flooring a/b after
// the division can be off by one when the quotient rounds up to a whole
// number, so the result is derived from the remainder instead.
func floorDiv(a, b float64) float64 {
	mod := math.Mod(a, b)
	div := (a - mod) / b
	if mod != 0 && (b < 0) != (mod < 0) {
		div--
	}
	if div == 0 {
		return math.Copysign(0, a/b)
	}
	fd := math.Floor(div)
	if div-fd > 0.5 {
		fd++
	}
	return fd
}
