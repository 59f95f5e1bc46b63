// Package dispatch turns a raw sensor package into the matching workout.
package dispatch

import (
	"fmt"
	"math"

	"github.com/okian/fitcalc/internal/domain/workout"
)

// Workout codes reported by the tracker.
const (
	CodeSwimming      = "SWM"
	CodeRunning       = "RUN"
	CodeSportsWalking = "WLK"
)

// Number of positional values each code expects.
const (
	swimmingFields      = 5
	runningFields       = 3
	sportsWalkingFields = 4
)

// Codes returns the recognized workout codes in sorted order.
func Codes() []string {
	return []string{CodeRunning, CodeSwimming, CodeSportsWalking}
}

// ReadPackage builds the workout selected by code from positional data.
//
// Data order per code:
//   - SWM: action, duration, weight, pool length, pool count
//   - RUN: action, duration, weight
//   - WLK: action, duration, weight, height
func ReadPackage(code string, data []float64) (workout.Workout, error) {
	switch code {
	case CodeSwimming:
		if err := expectFields(code, data, swimmingFields); err != nil {
			return nil, err
		}
		action, err := count(code, "action", data[0])
		if err != nil {
			return nil, err
		}
		laps, err := count(code, "pool count", data[4])
		if err != nil {
			return nil, err
		}
		swim, err := workout.NewSwimming(action, data[1], data[2], data[3], laps)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", code, err)
		}
		return swim, nil

	case CodeRunning:
		if err := expectFields(code, data, runningFields); err != nil {
			return nil, err
		}
		action, err := count(code, "action", data[0])
		if err != nil {
			return nil, err
		}
		run, err := workout.NewRunning(action, data[1], data[2])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", code, err)
		}
		return run, nil

	case CodeSportsWalking:
		if err := expectFields(code, data, sportsWalkingFields); err != nil {
			return nil, err
		}
		action, err := count(code, "action", data[0])
		if err != nil {
			return nil, err
		}
		walk, err := workout.NewSportsWalking(action, data[1], data[2], data[3])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", code, err)
		}
		return walk, nil

	default:
		return nil, &UnknownWorkoutCodeError{Code: code, Valid: Codes()}
	}
}

func expectFields(code string, data []float64, want int) error {
	if len(data) != want {
		return fmt.Errorf("%w: %s expects %d values, got %d", ErrMalformedPackage, code, want, len(data))
	}
	return nil
}

// maxExactCount bounds counts to the integers float64 represents exactly.
const maxExactCount = 1 << 53

// count converts a positional value that must hold a whole number.
func count(code, field string, v float64) (int, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) || v != math.Trunc(v) ||
		v > maxExactCount || v < -maxExactCount {
		return 0, fmt.Errorf("%w: %s %s must be a whole number, got %v", ErrMalformedPackage, code, field, v)
	}
	return int(v), nil
}
