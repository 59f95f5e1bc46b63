package workout

import "fmt"

// Calorie formula coefficients.
const (
	runSpeedMultiplier = 18
	runSpeedShift      = 20

	walkWeightMultiplier = 0.035
	walkSpeedMultiplier  = 0.029

	swimSpeedShift       = 1.1
	swimWeightMultiplier = 2
)

var (
	_ Workout = (*Running)(nil)
	_ Workout = (*SportsWalking)(nil)
	_ Workout = (*Swimming)(nil)
)

// Running is a running session.
type Running struct {
	training
}

// NewRunning builds a running workout from step count, hours and kilograms.
func NewRunning(action int, duration, weight float64) (*Running, error) {
	t, err := newTraining(action, duration, weight, landStepLength)
	if err != nil {
		return nil, err
	}
	return &Running{training: t}, nil
}

// Kind implements Workout.
func (*Running) Kind() Kind { return KindRunning }

// SpentCalories computes (18*speed - 20) * weight / 1000 * minutes.
func (r *Running) SpentCalories() float64 {
	return (runSpeedMultiplier*r.MeanSpeed() - runSpeedShift) *
		r.weight / metersPerKm * r.minutes()
}

// SportsWalking is a race-walking session.
type SportsWalking struct {
	training
	height float64
}

// NewSportsWalking builds a walking workout; height is in centimeters.
func NewSportsWalking(action int, duration, weight, height float64) (*SportsWalking, error) {
	t, err := newTraining(action, duration, weight, landStepLength)
	if err != nil {
		return nil, err
	}
	if err := positive("height", height); err != nil {
		return nil, err
	}
	return &SportsWalking{training: t, height: height}, nil
}

// Kind implements Workout.
func (*SportsWalking) Kind() Kind { return KindSportsWalking }

// Height returns the walker's height in centimeters.
func (w *SportsWalking) Height() float64 { return w.height }

// SpentCalories computes
// (0.035*weight + floor(speed^2 / height) * 0.029*weight) * minutes.
// The speed term is floored on purpose; reference outputs depend on it.
func (w *SportsWalking) SpentCalories() float64 {
	speed := w.MeanSpeed()
	ratio := floorDiv(speed*speed, w.height)
	return (walkWeightMultiplier*w.weight + ratio*walkSpeedMultiplier*w.weight) * w.minutes()
}

// Swimming is a pool swimming session.
type Swimming struct {
	training
	poolLength float64
	poolCount  int
}

// NewSwimming builds a swimming workout. poolLength is in meters and
// poolCount is the number of completed laps.
func NewSwimming(action int, duration, weight, poolLength float64, poolCount int) (*Swimming, error) {
	t, err := newTraining(action, duration, weight, strokeLength)
	if err != nil {
		return nil, err
	}
	if err := positive("pool length", poolLength); err != nil {
		return nil, err
	}
	if poolCount < 0 {
		return nil, fmt.Errorf("%w: pool count must not be negative, got %d", ErrInvalidMeasurement, poolCount)
	}
	return &Swimming{training: t, poolLength: poolLength, poolCount: poolCount}, nil
}

// Kind implements Workout.
func (*Swimming) Kind() Kind { return KindSwimming }

// MeanSpeed is derived from the pool laps, not from the stroke count.
func (s *Swimming) MeanSpeed() float64 {
	return s.poolLength * float64(s.poolCount) / metersPerKm / s.duration
}

// SpentCalories computes (speed + 1.1) * 2 * weight.
func (s *Swimming) SpentCalories() float64 {
	return (s.MeanSpeed() + swimSpeedShift) * swimWeightMultiplier * s.weight
}
