// Package model contains domain models passed between layers.
package model

// Package is one raw sensor package: a workout code followed by positional
// readings whose meaning depends on the code.
type Package struct {
	Code string    // workout code, e.g. "RUN"
	Data []float64 // readings in the order the code expects
}

// DefaultPackages returns the sample batch used when no input is configured.
func DefaultPackages() []Package {
	return []Package{
		{Code: "SWM", Data: []float64{720, 1, 80, 25, 40}},
		{Code: "RUN", Data: []float64{15000, 1, 75}},
		{Code: "WLK", Data: []float64{9000, 1, 75, 180}},
	}
}
