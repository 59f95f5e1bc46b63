// Package summary renders computed workout metrics as a fixed-template
// message.
package summary

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/okian/fitcalc/internal/domain/workout"
)

// Every rendered number carries exactly this many fractional digits.
const fractionDigits = 3

// Locale selects the template wording and workout labels.
type Locale string

// Supported locales.
const (
	LocaleEN Locale = "en"
	LocaleRU Locale = "ru"
)

// ParseLocale validates a locale name, case-insensitively.
func ParseLocale(s string) (Locale, error) {
	switch l := Locale(strings.ToLower(strings.TrimSpace(s))); l {
	case LocaleEN, LocaleRU:
		return l, nil
	case "":
		return LocaleEN, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownLocale, s)
	}
}

var templates = map[Locale]string{
	LocaleEN: "Training type: %s; Duration: %s h; Distance: %s km; Mean speed: %s km/h; Calories burned: %s.",
	LocaleRU: "Тип тренировки: %s; Длительность: %s ч.; Дистанция: %s км; Ср. скорость: %s км/ч; Потрачено ккал: %s.",
}

var labels = map[Locale]map[workout.Kind]string{
	LocaleEN: {
		workout.KindRunning:       "Running",
		workout.KindSportsWalking: "Sports walking",
		workout.KindSwimming:      "Swimming",
	},
	LocaleRU: {
		workout.KindRunning:       "Бег",
		workout.KindSportsWalking: "Спортивная ходьба",
		workout.KindSwimming:      "Плавание",
	},
}

// Label returns the human-readable name of a workout kind. Unknown locales
// fall back to English and unknown kinds to the kind's identifier.
func Label(kind workout.Kind, locale Locale) string {
	byKind, ok := labels[locale]
	if !ok {
		byKind = labels[LocaleEN]
	}
	if label, ok := byKind[kind]; ok {
		return label
	}
	return kind.String()
}

// Message is the summary of one workout.
type Message struct {
	Kind     workout.Kind
	Duration float64 // hours
	Distance float64 // km
	Speed    float64 // km/h
	Calories float64 // kcal
}

// ShowTrainingInfo computes the summary of w. It has no side effects.
func ShowTrainingInfo(w workout.Workout) Message {
	return Message{
		Kind:     w.Kind(),
		Duration: w.Duration(),
		Distance: w.Distance(),
		Speed:    w.MeanSpeed(),
		Calories: w.SpentCalories(),
	}
}

// Render formats the message in the given locale.
func (m Message) Render(locale Locale) string {
	tmpl, ok := templates[locale]
	if !ok {
		locale = LocaleEN
		tmpl = templates[LocaleEN]
	}
	return fmt.Sprintf(tmpl,
		Label(m.Kind, locale),
		FormatFixed(m.Duration),
		FormatFixed(m.Distance),
		FormatFixed(m.Speed),
		FormatFixed(m.Calories),
	)
}

// String renders the message in English.
func (m Message) String() string {
	return m.Render(LocaleEN)
}

// FormatFixed renders v with three fractional digits. Rounding is half away
// from zero and applies to the shortest decimal form of v, so 2.3455 becomes
// "2.346" even though its binary value is slightly below the midpoint.
func FormatFixed(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', fractionDigits, 64)
	}
	return decimal.NewFromFloat(v).StringFixed(fractionDigits)
}
