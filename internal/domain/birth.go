package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrMalformedBirthInput is returned when a birth input misses required
// fields or carries a date or clock that does not exist.
var ErrMalformedBirthInput = errors.New("malformed birth input")

// BirthInput carries the civil birth coordinates a chart is computed
// from. Construct through NewTimedBirth or NewUntimedBirth; a zero
// value is not a valid input.
type BirthInput struct {
	Year      int     `json:"year"`
	Month     int     `json:"month"` // 1..12
	Day       int     `json:"day"`   // valid day for the month
	Hour      int     `json:"hour"`  // meaningful only when TimeKnown
	Minute    int     `json:"minute"`
	Second    int     `json:"second"`
	TimeKnown bool    `json:"time_known"`
	Latitude  float64 `json:"latitude"`  // degrees, north positive
	Longitude float64 `json:"longitude"` // degrees, east positive
	Timezone  string  `json:"timezone"`  // IANA zone name
}

// NewTimedBirth builds a birth input with a known civil clock time.
func NewTimedBirth(year, month, day, hour, minute, second int, lat, lon float64, timezone string) (BirthInput, error) {
	b := BirthInput{
		Year: year, Month: month, Day: day,
		Hour: hour, Minute: minute, Second: second, TimeKnown: true,
		Latitude: lat, Longitude: lon, Timezone: timezone,
	}
	if err := b.Validate(); err != nil {
		return BirthInput{}, err
	}
	return b, nil
}

// NewUntimedBirth builds a birth input with an unknown clock time. The
// chart anchors to local noon and every time-derived field carries low
// confidence.
func NewUntimedBirth(year, month, day int, lat, lon float64, timezone string) (BirthInput, error) {
	b := BirthInput{
		Year: year, Month: month, Day: day,
		Latitude: lat, Longitude: lon, Timezone: timezone,
	}
	if err := b.Validate(); err != nil {
		return BirthInput{}, err
	}
	return b, nil
}

// Validate checks the input's shape: the date must exist, a known clock
// must be a real time of day and the timezone must be present. Zone
// resolution and coordinate ranges are checked by the time normalizer.
func (b BirthInput) Validate() error {
	d := time.Date(b.Year, time.Month(b.Month), b.Day, 0, 0, 0, 0, time.UTC)
	if d.Year() != b.Year || d.Month() != time.Month(b.Month) || d.Day() != b.Day {
		return fmt.Errorf("%w: no such date %04d-%02d-%02d", ErrMalformedBirthInput, b.Year, b.Month, b.Day)
	}
	if b.TimeKnown && (b.Hour < 0 || b.Hour > 23 || b.Minute < 0 || b.Minute > 59 || b.Second < 0 || b.Second > 59) {
		return fmt.Errorf("%w: no such clock time %02d:%02d:%02d", ErrMalformedBirthInput, b.Hour, b.Minute, b.Second)
	}
	if b.Timezone == "" {
		return fmt.Errorf("%w: missing timezone", ErrMalformedBirthInput)
	}
	return nil
}

// Clock returns the civil birth time. ok is false for untimed births,
// whose clock fields must not be read.
func (b BirthInput) Clock() (hour, minute, second int, ok bool) {
	if !b.TimeKnown {
		return 0, 0, 0, false
	}
	return b.Hour, b.Minute, b.Second, true
}
