// Package timebase converts civil birth coordinates into the
// astronomical time base the rest of the pipeline runs on: a UTC
// instant, its Julian Day and the local sidereal time at the birth
// longitude.
package timebase

import (
	"errors"
	"fmt"
	"math"
	"time"

	"kundali-engine/internal/domain"
)

var (
	// ErrInvalidTimeZone is returned when the birth timezone is not a
	// resolvable IANA zone name.
	ErrInvalidTimeZone = errors.New("invalid time zone")

	// ErrCoordinateOutOfRange is returned when |lat| > 90 or |lon| > 180.
	ErrCoordinateOutOfRange = errors.New("coordinate out of range")
)

// Moment is the normalized time base for one birth.
type Moment struct {
	UTC       time.Time // resolved birth instant
	JulianDay float64
	GMST      float64 // Greenwich mean sidereal time, degrees [0,360)
	LST       float64 // local sidereal time, degrees [0,360)
	TimeKnown bool
}

// Normalize resolves a birth input's civil clock against its IANA zone
// and derives the astronomical time base. An untimed birth anchors to
// local noon and reports TimeKnown false.
func Normalize(input domain.BirthInput) (Moment, error) {
	if input.Latitude < -90 || input.Latitude > 90 {
		return Moment{}, fmt.Errorf("%w: latitude %.4f outside [-90,90]", ErrCoordinateOutOfRange, input.Latitude)
	}
	if input.Longitude < -180 || input.Longitude > 180 {
		return Moment{}, fmt.Errorf("%w: longitude %.4f outside [-180,180]", ErrCoordinateOutOfRange, input.Longitude)
	}
	// time.LoadLocation treats "" as UTC, which would hide a missing field.
	if input.Timezone == "" {
		return Moment{}, fmt.Errorf("%w: empty zone name", ErrInvalidTimeZone)
	}
	loc, err := time.LoadLocation(input.Timezone)
	if err != nil {
		return Moment{}, fmt.Errorf("%w: %q", ErrInvalidTimeZone, input.Timezone)
	}

	hour, minute, second, known := input.Clock()
	if !known {
		hour, minute, second = 12, 0, 0
	}
	local := time.Date(input.Year, time.Month(input.Month), input.Day, hour, minute, second, 0, loc)
	utc := local.UTC()

	jd := JulianDay(utc)
	gmst := GMST(jd)
	return Moment{
		UTC:       utc,
		JulianDay: jd,
		GMST:      gmst,
		LST:       norm360(gmst + input.Longitude),
		TimeKnown: known,
	}, nil
}

// JulianDay converts a UTC instant to its Julian Day number using the
// standard Gregorian conversion (Meeus, Astronomical Algorithms ch. 7).
func JulianDay(t time.Time) float64 {
	t = t.UTC()
	year := float64(t.Year())
	month := float64(t.Month())
	day := float64(t.Day()) + dayFraction(t)
	if month <= 2 {
		year--
		month += 12
	}
	a := math.Floor(year / 100)
	b := 2 - a + math.Floor(a/4)
	return math.Floor(365.25*(year+4716)) + math.Floor(30.6001*(month+1)) + day + b - 1524.5
}

// GMST returns Greenwich mean sidereal time in degrees for a Julian Day
// (Meeus ch. 12).
func GMST(jd float64) float64 {
	d := jd - 2451545.0
	t := d / 36525.0
	gmst := 280.46061837 + 360.98564736629*d + 0.000387933*t*t - t*t*t/38710000.0
	return norm360(gmst)
}

func dayFraction(t time.Time) float64 {
	seconds := float64(t.Hour())*3600 + float64(t.Minute())*60 + float64(t.Second()) + float64(t.Nanosecond())/1e9
	return seconds / 86400.0
}

func norm360(d float64) float64 {
	d = math.Mod(d, 360)
	if d < 0 {
		d += 360
	}
	return d
}
