// Package chart computes the positional core of a Kundali: the
// Ascendant, sidereal planet placements and whole-sign houses.
//
// House policy is Whole Sign: the Ascendant's sign is the first house
// and each following sign the next. An exact boundary longitude belongs
// to the later sign, so cusp ties resolve deterministically.
package chart

import (
	"errors"
	"fmt"
	"math"

	"kundali-engine/internal/domain"
	"kundali-engine/internal/ephemeris"
	"kundali-engine/internal/timebase"
)

// ErrDegenerateHouseSystem is returned for births beyond the polar
// circles, where horizon-based house math turns unstable.
var ErrDegenerateHouseSystem = errors.New("degenerate house system")

// MaxHouseLatitude bounds the latitudes the house system accepts.
const MaxHouseLatitude = 66.5

const (
	deg2rad = math.Pi / 180
	rad2deg = 180 / math.Pi
)

// Frame is the positional core of a chart before derived analysis.
// Dignity, combustion and aspect fields on the planets are filled by
// later stages.
type Frame struct {
	Ascendant domain.Ascendant
	Planets   []domain.Planet // canonical body order
	Houses    []domain.House  // houses 1..12
	Ayanamsa  float64         // degrees subtracted from tropical longitudes
}

// Builder turns normalized birth moments into chart frames.
type Builder struct {
	source   ephemeris.Source
	ayanamsa AyanamsaModel
}

// NewBuilder returns a Builder over the given ephemeris source and
// ayanamsa model.
func NewBuilder(source ephemeris.Source, model AyanamsaModel) *Builder {
	return &Builder{source: source, ayanamsa: model}
}

// Build computes the frame for one birth moment at the given latitude.
func (b *Builder) Build(m timebase.Moment, latitude float64) (*Frame, error) {
	if math.Abs(latitude) > MaxHouseLatitude {
		return nil, fmt.Errorf("%w: latitude %.4f beyond ±%.1f", ErrDegenerateHouseSystem, latitude, MaxHouseLatitude)
	}

	t := (m.JulianDay - 2451545.0) / 36525.0
	ayan := b.ayanamsa.Degrees(m.JulianDay)
	eps := meanObliquity(t)

	conf := domain.ConfidenceFull
	if !m.TimeKnown {
		conf = domain.ConfidenceLow
	}

	ascSid := norm360(ascendantLongitude(m.LST, latitude, eps) - ayan)
	ascSign := SignOf(ascSid)
	asc := domain.Ascendant{
		Longitude:  ascSid,
		Sign:       ascSign,
		Degree:     DegreeInSign(ascSid),
		Nakshatra:  NakshatraOf(ascSid),
		Pada:       PadaOf(ascSid),
		Ruler:      ascSign.Ruler(),
		Confidence: conf,
	}

	planets := make([]domain.Planet, 0, len(domain.Bodies))
	for _, body := range domain.Bodies {
		pos, err := b.source.Position(body, m.JulianDay)
		if err != nil {
			return nil, fmt.Errorf("ephemeris position %s: %w", body, err)
		}
		sid := norm360(pos.Longitude - ayan)
		sign := SignOf(sid)
		planets = append(planets, domain.Planet{
			Body:        body,
			Longitude:   sid,
			TropicalLon: pos.Longitude,
			Sign:        sign,
			Degree:      DegreeInSign(sid),
			Nakshatra:   NakshatraOf(sid),
			Pada:        PadaOf(sid),
			House:       domain.SignDistance(ascSign, sign),
			Speed:       pos.Speed,
			Retrograde:  pos.Speed < 0,
		})
	}

	houses := make([]domain.House, 0, 12)
	for n := 1; n <= 12; n++ {
		sign := ascSign.Offset(n - 1)
		house := domain.House{
			Number:     n,
			Sign:       sign,
			Ruler:      sign.Ruler(),
			Cusp:       float64(int(sign)-1) * 30,
			Confidence: conf,
		}
		for _, p := range planets {
			if p.House == n {
				house.Occupants = append(house.Occupants, p.Body)
			}
		}
		houses = append(houses, house)
	}

	return &Frame{
		Ascendant: asc,
		Planets:   planets,
		Houses:    houses,
		Ayanamsa:  ayan,
	}, nil
}

// SignOf returns the sign holding a sidereal longitude. An exact
// boundary belongs to the later sign.
func SignOf(lon float64) domain.Sign {
	return domain.Sign(int(math.Floor(norm360(lon)/30)) + 1)
}

// DegreeInSign returns the degree within the sign, [0,30).
func DegreeInSign(lon float64) float64 {
	return math.Mod(norm360(lon), 30)
}

// NakshatraOf returns the lunar mansion holding a sidereal longitude.
func NakshatraOf(lon float64) domain.Nakshatra {
	return domain.Nakshatra(int(math.Floor(norm360(lon)/(360.0/27))) + 1)
}

// PadaOf returns the quarter of the mansion holding a sidereal
// longitude, 1..4.
func PadaOf(lon float64) int {
	within := math.Mod(norm360(lon), 360.0/27)
	return int(math.Floor(within/(360.0/108))) + 1
}

// ascendantLongitude returns the tropical ecliptic degree rising on the
// eastern horizon for a given RAMC, geographic latitude and obliquity,
// all in degrees.
func ascendantLongitude(ramc, latitude, eps float64) float64 {
	r := ramc * deg2rad
	phi := latitude * deg2rad
	e := eps * deg2rad
	lam := math.Atan2(math.Cos(r), -(math.Sin(r)*math.Cos(e) + math.Tan(phi)*math.Sin(e)))
	return norm360(lam * rad2deg)
}

// meanObliquity returns the mean obliquity of the ecliptic in degrees
// (Meeus 22.2); t is Julian centuries from J2000.
func meanObliquity(t float64) float64 {
	return 23.43929111 - 0.013004167*t - 1.638889e-7*t*t + 5.036111e-7*t*t*t
}

func norm360(d float64) float64 {
	d = math.Mod(d, 360)
	if d < 0 {
		d += 360
	}
	return d
}
