package domain

import "time"

// Kundali is the aggregate root: everything computed for one birth
// input. Immutable once assembled; recomputing the same input yields an
// equal value, which is what makes ChartID a safe memoization key.
type Kundali struct {
	ChartID     string                  `json:"chart_id"` // content hash of the birth input
	Input       BirthInput              `json:"input"`
	BirthUTC    time.Time               `json:"birth_utc"`
	JulianDay   float64                 `json:"julian_day"`
	Ayanamsa    float64                 `json:"ayanamsa"` // degrees subtracted from tropical longitudes
	TimeKnown   bool                    `json:"time_known"`
	Ascendant   Ascendant               `json:"ascendant"`
	Planets     []Planet                `json:"planets"` // canonical body order
	Houses      []House                 `json:"houses"`  // houses 1..12
	Aspects     []Aspect                `json:"aspects,omitempty"`
	Yogas       []Yoga                  `json:"yogas,omitempty"`
	Dasha       Dasha                   `json:"dasha"`
	ShadBala    map[Body]ShadBalaScore  `json:"shad_bala"`
	Divisionals map[int]DivisionalChart `json:"divisionals,omitempty"` // keyed by division factor
}

// Planet returns the placement for one body.
func (k *Kundali) Planet(b Body) (Planet, bool) {
	for _, p := range k.Planets {
		if p.Body == b {
			return p, true
		}
	}
	return Planet{}, false
}

// House returns one house by its number 1..12.
func (k *Kundali) House(n int) (House, bool) {
	if n < 1 || n > len(k.Houses) {
		return House{}, false
	}
	return k.Houses[n-1], true
}
