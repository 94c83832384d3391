package domain

// DivisionalChart is a harmonic sub-chart: the same structural shape as
// the main chart, recomputed under one division factor and
// independently owned.
type DivisionalChart struct {
	Factor    int       `json:"factor"` // harmonic number, e.g. 9 for the navamsa
	Ascendant Ascendant `json:"ascendant"`
	Planets   []Planet  `json:"planets"`         // canonical body order
	Houses    []House   `json:"houses"`          // houses 1..12
	Yogas     []Yoga    `json:"yogas,omitempty"` // present when detection re-ran for this division
}
