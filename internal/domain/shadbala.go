package domain

// ShadBalaScore carries the six component strengths and their weighted
// aggregate for one planet, each on a 0..100 scale.
type ShadBalaScore struct {
	Sthana       float64 `json:"sthana"`     // positional
	Dig          float64 `json:"dig"`        // directional
	Kala         float64 `json:"kala"`       // temporal
	Cheshta      float64 `json:"cheshta"`    // motional
	Naisargika   float64 `json:"naisargika"` // innate
	Drik         float64 `json:"drik"`       // aspectual
	Total        float64 `json:"total"`      // weighted aggregate
	MeetsMinimum bool    `json:"meets_minimum"`
}
