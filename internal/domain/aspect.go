package domain

// AspectType names the recognized angular relationships.
type AspectType string

const (
	AspectConjunction AspectType = "CONJUNCTION"
	AspectSextile     AspectType = "SEXTILE"
	AspectSquare      AspectType = "SQUARE"
	AspectTrine       AspectType = "TRINE"
	AspectOpposition  AspectType = "OPPOSITION"
)

// String returns the string representation of AspectType.
func (t AspectType) String() string {
	return string(t)
}

// IsValid checks if the aspect type is a recognized value.
func (t AspectType) IsValid() bool {
	switch t {
	case AspectConjunction, AspectSextile, AspectSquare, AspectTrine, AspectOpposition:
		return true
	}
	return false
}

// Angle returns the exact angular separation of the aspect type in
// degrees.
func (t AspectType) Angle() float64 {
	switch t {
	case AspectConjunction:
		return 0
	case AspectSextile:
		return 60
	case AspectSquare:
		return 90
	case AspectTrine:
		return 120
	case AspectOpposition:
		return 180
	}
	return -1
}

// Aspect records one angular relationship between two planets. The
// reciprocal view swaps From and To with the same type, orb, strength
// and approach direction.
type Aspect struct {
	From     Body       `json:"from"`
	To       Body       `json:"to"`
	Type     AspectType `json:"type"`
	Orb      float64    `json:"orb"`      // degrees off the exact angle
	Applying bool       `json:"applying"` // separation still closing at birth
	Strength float64    `json:"strength"` // 0..100, linear decay across the orb
}
