package domain

// Dignity grades a planet's placement strength from its sign and degree.
type Dignity string

const (
	DignityExalted      Dignity = "EXALTED"
	DignityMoolatrikona Dignity = "MOOLATRIKONA"
	DignityOwn          Dignity = "OWN"
	DignityFriendly     Dignity = "FRIENDLY"
	DignityNeutral      Dignity = "NEUTRAL"
	DignityEnemy        Dignity = "ENEMY"
	DignityDebilitated  Dignity = "DEBILITATED"
)

// String returns the string representation of Dignity.
func (d Dignity) String() string {
	return string(d)
}

// IsValid checks if the dignity is one of the seven grades.
func (d Dignity) IsValid() bool {
	switch d {
	case DignityExalted, DignityMoolatrikona, DignityOwn, DignityFriendly,
		DignityNeutral, DignityEnemy, DignityDebilitated:
		return true
	}
	return false
}

// Score maps the grade onto a 0..1 scale used by feature encoding and
// positional strength.
func (d Dignity) Score() float64 {
	switch d {
	case DignityExalted:
		return 1.0
	case DignityMoolatrikona:
		return 0.85
	case DignityOwn:
		return 0.7
	case DignityFriendly:
		return 0.55
	case DignityNeutral:
		return 0.4
	case DignityEnemy:
		return 0.25
	case DignityDebilitated:
		return 0.1
	}
	return 0
}
