package domain

// Sign identifies one of the twelve sidereal zodiac signs, numbered
// 1 (Aries) through 12 (Pisces).
type Sign int

const (
	SignAries Sign = iota + 1
	SignTaurus
	SignGemini
	SignCancer
	SignLeo
	SignVirgo
	SignLibra
	SignScorpio
	SignSagittarius
	SignCapricorn
	SignAquarius
	SignPisces
)

var signNames = [...]string{
	"Aries", "Taurus", "Gemini", "Cancer", "Leo", "Virgo",
	"Libra", "Scorpio", "Sagittarius", "Capricorn", "Aquarius", "Pisces",
}

// SignRulers maps each sign to its classical ruling body. The lunar
// nodes rule no sign of their own.
var SignRulers = map[Sign]Body{
	SignAries:       BodyMars,
	SignTaurus:      BodyVenus,
	SignGemini:      BodyMercury,
	SignCancer:      BodyMoon,
	SignLeo:         BodySun,
	SignVirgo:       BodyMercury,
	SignLibra:       BodyVenus,
	SignScorpio:     BodyMars,
	SignSagittarius: BodyJupiter,
	SignCapricorn:   BodySaturn,
	SignAquarius:    BodySaturn,
	SignPisces:      BodyJupiter,
}

// Element identifies a sign's classical element.
type Element int

const (
	ElementFire Element = iota
	ElementEarth
	ElementAir
	ElementWater
)

// String returns the sign's traditional name, or "Unknown" outside 1..12.
func (s Sign) String() string {
	if !s.IsValid() {
		return "Unknown"
	}
	return signNames[s-1]
}

// IsValid checks if the sign index lies in 1..12.
func (s Sign) IsValid() bool {
	return s >= SignAries && s <= SignPisces
}

// Ruler returns the sign's classical ruling body.
func (s Sign) Ruler() Body {
	return SignRulers[s]
}

// IsOdd reports whether the sign is odd-numbered. Several divisional
// mappings branch on sign parity.
func (s Sign) IsOdd() bool {
	return s%2 == 1
}

// Element returns the sign's classical element, cycling fire, earth,
// air, water from Aries.
func (s Sign) Element() Element {
	return Element((int(s) - 1) % 4)
}

// Offset returns the sign n places after s, wrapping around the zodiac.
// Offset(0) is s itself; negative offsets walk backwards.
func (s Sign) Offset(n int) Sign {
	return Sign(((int(s)-1+n)%12+12)%12 + 1)
}

// SignDistance counts signs from a to b inclusive, in 1..12. A sign is
// at distance 1 from itself.
func SignDistance(from, to Sign) int {
	return (int(to)-int(from)+12)%12 + 1
}
