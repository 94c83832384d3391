package domain

// Nakshatra identifies one of the 27 lunar mansions, numbered
// 1 (Ashwini) through 27 (Revati). Each mansion spans 13°20′ and splits
// into four padas of 3°20′.
type Nakshatra int

var nakshatraNames = [...]string{
	"Ashwini", "Bharani", "Krittika", "Rohini", "Mrigashira", "Ardra",
	"Punarvasu", "Pushya", "Ashlesha", "Magha", "Purva Phalguni",
	"Uttara Phalguni", "Hasta", "Chitra", "Swati", "Vishakha", "Anuradha",
	"Jyeshtha", "Mula", "Purva Ashadha", "Uttara Ashadha", "Shravana",
	"Dhanishta", "Shatabhisha", "Purva Bhadrapada", "Uttara Bhadrapada",
	"Revati",
}

// VimshottariLords is the fixed nine-lord cycle of the Vimshottari
// dasha, beginning with Ketu. Nakshatra lords repeat this cycle three
// times across the 27 mansions.
var VimshottariLords = []Body{
	BodyKetu, BodyVenus, BodySun, BodyMoon, BodyMars,
	BodyRahu, BodyJupiter, BodySaturn, BodyMercury,
}

// VimshottariYears maps each lord to its major period length in years.
// The nine periods sum to the full 120 year cycle.
var VimshottariYears = map[Body]float64{
	BodyKetu:    7,
	BodyVenus:   20,
	BodySun:     6,
	BodyMoon:    10,
	BodyMars:    7,
	BodyRahu:    18,
	BodyJupiter: 16,
	BodySaturn:  19,
	BodyMercury: 17,
}

// String returns the nakshatra's traditional name, or "Unknown" outside
// 1..27.
func (n Nakshatra) String() string {
	if !n.IsValid() {
		return "Unknown"
	}
	return nakshatraNames[n-1]
}

// IsValid checks if the nakshatra index lies in 1..27.
func (n Nakshatra) IsValid() bool {
	return n >= 1 && n <= 27
}

// Lord returns the nakshatra's Vimshottari lord.
func (n Nakshatra) Lord() Body {
	return VimshottariLords[(int(n)-1)%len(VimshottariLords)]
}
