package domain

// Ascendant describes the rising degree that anchors the house system.
// Derived once per chart; never mutated.
type Ascendant struct {
	Longitude  float64    `json:"longitude"` // sidereal, degrees [0,360)
	Sign       Sign       `json:"sign"`
	Degree     float64    `json:"degree"` // within sign [0,30)
	Nakshatra  Nakshatra  `json:"nakshatra"`
	Pada       int        `json:"pada"`  // 1..4
	Ruler      Body       `json:"ruler"` // ruling body of the rising sign
	Confidence Confidence `json:"confidence"`
}

// Planet represents one graha's placement on a chart. Owned exclusively
// by its Kundali; never shared or mutated after construction.
type Planet struct {
	Body        Body      `json:"body"`
	Longitude   float64   `json:"longitude"`          // sidereal, degrees [0,360)
	TropicalLon float64   `json:"tropical_longitude"` // tropical of date, degrees [0,360)
	Sign        Sign      `json:"sign"`
	Degree      float64   `json:"degree"` // within sign [0,30)
	Nakshatra   Nakshatra `json:"nakshatra"`
	Pada        int       `json:"pada"`  // 1..4
	House       int       `json:"house"` // 1..12
	Speed       float64   `json:"speed"` // degrees per day, negative when retrograde
	Retrograde  bool      `json:"retrograde"`
	Combust     bool      `json:"combust"`
	Dignity     Dignity   `json:"dignity"`
	Aspects     []Aspect  `json:"aspects,omitempty"` // aspects this planet casts
}

// House represents one house counted from the Ascendant. Placements
// inherit the Ascendant's precision, so houses carry their own
// confidence mark.
type House struct {
	Number     int        `json:"number"` // 1..12
	Sign       Sign       `json:"sign"`
	Ruler      Body       `json:"ruler"`
	Occupants  []Body     `json:"occupants,omitempty"` // canonical body order
	Cusp       float64    `json:"cusp"`                // sidereal cusp longitude, degrees
	Confidence Confidence `json:"confidence"`
}

// Kendra houses are the four angles; Trikona houses the three trines.
// Both sets recur across yoga rules and feature encoding.
var (
	KendraHouses  = []int{1, 4, 7, 10}
	TrikonaHouses = []int{1, 5, 9}
)

// IsKendra reports whether house number n is an angular house.
func IsKendra(n int) bool {
	return n == 1 || n == 4 || n == 7 || n == 10
}

// IsTrikona reports whether house number n is a trine house.
func IsTrikona(n int) bool {
	return n == 1 || n == 5 || n == 9
}
