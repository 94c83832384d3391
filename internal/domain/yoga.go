package domain

// YogaPolarity classifies a matched yoga's overall effect.
type YogaPolarity string

const (
	YogaBenefic YogaPolarity = "BENEFIC"
	YogaMalefic YogaPolarity = "MALEFIC"
	YogaNeutral YogaPolarity = "NEUTRAL"
)

// String returns the string representation of YogaPolarity.
func (p YogaPolarity) String() string {
	return string(p)
}

// IsValid checks if the polarity is a valid value.
func (p YogaPolarity) IsValid() bool {
	return p == YogaBenefic || p == YogaMalefic || p == YogaNeutral
}

// Yoga records one matched classical planetary combination.
type Yoga struct {
	Name         string       `json:"name"`
	Polarity     YogaPolarity `json:"polarity"`
	Participants []Body       `json:"participants"`
	House        int          `json:"house"`    // anchoring house, 0 when none applies
	Strength     float64      `json:"strength"` // 0..100
}
