package domain

// Confidence marks how precisely a time-derived field is known. Untimed
// births degrade every field that depends on the birth clock.
type Confidence string

const (
	ConfidenceFull Confidence = "FULL"
	ConfidenceLow  Confidence = "LOW"
)

// String returns the string representation of Confidence.
func (c Confidence) String() string {
	return string(c)
}

// IsValid checks if the confidence is a valid value.
func (c Confidence) IsValid() bool {
	return c == ConfidenceFull || c == ConfidenceLow
}
