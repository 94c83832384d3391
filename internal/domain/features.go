package domain

// FeatureVectorLen is the frozen length of the numeric chart encoding.
// Changing it, or the meaning of any slot, is a version bump in the
// features package, never an in-place edit.
const FeatureVectorLen = 53

// FeatureVector is the fixed-order numeric encoding of one Kundali,
// consumed by the prediction side.
// Corresponds to chart_features table in ClickHouse.
type FeatureVector struct {
	ChartID    string    // Kundali content hash
	Version    int32     // layout version
	Values     []float64 // exactly FeatureVectorLen values, order frozen
	ComputedAt int64     // Unix timestamp in milliseconds
}
