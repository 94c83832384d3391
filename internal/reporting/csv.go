package reporting

import (
	"fmt"
	"strconv"
	"strings"

	"kundali-engine/internal/domain"
	"kundali-engine/internal/features"
)

// RenderFeatureCSV renders feature vectors as a CSV string. Values use
// the shortest representation that parses back to the same float64, so
// the export round-trips bit for bit.
func RenderFeatureCSV(vectors []*domain.FeatureVector) string {
	var sb strings.Builder

	// Header
	sb.WriteString("chart_id,version,computed_at_ms,")
	sb.WriteString(strings.Join(features.Names(), ","))
	sb.WriteString("\n")

	// Rows
	for _, v := range vectors {
		sb.WriteString(fmt.Sprintf("%s,%d,%d", v.ChartID, v.Version, v.ComputedAt))
		for _, value := range v.Values {
			sb.WriteString(",")
			sb.WriteString(strconv.FormatFloat(value, 'g', -1, 64))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
