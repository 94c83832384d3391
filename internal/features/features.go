// Package features encodes a computed Kundali into the fixed-order
// numeric vector consumed by the prediction side.
//
// The layout is frozen. Every slot's position, meaning and
// normalization is part of layout version 1; any change to any of them
// ships as a new Version value, never as an in-place edit, so stored
// vectors stay comparable within a version.
package features

import (
	"fmt"
	"strings"
	"time"

	"kundali-engine/internal/domain"
)

// Version is the feature layout version stamped on every extracted
// vector.
const Version int32 = 1

// Slot layout, version 1. Slots 0..3 encode the birth input, 4..7 the
// ascendant, 8..43 the nine planets in canonical order at four slots
// each, 44..52 chart-level aggregates.
const (
	slotTimeKnown      = 0
	slotLatitude       = 1
	slotLongitude      = 2
	slotEpoch          = 3
	slotAscendant      = 4
	slotPlanets        = 8
	slotAspectDensity  = 44
	slotBeneficAspects = 45
	slotYogaCount      = 46
	slotYogaNet        = 47
	slotKendra         = 48
	slotTrikona        = 49
	slotDashaBalance   = 50
	slotShadBalaMean   = 51
	slotMaleficYoga    = 52

	planetSlotWidth = 4
)

// maxAspectPairs is the number of unordered planet pairs, the densest
// aspect list a chart can carry.
const maxAspectPairs = 36

// yogaCatalogSize is the rule catalog size frozen into layout version
// 1. The yoga count slot divides by this value; growing the catalog is
// a layout change and bumps Version.
const yogaCatalogSize = 19

// epochJD2000 anchors the epoch slot; slot 3 is Julian centuries from
// J2000, the same time scale the ephemeris polynomials run on.
const epochJD2000 = 2451545.0

// Extract encodes one Kundali into the frozen vector. The Kundali must
// be complete: all nine planets placed and scored. at stamps the
// vector's computation time.
func Extract(k *domain.Kundali, at time.Time) (domain.FeatureVector, error) {
	v := make([]float64, domain.FeatureVectorLen)

	v[slotTimeKnown] = boolSlot(k.TimeKnown)
	v[slotLatitude] = k.Input.Latitude / 90
	v[slotLongitude] = k.Input.Longitude / 180
	v[slotEpoch] = (k.JulianDay - epochJD2000) / 36525

	v[slotAscendant+0] = float64(int(k.Ascendant.Sign)) / 12
	v[slotAscendant+1] = k.Ascendant.Degree / 30
	v[slotAscendant+2] = float64(k.Ascendant.Nakshatra) / 27
	v[slotAscendant+3] = float64(k.Ascendant.Pada) / 4

	for i, body := range domain.Bodies {
		p, ok := k.Planet(body)
		if !ok {
			return domain.FeatureVector{}, fmt.Errorf("extract features: %s not placed", body)
		}
		base := slotPlanets + i*planetSlotWidth
		v[base+0] = float64(int(p.Sign)) / 12
		v[base+1] = float64(p.House) / 12
		v[base+2] = dignityScore(p)
		v[base+3] = boolSlot(p.Retrograde)
	}

	v[slotAspectDensity] = float64(len(k.Aspects)) / maxAspectPairs
	v[slotBeneficAspects] = float64(beneficAspects(k.Aspects)) / maxAspectPairs

	v[slotYogaCount] = float64(len(k.Yogas)) / yogaCatalogSize
	v[slotYogaNet] = netYogaStrength(k.Yogas)
	v[slotMaleficYoga] = boolSlot(hasMaleficYoga(k.Yogas))

	kendra, trikona := houseOccupancy(k.Planets)
	v[slotKendra] = float64(kendra) / float64(len(domain.Bodies))
	v[slotTrikona] = float64(trikona) / float64(len(domain.Bodies))

	v[slotDashaBalance] = dashaBalanceFraction(k.Dasha)

	mean, err := shadBalaMean(k.ShadBala)
	if err != nil {
		return domain.FeatureVector{}, err
	}
	v[slotShadBalaMean] = mean / 100

	return domain.FeatureVector{
		ChartID:    k.ChartID,
		Version:    Version,
		Values:     v,
		ComputedAt: at.UnixMilli(),
	}, nil
}

// Names returns the slot-name table parallel to the vector, in slot
// order.
func Names() []string {
	names := make([]string, domain.FeatureVectorLen)
	names[slotTimeKnown] = "time_known"
	names[slotLatitude] = "latitude"
	names[slotLongitude] = "longitude"
	names[slotEpoch] = "epoch_centuries"
	names[slotAscendant+0] = "asc_sign"
	names[slotAscendant+1] = "asc_degree"
	names[slotAscendant+2] = "asc_nakshatra"
	names[slotAscendant+3] = "asc_pada"
	for i, body := range domain.Bodies {
		base := slotPlanets + i*planetSlotWidth
		prefix := strings.ToLower(body.String())
		names[base+0] = prefix + "_sign"
		names[base+1] = prefix + "_house"
		names[base+2] = prefix + "_dignity"
		names[base+3] = prefix + "_retrograde"
	}
	names[slotAspectDensity] = "aspect_density"
	names[slotBeneficAspects] = "benefic_aspect_density"
	names[slotYogaCount] = "yoga_count"
	names[slotYogaNet] = "yoga_net_strength"
	names[slotKendra] = "kendra_occupancy"
	names[slotTrikona] = "trikona_occupancy"
	names[slotDashaBalance] = "dasha_balance"
	names[slotShadBalaMean] = "shadbala_mean"
	names[slotMaleficYoga] = "malefic_yoga_present"
	return names
}

// boolSlot encodes a flag as 1 or 0.
func boolSlot(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// dignityScore maps a placement's dignity grade onto 0..1, halved for a
// combust planet.
func dignityScore(p domain.Planet) float64 {
	score := p.Dignity.Score()
	if p.Combust {
		score /= 2
	}
	return score
}

// beneficAspects counts the soft aspects, trines and sextiles.
func beneficAspects(aspects []domain.Aspect) int {
	n := 0
	for _, a := range aspects {
		if a.Type == domain.AspectTrine || a.Type == domain.AspectSextile {
			n++
		}
	}
	return n
}

// netYogaStrength averages signed yoga strengths onto -1..1. Malefic
// yogas count negative, benefic and neutral positive; a chart with no
// yogas scores 0.
func netYogaStrength(yogas []domain.Yoga) float64 {
	if len(yogas) == 0 {
		return 0
	}
	sum := 0.0
	for _, y := range yogas {
		if y.Polarity == domain.YogaMalefic {
			sum -= y.Strength
		} else {
			sum += y.Strength
		}
	}
	return sum / (100 * float64(len(yogas)))
}

// hasMaleficYoga reports whether any matched yoga is malefic.
func hasMaleficYoga(yogas []domain.Yoga) bool {
	for _, y := range yogas {
		if y.Polarity == domain.YogaMalefic {
			return true
		}
	}
	return false
}

// houseOccupancy counts planets in angular and in trine houses. The
// first house is both, so one planet can count twice.
func houseOccupancy(planets []domain.Planet) (kendra, trikona int) {
	for _, p := range planets {
		if domain.IsKendra(p.House) {
			kendra++
		}
		if domain.IsTrikona(p.House) {
			trikona++
		}
	}
	return kendra, trikona
}

// dashaBalanceFraction is the remaining share of the first major
// period at birth, in 0..1.
func dashaBalanceFraction(d domain.Dasha) float64 {
	if len(d.Periods) == 0 || d.Periods[0].Years <= 0 {
		return 0
	}
	return d.BalanceYears / d.Periods[0].Years
}

// shadBalaMean averages the nine total strengths.
func shadBalaMean(scores map[domain.Body]domain.ShadBalaScore) (float64, error) {
	sum := 0.0
	for _, body := range domain.Bodies {
		s, ok := scores[body]
		if !ok {
			return 0, fmt.Errorf("extract features: %s not scored", body)
		}
		sum += s.Total
	}
	return sum / float64(len(domain.Bodies)), nil
}
