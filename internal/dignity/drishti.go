package dignity

import (
	"kundali-engine/internal/domain"
)

// drishtiCounts lists the houses each body casts its full graha drishti
// on, counted inclusively from its own house. Every body casts the 7th;
// Mars, Jupiter, Saturn and the nodes add their special casts.
var drishtiCounts = map[domain.Body][]int{
	domain.BodySun:     {7},
	domain.BodyMoon:    {7},
	domain.BodyMars:    {4, 7, 8},
	domain.BodyMercury: {7},
	domain.BodyJupiter: {5, 7, 9},
	domain.BodyVenus:   {7},
	domain.BodySaturn:  {3, 7, 10},
	domain.BodyRahu:    {5, 7, 9},
	domain.BodyKetu:    {5, 7, 9},
}

// DrishtiHouses returns the house numbers a body standing in fromHouse
// casts full drishti on.
func DrishtiHouses(b domain.Body, fromHouse int) []int {
	counts := drishtiCounts[b]
	out := make([]int, 0, len(counts))
	for _, c := range counts {
		out = append(out, ((fromHouse-1+c-1)%12)+1)
	}
	return out
}

// CastsDrishti reports whether a body in fromHouse casts full drishti
// on toHouse.
func CastsDrishti(b domain.Body, fromHouse, toHouse int) bool {
	for _, h := range DrishtiHouses(b, fromHouse) {
		if h == toHouse {
			return true
		}
	}
	return false
}
