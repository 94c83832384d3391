package domain

// Body identifies one of the nine grahas placed on a chart.
type Body string

const (
	BodySun     Body = "SUN"
	BodyMoon    Body = "MOON"
	BodyMars    Body = "MARS"
	BodyMercury Body = "MERCURY"
	BodyJupiter Body = "JUPITER"
	BodyVenus   Body = "VENUS"
	BodySaturn  Body = "SATURN"
	BodyRahu    Body = "RAHU"
	BodyKetu    Body = "KETU"
)

// Bodies lists the nine grahas in canonical chart order. Planet slices,
// feature vector slots and report rows all follow this order.
var Bodies = []Body{
	BodySun, BodyMoon, BodyMars, BodyMercury, BodyJupiter,
	BodyVenus, BodySaturn, BodyRahu, BodyKetu,
}

var bodyOrder = map[Body]int{
	BodySun: 0, BodyMoon: 1, BodyMars: 2, BodyMercury: 3, BodyJupiter: 4,
	BodyVenus: 5, BodySaturn: 6, BodyRahu: 7, BodyKetu: 8,
}

// String returns the string representation of Body.
func (b Body) String() string {
	return string(b)
}

// IsValid checks if the body is one of the nine grahas.
func (b Body) IsValid() bool {
	_, ok := bodyOrder[b]
	return ok
}

// Order returns the body's position in canonical chart order, or -1 for
// an unknown body.
func (b Body) Order() int {
	i, ok := bodyOrder[b]
	if !ok {
		return -1
	}
	return i
}

// IsNode reports whether the body is one of the two lunar nodes.
func (b Body) IsNode() bool {
	return b == BodyRahu || b == BodyKetu
}

// IsBenefic reports the body's natural class under the simplified fixed
// split: Moon, Mercury, Jupiter and Venus count as benefic, the rest as
// malefic.
func (b Body) IsBenefic() bool {
	switch b {
	case BodyMoon, BodyMercury, BodyJupiter, BodyVenus:
		return true
	}
	return false
}
