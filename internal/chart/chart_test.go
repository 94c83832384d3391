package chart

import (
	"errors"
	"math"
	"testing"
	_ "time/tzdata"

	"kundali-engine/internal/domain"
	"kundali-engine/internal/ephemeris"
	"kundali-engine/internal/ephemeris/stub"
	"kundali-engine/internal/timebase"
)

// Reference birth: 1990-05-15 14:30:00 IST, Delhi.
func goldenFrame(t *testing.T) *Frame {
	t.Helper()
	input, err := domain.NewTimedBirth(1990, 5, 15, 14, 30, 0, 28.7041, 77.1025, "Asia/Kolkata")
	if err != nil {
		t.Fatalf("NewTimedBirth failed: %v", err)
	}
	m, err := timebase.Normalize(input)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	frame, err := NewBuilder(ephemeris.NewAnalytic(), Lahiri).Build(m, input.Latitude)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	return frame
}

func TestBuild_GoldenAscendant(t *testing.T) {
	frame := goldenFrame(t)
	asc := frame.Ascendant

	if math.Abs(asc.Longitude-151.81037935439227) > 1e-6 {
		t.Errorf("Asc longitude = %.8f, want 151.81037935", asc.Longitude)
	}
	if asc.Sign != domain.SignVirgo {
		t.Errorf("Asc sign = %s, want Virgo", asc.Sign)
	}
	if math.Abs(asc.Degree-1.8103793543922677) > 1e-6 {
		t.Errorf("Asc degree = %.8f, want 1.81037935", asc.Degree)
	}
	if asc.Nakshatra != 12 {
		t.Errorf("Asc nakshatra = %d, want 12 (Hasta)", asc.Nakshatra)
	}
	if asc.Pada != 2 {
		t.Errorf("Asc pada = %d, want 2", asc.Pada)
	}
	if asc.Ruler != domain.BodyMercury {
		t.Errorf("Asc ruler = %s, want MERCURY", asc.Ruler)
	}
	if asc.Confidence != domain.ConfidenceFull {
		t.Errorf("Asc confidence = %s, want FULL", asc.Confidence)
	}
	if math.Abs(frame.Ayanamsa-23.72675743262249) > 1e-9 {
		t.Errorf("ayanamsa = %.8f, want 23.72675743", frame.Ayanamsa)
	}
}

func TestBuild_GoldenPlacements(t *testing.T) {
	frame := goldenFrame(t)

	want := []struct {
		body  domain.Body
		sign  domain.Sign
		house int
		retro bool
	}{
		{domain.BodySun, domain.SignTaurus, 9, false},
		{domain.BodyMoon, domain.SignCapricorn, 5, false},
		{domain.BodyMars, domain.SignAquarius, 6, false},
		{domain.BodyMercury, domain.SignAries, 8, true},
		{domain.BodyJupiter, domain.SignGemini, 10, false},
		{domain.BodyVenus, domain.SignPisces, 7, false},
		{domain.BodySaturn, domain.SignCapricorn, 5, true},
		{domain.BodyRahu, domain.SignCapricorn, 5, true},
		{domain.BodyKetu, domain.SignCancer, 11, true},
	}

	if len(frame.Planets) != len(want) {
		t.Fatalf("got %d planets, want %d", len(frame.Planets), len(want))
	}
	for i, w := range want {
		p := frame.Planets[i]
		if p.Body != w.body {
			t.Fatalf("planet %d = %s, want %s (canonical order)", i, p.Body, w.body)
		}
		if p.Sign != w.sign {
			t.Errorf("%s sign = %s, want %s", p.Body, p.Sign, w.sign)
		}
		if p.House != w.house {
			t.Errorf("%s house = %d, want %d", p.Body, p.House, w.house)
		}
		if p.Retrograde != w.retro {
			t.Errorf("%s retrograde = %v, want %v", p.Body, p.Retrograde, w.retro)
		}
	}

	moon, _ := frameLookup(frame, domain.BodyMoon)
	if math.Abs(moon.Longitude-271.8914029768777) > 1e-6 {
		t.Errorf("Moon sidereal = %.8f, want 271.89140298", moon.Longitude)
	}
	if moon.Nakshatra != 21 {
		t.Errorf("Moon nakshatra = %d, want 21 (Uttara Ashadha)", moon.Nakshatra)
	}
	if moon.Pada != 2 {
		t.Errorf("Moon pada = %d, want 2", moon.Pada)
	}
}

func frameLookup(f *Frame, body domain.Body) (domain.Planet, bool) {
	for _, p := range f.Planets {
		if p.Body == body {
			return p, true
		}
	}
	return domain.Planet{}, false
}

func TestBuild_GoldenHouses(t *testing.T) {
	frame := goldenFrame(t)

	if len(frame.Houses) != 12 {
		t.Fatalf("got %d houses, want 12", len(frame.Houses))
	}
	h1 := frame.Houses[0]
	if h1.Sign != domain.SignVirgo || h1.Cusp != 150 || h1.Ruler != domain.BodyMercury {
		t.Errorf("house 1 = %+v, want Virgo cusp 150 ruler MERCURY", h1)
	}
	h12 := frame.Houses[11]
	if h12.Sign != domain.SignLeo || h12.Cusp != 120 {
		t.Errorf("house 12 = %+v, want Leo cusp 120", h12)
	}

	h5 := frame.Houses[4]
	wantOcc := []domain.Body{domain.BodyMoon, domain.BodySaturn, domain.BodyRahu}
	if len(h5.Occupants) != len(wantOcc) {
		t.Fatalf("house 5 occupants = %v, want %v", h5.Occupants, wantOcc)
	}
	for i, b := range wantOcc {
		if h5.Occupants[i] != b {
			t.Errorf("house 5 occupant %d = %s, want %s", i, h5.Occupants[i], b)
		}
	}

	for _, h := range frame.Houses {
		if h.Confidence != domain.ConfidenceFull {
			t.Errorf("house %d confidence = %s, want FULL", h.Number, h.Confidence)
		}
	}
}

func TestBuild_NormalizedRanges(t *testing.T) {
	frame := goldenFrame(t)

	check := func(name string, lon, deg float64) {
		if lon < 0 || lon >= 360 {
			t.Errorf("%s longitude %v outside [0,360)", name, lon)
		}
		if deg < 0 || deg >= 30 {
			t.Errorf("%s degree %v outside [0,30)", name, deg)
		}
	}
	check("asc", frame.Ascendant.Longitude, frame.Ascendant.Degree)
	for _, p := range frame.Planets {
		check(string(p.Body), p.Longitude, p.Degree)
		if p.Nakshatra < 1 || p.Nakshatra > 27 {
			t.Errorf("%s nakshatra %d outside [1,27]", p.Body, p.Nakshatra)
		}
		if p.Pada < 1 || p.Pada > 4 {
			t.Errorf("%s pada %d outside [1,4]", p.Body, p.Pada)
		}
	}
}

func TestBuild_DegenerateLatitude(t *testing.T) {
	input := domain.BirthInput{
		Year: 1990, Month: 5, Day: 15, Hour: 12, TimeKnown: true,
		Latitude: 70.0, Longitude: 25.0, Timezone: "Europe/Oslo",
	}
	m, err := timebase.Normalize(input)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	_, err = NewBuilder(ephemeris.NewAnalytic(), Lahiri).Build(m, input.Latitude)
	if !errors.Is(err, ErrDegenerateHouseSystem) {
		t.Errorf("Expected ErrDegenerateHouseSystem, got %v", err)
	}
}

func TestBuild_UntimedLowConfidence(t *testing.T) {
	input, err := domain.NewUntimedBirth(1990, 5, 15, 28.7041, 77.1025, "Asia/Kolkata")
	if err != nil {
		t.Fatalf("NewUntimedBirth failed: %v", err)
	}
	m, err := timebase.Normalize(input)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	frame, err := NewBuilder(ephemeris.NewAnalytic(), Lahiri).Build(m, input.Latitude)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if frame.Ascendant.Confidence != domain.ConfidenceLow {
		t.Errorf("Asc confidence = %s, want LOW", frame.Ascendant.Confidence)
	}
	for _, h := range frame.Houses {
		if h.Confidence != domain.ConfidenceLow {
			t.Errorf("house %d confidence = %s, want LOW", h.Number, h.Confidence)
		}
	}
}

func TestBuild_CuspBoundaryOneSecondApart(t *testing.T) {
	// One second around the Leo/Virgo rising boundary on the reference
	// date. Every whole-sign house placement shifts by exactly one.
	build := func(sec int) *Frame {
		input, err := domain.NewTimedBirth(1990, 5, 15, 14, 21, sec, 28.7041, 77.1025, "Asia/Kolkata")
		if err != nil {
			t.Fatalf("NewTimedBirth failed: %v", err)
		}
		m, err := timebase.Normalize(input)
		if err != nil {
			t.Fatalf("Normalize failed: %v", err)
		}
		frame, err := NewBuilder(ephemeris.NewAnalytic(), Lahiri).Build(m, input.Latitude)
		if err != nil {
			t.Fatalf("Build failed: %v", err)
		}
		return frame
	}

	before := build(47)
	after := build(48)

	if before.Ascendant.Sign != domain.SignLeo {
		t.Fatalf("asc sign at 14:21:47 = %s, want Leo (%.6f)", before.Ascendant.Sign, before.Ascendant.Longitude)
	}
	if after.Ascendant.Sign != domain.SignVirgo {
		t.Fatalf("asc sign at 14:21:48 = %s, want Virgo (%.6f)", after.Ascendant.Sign, after.Ascendant.Longitude)
	}

	for i, p := range before.Planets {
		shifted := p.House - 1
		if shifted == 0 {
			shifted = 12
		}
		if after.Planets[i].House != shifted {
			t.Errorf("%s house = %d then %d, want shift by exactly one", p.Body, p.House, after.Planets[i].House)
		}
	}

	// rebuilding the same second reproduces the same frame
	again := build(48)
	if again.Ascendant.Longitude != after.Ascendant.Longitude {
		t.Errorf("rebuild differs: %v vs %v", again.Ascendant.Longitude, after.Ascendant.Longitude)
	}
}

func TestBuild_EphemerisErrorPropagates(t *testing.T) {
	src := stub.New(nil)
	src.Err = ephemeris.ErrOutOfRange

	input, _ := domain.NewTimedBirth(1990, 5, 15, 14, 30, 0, 28.7041, 77.1025, "Asia/Kolkata")
	m, err := timebase.Normalize(input)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	_, err = NewBuilder(src, Lahiri).Build(m, input.Latitude)
	if !errors.Is(err, ephemeris.ErrOutOfRange) {
		t.Errorf("Expected wrapped ErrOutOfRange, got %v", err)
	}
}

func TestSignOf_BoundaryBelongsToLaterSign(t *testing.T) {
	if s := SignOf(150.0); s != domain.SignVirgo {
		t.Errorf("SignOf(150) = %s, want Virgo", s)
	}
	if s := SignOf(149.999999); s != domain.SignLeo {
		t.Errorf("SignOf(149.999999) = %s, want Leo", s)
	}
	if s := SignOf(0); s != domain.SignAries {
		t.Errorf("SignOf(0) = %s, want Aries", s)
	}
	if s := SignOf(360); s != domain.SignAries {
		t.Errorf("SignOf(360) = %s, want Aries", s)
	}

	if n := NakshatraOf(0); n != 1 {
		t.Errorf("NakshatraOf(0) = %d, want 1", n)
	}
	if n := NakshatraOf(359.999999); n != 27 {
		t.Errorf("NakshatraOf(359.999999) = %d, want 27", n)
	}
	if p := PadaOf(0); p != 1 {
		t.Errorf("PadaOf(0) = %d, want 1", p)
	}
	if d := DegreeInSign(150.0); d != 0 {
		t.Errorf("DegreeInSign(150) = %v, want 0", d)
	}
}

func TestAyanamsaByName_Fallback(t *testing.T) {
	if m := AyanamsaByName("raman"); m.Name != "raman" {
		t.Errorf("AyanamsaByName(raman) = %s", m.Name)
	}
	if m := AyanamsaByName("kp"); m.Name != "kp" {
		t.Errorf("AyanamsaByName(kp) = %s", m.Name)
	}
	if m := AyanamsaByName("unheard-of"); m.Name != "lahiri" {
		t.Errorf("unknown name should fall back to lahiri, got %s", m.Name)
	}
}
