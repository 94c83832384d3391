package shadbala

import (
	"math"
	"testing"

	"kundali-engine/internal/domain"
)

// the 1990-05-15 09:00 UT Delhi chart after dignity analysis
func goldenPlanets() []domain.Planet {
	rows := []struct {
		body    domain.Body
		lon     float64
		house   int
		dignity domain.Dignity
		retro   bool
		speed   float64
	}{
		{domain.BodySun, 30.553608272533253, 9, domain.DignityEnemy, false, 0.964335953802383},
		{domain.BodyMoon, 271.8914029768777, 5, domain.DignityNeutral, false, 12.323386743230117},
		{domain.BodyMars, 324.5120199372902, 6, domain.DignityNeutral, false, 0.7424642244054667},
		{domain.BodyMercury, 14.303789569169801, 8, domain.DignityNeutral, true, -0.1294507167972796},
		{domain.BodyJupiter, 75.83556498661449, 10, domain.DignityEnemy, false, 0.18887001330965347},
		{domain.BodyVenus, 348.95624413786226, 7, domain.DignityExalted, false, 1.1402947544072521},
		{domain.BodySaturn, 271.45538413599, 5, domain.DignityOwn, true, -0.01692674797516247},
		{domain.BodyRahu, 287.61577637592205, 5, domain.DignityNeutral, true, -0.052953776559888865},
		{domain.BodyKetu, 107.61577637592205, 11, domain.DignityNeutral, true, -0.052953776559888865},
	}
	out := make([]domain.Planet, 0, len(rows))
	for _, r := range rows {
		out = append(out, domain.Planet{
			Body: r.body, Longitude: r.lon, House: r.house,
			Dignity: r.dignity, Retrograde: r.retro, Speed: r.speed,
		})
	}
	return out
}

func TestCompute_GoldenComponents(t *testing.T) {
	scores := Compute(goldenPlanets())

	want := []struct {
		body                                   domain.Body
		sthana, dig, kala, cheshta, nais, drik float64
		total                                  float64
		meets                                  bool
	}{
		{domain.BodySun, 25, 83.33333333333334, 100, 50, 100, 30, 57, false},
		{domain.BodyMoon, 40, 83.33333333333334, 65.9234473864753, 82.15591162153412, 85.71428571428571, 40, 61.28333242262998, true},
		{domain.BodyMars, 40, 33.333333333333336, 40, 56.43839438986333, 28.571428571428573, 56.25, 42.76040201562236, false},
		{domain.BodyMercury, 40, 16.666666666666664, 100, 100, 42.857142857142854, 50, 56.285714285714285, false},
		{domain.BodyJupiter, 25, 50, 100, 70.27824966725866, 57.142857142857146, 50, 53.75602316437452, false},
		{domain.BodyVenus, 100, 50, 100, 46.4926311398187, 71.42857142857143, 22.5, 69.99175181382995, true},
		{domain.BodySaturn, 70, 66.66666666666667, 40, 100, 14.285714285714286, 40, 59.42857142857143, true},
		{domain.BodyRahu, 40, 66.66666666666667, 40, 100, 20, 40, 51, true},
		{domain.BodyKetu, 40, 83.33333333333334, 40, 100, 20, 32.5, 52.375, true},
	}
	if len(scores) != len(want) {
		t.Fatalf("scored %d planets, want %d", len(scores), len(want))
	}
	for _, w := range want {
		got, ok := scores[w.body]
		if !ok {
			t.Errorf("%s missing from scores", w.body)
			continue
		}
		checks := []struct {
			name      string
			got, want float64
		}{
			{"sthana", got.Sthana, w.sthana},
			{"dig", got.Dig, w.dig},
			{"kala", got.Kala, w.kala},
			{"cheshta", got.Cheshta, w.cheshta},
			{"naisargika", got.Naisargika, w.nais},
			{"drik", got.Drik, w.drik},
			{"total", got.Total, w.total},
		}
		for _, c := range checks {
			if math.Abs(c.got-c.want) > 1e-9 {
				t.Errorf("%s %s = %v, want %v", w.body, c.name, c.got, c.want)
			}
		}
		if got.MeetsMinimum != w.meets {
			t.Errorf("%s meets minimum = %v, want %v", w.body, got.MeetsMinimum, w.meets)
		}
	}
}

func TestCompute_ComponentsStayInScale(t *testing.T) {
	for body, s := range Compute(goldenPlanets()) {
		for name, v := range map[string]float64{
			"sthana": s.Sthana, "dig": s.Dig, "kala": s.Kala,
			"cheshta": s.Cheshta, "naisargika": s.Naisargika,
			"drik": s.Drik, "total": s.Total,
		} {
			if v < 0 || v > 100 {
				t.Errorf("%s %s = %v outside [0, 100]", body, name, v)
			}
		}
	}
}

func TestDigBala_StrongAndOppositeHouses(t *testing.T) {
	sun := domain.Planet{Body: domain.BodySun, House: 10}
	if got := digBala(sun); got != 100 {
		t.Errorf("Sun in the 10th = %v, want 100", got)
	}
	sun.House = 4
	if got := digBala(sun); got != 0 {
		t.Errorf("Sun in the 4th = %v, want 0", got)
	}
	moon := domain.Planet{Body: domain.BodyMoon, House: 7}
	if got := digBala(moon); math.Abs(got-50) > 1e-9 {
		t.Errorf("Moon three houses off = %v, want 50", got)
	}
}

func TestKalaBala_NightBirthFlipsClasses(t *testing.T) {
	// Sun below the horizon: night birth
	planets := []domain.Planet{
		{Body: domain.BodySun, Longitude: 100, House: 2},
		{Body: domain.BodySaturn, Longitude: 250, House: 8, Dignity: domain.DignityNeutral},
		{Body: domain.BodyMercury, Longitude: 120, House: 3, Dignity: domain.DignityNeutral},
	}
	scores := Compute(planets)
	if got := scores[domain.BodySun].Kala; got != 40 {
		t.Errorf("diurnal Sun at night = %v, want 40", got)
	}
	if got := scores[domain.BodySaturn].Kala; got != 100 {
		t.Errorf("nocturnal Saturn at night = %v, want 100", got)
	}
	if got := scores[domain.BodyMercury].Kala; got != 100 {
		t.Errorf("Mercury = %v, want 100 in either half", got)
	}
}

func TestCheshtaBala_MotionScale(t *testing.T) {
	retro := domain.Planet{Body: domain.BodyJupiter, Retrograde: true, Speed: -0.05}
	if got := cheshtaBala(retro); got != 100 {
		t.Errorf("retrograde = %v, want 100", got)
	}
	stationary := domain.Planet{Body: domain.BodyJupiter, Speed: 0}
	if got := cheshtaBala(stationary); got != 75 {
		t.Errorf("stationary direct = %v, want 75", got)
	}
	fast := domain.Planet{Body: domain.BodyMercury, Speed: 2.2}
	if got := cheshtaBala(fast); got != 25 {
		t.Errorf("fast direct = %v, want 25", got)
	}
}

func TestDrikBala_ClampsAtZero(t *testing.T) {
	// three exalted malefics all casting on house 7
	planets := []domain.Planet{
		{Body: domain.BodyVenus, House: 7, Dignity: domain.DignityNeutral},
		{Body: domain.BodySaturn, House: 1, Dignity: domain.DignityExalted},
		{Body: domain.BodyMars, House: 12, Dignity: domain.DignityExalted},
		{Body: domain.BodyRahu, House: 1, Dignity: domain.DignityExalted},
	}
	if got := drikBala(planets[0], planets); got != 0 {
		t.Errorf("drik = %v, want clamp at 0", got)
	}
}
