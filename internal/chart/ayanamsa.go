package chart

// AyanamsaModel is a linear precession model: a fixed offset at an
// anchor epoch plus a constant annual rate. The sidereal longitude of a
// point is its tropical longitude minus the model's value for the date.
type AyanamsaModel struct {
	Name     string
	AnchorJD float64
	Anchor   float64 // degrees at AnchorJD
	Rate     float64 // degrees per Julian year
}

// Degrees returns the ayanamsa for a Julian Day.
func (m AyanamsaModel) Degrees(jd float64) float64 {
	return m.Anchor + m.Rate*(jd-m.AnchorJD)/365.25
}

const annualPrecession = 50.2388475 / 3600 // degrees per Julian year

var (
	// Lahiri is the Chitrapaksha ayanamsa, anchored at its 1956-03-21
	// zero date. The engine's default.
	Lahiri = AyanamsaModel{Name: "lahiri", AnchorJD: 2435553.5, Anchor: 23.2501828, Rate: annualPrecession}

	// Raman runs about 1.4 degrees behind Lahiri, anchored 1900-01-01.
	Raman = AyanamsaModel{Name: "raman", AnchorJD: 2415020.5, Anchor: 21.0132, Rate: annualPrecession}

	// Krishnamurti sits about six arc minutes behind Lahiri.
	Krishnamurti = AyanamsaModel{Name: "kp", AnchorJD: 2435553.5, Anchor: 23.1521828, Rate: annualPrecession}
)

// AyanamsaByName resolves a configured model name. Unknown names fall
// back to Lahiri.
func AyanamsaByName(name string) AyanamsaModel {
	switch name {
	case Raman.Name:
		return Raman
	case Krishnamurti.Name:
		return Krishnamurti
	default:
		return Lahiri
	}
}
