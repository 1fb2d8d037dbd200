package combustion

// Molar masses in g/mol.
const (
	MolarMassC = 12.01
	MolarMassH = 1.008
	MolarMassO = 15.999
	MolarMassN = 14.007
)

// Defaults applied when a reaction leaves the value unset.
const (
	DefaultSootHFraction = 0.1
	DefaultEPUMO2        = 13100.0 // kJ/kg
)

// Stoichiometry holds the reaction coefficients needed for the heat of
// combustion. Unset values are nil.
type Stoichiometry struct {
	C, H, O, N    *float64
	SootYield     *float64
	COYield       *float64
	SootHFraction *float64
	EPUMO2        *float64
}

func or(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

// HeatOfCombustion returns the heat of combustion in kJ/kg for a fuel
// CxHyOzNv, balancing oxygen consumption against the soot and CO yields.
func HeatOfCombustion(s Stoichiometry) float64 {
	ys := or(s.SootYield, 0)
	yco := or(s.COYield, 0)
	sootH := or(s.SootHFraction, DefaultSootHFraction)
	epumo2 := or(s.EPUMO2, DefaultEPUMO2)

	x := or(s.C, 0)
	y := or(s.H, 0)
	z := or(s.O, 0)
	v := or(s.N, 0)

	wO2 := MolarMassO * 2
	wCO := MolarMassC + MolarMassO
	const nuF = 1.0

	wF := x*MolarMassC + y*MolarMassH + z*MolarMassO + v*MolarMassN
	if wF == 0 {
		return 0
	}

	wS := sootH*MolarMassH + (1-sootH)*MolarMassC
	nuS := wF / wS * ys
	nuCO := wF / wCO * yco
	nuCO2 := x - nuCO - (1-sootH)*nuS
	nuH2O := y/2 - sootH/2*nuS
	nuO2 := nuCO2 + nuCO/2 + nuH2O/2 - z/2

	return nuO2 * wO2 * epumo2 / (nuF * wF)
}

// SootProductionRate returns the peak soot production in kg/s for a total
// peak heat release in kW.
func SootProductionRate(sootYield, heatOfCombustion, peakKW float64) float64 {
	if heatOfCombustion == 0 {
		return 0
	}
	return sootYield / heatOfCombustion * peakKW
}
