package shot

// Zones are the charge fractions at which each ideal trajectory is hit exactly
// Bank is negative when no bank trajectory exists
type Zones struct {
	Direct    float64
	Bank      float64
	Threshold float64
}

// PerfectZones locates the ideal shots on the charge bar
//
//	direct = (1 - min) / (max - min)
//	bank   = (|bank|/|direct| - min) / (max - min)
func PerfectZones(pair Pair, t Tuning) Zones {
	z := Zones{Direct: -1, Bank: -1, Threshold: t.PerfectThreshold}
	if !pair.Direct.Valid {
		return z
	}
	z.Direct = t.IdealCharge(pair.Direct.Magnitude, pair.Direct)
	if pair.Bank.Valid {
		z.Bank = t.IdealCharge(pair.Bank.Magnitude, pair.Direct)
	}
	return z
}
