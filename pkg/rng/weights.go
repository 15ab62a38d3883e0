package rng

// FillChances resolves optional per-entry probabilities. Explicit chances sum
// to S; every entry without one gets an equal share (1-S)/k of the remaining
// mass, k being the number of such entries. Explicit chances are used as
// given, never renormalised.
func FillChances(chances []*float64) []float64 {
	var defined float64
	undefined := 0
	for _, c := range chances {
		if c != nil {
			defined += *c
		} else {
			undefined++
		}
	}
	out := make([]float64, len(chances))
	for i, c := range chances {
		if c != nil {
			out[i] = *c
		} else {
			out[i] = (1 - defined) / float64(undefined)
		}
	}
	return out
}

// Ptr returns a pointer to v, for building optional chances inline.
func Ptr(v float64) *float64 {
	return &v
}
