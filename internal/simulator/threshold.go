package simulator

import "math"

var (
	precisionTable = [...]float64{0.65, 0.72, 0.78, 0.83, 0.87, 0.91, 0.94, 0.96, 0.98}
	recallTable    = [...]float64{0.92, 0.89, 0.85, 0.80, 0.74, 0.67, 0.58, 0.48, 0.35}
)

// Tuning is the precision/recall trade-off at one threshold.
type Tuning struct {
	Threshold float64 `json:"threshold"`
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	F1        float64 `json:"f1"`
	Label     string  `json:"label"`
}

// Tune looks up the precision and recall for threshold t in steps of 0.1.
func Tune(t float64) (Tuning, error) {
	if err := validThreshold(t); err != nil {
		return Tuning{}, err
	}

	// epsilon keeps 0.3 from landing in the 0.2 bucket
	i := int(math.Floor((t-MinThreshold)/0.1 + 1e-9))
	i = max(0, min(len(precisionTable)-1, i))

	p, r := precisionTable[i], recallTable[i]
	return Tuning{
		Threshold: t,
		Precision: p,
		Recall:    r,
		F1:        f1(p, r),
		Label:     TradeOffLabel(t),
	}, nil
}

// TradeOffLabel describes which side of the trade-off t favours.
func TradeOffLabel(t float64) string {
	switch {
	case t < 0.3:
		return "More spam detected (higher recall)"
	case t > 0.7:
		return "Fewer false positives (higher precision)"
	default:
		return "Balanced"
	}
}
