package simulator

import "math"

// Counts for the baseline matrix at threshold 0.5: 747 spam and 4827 ham.
const (
	baseTP = 670
	baseFP = 80
	baseFN = 77
	baseTN = 4747

	totalSpam = baseTP + baseFN
	totalHam  = baseFP + baseTN
)

// ConfusionMatrix is a 2x2 outcome table plus derived metrics in [0, 1].
type ConfusionMatrix struct {
	Threshold      float64 `json:"threshold"`
	TruePositives  int     `json:"truePositives"`
	FalsePositives int     `json:"falsePositives"`
	FalseNegatives int     `json:"falseNegatives"`
	TrueNegatives  int     `json:"trueNegatives"`
	Precision      float64 `json:"precision"`
	Recall         float64 `json:"recall"`
	F1             float64 `json:"f1"`
	Accuracy       float64 `json:"accuracy"`
}

// Confusion returns the matrix at threshold t. Raising the threshold moves
// spam from TP to FN and ham from FP to TN, ham at one and a half times the rate.
func Confusion(t float64) (ConfusionMatrix, error) {
	if err := validThreshold(t); err != nil {
		return ConfusionMatrix{}, err
	}

	effect := (t - 0.5) * 200
	m := ConfusionMatrix{
		Threshold:      t,
		TruePositives:  int(math.Round(clamp(baseTP-effect, 0, totalSpam))),
		FalsePositives: int(math.Round(clamp(baseFP-effect*1.5, 0, totalHam))),
		FalseNegatives: int(math.Round(clamp(baseFN+effect, 0, totalSpam))),
		TrueNegatives:  int(math.Round(clamp(baseTN+effect*1.5, 0, totalHam))),
	}

	tp, fp, fn, tn := float64(m.TruePositives), float64(m.FalsePositives), float64(m.FalseNegatives), float64(m.TrueNegatives)
	m.Precision = ratio(tp, tp+fp)
	m.Recall = ratio(tp, tp+fn)
	m.F1 = f1(m.Precision, m.Recall)
	m.Accuracy = ratio(tp+tn, tp+fp+fn+tn)
	return m, nil
}

func ratio(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}

func f1(precision, recall float64) float64 {
	return ratio(2*precision*recall, precision+recall)
}
