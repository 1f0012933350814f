// Package simulator produces the illustrative metric numbers shown by the
// model comparison, confusion matrix and threshold widgets. None of it comes
// from a trained model.
package simulator

import (
	"errors"
	"math"
	"math/rand/v2"
)

var (
	ErrUnknownModel   = errors.New("unknown model")
	ErrFeaturesRange  = errors.New("features out of range")
	ErrThresholdRange = errors.New("threshold out of range")
)

// Threshold slider bounds shared by the confusion and tuning widgets.
const (
	MinThreshold = 0.1
	MaxThreshold = 0.9
)

// JitterFunc returns a value in [-0.5, 0.5).
type JitterFunc func() float64

// RandomJitter is the default, unseeded jitter.
func RandomJitter() float64 {
	return rand.Float64() - 0.5
}

// NoJitter is used where output must be reproducible.
func NoJitter() float64 { return 0 }

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func validThreshold(t float64) error {
	if math.IsNaN(t) || t < MinThreshold-1e-9 || t > MaxThreshold+1e-9 {
		return ErrThresholdRange
	}
	return nil
}
