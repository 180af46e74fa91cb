package ml

import (
	"fmt"
	"math/rand"

	"github.com/drakos74/go-ex-machina/xmath"
)

// DefaultNorm is the default normalisation coefficient for the linear sum.
// It keeps the exponent arguments of the softmax within the float range for
// 8-bit grayscale features.
const DefaultNorm = 1.0 / 512

// Perceptron is a single output unit holding one weight per input feature.
type Perceptron struct {
	Weights xmath.Vector
}

// NewPerceptron creates a new perceptron with random weights in [0,1), rounded to 4 digits.
func NewPerceptron(features int, rnd *rand.Rand) *Perceptron {
	round := xmath.Round(4)
	w := xmath.Vec(features)
	for i := range w {
		w[i] = round(rnd.Float64())
	}
	return &Perceptron{Weights: w}
}

// LinSum returns the scaled linear combination of the sample with the weights.
// The optional coefficient overrides DefaultNorm.
func (p *Perceptron) LinSum(x xmath.Vector, coeff ...float64) (float64, error) {
	if len(x) != len(p.Weights) {
		return 0, fmt.Errorf("sample has %d features but perceptron has %d weights: %w", len(x), len(p.Weights), InvalidInputErr)
	}
	norm := DefaultNorm
	if len(coeff) > 0 {
		norm = coeff[0]
	}
	var total float64
	for i := range x {
		total += x[i] * norm * p.Weights[i]
	}
	return total, nil
}
