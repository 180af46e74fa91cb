package ml

import (
	"fmt"

	"github.com/drakos74/go-ex-machina/xmath"
	xml "github.com/drakos74/go-ex-machina/xmachina/ml"
	coinmath "github.com/drakos74/slp/internal/math"
	"github.com/rs/zerolog/log"
)

const (
	// DefaultRate is the default learning rate.
	DefaultRate = 0.5
	// DefaultIterations is the default cap of training samples.
	DefaultIterations = 3500
)

// Training defines the training parameters.
type Training struct {
	Rate       *xml.Learning
	Iterations int
}

// DefaultTraining returns the default training parameters.
func DefaultTraining() Training {
	return Training{
		Rate:       xml.Rate(DefaultRate),
		Iterations: DefaultIterations,
	}
}

// Stats defines the training stats of the model.
type Stats struct {
	Iterations int
	Loss       []float64
	Trend      float64
}

// Stats returns the training stats so far.
func (s *SLP) Stats() Stats {
	loss := s.losses.Get()
	var trend float64
	if len(loss) > 1 {
		if t, err := coinmath.Trend(loss); err == nil {
			trend = t
		} else {
			log.Warn().Err(err).Str("model", s.ID).Msg("could not fit loss trend")
		}
	}
	return Stats{
		Iterations: s.iterations,
		Loss:       loss,
		Trend:      trend,
	}
}

// CrossEntropy returns the negative softmax probability of the target class.
// NOTE : this is -p and not -log(p). It is only observed, never used for the gradients.
func (s *SLP) CrossEntropy(target Label, softmax xmath.Vector) (float64, error) {
	i, err := s.Index(target)
	if err != nil {
		return 0, err
	}
	if i >= len(softmax) {
		return 0, fmt.Errorf("softmax of size %d for class index %d: %w", len(softmax), i, InvalidInputErr)
	}
	return -softmax[i], nil
}

// BackPropagate returns the gradients of every unit weight for the given sample,
// one row per class, scaled by the same norm as the forward pass.
func (s *SLP) BackPropagate(softmax xmath.Vector, target int, x xmath.Vector) xmath.Matrix {
	gradients := xmath.Mat(len(softmax)).Of(len(x))
	for j := range softmax {
		for i := range x {
			scaled := x[i] * s.norm
			if j == target {
				gradients[j][i] = scaled * (softmax[j] - 1)
			} else {
				gradients[j][i] = scaled * softmax[j]
			}
		}
	}
	return gradients
}

// UpdateWeights applies the gradients to the unit weights in place.
func (s *SLP) UpdateWeights(rate float64, gradients xmath.Matrix) error {
	if len(gradients) != len(s.units) {
		return fmt.Errorf("gradients for %d units but layer has %d: %w", len(gradients), len(s.units), InvalidInputErr)
	}
	for j, g := range gradients {
		if len(g) != len(s.units[j].Weights) {
			return fmt.Errorf("gradient %d has %d elements but unit has %d weights: %w", j, len(g), len(s.units[j].Weights), InvalidInputErr)
		}
	}
	for j, u := range s.units {
		for i := range u.Weights {
			u.Weights[i] -= rate * gradients[j][i]
		}
	}
	return nil
}

// Train runs stochastic gradient descent over the samples in the given order.
// It processes min(iterations, len(samples)) samples, each exactly once.
// All samples and labels are validated before any weight is touched.
func (s *SLP) Train(samples []xmath.Vector, labels []Label, cfg Training) error {
	targets, err := s.targets(samples, labels)
	if err != nil {
		return err
	}

	limit := cfg.Iterations
	if len(samples) < limit {
		limit = len(samples)
	}
	rate := DefaultRate
	if cfg.Rate != nil {
		rate = cfg.Rate.WRate()
	}

	for i := 0; i < limit; i++ {
		s.reporter.Progress(s.ID, i, limit)

		sums, err := s.Sums(samples[i])
		if err != nil {
			return fmt.Errorf("sample %d: %w", i, err)
		}
		softmax := s.Softmax(sums)

		s.losses.Push(-softmax[targets[i]])

		gradients := s.BackPropagate(softmax, targets[i], samples[i])
		if err := s.UpdateWeights(rate, gradients); err != nil {
			return err
		}
		s.iterations++
	}

	loss, _ := s.losses.Last()
	log.Info().
		Str("model", s.ID).
		Int("samples", limit).
		Float64("rate", rate).
		Int("iterations", s.iterations).
		Float64("loss", loss).
		Msg("trained")

	return nil
}

// targets validates the samples and resolves the labels to class indexes.
func (s *SLP) targets(samples []xmath.Vector, labels []Label) ([]int, error) {
	if len(samples) != len(labels) {
		return nil, fmt.Errorf("%d samples vs %d labels: %w", len(samples), len(labels), InvalidInputErr)
	}
	targets := make([]int, len(labels))
	for i, x := range samples {
		if len(x) != s.features {
			return nil, fmt.Errorf("sample %d has %d features instead of %d: %w", i, len(x), s.features, InvalidInputErr)
		}
		t, err := s.Index(labels[i])
		if err != nil {
			return nil, fmt.Errorf("sample %d: %w", i, err)
		}
		targets[i] = t
	}
	return targets, nil
}
