package ml

import (
	"fmt"
	"runtime"

	"github.com/drakos74/go-ex-machina/xmath"
	"golang.org/x/sync/errgroup"
)

// Classifier predicts a class for a sample.
type Classifier interface {
	Predict(x xmath.Vector) (Label, error)
}

// PredictAll predicts every sample.
// Predictions run in parallel, the classifier must be safe for concurrent reads.
func PredictAll(c Classifier, samples []xmath.Vector) ([]Label, error) {
	predictions := make([]Label, len(samples))

	workers := runtime.NumCPU()
	if workers > len(samples) {
		workers = len(samples)
	}

	g := new(errgroup.Group)
	for w := 0; w < workers; w++ {
		w := w
		g.Go(func() error {
			for i := w; i < len(samples); i += workers {
				p, err := c.Predict(samples[i])
				if err != nil {
					return fmt.Errorf("sample %d: %w", i, err)
				}
				predictions[i] = p
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return predictions, nil
}

// Score predicts all samples with the classifier and evaluates them against the labels.
func Score(c Classifier, classes []Label, samples []xmath.Vector, labels []Label) (Report, error) {
	if len(samples) != len(labels) {
		return Report{}, fmt.Errorf("%d samples vs %d labels: %w", len(samples), len(labels), InvalidInputErr)
	}
	predictions, err := PredictAll(c, samples)
	if err != nil {
		return Report{}, err
	}
	return Evaluate(classes, predictions, labels)
}

// Test evaluates the model on the given samples and reports the results.
func (s *SLP) Test(samples []xmath.Vector, labels []Label) (Report, error) {
	report, err := Score(s, s.classes, samples, labels)
	if err != nil {
		return Report{}, err
	}
	report.Model = s.ID
	s.reporter.Test(report)
	return report, nil
}
