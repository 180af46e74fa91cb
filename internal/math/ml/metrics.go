package ml

import (
	"fmt"

	"github.com/sjwhitworth/golearn/evaluation"
	"gonum.org/v1/gonum/stat"
)

// ClassMetrics returns the per class precision and recall.
// NOTE : a class without false positives gets a precision of 0, even if it has true positives.
// The same applies to the recall and the false negatives.
func ClassMetrics(tp, fn, fp []int) (precision, recall []float64) {
	precision = make([]float64, len(tp))
	recall = make([]float64, len(tp))
	for x := range tp {
		if fp[x] > 0 {
			precision[x] = float64(tp[x]) / float64(tp[x]+fp[x])
		}
		if fn[x] > 0 {
			recall[x] = float64(tp[x]) / float64(tp[x]+fn[x])
		}
	}
	return precision, recall
}

// MicroAverage aggregates the counts over all classes before computing precision and recall.
// The roles of golearn precision and recall are swapped, same as for the per class counts.
func MicroAverage(ref evaluation.ConfusionMatrix) (precision, recall float64) {
	return evaluation.GetMicroRecall(ref), evaluation.GetMicroPrecision(ref)
}

// MacroAverage averages the per class precision and recall.
func MacroAverage(precision, recall []float64) (float64, float64) {
	return stat.Mean(precision, nil), stat.Mean(recall, nil)
}

// Accuracy returns the share of true positives over true positives and false negatives.
// Every miss is a false negative of its predicted class, so this is the share of correct predictions.
func Accuracy(ref evaluation.ConfusionMatrix) float64 {
	return evaluation.GetAccuracy(ref)
}

// Report holds the evaluation results of a test run.
type Report struct {
	Model          string          `json:"model"`
	Samples        int             `json:"samples"`
	Classes        []Label         `json:"classes"`
	Confusion      ConfusionMatrix `json:"confusion"`
	Accuracy       float64         `json:"accuracy"`
	MicroPrecision float64         `json:"micro_precision"`
	MicroRecall    float64         `json:"micro_recall"`
	MacroPrecision float64         `json:"macro_precision"`
	MacroRecall    float64         `json:"macro_recall"`
	Precision      []float64       `json:"precision"`
	Recall         []float64       `json:"recall"`
	TrueNegatives  int             `json:"true_negatives"`
}

// Evaluate builds the confusion matrix for the predictions and derives the performance metrics.
func Evaluate(classes []Label, predicted, actual []Label) (Report, error) {
	if len(predicted) != len(actual) {
		return Report{}, fmt.Errorf("%d predictions vs %d labels: %w", len(predicted), len(actual), InvalidInputErr)
	}
	if len(actual) == 0 {
		return Report{}, fmt.Errorf("no samples to evaluate: %w", InvalidInputErr)
	}

	index := make(map[Label]int, len(classes))
	for i, c := range classes {
		if _, ok := index[c]; ok {
			return Report{}, fmt.Errorf("duplicate class '%s': %w", c, InvalidInputErr)
		}
		index[c] = i
	}
	cm := NewConfusionMatrix(len(classes))
	for i := range predicted {
		p, ok := index[predicted[i]]
		if !ok {
			return Report{}, fmt.Errorf("prediction %d '%s': %w", i, predicted[i], UnknownLabelErr)
		}
		t, ok := index[actual[i]]
		if !ok {
			return Report{}, fmt.Errorf("label %d '%s': %w", i, actual[i], UnknownLabelErr)
		}
		if err := cm.Add(p, t); err != nil {
			return Report{}, err
		}
	}

	ref, err := cm.Reference(classes)
	if err != nil {
		return Report{}, err
	}
	tp, fn, fp := Counts(classes, ref)

	precision, recall := ClassMetrics(tp, fn, fp)
	microPrecision, microRecall := MicroAverage(ref)
	macroPrecision, macroRecall := MacroAverage(precision, recall)

	return Report{
		Samples:        len(actual),
		Classes:        append([]Label{}, classes...),
		Confusion:      cm,
		Accuracy:       Accuracy(ref),
		MicroPrecision: microPrecision,
		MicroRecall:    microRecall,
		MacroPrecision: macroPrecision,
		MacroRecall:    macroRecall,
		Precision:      precision,
		Recall:         recall,
		TrueNegatives:  TrueNegatives(cm.Total(), tp),
	}, nil
}
