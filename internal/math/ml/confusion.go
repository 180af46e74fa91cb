package ml

import (
	"fmt"

	coinmath "github.com/drakos74/slp/internal/math"
	"github.com/sjwhitworth/golearn/evaluation"
)

// ConfusionMatrix counts predictions against the actual classes.
// The element at [i][j] is the number of times class i was predicted while the true class was j.
type ConfusionMatrix [][]int

// NewConfusionMatrix creates a square confusion matrix for n classes.
func NewConfusionMatrix(n int) ConfusionMatrix {
	cm := make(ConfusionMatrix, n)
	for i := range cm {
		cm[i] = make([]int, n)
	}
	return cm
}

// Add counts one prediction.
func (cm ConfusionMatrix) Add(predicted, actual int) error {
	if predicted < 0 || predicted >= len(cm) || actual < 0 || actual >= len(cm) {
		return fmt.Errorf("index [%d][%d] out of range for %d classes: %w", predicted, actual, len(cm), InvalidInputErr)
	}
	cm[predicted][actual]++
	return nil
}

// Total returns the number of counted predictions.
func (cm ConfusionMatrix) Total() int {
	var total int
	for _, row := range cm {
		total += coinmath.Sum(row)
	}
	return total
}

// Reference returns the matrix in the golearn layout, keyed by the true class and then the predicted one.
// Every class gets an entry, even if it never occurs.
func (cm ConfusionMatrix) Reference(classes []Label) (evaluation.ConfusionMatrix, error) {
	if len(classes) != len(cm) {
		return nil, fmt.Errorf("%d classes for a matrix of %d: %w", len(classes), len(cm), InvalidInputErr)
	}
	ref := make(evaluation.ConfusionMatrix, len(classes))
	for t, actual := range classes {
		row := make(map[string]int, len(classes))
		for p, predicted := range classes {
			row[string(predicted)] = cm[p][t]
		}
		ref[string(actual)] = row
	}
	return ref, nil
}

// Counts returns the true positives, false negatives and false positives per class, in the order of the classes.
// NOTE : the false negatives follow the predicted rows of the matrix,
// which makes them the golearn false positives, and the other way round.
func Counts(classes []Label, ref evaluation.ConfusionMatrix) (tp, fn, fp []int) {
	tp = make([]int, len(classes))
	fn = make([]int, len(classes))
	fp = make([]int, len(classes))
	for i, c := range classes {
		tp[i] = int(evaluation.GetTruePositives(string(c), ref))
		fn[i] = int(evaluation.GetFalsePositives(string(c), ref))
		fp[i] = int(evaluation.GetFalseNegatives(string(c), ref))
	}
	return tp, fn, fp
}

// TrueNegatives returns the aggregate count of all off-diagonal elements.
func TrueNegatives(total int, tp []int) int {
	return total - coinmath.Sum(tp)
}
