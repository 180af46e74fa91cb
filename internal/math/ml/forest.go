package ml

import (
	"fmt"

	"github.com/drakos74/go-ex-machina/xmath"
	randomforest "github.com/malaschitz/randomForest"
	"github.com/rs/zerolog/log"
)

// Forest is a random forest baseline over the same classes as the perceptron layer.
type Forest struct {
	trees   int
	classes []Label
	index   map[Label]int
	forest  *randomforest.Forest
}

// NewForest creates a new random forest with the given number of trees.
func NewForest(classes []Label, trees int) *Forest {
	index := make(map[Label]int, len(classes))
	for i, c := range classes {
		index[c] = i
	}
	return &Forest{
		trees:   trees,
		classes: append([]Label{}, classes...),
		index:   index,
	}
}

// Train fits the forest on the given samples.
func (rf *Forest) Train(samples []xmath.Vector, labels []Label) error {
	if len(samples) != len(labels) {
		return fmt.Errorf("%d samples vs %d labels: %w", len(samples), len(labels), InvalidInputErr)
	}
	if len(samples) == 0 {
		return fmt.Errorf("no samples to train: %w", InvalidInputErr)
	}
	xData := make([][]float64, len(samples))
	yData := make([]int, len(labels))
	for i, x := range samples {
		y, ok := rf.index[labels[i]]
		if !ok {
			return fmt.Errorf("sample %d '%s': %w", i, labels[i], UnknownLabelErr)
		}
		xData[i] = x
		yData[i] = y
	}

	forest := &randomforest.Forest{}
	forest.Data = randomforest.ForestData{X: xData, Class: yData}
	forest.Train(rf.trees)
	rf.forest = forest

	log.Info().
		Int("trees", rf.trees).
		Int("samples", len(samples)).
		Msg("trained forest")
	return nil
}

// Predict returns the class with the most votes.
func (rf *Forest) Predict(x xmath.Vector) (Label, error) {
	if rf.forest == nil {
		return "", fmt.Errorf("forest is not trained: %w", InvalidInputErr)
	}
	return rf.elect(rf.forest.Vote(x))
}

// elect picks the class with the highest vote.
func (rf *Forest) elect(votes []float64) (Label, error) {
	if len(votes) == 0 {
		return "", fmt.Errorf("no votes for %d classes: %w", len(rf.classes), InvalidInputErr)
	}
	i := argmax(votes)
	if i >= len(rf.classes) {
		return "", fmt.Errorf("vote for class index %d out of %d classes: %w", i, len(rf.classes), InvalidInputErr)
	}
	return rf.classes[i], nil
}
