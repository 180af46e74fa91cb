package ml

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/drakos74/go-ex-machina/xmath"
	"github.com/drakos74/slp/internal/buffer"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	// defaultHistory is the number of recent training losses kept for the stats.
	defaultHistory = 100
)

var (
	InvalidInputErr = errors.New("invalid input")
	UnknownLabelErr = errors.New("unknown label")
)

// Label is the identifier of an output class.
type Label string

// Option configures the single layer perceptron on construction.
type Option func(s *SLP)

// WithRand sets the random source used for the weight initialisation.
func WithRand(rnd *rand.Rand) Option {
	return func(s *SLP) {
		s.rnd = rnd
	}
}

// WithSeed seeds the weight initialisation.
func WithSeed(seed int64) Option {
	return WithRand(rand.New(rand.NewSource(seed)))
}

// WithReporter sets the reporter for training progress and test results.
func WithReporter(reporter Reporter) Option {
	return func(s *SLP) {
		s.reporter = reporter
	}
}

// WithNorm overrides the normalisation coefficient of the forward and backward pass.
func WithNorm(norm float64) Option {
	return func(s *SLP) {
		s.norm = norm
	}
}

// WithHistory sets how many recent losses are kept.
func WithHistory(size int) Option {
	return func(s *SLP) {
		s.history = size
	}
}

// SLP is a single layer softmax perceptron classifier.
// Unit k of the output layer corresponds to class k.
type SLP struct {
	ID         string
	classes    []Label
	index      map[Label]int
	units      []*Perceptron
	features   int
	norm       float64
	history    int
	rnd        *rand.Rand
	reporter   Reporter
	iterations int
	losses     *buffer.Buffer
}

// New creates a new single layer perceptron for the given classes and input dimensionality.
func New(classes []Label, features int, opts ...Option) (*SLP, error) {
	if len(classes) == 0 {
		return nil, fmt.Errorf("no output classes: %w", InvalidInputErr)
	}
	if features <= 0 {
		return nil, fmt.Errorf("input dimensionality must be positive: %d: %w", features, InvalidInputErr)
	}

	index := make(map[Label]int, len(classes))
	for i, c := range classes {
		if _, ok := index[c]; ok {
			return nil, fmt.Errorf("duplicate class '%s': %w", c, InvalidInputErr)
		}
		index[c] = i
	}

	s := &SLP{
		ID:       uuid.New().String(),
		classes:  append([]Label{}, classes...),
		index:    index,
		features: features,
		norm:     DefaultNorm,
		history:  defaultHistory,
		reporter: LogReporter{},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rnd == nil {
		s.rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	s.losses = buffer.NewBuffer(s.history)

	s.units = make([]*Perceptron, len(classes))
	for i := range s.units {
		s.units[i] = NewPerceptron(features, s.rnd)
	}

	log.Debug().
		Str("model", s.ID).
		Int("classes", len(classes)).
		Int("features", features).
		Msg("created perceptron layer")

	return s, nil
}

// Classes returns the output classes in unit order.
func (s *SLP) Classes() []Label {
	return append([]Label{}, s.classes...)
}

// Features returns the input dimensionality.
func (s *SLP) Features() int {
	return s.features
}

// Weights returns a copy of the weights, one row per class.
func (s *SLP) Weights() xmath.Matrix {
	w := xmath.Mat(len(s.units))
	for i, u := range s.units {
		w[i] = u.Weights.Copy()
	}
	return w
}

// Index returns the position of the given label in the class list.
func (s *SLP) Index(label Label) (int, error) {
	i, ok := s.index[label]
	if !ok {
		return 0, fmt.Errorf("'%s' is not one of %v: %w", label, s.classes, UnknownLabelErr)
	}
	return i, nil
}

// Sums returns the linear sum of every unit for the given sample, in class order.
func (s *SLP) Sums(x xmath.Vector) (xmath.Vector, error) {
	sums := xmath.Vec(len(s.units))
	for i, u := range s.units {
		sum, err := u.LinSum(x, s.norm)
		if err != nil {
			return nil, err
		}
		sums[i] = sum
	}
	return sums, nil
}

// Softmax normalises the sums into a probability distribution.
// NOTE : there is no max subtraction, large sums overflow exp.
func (s *SLP) Softmax(sums xmath.Vector) xmath.Vector {
	var denominator float64
	for _, net := range sums {
		denominator += math.Exp(net)
	}
	softmax := xmath.Vec(len(sums))
	for i, net := range sums {
		softmax[i] = math.Exp(net) / denominator
	}
	return softmax
}

// Predict returns the class with the highest softmax for the given sample.
// On ties the first class wins.
func (s *SLP) Predict(x xmath.Vector) (Label, error) {
	sums, err := s.Sums(x)
	if err != nil {
		return "", err
	}
	return s.classes[argmax(s.Softmax(sums))], nil
}

func argmax(v []float64) int {
	var idx int
	for i := 1; i < len(v); i++ {
		if v[i] > v[idx] {
			idx = i
		}
	}
	return idx
}
