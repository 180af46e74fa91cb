package ml

import (
	"errors"
	"math"
	"testing"

	"github.com/drakos74/go-ex-machina/xmath"
	xml "github.com/drakos74/go-ex-machina/xmachina/ml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type progress struct {
	done  int
	total int
}

// recorder keeps all reported events.
type recorder struct {
	progress []progress
	reports  []Report
}

func (r *recorder) Progress(model string, done, total int) {
	r.progress = append(r.progress, progress{done: done, total: total})
}

func (r *recorder) Test(report Report) {
	r.reports = append(r.reports, report)
}

func TestSLP_CrossEntropy(t *testing.T) {

	s := newTestSLP(t, []Label{"a", "b", "c"}, 1)
	softmax := xmath.Vector{0.2, 0.5, 0.3}

	loss, err := s.CrossEntropy("b", softmax)
	require.NoError(t, err)
	// -p, not -log(p)
	assert.Equal(t, -0.5, loss)

	_, err = s.CrossEntropy("d", softmax)
	assert.True(t, errors.Is(err, UnknownLabelErr))

	_, err = s.CrossEntropy("c", xmath.Vector{1})
	assert.True(t, errors.Is(err, InvalidInputErr))
}

func TestSLP_BackPropagate(t *testing.T) {

	s := newTestSLP(t, []Label{"a", "b", "c"}, 2)

	softmax := xmath.Vector{0.2, 0.5, 0.3}
	x := xmath.Vector{512, 256}

	g := s.BackPropagate(softmax, 1, x)
	require.Equal(t, 3, len(g))

	expected := xmath.Matrix{
		{0.2, 0.1},
		{-0.5, -0.25},
		{0.3, 0.15},
	}
	for j := range expected {
		for i := range expected[j] {
			assert.InDelta(t, expected[j][i], g[j][i], 1e-12)
		}
	}

	// the norm is shared with the forward pass
	s = newTestSLP(t, []Label{"a", "b", "c"}, 2, WithNorm(1))
	g = s.BackPropagate(softmax, 0, xmath.Vector{1, 2})
	assert.InDelta(t, -0.8, g[0][0], 1e-12)
	assert.InDelta(t, -1.6, g[0][1], 1e-12)
	assert.InDelta(t, 0.5, g[1][0], 1e-12)
}

func TestSLP_UpdateWeights(t *testing.T) {

	s := newTestSLP(t, binary, 2)
	before := s.Weights()

	g := xmath.Matrix{{0.1, -0.2}, {0.3, 0.4}}

	// zero rate leaves the weights untouched
	require.NoError(t, s.UpdateWeights(0, g))
	assert.Equal(t, before, s.Weights())

	require.NoError(t, s.UpdateWeights(0.5, g))
	after := s.Weights()
	for j := range g {
		for i := range g[j] {
			assert.InDelta(t, before[j][i]-0.5*g[j][i], after[j][i], 1e-12)
		}
	}

	err := s.UpdateWeights(0.5, xmath.Matrix{{0.1, 0.2}})
	assert.True(t, errors.Is(err, InvalidInputErr))
	err = s.UpdateWeights(0.5, xmath.Matrix{{0.1}, {0.2}})
	assert.True(t, errors.Is(err, InvalidInputErr))
	assert.Equal(t, after, s.Weights())
}

func TestSLP_TrainSingleStep(t *testing.T) {

	s := newTestSLP(t, binary, 2)
	w := s.Weights()

	err := s.Train([]xmath.Vector{{1, 0}}, []Label{"0"}, Training{
		Rate:       xml.Rate(0.5),
		Iterations: 1,
	})
	require.NoError(t, err)

	e0 := math.Exp(1 * DefaultNorm * w[0][0])
	e1 := math.Exp(1 * DefaultNorm * w[1][0])
	s0 := e0 / (e0 + e1)
	s1 := e1 / (e0 + e1)

	after := s.Weights()
	assert.InDelta(t, w[0][0]-0.5*(DefaultNorm*(s0-1)), after[0][0], 1e-12)
	assert.InDelta(t, w[1][0]-0.5*(DefaultNorm*s1), after[1][0], 1e-12)
	// zero features get a zero gradient
	assert.Equal(t, w[0][1], after[0][1])
	assert.Equal(t, w[1][1], after[1][1])

	stats := s.Stats()
	assert.Equal(t, 1, stats.Iterations)
	require.Equal(t, 1, len(stats.Loss))
	assert.InDelta(t, -s0, stats.Loss[0], 1e-12)
}

func TestSLP_TrainNoop(t *testing.T) {

	type test struct {
		samples    []xmath.Vector
		labels     []Label
		iterations int
	}

	tests := map[string]test{
		"zero-iterations": {
			samples:    []xmath.Vector{{1, 2}, {3, 4}},
			labels:     []Label{"0", "1"},
			iterations: 0,
		},
		"negative-iterations": {
			samples:    []xmath.Vector{{1, 2}},
			labels:     []Label{"1"},
			iterations: -1,
		},
		"empty-data": {
			iterations: 10,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			s := newTestSLP(t, binary, 2)
			before := s.Weights()
			err := s.Train(tt.samples, tt.labels, Training{Iterations: tt.iterations})
			require.NoError(t, err)
			assert.Equal(t, before, s.Weights())
			assert.Equal(t, 0, s.Stats().Iterations)
		})
	}
}

func TestSLP_TrainLimit(t *testing.T) {

	type test struct {
		samples    int
		iterations int
		processed  int
	}

	tests := map[string]test{
		"cap-by-iterations": {
			samples:    10,
			iterations: 4,
			processed:  4,
		},
		"cap-by-data": {
			samples:    3,
			iterations: 5,
			processed:  3,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			rec := &recorder{}
			s := newTestSLP(t, binary, 1, WithReporter(rec))
			samples := make([]xmath.Vector, tt.samples)
			labels := make([]Label, tt.samples)
			for i := range samples {
				samples[i] = xmath.Vector{float64(i)}
				labels[i] = binary[i%2]
			}
			err := s.Train(samples, labels, Training{Iterations: tt.iterations})
			require.NoError(t, err)

			assert.Equal(t, tt.processed, s.Stats().Iterations)
			require.Equal(t, tt.processed, len(rec.progress))
			for i, p := range rec.progress {
				assert.Equal(t, progress{done: i, total: tt.processed}, p)
			}
		})
	}
}

func TestSLP_TrainInvalid(t *testing.T) {

	type test struct {
		samples []xmath.Vector
		labels  []Label
		err     error
	}

	tests := map[string]test{
		"size-mismatch": {
			samples: []xmath.Vector{{1, 2}},
			labels:  []Label{"0", "1"},
			err:     InvalidInputErr,
		},
		"wrong-dimension": {
			samples: []xmath.Vector{{1, 2}, {1, 2, 3}},
			labels:  []Label{"0", "1"},
			err:     InvalidInputErr,
		},
		"unknown-label": {
			samples: []xmath.Vector{{1, 2}, {1, 2}},
			labels:  []Label{"0", "2"},
			err:     UnknownLabelErr,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			s := newTestSLP(t, binary, 2)
			before := s.Weights()
			err := s.Train(tt.samples, tt.labels, DefaultTraining())
			assert.True(t, errors.Is(err, tt.err))
			// nothing is applied if any sample is invalid
			assert.Equal(t, before, s.Weights())
		})
	}
}

func TestSLP_TrainSeparable(t *testing.T) {

	s := newTestSLP(t, []Label{"left", "right"}, 2)

	samples := make([]xmath.Vector, 0)
	labels := make([]Label, 0)
	for i := 0; i < 100; i++ {
		v := float64(i % 50)
		samples = append(samples, xmath.Vector{200 + v, 10 + v/10})
		labels = append(labels, "left")
		samples = append(samples, xmath.Vector{10 + v/10, 200 + v})
		labels = append(labels, "right")
	}

	err := s.Train(samples, labels, DefaultTraining())
	require.NoError(t, err)
	assert.Equal(t, len(samples), s.Stats().Iterations)

	report, err := s.Test(samples, labels)
	require.NoError(t, err)
	assert.Equal(t, 1.0, report.Accuracy)

	stats := s.Stats()
	assert.Equal(t, defaultHistory, len(stats.Loss))
	for _, l := range stats.Loss {
		assert.True(t, l <= 0 && l >= -1)
	}
}

func TestDefaultTraining(t *testing.T) {
	cfg := DefaultTraining()
	assert.Equal(t, 0.5, cfg.Rate.WRate())
	assert.Equal(t, 3500, cfg.Iterations)
}
