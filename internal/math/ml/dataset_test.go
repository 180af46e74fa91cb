package ml

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/drakos74/go-ex-machina/xmath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const iris = `5.1,3.5,1.4,0.2,Iris-setosa
4.9,3.0,1.4,0.2,Iris-setosa
4.7,3.2,1.3,0.2,Iris-setosa
7.0,3.2,4.7,1.4,Iris-versicolor
6.4,3.2,4.5,1.5,Iris-versicolor
6.3,3.3,6.0,2.5,Iris-virginica
`

func TestLoadCSV(t *testing.T) {

	file := filepath.Join(t.TempDir(), "iris.csv")
	require.NoError(t, os.WriteFile(file, []byte(iris), 0644))

	ds, err := LoadCSV(file, false)
	require.NoError(t, err)

	assert.Equal(t, 6, ds.Len())
	assert.Equal(t, 4, ds.Features())
	assert.Equal(t, []Label{"Iris-setosa", "Iris-versicolor", "Iris-virginica"}, ds.Classes)
	assert.Equal(t, Label("Iris-versicolor"), ds.Labels[3])
	assert.InDeltaSlice(t, []float64{7.0, 3.2, 4.7, 1.4}, []float64(ds.Vectors[3]), 1e-9)

	_, err = LoadCSV(filepath.Join(t.TempDir(), "missing.csv"), false)
	assert.Error(t, err)
}

func TestSortLabels(t *testing.T) {

	numbers := []Label{"10", "2", "1"}
	SortLabels(numbers)
	assert.Equal(t, []Label{"1", "2", "10"}, numbers)

	words := []Label{"b", "c", "a"}
	SortLabels(words)
	assert.Equal(t, []Label{"a", "b", "c"}, words)
}

func newDataset(n int) *Dataset {
	ds := &Dataset{Classes: binary}
	for i := 0; i < n; i++ {
		ds.Vectors = append(ds.Vectors, xmath.Vector{float64(i)})
		ds.Labels = append(ds.Labels, binary[i%2])
	}
	return ds
}

func TestDataset_Split(t *testing.T) {

	ds := newDataset(10)

	train, test, err := ds.Split(0.3, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	assert.Equal(t, 7, train.Len())
	assert.Equal(t, 3, test.Len())
	assert.Equal(t, binary, test.Classes)

	seen := make(map[float64]bool)
	for _, d := range []*Dataset{train, test} {
		for i, v := range d.Vectors {
			seen[v[0]] = true
			// labels stay aligned with their vectors
			assert.Equal(t, binary[int(v[0])%2], d.Labels[i])
		}
	}
	assert.Equal(t, 10, len(seen))

	_, _, err = ds.Split(1.5, rand.New(rand.NewSource(1)))
	assert.Error(t, err)
}

func TestDataset_Epochs(t *testing.T) {

	ds := newDataset(3)

	epochs := ds.Epochs(2, rand.New(rand.NewSource(1)))
	assert.Equal(t, 6, epochs.Len())

	count := make(map[float64]int)
	for _, v := range epochs.Vectors {
		count[v[0]]++
	}
	assert.Equal(t, map[float64]int{0: 2, 1: 2, 2: 2}, count)

	assert.Equal(t, 0, ds.Epochs(0, rand.New(rand.NewSource(1))).Len())
	assert.Equal(t, 0, (&Dataset{}).Features())
}
