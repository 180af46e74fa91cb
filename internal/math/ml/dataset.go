package ml

import (
	"fmt"
	"math/rand"
	"sort"
	"strconv"

	"github.com/drakos74/go-ex-machina/xmath"
	"github.com/rs/zerolog/log"
	"github.com/sjwhitworth/golearn/base"
)

// Dataset holds the feature vectors with their labels.
type Dataset struct {
	Classes []Label
	Vectors []xmath.Vector
	Labels  []Label
}

// Len returns the number of samples.
func (d *Dataset) Len() int {
	return len(d.Vectors)
}

// Features returns the input dimensionality, 0 for an empty set.
func (d *Dataset) Features() int {
	if len(d.Vectors) == 0 {
		return 0
	}
	return len(d.Vectors[0])
}

// LoadCSV loads the dataset from a csv file, with the class in the last column.
/**
5.1,3.5,1.4,0.2,Iris-setosa
4.9,3.0,1.4,0.2,Iris-setosa
...
*/
func LoadCSV(file string, headers bool) (*Dataset, error) {
	instances, err := base.ParseCSVToInstances(file, headers)
	if err != nil {
		return nil, fmt.Errorf("could not parse '%s': %w", file, err)
	}
	ds, err := FromInstances(instances)
	if err != nil {
		return nil, err
	}
	log.Info().
		Str("file", file).
		Int("samples", ds.Len()).
		Int("features", ds.Features()).
		Int("classes", len(ds.Classes)).
		Msg("loaded dataset")
	return ds, nil
}

// FromInstances converts the float attributes and the class of the grid into a dataset.
func FromInstances(grid base.FixedDataGrid) (*Dataset, error) {
	attrs := base.NonClassFloatAttributes(grid)
	if len(attrs) == 0 {
		return nil, fmt.Errorf("no float attributes: %w", InvalidInputErr)
	}
	if len(grid.AllClassAttributes()) != 1 {
		return nil, fmt.Errorf("expected exactly one class attribute but got %d: %w", len(grid.AllClassAttributes()), InvalidInputErr)
	}
	specs := base.ResolveAttributes(grid, attrs)

	_, rows := grid.Size()
	ds := &Dataset{
		Vectors: make([]xmath.Vector, rows),
		Labels:  make([]Label, rows),
	}
	seen := make(map[Label]bool)
	for r := 0; r < rows; r++ {
		v := xmath.Vec(len(specs))
		for i, spec := range specs {
			v[i] = base.UnpackBytesToFloat(grid.Get(spec, r))
		}
		label := Label(base.GetClass(grid, r))
		if !seen[label] {
			seen[label] = true
			ds.Classes = append(ds.Classes, label)
		}
		ds.Vectors[r] = v
		ds.Labels[r] = label
	}
	SortLabels(ds.Classes)
	return ds, nil
}

// SortLabels sorts the labels numerically if they are numbers, lexicographically otherwise.
func SortLabels(labels []Label) {
	sort.Slice(labels, func(i, j int) bool {
		a, errA := strconv.ParseFloat(string(labels[i]), 64)
		b, errB := strconv.ParseFloat(string(labels[j]), 64)
		if errA == nil && errB == nil {
			return a < b
		}
		return labels[i] < labels[j]
	})
}

// Split shuffles the dataset and splits it into a train and a test set.
// ratio is the share of samples that go to the test set.
func (d *Dataset) Split(ratio float64, rnd *rand.Rand) (train, test *Dataset, err error) {
	if ratio < 0 || ratio > 1 {
		return nil, nil, fmt.Errorf("split ratio must be within [0,1]: %v: %w", ratio, InvalidInputErr)
	}
	perm := rnd.Perm(d.Len())
	cut := d.Len() - int(float64(d.Len())*ratio)

	train = d.subset(perm[:cut])
	test = d.subset(perm[cut:])
	return train, test, nil
}

// Epochs replicates the dataset the given number of times, shuffling every copy.
// Training visits each sample once, so this is how more passes over the data are achieved.
func (d *Dataset) Epochs(n int, rnd *rand.Rand) *Dataset {
	idx := make([]int, 0, n*d.Len())
	for e := 0; e < n; e++ {
		idx = append(idx, rnd.Perm(d.Len())...)
	}
	return d.subset(idx)
}

func (d *Dataset) subset(idx []int) *Dataset {
	sub := &Dataset{
		Classes: append([]Label{}, d.Classes...),
		Vectors: make([]xmath.Vector, len(idx)),
		Labels:  make([]Label, len(idx)),
	}
	for i, j := range idx {
		sub.Vectors[i] = d.Vectors[j]
		sub.Labels[i] = d.Labels[j]
	}
	return sub
}
