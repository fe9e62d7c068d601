// Package classify turns a drawn grid into ranked digit predictions.
package classify

import (
	"errors"
	"sort"

	"github.com/nickkipshidze/digitpad/internal/grid"
	"github.com/nickkipshidze/digitpad/internal/overlay"
)

// ErrNilGrid is returned when a classifier is handed no grid.
var ErrNilGrid = errors.New("classify: nil grid")

// Labels names the ten digit classes in class order.
var Labels = [10]string{
	"0 - zero",
	"1 - one",
	"2 - two",
	"3 - three",
	"4 - four",
	"5 - five",
	"6 - six",
	"7 - seven",
	"8 - eight",
	"9 - nine",
}

// Prediction is the probability assigned to one class.
type Prediction struct {
	Class       int
	Label       string
	Probability float64
}

// Classifier scores a grid. Implementations return one Prediction per class,
// ordered by descending probability, with probabilities summing to 1.
type Classifier interface {
	Classify(g *grid.Grid) ([]Prediction, error)
}

// Func adapts a plain function to the Classifier interface.
type Func func(g *grid.Grid) ([]Prediction, error)

// Classify calls f(g).
func (f Func) Classify(g *grid.Grid) ([]Prediction, error) { return f(g) }

// Ranked returns a copy of preds sorted by descending probability, keeping
// the input order for ties. When n is positive at most n entries are kept.
func Ranked(preds []Prediction, n int) []Prediction {
	out := make([]Prediction, len(preds))
	copy(out, preds)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Probability > out[j].Probability
	})
	if n > 0 && n < len(out) {
		out = out[:n]
	}
	return out
}

// Entries converts predictions into overlay entries in the same order.
func Entries(preds []Prediction) []overlay.Entry {
	out := make([]overlay.Entry, len(preds))
	for i, p := range preds {
		out[i] = overlay.Entry{Label: p.Label, Probability: p.Probability}
	}
	return out
}
