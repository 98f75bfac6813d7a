package expr

import (
	"iter"
	"math/rand"

	"github.com/gomlx/exceptions"
	"golang.org/x/exp/constraints"

	"github.com/born-ml/lazy/internal/tensor"
)

// Mask is an inverse-dropout mask: every element is 1/(1-p) with
// probability 1-p and 0 otherwise.
//
// Values are drawn from the caller's RNG as they are read, so a Mask is not
// thread-safe: the assignment engine always evaluates it sequentially, and
// the RNG must not be shared with concurrent statements.
type Mask[T tensor.Numeric] struct {
	dims
	p     float64
	keep  T
	rng   *rand.Rand
	drawn int
}

// DropoutMask creates a mask of the given shape dropping elements with probability p.
func DropoutMask[T constraints.Float](shape tensor.Shape, p float64, rng *rand.Rand) *Mask[T] {
	if p < 0 || p >= 1 {
		exceptions.Panicf("dropout probability %g outside of [0, 1)", p)
	}
	if rng == nil {
		exceptions.Panicf("dropout mask requires a random number generator")
	}
	return &Mask[T]{
		dims: dims{shape: shape.Clone()},
		p:    p,
		keep: T(1 / (1 - p)),
		rng:  rng,
	}
}

// Probability returns the drop probability.
func (m *Mask[T]) Probability() float64 { return m.p }

// Drawn returns how many values have been drawn from the RNG so far.
func (m *Mask[T]) Drawn() int { return m.drawn }

func (m *Mask[T]) Class() Class     { return ClassSimple }
func (m *Mask[T]) ThreadSafe() bool { return false }

// At draws the next value; the index is ignored.
func (m *Mask[T]) At(int) T {
	m.drawn++
	if m.rng.Float64() < m.p {
		return 0
	}
	return m.keep
}

func (m *Mask[T]) At2(r, c int) T {
	m.checkAt2()
	return m.At(0)
}

func (m *Mask[T]) Iter() iter.Seq[T] {
	return m.IterRange(0, m.PaddedSize())
}

func (m *Mask[T]) IterRange(lo, hi int) iter.Seq[T] {
	return seqRange(m.At, lo, hi)
}

func (m *Mask[T]) sealed() {}
