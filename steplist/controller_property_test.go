package steplist

import (
	"reflect"
	"sort"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// applyOp decodes a generated integer into add/remove/move with indices that
// may fall outside the current list.
func applyOp(c *Controller, code int) {
	a := (code/3)%8 - 1
	b := (code/24)%8 - 1
	switch code % 3 {
	case 0:
		c.AddStep()
	case 1:
		c.RemoveStep(a)
	case 2:
		c.MoveStep(a, b)
	}
}

func numberedByPosition(c *Controller) bool {
	for i, s := range c.Steps() {
		if s.StepNumber != i+1 {
			return false
		}
	}
	return true
}

func TestController_RenumberingProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	properties.Property("step numbers follow positions after every operation", prop.ForAll(
		func(ops []int) bool {
			c := New()
			for _, op := range ops {
				applyOp(c, op)
				if !numberedByPosition(c) {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.IntRange(0, 1000)),
	))

	properties.Property("step ids stay unique", prop.ForAll(
		func(ops []int) bool {
			c := New()
			seen := make(map[string]bool)
			for _, op := range ops {
				before := c.Len()
				applyOp(c, op)
				if c.Len() > before {
					id := c.Steps()[c.Len()-1].ID
					if seen[id] {
						return false
					}
					seen[id] = true
				}
			}
			return true
		},
		gen.SliceOf(gen.IntRange(0, 1000)),
	))

	properties.TestingRun(t)
}

func TestController_OutOfRangeMoveProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	properties.Property("moving with an out-of-range index changes nothing", prop.ForAll(
		func(n, offset, inRangeIdx int, fromSide bool) bool {
			c := New()
			for i := 0; i < n; i++ {
				c.AddStep()
			}
			before := c.Steps()

			bad := n + offset
			if offset%2 == 0 {
				bad = -1 - offset
			}
			valid := 0
			if n > 0 {
				valid = inRangeIdx % n
			}

			var moved bool
			if fromSide {
				moved = c.MoveStep(bad, valid)
			} else {
				moved = c.MoveStep(valid, bad)
			}
			return !moved && reflect.DeepEqual(before, c.Steps())
		},
		gen.IntRange(0, 10),
		gen.IntRange(0, 20),
		gen.IntRange(0, 100),
		gen.Bool(),
	))

	properties.TestingRun(t)
}

func TestReorder_PermutationProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	properties.Property("reorder returns a permutation and leaves input intact", prop.ForAll(
		func(list []int, from, to int) bool {
			input := append([]int{}, list...)
			out := Reorder(list, from, to)

			if !equalInts(input, list) || len(out) != len(list) {
				return false
			}
			a := append([]int{}, out...)
			b := append([]int{}, list...)
			sort.Ints(a)
			sort.Ints(b)
			if !equalInts(a, b) {
				return false
			}
			if from != to && from >= 0 && from < len(list) && to >= 0 && to < len(list) {
				return out[to] == list[from]
			}
			return equalInts(out, list)
		},
		gen.SliceOf(gen.Int()),
		gen.IntRange(-2, 12),
		gen.IntRange(-2, 12),
	))

	properties.TestingRun(t)
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
