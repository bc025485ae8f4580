package pbc

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGophersatSolve(t *testing.T) {
	solver := NewGophersatSolver()

	t.Run("exactly one of two", func(t *testing.T) {
		// Arrange
		m := Model{
			Variables:   2,
			Constraints: []Constraint{Exactly([]int{1, 2}, 1)},
		}

		// Act
		solution, err := solver.Solve(context.Background(), m)

		// Assert
		assert.Nil(t, err)
		assert.Equal(t, StatusOptimal, solution.Status)
		assert.NotEqual(t, solution.Values[0], solution.Values[1])
	})

	t.Run("objective picks the heavier variable", func(t *testing.T) {
		// Arrange
		m := Model{
			Variables:   2,
			Constraints: []Constraint{Exactly([]int{1, 2}, 1)},
			Objective:   []Term{{Var: 1, Weight: 10}, {Var: 2, Weight: 25}},
		}

		// Act
		solution, err := solver.Solve(context.Background(), m)

		// Assert
		assert.Nil(t, err)
		assert.Equal(t, StatusOptimal, solution.Status)
		assert.False(t, solution.Values[0])
		assert.True(t, solution.Values[1])
		assert.Equal(t, 25, solution.Objective)
	})

	t.Run("optimum under mutual exclusion", func(t *testing.T) {
		// Arrange: pick at most two of three, maximizing total weight.
		m := Model{
			Variables: 3,
			Constraints: []Constraint{
				AtMost([]int{1, 2, 3}, 2),
			},
			Objective: []Term{{Var: 1, Weight: 7}, {Var: 2, Weight: 3}, {Var: 3, Weight: 5}},
		}

		// Act
		solution, err := solver.Solve(context.Background(), m)

		// Assert
		assert.Nil(t, err)
		assert.Equal(t, StatusOptimal, solution.Status)
		assert.Equal(t, 12, solution.Objective)
		assert.True(t, solution.Values[0])
		assert.False(t, solution.Values[1])
		assert.True(t, solution.Values[2])
	})

	t.Run("infeasible", func(t *testing.T) {
		// Arrange: both forced true but at most one allowed.
		m := Model{
			Variables: 2,
			Constraints: []Constraint{
				Exactly([]int{1}, 1),
				Exactly([]int{2}, 1),
				AtMost([]int{1, 2}, 1),
			},
		}

		// Act
		solution, err := solver.Solve(context.Background(), m)

		// Assert
		assert.Nil(t, err)
		assert.Equal(t, StatusInfeasible, solution.Status)
	})

	t.Run("fixed variables stay off", func(t *testing.T) {
		// Arrange
		m := Model{
			Variables: 3,
			Constraints: []Constraint{
				Exactly([]int{1, 2, 3}, 1),
				FixFalse(1),
				FixFalse(3),
			},
		}

		// Act
		solution, err := solver.Solve(context.Background(), m)

		// Assert
		assert.Nil(t, err)
		assert.Equal(t, StatusOptimal, solution.Status)
		assert.Equal(t, []bool{false, true, false}, solution.Values)
	})

	t.Run("empty model", func(t *testing.T) {
		// Act
		solution, err := solver.Solve(context.Background(), Model{})

		// Assert
		assert.Nil(t, err)
		assert.Equal(t, StatusOptimal, solution.Status)
		assert.Empty(t, solution.Values)
	})

	t.Run("input model survives solving", func(t *testing.T) {
		// Arrange: equality and weighted constraints plus an objective, so
		// every translation branch touches the model's slices.
		m := Model{
			Variables: 3,
			Constraints: []Constraint{
				Exactly([]int{1, 2}, 1),
				{Vars: []int{1, 2, 3}, Weights: []int{2, 1, 1}, Rel: LessOrEqual, Bound: 3},
			},
			Objective: []Term{{Var: 1, Weight: 7}, {Var: 2, Weight: 3}, {Var: 3, Weight: 5}},
		}

		// Act
		first, err1 := solver.Solve(context.Background(), m)

		// Assert: the constraints read back exactly as posted.
		assert.Nil(t, err1)
		assert.Equal(t, StatusOptimal, first.Status)
		assert.Equal(t, []int{1, 2}, m.Constraints[0].Vars)
		assert.Equal(t, []int{1, 2, 3}, m.Constraints[1].Vars)
		assert.Equal(t, []int{2, 1, 1}, m.Constraints[1].Weights)

		// A second solve of the same model must agree with the first.
		second, err2 := solver.Solve(context.Background(), m)
		assert.Nil(t, err2)
		assert.Equal(t, StatusOptimal, second.Status)
		assert.Equal(t, first.Objective, second.Objective)
	})

	t.Run("expired context yields unknown", func(t *testing.T) {
		// Arrange
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		m := Model{
			Variables:   2,
			Constraints: []Constraint{Exactly([]int{1, 2}, 1)},
		}

		// Act
		solution, err := solver.Solve(ctx, m)

		// Assert
		assert.Nil(t, err)
		assert.Equal(t, StatusUnknown, solution.Status)
	})

	t.Run("expired context skips solver construction", func(t *testing.T) {
		// Arrange: a wide instance, so building the solver alone is real work.
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		vars := make([]int, 400)
		terms := make([]Term, 400)
		for i := range vars {
			vars[i] = i + 1
			terms[i] = Term{Var: i + 1, Weight: i % 9}
		}
		m := Model{
			Variables:   400,
			Constraints: []Constraint{Exactly(vars, 200)},
			Objective:   terms,
		}

		// Act
		solution, err := solver.Solve(ctx, m)

		// Assert: the deadline is honored before any search starts.
		assert.Nil(t, err)
		assert.Equal(t, StatusUnknown, solution.Status)
	})

	t.Run("invalid model", func(t *testing.T) {
		// Arrange: variable out of range.
		m := Model{
			Variables:   1,
			Constraints: []Constraint{Exactly([]int{1, 2}, 1)},
		}

		// Act
		solution, err := solver.Solve(context.Background(), m)

		// Assert
		assert.NotNil(t, err)
		assert.Equal(t, StatusInvalid, solution.Status)
	})
}

func TestModelEvaluate(t *testing.T) {
	m := Model{
		Variables: 3,
		Objective: []Term{{Var: 1, Weight: 10}, {Var: 2, Weight: 5}, {Var: 3, Weight: 20}},
	}
	assert.Equal(t, 30, m.Evaluate([]bool{true, false, true}))
	assert.Equal(t, 0, m.Evaluate([]bool{false, false, false}))
}
