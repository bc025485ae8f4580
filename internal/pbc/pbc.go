// Package pbc models pseudo-boolean constraint problems: linear constraints
// over boolean variables plus one linear maximization objective. Solving is
// delegated to Solver implementations.
package pbc

import (
	"context"
	"fmt"
)

// Status reported by a backend after a solve attempt.
type Status int

const (
	// StatusUnknown means the backend gave up (deadline or resource budget)
	// without a proof either way.
	StatusUnknown Status = iota
	// StatusOptimal means a satisfying assignment with proven best objective.
	StatusOptimal
	// StatusFeasible means a satisfying assignment without optimality proof.
	StatusFeasible
	// StatusInfeasible means the backend proved no satisfying assignment exists.
	StatusInfeasible
	// StatusInvalid means the model itself is malformed.
	StatusInvalid
)

func (s Status) String() string {
	switch s {
	case StatusOptimal:
		return "OPTIMAL"
	case StatusFeasible:
		return "FEASIBLE"
	case StatusInfeasible:
		return "INFEASIBLE"
	case StatusInvalid:
		return "INVALID"
	default:
		return "UNKNOWN"
	}
}

// Relation of a linear constraint's weighted sum to its bound.
type Relation int

const (
	LessOrEqual Relation = iota
	GreaterOrEqual
	Equal
)

func (r Relation) String() string {
	switch r {
	case LessOrEqual:
		return "<="
	case GreaterOrEqual:
		return ">="
	default:
		return "="
	}
}

// Constraint is a linear constraint over boolean variables:
// sum(Weights[i] * Vars[i]) Rel Bound. A nil Weights slice means unit weights.
// Variables are 1-based.
type Constraint struct {
	Vars    []int
	Weights []int
	Rel     Relation
	Bound   int
}

// AtMost states that at most n of the given variables are true.
func AtMost(vars []int, n int) Constraint {
	return Constraint{Vars: vars, Rel: LessOrEqual, Bound: n}
}

// Exactly states that exactly n of the given variables are true.
func Exactly(vars []int, n int) Constraint {
	return Constraint{Vars: vars, Rel: Equal, Bound: n}
}

// FixFalse pins a single variable to 0.
func FixFalse(v int) Constraint {
	return Constraint{Vars: []int{v}, Rel: Equal, Bound: 0}
}

// Term is one objective contribution: Weight earned when Var is true.
type Term struct {
	Var    int
	Weight int
}

// Model is a complete problem instance. The objective is always maximized;
// an empty objective turns the solve into a pure satisfiability check.
type Model struct {
	Variables   int
	Constraints []Constraint
	Objective   []Term
}

// Validate checks variable ranges and weight arity.
func (m Model) Validate() error {
	for i, c := range m.Constraints {
		if c.Weights != nil && len(c.Weights) != len(c.Vars) {
			return fmt.Errorf("constraint %d: %d weights for %d variables", i, len(c.Weights), len(c.Vars))
		}
		for _, v := range c.Vars {
			if v < 1 || v > m.Variables {
				return fmt.Errorf("constraint %d: variable %d out of range [1, %d]", i, v, m.Variables)
			}
		}
	}
	for i, t := range m.Objective {
		if t.Var < 1 || t.Var > m.Variables {
			return fmt.Errorf("objective term %d: variable %d out of range [1, %d]", i, t.Var, m.Variables)
		}
	}
	return nil
}

// Evaluate returns the objective value of an assignment. Values is indexed by
// variable-1.
func (m Model) Evaluate(values []bool) int {
	total := 0
	for _, t := range m.Objective {
		if values[t.Var-1] {
			total += t.Weight
		}
	}
	return total
}

// Solution of a solve attempt. Values is indexed by variable-1 and is non-nil
// only for StatusOptimal and StatusFeasible.
type Solution struct {
	Status    Status
	Values    []bool
	Objective int
}

// Solver is the backend contract: a stateless pure function of the posted
// model. Implementations honor the context deadline on a best-effort basis and
// report StatusUnknown when it expires before a proof is reached.
type Solver interface {
	Solve(ctx context.Context, model Model) (Solution, error)
}
