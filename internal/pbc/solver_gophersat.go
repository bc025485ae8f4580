package pbc

import (
	"context"

	"github.com/crillab/gophersat/solver"
)

// gophersatSolver solves models in-process with gophersat's pseudo-boolean
// engine. gophersat decides satisfiability only, so the objective is handled
// by iterative strengthening: after each satisfying assignment a constraint
// demanding a strictly better objective is added, until the instance becomes
// unsatisfiable and the incumbent is proven optimal.
type gophersatSolver struct{}

func NewGophersatSolver() Solver {
	return &gophersatSolver{}
}

func (gs *gophersatSolver) Solve(ctx context.Context, m Model) (Solution, error) {
	if err := m.Validate(); err != nil {
		return Solution{Status: StatusInvalid}, err
	}
	if m.Variables == 0 {
		return Solution{Status: StatusOptimal, Values: []bool{}}, nil
	}
	if len(m.Constraints) == 0 {
		// Unconstrained: every positive-weight variable is simply switched on.
		// Validate has already run, so each term's variable indexes safely into
		// the values slice.
		values := make([]bool, m.Variables)
		for _, t := range m.Objective {
			if t.Weight > 0 {
				values[t.Var-1] = true
			}
		}
		return Solution{Status: StatusOptimal, Values: values, Objective: m.Evaluate(values)}, nil
	}

	base := make([]solver.PBConstr, 0, len(m.Constraints))
	for _, c := range m.Constraints {
		base = append(base, translate(c)...)
	}

	objVars, objWeights, ceiling := make([]int, 0, len(m.Objective)), make([]int, 0, len(m.Objective)), 0
	for _, t := range m.Objective {
		if t.Weight == 0 {
			continue
		}
		objVars = append(objVars, t.Var)
		objWeights = append(objWeights, t.Weight)
		if t.Weight > 0 {
			ceiling += t.Weight
		}
	}

	constrs := base
	var incumbent []bool
	incumbentObjective := 0
	for {
		if ctx.Err() != nil {
			return gs.interrupted(incumbent, incumbentObjective), nil
		}

		status, assignment := solveOnce(ctx, constrs)
		switch status {
		case solver.Indet:
			return gs.interrupted(incumbent, incumbentObjective), nil
		case solver.Unsat:
			if incumbent != nil {
				return Solution{Status: StatusOptimal, Values: incumbent, Objective: incumbentObjective}, nil
			}
			return Solution{Status: StatusInfeasible}, nil
		}

		values := make([]bool, m.Variables)
		copy(values, assignment)
		incumbent, incumbentObjective = values, m.Evaluate(values)

		if len(objVars) == 0 || incumbentObjective == ceiling {
			return Solution{Status: StatusOptimal, Values: incumbent, Objective: incumbentObjective}, nil
		}
		constrs = append(base[:len(base):len(base)],
			solver.GtEq(copyInts(objVars), copyInts(objWeights), incumbentObjective+1))
	}
}

func (gs *gophersatSolver) interrupted(incumbent []bool, objective int) Solution {
	if incumbent != nil {
		return Solution{Status: StatusFeasible, Values: incumbent, Objective: objective}
	}
	return Solution{Status: StatusUnknown}
}

// translate maps a linear constraint onto gophersat PB constraints. The
// gophersat constructors take ownership of their slice arguments and mutate
// them (LtEq negates literals in place, weights get re-sorted), so every call
// receives its own copy and the caller's model stays untouched.
func translate(c Constraint) []solver.PBConstr {
	switch {
	case c.Rel == LessOrEqual && c.Weights == nil:
		return []solver.PBConstr{solver.AtMost(copyInts(c.Vars), c.Bound)}
	case c.Rel == LessOrEqual:
		return []solver.PBConstr{solver.LtEq(copyInts(c.Vars), copyInts(c.Weights), c.Bound)}
	case c.Rel == GreaterOrEqual && c.Weights == nil:
		return []solver.PBConstr{solver.AtLeast(copyInts(c.Vars), c.Bound)}
	case c.Rel == GreaterOrEqual:
		return []solver.PBConstr{solver.GtEq(copyInts(c.Vars), copyInts(c.Weights), c.Bound)}
	default:
		weights := c.Weights
		if weights == nil {
			weights = unitWeights(len(c.Vars))
		}
		return []solver.PBConstr{
			solver.GtEq(copyInts(c.Vars), copyInts(weights), c.Bound),
			solver.LtEq(copyInts(c.Vars), copyInts(weights), c.Bound),
		}
	}
}

func copyInts(s []int) []int {
	return append([]int(nil), s...)
}

func unitWeights(n int) []int {
	weights := make([]int, n)
	for i := range weights {
		weights[i] = 1
	}
	return weights
}

// solveOnce builds a solver for the constraint set and runs one
// satisfiability check, reporting Indet if the context expires first. Both
// construction and search run under the guard, since construction already
// does simplification work proportional to the instance. gophersat offers no
// interruption hook, so an expired search is abandoned to finish in the
// background. The returned assignment is non-nil only for Sat.
func solveOnce(ctx context.Context, constrs []solver.PBConstr) (solver.Status, []bool) {
	run := func() (solver.Status, []bool) {
		s := solver.New(solver.ParsePBConstrs(constrs))
		if status := s.Solve(); status != solver.Sat {
			return status, nil
		}
		return solver.Sat, s.Model()
	}

	if ctx.Done() == nil {
		return run()
	}
	type result struct {
		status     solver.Status
		assignment []bool
	}
	done := make(chan result, 1)
	go func() {
		status, assignment := run()
		done <- result{status, assignment}
	}()
	select {
	case r := <-done:
		return r.status, r.assignment
	case <-ctx.Done():
		return solver.Indet, nil
	}
}
