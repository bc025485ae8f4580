package model

import (
	"github.com/esi-planning/timetabler/internal/pbc"
)

// The hard-constraint passes. Each is a pure function of the variable index,
// emits its own constraint set and reads nothing produced by another pass, so
// their relative order is irrelevant. Emission order within a pass follows
// variable order, keeping the posted model reproducible across runs.

// daySlot scopes a constraint to one (day, start) column of the week.
type daySlot struct {
	day   int
	start int
}

// varGroup collects the variables sharing a grouping key, in first-appearance
// order.
type varGroup[K comparable] struct {
	key  K
	vars []int
}

func groupVariables[K comparable](ix *variableIndex, keyOf func(candidate) K) []varGroup[K] {
	position := make(map[K]int)
	groups := make([]varGroup[K], 0)
	for i, c := range ix.candidates {
		key := keyOf(c)
		at, ok := position[key]
		if !ok {
			at = len(groups)
			position[key] = at
			groups = append(groups, varGroup[K]{key: key})
		}
		groups[at].vars = append(groups[at].vars, i+1)
	}
	return groups
}

// sessionOnceConstraints: every session with at least one candidate is placed
// exactly once. Sessions with zero candidates contribute nothing here; the
// orchestrator rejects them before the model is solved.
func sessionOnceConstraints(ix *variableIndex) []pbc.Constraint {
	groups := groupVariables(ix, func(c candidate) string { return c.session.ID })
	constraints := make([]pbc.Constraint, 0, len(groups))
	for _, g := range groups {
		constraints = append(constraints, pbc.Exactly(g.vars, 1))
	}
	return constraints
}

// subjectNonOverlapConstraints: at most one session of a given subject label
// per (day, start), globally — regardless of grade, group or professor.
func subjectNonOverlapConstraints(ix *variableIndex) []pbc.Constraint {
	type slotSubject struct {
		slot    daySlot
		subject string
	}
	groups := groupVariables(ix, func(c candidate) slotSubject {
		return slotSubject{daySlot{c.key.Day, c.key.Start}, c.session.Subject}
	})
	constraints := make([]pbc.Constraint, 0, len(groups))
	for _, g := range groups {
		constraints = append(constraints, pbc.AtMost(g.vars, 1))
	}
	return constraints
}

// roomExclusivityConstraints: at most one session per (day, start, room).
func roomExclusivityConstraints(ix *variableIndex) []pbc.Constraint {
	type slotRoom struct {
		slot daySlot
		room string
	}
	groups := groupVariables(ix, func(c candidate) slotRoom {
		return slotRoom{daySlot{c.key.Day, c.key.Start}, c.key.Room}
	})
	constraints := make([]pbc.Constraint, 0, len(groups))
	for _, g := range groups {
		constraints = append(constraints, pbc.AtMost(g.vars, 1))
	}
	return constraints
}

// professorEligibilityConstraints: a candidate whose professor holds no exact
// (subject, grade, speciality) competence for the session is pinned to 0.
// Per-variable equalities rather than a summed inequality, preserving stable
// variable identity for the other passes.
func professorEligibilityConstraints(ix *variableIndex) []pbc.Constraint {
	constraints := make([]pbc.Constraint, 0)
	for i, c := range ix.candidates {
		group := c.session.Group
		if !c.session.Professor.CanTeach(c.session.Subject, group.GroupGrade(), group.GroupSpeciality()) {
			constraints = append(constraints, pbc.FixFalse(i+1))
		}
	}
	return constraints
}

// professorAvailabilityConstraints: a candidate at a slot the professor never
// declared available is pinned to 0. The variable pre-filter already enforces
// this, so the pass normally emits nothing; it keeps the model correct should
// the pre-filter ever loosen.
func professorAvailabilityConstraints(ix *variableIndex) []pbc.Constraint {
	constraints := make([]pbc.Constraint, 0)
	for i, c := range ix.candidates {
		if !c.session.Professor.AvailableAt(c.slot) {
			constraints = append(constraints, pbc.FixFalse(i+1))
		}
	}
	return constraints
}

// roomCompatibilityConstraints: a candidate is pinned to 0 when the group
// outgrows the room or a required feature is missing.
func roomCompatibilityConstraints(ix *variableIndex) []pbc.Constraint {
	constraints := make([]pbc.Constraint, 0)
	for i, c := range ix.candidates {
		if c.session.Group.GroupSize() > c.room.Capacity || !c.room.HasFeatures(c.session.RequiredFeatures) {
			constraints = append(constraints, pbc.FixFalse(i+1))
		}
	}
	return constraints
}

// groupConflictConstraints: at most one session per student group per
// (day, start). Grouping is by raw group id, which is why ids must be unique
// across all hierarchy levels.
func groupConflictConstraints(ix *variableIndex) []pbc.Constraint {
	type slotGroup struct {
		slot  daySlot
		group string
	}
	groups := groupVariables(ix, func(c candidate) slotGroup {
		return slotGroup{daySlot{c.key.Day, c.key.Start}, c.session.Group.GroupID()}
	})
	constraints := make([]pbc.Constraint, 0)
	for _, g := range groups {
		if len(g.vars) > 1 {
			constraints = append(constraints, pbc.AtMost(g.vars, 1))
		}
	}
	return constraints
}

// workloadConstraints: per professor per day, the session count stays within
// the hour budget converted to sessions (see Professor.MaxSessionsPerDay).
func workloadConstraints(ix *variableIndex) []pbc.Constraint {
	type professorDay struct {
		professor *Professor
		day       int
	}
	groups := groupVariables(ix, func(c candidate) professorDay {
		return professorDay{c.session.Professor, c.key.Day}
	})
	constraints := make([]pbc.Constraint, 0, len(groups))
	for _, g := range groups {
		constraints = append(constraints, pbc.AtMost(g.vars, g.key.professor.MaxSessionsPerDay()))
	}
	return constraints
}
