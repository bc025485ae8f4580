package model

import "github.com/esi-planning/timetabler/internal/pbc"

const (
	priorityScale   = 10
	preferenceBonus = 5
)

// buildObjective assigns every variable its contribution: priority scaled by
// 10, plus 5 when (day, start) hits a preferred slot of the owning professor.
// The 10-vs-5 scale keeps priorities dominant: for small priority values no
// pile of preference bonuses on a lower-priority session can outweigh placing
// a higher-priority one.
func buildObjective(ix *variableIndex) []pbc.Term {
	terms := make([]pbc.Term, 0, ix.Len())
	for i, c := range ix.candidates {
		weight := c.session.Priority * priorityScale
		if c.session.Professor.Prefers(c.key.Day, c.key.Start) {
			weight += preferenceBonus
		}
		terms = append(terms, pbc.Term{Var: i + 1, Weight: weight})
	}
	return terms
}
