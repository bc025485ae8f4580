package model

import (
	"context"
	"errors"
	"fmt"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/esi-planning/timetabler/internal/pbc"
)

// GenerationStatus discriminates the outcomes of a generation call, so a
// caller can tell proven infeasibility from an exhausted search from rejected
// input.
type GenerationStatus int

const (
	// StatusScheduled: every session received exactly one (day, start, room).
	StatusScheduled GenerationStatus = iota
	// StatusInfeasible: the backend proved no assignment satisfies the
	// constraints.
	StatusInfeasible
	// StatusTimedOut: the backend ran out of time or budget without a proof.
	StatusTimedOut
	// StatusRejected: at least one session had zero candidate variables; the
	// model was never solved. The offending ids are in Schedule.Unplaceable.
	StatusRejected
)

func (s GenerationStatus) String() string {
	switch s {
	case StatusScheduled:
		return "scheduled"
	case StatusInfeasible:
		return "infeasible"
	case StatusTimedOut:
		return "timed_out"
	default:
		return "rejected"
	}
}

// Assignment places one session: day, start minute of day, room id.
type Assignment struct {
	Day   int
	Start int
	Room  string
}

// Schedule is the engine's output, owned by the caller. Assignments is non-nil
// only for StatusScheduled; Unplaceable only for StatusRejected.
type Schedule struct {
	Status      GenerationStatus
	Assignments map[string]Assignment
	Objective   int
	Unplaceable []string
}

// Input carries fully-populated, caller-owned entity collections. The engine
// never mutates them and keeps no state between calls.
type Input struct {
	Sessions   []Session
	Rooms      []Room
	Professors []*Professor
	Groups     []MainGroup
	Horizon    Horizon
}

var (
	// ErrExtraction reports a feasible solver result the variable index could
	// not decode into a non-empty assignment map.
	ErrExtraction = errors.New("inconsistent solver result")
	// ErrInvalidModel reports a model the backend refused.
	ErrInvalidModel = errors.New("constraint model rejected by backend")
)

type Timetabler interface {
	// Generate builds a fresh model from the input and solves it. The error
	// return covers internal defects (invalid model, backend failure,
	// extraction inconsistency); domain outcomes travel in Schedule.Status.
	Generate(ctx context.Context, input Input) (Schedule, error)

	// Verify re-checks a scheduled result against every hard constraint.
	Verify(schedule Schedule, input Input) bool
}

func NewTimetabler(backend pbc.Solver, logger *zap.Logger) Timetabler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &pbTimetabler{backend: backend, log: logger}
}

type pbTimetabler struct {
	backend pbc.Solver
	log     *zap.Logger
}

// The passes are order-independent; this fixed order only keeps the posted
// model reproducible.
var constraintPasses = []struct {
	name  string
	build func(*variableIndex) []pbc.Constraint
}{
	{"session_once", sessionOnceConstraints},
	{"subject_non_overlap", subjectNonOverlapConstraints},
	{"room_exclusivity", roomExclusivityConstraints},
	{"professor_eligibility", professorEligibilityConstraints},
	{"professor_availability", professorAvailabilityConstraints},
	{"room_compatibility", roomCompatibilityConstraints},
	{"group_conflict", groupConflictConstraints},
	{"professor_workload", workloadConstraints},
}

func (t *pbTimetabler) Generate(ctx context.Context, input Input) (Schedule, error) {
	if len(input.Groups) > 0 {
		if err := ValidateHierarchy(input.Groups); err != nil {
			return Schedule{}, fmt.Errorf("group hierarchy: %w", err)
		}
	}

	slots := EnumerateSlots(input.Horizon)
	ix := buildVariableIndex(input.Sessions, input.Rooms, slots, t.log)

	if len(ix.unplaceable) > 0 {
		return Schedule{Status: StatusRejected, Unplaceable: ix.unplaceable}, nil
	}
	if ix.Len() == 0 {
		return Schedule{Status: StatusScheduled, Assignments: map[string]Assignment{}}, nil
	}

	m := pbc.Model{
		Variables: ix.Len(),
		Objective: buildObjective(ix),
	}
	for _, pass := range constraintPasses {
		constraints := pass.build(ix)
		t.log.Debug("constraint pass done",
			zap.String("pass", pass.name),
			zap.Int("constraints", len(constraints)))
		m.Constraints = append(m.Constraints, constraints...)
	}

	solution, err := t.backend.Solve(ctx, m)
	if err != nil {
		return Schedule{}, fmt.Errorf("backend solve: %w", err)
	}
	t.log.Debug("backend returned",
		zap.Stringer("status", solution.Status),
		zap.Int("objective", solution.Objective))

	switch solution.Status {
	case pbc.StatusInfeasible:
		return Schedule{Status: StatusInfeasible}, nil
	case pbc.StatusUnknown:
		return Schedule{Status: StatusTimedOut}, nil
	case pbc.StatusInvalid:
		return Schedule{}, ErrInvalidModel
	}

	assignments, err := extractAssignments(ix, solution.Values)
	if err != nil {
		return Schedule{}, err
	}
	return Schedule{
		Status:      StatusScheduled,
		Assignments: assignments,
		Objective:   solution.Objective,
	}, nil
}

// extractAssignments decodes every true variable through the index. A true
// variable outside the index, or a feasible result decoding to an empty map,
// is an internal inconsistency, never a valid "no sessions" outcome.
func extractAssignments(ix *variableIndex, values []bool) (map[string]Assignment, error) {
	if len(values) != ix.Len() {
		return nil, fmt.Errorf("%w: %d values for %d variables", ErrExtraction, len(values), ix.Len())
	}
	assignments := make(map[string]Assignment)
	for i, set := range values {
		if !set {
			continue
		}
		key, ok := ix.Key(i + 1)
		if !ok {
			return nil, fmt.Errorf("%w: variable %d has no key", ErrExtraction, i+1)
		}
		assignments[key.Session] = Assignment{Day: key.Day, Start: key.Start, Room: key.Room}
	}
	if len(assignments) == 0 {
		return nil, fmt.Errorf("%w: feasible status with empty assignment", ErrExtraction)
	}
	return assignments, nil
}

func (t *pbTimetabler) Verify(schedule Schedule, input Input) bool {
	if schedule.Status != StatusScheduled {
		return false
	}

	rooms := lo.KeyBy(input.Rooms, func(r Room) string { return r.ID })
	grid := make(map[daySlot]TimeSlot)
	for _, slot := range EnumerateSlots(input.Horizon) {
		grid[daySlot{slot.Day, slot.Start}] = slot
	}

	type slotRoom struct {
		slot daySlot
		room string
	}
	type slotLabel struct {
		slot  daySlot
		label string
	}
	type professorDay struct {
		professor string
		day       int
	}
	roomUse := make(map[slotRoom]bool)
	subjectUse := make(map[slotLabel]bool)
	groupUse := make(map[slotLabel]bool)
	dailyLoad := make(map[professorDay]int)

	for i := range input.Sessions {
		session := &input.Sessions[i]
		assignment, ok := schedule.Assignments[session.ID]
		if !ok {
			return false
		}

		at := daySlot{assignment.Day, assignment.Start}
		slot, onGrid := grid[at]
		if !onGrid {
			return false
		}
		room, known := rooms[assignment.Room]
		if !known || room.Type != session.RoomType {
			return false
		}
		if session.Group.GroupSize() > room.Capacity || !room.HasFeatures(session.RequiredFeatures) {
			return false
		}
		if !session.Professor.AvailableAt(slot) ||
			!session.Professor.CanTeach(session.Subject, session.Group.GroupGrade(), session.Group.GroupSpeciality()) {
			return false
		}

		if roomUse[slotRoom{at, room.ID}] {
			return false
		}
		roomUse[slotRoom{at, room.ID}] = true

		if subjectUse[slotLabel{at, session.Subject}] {
			return false
		}
		subjectUse[slotLabel{at, session.Subject}] = true

		if groupUse[slotLabel{at, session.Group.GroupID()}] {
			return false
		}
		groupUse[slotLabel{at, session.Group.GroupID()}] = true

		load := professorDay{session.Professor.ID, assignment.Day}
		dailyLoad[load]++
		if dailyLoad[load] > session.Professor.MaxSessionsPerDay() {
			return false
		}
	}

	return true
}
