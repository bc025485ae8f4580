package model

import (
	"fmt"

	"github.com/samber/lo"
)

// WeekPattern distinguishes weekly sessions from the two alternating biweekly
// tracks.
type WeekPattern uint8

const (
	Weekly WeekPattern = iota
	BiweeklyA
	BiweeklyB
)

func (w WeekPattern) String() string {
	switch w {
	case BiweeklyA:
		return "biweekly_a"
	case BiweeklyB:
		return "biweekly_b"
	default:
		return "weekly"
	}
}

// Compatible reports whether two patterns can share calendar weeks: weekly
// shares with everything, the two specific tracks only with themselves.
func (w WeekPattern) Compatible(other WeekPattern) bool {
	return w == Weekly || other == Weekly || w == other
}

type RoomType uint8

const (
	Amphitheater RoomType = iota
	TutorialRoom
	LabRoom
)

func (r RoomType) String() string {
	switch r {
	case Amphitheater:
		return "amphitheater"
	case TutorialRoom:
		return "tutorial_room"
	default:
		return "lab"
	}
}

type SessionType uint8

const (
	Lecture SessionType = iota
	Tutorial
	Lab
)

func (s SessionType) String() string {
	switch s {
	case Lecture:
		return "lecture"
	case Tutorial:
		return "tutorial"
	default:
		return "lab"
	}
}

// TimeSlot is a candidate interval: day 0-4, start/end as minutes of day.
// It is a comparable value type; equality covers exactly these four fields.
type TimeSlot struct {
	Day   int
	Start int
	End   int
	Week  WeekPattern
}

// Overlaps reports whether two slots can collide on the calendar: same day,
// compatible week patterns and intersecting time ranges.
func (t TimeSlot) Overlaps(other TimeSlot) bool {
	if t.Day != other.Day || !t.Week.Compatible(other.Week) {
		return false
	}
	return t.Start < other.End && t.End > other.Start
}

// SubjectLevel is one teaching competence of a professor: a subject taught at
// a specific grade and speciality. Comparable; eligibility is exact matching.
type SubjectLevel struct {
	Subject    string
	Grade      int
	Speciality string
}

type Room struct {
	ID       string
	Type     RoomType
	Capacity int
	Features []string
}

// HasFeatures reports whether every required feature is present in the room.
func (r Room) HasFeatures(required []string) bool {
	return lo.Every(r.Features, required)
}

type Professor struct {
	ID             string
	Name           string
	Teaches        []SubjectLevel
	Available      []TimeSlot
	Preferred      []TimeSlot
	MaxHoursPerDay int
}

// CanTeach reports whether an exactly matching competence triple exists.
func (p *Professor) CanTeach(subject string, grade int, speciality string) bool {
	return lo.Contains(p.Teaches, SubjectLevel{Subject: subject, Grade: grade, Speciality: speciality})
}

// AvailableAt reports whether the professor declared availability matching the
// slot's day, start and end exactly. Week patterns are ignored: availability
// is declared on the day/hour grid.
func (p *Professor) AvailableAt(slot TimeSlot) bool {
	return lo.SomeBy(p.Available, func(a TimeSlot) bool {
		return a.Day == slot.Day && a.Start == slot.Start && a.End == slot.End
	})
}

// Prefers reports whether (day, start) matches a preferred slot. End times are
// ignored so a preference declared with any duration still matches.
func (p *Professor) Prefers(day, start int) bool {
	return lo.SomeBy(p.Preferred, func(s TimeSlot) bool {
		return s.Day == day && s.Start == start
	})
}

// MaxSessionsPerDay converts the hour budget into a session-count budget:
// every session occupies one 75-minute slot, counted as 1.5 hours, truncating
// towards zero.
func (p *Professor) MaxSessionsPerDay() int {
	return p.MaxHoursPerDay * 2 / 3
}

// Group is one level of the student hierarchy a session can be assigned to.
type Group interface {
	GroupID() string
	GroupName() string
	GroupSize() int
	GroupGrade() int
	GroupSpeciality() string
}

// MainGroup is a cohort owning its tutorial subgroups; TDGroup owns its lab
// subgroups. Back-references are parent ids resolved through the owning
// collection, never pointers, so the tree is owned strictly top-down.
type MainGroup struct {
	ID         string
	Name       string
	Size       int
	Grade      int
	Speciality string
	TDGroups   []TDGroup
}

type TDGroup struct {
	ID         string
	Name       string
	Size       int
	Grade      int
	Speciality string
	ParentID   string
	TPGroups   []TPGroup
}

type TPGroup struct {
	ID         string
	Name       string
	Size       int
	Grade      int
	Speciality string
	ParentID   string
}

func (g MainGroup) GroupID() string         { return g.ID }
func (g MainGroup) GroupName() string       { return g.Name }
func (g MainGroup) GroupSize() int          { return g.Size }
func (g MainGroup) GroupGrade() int         { return g.Grade }
func (g MainGroup) GroupSpeciality() string { return g.Speciality }

func (g TDGroup) GroupID() string         { return g.ID }
func (g TDGroup) GroupName() string       { return g.Name }
func (g TDGroup) GroupSize() int          { return g.Size }
func (g TDGroup) GroupGrade() int         { return g.Grade }
func (g TDGroup) GroupSpeciality() string { return g.Speciality }

func (g TPGroup) GroupID() string         { return g.ID }
func (g TPGroup) GroupName() string       { return g.Name }
func (g TPGroup) GroupSize() int          { return g.Size }
func (g TPGroup) GroupGrade() int         { return g.Grade }
func (g TPGroup) GroupSpeciality() string { return g.Speciality }

// ResolveGroup finds the hierarchy level carrying the id, walking the trees
// top-down.
func ResolveGroup(groups []MainGroup, id string) (Group, bool) {
	for _, main := range groups {
		if main.ID == id {
			return main, true
		}
		for _, td := range main.TDGroups {
			if td.ID == id {
				return td, true
			}
			for _, tp := range td.TPGroups {
				if tp.ID == id {
					return tp, true
				}
			}
		}
	}
	return nil, false
}

// ValidateHierarchy checks that ids are globally unique across all levels and
// that every child's parent id resolves back to its owner. Constraint passes
// group by raw id, so a duplicate across levels would silently merge two
// unrelated groups.
func ValidateHierarchy(groups []MainGroup) error {
	seen := make(map[string]bool)
	claim := func(id string) error {
		if id == "" {
			return fmt.Errorf("group with empty id")
		}
		if seen[id] {
			return fmt.Errorf("duplicate group id %q", id)
		}
		seen[id] = true
		return nil
	}

	for _, main := range groups {
		if err := claim(main.ID); err != nil {
			return err
		}
		for _, td := range main.TDGroups {
			if err := claim(td.ID); err != nil {
				return err
			}
			if td.ParentID != main.ID {
				return fmt.Errorf("td group %q has parent %q, owned by %q", td.ID, td.ParentID, main.ID)
			}
			for _, tp := range td.TPGroups {
				if err := claim(tp.ID); err != nil {
					return err
				}
				if tp.ParentID != td.ID {
					return fmt.Errorf("tp group %q has parent %q, owned by %q", tp.ID, tp.ParentID, td.ID)
				}
			}
		}
	}
	return nil
}

// Session is one teaching occurrence to be placed into exactly one slot and
// room. Group holds exactly one hierarchy level.
type Session struct {
	ID               string
	Subject          string
	Type             SessionType
	RoomType         RoomType
	Professor        *Professor
	Group            Group
	RequiredFeatures []string
	Week             WeekPattern
	Priority         int
}
