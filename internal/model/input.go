package model

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
)

// Wire records for JSON input files. Decoded through mapstructure into these
// shapes, then resolved into entity collections: group hierarchies are built
// top-down with derived child ids, sessions are matched to professors, rooms
// and groups by id.

type inputDocument struct {
	Horizon    horizonRecord     `mapstructure:"horizon"`
	Rooms      []roomRecord      `mapstructure:"rooms"`
	Professors []professorRecord `mapstructure:"professors"`
	Groups     []groupRecord     `mapstructure:"groups"`
	Sessions   []sessionRecord   `mapstructure:"sessions"`
}

type horizonRecord struct {
	Biweekly bool `mapstructure:"biweekly"`
}

type roomRecord struct {
	ID       string   `mapstructure:"id"`
	Type     string   `mapstructure:"type"`
	Capacity int      `mapstructure:"capacity"`
	Features []string `mapstructure:"features"`
}

type slotRecord struct {
	Day   int    `mapstructure:"day"`
	Start string `mapstructure:"start"`
	End   string `mapstructure:"end"`
}

type subjectLevelRecord struct {
	Subject    string `mapstructure:"subject"`
	Grade      int    `mapstructure:"grade"`
	Speciality string `mapstructure:"speciality"`
}

type professorRecord struct {
	ID             string               `mapstructure:"id"`
	Name           string               `mapstructure:"name"`
	MaxHoursPerDay int                  `mapstructure:"maxHoursPerDay"`
	Teaches        []subjectLevelRecord `mapstructure:"teaches"`
	Available      []slotRecord         `mapstructure:"available"`
	Preferred      []slotRecord         `mapstructure:"preferred"`
}

type tpRecord struct {
	Name string `mapstructure:"name"`
	Size int    `mapstructure:"size"`
}

type tdRecord struct {
	Name     string     `mapstructure:"name"`
	Size     int        `mapstructure:"size"`
	TPGroups []tpRecord `mapstructure:"tpGroups"`
}

type groupRecord struct {
	ID         string     `mapstructure:"id"`
	Name       string     `mapstructure:"name"`
	Size       int        `mapstructure:"size"`
	Grade      int        `mapstructure:"grade"`
	Speciality string     `mapstructure:"speciality"`
	TDGroups   []tdRecord `mapstructure:"tdGroups"`
}

type sessionRecord struct {
	ID               string   `mapstructure:"id"`
	Subject          string   `mapstructure:"subject"`
	Type             string   `mapstructure:"type"`
	RoomType         string   `mapstructure:"roomType"`
	Professor        string   `mapstructure:"professor"`
	Group            string   `mapstructure:"group"`
	RequiredFeatures []string `mapstructure:"requiredFeatures"`
	Week             string   `mapstructure:"week"`
	Priority         int      `mapstructure:"priority"`
}

// InputFromJSON reads an input file and resolves it into entity collections.
func InputFromJSON(file string) (Input, error) {
	raw, err := os.ReadFile(file)
	if err != nil {
		return Input{}, fmt.Errorf("cannot read input file: %w", err)
	}
	var inputJSON map[string]any
	if err := json.Unmarshal(raw, &inputJSON); err != nil {
		return Input{}, fmt.Errorf("cannot parse input file: %w", err)
	}

	var doc inputDocument
	if err := mapstructure.Decode(inputJSON, &doc); err != nil {
		return Input{}, fmt.Errorf("cannot decode input file: %w", err)
	}
	return buildInput(doc)
}

func buildInput(doc inputDocument) (Input, error) {
	horizon := DefaultHorizon()
	horizon.Biweekly = doc.Horizon.Biweekly

	rooms := make([]Room, 0, len(doc.Rooms))
	for _, r := range doc.Rooms {
		roomType, err := parseRoomType(r.Type)
		if err != nil {
			return Input{}, fmt.Errorf("room %q: %w", r.ID, err)
		}
		rooms = append(rooms, Room{ID: r.ID, Type: roomType, Capacity: r.Capacity, Features: r.Features})
	}

	professors := make([]*Professor, 0, len(doc.Professors))
	professorsByID := make(map[string]*Professor, len(doc.Professors))
	for _, p := range doc.Professors {
		available, err := parseSlots(p.Available)
		if err != nil {
			return Input{}, fmt.Errorf("professor %q availability: %w", p.ID, err)
		}
		preferred, err := parseSlots(p.Preferred)
		if err != nil {
			return Input{}, fmt.Errorf("professor %q preferences: %w", p.ID, err)
		}
		professor := &Professor{
			ID:             p.ID,
			Name:           p.Name,
			MaxHoursPerDay: p.MaxHoursPerDay,
			Available:      available,
			Preferred:      preferred,
		}
		for _, sl := range p.Teaches {
			professor.Teaches = append(professor.Teaches, SubjectLevel(sl))
		}
		professors = append(professors, professor)
		professorsByID[p.ID] = professor
	}

	groups := make([]MainGroup, 0, len(doc.Groups))
	for _, g := range doc.Groups {
		groups = append(groups, buildGroupTree(g))
	}
	if err := ValidateHierarchy(groups); err != nil {
		return Input{}, err
	}

	sessions := make([]Session, 0, len(doc.Sessions))
	for _, s := range doc.Sessions {
		sessionType, err := parseSessionType(s.Type)
		if err != nil {
			return Input{}, fmt.Errorf("session %q: %w", s.ID, err)
		}
		roomType, err := parseRoomType(s.RoomType)
		if err != nil {
			return Input{}, fmt.Errorf("session %q: %w", s.ID, err)
		}
		week, err := parseWeekPattern(s.Week)
		if err != nil {
			return Input{}, fmt.Errorf("session %q: %w", s.ID, err)
		}
		professor, ok := professorsByID[s.Professor]
		if !ok {
			return Input{}, fmt.Errorf("session %q references unknown professor %q", s.ID, s.Professor)
		}
		group, ok := ResolveGroup(groups, s.Group)
		if !ok {
			return Input{}, fmt.Errorf("session %q references unknown group %q", s.ID, s.Group)
		}
		sessions = append(sessions, Session{
			ID:               s.ID,
			Subject:          s.Subject,
			Type:             sessionType,
			RoomType:         roomType,
			Professor:        professor,
			Group:            group,
			RequiredFeatures: s.RequiredFeatures,
			Week:             week,
			Priority:         s.Priority,
		})
	}

	return Input{
		Sessions:   sessions,
		Rooms:      rooms,
		Professors: professors,
		Groups:     groups,
		Horizon:    horizon,
	}, nil
}

// buildGroupTree derives child ids from the parent's id path, so ids stay
// globally unique as long as sibling names are.
func buildGroupTree(record groupRecord) MainGroup {
	main := MainGroup{
		ID:         record.ID,
		Name:       record.Name,
		Size:       record.Size,
		Grade:      record.Grade,
		Speciality: record.Speciality,
	}
	for _, td := range record.TDGroups {
		tdGroup := TDGroup{
			ID:         main.ID + "." + td.Name,
			Name:       td.Name,
			Size:       td.Size,
			Grade:      main.Grade,
			Speciality: main.Speciality,
			ParentID:   main.ID,
		}
		for _, tp := range td.TPGroups {
			tdGroup.TPGroups = append(tdGroup.TPGroups, TPGroup{
				ID:         tdGroup.ID + "." + tp.Name,
				Name:       tp.Name,
				Size:       tp.Size,
				Grade:      main.Grade,
				Speciality: main.Speciality,
				ParentID:   tdGroup.ID,
			})
		}
		main.TDGroups = append(main.TDGroups, tdGroup)
	}
	return main
}

func parseSlots(records []slotRecord) ([]TimeSlot, error) {
	slots := make([]TimeSlot, 0, len(records))
	for _, r := range records {
		start, err := parseClock(r.Start)
		if err != nil {
			return nil, err
		}
		end, err := parseClock(r.End)
		if err != nil {
			return nil, err
		}
		slots = append(slots, TimeSlot{Day: r.Day, Start: start, End: end})
	}
	return slots, nil
}

// parseClock converts "HH:MM" into minutes of day.
func parseClock(s string) (int, error) {
	var hour, minute int
	if _, err := fmt.Sscanf(s, "%d:%d", &hour, &minute); err != nil {
		return 0, fmt.Errorf("invalid clock value %q", s)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("invalid clock value %q", s)
	}
	return hour*60 + minute, nil
}

func parseRoomType(s string) (RoomType, error) {
	switch s {
	case "amphitheater":
		return Amphitheater, nil
	case "tutorial_room":
		return TutorialRoom, nil
	case "lab":
		return LabRoom, nil
	default:
		return 0, fmt.Errorf("unknown room type %q", s)
	}
}

func parseSessionType(s string) (SessionType, error) {
	switch s {
	case "lecture":
		return Lecture, nil
	case "tutorial":
		return Tutorial, nil
	case "lab":
		return Lab, nil
	default:
		return 0, fmt.Errorf("unknown session type %q", s)
	}
}

func parseWeekPattern(s string) (WeekPattern, error) {
	switch s {
	case "", "weekly":
		return Weekly, nil
	case "biweekly_a":
		return BiweeklyA, nil
	case "biweekly_b":
		return BiweeklyB, nil
	default:
		return 0, fmt.Errorf("unknown week pattern %q", s)
	}
}
