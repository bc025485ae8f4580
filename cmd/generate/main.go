// Command generate writes a small self-consistent sample instance, handy for
// demos and for exercising the CLI end to end.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
)

type slotJSON struct {
	Day   int    `json:"day"`
	Start string `json:"start"`
	End   string `json:"end"`
}

type subjectLevelJSON struct {
	Subject    string `json:"subject"`
	Grade      int    `json:"grade"`
	Speciality string `json:"speciality"`
}

type professorJSON struct {
	ID             string             `json:"id"`
	Name           string             `json:"name"`
	MaxHoursPerDay int                `json:"maxHoursPerDay"`
	Teaches        []subjectLevelJSON `json:"teaches"`
	Available      []slotJSON         `json:"available"`
	Preferred      []slotJSON         `json:"preferred,omitempty"`
}

type roomJSON struct {
	ID       string   `json:"id"`
	Type     string   `json:"type"`
	Capacity int      `json:"capacity"`
	Features []string `json:"features,omitempty"`
}

type tpJSON struct {
	Name string `json:"name"`
	Size int    `json:"size"`
}

type tdJSON struct {
	Name     string   `json:"name"`
	Size     int      `json:"size"`
	TPGroups []tpJSON `json:"tpGroups"`
}

type groupJSON struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Size       int      `json:"size"`
	Grade      int      `json:"grade"`
	Speciality string   `json:"speciality"`
	TDGroups   []tdJSON `json:"tdGroups"`
}

type sessionJSON struct {
	ID               string   `json:"id"`
	Subject          string   `json:"subject"`
	Type             string   `json:"type"`
	RoomType         string   `json:"roomType"`
	Professor        string   `json:"professor"`
	Group            string   `json:"group"`
	RequiredFeatures []string `json:"requiredFeatures,omitempty"`
	Week             string   `json:"week,omitempty"`
	Priority         int      `json:"priority"`
}

type instanceJSON struct {
	Horizon    map[string]any  `json:"horizon"`
	Rooms      []roomJSON      `json:"rooms"`
	Professors []professorJSON `json:"professors"`
	Groups     []groupJSON     `json:"groups"`
	Sessions   []sessionJSON   `json:"sessions"`
}

// weekdayMornings: availability windows at 08:30, 09:30 and 10:30 each day,
// matching the engine's grid slots.
func weekdayMornings() []slotJSON {
	slots := make([]slotJSON, 0, 10)
	for day := 0; day < 5; day++ {
		slots = append(slots,
			slotJSON{Day: day, Start: "08:30", End: "09:45"},
			slotJSON{Day: day, Start: "09:30", End: "10:45"},
			slotJSON{Day: day, Start: "10:30", End: "11:45"},
		)
	}
	return slots
}

func teaches(subject string) []subjectLevelJSON {
	return []subjectLevelJSON{{Subject: subject, Grade: 1, Speciality: "cs"}}
}

func main() {
	outPtr := flag.String("out", "sample.json", "Path of the instance file to write")
	flag.Parse()

	instance := instanceJSON{
		Horizon: map[string]any{"biweekly": false},
		Rooms: []roomJSON{
			{ID: "amphi-a", Type: "amphitheater", Capacity: 120, Features: []string{"projector"}},
			{ID: "td-1", Type: "tutorial_room", Capacity: 30},
			{ID: "td-2", Type: "tutorial_room", Capacity: 25},
			{ID: "lab-1", Type: "lab", Capacity: 20, Features: []string{"computers"}},
		},
		Professors: []professorJSON{
			{
				ID: "prof-math", Name: "Mathematics Professor", MaxHoursPerDay: 6,
				Teaches: teaches("mathematics"), Available: weekdayMornings(),
			},
			{
				ID: "prof-cs", Name: "Computer Science Professor", MaxHoursPerDay: 6,
				Teaches: teaches("computer-science"), Available: weekdayMornings(),
				Preferred: []slotJSON{{Day: 1, Start: "08:30", End: "09:45"}},
			},
			{
				ID: "prof-phy", Name: "Physics Professor", MaxHoursPerDay: 4,
				Teaches: teaches("physics"), Available: weekdayMornings(),
			},
		},
		Groups: []groupJSON{
			{
				ID: "cs1", Name: "CS first year", Size: 55, Grade: 1, Speciality: "cs",
				TDGroups: []tdJSON{
					{Name: "A", Size: 28, TPGroups: []tpJSON{{Name: "1", Size: 14}, {Name: "2", Size: 14}}},
					{Name: "B", Size: 27, TPGroups: []tpJSON{{Name: "1", Size: 14}, {Name: "2", Size: 13}}},
				},
			},
		},
		Sessions: []sessionJSON{
			{ID: "math-lec", Subject: "mathematics", Type: "lecture", RoomType: "amphitheater", Professor: "prof-math", Group: "cs1", Priority: 2},
			{ID: "cs-lec", Subject: "computer-science", Type: "lecture", RoomType: "amphitheater", Professor: "prof-cs", Group: "cs1", Priority: 2},
			{ID: "phy-lec", Subject: "physics", Type: "lecture", RoomType: "amphitheater", Professor: "prof-phy", Group: "cs1", Priority: 1},
			{ID: "math-td-a", Subject: "mathematics", Type: "tutorial", RoomType: "tutorial_room", Professor: "prof-math", Group: "cs1.A", Priority: 1},
			{ID: "cs-td-b", Subject: "computer-science", Type: "tutorial", RoomType: "tutorial_room", Professor: "prof-cs", Group: "cs1.B", Priority: 1},
			{ID: "cs-tp-a1", Subject: "computer-science", Type: "lab", RoomType: "lab", Professor: "prof-cs", Group: "cs1.A.1", RequiredFeatures: []string{"computers"}, Priority: 1},
		},
	}

	data, err := json.MarshalIndent(instance, "", "  ")
	if err != nil {
		log.Fatalf("cannot marshal instance: %v", err)
	}
	if err := os.WriteFile(*outPtr, data, 0666); err != nil {
		log.Fatalf("cannot write %v: %v", *outPtr, err)
	}
	fmt.Printf("wrote %v\n", *outPtr)
}
