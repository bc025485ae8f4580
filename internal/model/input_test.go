package model

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

const sampleDocument = `{
	"horizon": {"biweekly": true},
	"rooms": [
		{"id": "td-1", "type": "tutorial_room", "capacity": 30},
		{"id": "lab-1", "type": "lab", "capacity": 20, "features": ["computers"]}
	],
	"professors": [
		{
			"id": "p1",
			"name": "P. One",
			"maxHoursPerDay": 6,
			"teaches": [{"subject": "algorithms", "grade": 1, "speciality": "cs"}],
			"available": [{"day": 0, "start": "08:30", "end": "09:45"}],
			"preferred": [{"day": 0, "start": "08:30", "end": "09:45"}]
		}
	],
	"groups": [
		{
			"id": "cs1", "name": "CS1", "size": 60, "grade": 1, "speciality": "cs",
			"tdGroups": [
				{"name": "A", "size": 30, "tpGroups": [{"name": "1", "size": 15}]}
			]
		}
	],
	"sessions": [
		{
			"id": "s1", "subject": "algorithms", "type": "tutorial",
			"roomType": "tutorial_room", "professor": "p1", "group": "cs1.A",
			"week": "biweekly_a", "priority": 2
		}
	]
}`

func writeDocument(t *testing.T, content string) string {
	t.Helper()
	file := filepath.Join(t.TempDir(), "input.json")
	if err := os.WriteFile(file, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return file
}

func TestInputFromJSON(t *testing.T) {
	t.Run("full document", func(t *testing.T) {
		// Act
		input, err := InputFromJSON(writeDocument(t, sampleDocument))

		// Assert
		assert.Nil(t, err)
		assert.True(t, input.Horizon.Biweekly)

		assert.Len(t, input.Rooms, 2)
		assert.Equal(t, LabRoom, input.Rooms[1].Type)
		assert.Equal(t, []string{"computers"}, input.Rooms[1].Features)

		assert.Len(t, input.Professors, 1)
		professor := input.Professors[0]
		assert.Equal(t, []TimeSlot{{Day: 0, Start: 510, End: 585}}, professor.Available)
		assert.True(t, professor.CanTeach("algorithms", 1, "cs"))
		assert.True(t, professor.Prefers(0, 510))

		assert.Len(t, input.Sessions, 1)
		session := input.Sessions[0]
		assert.Equal(t, Tutorial, session.Type)
		assert.Equal(t, BiweeklyA, session.Week)
		assert.Equal(t, 2, session.Priority)
		assert.Same(t, professor, session.Professor)
		assert.Equal(t, "cs1.A", session.Group.GroupID())
		assert.Equal(t, 30, session.Group.GroupSize())
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := InputFromJSON(filepath.Join(t.TempDir(), "absent.json"))
		assert.ErrorContains(t, err, "cannot read input file")
	})

	t.Run("malformed json", func(t *testing.T) {
		_, err := InputFromJSON(writeDocument(t, "{not json"))
		assert.ErrorContains(t, err, "cannot parse input file")
	})
}

func TestBuildInputErrors(t *testing.T) {
	base := func() inputDocument {
		return inputDocument{
			Rooms: []roomRecord{{ID: "td-1", Type: "tutorial_room", Capacity: 30}},
			Professors: []professorRecord{{
				ID:        "p1",
				Available: []slotRecord{{Day: 0, Start: "08:30", End: "09:45"}},
			}},
			Groups: []groupRecord{{ID: "cs1", Name: "CS1", Size: 30, Grade: 1, Speciality: "cs"}},
			Sessions: []sessionRecord{{
				ID: "s1", Subject: "algorithms", Type: "tutorial",
				RoomType: "tutorial_room", Professor: "p1", Group: "cs1",
			}},
		}
	}

	t.Run("unknown room type", func(t *testing.T) {
		doc := base()
		doc.Rooms[0].Type = "auditorium"
		_, err := buildInput(doc)
		assert.ErrorContains(t, err, `unknown room type "auditorium"`)
	})

	t.Run("unknown session type", func(t *testing.T) {
		doc := base()
		doc.Sessions[0].Type = "seminar"
		_, err := buildInput(doc)
		assert.ErrorContains(t, err, `unknown session type "seminar"`)
	})

	t.Run("unknown week pattern", func(t *testing.T) {
		doc := base()
		doc.Sessions[0].Week = "triweekly"
		_, err := buildInput(doc)
		assert.ErrorContains(t, err, `unknown week pattern "triweekly"`)
	})

	t.Run("unknown professor reference", func(t *testing.T) {
		doc := base()
		doc.Sessions[0].Professor = "p9"
		_, err := buildInput(doc)
		assert.ErrorContains(t, err, `unknown professor "p9"`)
	})

	t.Run("unknown group reference", func(t *testing.T) {
		doc := base()
		doc.Sessions[0].Group = "cs1.Z"
		_, err := buildInput(doc)
		assert.ErrorContains(t, err, `unknown group "cs1.Z"`)
	})

	t.Run("bad availability clock", func(t *testing.T) {
		doc := base()
		doc.Professors[0].Available[0].Start = "8h30"
		_, err := buildInput(doc)
		assert.ErrorContains(t, err, `professor "p1" availability`)
	})

	t.Run("duplicate group id", func(t *testing.T) {
		doc := base()
		doc.Groups = append(doc.Groups, doc.Groups[0])
		_, err := buildInput(doc)
		assert.ErrorContains(t, err, "duplicate group id")
	})
}

func TestBuildGroupTree(t *testing.T) {
	// Arrange
	record := groupRecord{
		ID: "cs1", Name: "CS1", Size: 60, Grade: 1, Speciality: "cs",
		TDGroups: []tdRecord{
			{Name: "A", Size: 30, TPGroups: []tpRecord{{Name: "1", Size: 15}, {Name: "2", Size: 15}}},
			{Name: "B", Size: 30},
		},
	}

	// Act
	main := buildGroupTree(record)

	// Assert: derived ids and inherited grade/speciality down the tree.
	assert.Nil(t, ValidateHierarchy([]MainGroup{main}))
	assert.Equal(t, "cs1.A", main.TDGroups[0].ID)
	assert.Equal(t, "cs1.B", main.TDGroups[1].ID)
	assert.Equal(t, "cs1.A.2", main.TDGroups[0].TPGroups[1].ID)
	assert.Equal(t, "cs1", main.TDGroups[0].ParentID)
	assert.Equal(t, "cs1.A", main.TDGroups[0].TPGroups[0].ParentID)
	assert.Equal(t, 1, main.TDGroups[0].TPGroups[0].GroupGrade())
	assert.Equal(t, "cs", main.TDGroups[0].TPGroups[0].GroupSpeciality())
}

func TestParseClock(t *testing.T) {
	cases := []struct {
		in      string
		minutes int
		ok      bool
	}{
		{"08:30", 510, true},
		{"00:00", 0, true},
		{"23:59", 1439, true},
		{"24:00", 0, false},
		{"12:60", 0, false},
		{"noon", 0, false},
		{"", 0, false},
	}
	for _, c := range cases {
		got, err := parseClock(c.in)
		if c.ok {
			assert.Nil(t, err, c.in)
			assert.Equal(t, c.minutes, got, c.in)
		} else {
			assert.NotNil(t, err, c.in)
		}
	}
}
