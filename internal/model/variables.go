package model

import "go.uber.org/zap"

// VariableKey identifies one decision variable: "session occupies this slot
// in this room". A structured composite key, never a delimited string, so ids
// containing arbitrary characters cannot collide.
type VariableKey struct {
	Session string
	Day     int
	Start   int
	Room    string
}

// candidate pairs a variable key with the entities it was generated from, so
// constraint passes never re-resolve ids.
type candidate struct {
	key     VariableKey
	slot    TimeSlot
	session *Session
	room    *Room
}

// variableIndex is the bidirectional map between candidate (session, slot,
// room) combinations and the backend's 1-based boolean variables. Ephemeral:
// rebuilt from scratch on every generation call.
type variableIndex struct {
	candidates []candidate
	byKey      map[VariableKey]int
	// unplaceable lists sessions for which no candidate passed the
	// pre-filters, in input order.
	unplaceable []string
}

// buildVariableIndex enumerates feasible (session, slot, room) combinations.
// A candidate exists only if the room type matches the session's requirement
// and the slot exactly matches one of the professor's availability entries.
// With biweekly expansion the same day/hour grid repeats per pattern; the key
// carries no pattern, so repeats deduplicate here.
func buildVariableIndex(sessions []Session, rooms []Room, slots []TimeSlot, log *zap.Logger) *variableIndex {
	ix := &variableIndex{
		byKey: make(map[VariableKey]int),
	}

	for i := range sessions {
		session := &sessions[i]
		placed := false
		for _, slot := range slots {
			if !session.Professor.AvailableAt(slot) {
				continue
			}
			for j := range rooms {
				room := &rooms[j]
				if room.Type != session.RoomType {
					continue
				}
				key := VariableKey{
					Session: session.ID,
					Day:     slot.Day,
					Start:   slot.Start,
					Room:    room.ID,
				}
				if _, ok := ix.byKey[key]; ok {
					continue
				}
				ix.candidates = append(ix.candidates, candidate{
					key:     key,
					slot:    slot,
					session: session,
					room:    room,
				})
				ix.byKey[key] = len(ix.candidates)
				placed = true
			}
		}
		if !placed {
			log.Warn("session has no candidate variables",
				zap.String("session", session.ID),
				zap.String("professor", session.Professor.ID))
			ix.unplaceable = append(ix.unplaceable, session.ID)
		}
	}

	log.Debug("variable index built",
		zap.Int("sessions", len(sessions)),
		zap.Int("slots", len(slots)),
		zap.Int("rooms", len(rooms)),
		zap.Int("variables", len(ix.candidates)))
	return ix
}

func (ix *variableIndex) Len() int {
	return len(ix.candidates)
}

// Key returns the key of a 1-based variable.
func (ix *variableIndex) Key(variable int) (VariableKey, bool) {
	if variable < 1 || variable > len(ix.candidates) {
		return VariableKey{}, false
	}
	return ix.candidates[variable-1].key, true
}

// Variable returns the 1-based variable of a key.
func (ix *variableIndex) Variable(key VariableKey) (int, bool) {
	v, ok := ix.byKey[key]
	return v, ok
}
