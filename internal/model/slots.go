package model

// Horizon is the weekly grid the engine schedules into. The zero value is not
// usable; DefaultHorizon carries the institutional constants.
type Horizon struct {
	Days        int
	FirstHour   int
	LastHour    int
	LunchHour   int
	SlotMinutes int
	Biweekly    bool
}

// DefaultHorizon: five-day week, hours 8-17, 75-minute slots starting at the
// half hour, the 12:00 hour excluded.
func DefaultHorizon() Horizon {
	return Horizon{
		Days:        5,
		FirstHour:   8,
		LastHour:    17,
		LunchHour:   12,
		SlotMinutes: 75,
	}
}

// EnumerateSlots produces the week's candidate slots in a stable order: week
// pattern, then day, then hour. Variable numbering and constraint emission
// reuse this order, so two runs over the same input enumerate identically.
func EnumerateSlots(h Horizon) []TimeSlot {
	patterns := []WeekPattern{Weekly}
	if h.Biweekly {
		patterns = append(patterns, BiweeklyA, BiweeklyB)
	}

	slots := make([]TimeSlot, 0, len(patterns)*h.Days*(h.LastHour-h.FirstHour-1))
	for _, week := range patterns {
		for day := 0; day < h.Days; day++ {
			for hour := h.FirstHour; hour < h.LastHour; hour++ {
				if hour == h.LunchHour {
					continue
				}
				start := hour*60 + 30
				slots = append(slots, TimeSlot{
					Day:   day,
					Start: start,
					End:   start + h.SlotMinutes,
					Week:  week,
				})
			}
		}
	}
	return slots
}
