package wizard

import (
	"fmt"

	"github.com/google/uuid"

	"staffloop/models"
)

// NewShift creates a shift with a stable opaque id. The id never changes when
// the shift is renamed, so staffing counts and assignments keyed by it survive
// renames.
func NewShift(name, startTime, endTime string) models.Shift {
	return models.Shift{
		ID:        uuid.New().String(),
		Name:      name,
		StartTime: startTime,
		EndTime:   endTime,
	}
}

// DeriveShiftID returns the key under which everything about a shift is
// stored: role shift-staff counts, staff assignment shift ids, attendance
// records. Shifts created here carry an opaque id; drafts hydrated from older
// clients may not, and fall back to the legacy name-or-index derivation.
//
// This is the single derivation point. Nothing else may invent a shift key.
func DeriveShiftID(s models.Shift, index int) string {
	if s.ID != "" {
		return s.ID
	}
	if s.Name != "" {
		return s.Name
	}
	return fmt.Sprintf("shift-%d", index)
}

// ShiftLabel is the display name, falling back to "Shift N" (1-based).
func ShiftLabel(s models.Shift, index int) string {
	if s.Name != "" {
		return s.Name
	}
	return fmt.Sprintf("Shift %d", index+1)
}

// FindShiftIndex locates a shift by its derived id. Returns -1 when absent.
func FindShiftIndex(schedule models.Schedule, shiftID string) int {
	for i, s := range schedule.Shifts {
		if DeriveShiftID(s, i) == shiftID {
			return i
		}
	}
	return -1
}
