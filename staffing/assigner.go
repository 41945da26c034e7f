package staffing

import (
	"context"
	"strings"

	"staffloop/models"
	"staffloop/utils"
	"staffloop/wizard"
)

// Roster is the external staff directory the assigner searches against.
type Roster interface {
	Search(ctx context.Context, query string) ([]models.StaffRef, error)
}

// SearchOptions controls FindAssignableStaff. The default keeps already
// assigned staff in the results: one person may hold multiple roles.
type SearchOptions struct {
	ExcludeAssigned bool
	Draft           models.EventDraft
}

// FindAssignableStaff matches the query case-insensitively as a substring of
// the staff name. With ExcludeAssigned set, staff already holding any slot in
// the draft are dropped.
func FindAssignableStaff(ctx context.Context, roster Roster, query string, opts SearchOptions) ([]models.StaffRef, error) {
	results, err := roster.Search(ctx, query)
	if err != nil {
		return nil, err
	}

	q := utils.NormalizeQuery(query)
	var assigned map[string]bool
	if opts.ExcludeAssigned {
		assigned = assignedStaffIDs(opts.Draft)
	}

	matched := make([]models.StaffRef, 0, len(results))
	for _, s := range results {
		if q != "" && !strings.Contains(strings.ToLower(s.Name), q) {
			continue
		}
		if assigned != nil && assigned[s.ID] {
			continue
		}
		matched = append(matched, s)
	}
	return matched, nil
}

func assignedStaffIDs(d models.EventDraft) map[string]bool {
	ids := make(map[string]bool)
	collect := func(roles []models.Role) {
		for _, r := range roles {
			for _, s := range r.AssignedStaff {
				ids[s.ID] = true
			}
		}
	}
	collect(d.Roles)
	for _, t := range d.Teams {
		collect(t.Roles)
	}
	return ids
}

// ComputeRemainingSlots reports how many more staff a role slot needs. Never
// negative, even when manual edits leave more assigned than required.
func ComputeRemainingSlots(role models.Role, shiftID string) int {
	var required, have int
	if shiftID == "" {
		required = role.StaffCount
		for _, s := range role.AssignedStaff {
			if s.ShiftID == "" {
				have++
			}
		}
	} else {
		required = role.ShiftStaffCounts[shiftID]
		for _, s := range role.AssignedStaff {
			if s.ShiftID == shiftID {
				have++
			}
		}
	}
	if remaining := required - have; remaining > 0 {
		return remaining
	}
	return 0
}

// TotalRequired sums a role's headcount requirement across the whole event:
// the flat count when the schedule has no shifts, otherwise the per-shift
// counts added up.
func TotalRequired(role models.Role, d models.EventDraft) int {
	if !d.Schedule.HasShifts {
		return role.StaffCount
	}
	total := 0
	for i, sh := range d.Schedule.Shifts {
		total += role.ShiftStaffCounts[wizard.DeriveShiftID(sh, i)]
	}
	return total
}

var supervisoryKeywords = []string{"supervisor", "leader", "captain"}

// IsSupervisoryRole reports whether a role name looks like a team-lead
// position, by case-insensitive substring match. A heuristic for UI gating
// only: "Team Lead" does not contain "leader" and is a known false negative.
func IsSupervisoryRole(roleName string) bool {
	name := strings.ToLower(roleName)
	for _, kw := range supervisoryKeywords {
		if strings.Contains(name, kw) {
			return true
		}
	}
	return false
}

// TeamsMissingSupervisor lists the names of teams with no supervisory-looking
// role, for the warning banner next to the grant-access action.
func TeamsMissingSupervisor(d models.EventDraft) []string {
	var missing []string
	for _, t := range d.Teams {
		found := false
		for _, r := range t.Roles {
			if IsSupervisoryRole(r.Name) {
				found = true
				break
			}
		}
		if !found {
			missing = append(missing, t.Name)
		}
	}
	return missing
}

// RemainingByShift summarizes open slots for one role across every shift,
// keyed by derived shift id.
func RemainingByShift(d models.EventDraft, role models.Role) map[string]int {
	out := make(map[string]int)
	if !d.Schedule.HasShifts {
		out[""] = ComputeRemainingSlots(role, "")
		return out
	}
	for i, sh := range d.Schedule.Shifts {
		id := wizard.DeriveShiftID(sh, i)
		out[id] = ComputeRemainingSlots(role, id)
	}
	return out
}
