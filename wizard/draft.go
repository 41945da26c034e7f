package wizard

import (
	"fmt"

	"staffloop/models"
)

// Action types for draft mutations. Every edit the wizard UI can make maps to
// exactly one of these, so a session is replayable as a flat action log.
type ActionType string

const (
	ActionSetBasics          ActionType = "SET_BASICS"
	ActionSetGeofence        ActionType = "SET_GEOFENCE"
	ActionSetScheduleWindow  ActionType = "SET_SCHEDULE_WINDOW"
	ActionSetHasShifts       ActionType = "SET_HAS_SHIFTS"
	ActionAddShift           ActionType = "ADD_SHIFT"
	ActionRemoveShift        ActionType = "REMOVE_SHIFT"
	ActionRenameShift        ActionType = "RENAME_SHIFT"
	ActionSetHasTeams        ActionType = "SET_HAS_TEAMS"
	ActionAddTeam            ActionType = "ADD_TEAM"
	ActionRemoveTeam         ActionType = "REMOVE_TEAM"
	ActionAddRole            ActionType = "ADD_ROLE"
	ActionRemoveRole         ActionType = "REMOVE_ROLE"
	ActionSetStaffCount      ActionType = "SET_STAFF_COUNT"
	ActionSetShiftStaffCount ActionType = "SET_SHIFT_STAFF_COUNT"
	ActionAssignStaff        ActionType = "ASSIGN_STAFF"
	ActionRemoveStaff        ActionType = "REMOVE_STAFF"
)

// Action is one draft mutation. Only the fields relevant to Type are read.
type Action struct {
	Type ActionType `json:"type"`

	// SET_BASICS
	Name        string `json:"name,omitempty"`
	Location    string `json:"location,omitempty"`
	IsMultiDay  bool   `json:"is_multi_day,omitempty"`
	StartDate   string `json:"start_date,omitempty"`
	EndDate     string `json:"end_date,omitempty"`
	Description string `json:"description,omitempty"`

	// SET_GEOFENCE
	Geofence models.Geofence `json:"geofence,omitempty"`

	// SET_SCHEDULE_WINDOW / ADD_SHIFT / RENAME_SHIFT
	StartTime string       `json:"start_time,omitempty"`
	EndTime   string       `json:"end_time,omitempty"`
	Shift     models.Shift `json:"shift,omitempty"`
	ShiftID   string       `json:"shift_id,omitempty"`

	// SET_HAS_SHIFTS / SET_HAS_TEAMS
	Enabled bool `json:"enabled,omitempty"`

	// team/role targeting; TeamID empty means the flat roles list
	TeamID   string `json:"team_id,omitempty"`
	TeamName string `json:"team_name,omitempty"`
	RoleID   string `json:"role_id,omitempty"`
	RoleName string `json:"role_name,omitempty"`

	// SET_STAFF_COUNT / SET_SHIFT_STAFF_COUNT
	Count int `json:"count,omitempty"`

	// ASSIGN_STAFF / REMOVE_STAFF
	Staff   models.StaffRef `json:"staff,omitempty"`
	StaffID string          `json:"staff_id,omitempty"`
}

// Apply returns a new draft with the action applied; the input is never
// mutated. Targeting a team or role that does not exist is a silent no-op,
// matching removeStaff semantics: mutation ops do not validate, that is the
// step validator's job.
func Apply(d models.EventDraft, a Action) (models.EventDraft, error) {
	switch a.Type {
	case ActionSetBasics:
		return SetBasics(d, a.Name, a.Location, a.IsMultiDay, a.StartDate, a.EndDate, a.Description), nil
	case ActionSetGeofence:
		return SetGeofence(d, a.Geofence), nil
	case ActionSetScheduleWindow:
		return SetScheduleWindow(d, a.StartTime, a.EndTime), nil
	case ActionSetHasShifts:
		return SetHasShifts(d, a.Enabled), nil
	case ActionAddShift:
		return AddShift(d, a.Shift), nil
	case ActionRemoveShift:
		return RemoveShift(d, a.ShiftID), nil
	case ActionRenameShift:
		return RenameShift(d, a.ShiftID, a.Name), nil
	case ActionSetHasTeams:
		return SetHasTeams(d, a.Enabled), nil
	case ActionAddTeam:
		return AddTeam(d, a.TeamID, a.TeamName), nil
	case ActionRemoveTeam:
		return RemoveTeam(d, a.TeamID), nil
	case ActionAddRole:
		return AddRole(d, a.TeamID, a.RoleID, a.RoleName), nil
	case ActionRemoveRole:
		return RemoveRole(d, a.TeamID, a.RoleID), nil
	case ActionSetStaffCount:
		return SetRoleStaffCount(d, a.TeamID, a.RoleID, a.Count), nil
	case ActionSetShiftStaffCount:
		return SetShiftStaffCount(d, a.TeamID, a.RoleID, a.ShiftID, a.Count), nil
	case ActionAssignStaff:
		return AssignStaff(d, a.TeamID, a.RoleID, a.Staff, a.ShiftID), nil
	case ActionRemoveStaff:
		return RemoveStaff(d, a.TeamID, a.RoleID, a.StaffID, a.ShiftID), nil
	default:
		return d, fmt.Errorf("unknown action type %q", a.Type)
	}
}

// --- deep copy helpers ---

func cloneStaff(in []models.StaffRef) []models.StaffRef {
	if in == nil {
		return nil
	}
	out := make([]models.StaffRef, len(in))
	copy(out, in)
	return out
}

func cloneRole(r models.Role) models.Role {
	out := r
	out.AssignedStaff = cloneStaff(r.AssignedStaff)
	if r.ShiftStaffCounts != nil {
		out.ShiftStaffCounts = make(map[string]int, len(r.ShiftStaffCounts))
		for k, v := range r.ShiftStaffCounts {
			out.ShiftStaffCounts[k] = v
		}
	}
	return out
}

func cloneRoles(in []models.Role) []models.Role {
	if in == nil {
		return nil
	}
	out := make([]models.Role, len(in))
	for i, r := range in {
		out[i] = cloneRole(r)
	}
	return out
}

func cloneTeams(in []models.Team) []models.Team {
	if in == nil {
		return nil
	}
	out := make([]models.Team, len(in))
	for i, t := range in {
		out[i] = t
		out[i].Roles = cloneRoles(t.Roles)
	}
	return out
}

func cloneDraft(d models.EventDraft) models.EventDraft {
	out := d
	if d.Schedule.Shifts != nil {
		shifts := make([]models.Shift, len(d.Schedule.Shifts))
		copy(shifts, d.Schedule.Shifts)
		out.Schedule.Shifts = shifts
	}
	out.Roles = cloneRoles(d.Roles)
	out.Teams = cloneTeams(d.Teams)
	return out
}

// --- mutation operations ---

func SetBasics(d models.EventDraft, name, location string, isMultiDay bool, startDate, endDate, description string) models.EventDraft {
	out := cloneDraft(d)
	out.Name = name
	out.Location = location
	out.IsMultiDay = isMultiDay
	out.StartDate = startDate
	out.EndDate = endDate
	out.Description = description
	if !isMultiDay {
		out.EndDate = ""
	}
	return out
}

func SetGeofence(d models.EventDraft, g models.Geofence) models.EventDraft {
	out := cloneDraft(d)
	out.Geofence = g
	return out
}

func SetScheduleWindow(d models.EventDraft, startTime, endTime string) models.EventDraft {
	out := cloneDraft(d)
	out.Schedule.StartTime = startTime
	out.Schedule.EndTime = endTime
	return out
}

func SetHasShifts(d models.EventDraft, enabled bool) models.EventDraft {
	out := cloneDraft(d)
	out.Schedule.HasShifts = enabled
	return out
}

// AddShift appends a shift. It does not flip HasShifts; the caller enables
// shift mode explicitly first. A shift arriving without an id gets one here.
func AddShift(d models.EventDraft, s models.Shift) models.EventDraft {
	out := cloneDraft(d)
	if s.ID == "" {
		s = NewShift(s.Name, s.StartTime, s.EndTime)
	}
	out.Schedule.Shifts = append(out.Schedule.Shifts, s)
	return out
}

// RemoveShift drops the shift with the given derived id. Staffing counts and
// assignments keyed by it are left in place; the validator ignores orphans.
func RemoveShift(d models.EventDraft, shiftID string) models.EventDraft {
	out := cloneDraft(d)
	idx := FindShiftIndex(out.Schedule, shiftID)
	if idx < 0 {
		return out
	}
	out.Schedule.Shifts = append(out.Schedule.Shifts[:idx], out.Schedule.Shifts[idx+1:]...)
	return out
}

// RenameShift changes the display name only. Because shifts key everything by
// their stable id, a rename never merges or orphans staffing counts.
func RenameShift(d models.EventDraft, shiftID, name string) models.EventDraft {
	out := cloneDraft(d)
	idx := FindShiftIndex(out.Schedule, shiftID)
	if idx < 0 {
		return out
	}
	out.Schedule.Shifts[idx].Name = name
	return out
}

func SetHasTeams(d models.EventDraft, enabled bool) models.EventDraft {
	out := cloneDraft(d)
	out.HasTeams = enabled
	return out
}

func AddTeam(d models.EventDraft, teamID, name string) models.EventDraft {
	out := cloneDraft(d)
	out.Teams = append(out.Teams, models.Team{ID: teamID, Name: name})
	return out
}

func RemoveTeam(d models.EventDraft, teamID string) models.EventDraft {
	out := cloneDraft(d)
	for i, t := range out.Teams {
		if t.ID == teamID {
			out.Teams = append(out.Teams[:i], out.Teams[i+1:]...)
			break
		}
	}
	return out
}

// roleSlot finds the role list holding roleID. teamID empty targets the flat
// roles list. Returns nil when the target does not exist.
func roleSlot(d *models.EventDraft, teamID, roleID string) *models.Role {
	roles := d.Roles
	if teamID != "" {
		roles = nil
		for i := range d.Teams {
			if d.Teams[i].ID == teamID {
				roles = d.Teams[i].Roles
				break
			}
		}
	}
	for i := range roles {
		if roles[i].ID == roleID {
			return &roles[i]
		}
	}
	return nil
}

func AddRole(d models.EventDraft, teamID, roleID, name string) models.EventDraft {
	out := cloneDraft(d)
	role := models.Role{ID: roleID, Name: name, AssignedStaff: []models.StaffRef{}}
	if teamID == "" {
		out.Roles = append(out.Roles, role)
		return out
	}
	for i := range out.Teams {
		if out.Teams[i].ID == teamID {
			out.Teams[i].Roles = append(out.Teams[i].Roles, role)
			break
		}
	}
	return out
}

func RemoveRole(d models.EventDraft, teamID, roleID string) models.EventDraft {
	out := cloneDraft(d)
	remove := func(roles []models.Role) []models.Role {
		for i, r := range roles {
			if r.ID == roleID {
				return append(roles[:i], roles[i+1:]...)
			}
		}
		return roles
	}
	if teamID == "" {
		out.Roles = remove(out.Roles)
		return out
	}
	for i := range out.Teams {
		if out.Teams[i].ID == teamID {
			out.Teams[i].Roles = remove(out.Teams[i].Roles)
			break
		}
	}
	return out
}

// SetRoleStaffCount sets the overall required count. Negative counts are
// clamped to 0, not rejected.
func SetRoleStaffCount(d models.EventDraft, teamID, roleID string, count int) models.EventDraft {
	out := cloneDraft(d)
	if count < 0 {
		count = 0
	}
	if r := roleSlot(&out, teamID, roleID); r != nil {
		r.StaffCount = count
	}
	return out
}

// SetShiftStaffCount sets the required count for one shift slot.
func SetShiftStaffCount(d models.EventDraft, teamID, roleID, shiftID string, count int) models.EventDraft {
	out := cloneDraft(d)
	if count < 0 {
		count = 0
	}
	if r := roleSlot(&out, teamID, roleID); r != nil {
		if r.ShiftStaffCounts == nil {
			r.ShiftStaffCounts = make(map[string]int)
		}
		r.ShiftStaffCounts[shiftID] = count
	}
	return out
}

// AssignStaff appends unconditionally. Assigning the same person to the same
// slot twice is not prevented here; dedup is the staffing assigner's concern.
func AssignStaff(d models.EventDraft, teamID, roleID string, staff models.StaffRef, shiftID string) models.EventDraft {
	out := cloneDraft(d)
	r := roleSlot(&out, teamID, roleID)
	if r == nil {
		return out
	}
	staff.TeamID = teamID
	staff.ShiftID = shiftID
	if staff.Role == "" {
		staff.Role = r.Name
	}
	r.AssignedStaff = append(r.AssignedStaff, staff)
	return out
}

// RemoveStaff removes entries matching the exact (staffID, shiftID) tuple.
// Omitting shiftID while shifts are enabled matches nothing and removes
// nothing.
func RemoveStaff(d models.EventDraft, teamID, roleID, staffID, shiftID string) models.EventDraft {
	out := cloneDraft(d)
	r := roleSlot(&out, teamID, roleID)
	if r == nil {
		return out
	}
	kept := r.AssignedStaff[:0]
	for _, s := range r.AssignedStaff {
		if s.ID == staffID && s.ShiftID == shiftID {
			continue
		}
		kept = append(kept, s)
	}
	r.AssignedStaff = kept
	return out
}
