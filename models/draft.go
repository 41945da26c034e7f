package models

// Geofence is the circular check-in boundary around the venue.
type Geofence struct {
	Latitude     float64 `json:"latitude" bson:"latitude"`
	Longitude    float64 `json:"longitude" bson:"longitude"`
	RadiusMeters int     `json:"radius_meters" bson:"radius_meters"`
}

// Shift is a sub-window of the event schedule. ID is an opaque id assigned at
// creation and never derived from the display name; drafts saved by older
// clients may arrive without one (see wizard.DeriveShiftID).
type Shift struct {
	ID        string `json:"id,omitempty" bson:"id,omitempty"`
	Name      string `json:"name" bson:"name"`
	StartTime string `json:"start_time" bson:"start_time"` // HH:MM
	EndTime   string `json:"end_time" bson:"end_time"`     // HH:MM
}

type Schedule struct {
	StartTime string  `json:"start_time" bson:"start_time"` // HH:MM
	EndTime   string  `json:"end_time" bson:"end_time"`     // HH:MM
	HasShifts bool    `json:"has_shifts" bson:"has_shifts"`
	Shifts    []Shift `json:"shifts" bson:"shifts"`
}

// StaffRef is a staff member attached to a role slot.
type StaffRef struct {
	ID          string `json:"id" bson:"id"`
	Name        string `json:"name" bson:"name"`
	Role        string `json:"role,omitempty" bson:"role,omitempty"`
	TeamID      string `json:"team_id,omitempty" bson:"team_id,omitempty"`
	ShiftID     string `json:"shift_id,omitempty" bson:"shift_id,omitempty"`
	ContactInfo string `json:"contact_info" bson:"contact_info"`
}

// Role is a staffing requirement. StaffCount applies when the schedule has no
// shifts; ShiftStaffCounts (keyed by shift id) applies when it does.
type Role struct {
	ID               string         `json:"id" bson:"id"`
	Name             string         `json:"name" bson:"name"`
	StaffCount       int            `json:"staff_count" bson:"staff_count"`
	ShiftStaffCounts map[string]int `json:"shift_staff_counts,omitempty" bson:"shift_staff_counts,omitempty"`
	AssignedStaff    []StaffRef     `json:"assigned_staff" bson:"assigned_staff"`
}

type Team struct {
	ID    string `json:"id" bson:"id"`
	Name  string `json:"name" bson:"name"`
	Roles []Role `json:"roles" bson:"roles"`
}

// EventDraft is the event-in-progress built by the setup wizard. All dates are
// YYYY-MM-DD and all times HH:MM; same-day lexicographic comparison is enough.
// Roles is used when HasTeams is false, Teams when it is true.
type EventDraft struct {
	Name        string   `json:"name" bson:"name"`
	Location    string   `json:"location" bson:"location"`
	IsMultiDay  bool     `json:"is_multi_day" bson:"is_multi_day"`
	StartDate   string   `json:"start_date" bson:"start_date"`
	EndDate     string   `json:"end_date,omitempty" bson:"end_date,omitempty"`
	Geofence    Geofence `json:"geofence" bson:"geofence"`
	Schedule    Schedule `json:"schedule" bson:"schedule"`
	HasTeams    bool     `json:"has_teams" bson:"has_teams"`
	Roles       []Role   `json:"roles" bson:"roles"`
	Teams       []Team   `json:"teams" bson:"teams"`
	Description string   `json:"description,omitempty" bson:"description,omitempty"`
}
