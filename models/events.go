package models

import "time"

// Event statuses
const (
	EventStatusDraft     = "draft"
	EventStatusUpcoming  = "upcoming"
	EventStatusOngoing   = "ongoing"
	EventStatusEnded     = "ended"
	EventStatusCancelled = "cancelled"
)

// Event is a stored event. Draft-status events keep the full wizard draft so
// an organizer can resume editing; submitted events keep it as the staffing
// plan of record.
type Event struct {
	EventID     string     `json:"eventid" bson:"eventid"`
	OrganizerID string     `json:"organizerid" bson:"organizerid"`
	Status      string     `json:"status" bson:"status"`
	Draft       EventDraft `json:"draft" bson:"draft"`
	CreatedAt   time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" bson:"updated_at"`
}

// SupervisorAccessToken lets a designated team lead view their team's
// attendance without full organizer access. Regeneration creates a new
// independent record; prior tokens are not revoked.
type SupervisorAccessToken struct {
	ID                string    `json:"id" bson:"id"`
	EventID           string    `json:"eventid" bson:"eventid"`
	TeamID            string    `json:"teamid" bson:"teamid"`
	SupervisorStaffID string    `json:"supervisor_staff_id" bson:"supervisor_staff_id"`
	AccessToken       string    `json:"access_token" bson:"access_token"`
	ExpiresAt         time.Time `json:"expires_at" bson:"expires_at"`
	IsActive          bool      `json:"is_active" bson:"is_active"`
	CreatedAt         time.Time `json:"created_at" bson:"created_at"`
}

// CalendarEvent is the record handed to the ICS exporter after submission.
type CalendarEvent struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Location      string    `json:"location"`
	StartDateTime time.Time `json:"start_date_time"`
	EndDateTime   time.Time `json:"end_date_time"`
}

// SavedDraft is the autosave channel payload: the draft plus where the user
// was in the wizard when it was captured.
type SavedDraft struct {
	EventData EventDraft `json:"event_data" bson:"event_data"`
	Step      int        `json:"step" bson:"step"`
	SavedAt   time.Time  `json:"saved_at" bson:"saved_at"`
}
