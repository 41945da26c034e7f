package models

import "time"

// Checkin statuses
const (
	CheckinStatusPresent = "present"
	CheckinStatusLate    = "late"
)

// Checkin is one attendance record: a staff member arriving at (and later
// leaving) an event, verified by geofence and selfie.
type Checkin struct {
	CheckinID    string     `json:"checkinid" bson:"checkinid"`
	EventID      string     `json:"eventid" bson:"eventid"`
	StaffID      string     `json:"staffid" bson:"staffid"`
	ShiftID      string     `json:"shift_id,omitempty" bson:"shift_id,omitempty"`
	TeamID       string     `json:"team_id,omitempty" bson:"team_id,omitempty"`
	Role         string     `json:"role,omitempty" bson:"role,omitempty"`
	Latitude     float64    `json:"latitude" bson:"latitude"`
	Longitude    float64    `json:"longitude" bson:"longitude"`
	SelfiePhoto  string     `json:"selfie_photo,omitempty" bson:"selfie_photo,omitempty"`
	Status       string     `json:"status" bson:"status"`
	CheckedInAt  time.Time  `json:"checked_in_at" bson:"checked_in_at"`
	CheckedOutAt *time.Time `json:"checked_out_at,omitempty" bson:"checked_out_at,omitempty"`
}

// BroadcastMessage is an organizer announcement pushed to staff rooms.
type BroadcastMessage struct {
	MessageID string    `json:"messageid" bson:"messageid"`
	EventID   string    `json:"eventid" bson:"eventid"`
	SenderID  string    `json:"senderid" bson:"senderid"`
	Content   string    `json:"content" bson:"content"`
	SentAt    time.Time `json:"sent_at" bson:"sent_at"`
}
