package models

import "time"

type User struct {
	UserID        string    `json:"userid" bson:"userid"`
	Username      string    `json:"username" bson:"username"`
	Email         string    `json:"email" bson:"email"`
	Password      string    `json:"password,omitempty" bson:"password"`
	Role          []string  `json:"role" bson:"role"`
	EmailVerified bool      `json:"email_verified" bson:"email_verified"`
	RefreshToken  string    `json:"-" bson:"refresh_token,omitempty"`
	RefreshExpiry time.Time `json:"-" bson:"refresh_expiry,omitempty"`
	LastLogin     time.Time `json:"last_login,omitempty" bson:"last_login,omitempty"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at"`
}

// StaffProfile is a roster entry: someone an organizer can assign to a role.
type StaffProfile struct {
	StaffID        string    `json:"staffid" bson:"staffid"`
	Name           string    `json:"name" bson:"name"`
	Role           string    `json:"role,omitempty" bson:"role,omitempty"`
	ContactInfo    string    `json:"contact_info" bson:"contact_info"`
	PreferredRoles []string  `json:"preferred_roles,omitempty" bson:"preferred_roles,omitempty"`
	PhotoEnrolled  bool      `json:"photo_enrolled" bson:"photo_enrolled"`
	CreatedAt      time.Time `json:"created_at" bson:"created_at"`
}
