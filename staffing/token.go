package staffing

import (
	"fmt"
	"net/url"
	"time"

	"staffloop/models"
	"staffloop/utils"
	"staffloop/wizard"
)

// Supervisor tokens stay valid for 7 days.
const TokenValidity = 7 * 24 * time.Hour

// NewSupervisorToken issues a token for a team's chosen supervisor.
// Regenerating issues a fresh independent record; earlier tokens stay active
// until they expire.
func NewSupervisorToken(eventID string, team models.Team, staff *models.StaffRef, now time.Time) (models.SupervisorAccessToken, error) {
	if staff == nil || staff.ID == "" {
		return models.SupervisorAccessToken{}, wizard.NewValidationError("supervisor", "select a staff member before generating access")
	}
	return models.SupervisorAccessToken{
		ID:                "svt" + utils.GenerateID(12),
		EventID:           eventID,
		TeamID:            team.ID,
		SupervisorStaffID: staff.ID,
		AccessToken:       utils.GenerateID(32),
		ExpiresAt:         now.Add(TokenValidity),
		IsActive:          true,
		CreatedAt:         now,
	}, nil
}

// ErrStaffNotInTeam is surfaced as a warning-grade lookup failure, not a hard
// error: the link is still built and returned.
type ErrStaffNotInTeam struct {
	StaffID  string
	TeamName string
}

func (e *ErrStaffNotInTeam) Error() string {
	return fmt.Sprintf("staff %s is not assigned within team %q", e.StaffID, e.TeamName)
}

// ShareTokenLink builds the deep link a supervisor opens to view their team's
// attendance. The raw token rides as a query parameter. When the supervisor is
// not in the team roster, the link is returned alongside an ErrStaffNotInTeam
// for the caller to surface as a toast.
func ShareTokenLink(baseURL string, token models.SupervisorAccessToken, team models.Team, staff models.StaffRef) (string, error) {
	link := fmt.Sprintf("%s/supervisor?event=%s&team=%s&token=%s",
		baseURL,
		url.QueryEscape(token.EventID),
		url.QueryEscape(token.TeamID),
		url.QueryEscape(token.AccessToken))

	for _, r := range team.Roles {
		for _, s := range r.AssignedStaff {
			if s.ID == staff.ID {
				return link, nil
			}
		}
	}
	return link, &ErrStaffNotInTeam{StaffID: staff.ID, TeamName: team.Name}
}
