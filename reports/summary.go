package reports

import (
	"sort"

	"staffloop/models"
	"staffloop/staffing"
)

// RoleAttendance is the attendance breakdown for one role.
type RoleAttendance struct {
	Role     string `json:"role"`
	Expected int    `json:"expected"`
	Present  int    `json:"present"`
	Late     int    `json:"late"`
	NoShow   int    `json:"no_show"`
}

// TeamAttendance is the attendance breakdown for one team.
type TeamAttendance struct {
	TeamID   string `json:"team_id"`
	TeamName string `json:"team_name"`
	Expected int    `json:"expected"`
	Present  int    `json:"present"`
	Late     int    `json:"late"`
	NoShow   int    `json:"no_show"`
}

// AttendanceSummary aggregates an event's check-in records against its
// staffing plan.
type AttendanceSummary struct {
	EventID       string           `json:"eventid"`
	EventName     string           `json:"event_name"`
	TotalExpected int              `json:"total_expected"`
	TotalPresent  int              `json:"total_present"`
	TotalLate     int              `json:"total_late"`
	TotalNoShow   int              `json:"total_no_show"`
	ByRole        []RoleAttendance `json:"by_role"`
	ByTeam        []TeamAttendance `json:"by_team"`
}

// BuildAttendanceSummary computes per-role and per-team attendance for
// an event. A staff member counts once no matter how many times they
// checked in; late wins over present for that member. Expected counts
// come from the staffing plan, so no-shows are expected minus arrived,
// floored at zero for roles that ended up over-staffed.
func BuildAttendanceSummary(event models.Event, checkins []models.Checkin) AttendanceSummary {
	sum := AttendanceSummary{
		EventID:   event.EventID,
		EventName: event.Draft.Name,
	}

	// collapse to one status per staff member
	statusByStaff := make(map[string]string)
	for _, c := range checkins {
		if c.Status == models.CheckinStatusLate || statusByStaff[c.StaffID] == "" {
			statusByStaff[c.StaffID] = c.Status
		}
	}

	roleRows := make(map[string]*RoleAttendance)
	roleRow := func(name string) *RoleAttendance {
		if r, ok := roleRows[name]; ok {
			return r
		}
		r := &RoleAttendance{Role: name}
		roleRows[name] = r
		return r
	}

	countRoles := func(roles []models.Role) {
		for _, role := range roles {
			row := roleRow(role.Name)
			row.Expected += staffing.TotalRequired(role, event.Draft)
			for _, s := range role.AssignedStaff {
				switch statusByStaff[s.ID] {
				case models.CheckinStatusPresent:
					row.Present++
				case models.CheckinStatusLate:
					row.Late++
				}
			}
		}
	}

	if event.Draft.HasTeams {
		for _, team := range event.Draft.Teams {
			countRoles(team.Roles)

			t := TeamAttendance{TeamID: team.ID, TeamName: team.Name}
			for _, role := range team.Roles {
				t.Expected += staffing.TotalRequired(role, event.Draft)
				for _, s := range role.AssignedStaff {
					switch statusByStaff[s.ID] {
					case models.CheckinStatusPresent:
						t.Present++
					case models.CheckinStatusLate:
						t.Late++
					}
				}
			}
			t.NoShow = clampNonNegative(t.Expected - t.Present - t.Late)
			sum.ByTeam = append(sum.ByTeam, t)
		}
	} else {
		countRoles(event.Draft.Roles)
	}

	for _, row := range roleRows {
		row.NoShow = clampNonNegative(row.Expected - row.Present - row.Late)
		sum.ByRole = append(sum.ByRole, *row)
	}
	sort.Slice(sum.ByRole, func(i, j int) bool { return sum.ByRole[i].Role < sum.ByRole[j].Role })

	for _, row := range sum.ByRole {
		sum.TotalExpected += row.Expected
		sum.TotalPresent += row.Present
		sum.TotalLate += row.Late
		sum.TotalNoShow += row.NoShow
	}
	return sum
}

func clampNonNegative(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
