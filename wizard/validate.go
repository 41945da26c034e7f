package wizard

import (
	"fmt"
	"strings"

	"staffloop/models"
)

// Wizard steps
const (
	StepBasics   = 1
	StepSchedule = 2
	StepStaffing = 3
	StepAssign   = 4
	StepReview   = 5
	StepConfirm  = 6

	FirstStep = StepBasics
	LastStep  = StepConfirm
)

// StepResult is the outcome of validating one wizard step. Errors block
// advancement; warnings are advisory and never do.
type StepResult struct {
	OK       bool     `json:"ok"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func passed(warnings []string) StepResult {
	return StepResult{OK: true, Warnings: warnings}
}

func failed(warnings []string, errs ...string) StepResult {
	return StepResult{OK: false, Errors: errs, Warnings: warnings}
}

// ValidateStep checks the draft against the invariants the given step must
// establish. Pure and deterministic: same draft, same result. It returns on
// the first blocking error category but collects all warnings first, since
// warnings never block.
func ValidateStep(d models.EventDraft, step int) StepResult {
	switch step {
	case StepBasics:
		return validateBasics(d)
	case StepSchedule:
		return validateSchedule(d)
	case StepStaffing:
		return validateStaffing(d)
	case StepAssign:
		return validateAssignments(d)
	default:
		// review steps carry no invariants
		return StepResult{OK: true}
	}
}

func validateBasics(d models.EventDraft) StepResult {
	var errs []string
	if strings.TrimSpace(d.Name) == "" {
		errs = append(errs, "Event name is required")
	}
	if strings.TrimSpace(d.Location) == "" {
		errs = append(errs, "Location is required")
	}
	if d.StartDate == "" {
		errs = append(errs, "Start date is required")
	}
	if len(errs) > 0 {
		return failed(nil, errs...)
	}
	if d.IsMultiDay {
		if d.EndDate == "" {
			return failed(nil, "End date is required for multi-day events")
		}
		if d.EndDate < d.StartDate {
			return failed(nil, "End date must not be before start date")
		}
	}
	return passed(nil)
}

func validateSchedule(d models.EventDraft) StepResult {
	s := d.Schedule
	if s.StartTime == "" || s.EndTime == "" {
		return failed(nil, "Event start and end times are required")
	}
	if !s.HasShifts {
		return passed(nil)
	}
	if len(s.Shifts) == 0 {
		return failed(nil, "Add at least one shift or disable shifts")
	}
	var errs []string
	for i, sh := range s.Shifts {
		label := ShiftLabel(sh, i)
		if sh.StartTime == "" || sh.EndTime == "" {
			errs = append(errs, fmt.Sprintf("%s needs both a start and end time", label))
			continue
		}
		if sh.StartTime < s.StartTime || sh.EndTime > s.EndTime {
			errs = append(errs, fmt.Sprintf("%s falls outside the event schedule (%s–%s)", label, s.StartTime, s.EndTime))
		}
	}
	if len(errs) > 0 {
		return failed(nil, errs...)
	}
	return passed(nil)
}

func validateStaffing(d models.EventDraft) StepResult {
	if d.HasTeams {
		if len(d.Teams) == 0 {
			return failed(nil, "Add at least one team")
		}
		// every team contributes its warnings before the first error
		// category decides the outcome
		var warnings []string
		var firstErrs []string
		for _, t := range d.Teams {
			name := t.Name
			if strings.TrimSpace(name) == "" {
				if firstErrs == nil {
					firstErrs = []string{"Every team needs a name"}
				}
				continue
			}
			if len(t.Roles) == 0 {
				if firstErrs == nil {
					firstErrs = []string{fmt.Sprintf("Team %q needs at least one role", name)}
				}
				continue
			}
			res := validateRoleList(d, t.Roles, name)
			warnings = append(warnings, res.Warnings...)
			if !res.OK && firstErrs == nil {
				firstErrs = res.Errors
			}
		}
		if firstErrs != nil {
			return failed(warnings, firstErrs...)
		}
		return passed(warnings)
	}

	if len(d.Roles) == 0 {
		return failed(nil, "Add at least one role")
	}
	return validateRoleList(d, d.Roles, "")
}

// validateRoleList applies the role-level staffing rules shared by team mode
// and flat mode. A role staffed in only some shifts is a warning; staffed in
// none, an error.
func validateRoleList(d models.EventDraft, roles []models.Role, teamName string) StepResult {
	var warnings []string
	qualify := func(roleName string) string {
		if teamName != "" {
			return fmt.Sprintf("%s / %s", teamName, roleName)
		}
		return roleName
	}

	nameMissing := false
	var errs []string
	for _, r := range roles {
		if strings.TrimSpace(r.Name) == "" {
			nameMissing = true
			continue
		}

		if !d.Schedule.HasShifts {
			if r.StaffCount <= 0 {
				errs = append(errs, fmt.Sprintf("Role %s needs a staff count greater than zero", qualify(r.Name)))
			}
			continue
		}

		staffed := 0
		var unstaffed []string
		for i, sh := range d.Schedule.Shifts {
			if r.ShiftStaffCounts[DeriveShiftID(sh, i)] > 0 {
				staffed++
			} else {
				unstaffed = append(unstaffed, ShiftLabel(sh, i))
			}
		}
		if staffed == 0 {
			errs = append(errs, fmt.Sprintf("Role %s has no staff in any shift", qualify(r.Name)))
			continue
		}
		if len(unstaffed) > 0 {
			warnings = append(warnings, fmt.Sprintf("Role %s has no staff for %s", qualify(r.Name), strings.Join(unstaffed, ", ")))
		}
	}
	if nameMissing {
		return failed(warnings, "Every role needs a name")
	}
	if len(errs) > 0 {
		return failed(warnings, errs...)
	}
	return passed(warnings)
}

func validateAssignments(d models.EventDraft) StepResult {
	check := func(roles []models.Role, teamName string) []string {
		var errs []string
		for _, r := range roles {
			name := r.Name
			if teamName != "" {
				name = teamName + " / " + name
			}
			if !d.Schedule.HasShifts {
				assigned := len(r.AssignedStaff)
				if assigned < r.StaffCount {
					errs = append(errs, fmt.Sprintf("%s (%d/%d) staffed", name, assigned, r.StaffCount))
				}
				continue
			}
			for i, sh := range d.Schedule.Shifts {
				id := DeriveShiftID(sh, i)
				required := r.ShiftStaffCounts[id]
				if required == 0 {
					continue
				}
				assigned := 0
				for _, s := range r.AssignedStaff {
					if s.ShiftID == id {
						assigned++
					}
				}
				if assigned < required {
					errs = append(errs, fmt.Sprintf("%s, %s (%d/%d) staffed", name, ShiftLabel(sh, i), assigned, required))
				}
			}
		}
		return errs
	}

	var errs []string
	if d.HasTeams {
		for _, t := range d.Teams {
			errs = append(errs, check(t.Roles, t.Name)...)
		}
	} else {
		errs = append(errs, check(d.Roles, "")...)
	}
	if len(errs) > 0 {
		return failed(nil, errs...)
	}
	return passed(nil)
}

// ValidateAll runs every gating step in order and returns the first failure.
// Used on submission, where the whole draft must hold.
func ValidateAll(d models.EventDraft) StepResult {
	for step := FirstStep; step <= LastStep; step++ {
		if res := ValidateStep(d, step); !res.OK {
			return res
		}
	}
	return StepResult{OK: true}
}
