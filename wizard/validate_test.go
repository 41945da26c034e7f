package wizard

import (
	"strings"
	"testing"

	"staffloop/models"
)

func singleDayDraft() models.EventDraft {
	return models.EventDraft{
		Name:      "Launch Night",
		Location:  "Pier 9",
		StartDate: "2026-09-12",
		Schedule:  models.Schedule{StartTime: "18:00", EndTime: "23:00"},
	}
}

func TestValidateBasics(t *testing.T) {
	if res := ValidateStep(models.EventDraft{}, StepBasics); res.OK {
		t.Fatalf("empty draft passed step 1")
	}

	d := singleDayDraft()
	if res := ValidateStep(d, StepBasics); !res.OK {
		t.Fatalf("valid single-day draft failed step 1: %v", res.Errors)
	}

	d.IsMultiDay = true
	if res := ValidateStep(d, StepBasics); res.OK {
		t.Fatalf("multi-day without end date passed")
	}
	d.EndDate = "2026-09-11"
	if res := ValidateStep(d, StepBasics); res.OK {
		t.Fatalf("end date before start date passed")
	}
	d.EndDate = "2026-09-12"
	if res := ValidateStep(d, StepBasics); !res.OK {
		t.Fatalf("same-day end date failed: %v", res.Errors)
	}
}

func TestValidateScheduleShiftWindow(t *testing.T) {
	d := singleDayDraft()
	d = SetHasShifts(d, true)
	if res := ValidateStep(d, StepSchedule); res.OK {
		t.Fatalf("shift mode with no shifts passed")
	}

	d = AddShift(d, models.Shift{Name: "Doors", StartTime: "17:00", EndTime: "19:00"})
	if res := ValidateStep(d, StepSchedule); res.OK {
		t.Fatalf("shift outside the schedule window passed")
	}

	d.Schedule.Shifts[0].StartTime = "18:00"
	if res := ValidateStep(d, StepSchedule); !res.OK {
		t.Fatalf("in-window shift failed: %v", res.Errors)
	}
}

// Partial shift staffing warns naming the unstaffed shift; zero across every
// shift is an error.
func TestValidateStaffingPartialShifts(t *testing.T) {
	d := singleDayDraft()
	d.Schedule.StartTime, d.Schedule.EndTime = "08:00", "23:00"
	d = SetHasShifts(d, true)
	d = AddShift(d, models.Shift{Name: "Morning", StartTime: "08:00", EndTime: "14:00"})
	d = AddShift(d, models.Shift{Name: "Evening", StartTime: "14:00", EndTime: "22:00"})
	d = AddRole(d, "", "r1", "Usher")

	morning := DeriveShiftID(d.Schedule.Shifts[0], 0)
	d = SetShiftStaffCount(d, "", "r1", morning, 1)

	res := ValidateStep(d, StepStaffing)
	if !res.OK {
		t.Fatalf("partial staffing should pass with warning, got errors: %v", res.Errors)
	}
	if len(res.Warnings) == 0 || !strings.Contains(res.Warnings[0], "Evening") {
		t.Fatalf("warning should name the unstaffed shift, got %v", res.Warnings)
	}

	d = SetShiftStaffCount(d, "", "r1", morning, 0)
	res = ValidateStep(d, StepStaffing)
	if res.OK {
		t.Fatalf("zero staffing across all shifts passed")
	}
	if !strings.Contains(res.Errors[0], "Usher") {
		t.Fatalf("error should name the role, got %v", res.Errors)
	}
}

func TestValidateStaffingTeams(t *testing.T) {
	d := singleDayDraft()
	d = SetHasTeams(d, true)
	if res := ValidateStep(d, StepStaffing); res.OK {
		t.Fatalf("team mode with no teams passed")
	}

	d = AddTeam(d, "t1", "Security Team")
	if res := ValidateStep(d, StepStaffing); res.OK {
		t.Fatalf("team with no roles passed")
	}

	d = AddRole(d, "t1", "r1", "Guard")
	if res := ValidateStep(d, StepStaffing); res.OK {
		t.Fatalf("role with zero staff count passed")
	}

	d = SetRoleStaffCount(d, "t1", "r1", 2)
	if res := ValidateStep(d, StepStaffing); !res.OK {
		t.Fatalf("staffed team role failed: %v", res.Errors)
	}
}

// An error in an earlier team must not swallow warnings from later teams;
// the full pass runs before the first error category is reported.
func TestValidateStaffingCollectsAllWarnings(t *testing.T) {
	d := singleDayDraft()
	d.Schedule.StartTime, d.Schedule.EndTime = "08:00", "23:00"
	d = SetHasShifts(d, true)
	d = AddShift(d, models.Shift{Name: "Morning", StartTime: "08:00", EndTime: "14:00"})
	d = AddShift(d, models.Shift{Name: "Evening", StartTime: "14:00", EndTime: "22:00"})
	d = SetHasTeams(d, true)

	// first team's role staffed in no shift at all: blocking error
	d = AddTeam(d, "t1", "Gates")
	d = AddRole(d, "t1", "r1", "Greeter")

	// second team's role staffed in only one shift: warning
	d = AddTeam(d, "t2", "Floor")
	d = AddRole(d, "t2", "r2", "Usher")
	morning := DeriveShiftID(d.Schedule.Shifts[0], 0)
	d = SetShiftStaffCount(d, "t2", "r2", morning, 1)

	res := ValidateStep(d, StepStaffing)
	if res.OK {
		t.Fatalf("zero-staffed role passed")
	}
	if !strings.Contains(res.Errors[0], "Greeter") {
		t.Fatalf("error should name the zero-staffed role, got %v", res.Errors)
	}
	if len(res.Warnings) == 0 || !strings.Contains(res.Warnings[0], "Usher") || !strings.Contains(res.Warnings[0], "Evening") {
		t.Fatalf("later team's warning was dropped, got %v", res.Warnings)
	}
}

// Scenario: role "Security" requires 2, one assigned -> blocked with an error
// naming the role and the 1/2 ratio; a second assignment unblocks.
func TestValidateAssignmentsUnderstaffed(t *testing.T) {
	d := singleDayDraft()
	d = AddRole(d, "", "r1", "Security")
	d = SetRoleStaffCount(d, "", "r1", 2)
	d = AssignStaff(d, "", "r1", models.StaffRef{ID: "s1", Name: "Mina"}, "")

	res := ValidateStep(d, StepAssign)
	if res.OK {
		t.Fatalf("understaffed role passed step 4")
	}
	if !strings.Contains(res.Errors[0], "Security") || !strings.Contains(res.Errors[0], "1/2") {
		t.Fatalf("error should mention role and ratio, got %q", res.Errors[0])
	}

	d = AssignStaff(d, "", "r1", models.StaffRef{ID: "s2", Name: "Kenji"}, "")
	if res := ValidateStep(d, StepAssign); !res.OK {
		t.Fatalf("fully staffed role failed step 4: %v", res.Errors)
	}
}

func TestReviewStepsAlwaysPass(t *testing.T) {
	for _, step := range []int{StepReview, StepConfirm} {
		if res := ValidateStep(models.EventDraft{}, step); !res.OK {
			t.Fatalf("review step %d not trivially valid", step)
		}
	}
}

// Adding correctly-formed data to an already-valid step keeps it valid.
func TestValidationMonotonicity(t *testing.T) {
	d := singleDayDraft()
	d = AddRole(d, "", "r1", "Security")
	d = SetRoleStaffCount(d, "", "r1", 1)
	if res := ValidateStep(d, StepStaffing); !res.OK {
		t.Fatalf("baseline draft invalid: %v", res.Errors)
	}

	d = AddRole(d, "", "r2", "Usher")
	d = SetRoleStaffCount(d, "", "r2", 2)
	if res := ValidateStep(d, StepStaffing); !res.OK {
		t.Fatalf("adding a well-formed role un-validated step 3: %v", res.Errors)
	}

	d.Description = "door staff briefing at 17:30"
	d = SetGeofence(d, models.Geofence{Latitude: 35.66, Longitude: 139.7, RadiusMeters: 150})
	for step := StepBasics; step <= StepStaffing; step++ {
		if res := ValidateStep(d, step); !res.OK {
			t.Fatalf("superset draft failed step %d: %v", step, res.Errors)
		}
	}
}
