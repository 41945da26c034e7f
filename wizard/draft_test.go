package wizard

import (
	"testing"

	"staffloop/models"
)

func TestMutationsDoNotTouchInput(t *testing.T) {
	base := models.EventDraft{}
	base = AddRole(base, "", "r1", "Security")
	base = SetRoleStaffCount(base, "", "r1", 2)

	_ = AssignStaff(base, "", "r1", models.StaffRef{ID: "s1", Name: "Mina"}, "")
	if len(base.Roles[0].AssignedStaff) != 0 {
		t.Fatalf("AssignStaff mutated its input draft")
	}

	_ = SetRoleStaffCount(base, "", "r1", 9)
	if base.Roles[0].StaffCount != 2 {
		t.Fatalf("SetRoleStaffCount mutated its input draft")
	}
}

func TestSetRoleStaffCountClampsNegative(t *testing.T) {
	d := models.EventDraft{}
	d = AddRole(d, "", "r1", "Security")
	d = SetRoleStaffCount(d, "", "r1", -3)
	if got := d.Roles[0].StaffCount; got != 0 {
		t.Fatalf("negative count not clamped: got %d", got)
	}

	d = SetHasShifts(d, true)
	d = AddShift(d, models.Shift{Name: "Morning"})
	id := DeriveShiftID(d.Schedule.Shifts[0], 0)
	d = SetShiftStaffCount(d, "", "r1", id, -1)
	if got := d.Roles[0].ShiftStaffCounts[id]; got != 0 {
		t.Fatalf("negative shift count not clamped: got %d", got)
	}
}

func TestAssignStaffAllowsDuplicates(t *testing.T) {
	// dedup is the staffing assigner's concern, not the draft layer's
	d := models.EventDraft{}
	d = AddRole(d, "", "r1", "Usher")
	s := models.StaffRef{ID: "s1", Name: "Kenji"}
	d = AssignStaff(d, "", "r1", s, "")
	d = AssignStaff(d, "", "r1", s, "")
	if got := len(d.Roles[0].AssignedStaff); got != 2 {
		t.Fatalf("expected duplicate append, got %d entries", got)
	}
}

func TestRemoveStaffMatchesExactTuple(t *testing.T) {
	d := models.EventDraft{}
	d = SetHasShifts(d, true)
	d = AddShift(d, models.Shift{Name: "Morning"})
	d = AddRole(d, "", "r1", "Usher")
	id := DeriveShiftID(d.Schedule.Shifts[0], 0)
	d = AssignStaff(d, "", "r1", models.StaffRef{ID: "s1", Name: "Kenji"}, id)

	// wrong shift id silently removes nothing
	d2 := RemoveStaff(d, "", "r1", "s1", "")
	if got := len(d2.Roles[0].AssignedStaff); got != 1 {
		t.Fatalf("mismatched tuple removed %d entries", 1-got)
	}

	d3 := RemoveStaff(d, "", "r1", "s1", id)
	if got := len(d3.Roles[0].AssignedStaff); got != 0 {
		t.Fatalf("exact tuple not removed, %d entries remain", got)
	}
}

func TestAddShiftDoesNotFlipHasShifts(t *testing.T) {
	d := models.EventDraft{}
	d = AddShift(d, models.Shift{Name: "Morning"})
	if d.Schedule.HasShifts {
		t.Fatalf("AddShift implicitly enabled shift mode")
	}
	if len(d.Schedule.Shifts) != 1 {
		t.Fatalf("shift not appended")
	}
	if d.Schedule.Shifts[0].ID == "" {
		t.Fatalf("appended shift missing stable id")
	}
}

func TestTeamScopedRoleEdits(t *testing.T) {
	d := models.EventDraft{}
	d = SetHasTeams(d, true)
	d = AddTeam(d, "t1", "Security Team")
	d = AddRole(d, "t1", "r1", "Supervisor")
	d = SetRoleStaffCount(d, "t1", "r1", 3)
	d = AssignStaff(d, "t1", "r1", models.StaffRef{ID: "s1", Name: "Mina"}, "")

	team := d.Teams[0]
	if team.Roles[0].StaffCount != 3 {
		t.Fatalf("team role count not set")
	}
	got := team.Roles[0].AssignedStaff[0]
	if got.TeamID != "t1" || got.Role != "Supervisor" {
		t.Fatalf("assignment not stamped with team/role: %+v", got)
	}

	d = RemoveTeam(d, "t1")
	if len(d.Teams) != 0 {
		t.Fatalf("team not removed")
	}
}

func TestApplyUnknownAction(t *testing.T) {
	if _, err := Apply(models.EventDraft{}, Action{Type: "FROBNICATE"}); err == nil {
		t.Fatalf("expected error for unknown action type")
	}
}

func TestApplyActionLogBuildsDraft(t *testing.T) {
	actions := []Action{
		{Type: ActionSetBasics, Name: "Launch Night", Location: "Pier 9", StartDate: "2026-09-12"},
		{Type: ActionSetScheduleWindow, StartTime: "18:00", EndTime: "23:00"},
		{Type: ActionAddRole, RoleID: "r1", RoleName: "Security"},
		{Type: ActionSetStaffCount, RoleID: "r1", Count: 2},
		{Type: ActionAssignStaff, RoleID: "r1", Staff: models.StaffRef{ID: "s1", Name: "Mina"}},
	}
	d := models.EventDraft{}
	for _, a := range actions {
		var err error
		d, err = Apply(d, a)
		if err != nil {
			t.Fatalf("apply %s: %v", a.Type, err)
		}
	}
	if d.Name != "Launch Night" || len(d.Roles) != 1 || len(d.Roles[0].AssignedStaff) != 1 {
		t.Fatalf("action log did not rebuild draft: %+v", d)
	}
}
