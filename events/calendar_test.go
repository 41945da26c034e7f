package events

import (
	"strings"
	"testing"
	"time"

	"staffloop/models"
)

func TestBuildCalendarEvent(t *testing.T) {
	event := models.Event{
		EventID: "e1",
		Draft: models.EventDraft{
			Name:       "Launch Night",
			Location:   "Pier 9",
			IsMultiDay: true,
			StartDate:  "2026-09-12",
			EndDate:    "2026-09-13",
			Schedule:   models.Schedule{StartTime: "18:00", EndTime: "02:00"},
		},
	}

	cal, err := BuildCalendarEvent(event)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if cal.StartDateTime.Format("2006-01-02 15:04") != "2026-09-12 18:00" {
		t.Fatalf("start %v", cal.StartDateTime)
	}
	// multi-day: end time lands on the end date
	if cal.EndDateTime.Format("2006-01-02 15:04") != "2026-09-13 02:00" {
		t.Fatalf("end %v", cal.EndDateTime)
	}

	event.Draft.StartDate = ""
	if _, err := BuildCalendarEvent(event); err == nil {
		t.Fatalf("expected error for missing start date")
	}
}

func TestEncodeICS(t *testing.T) {
	ics := string(EncodeICS(models.CalendarEvent{
		ID:            "e1",
		Name:          "Launch; Night",
		Location:      "Pier 9, Dock A",
		Description:   "line one\nline two",
		StartDateTime: time.Date(2026, 9, 12, 18, 0, 0, 0, time.UTC),
		EndDateTime:   time.Date(2026, 9, 12, 23, 0, 0, 0, time.UTC),
	}))

	for _, want := range []string{
		"BEGIN:VCALENDAR",
		"DTSTART:20260912T180000Z",
		"SUMMARY:Launch\\; Night",
		"LOCATION:Pier 9\\, Dock A",
		"DESCRIPTION:line one\\nline two",
		"END:VEVENT",
	} {
		if !strings.Contains(ics, want) {
			t.Errorf("ICS missing %q:\n%s", want, ics)
		}
	}
	if !strings.Contains(ics, "\r\n") {
		t.Errorf("ICS lines must be CRLF terminated")
	}
}
