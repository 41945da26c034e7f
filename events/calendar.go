package events

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"

	"staffloop/db"
	"staffloop/models"
	"staffloop/utils"
)

// BuildCalendarEvent flattens a stored event into the record the ICS exporter
// consumes. Date and time strings from the wizard are combined into real
// timestamps; multi-day events end on their end date.
func BuildCalendarEvent(event models.Event) (models.CalendarEvent, error) {
	d := event.Draft

	start, err := time.Parse("2006-01-02 15:04", d.StartDate+" "+d.Schedule.StartTime)
	if err != nil {
		return models.CalendarEvent{}, fmt.Errorf("invalid start: %w", err)
	}

	endDate := d.StartDate
	if d.IsMultiDay && d.EndDate != "" {
		endDate = d.EndDate
	}
	end, err := time.Parse("2006-01-02 15:04", endDate+" "+d.Schedule.EndTime)
	if err != nil {
		return models.CalendarEvent{}, fmt.Errorf("invalid end: %w", err)
	}

	return models.CalendarEvent{
		ID:            event.EventID,
		Name:          d.Name,
		Description:   d.Description,
		Location:      d.Location,
		StartDateTime: start,
		EndDateTime:   end,
	}, nil
}

func icsEscape(s string) string {
	r := strings.NewReplacer("\\", "\\\\", ";", "\\;", ",", "\\,", "\n", "\\n")
	return r.Replace(s)
}

// EncodeICS renders a single-event iCalendar file.
func EncodeICS(ev models.CalendarEvent) []byte {
	const stamp = "20060102T150405Z"
	var b strings.Builder
	lines := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//StaffLoop//Event Export//EN",
		"BEGIN:VEVENT",
		"UID:" + ev.ID + "@staffloop",
		"DTSTAMP:" + time.Now().UTC().Format(stamp),
		"DTSTART:" + ev.StartDateTime.UTC().Format(stamp),
		"DTEND:" + ev.EndDateTime.UTC().Format(stamp),
		"SUMMARY:" + icsEscape(ev.Name),
		"LOCATION:" + icsEscape(ev.Location),
	}
	if ev.Description != "" {
		lines = append(lines, "DESCRIPTION:"+icsEscape(ev.Description))
	}
	lines = append(lines, "END:VEVENT", "END:VCALENDAR")
	for _, l := range lines {
		b.WriteString(l)
		b.WriteString("\r\n")
	}
	return []byte(b.String())
}

// ExportEventICS serves the post-submission calendar download.
func ExportEventICS(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	eventID := ps.ByName("eventid")

	var event models.Event
	if err := db.EventsCollection.FindOne(r.Context(), bson.M{"eventid": eventID}).Decode(&event); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Event not found")
		return
	}

	calendar, err := BuildCalendarEvent(event)
	if err != nil {
		utils.RespondWithError(w, http.StatusUnprocessableEntity, "Event has no valid schedule to export")
		return
	}

	w.Header().Set("Content-Type", "text/calendar")
	w.Header().Set("Content-Disposition", "attachment; filename="+eventID+".ics")
	w.WriteHeader(http.StatusOK)
	w.Write(EncodeICS(calendar))
}
