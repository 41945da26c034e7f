package reports

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"staffloop/db"
	"staffloop/models"
	"staffloop/utils"
)

func loadEventAndCheckins(ctx context.Context, eventID string) (models.Event, []models.Checkin, error) {
	var event models.Event
	if err := db.EventsCollection.FindOne(ctx, bson.M{"eventid": eventID}).Decode(&event); err != nil {
		return models.Event{}, nil, err
	}

	cur, err := db.CheckinsCollection.Find(ctx, bson.M{"eventid": eventID})
	if err != nil {
		return models.Event{}, nil, err
	}
	defer cur.Close(ctx)

	var checkins []models.Checkin
	if err := cur.All(ctx, &checkins); err != nil {
		return models.Event{}, nil, err
	}
	return event, checkins, nil
}

// GetAttendanceReport returns the aggregated attendance summary as JSON.
func GetAttendanceReport(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	eventID := ps.ByName("eventid")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	event, checkins, err := loadEventAndCheckins(ctx, eventID)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Event not found")
		return
	}
	if err != nil {
		log.Printf("attendance report for event %s: %v", eventID, err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to build report")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, BuildAttendanceSummary(event, checkins))
}

// ExportAttendancePDF streams the attendance summary as a printable PDF.
func ExportAttendancePDF(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	eventID := ps.ByName("eventid")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	event, checkins, err := loadEventAndCheckins(ctx, eventID)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Event not found")
		return
	}
	if err != nil {
		log.Printf("attendance export for event %s: %v", eventID, err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to build report")
		return
	}

	pdfBytes, err := BuildAttendancePDF(BuildAttendanceSummary(event, checkins))
	if err != nil {
		log.Printf("attendance PDF for event %s: %v", eventID, err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate PDF")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=attendance-"+eventID+".pdf")
	w.WriteHeader(http.StatusOK)
	w.Write(pdfBytes)
}
