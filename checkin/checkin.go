package checkin

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"staffloop/db"
	"staffloop/models"
	"staffloop/mq"
	"staffloop/utils"
)

// staff arriving this long after the schedule start are marked late
const lateGrace = 15 * time.Minute

// CheckIn records a staff arrival after verifying the geofence. A staff
// member with an open check-in for the event cannot check in again.
func CheckIn(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input struct {
		EventID   string  `json:"eventid"`
		StaffID   string  `json:"staffid"`
		ShiftID   string  `json:"shift_id,omitempty"`
		TeamID    string  `json:"team_id,omitempty"`
		Role      string  `json:"role,omitempty"`
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if input.EventID == "" || input.StaffID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Event and staff are required")
		return
	}

	var event models.Event
	err := db.EventsCollection.FindOne(r.Context(), bson.M{"eventid": input.EventID}).Decode(&event)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondWithError(w, http.StatusNotFound, "Event not found")
		} else {
			log.Printf("DB error: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if !WithinGeofence(event.Draft.Geofence, input.Latitude, input.Longitude) {
		utils.RespondWithError(w, http.StatusForbidden, "You are outside the event check-in area")
		return
	}

	// reject a second open check-in
	openFilter := bson.M{
		"eventid":        input.EventID,
		"staffid":        input.StaffID,
		"checked_out_at": bson.M{"$exists": false},
	}
	if err := db.CheckinsCollection.FindOne(r.Context(), openFilter).Err(); err == nil {
		utils.RespondWithError(w, http.StatusConflict, "Already checked in")
		return
	}

	now := time.Now().UTC()
	status := models.CheckinStatusPresent
	if start, perr := time.Parse("2006-01-02 15:04", event.Draft.StartDate+" "+event.Draft.Schedule.StartTime); perr == nil {
		if now.After(start.Add(lateGrace)) {
			status = models.CheckinStatusLate
		}
	}

	record := models.Checkin{
		CheckinID:   "c" + utils.GenerateID(13),
		EventID:     input.EventID,
		StaffID:     input.StaffID,
		ShiftID:     input.ShiftID,
		TeamID:      input.TeamID,
		Role:        input.Role,
		Latitude:    input.Latitude,
		Longitude:   input.Longitude,
		Status:      status,
		CheckedInAt: now,
	}

	if _, err := db.CheckinsCollection.InsertOne(context.TODO(), record); err != nil {
		log.Printf("Error inserting checkin: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to record check-in")
		return
	}

	go mq.Emit("checkin-recorded", mq.Index{
		EntityType: "checkin", EntityId: record.CheckinID, Method: "POST",
		ItemType: "event", ItemId: input.EventID,
	})

	utils.RespondWithJSON(w, http.StatusCreated, record)
}

// CheckOut closes the staff member's open check-in.
func CheckOut(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input struct {
		EventID string `json:"eventid"`
		StaffID string `json:"staffid"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	now := time.Now().UTC()
	res, err := db.CheckinsCollection.UpdateOne(context.TODO(),
		bson.M{
			"eventid":        input.EventID,
			"staffid":        input.StaffID,
			"checked_out_at": bson.M{"$exists": false},
		},
		bson.M{"$set": bson.M{"checked_out_at": now}},
	)
	if err != nil {
		log.Printf("Error updating checkin: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to record check-out")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "No open check-in found")
		return
	}

	go mq.Emit("checkout-recorded", mq.Index{
		EntityType: "checkin", EntityId: input.StaffID, Method: "PUT",
		ItemType: "event", ItemId: input.EventID,
	})

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true, "checked_out_at": now})
}

// GetEventAttendance lists an event's attendance records, optionally scoped
// to one team for the supervisor view.
func GetEventAttendance(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	eventID := ps.ByName("eventid")

	query := bson.M{"eventid": eventID}
	if teamID := r.URL.Query().Get("team"); teamID != "" {
		query["team_id"] = teamID
	}

	cursor, err := db.CheckinsCollection.Find(r.Context(), query)
	if err != nil {
		log.Printf("DB error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer cursor.Close(r.Context())

	var records []models.Checkin
	if err := cursor.All(r.Context(), &records); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to parse results")
		return
	}
	if len(records) == 0 {
		records = []models.Checkin{}
	}
	utils.RespondWithJSON(w, http.StatusOK, records)
}
