package events

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"

	"staffloop/db"
	"staffloop/globals"
	"staffloop/models"
	"staffloop/mq"
	"staffloop/utils"
	"staffloop/wizard"
)

// legal status transitions
var statusTransitions = map[string][]string{
	models.EventStatusDraft:    {models.EventStatusUpcoming, models.EventStatusCancelled},
	models.EventStatusUpcoming: {models.EventStatusOngoing, models.EventStatusCancelled},
	models.EventStatusOngoing:  {models.EventStatusEnded, models.EventStatusCancelled},
}

// EditEvent replaces the staffing plan of an existing event. Only the
// organizer may edit, and the replacement must validate fully for non-draft
// events.
func EditEvent(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	eventID := ps.ByName("eventid")

	requestingUserID, ok := r.Context().Value(globals.UserIDKey).(string)
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid user")
		return
	}

	var draft models.EventDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	var existing models.Event
	err := db.EventsCollection.FindOne(r.Context(),
		bson.M{"eventid": eventID, "organizerid": requestingUserID}).Decode(&existing)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Event not found")
		return
	}

	if existing.Status != models.EventStatusDraft {
		if res := wizard.ValidateAll(draft); !res.OK {
			utils.RespondWithJSON(w, http.StatusBadRequest, utils.M{
				"error":   "Event setup is incomplete",
				"details": res.Errors,
			})
			return
		}
	}

	_, err = db.EventsCollection.UpdateOne(context.TODO(),
		bson.M{"eventid": eventID},
		bson.M{"$set": bson.M{"draft": draft, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		log.Printf("Error updating event: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Error saving event")
		return
	}

	go mq.Emit("event-updated", mq.Index{
		EntityType: "event", EntityId: eventID, Method: "PUT",
	})

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true})
}

// UpdateEventStatus moves an event along its lifecycle.
func UpdateEventStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	eventID := ps.ByName("eventid")

	requestingUserID, ok := r.Context().Value(globals.UserIDKey).(string)
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid user")
		return
	}

	var input struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	var existing models.Event
	err := db.EventsCollection.FindOne(r.Context(),
		bson.M{"eventid": eventID, "organizerid": requestingUserID}).Decode(&existing)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Event not found")
		return
	}

	if !utils.Contains(statusTransitions[existing.Status], input.Status) {
		utils.RespondWithError(w, http.StatusBadRequest,
			"Cannot move event from "+existing.Status+" to "+input.Status)
		return
	}

	_, err = db.EventsCollection.UpdateOne(context.TODO(),
		bson.M{"eventid": eventID},
		bson.M{"$set": bson.M{"status": input.Status, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		log.Printf("Error updating event status: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Error saving event")
		return
	}

	go mq.Emit("event-status-changed", mq.Index{
		EntityType: "event", EntityId: eventID, Method: "PUT", ItemType: input.Status,
	})

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true})
}

func DeleteEvent(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	eventID := ps.ByName("eventid")

	requestingUserID, ok := r.Context().Value(globals.UserIDKey).(string)
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid user")
		return
	}

	res, err := db.EventsCollection.DeleteOne(context.TODO(),
		bson.M{"eventid": eventID, "organizerid": requestingUserID})
	if err != nil {
		log.Printf("Error deleting event: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete event")
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Event not found")
		return
	}

	go mq.Emit("event-deleted", mq.Index{
		EntityType: "event", EntityId: eventID, Method: "DELETE",
	})

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true})
}
