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

// CreateEvent is the wizard submission endpoint. The full draft must pass
// every step's validation; partially valid drafts belong on the draft-save
// path instead.
func CreateEvent(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var draft models.EventDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	requestingUserID, ok := r.Context().Value(globals.UserIDKey).(string)
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid user")
		return
	}

	if res := wizard.ValidateAll(draft); !res.OK {
		utils.RespondWithJSON(w, http.StatusBadRequest, utils.M{
			"error":    "Event setup is incomplete",
			"details":  res.Errors,
			"warnings": res.Warnings,
		})
		return
	}

	now := time.Now().UTC()
	event := models.Event{
		EventID:     "e" + utils.GenerateID(13),
		OrganizerID: requestingUserID,
		Status:      models.EventStatusUpcoming,
		Draft:       draft,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	// EventID collision check
	exists := db.EventsCollection.FindOne(context.TODO(), bson.M{"eventid": event.EventID}).Err()
	if exists == nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Event ID collision, try again")
		return
	}

	result, err := db.EventsCollection.InsertOne(context.TODO(), event)
	if err != nil || result.InsertedID == nil {
		log.Printf("Error inserting event into MongoDB: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Error saving event")
		return
	}

	go mq.Emit("event-created", mq.Index{
		EntityType: "event", EntityId: event.EventID, Method: "POST",
	})

	// the calendar-export offer shown after submission consumes this record
	calendar, calErr := BuildCalendarEvent(event)
	resp := utils.M{"event": event}
	if calErr == nil {
		resp["calendar"] = calendar
	}

	utils.RespondWithJSON(w, http.StatusCreated, resp)
}
