package drafts

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"staffloop/db"
	"staffloop/globals"
	"staffloop/models"
	"staffloop/mq"
	"staffloop/utils"
)

// AutosaveStore is the channel autosaved drafts go through. Swapped for a
// MemoryStore in tests.
var AutosaveStore Store = RedisStore{}

func requestUserID(r *http.Request) (string, bool) {
	id, ok := r.Context().Value(globals.UserIDKey).(string)
	return id, ok && id != ""
}

// AutosaveDraft stores the caller's in-progress draft. The client debounces;
// this endpoint just writes whatever arrives. Edit-mode clients never call it.
func AutosaveDraft(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID, ok := requestUserID(r)
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid user")
		return
	}

	var saved models.SavedDraft
	if err := json.NewDecoder(r.Body).Decode(&saved); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if saved.SavedAt.IsZero() {
		saved.SavedAt = time.Now().UTC()
	}

	if err := AutosaveStore.Set(r.Context(), userID, saved); err != nil {
		log.Printf("Autosave set failed for %s: %v", userID, err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save draft")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true})
}

// GetAutosavedDraft backs the resume dialog shown once on wizard mount: the
// caller either hydrates from the response or discards.
func GetAutosavedDraft(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID, ok := requestUserID(r)
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid user")
		return
	}

	saved, exists, err := AutosaveStore.Get(r.Context(), userID)
	if err != nil {
		log.Printf("Autosave get failed for %s: %v", userID, err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load draft")
		return
	}
	if !exists {
		utils.RespondWithJSON(w, http.StatusOK, utils.M{"exists": false})
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"exists": true, "draft": saved})
}

// DiscardAutosavedDraft clears the autosave channel (the "start fresh" path).
func DiscardAutosavedDraft(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID, ok := requestUserID(r)
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid user")
		return
	}
	if err := AutosaveStore.Clear(r.Context(), userID); err != nil {
		log.Printf("Autosave clear failed for %s: %v", userID, err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to discard draft")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true})
}

// SaveDraft is the explicit "Save as Draft" action: the draft goes to the
// events collection with status=draft and the autosave channel is cleared —
// the backend record becomes the single source of truth.
func SaveDraft(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID, ok := requestUserID(r)
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid user")
		return
	}

	var input struct {
		Draft      models.EventDraft `json:"draft"`
		ExistingID string            `json:"existing_id,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if strings.TrimSpace(input.Draft.Name) == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Event name is required to save a draft")
		return
	}

	now := time.Now().UTC()
	eventID := input.ExistingID

	if eventID == "" {
		event := models.Event{
			EventID:     "e" + utils.GenerateID(13),
			OrganizerID: userID,
			Status:      models.EventStatusDraft,
			Draft:       input.Draft,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if _, err := db.EventsCollection.InsertOne(context.TODO(), event); err != nil {
			log.Printf("Error inserting draft event: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save draft")
			return
		}
		eventID = event.EventID
	} else {
		res, err := db.EventsCollection.UpdateOne(context.TODO(),
			bson.M{"eventid": eventID, "organizerid": userID, "status": models.EventStatusDraft},
			bson.M{"$set": bson.M{"draft": input.Draft, "updated_at": now}},
		)
		if err != nil {
			log.Printf("Error updating draft event: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save draft")
			return
		}
		if res.MatchedCount == 0 {
			utils.RespondWithError(w, http.StatusNotFound, "Draft not found")
			return
		}
	}

	// explicit save wins: drop the parallel local channel
	if err := AutosaveStore.Clear(r.Context(), userID); err != nil {
		log.Printf("Autosave clear after explicit save failed for %s: %v", userID, err)
	}

	go mq.Emit("draft-saved", mq.Index{
		EntityType: "event", EntityId: eventID, Method: "POST",
	})

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"id": eventID, "success": true})
}

// GetDraft loads a backend draft for edit-mode resumption.
func GetDraft(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID, ok := requestUserID(r)
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid user")
		return
	}
	eventID := ps.ByName("eventid")

	var event models.Event
	err := db.EventsCollection.FindOne(r.Context(),
		bson.M{"eventid": eventID, "organizerid": userID, "status": models.EventStatusDraft},
	).Decode(&event)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondWithError(w, http.StatusNotFound, "Draft not found")
		} else {
			log.Printf("DB error: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, event)
}

// DeleteDraft removes a backend draft.
func DeleteDraft(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID, ok := requestUserID(r)
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid user")
		return
	}
	eventID := ps.ByName("eventid")

	res, err := db.EventsCollection.DeleteOne(context.TODO(),
		bson.M{"eventid": eventID, "organizerid": userID, "status": models.EventStatusDraft})
	if err != nil {
		log.Printf("Error deleting draft: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete draft")
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Draft not found")
		return
	}

	go mq.Emit("draft-deleted", mq.Index{
		EntityType: "event", EntityId: eventID, Method: "DELETE",
	})

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true})
}
