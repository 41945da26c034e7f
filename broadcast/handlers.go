package broadcast

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"staffloop/db"
	"staffloop/globals"
	"staffloop/models"
	"staffloop/mq"
	"staffloop/utils"
)

// SendBroadcast persists an organizer announcement and pushes it to
// every connected staff client in the event room.
func SendBroadcast(hub *Hub) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		eventID := ps.ByName("eventid")
		userID, ok := r.Context().Value(globals.UserIDKey).(string)
		if !ok {
			utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		var body struct {
			Content string `json:"content"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
			return
		}
		body.Content = strings.TrimSpace(body.Content)
		if body.Content == "" {
			utils.RespondWithError(w, http.StatusBadRequest, "Message content is required")
			return
		}

		msg := models.BroadcastMessage{
			MessageID: "b" + utils.GenerateID(13),
			EventID:   eventID,
			SenderID:  userID,
			Content:   body.Content,
			SentAt:    time.Now(),
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()
		if _, err := db.BroadcastsCollection.InsertOne(ctx, msg); err != nil {
			log.Printf("failed to insert broadcast for event %s: %v", eventID, err)
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to send broadcast")
			return
		}

		if data, err := json.Marshal(msg); err == nil {
			hub.Publish(eventID, data)
		}
		go mq.Emit("broadcast-sent", mq.Index{EntityType: "broadcast", EntityId: msg.MessageID, Method: "POST"})

		utils.RespondWithJSON(w, http.StatusCreated, msg)
	}
}

// GetBroadcasts returns the announcement history for an event,
// newest first.
func GetBroadcasts(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	eventID := ps.ByName("eventid")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "sent_at", Value: -1}}).SetLimit(100)
	cur, err := db.BroadcastsCollection.Find(ctx, bson.M{"eventid": eventID}, opts)
	if err != nil {
		log.Printf("failed to fetch broadcasts for event %s: %v", eventID, err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch broadcasts")
		return
	}
	defer cur.Close(ctx)

	var msgs []models.BroadcastMessage
	if err := cur.All(ctx, &msgs); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode broadcasts")
		return
	}
	if msgs == nil {
		msgs = []models.BroadcastMessage{}
	}
	utils.RespondWithJSON(w, http.StatusOK, msgs)
}
