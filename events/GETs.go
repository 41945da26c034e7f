package events

import (
	"log"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"staffloop/db"
	"staffloop/models"
	"staffloop/utils"
)

func GetEvent(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	eventID := ps.ByName("eventid")

	var event models.Event
	err := db.EventsCollection.FindOne(r.Context(), bson.M{"eventid": eventID}).Decode(&event)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondWithError(w, http.StatusNotFound, "Event not found")
		} else {
			log.Printf("DB error: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, event)
}

// GetEvents lists events, optionally filtered by status, newest first.
func GetEvents(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}

	query := bson.M{}
	if status := r.URL.Query().Get("status"); status != "" {
		query["status"] = status
	}

	skip := (page - 1) * limit
	opts := options.Find().
		SetSort(bson.M{"created_at": -1}).
		SetSkip(int64(skip)).
		SetLimit(int64(limit))

	cursor, err := db.EventsCollection.Find(ctx, query, opts)
	if err != nil {
		log.Printf("DB error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer cursor.Close(ctx)

	var results []models.Event
	if err := cursor.All(ctx, &results); err != nil {
		log.Printf("Cursor decode error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to parse results")
		return
	}
	if len(results) == 0 {
		results = []models.Event{}
	}

	total, _ := db.EventsCollection.CountDocuments(ctx, query)

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"data":  results,
		"total": total,
	})
}

func GetEventsCount(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query := bson.M{}
	if status := r.URL.Query().Get("status"); status != "" {
		query["status"] = status
	}
	count, err := db.EventsCollection.CountDocuments(r.Context(), query)
	if err != nil {
		log.Printf("DB error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"count": count})
}
