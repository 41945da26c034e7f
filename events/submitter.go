package events

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"staffloop/db"
	"staffloop/models"
	"staffloop/mq"
	"staffloop/utils"
)

// Creator persists a finished wizard draft as an upcoming event. It is the
// submission collaborator server-side wizard sessions are wired with.
type Creator struct {
	OrganizerID string
}

func (c Creator) CreateEvent(ctx context.Context, draft models.EventDraft) (string, error) {
	now := time.Now().UTC()
	event := models.Event{
		EventID:     "e" + utils.GenerateID(13),
		OrganizerID: c.OrganizerID,
		Status:      models.EventStatusUpcoming,
		Draft:       draft,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := db.EventsCollection.InsertOne(ctx, event); err != nil {
		return "", err
	}
	go mq.Emit("event-created", mq.Index{
		EntityType: "event",
		EntityId:   event.EventID,
		Method:     "POST",
	})
	return event.EventID, nil
}

// Updater rewrites the draft of an existing event in place. Edit-mode wizard
// sessions submit through it, so finishing an edit never mints a second
// event record.
type Updater struct {
	EventID     string
	OrganizerID string
}

func (u Updater) CreateEvent(ctx context.Context, draft models.EventDraft) (string, error) {
	res, err := db.EventsCollection.UpdateOne(ctx,
		bson.M{"eventid": u.EventID, "organizerid": u.OrganizerID},
		bson.M{"$set": bson.M{
			"draft":      draft,
			"updated_at": time.Now().UTC(),
		}},
	)
	if err != nil {
		return "", err
	}
	if res.MatchedCount == 0 {
		return "", mongo.ErrNoDocuments
	}
	go mq.Emit("event-updated", mq.Index{
		EntityType: "event",
		EntityId:   u.EventID,
		Method:     "PUT",
	})
	return u.EventID, nil
}
