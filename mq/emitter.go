package mq

import (
	"context"
	"encoding/json"
	"log"

	"staffloop/rdx"
)

// Index represents an indexing-related message to be emitted.
type Index struct {
	EntityType string `json:"entity_type"`
	Method     string `json:"method"`
	EntityId   string `json:"entity_id"`
	ItemId     string `json:"item_id"`
	ItemType   string `json:"item_type"`
}

// Emit publishes indexing events to Redis for background consumers.
func Emit(eventName string, content Index) {
	data, err := json.Marshal(content)
	if err != nil {
		log.Printf("[Emit] Failed to marshal event content: %v", err)
		return
	}

	if err := rdx.Conn.Publish(context.Background(), "staffloop-events", data).Err(); err != nil {
		log.Printf("[Emit] Failed to publish %s to Redis: %v", eventName, err)
	}
}

// StartEventWorker consumes emitted events; currently only logs them.
// Attendance anomaly detection hangs off this channel later.
func StartEventWorker() {
	ctx := context.Background()
	sub := rdx.Conn.Subscribe(ctx, "staffloop-events")
	ch := sub.Channel()

	log.Println("[EventWorker] Listening for events...")

	for msg := range ch {
		var event Index
		if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
			log.Printf("[EventWorker] Failed to parse event: %v", err)
			continue
		}
		log.Printf("[EventWorker] Processing event=%+v", event)
	}
}
