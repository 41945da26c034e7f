package broadcast

import (
	"encoding/json"
	"testing"
	"time"

	"staffloop/models"
)

func TestHubRegisterPublishUnregister(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	client := &Client{
		Send:    make(chan []byte, 10),
		EventID: "e1",
	}

	hub.register <- client

	msg := models.BroadcastMessage{MessageID: "b1", EventID: "e1", Content: "gates open at 8"}
	data, _ := json.Marshal(msg)
	hub.Publish("e1", data)

	select {
	case got := <-client.Send:
		if string(got) != string(data) {
			t.Fatalf("expected %s, got %s", data, got)
		}
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for message")
	}

	hub.unregister <- client
}

func TestHubRoomsAreIsolated(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	a := &Client{Send: make(chan []byte, 10), EventID: "e1"}
	b := &Client{Send: make(chan []byte, 10), EventID: "e2"}
	hub.register <- a
	hub.register <- b

	hub.Publish("e1", []byte("only for e1"))

	select {
	case <-a.Send:
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for room message")
	}

	select {
	case got := <-b.Send:
		t.Fatalf("client in other room received %s", got)
	case <-time.After(100 * time.Millisecond):
	}
}
