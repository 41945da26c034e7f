package broadcast

import (
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"staffloop/models"
)

type fakeConn struct {
	mu     sync.Mutex
	frames [][]byte
	delay  time.Duration
	closed bool
}

func (f *fakeConn) WriteMessage(messageType int, data []byte) error {
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return errors.New("connection closed")
	}
	f.frames = append(f.frames, append([]byte(nil), data...))
	return nil
}

func (f *fakeConn) ReadMessage() (int, []byte, error) {
	return 0, nil, errors.New("connection closed")
}

func (f *fakeConn) Close() error {
	f.mu.Lock()
	f.closed = true
	f.mu.Unlock()
	return nil
}

func (f *fakeConn) frameCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.frames)
}

func TestWriteHistoryOldestFirst(t *testing.T) {
	conn := &fakeConn{}
	client := &Client{Send: make(chan []byte, 10), EventID: "e1", conn: conn}

	// stored newest first, as the collection query returns them
	history := []models.BroadcastMessage{
		{MessageID: "b3", Content: "third"},
		{MessageID: "b2", Content: "second"},
		{MessageID: "b1", Content: "first"},
	}
	writeHistory(client, history)

	if got := conn.frameCount(); got != 3 {
		t.Fatalf("expected 3 frames, got %d", got)
	}
	var first models.BroadcastMessage
	if err := json.Unmarshal(conn.frames[0], &first); err != nil {
		t.Fatalf("bad frame: %v", err)
	}
	if first.MessageID != "b1" {
		t.Fatalf("expected oldest message first, got %s", first.MessageID)
	}
}

func TestHistoryReplayClientDropsMidway(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	conn := &fakeConn{delay: 5 * time.Millisecond}
	client := &Client{Send: make(chan []byte, 10), EventID: "e1", conn: conn}
	hub.register <- client

	history := make([]models.BroadcastMessage, 20)
	for i := range history {
		history[i] = models.BroadcastMessage{MessageID: "b", Content: "msg"}
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		writeHistory(client, history)
		writePump(client)
	}()

	// drop the client while the replay is still streaming; the hub closes
	// Send, which must not break the in-flight history writes
	time.Sleep(20 * time.Millisecond)
	hub.unregister <- client

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for writer goroutine to finish")
	}

	if got := conn.frameCount(); got != len(history) {
		t.Fatalf("expected all %d history frames written, got %d", len(history), got)
	}
}
