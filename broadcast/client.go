package broadcast

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"staffloop/db"
	"staffloop/globals"
	"staffloop/models"
)

// wsConn is the slice of *websocket.Conn the pumps need.
type wsConn interface {
	WriteMessage(messageType int, data []byte) error
	ReadMessage() (messageType int, p []byte, err error)
	Close() error
}

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

// ServeWS upgrades the request and subscribes the caller to the
// event's announcement room. Staff connections are read-mostly;
// inbound frames are ignored except as liveness.
func ServeWS(hub *Hub) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		eventID := ps.ByName("eventid")
		userID, _ := r.Context().Value(globals.UserIDKey).(string)

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Println("upgrade:", err)
			return
		}
		client := &Client{
			Send:    make(chan []byte, 256),
			EventID: eventID,
			UserID:  userID,
			conn:    conn,
		}

		hub.register <- client
		go readPump(client, hub)

		// one writer goroutine: history replay first, then the Send loop.
		// The hub owns closing Send, so nothing else may write to it.
		go func() {
			writeHistory(client, fetchHistory(eventID))
			writePump(client)
		}()
	}
}

func fetchHistory(eventID string) []models.BroadcastMessage {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "sent_at", Value: -1}}).
		SetLimit(30)

	cur, err := db.BroadcastsCollection.Find(ctx, bson.M{"eventid": eventID}, opts)
	if err != nil {
		log.Println("broadcast history find:", err)
		return nil
	}
	defer cur.Close(ctx)

	var history []models.BroadcastMessage
	if err := cur.All(ctx, &history); err != nil {
		log.Println("broadcast history decode:", err)
		return nil
	}
	return history
}

// writeHistory replays past announcements oldest first, writing straight to
// the connection rather than through Send.
func writeHistory(c *Client, history []models.BroadcastMessage) {
	for i := len(history) - 1; i >= 0; i-- {
		data, err := json.Marshal(history[i])
		if err != nil {
			continue
		}
		if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			return
		}
	}
}

func writePump(c *Client) {
	defer c.conn.Close()
	for msg := range c.Send {
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			break
		}
	}
}

func readPump(c *Client, hub *Hub) {
	defer func() {
		hub.unregister <- c
		c.conn.Close()
	}()

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			break
		}
	}
}
