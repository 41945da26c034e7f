package broadcast

import "sync"

// Client is one websocket subscriber scoped to a single event room.
type Client struct {
	Send    chan []byte
	EventID string
	UserID  string
	conn    wsConn
}

type roomMsg struct {
	EventID string
	Data    []byte
}

type Hub struct {
	rooms      map[string]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan roomMsg
	done       chan struct{}
	mu         sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		rooms:      make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan roomMsg),
		done:       make(chan struct{}),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case c := <-h.register:
			h.mu.Lock()
			if h.rooms[c.EventID] == nil {
				h.rooms[c.EventID] = make(map[*Client]bool)
			}
			h.rooms[c.EventID][c] = true
			h.mu.Unlock()

		case c := <-h.unregister:
			h.mu.Lock()
			if conns := h.rooms[c.EventID]; conns != nil {
				if conns[c] {
					delete(conns, c)
					close(c.Send)
				}
			}
			h.mu.Unlock()

		case m := <-h.broadcast:
			h.mu.Lock()
			for c := range h.rooms[m.EventID] {
				select {
				case c.Send <- m.Data:
				default:
					// slow client, drop it
					close(c.Send)
					delete(h.rooms[m.EventID], c)
				}
			}
			h.mu.Unlock()

		case <-h.done:
			h.mu.Lock()
			for room, conns := range h.rooms {
				for c := range conns {
					close(c.Send)
				}
				delete(h.rooms, room)
			}
			h.mu.Unlock()
			return
		}
	}
}

func (h *Hub) Stop() {
	close(h.done)
}

// Publish fans data out to every client subscribed to the event room.
func (h *Hub) Publish(eventID string, data []byte) {
	select {
	case h.broadcast <- roomMsg{EventID: eventID, Data: data}:
	case <-h.done:
	}
}
