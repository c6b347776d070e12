package ws

import (
	"encoding/json"
	"sync"

	"go.uber.org/zap"
)

// Hub maintains the set of connected notification clients and pushes events
// to them, keyed by user id. Message persistence stays with the REST
// handlers; the hub only delivers "something happened" events.
type Hub struct {
	// Registered clients.
	clients map[*Client]bool

	// Register requests from the clients.
	Register chan *Client

	// Unregister requests from clients.
	Unregister chan *Client

	// Map to quickly find clients by UserID
	userClients map[uint][]*Client

	// Mutex to protect the userClients map
	mutex sync.Mutex

	log *zap.Logger
}

func NewHub(log *zap.Logger) *Hub {
	return &Hub{
		Register:    make(chan *Client),
		Unregister:  make(chan *Client),
		clients:     make(map[*Client]bool),
		userClients: make(map[uint][]*Client),
		log:         log,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.clients[client] = true
			h.addUserClient(client)
		case client := <-h.Unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
				h.removeUserClient(client)
			}
		}
	}
}

// NotifyUser pushes an event to every open connection of the user. Slow
// clients are dropped rather than blocking the sender.
func (h *Hub) NotifyUser(userID uint, event interface{}) {
	payload, err := json.Marshal(event)
	if err != nil {
		h.log.Warn("failed to encode ws event", zap.Error(err))
		return
	}

	h.mutex.Lock()
	clients := append([]*Client(nil), h.userClients[userID]...)
	h.mutex.Unlock()

	for _, client := range clients {
		select {
		case client.Send <- payload:
		default:
			h.Unregister <- client
		}
	}
}

func (h *Hub) addUserClient(client *Client) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	h.userClients[client.UserID] = append(h.userClients[client.UserID], client)
}

func (h *Hub) removeUserClient(client *Client) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	list := h.userClients[client.UserID]
	for i, c := range list {
		if c == client {
			h.userClients[client.UserID] = append(list[:i], list[i+1:]...)
			break
		}
	}
	if len(h.userClients[client.UserID]) == 0 {
		delete(h.userClients, client.UserID)
	}
}
