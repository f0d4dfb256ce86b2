package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/rs/zerolog"
)

// ErrHubStopped is returned when publishing to or joining a hub whose Run loop has exited
var ErrHubStopped = errors.New("live feed hub stopped")

// EventType names a change to the pending queue
type EventType string

const (
	EventQueued      EventType = "pending.queued"
	EventApproved    EventType = "pending.approved"
	EventDisapproved EventType = "pending.disapproved"
)

// Event is one queue change pushed to connected administrators
type Event struct {
	Type             EventType `json:"type"`
	PendingRequestID int64     `json:"pendingRequestId"`
	RequesterName    string    `json:"requesterName"`
	RequesterEmail   string    `json:"requesterEmail"`
	DualEnrollment   bool      `json:"dualEnrollment,omitempty"`
	Reasons          string    `json:"reasons,omitempty"`
	Timestamp        time.Time `json:"timestamp"`
}

// Hub maintains the set of connected administrators and fans queue events out to them
type Hub struct {
	// Registered clients
	clients map[*Client]bool

	// Events waiting to be broadcast
	broadcast chan *Event

	// Register requests from the clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client

	// The most recent events, replayed to newly registered clients
	history     [][]byte
	historySize int

	// Closed when Run returns
	done chan struct{}

	// Reports the connected client count to ClientCount
	countRequests chan chan int

	logger zerolog.Logger
}

// NewHub creates a new Hub instance. historySize events are replayed to
// every client that connects.
func NewHub(historySize int, logger zerolog.Logger) *Hub {
	return &Hub{
		clients:       make(map[*Client]bool),
		broadcast:     make(chan *Event, 64),
		register:      make(chan *Client),
		unregister:    make(chan *Client),
		historySize:   historySize,
		done:          make(chan struct{}),
		countRequests: make(chan chan int),
		logger:        logger,
	}
}

// Run handles registrations and broadcasts until ctx is cancelled. All
// client state is owned by this goroutine.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			for client := range h.clients {
				h.removeClient(client)
			}
			h.logger.Info().Msg("Live feed hub stopped")
			return

		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.removeClient(client)

		case event := <-h.broadcast:
			h.broadcastEvent(event)

		case reply := <-h.countRequests:
			reply <- len(h.clients)
		}
	}
}

// registerClient registers a new client and replays recent history to it
func (h *Hub) registerClient(client *Client) {
	h.clients[client] = true

	for _, data := range h.history {
		select {
		case client.send <- data:
		default:
		}
	}

	h.logger.Info().
		Int64("adminID", client.adminID).
		Str("addr", client.remoteAddr()).
		Int("clients", len(h.clients)).
		Msg("Live feed client registered")
}

// removeClient unregisters a client and closes its send channel
func (h *Hub) removeClient(client *Client) {
	if _, ok := h.clients[client]; !ok {
		return
	}

	delete(h.clients, client)
	close(client.send)

	h.logger.Info().
		Int64("adminID", client.adminID).
		Str("addr", client.remoteAddr()).
		Msg("Live feed client unregistered")
}

// broadcastEvent sends an event to every client. Clients whose buffers are
// full are dropped rather than allowed to stall the hub.
func (h *Hub) broadcastEvent(event *Event) {
	data, err := json.Marshal(event)
	if err != nil {
		h.logger.Error().Err(err).Str("type", string(event.Type)).Msg("Failed to marshal live feed event")
		return
	}

	if h.historySize > 0 {
		h.history = append(h.history, data)
		if len(h.history) > h.historySize {
			h.history = h.history[len(h.history)-h.historySize:]
		}
	}

	for client := range h.clients {
		select {
		case client.send <- data:
		default:
			h.logger.Warn().Int64("adminID", client.adminID).Msg("Dropping slow live feed client")
			h.removeClient(client)
		}
	}

	h.logger.Debug().
		Str("type", string(event.Type)).
		Int64("pendingRequestId", event.PendingRequestID).
		Int("clientCount", len(h.clients)).
		Msg("Live feed event broadcast")
}

// Publish queues an event for broadcast
func (h *Hub) Publish(ctx context.Context, event *Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	select {
	case h.broadcast <- event:
		return nil
	case <-h.done:
		return ErrHubStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	reply := make(chan int, 1)
	select {
	case h.countRequests <- reply:
		return <-reply
	case <-h.done:
		return 0
	}
}

func (h *Hub) join(client *Client) error {
	select {
	case h.register <- client:
		return nil
	case <-h.done:
		return ErrHubStopped
	}
}

func (h *Hub) leave(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}
