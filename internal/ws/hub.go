package ws

import (
	"context"
	"log"
	"sync"
)

// Hub tracks live-search clients and fans job-change notifications out to
// them.
type Hub struct {
	clients    map[*Client]bool
	updates    chan []byte
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	mutex      sync.RWMutex
	logger     *log.Logger
}

func NewHub(logger *log.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		updates:    make(chan []byte, 64),
		register:   make(chan *Client, 128),
		unregister: make(chan *Client, 128),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

// Run serves registrations and notifications until ctx is done, then closes
// every remaining client. Run must be called at most once.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.mutex.Lock()
			for c := range h.clients {
				c.close()
				delete(h.clients, c)
			}
			h.mutex.Unlock()
			return

		case client := <-h.register:
			if client == nil {
				continue
			}
			h.mutex.Lock()
			h.clients[client] = true
			total := len(h.clients)
			h.mutex.Unlock()
			h.logf("[WS] Connected | total_clients=%d", total)

		case client := <-h.unregister:
			if client == nil {
				continue
			}
			h.mutex.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				client.close()
			}
			total := len(h.clients)
			h.mutex.Unlock()
			h.logf("[WS] Disconnected | total_clients=%d", total)

		case message := <-h.updates:
			h.mutex.RLock()
			snapshot := make([]*Client, 0, len(h.clients))
			for c := range h.clients {
				snapshot = append(snapshot, c)
			}
			h.mutex.RUnlock()

			for _, client := range snapshot {
				if !client.deliver(message) {
					h.drop(client)
					continue
				}
				client.refresh()
			}
			h.logf("[WS] Jobs updated broadcast | clients=%d", len(snapshot))
		}
	}
}

// drop removes a client whose send buffer is full.
func (h *Hub) drop(client *Client) {
	h.mutex.Lock()
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		client.close()
	}
	h.mutex.Unlock()
}

// Register adds a client. Once the hub has stopped the client is closed
// instead.
func (h *Hub) Register(client *Client) {
	if h == nil || client == nil {
		return
	}
	select {
	case h.register <- client:
	case <-h.done:
		client.close()
	}
}

func (h *Hub) Unregister(client *Client) {
	if h == nil || client == nil {
		return
	}
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

func (h *Hub) broadcast(message []byte) {
	if h == nil {
		return
	}
	select {
	case h.updates <- message:
	default:
		h.logf("[WS] Broadcast dropped | reason=buffer_full")
	}
}

func (h *Hub) ClientCount() int {
	if h == nil {
		return 0
	}
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}

func (h *Hub) logf(format string, args ...any) {
	if h.logger != nil {
		h.logger.Printf(format, args...)
	}
}
