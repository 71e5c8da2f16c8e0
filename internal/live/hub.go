package live

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"sync/atomic"

	"github.com/WailSalutem-Health-Care/clinic-service/internal/messaging"
)

const broadcastBacklog = 64

var _ messaging.PublisherInterface = (*Hub)(nil)

// Message is what dashboards receive for every domain event
type Message struct {
	RoutingKey string      `json:"routing_key"`
	Data       interface{} `json:"data"`
}

// Hub fans domain events out to every connected dashboard. All client
// bookkeeping happens on the Run goroutine.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client

	done      chan struct{}
	closeOnce sync.Once
	count     atomic.Int64
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte, broadcastBacklog),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// Run serves the hub until ctx is cancelled or Close is called
func (h *Hub) Run(ctx context.Context) {
	defer h.disconnectAll()

	for {
		select {
		case <-ctx.Done():
			h.Close()
			return
		case <-h.done:
			return
		case client := <-h.register:
			h.clients[client] = true
			h.count.Store(int64(len(h.clients)))
		case client := <-h.unregister:
			h.drop(client)
		case message := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					log.Printf("Warning: live client too slow, disconnecting")
					h.drop(client)
				}
			}
		}
	}
}

func (h *Hub) drop(client *Client) {
	if _, ok := h.clients[client]; !ok {
		return
	}
	delete(h.clients, client)
	close(client.send)
	h.count.Store(int64(len(h.clients)))
}

func (h *Hub) disconnectAll() {
	for client := range h.clients {
		h.drop(client)
	}
}

// ClientCount is the number of connected dashboards
func (h *Hub) ClientCount() int {
	return int(h.count.Load())
}

// Publish queues an event for broadcast. A full backlog drops the event
// rather than blocking the caller.
func (h *Hub) Publish(ctx context.Context, routingKey string, eventData interface{}) error {
	payload, err := json.Marshal(Message{RoutingKey: routingKey, Data: eventData})
	if err != nil {
		return fmt.Errorf("failed to marshal live event: %w", err)
	}

	select {
	case <-h.done:
		return nil
	default:
	}

	select {
	case h.broadcast <- payload:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		log.Printf("Warning: live feed backlog full, dropping event: %s", routingKey)
		return nil
	}
}

// Close stops Run and disconnects every client
func (h *Hub) Close() error {
	h.closeOnce.Do(func() { close(h.done) })
	return nil
}

func (h *Hub) join(client *Client) bool {
	select {
	case <-h.done:
		return false
	default:
	}

	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) leave(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}
