package ws

import (
	"sync"

	"github.com/puzpuzpuz/xsync"
)

type channel struct {
	mu      sync.Mutex
	clients map[*Client]bool
}

// Hub groups the clients by channel and broadcasts messages to them.
type Hub struct {
	channels *xsync.MapOf[string, *channel]
}

func NewHub() *Hub {
	return &Hub{channels: xsync.NewMapOf[*channel]()}
}

func (h *Hub) Register(name string, client *Client) {
	ch, _ := h.channels.LoadOrCompute(name, func() *channel {
		return &channel{clients: make(map[*Client]bool)}
	})

	ch.mu.Lock()
	ch.clients[client] = true
	ch.mu.Unlock()
}

func (h *Hub) Unregister(name string, client *Client) {
	ch, ok := h.channels.Load(name)
	if !ok {
		return
	}

	ch.mu.Lock()
	delete(ch.clients, client)
	ch.mu.Unlock()
}

// Count returns the number of clients of a channel.
func (h *Hub) Count(name string) int {
	ch, ok := h.channels.Load(name)
	if !ok {
		return 0
	}

	ch.mu.Lock()
	defer ch.mu.Unlock()
	return len(ch.clients)
}

func (h *Hub) Broadcast(name string, msg []byte, needCompression bool) {
	ch, ok := h.channels.Load(name)
	if !ok {
		return
	}

	ch.mu.Lock()
	defer ch.mu.Unlock()
	for client := range ch.clients {
		if err := client.Write(msg, needCompression); err == ErrClosed {
			delete(ch.clients, client)
		}
	}
}
