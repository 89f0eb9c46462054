// Package ws is the in-process broadcast hub behind the live-subscription
// endpoints. Topics are plain strings: "location:<user_id>" for the
// personal stream, "division:<division_id>" for the live map and
// "chat:<a>_<b>" for two-party chat rooms.
package ws

import (
	"encoding/json"
	"sync"

	"github.com/rs/zerolog/log"
)

// sendBuffer is the per-client queue size. A client that falls this far
// behind starts losing messages rather than stalling the publisher.
const sendBuffer = 64

// Client is one subscribed connection. Read from C until it is closed.
type Client struct {
	topic string

	// C delivers JSON-encoded payloads in publish order.
	C chan []byte
}

// Hub fans out published payloads to every subscriber of a topic.
// Publish is best-effort and never blocks.
type Hub struct {
	mu     sync.RWMutex
	topics map[string]map[*Client]bool
}

func NewHub() *Hub {
	return &Hub{topics: make(map[string]map[*Client]bool)}
}

func (h *Hub) Subscribe(topic string) *Client {
	client := &Client{topic: topic, C: make(chan []byte, sendBuffer)}

	h.mu.Lock()
	if h.topics[topic] == nil {
		h.topics[topic] = make(map[*Client]bool)
	}
	h.topics[topic][client] = true
	h.mu.Unlock()

	log.Debug().Str("topic", topic).Msg("ws client subscribed")
	return client
}

func (h *Hub) Unsubscribe(client *Client) {
	h.mu.Lock()
	if clients, ok := h.topics[client.topic]; ok {
		if clients[client] {
			delete(clients, client)
			close(client.C)
		}
		if len(clients) == 0 {
			delete(h.topics, client.topic)
		}
	}
	h.mu.Unlock()

	log.Debug().Str("topic", client.topic).Msg("ws client unsubscribed")
}

// Publish marshals the payload once and queues it to every subscriber of
// the topic. Calls from a single goroutine reach each subscriber in order;
// slow subscribers are skipped, not waited on.
func (h *Hub) Publish(topic string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		log.Error().Err(err).Str("topic", topic).Msg("ws publish marshal failed")
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.topics[topic] {
		select {
		case client.C <- data:
		default:
			log.Warn().Str("topic", topic).Msg("ws client too slow, dropping message")
		}
	}
}

// Subscribers reports the current subscriber count of a topic.
func (h *Hub) Subscribers(topic string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.topics[topic])
}

// ChatTopic names the room shared by two users, independent of who opens it.
func ChatTopic(userA, userB string) string {
	if userB < userA {
		userA, userB = userB, userA
	}
	return "chat:" + userA + "_" + userB
}
