package events

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/carebridge/backend/internal/domain/entities"
)

const subscriberBuffer = 100

// hub fans messages out to the local subscribers of each channel
type hub struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan *entities.Message]struct{}
}

func newHub() *hub {
	return &hub{subscribers: make(map[string]map[chan *entities.Message]struct{})}
}

func (h *hub) add(channel string) (chan *entities.Message, int) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.subscribers[channel] == nil {
		h.subscribers[channel] = make(map[chan *entities.Message]struct{})
	}
	ch := make(chan *entities.Message, subscriberBuffer)
	h.subscribers[channel][ch] = struct{}{}
	return ch, len(h.subscribers[channel])
}

// remove closes ch and reports whether it was the last subscriber on
// channel. A subscriber already dropped by closeChannel is not the last.
func (h *hub) remove(channel string, ch chan *entities.Message) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	subscribers := h.subscribers[channel]
	if _, ok := subscribers[ch]; !ok {
		return false
	}
	delete(subscribers, ch)
	close(ch)
	if len(subscribers) > 0 {
		return false
	}
	delete(h.subscribers, channel)
	return true
}

func (h *hub) broadcast(channel string, message *entities.Message) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for subscriber := range h.subscribers[channel] {
		select {
		case subscriber <- message:
		default:
			log.Warn().Str("channel", channel).Str("message_id", message.ID).Msg("Subscriber channel full, skipping message")
		}
	}
}

func (h *hub) closeChannel(channel string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for subscriber := range h.subscribers[channel] {
		close(subscriber)
	}
	delete(h.subscribers, channel)
}

func (h *hub) channels() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := make([]string, 0, len(h.subscribers))
	for channel := range h.subscribers {
		out = append(out, channel)
	}
	return out
}
