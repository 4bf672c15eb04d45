package mock

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/apiprobe/apiprobe/internal/models"
)

// Recorder keeps the most recent exchanges in memory and streams new ones
// to live subscribers.
type Recorder struct {
	mu          sync.RWMutex
	exchanges   []*models.Exchange
	maxRecorded int
	subscribers map[string]chan *models.Exchange
}

// NewRecorder creates a recorder that retains at most maxRecorded exchanges
func NewRecorder(maxRecorded int) *Recorder {
	if maxRecorded <= 0 {
		maxRecorded = 200
	}
	return &Recorder{
		exchanges:   make([]*models.Exchange, 0),
		maxRecorded: maxRecorded,
		subscribers: make(map[string]chan *models.Exchange),
	}
}

// Record stores an exchange, evicting the oldest entries beyond capacity,
// and notifies subscribers
func (r *Recorder) Record(exchange *models.Exchange) {
	if exchange.ID == "" {
		exchange.ID = uuid.New().String()
	}
	if exchange.Timestamp.IsZero() {
		exchange.Timestamp = time.Now().UTC()
	}

	r.mu.Lock()
	r.exchanges = append(r.exchanges, exchange)
	if len(r.exchanges) > r.maxRecorded {
		r.exchanges = r.exchanges[len(r.exchanges)-r.maxRecorded:]
	}
	subscribers := make([]chan *models.Exchange, 0, len(r.subscribers))
	for _, ch := range r.subscribers {
		subscribers = append(subscribers, ch)
	}
	r.mu.Unlock()

	// Notify subscribers (non-blocking)
	for _, ch := range subscribers {
		select {
		case ch <- exchange:
		default:
			// Channel full, skip
		}
	}
}

// Recent returns up to limit exchanges, newest first
func (r *Recorder) Recent(limit int) []*models.Exchange {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if limit <= 0 || limit > len(r.exchanges) {
		limit = len(r.exchanges)
	}
	result := make([]*models.Exchange, 0, limit)
	for i := len(r.exchanges) - 1; i >= len(r.exchanges)-limit; i-- {
		result = append(result, r.exchanges[i])
	}
	return result
}

// Len returns the number of retained exchanges
func (r *Recorder) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.exchanges)
}

// Clear drops all retained exchanges
func (r *Recorder) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.exchanges = make([]*models.Exchange, 0)
}

// Subscribe registers a listener for new exchanges and returns its ID
// and channel
func (r *Recorder) Subscribe() (string, chan *models.Exchange) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := uuid.New().String()
	ch := make(chan *models.Exchange, 100)
	r.subscribers[id] = ch
	return id, ch
}

// Unsubscribe removes a listener and closes its channel
func (r *Recorder) Unsubscribe(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if ch, exists := r.subscribers[id]; exists {
		close(ch)
		delete(r.subscribers, id)
	}
}
