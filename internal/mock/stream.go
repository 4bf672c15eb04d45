package mock

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

// StreamHandler pushes newly captured exchanges to WebSocket subscribers
type StreamHandler struct {
	recorder *Recorder
	logger   *log.Logger
	upgrader websocket.Upgrader
}

// NewStreamHandler creates a WebSocket handler backed by the recorder
func NewStreamHandler(recorder *Recorder, logger *log.Logger) *StreamHandler {
	return &StreamHandler{
		recorder: recorder,
		logger:   logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true // Local admin endpoint, any origin
			},
		},
	}
}

// ServeHTTP handles WebSocket upgrade and streaming
func (h *StreamHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Printf("mock.stream: upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	subID, exchanges := h.recorder.Subscribe()
	defer h.recorder.Unsubscribe(subID)

	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	// Drain reads so we notice the peer closing
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case exchange, ok := <-exchanges:
			if !ok {
				return
			}

			data, err := json.Marshal(exchange)
			if err != nil {
				h.logger.Printf("mock.stream: marshal failed: %v", err)
				continue
			}

			if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}

		case <-ticker.C:
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-done:
			return
		}
	}
}
