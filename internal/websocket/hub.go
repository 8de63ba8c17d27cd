package websocket

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"

	"reclip-backend/internal/services"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Hub relays pipeline progress events from Redis pub/sub to clients watching
// a specific request. Connections are keyed by request id: knowing the id is
// the capability to watch it.
type Hub struct {
	mu          sync.RWMutex
	connections map[uuid.UUID][]*websocket.Conn
	redisClient *redis.Client
	cancelFuncs map[uuid.UUID]context.CancelFunc
}

func NewHub(redisClient *redis.Client) *Hub {
	return &Hub{
		connections: make(map[uuid.UUID][]*websocket.Conn),
		redisClient: redisClient,
		cancelFuncs: make(map[uuid.UUID]context.CancelFunc),
	}
}

func (h *Hub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	requestID, err := uuid.Parse(chi.URLParam(r, "requestID"))
	if err != nil {
		http.Error(w, "Invalid request id", http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	h.registerConnection(requestID, conn)

	// Keep connection alive and handle disconnect
	go func() {
		defer h.unregisterConnection(requestID, conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
	}()
}

func (h *Hub) registerConnection(requestID uuid.UUID, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.connections[requestID] = append(h.connections[requestID], conn)

	// First watcher for this request starts the pub/sub subscription
	if len(h.connections[requestID]) == 1 {
		ctx, cancel := context.WithCancel(context.Background())
		h.cancelFuncs[requestID] = cancel
		go h.subscribeToPubSub(ctx, requestID)
	}

	log.Printf("WebSocket connected: request %s (total: %d)", requestID, len(h.connections[requestID]))
}

func (h *Hub) unregisterConnection(requestID uuid.UUID, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	conn.Close()

	conns := h.connections[requestID]
	for i, c := range conns {
		if c == conn {
			h.connections[requestID] = append(conns[:i], conns[i+1:]...)
			break
		}
	}

	if len(h.connections[requestID]) == 0 {
		delete(h.connections, requestID)
		if cancel, ok := h.cancelFuncs[requestID]; ok {
			cancel()
			delete(h.cancelFuncs, requestID)
		}
	}

	log.Printf("WebSocket disconnected: request %s", requestID)
}

func (h *Hub) subscribeToPubSub(ctx context.Context, requestID uuid.UUID) {
	pubsub := h.redisClient.Subscribe(ctx, services.ProgressChannel(requestID))
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			h.broadcast(requestID, []byte(msg.Payload))
		}
	}
}

func (h *Hub) broadcast(requestID uuid.UUID, data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, conn := range h.connections[requestID] {
		conn.WriteMessage(websocket.TextMessage, data)
	}
}

// SendToRequest sends a message directly to a request's watchers, bypassing
// pub/sub.
func (h *Hub) SendToRequest(requestID uuid.UUID, msg interface{}) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	h.broadcast(requestID, data)
}
