package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/google/uuid"

	"rental-crm/domain/ports"
	"rental-crm/pkg/logger"
)

var (
	ErrHubStopped = errors.New("websocket hub stopped")
	ErrHubBusy    = errors.New("websocket hub busy, event dropped")
)

const broadcastBuffer = 64

// Conn คือส่วนของ *websocket.Conn ที่ hub ใช้
type Conn interface {
	WriteJSON(v interface{}) error
	Close() error
}

type client struct {
	conn   Conn
	userID uuid.UUID
}

type Message struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// Hub ส่ง CRM event ไปยัง browser ที่เชื่อมต่ออยู่
// event ของ task ส่งเฉพาะเจ้าของ; lead/appointment ส่งทุกคน
type Hub struct {
	clients    map[Conn]client
	register   chan client
	unregister chan Conn
	broadcast  chan ports.CRMEvent
	done       chan struct{}
	mutex      sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[Conn]client),
		register:   make(chan client),
		unregister: make(chan Conn),
		broadcast:  make(chan ports.CRMEvent, broadcastBuffer),
		done:       make(chan struct{}),
	}
}

// Run วน loop จนกว่า ctx จะถูก cancel แล้วปิดทุก connection
func (h *Hub) Run(ctx context.Context) {
	defer h.closeAll()

	for {
		select {
		case <-ctx.Done():
			return

		case c := <-h.register:
			h.mutex.Lock()
			h.clients[c.conn] = c
			h.mutex.Unlock()
			logger.Debug("WebSocket client connected", "user_id", c.userID.String())

		case conn := <-h.unregister:
			h.remove(conn)

		case event := <-h.broadcast:
			h.deliver(event)
		}
	}
}

func (h *Hub) deliver(event ports.CRMEvent) {
	msg := Message{Type: event.Subject(), Data: event}

	h.mutex.RLock()
	var failed []Conn
	for conn, c := range h.clients {
		if !visibleTo(event, c.userID) {
			continue
		}
		if err := conn.WriteJSON(msg); err != nil {
			logger.Warn("WebSocket write failed", "user_id", c.userID.String(), "error", err)
			failed = append(failed, conn)
		}
	}
	h.mutex.RUnlock()

	for _, conn := range failed {
		h.remove(conn)
	}
}

func visibleTo(event ports.CRMEvent, userID uuid.UUID) bool {
	if event.Entity != "task" {
		return true
	}
	return event.UserID == userID.String()
}

func (h *Hub) remove(conn Conn) {
	h.mutex.Lock()
	c, ok := h.clients[conn]
	delete(h.clients, conn)
	h.mutex.Unlock()

	if ok {
		_ = conn.Close()
		logger.Debug("WebSocket client disconnected", "user_id", c.userID.String())
	}
}

func (h *Hub) closeAll() {
	close(h.done)

	h.mutex.Lock()
	defer h.mutex.Unlock()
	for conn := range h.clients {
		_ = conn.Close()
	}
	h.clients = make(map[Conn]client)
}

func (h *Hub) Register(conn Conn, userID uuid.UUID) {
	select {
	case h.register <- client{conn: conn, userID: userID}:
	case <-h.done:
		_ = conn.Close()
	}
}

func (h *Hub) Unregister(conn Conn) {
	select {
	case h.unregister <- conn:
	case <-h.done:
	}
}

// Publish ทำให้ Hub เป็น ports.EventPublisher
// ไม่ block: ถ้า buffer เต็ม (client อ่านไม่ทัน) event จะถูกทิ้งและคืน ErrHubBusy
func (h *Hub) Publish(ctx context.Context, event ports.CRMEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	select {
	case <-h.done:
		return ErrHubStopped
	default:
	}

	select {
	case h.broadcast <- event:
		return nil
	default:
		return ErrHubBusy
	}
}

func (h *Hub) ClientCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}

// HandleMessage ตอบ message จาก client; ตอนนี้รองรับแค่ ping
func HandleMessage(conn Conn, data []byte) {
	var message Message
	if err := json.Unmarshal(data, &message); err != nil {
		logger.Debug("Invalid WebSocket message", "error", err)
		return
	}

	switch message.Type {
	case "ping":
		_ = conn.WriteJSON(Message{Type: "pong", Data: "pong"})
	default:
		logger.Debug("Unknown WebSocket message type", "type", message.Type)
	}
}
