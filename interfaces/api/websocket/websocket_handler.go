package websocket

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	websocketManager "rental-crm/infrastructure/websocket"
	"rental-crm/interfaces/api/middleware"
	"rental-crm/pkg/logger"
	"rental-crm/pkg/utils"
)

const (
	userLocalsKey = "ws_user"

	// writeWait จำกัดเวลาเขียนต่อ message; client ที่ไม่อ่านจะถูกตัดหลังจากนี้
	writeWait = 10 * time.Second
)

// lockedConn - hub กับ read loop เขียน connection เดียวกันได้จากคนละ goroutine
type lockedConn struct {
	*websocket.Conn
	mu sync.Mutex
}

func (l *lockedConn) WriteJSON(v interface{}) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return l.Conn.WriteJSON(v)
}

type WebSocketHandler struct {
	hub  *websocketManager.Hub
	auth middleware.Authenticator
}

func NewWebSocketHandler(hub *websocketManager.Hub, auth middleware.Authenticator) *WebSocketHandler {
	return &WebSocketHandler{hub: hub, auth: auth}
}

// WebSocketUpgrade ต้อง login ก่อน; browser ส่ง token ผ่าน ?token= หรือ session cookie
func (h *WebSocketHandler) WebSocketUpgrade(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}

	token := c.Query("token")
	if token == "" {
		token = utils.ExtractToken(c)
	}
	if token == "" {
		return utils.UnauthorizedResponse(c, "Missing authorization token")
	}

	user, err := h.auth.Authenticate(c.UserContext(), token)
	if err != nil {
		logger.WarnContext(c.UserContext(), "WebSocket authentication failed", "error", err)
		return utils.UnauthorizedResponse(c, "Invalid token")
	}

	c.Locals(userLocalsKey, user)
	return c.Next()
}

func (h *WebSocketHandler) HandleWebSocket(c *websocket.Conn) {
	user, ok := c.Locals(userLocalsKey).(*utils.UserContext)
	if !ok {
		_ = c.Close()
		return
	}

	conn := &lockedConn{Conn: c}
	h.hub.Register(conn, user.ID)
	defer h.hub.Unregister(conn)

	logger.Info("WebSocket connected", "user_id", user.ID.String())

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			logger.Debug("WebSocket read ended", "user_id", user.ID.String(), "error", err)
			return
		}
		if messageType == websocket.TextMessage {
			websocketManager.HandleMessage(conn, message)
		}
	}
}
