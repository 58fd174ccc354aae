package nats

import (
	"encoding/json"
	"sync"

	"github.com/nats-io/nats.go"

	"rental-crm/domain/ports"
	"rental-crm/pkg/logger"
)

// EventHandler callback เมื่อได้รับ CRM event
type EventHandler func(event ports.CRMEvent)

// Subscriber รับ crm.> แบบ core subscription เพื่อส่งต่อ event ที่ instance อื่น publish
type Subscriber struct {
	conn      *nats.Conn
	sub       *nats.Subscription
	handler   EventHandler
	running   bool
	runningMu sync.Mutex
}

func NewSubscriber(conn *nats.Conn, handler EventHandler) *Subscriber {
	return &Subscriber{conn: conn, handler: handler}
}

// Start เริ่ม subscribe
func (s *Subscriber) Start() error {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()
	if s.running {
		return nil
	}

	sub, err := s.conn.Subscribe(SubjectAll, s.handleMessage)
	if err != nil {
		return err
	}
	s.sub = sub
	s.running = true

	logger.Info("NATS subscriber started", "subject", SubjectAll)
	return nil
}

func (s *Subscriber) handleMessage(msg *nats.Msg) {
	var event ports.CRMEvent
	if err := json.Unmarshal(msg.Data, &event); err != nil {
		logger.Warn("Failed to parse CRM event", "subject", msg.Subject, "error", err)
		return
	}

	defer func() {
		if r := recover(); r != nil {
			logger.Error("CRM event handler panicked", "subject", msg.Subject, "error", r)
		}
	}()
	s.handler(event)
}

// Stop หยุด subscriber
func (s *Subscriber) Stop() error {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()
	if !s.running {
		return nil
	}
	s.running = false

	if s.sub != nil {
		if err := s.sub.Unsubscribe(); err != nil {
			logger.Warn("Failed to unsubscribe", "error", err)
			return err
		}
	}
	logger.Info("NATS subscriber stopped")
	return nil
}
