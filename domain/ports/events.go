package ports

import (
	"context"
	"time"
)

// ═══════════════════════════════════════════════════════════════════════════════
// CRM Event Port - แจ้งการเปลี่ยนแปลงของ lead/appointment/task
// ═══════════════════════════════════════════════════════════════════════════════

type EventAction string

const (
	ActionCreated EventAction = "created"
	ActionUpdated EventAction = "updated"
	ActionDeleted EventAction = "deleted"
)

// CRMEvent - Plain struct (ไม่มี NATS dependency)
type CRMEvent struct {
	Entity     string      `json:"entity"`
	Action     EventAction `json:"action"`
	ID         uint        `json:"id"`
	UserID     string      `json:"userId,omitempty"`
	Payload    interface{} `json:"payload,omitempty"`
	OccurredAt time.Time   `json:"occurredAt"`
}

// Subject คือ NATS subject ของ event เช่น crm.lead.created
func (e CRMEvent) Subject() string {
	return "crm." + e.Entity + "." + string(e.Action)
}

// EventPublisher - best effort; error ไม่ทำให้ mutation ล้มเหลว (nil = ไม่ publish)
type EventPublisher interface {
	Publish(ctx context.Context, event CRMEvent) error
}
