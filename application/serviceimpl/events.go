package serviceimpl

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"rental-crm/domain/ports"
	"rental-crm/domain/repositories"
	"rental-crm/pkg/logger"
	"rental-crm/pkg/metrics"
)

const (
	entityLead        = "lead"
	entityAppointment = "appointment"
	entityTask        = "task"
)

// publishEvent นับ mutation แล้วส่ง event แบบ best effort; error แค่ log
func publishEvent(ctx context.Context, pub ports.EventPublisher, entity string, action ports.EventAction, id uint, userID uuid.UUID, payload interface{}) {
	metrics.IncrementMutation(entity, string(action))

	if pub == nil {
		return
	}
	event := ports.CRMEvent{
		Entity:     entity,
		Action:     action,
		ID:         id,
		UserID:     userID.String(),
		Payload:    payload,
		OccurredAt: time.Now().UTC(),
	}
	if err := pub.Publish(ctx, event); err != nil {
		logger.WarnContext(ctx, "Failed to publish CRM event", "subject", event.Subject(), "id", id, "error", err)
	}
}

// notFoundAs แปลง repositories.ErrNotFound เป็น not-found ของ entity นั้น
func notFoundAs(err, notFound error) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return notFound
	}
	return err
}
