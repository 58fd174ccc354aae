package repositories

import (
	"context"

	"rental-crm/domain/models"
	"rental-crm/pkg/query"
)

type AppointmentRepository interface {
	Create(ctx context.Context, appointment *models.Appointment) error
	GetByID(ctx context.Context, id uint) (*models.AppointmentWithLead, error)
	List(ctx context.Context, filter query.Predicate, offset, limit int) ([]*models.AppointmentWithLead, error)
	Count(ctx context.Context, filter query.Predicate) (int64, error)
	Update(ctx context.Context, id uint, fields map[string]interface{}) (*models.AppointmentWithLead, error)
	Delete(ctx context.Context, id uint) (*models.Appointment, error)
}
