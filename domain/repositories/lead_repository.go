package repositories

import (
	"context"

	"rental-crm/domain/models"
	"rental-crm/pkg/query"
)

type LeadRepository interface {
	Create(ctx context.Context, lead *models.Lead) error
	GetByID(ctx context.Context, id uint) (*models.Lead, error)
	Exists(ctx context.Context, id uint) (bool, error)
	List(ctx context.Context, filter query.Predicate, offset, limit int) ([]*models.Lead, error)
	Count(ctx context.Context, filter query.Predicate) (int64, error)
	// Update เขียนเฉพาะ column ที่อยู่ใน fields แล้วคืน row ล่าสุด
	Update(ctx context.Context, id uint, fields map[string]interface{}) (*models.Lead, error)
	// DeleteWithAppointments ลบ appointments ของ lead แล้วลบ lead ใน transaction เดียว
	DeleteWithAppointments(ctx context.Context, id uint) (*models.Lead, error)
}
