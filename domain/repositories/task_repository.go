package repositories

import (
	"context"

	"github.com/google/uuid"

	"rental-crm/domain/models"
)

// TaskRepository อ่าน/เขียน task โดย scope ด้วย owner เสมอ
// task ของ user อื่นจะได้ ErrNotFound เหมือน task ที่ไม่มีอยู่
type TaskRepository interface {
	Create(ctx context.Context, task *models.Task) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.TaskWithLead, error)
	GetOwned(ctx context.Context, id uint, userID uuid.UUID) (*models.TaskWithLead, error)
	UpdateOwned(ctx context.Context, id uint, userID uuid.UUID, fields map[string]interface{}) (*models.TaskWithLead, error)
	DeleteOwned(ctx context.Context, id uint, userID uuid.UUID) (*models.Task, error)
}
