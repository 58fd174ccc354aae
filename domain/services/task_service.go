package services

import (
	"context"

	"github.com/google/uuid"

	"rental-crm/domain/dto"
	"rental-crm/domain/models"
)

// TaskService - ทุก operation scope ด้วย userID ของคนที่ login
type TaskService interface {
	ListTasks(ctx context.Context, userID uuid.UUID) ([]*models.TaskWithLead, error)
	GetTask(ctx context.Context, userID uuid.UUID, id uint) (*models.TaskWithLead, error)
	CreateTask(ctx context.Context, userID uuid.UUID, req *dto.CreateTaskRequest) (*models.TaskWithLead, error)
	UpdateTask(ctx context.Context, userID uuid.UUID, req *dto.UpdateTaskRequest) (*models.TaskWithLead, error)
	DeleteTask(ctx context.Context, userID uuid.UUID, id uint) (*models.Task, error)
}
