package postgres

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"rental-crm/domain/models"
	"rental-crm/domain/repositories"
	"rental-crm/pkg/metrics"
)

const taskWithLeadColumns = "tasks.*, leads.nome AS lead_nome, leads.localita AS lead_localita, leads.status AS lead_status"

type TaskRepositoryImpl struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) repositories.TaskRepository {
	return &TaskRepositoryImpl{db: db}
}

func (r *TaskRepositoryImpl) joined(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("tasks").
		Select(taskWithLeadColumns).
		Joins("LEFT JOIN leads ON leads.id = tasks.lead_id")
}

func (r *TaskRepositoryImpl) Create(ctx context.Context, task *models.Task) error {
	defer metrics.TimeDB("insert", "tasks")()
	return translateError(r.db.WithContext(ctx).Create(task).Error)
}

func (r *TaskRepositoryImpl) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.TaskWithLead, error) {
	defer metrics.TimeDB("select", "tasks")()
	tasks := make([]*models.TaskWithLead, 0)
	err := r.joined(ctx).
		Where("tasks.user_id = ?", userID).
		Order("tasks.created_at DESC, tasks.id DESC").
		Find(&tasks).Error
	return tasks, translateError(err)
}

func (r *TaskRepositoryImpl) GetOwned(ctx context.Context, id uint, userID uuid.UUID) (*models.TaskWithLead, error) {
	defer metrics.TimeDB("select", "tasks")()
	var task models.TaskWithLead
	err := r.joined(ctx).
		Where("tasks.id = ? AND tasks.user_id = ?", id, userID).
		Take(&task).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &task, nil
}

func (r *TaskRepositoryImpl) UpdateOwned(ctx context.Context, id uint, userID uuid.UUID, fields map[string]interface{}) (*models.TaskWithLead, error) {
	done := metrics.TimeDB("update", "tasks")
	res := r.db.WithContext(ctx).
		Model(&models.Task{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(withUpdatedAt(fields))
	done()
	if res.Error != nil {
		return nil, translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, repositories.ErrNotFound
	}
	return r.GetOwned(ctx, id, userID)
}

func (r *TaskRepositoryImpl) DeleteOwned(ctx context.Context, id uint, userID uuid.UUID) (*models.Task, error) {
	defer metrics.TimeDB("delete", "tasks")()
	var task models.Task
	res := r.db.WithContext(ctx).
		Clauses(clause.Returning{}).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&task)
	if res.Error != nil {
		return nil, translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, repositories.ErrNotFound
	}
	return &task, nil
}
