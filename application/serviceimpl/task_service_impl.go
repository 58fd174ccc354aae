package serviceimpl

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"rental-crm/domain/dto"
	"rental-crm/domain/models"
	"rental-crm/domain/ports"
	"rental-crm/domain/repositories"
	"rental-crm/domain/services"
	"rental-crm/pkg/logger"
	"rental-crm/pkg/utils"
)

type TaskServiceImpl struct {
	taskRepo repositories.TaskRepository
	leadRepo repositories.LeadRepository
	events   ports.EventPublisher
}

func NewTaskService(taskRepo repositories.TaskRepository, leadRepo repositories.LeadRepository, events ports.EventPublisher) services.TaskService {
	return &TaskServiceImpl{
		taskRepo: taskRepo,
		leadRepo: leadRepo,
		events:   events,
	}
}

func (s *TaskServiceImpl) ListTasks(ctx context.Context, userID uuid.UUID) ([]*models.TaskWithLead, error) {
	tasks, err := s.taskRepo.ListByUser(ctx, userID)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to list tasks", "error", err)
		return nil, err
	}
	return tasks, nil
}

func (s *TaskServiceImpl) GetTask(ctx context.Context, userID uuid.UUID, id uint) (*models.TaskWithLead, error) {
	if id == 0 {
		return nil, services.InvalidInput("id is required")
	}
	task, err := s.taskRepo.GetOwned(ctx, id, userID)
	if err != nil {
		return nil, notFoundAs(err, services.ErrTaskNotFound)
	}
	return task, nil
}

func (s *TaskServiceImpl) ensureLead(ctx context.Context, leadID uint) error {
	exists, err := s.leadRepo.Exists(ctx, leadID)
	if err != nil {
		return err
	}
	if !exists {
		return services.ErrLeadNotFound
	}
	return nil
}

// CreateTask - owner มาจาก userID เสมอ ไม่อ่านจาก body
func (s *TaskServiceImpl) CreateTask(ctx context.Context, userID uuid.UUID, req *dto.CreateTaskRequest) (*models.TaskWithLead, error) {
	if strings.TrimSpace(req.Titolo) == "" {
		return nil, services.InvalidInput("titolo is required")
	}
	if !req.Tipo.IsValid() {
		return nil, services.InvalidInput("tipo must be one of prospetti_da_fare, chiamate_da_fare, task_importanti, task_generiche")
	}
	if req.Priorita != nil && !req.Priorita.IsValid() {
		return nil, services.InvalidInput("unknown priorita %q", *req.Priorita)
	}
	if req.Stato != nil && !req.Stato.IsValid() {
		return nil, services.InvalidInput("unknown stato %q", *req.Stato)
	}

	task := dto.CreateTaskRequestToTask(req)
	task.UserID = userID

	if req.Scadenza != nil && strings.TrimSpace(*req.Scadenza) != "" {
		due, err := utils.ParseDateTime(*req.Scadenza)
		if err != nil {
			return nil, services.InvalidInput("scadenza is not a valid date")
		}
		task.Scadenza = &due
	}

	if task.LeadID != nil {
		if err := s.ensureLead(ctx, *task.LeadID); err != nil {
			return nil, err
		}
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		if errors.Is(err, repositories.ErrForeignKeyViolation) {
			return nil, services.ErrLeadNotFound
		}
		logger.ErrorContext(ctx, "Failed to create task", "error", err)
		return nil, err
	}

	logger.InfoContext(ctx, "Task created", "task_id", task.ID, "tipo", task.Tipo)
	publishEvent(ctx, s.events, entityTask, ports.ActionCreated, task.ID, userID, task)

	created, err := s.taskRepo.GetOwned(ctx, task.ID, userID)
	if err != nil {
		return nil, notFoundAs(err, services.ErrTaskNotFound)
	}
	return created, nil
}

func (s *TaskServiceImpl) UpdateTask(ctx context.Context, userID uuid.UUID, req *dto.UpdateTaskRequest) (*models.TaskWithLead, error) {
	if req.ID == 0 {
		return nil, services.InvalidInput("id is required")
	}
	if req.Titolo != nil && strings.TrimSpace(*req.Titolo) == "" {
		return nil, services.InvalidInput("titolo cannot be empty")
	}
	if req.Tipo != nil && !req.Tipo.IsValid() {
		return nil, services.InvalidInput("unknown tipo %q", *req.Tipo)
	}
	if req.Priorita != nil && !req.Priorita.IsValid() {
		return nil, services.InvalidInput("unknown priorita %q", *req.Priorita)
	}
	if req.Stato != nil && !req.Stato.IsValid() {
		return nil, services.InvalidInput("unknown stato %q", *req.Stato)
	}

	fields := req.Fields()
	if req.Scadenza != nil {
		if strings.TrimSpace(*req.Scadenza) == "" {
			fields["scadenza"] = nil
		} else {
			due, err := utils.ParseDateTime(*req.Scadenza)
			if err != nil {
				return nil, services.InvalidInput("scadenza is not a valid date")
			}
			fields["scadenza"] = due
		}
	}
	if id := req.LeadID.Ptr(); id != nil {
		if err := s.ensureLead(ctx, *id); err != nil {
			return nil, err
		}
	}

	task, err := s.taskRepo.UpdateOwned(ctx, req.ID, userID, fields)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrNotFound):
			return nil, services.ErrTaskNotFound
		case errors.Is(err, repositories.ErrForeignKeyViolation):
			return nil, services.ErrLeadNotFound
		}
		logger.ErrorContext(ctx, "Failed to update task", "task_id", req.ID, "error", err)
		return nil, err
	}

	logger.InfoContext(ctx, "Task updated", "task_id", task.ID)
	publishEvent(ctx, s.events, entityTask, ports.ActionUpdated, task.ID, userID, task)
	return task, nil
}

func (s *TaskServiceImpl) DeleteTask(ctx context.Context, userID uuid.UUID, id uint) (*models.Task, error) {
	if id == 0 {
		return nil, services.InvalidInput("id is required")
	}

	task, err := s.taskRepo.DeleteOwned(ctx, id, userID)
	if err != nil {
		err = notFoundAs(err, services.ErrTaskNotFound)
		if err != services.ErrTaskNotFound {
			logger.ErrorContext(ctx, "Failed to delete task", "task_id", id, "error", err)
		}
		return nil, err
	}

	logger.InfoContext(ctx, "Task deleted", "task_id", task.ID)
	publishEvent(ctx, s.events, entityTask, ports.ActionDeleted, task.ID, userID, task)
	return task, nil
}
