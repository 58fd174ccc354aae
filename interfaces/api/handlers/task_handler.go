package handlers

import (
	"github.com/gofiber/fiber/v2"

	"rental-crm/domain/dto"
	"rental-crm/domain/services"
	"rental-crm/pkg/logger"
	"rental-crm/pkg/utils"
)

// TaskHandler - ทุก route scope ตาม user ที่ login; owner ไม่เคยอ่านจาก body
type TaskHandler struct {
	taskService services.TaskService
}

func NewTaskHandler(taskService services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

func (h *TaskHandler) ListTasks(c *fiber.Ctx) error {
	if c.Query("id") != "" {
		return h.GetTask(c)
	}

	ctx := c.UserContext()
	user, ok := currentUser(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	tasks, err := h.taskService.ListTasks(ctx, user.ID)
	if err != nil {
		return respondError(c, err)
	}

	logger.DebugContext(ctx, "Tasks listed", "count", len(tasks))
	return utils.SuccessResponse(c, tasks)
}

func (h *TaskHandler) GetTask(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	id, _, err := pathOrQueryID(c)
	if err != nil {
		return respondError(c, err)
	}

	task, err := h.taskService.GetTask(c.UserContext(), user.ID, id)
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, task)
}

func (h *TaskHandler) CreateTask(c *fiber.Ctx) error {
	ctx := c.UserContext()
	user, ok := currentUser(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	var req dto.CreateTaskRequest
	if ok, err := parseBody(c, &req); !ok {
		return err
	}

	logger.InfoContext(ctx, "Task creation attempt", "user_id", user.ID, "tipo", req.Tipo)

	task, err := h.taskService.CreateTask(ctx, user.ID, &req)
	if err != nil {
		return respondError(c, err)
	}
	return utils.CreatedResponse(c, task)
}

func (h *TaskHandler) UpdateTask(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	var req dto.UpdateTaskRequest
	if ok, err := parseBody(c, &req); !ok {
		return err
	}

	id, err := bodyID(c, req.ID)
	if err != nil {
		return respondError(c, err)
	}
	req.ID = id

	task, err := h.taskService.UpdateTask(c.UserContext(), user.ID, &req)
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, task)
}

func (h *TaskHandler) DeleteTask(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	id, err := deleteID(c)
	if err != nil {
		return respondError(c, err)
	}

	task, err := h.taskService.DeleteTask(c.UserContext(), user.ID, id)
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, task)
}
