package handlers

import (
	"github.com/gofiber/fiber/v2"

	"rental-crm/domain/dto"
	"rental-crm/domain/services"
	"rental-crm/pkg/pagination"
	"rental-crm/pkg/utils"
)

type AppointmentHandler struct {
	appointmentService services.AppointmentService
}

func NewAppointmentHandler(appointmentService services.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{
		appointmentService: appointmentService,
	}
}

func (h *AppointmentHandler) ListAppointments(c *fiber.Ctx) error {
	if c.Query("id") != "" {
		return h.GetAppointment(c)
	}

	user, ok := currentUser(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	page, err := pagination.Parse(c.Query("page"), c.Query("limit"))
	if err != nil {
		return utils.BadRequestResponse(c, err.Error())
	}

	filter := dto.AppointmentFilter{
		Search:     c.Query("search"),
		Completato: c.Query("completato"),
		Tipo:       c.Query("tipo"),
	}

	resp, err := h.appointmentService.ListAppointments(c.UserContext(), user.ID, filter, page)
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, resp)
}

func (h *AppointmentHandler) GetAppointment(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	id, _, err := pathOrQueryID(c)
	if err != nil {
		return respondError(c, err)
	}

	row, err := h.appointmentService.GetAppointment(c.UserContext(), user.ID, id)
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, row)
}

func (h *AppointmentHandler) CreateAppointment(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	var req dto.CreateAppointmentRequest
	if ok, err := parseBody(c, &req); !ok {
		return err
	}

	row, err := h.appointmentService.CreateAppointment(c.UserContext(), user.ID, &req)
	if err != nil {
		return respondError(c, err)
	}
	return utils.CreatedResponse(c, row)
}

func (h *AppointmentHandler) UpdateAppointment(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	var req dto.UpdateAppointmentRequest
	if ok, err := parseBody(c, &req); !ok {
		return err
	}

	id, err := bodyID(c, req.ID)
	if err != nil {
		return respondError(c, err)
	}
	req.ID = id

	row, err := h.appointmentService.UpdateAppointment(c.UserContext(), user.ID, &req)
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, row)
}

func (h *AppointmentHandler) DeleteAppointment(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	id, err := deleteID(c)
	if err != nil {
		return respondError(c, err)
	}

	row, err := h.appointmentService.DeleteAppointment(c.UserContext(), user.ID, id)
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, row)
}
