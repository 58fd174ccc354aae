package handlers

import (
	"github.com/gofiber/fiber/v2"

	"rental-crm/domain/dto"
	"rental-crm/domain/services"
	"rental-crm/pkg/logger"
	"rental-crm/pkg/pagination"
	"rental-crm/pkg/utils"
)

type LeadHandler struct {
	leadService services.LeadService
}

func NewLeadHandler(leadService services.LeadService) *LeadHandler {
	return &LeadHandler{
		leadService: leadService,
	}
}

// ListLeads - ?id= คืน lead เดียว; ไม่งั้นคืน {leads, pagination}
func (h *LeadHandler) ListLeads(c *fiber.Ctx) error {
	if c.Query("id") != "" {
		return h.GetLead(c)
	}

	ctx := c.UserContext()
	user, ok := currentUser(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	page, err := pagination.Parse(c.Query("page"), c.Query("limit"))
	if err != nil {
		return utils.BadRequestResponse(c, err.Error())
	}

	filter := dto.LeadFilter{
		Search:     c.Query("search"),
		Status:     c.Query("status"),
		Contattato: c.Query("contattato"),
	}

	resp, err := h.leadService.ListLeads(ctx, user.ID, filter, page)
	if err != nil {
		return respondError(c, err)
	}

	logger.DebugContext(ctx, "Leads listed", "page", page.Page, "count", len(resp.Leads), "total", resp.Pagination.TotalCount)
	return utils.SuccessResponse(c, resp)
}

func (h *LeadHandler) GetLead(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	id, _, err := pathOrQueryID(c)
	if err != nil {
		return respondError(c, err)
	}

	lead, err := h.leadService.GetLead(c.UserContext(), user.ID, id)
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, lead)
}

func (h *LeadHandler) CreateLead(c *fiber.Ctx) error {
	ctx := c.UserContext()
	user, ok := currentUser(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	var req dto.CreateLeadRequest
	if ok, err := parseBody(c, &req); !ok {
		return err
	}

	lead, err := h.leadService.CreateLead(ctx, user.ID, &req)
	if err != nil {
		return respondError(c, err)
	}
	return utils.CreatedResponse(c, lead)
}

func (h *LeadHandler) UpdateLead(c *fiber.Ctx) error {
	ctx := c.UserContext()
	user, ok := currentUser(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	var req dto.UpdateLeadRequest
	if ok, err := parseBody(c, &req); !ok {
		return err
	}

	id, err := bodyID(c, req.ID)
	if err != nil {
		return respondError(c, err)
	}
	req.ID = id

	lead, err := h.leadService.UpdateLead(ctx, user.ID, &req)
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, lead)
}

func (h *LeadHandler) DeleteLead(c *fiber.Ctx) error {
	ctx := c.UserContext()
	user, ok := currentUser(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	id, err := deleteID(c)
	if err != nil {
		return respondError(c, err)
	}

	lead, err := h.leadService.DeleteLead(ctx, user.ID, id)
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, lead)
}
