package serviceimpl

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"rental-crm/domain/dto"
	"rental-crm/domain/models"
	"rental-crm/domain/ports"
	"rental-crm/domain/repositories"
	"rental-crm/domain/services"
	"rental-crm/pkg/logger"
	"rental-crm/pkg/pagination"
	"rental-crm/pkg/query"
)

var leadSearchColumns = []string{"nome", "localita", "email", "telefono", "note"}

type LeadServiceImpl struct {
	leadRepo repositories.LeadRepository
	events   ports.EventPublisher
}

func NewLeadService(leadRepo repositories.LeadRepository, events ports.EventPublisher) services.LeadService {
	return &LeadServiceImpl{
		leadRepo: leadRepo,
		events:   events,
	}
}

// leadFilter สร้าง predicate จาก query string ของหน้า list
func leadFilter(filter dto.LeadFilter) (query.Predicate, error) {
	status := strings.TrimSpace(filter.Status)
	if status != "" && status != query.All && !models.LeadStatus(status).IsValid() {
		return query.Predicate{}, services.InvalidInput("unknown status %q", status)
	}

	contattato, err := query.ParseBoolFilter(filter.Contattato, "contattato", "non_contattato")
	if err != nil {
		return query.Predicate{}, services.InvalidInput("contattato: %v", err)
	}

	return query.Compose(
		query.Search(filter.Search, leadSearchColumns...),
		query.Equal("status", status),
		query.BoolEqual("contattato", contattato),
	)
}

func (s *LeadServiceImpl) ListLeads(ctx context.Context, userID uuid.UUID, filter dto.LeadFilter, page pagination.Params) (*dto.LeadListResponse, error) {
	pred, err := leadFilter(filter)
	if err != nil {
		return nil, err
	}

	total, err := s.leadRepo.Count(ctx, pred)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to count leads", "error", err)
		return nil, err
	}

	leads, err := s.leadRepo.List(ctx, pred, page.Offset(), page.Limit)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to list leads", "error", err)
		return nil, err
	}

	return &dto.LeadListResponse{
		Leads:      leads,
		Pagination: pagination.Summarize(page, len(leads), total),
	}, nil
}

func (s *LeadServiceImpl) GetLead(ctx context.Context, userID uuid.UUID, id uint) (*models.Lead, error) {
	if id == 0 {
		return nil, services.InvalidInput("id is required")
	}
	lead, err := s.leadRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, services.ErrLeadNotFound)
	}
	return lead, nil
}

func (s *LeadServiceImpl) CreateLead(ctx context.Context, userID uuid.UUID, req *dto.CreateLeadRequest) (*models.Lead, error) {
	if strings.TrimSpace(req.Nome) == "" {
		return nil, services.InvalidInput("nome is required")
	}
	if strings.TrimSpace(req.Localita) == "" {
		return nil, services.InvalidInput("localita is required")
	}
	if req.Camere == nil || *req.Camere < 0 {
		return nil, services.InvalidInput("camere must be a non-negative integer")
	}
	if req.Status != nil && !req.Status.IsValid() {
		return nil, services.InvalidInput("unknown status %q", *req.Status)
	}

	lead := dto.CreateLeadRequestToLead(req)
	if err := s.leadRepo.Create(ctx, lead); err != nil {
		logger.ErrorContext(ctx, "Failed to create lead", "error", err)
		return nil, err
	}

	logger.InfoContext(ctx, "Lead created", "lead_id", lead.ID, "status", lead.Status)
	publishEvent(ctx, s.events, entityLead, ports.ActionCreated, lead.ID, userID, lead)
	return lead, nil
}

func (s *LeadServiceImpl) UpdateLead(ctx context.Context, userID uuid.UUID, req *dto.UpdateLeadRequest) (*models.Lead, error) {
	if req.ID == 0 {
		return nil, services.InvalidInput("id is required")
	}
	if req.Nome != nil && strings.TrimSpace(*req.Nome) == "" {
		return nil, services.InvalidInput("nome cannot be empty")
	}
	if req.Localita != nil && strings.TrimSpace(*req.Localita) == "" {
		return nil, services.InvalidInput("localita cannot be empty")
	}
	if req.Camere != nil && *req.Camere < 0 {
		return nil, services.InvalidInput("camere must be a non-negative integer")
	}
	if req.Status != nil && !req.Status.IsValid() {
		return nil, services.InvalidInput("unknown status %q", *req.Status)
	}

	lead, err := s.leadRepo.Update(ctx, req.ID, req.Fields())
	if err != nil {
		err = notFoundAs(err, services.ErrLeadNotFound)
		if err != services.ErrLeadNotFound {
			logger.ErrorContext(ctx, "Failed to update lead", "lead_id", req.ID, "error", err)
		}
		return nil, err
	}

	logger.InfoContext(ctx, "Lead updated", "lead_id", lead.ID, "status", lead.Status)
	publishEvent(ctx, s.events, entityLead, ports.ActionUpdated, lead.ID, userID, lead)
	return lead, nil
}

func (s *LeadServiceImpl) DeleteLead(ctx context.Context, userID uuid.UUID, id uint) (*models.Lead, error) {
	if id == 0 {
		return nil, services.InvalidInput("id is required")
	}

	lead, err := s.leadRepo.DeleteWithAppointments(ctx, id)
	if err != nil {
		err = notFoundAs(err, services.ErrLeadNotFound)
		if err != services.ErrLeadNotFound {
			logger.ErrorContext(ctx, "Failed to delete lead", "lead_id", id, "error", err)
		}
		return nil, err
	}

	logger.InfoContext(ctx, "Lead deleted", "lead_id", lead.ID)
	publishEvent(ctx, s.events, entityLead, ports.ActionDeleted, lead.ID, userID, lead)
	return lead, nil
}
