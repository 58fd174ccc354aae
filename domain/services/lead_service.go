package services

import (
	"context"

	"github.com/google/uuid"

	"rental-crm/domain/dto"
	"rental-crm/domain/models"
	"rental-crm/pkg/pagination"
)

type LeadService interface {
	ListLeads(ctx context.Context, userID uuid.UUID, filter dto.LeadFilter, page pagination.Params) (*dto.LeadListResponse, error)
	GetLead(ctx context.Context, userID uuid.UUID, id uint) (*models.Lead, error)
	CreateLead(ctx context.Context, userID uuid.UUID, req *dto.CreateLeadRequest) (*models.Lead, error)
	UpdateLead(ctx context.Context, userID uuid.UUID, req *dto.UpdateLeadRequest) (*models.Lead, error)
	// DeleteLead ลบ lead พร้อม appointments ทั้งหมดของ lead และคืน row ที่ถูกลบ
	DeleteLead(ctx context.Context, userID uuid.UUID, id uint) (*models.Lead, error)
}
