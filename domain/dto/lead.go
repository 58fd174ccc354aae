package dto

import (
	"strings"

	"rental-crm/domain/models"
	"rental-crm/pkg/pagination"
)

type CreateLeadRequest struct {
	Nome       string             `json:"nome" validate:"nonblank,max=255"`
	Localita   string             `json:"localita" validate:"nonblank,max=255"`
	Camere     *int               `json:"camere" validate:"required,min=0,max=10000"`
	Telefono   *string            `json:"telefono" validate:"omitempty,max=50"`
	Email      *string            `json:"email" validate:"omitempty,email,max=255"`
	Contattato *bool              `json:"contattato"`
	Note       *string            `json:"note"`
	Status     *models.LeadStatus `json:"status" validate:"omitempty,leadstatus"`
}

// UpdateLeadRequest - field ที่เป็น nil คือไม่แก้; string ว่างใน field nullable คือ NULL
type UpdateLeadRequest struct {
	ID         uint               `json:"id"`
	Nome       *string            `json:"nome" validate:"omitempty,nonblank,max=255"`
	Localita   *string            `json:"localita" validate:"omitempty,nonblank,max=255"`
	Camere     *int               `json:"camere" validate:"omitempty,min=0,max=10000"`
	Telefono   *string            `json:"telefono" validate:"omitempty,max=50"`
	Email      *string            `json:"email" validate:"omitempty,email,max=255"`
	Contattato *bool              `json:"contattato"`
	Note       *string            `json:"note"`
	Status     *models.LeadStatus `json:"status" validate:"omitempty,leadstatus"`
}

// LeadFilter - filter ของ list; ค่าว่างหรือ "all" คือไม่กรอง
type LeadFilter struct {
	Search     string
	Status     string
	Contattato string
}

type LeadListResponse struct {
	Leads      []*models.Lead     `json:"leads"`
	Pagination pagination.Summary `json:"pagination"`
}

func CreateLeadRequestToLead(req *CreateLeadRequest) *models.Lead {
	lead := &models.Lead{
		Nome:     strings.TrimSpace(req.Nome),
		Localita: strings.TrimSpace(req.Localita),
		Telefono: normalizeOptional(req.Telefono),
		Email:    normalizeOptional(req.Email),
		Note:     normalizeOptional(req.Note),
		Status:   models.LeadStatusLead,
	}
	if req.Camere != nil {
		lead.Camere = *req.Camere
	}
	if req.Contattato != nil {
		lead.Contattato = *req.Contattato
	}
	if req.Status != nil {
		lead.Status = *req.Status
	}
	return lead
}

// Fields คืน column -> value เฉพาะที่ส่งมา
func (req *UpdateLeadRequest) Fields() map[string]interface{} {
	fields := make(map[string]interface{})
	if req.Nome != nil {
		fields["nome"] = strings.TrimSpace(*req.Nome)
	}
	if req.Localita != nil {
		fields["localita"] = strings.TrimSpace(*req.Localita)
	}
	if req.Camere != nil {
		fields["camere"] = *req.Camere
	}
	if req.Telefono != nil {
		fields["telefono"] = nullableField(req.Telefono)
	}
	if req.Email != nil {
		fields["email"] = nullableField(req.Email)
	}
	if req.Contattato != nil {
		fields["contattato"] = *req.Contattato
	}
	if req.Note != nil {
		fields["note"] = nullableField(req.Note)
	}
	if req.Status != nil {
		fields["status"] = string(*req.Status)
	}
	return fields
}
