package dto

import (
	"strings"

	"rental-crm/domain/models"
	"rental-crm/pkg/pagination"
)

// CreateAppointmentRequest - leadId และ data ตรวจใน service (leadId ต้องเป็นเลขบวก, data ต้อง parse ได้)
type CreateAppointmentRequest struct {
	LeadID     OptionalID `json:"leadId"`
	Data       string     `json:"data"`
	Tipo       string     `json:"tipo" validate:"max=100"`
	Luogo      *string    `json:"luogo" validate:"omitempty,max=255"`
	Note       *string    `json:"note"`
	Completato *bool      `json:"completato"`
}

type UpdateAppointmentRequest struct {
	ID         uint    `json:"id"`
	LeadID     *uint   `json:"leadId" validate:"omitempty,gt=0"`
	Data       *string `json:"data"`
	Tipo       *string `json:"tipo" validate:"omitempty,max=100"`
	Luogo      *string `json:"luogo" validate:"omitempty,max=255"`
	Note       *string `json:"note"`
	Completato *bool   `json:"completato"`
}

// AppointmentFilter - completato: all|true|false, tipo: all หรือค่าที่ต้องการ
type AppointmentFilter struct {
	Search     string
	Completato string
	Tipo       string
}

type AppointmentListResponse struct {
	Appointments []*models.AppointmentWithLead `json:"appointments"`
	Pagination   pagination.Summary            `json:"pagination"`
}

// Fields ไม่รวม data (service parse เอง)
func (req *UpdateAppointmentRequest) Fields() map[string]interface{} {
	fields := make(map[string]interface{})
	if req.LeadID != nil {
		fields["lead_id"] = *req.LeadID
	}
	if req.Tipo != nil {
		fields["tipo"] = strings.TrimSpace(*req.Tipo)
	}
	if req.Luogo != nil {
		fields["luogo"] = nullableField(req.Luogo)
	}
	if req.Note != nil {
		fields["note"] = nullableField(req.Note)
	}
	if req.Completato != nil {
		fields["completato"] = *req.Completato
	}
	return fields
}

func CreateAppointmentRequestToAppointment(req *CreateAppointmentRequest) *models.Appointment {
	appt := &models.Appointment{
		LeadID: req.LeadID.Value,
		Tipo:   strings.TrimSpace(req.Tipo),
		Luogo:  normalizeOptional(req.Luogo),
		Note:   normalizeOptional(req.Note),
	}
	if req.Completato != nil {
		appt.Completato = *req.Completato
	}
	return appt
}
