package dto

import (
	"strings"

	"rental-crm/domain/models"
)

type CreateTaskRequest struct {
	Titolo      string               `json:"titolo" validate:"max=255"`
	Descrizione *string              `json:"descrizione"`
	Tipo        models.TaskType      `json:"tipo"`
	Priorita    *models.TaskPriority `json:"priorita" validate:"omitempty,taskpriority"`
	Stato       *models.TaskStatus   `json:"stato" validate:"omitempty,taskstatus"`
	Scadenza    *string              `json:"scadenza"`
	Completato  *bool                `json:"completato"`
	Colore      *string              `json:"colore" validate:"omitempty,hexcolor"`
	LeadID      OptionalID           `json:"leadId"`
}

// UpdateTaskRequest - leadId ที่ไม่ใช่เลขบวก (null, "", 0) คือเอา lead ออก
type UpdateTaskRequest struct {
	ID          uint                 `json:"id"`
	Titolo      *string              `json:"titolo" validate:"omitempty,nonblank,max=255"`
	Descrizione *string              `json:"descrizione"`
	Tipo        *models.TaskType     `json:"tipo" validate:"omitempty,tasktype"`
	Priorita    *models.TaskPriority `json:"priorita" validate:"omitempty,taskpriority"`
	Stato       *models.TaskStatus   `json:"stato" validate:"omitempty,taskstatus"`
	Scadenza    *string              `json:"scadenza"`
	Completato  *bool                `json:"completato"`
	Colore      *string              `json:"colore" validate:"omitempty,hexcolor"`
	LeadID      OptionalID           `json:"leadId"`
}

func CreateTaskRequestToTask(req *CreateTaskRequest) *models.Task {
	task := &models.Task{
		Titolo:      strings.TrimSpace(req.Titolo),
		Descrizione: normalizeOptional(req.Descrizione),
		Tipo:        req.Tipo,
		Priorita:    models.TaskPriorityMedia,
		Stato:       models.TaskStatusDaFare,
		Colore:      models.DefaultTaskColor,
		LeadID:      req.LeadID.Ptr(),
	}
	if req.Priorita != nil {
		task.Priorita = *req.Priorita
	}
	if req.Stato != nil {
		task.Stato = *req.Stato
	}
	if req.Completato != nil {
		task.Completato = *req.Completato
	}
	if c := normalizeOptional(req.Colore); c != nil {
		task.Colore = *c
	}
	return task
}

// Fields ไม่รวม scadenza (service parse เอง)
func (req *UpdateTaskRequest) Fields() map[string]interface{} {
	fields := make(map[string]interface{})
	if req.Titolo != nil {
		fields["titolo"] = strings.TrimSpace(*req.Titolo)
	}
	if req.Descrizione != nil {
		fields["descrizione"] = nullableField(req.Descrizione)
	}
	if req.Tipo != nil {
		fields["tipo"] = string(*req.Tipo)
	}
	if req.Priorita != nil {
		fields["priorita"] = string(*req.Priorita)
	}
	if req.Stato != nil {
		fields["stato"] = string(*req.Stato)
	}
	if req.Completato != nil {
		fields["completato"] = *req.Completato
	}
	if c := normalizeOptional(req.Colore); c != nil {
		fields["colore"] = *c
	}
	if req.LeadID.Set {
		if id := req.LeadID.Ptr(); id != nil {
			fields["lead_id"] = *id
		} else {
			fields["lead_id"] = nil
		}
	}
	return fields
}
