package models

// LeadStatus is the position of a lead in the sales funnel. Any status may
// follow any other; only membership in the set is enforced.
type LeadStatus string

const (
	LeadStatusLead              LeadStatus = "lead"
	LeadStatusFoto              LeadStatus = "foto"
	LeadStatusAppuntamento      LeadStatus = "appuntamento"
	LeadStatusGhost             LeadStatus = "ghost"
	LeadStatusRicontattare      LeadStatus = "ricontattare"
	LeadStatusClienteAttesa     LeadStatus = "cliente_attesa"
	LeadStatusClienteConfermato LeadStatus = "cliente_confermato"
)

var LeadStatuses = []LeadStatus{
	LeadStatusLead,
	LeadStatusFoto,
	LeadStatusAppuntamento,
	LeadStatusGhost,
	LeadStatusRicontattare,
	LeadStatusClienteAttesa,
	LeadStatusClienteConfermato,
}

func (s LeadStatus) IsValid() bool {
	for _, v := range LeadStatuses {
		if s == v {
			return true
		}
	}
	return false
}

type TaskType string

const (
	TaskTypeProspetti  TaskType = "prospetti_da_fare"
	TaskTypeChiamate   TaskType = "chiamate_da_fare"
	TaskTypeImportanti TaskType = "task_importanti"
	TaskTypeGeneriche  TaskType = "task_generiche"
)

func (t TaskType) IsValid() bool {
	switch t {
	case TaskTypeProspetti, TaskTypeChiamate, TaskTypeImportanti, TaskTypeGeneriche:
		return true
	}
	return false
}

type TaskPriority string

const (
	TaskPriorityBassa   TaskPriority = "bassa"
	TaskPriorityMedia   TaskPriority = "media"
	TaskPriorityAlta    TaskPriority = "alta"
	TaskPriorityUrgente TaskPriority = "urgente"
)

func (p TaskPriority) IsValid() bool {
	switch p {
	case TaskPriorityBassa, TaskPriorityMedia, TaskPriorityAlta, TaskPriorityUrgente:
		return true
	}
	return false
}

// TaskStatus is independent of Task.Completato.
type TaskStatus string

const (
	TaskStatusDaFare     TaskStatus = "da_fare"
	TaskStatusInCorso    TaskStatus = "in_corso"
	TaskStatusCompletato TaskStatus = "completato"
)

func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusDaFare, TaskStatusInCorso, TaskStatusCompletato:
		return true
	}
	return false
}
