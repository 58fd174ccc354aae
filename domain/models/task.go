package models

import (
	"time"

	"github.com/google/uuid"
)

const DefaultTaskColor = "#3b82f6"

type Task struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	UserID      uuid.UUID    `gorm:"type:uuid;not null;index" json:"userId"`
	User        *User        `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	LeadID      *uint        `gorm:"index" json:"leadId"`
	Lead        *Lead        `gorm:"foreignKey:LeadID;constraint:OnDelete:SET NULL" json:"-"`
	Titolo      string       `gorm:"size:255;not null" json:"titolo"`
	Descrizione *string      `gorm:"type:text" json:"descrizione"`
	Tipo        TaskType     `gorm:"size:32;not null" json:"tipo"`
	Priorita    TaskPriority `gorm:"size:16;not null;default:'media'" json:"priorita"`
	Stato       TaskStatus   `gorm:"size:16;not null;default:'da_fare'" json:"stato"`
	Scadenza    *time.Time   `json:"scadenza"`
	Completato  bool         `gorm:"not null;default:false" json:"completato"`
	Colore      string       `gorm:"size:16;not null;default:'#3b82f6'" json:"colore"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

func (Task) TableName() string {
	return "tasks"
}

// TaskWithLead คือ task ที่ join กับ lead สำหรับแสดงผล
type TaskWithLead struct {
	Task         `gorm:"embedded"`
	LeadNome     *string     `json:"leadNome"`
	LeadLocalita *string     `json:"leadLocalita"`
	LeadStatus   *LeadStatus `json:"leadStatus"`
}
