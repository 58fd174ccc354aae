package models

import "time"

type Appointment struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	LeadID     uint      `gorm:"not null;index" json:"leadId"`
	Lead       *Lead     `gorm:"foreignKey:LeadID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Data       time.Time `gorm:"not null;index" json:"data"`
	Tipo       string    `gorm:"size:100" json:"tipo"`
	Luogo      *string   `gorm:"size:255" json:"luogo"`
	Note       *string   `gorm:"type:text" json:"note"`
	Completato bool      `gorm:"not null;default:false" json:"completato"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// AppointmentWithLead คือ appointment ที่ join กับ lead (LEFT JOIN จึงเป็น nullable)
type AppointmentWithLead struct {
	Appointment  `gorm:"embedded"`
	LeadNome     *string `json:"leadNome"`
	LeadLocalita *string `json:"leadLocalita"`
}
