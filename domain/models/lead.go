package models

import "time"

type Lead struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	Nome       string     `gorm:"size:255;not null" json:"nome"`
	Localita   string     `gorm:"size:255;not null" json:"localita"`
	Camere     int        `gorm:"not null" json:"camere"`
	Telefono   *string    `gorm:"size:50" json:"telefono"`
	Email      *string    `gorm:"size:255" json:"email"`
	Contattato bool       `gorm:"not null;default:false" json:"contattato"`
	Note       *string    `gorm:"type:text" json:"note"`
	Status     LeadStatus `gorm:"size:32;not null;default:'lead';index" json:"status"`
	CreatedAt  time.Time  `gorm:"index" json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

func (Lead) TableName() string {
	return "leads"
}
