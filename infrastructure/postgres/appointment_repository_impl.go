package postgres

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"rental-crm/domain/models"
	"rental-crm/domain/repositories"
	"rental-crm/pkg/metrics"
	"rental-crm/pkg/query"
)

const appointmentWithLeadColumns = "appointments.*, leads.nome AS lead_nome, leads.localita AS lead_localita"

type AppointmentRepositoryImpl struct {
	db *gorm.DB
}

func NewAppointmentRepository(db *gorm.DB) repositories.AppointmentRepository {
	return &AppointmentRepositoryImpl{db: db}
}

// joined คือ appointments LEFT JOIN leads; column ใน filter ต้อง qualify ด้วยชื่อ table
func (r *AppointmentRepositoryImpl) joined(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("appointments").
		Joins("LEFT JOIN leads ON leads.id = appointments.lead_id")
}

func (r *AppointmentRepositoryImpl) Create(ctx context.Context, appointment *models.Appointment) error {
	defer metrics.TimeDB("insert", "appointments")()
	return translateError(r.db.WithContext(ctx).Create(appointment).Error)
}

func (r *AppointmentRepositoryImpl) GetByID(ctx context.Context, id uint) (*models.AppointmentWithLead, error) {
	defer metrics.TimeDB("select", "appointments")()
	var row models.AppointmentWithLead
	err := r.joined(ctx).
		Select(appointmentWithLeadColumns).
		Where("appointments.id = ?", id).
		Take(&row).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &row, nil
}

func (r *AppointmentRepositoryImpl) List(ctx context.Context, filter query.Predicate, offset, limit int) ([]*models.AppointmentWithLead, error) {
	defer metrics.TimeDB("select", "appointments")()
	rows := make([]*models.AppointmentWithLead, 0)
	err := r.joined(ctx).
		Select(appointmentWithLeadColumns).
		Scopes(filter.Scope).
		Order("appointments.data DESC, appointments.id DESC").
		Offset(offset).
		Limit(limit).
		Find(&rows).Error
	return rows, translateError(err)
}

func (r *AppointmentRepositoryImpl) Count(ctx context.Context, filter query.Predicate) (int64, error) {
	defer metrics.TimeDB("count", "appointments")()
	var total int64
	err := r.joined(ctx).Scopes(filter.Scope).Count(&total).Error
	return total, translateError(err)
}

func (r *AppointmentRepositoryImpl) Update(ctx context.Context, id uint, fields map[string]interface{}) (*models.AppointmentWithLead, error) {
	done := metrics.TimeDB("update", "appointments")
	res := r.db.WithContext(ctx).Model(&models.Appointment{}).Where("id = ?", id).Updates(withUpdatedAt(fields))
	done()
	if res.Error != nil {
		return nil, translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, repositories.ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *AppointmentRepositoryImpl) Delete(ctx context.Context, id uint) (*models.Appointment, error) {
	defer metrics.TimeDB("delete", "appointments")()
	var appointment models.Appointment
	res := r.db.WithContext(ctx).
		Clauses(clause.Returning{}).
		Where("id = ?", id).
		Delete(&appointment)
	if res.Error != nil {
		return nil, translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, repositories.ErrNotFound
	}
	return &appointment, nil
}
