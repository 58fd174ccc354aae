package postgres

import (
	"context"
	"time"

	"gorm.io/gorm"

	"rental-crm/domain/models"
	"rental-crm/domain/repositories"
	"rental-crm/pkg/metrics"
	"rental-crm/pkg/query"
)

type LeadRepositoryImpl struct {
	db *gorm.DB
}

func NewLeadRepository(db *gorm.DB) repositories.LeadRepository {
	return &LeadRepositoryImpl{db: db}
}

func (r *LeadRepositoryImpl) Create(ctx context.Context, lead *models.Lead) error {
	defer metrics.TimeDB("insert", "leads")()
	return translateError(r.db.WithContext(ctx).Create(lead).Error)
}

func (r *LeadRepositoryImpl) GetByID(ctx context.Context, id uint) (*models.Lead, error) {
	defer metrics.TimeDB("select", "leads")()
	var lead models.Lead
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&lead).Error; err != nil {
		return nil, translateError(err)
	}
	return &lead, nil
}

func (r *LeadRepositoryImpl) Exists(ctx context.Context, id uint) (bool, error) {
	defer metrics.TimeDB("select", "leads")()
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Lead{}).Where("id = ?", id).Count(&count).Error
	return count > 0, translateError(err)
}

// List กับ Count ใช้ filter ตัวเดียวกัน
func (r *LeadRepositoryImpl) List(ctx context.Context, filter query.Predicate, offset, limit int) ([]*models.Lead, error) {
	defer metrics.TimeDB("select", "leads")()
	leads := make([]*models.Lead, 0)
	err := r.db.WithContext(ctx).
		Scopes(filter.Scope).
		Order("created_at DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&leads).Error
	return leads, translateError(err)
}

func (r *LeadRepositoryImpl) Count(ctx context.Context, filter query.Predicate) (int64, error) {
	defer metrics.TimeDB("count", "leads")()
	var total int64
	err := r.db.WithContext(ctx).Model(&models.Lead{}).Scopes(filter.Scope).Count(&total).Error
	return total, translateError(err)
}

func (r *LeadRepositoryImpl) Update(ctx context.Context, id uint, fields map[string]interface{}) (*models.Lead, error) {
	done := metrics.TimeDB("update", "leads")
	updates := withUpdatedAt(fields)
	res := r.db.WithContext(ctx).Model(&models.Lead{}).Where("id = ?", id).Updates(updates)
	done()
	if res.Error != nil {
		return nil, translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, repositories.ErrNotFound
	}
	return r.GetByID(ctx, id)
}

// DeleteWithAppointments: appointments ก่อน แล้วค่อย lead; rollback ทั้งหมดถ้าขั้นใดพัง
func (r *LeadRepositoryImpl) DeleteWithAppointments(ctx context.Context, id uint) (*models.Lead, error) {
	defer metrics.TimeDB("delete", "leads")()
	var lead models.Lead
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).Take(&lead).Error; err != nil {
			return err
		}
		if err := tx.Where("lead_id = ?", id).Delete(&models.Appointment{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&models.Lead{}).Error
	})
	if err != nil {
		return nil, translateError(err)
	}
	return &lead, nil
}

// withUpdatedAt คืน copy ของ fields ที่มี updated_at เสมอ
func withUpdatedAt(fields map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(fields)+1)
	for k, v := range fields {
		out[k] = v
	}
	out["updated_at"] = time.Now()
	return out
}
