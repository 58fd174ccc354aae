package postgres

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"rental-crm/domain/models"
	"rental-crm/domain/repositories"
	"rental-crm/pkg/metrics"
)

type UserRepositoryImpl struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) repositories.UserRepository {
	return &UserRepositoryImpl{db: db}
}

func (r *UserRepositoryImpl) Create(ctx context.Context, user *models.User) error {
	defer metrics.TimeDB("insert", "users")()
	return translateError(r.db.WithContext(ctx).Create(user).Error)
}

func (r *UserRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return r.getBy(ctx, "id = ?", id)
}

func (r *UserRepositoryImpl) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getBy(ctx, "email = ?", email)
}

func (r *UserRepositoryImpl) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.getBy(ctx, "username = ?", username)
}

func (r *UserRepositoryImpl) getBy(ctx context.Context, cond string, value interface{}) (*models.User, error) {
	defer metrics.TimeDB("select", "users")()
	var user models.User
	if err := r.db.WithContext(ctx).Where(cond, value).Take(&user).Error; err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}
