package postgres

import (
	"errors"

	"gorm.io/gorm"

	"rental-crm/domain/repositories"
)

// translateError แปลง error ของ gorm เป็น sentinel ของ repositories
func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return repositories.ErrNotFound
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return repositories.ErrForeignKeyViolation
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return repositories.ErrDuplicate
	default:
		return err
	}
}
