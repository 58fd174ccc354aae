package repositories

import "errors"

var (
	ErrNotFound            = errors.New("record not found")
	ErrForeignKeyViolation = errors.New("referenced record does not exist")
	ErrDuplicate           = errors.New("duplicate record")
)
