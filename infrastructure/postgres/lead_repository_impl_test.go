package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"rental-crm/domain/models"
	"rental-crm/domain/repositories"
	"rental-crm/pkg/query"
)

var leadColumns = []string{"id", "nome", "localita", "camere", "contattato", "status", "created_at", "updated_at"}

func TestLeadListAndCountShareThePredicate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewLeadRepository(db)
	ctx := context.Background()

	filter, err := query.Compose(query.Search("Mario", "nome", "localita"), query.Equal("status", "lead"))
	require.NoError(t, err)

	now := time.Now()
	mock.ExpectQuery(`SELECT count\(\*\) FROM "leads" WHERE \(\(nome ILIKE \$1 OR localita ILIKE \$2\) AND status = \$3\)`).
		WithArgs("%Mario%", "%Mario%", "lead").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`SELECT \* FROM "leads" WHERE \(\(nome ILIKE \$1 OR localita ILIKE \$2\) AND status = \$3\) ORDER BY created_at DESC, id DESC LIMIT`).
		WillReturnRows(sqlmock.NewRows(leadColumns).AddRow(1, "Mario Rossi", "Milano", 2, false, "lead", now, now))

	total, err := repo.Count(ctx, filter)
	require.NoError(t, err)
	leads, err := repo.List(ctx, filter, 0, 20)
	require.NoError(t, err)

	assert.Equal(t, int64(1), total)
	require.Len(t, leads, 1)
	assert.Equal(t, "Mario Rossi", leads[0].Nome)
	assert.Equal(t, models.LeadStatusLead, leads[0].Status)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLeadListWithoutFiltersHasNoWhereClause(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewLeadRepository(db)

	mock.ExpectQuery(`^SELECT count\(\*\) FROM "leads"$`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`^SELECT \* FROM "leads" ORDER BY created_at DESC, id DESC LIMIT`).
		WillReturnRows(sqlmock.NewRows(leadColumns))

	total, err := repo.Count(context.Background(), query.Predicate{})
	require.NoError(t, err)
	leads, err := repo.List(context.Background(), query.Predicate{}, 0, 20)
	require.NoError(t, err)

	assert.Zero(t, total)
	assert.NotNil(t, leads)
	assert.Empty(t, leads)
	require.NoError(t, mock.ExpectationsWereMet())
}

// limit มาจาก caller; ห้ามใช้เป็น capacity ของ slice
func TestLeadListHugeLimitDoesNotPreallocate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewLeadRepository(db)

	mock.ExpectQuery(`^SELECT \* FROM "leads" ORDER BY created_at DESC, id DESC LIMIT`).
		WillReturnRows(sqlmock.NewRows(leadColumns))

	var leads []*models.Lead
	require.NotPanics(t, func() {
		var err error
		leads, err = repo.List(context.Background(), query.Predicate{}, 0, 1<<50)
		require.NoError(t, err)
	})
	assert.Empty(t, leads)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLeadGetByIDNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewLeadRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "leads" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows(leadColumns))

	_, err := repo.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLeadUpdateNoRowsIsNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewLeadRepository(db)

	mock.ExpectExec(`UPDATE "leads" SET .*"status"=.* WHERE id = \$\d+`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	_, err := repo.Update(context.Background(), 42, map[string]interface{}{"status": "ghost"})
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLeadUpdateRefreshesUpdatedAtAndReturnsRow(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewLeadRepository(db)
	now := time.Now()

	mock.ExpectExec(`UPDATE "leads" SET "status"=\$1,"updated_at"=\$2 WHERE id = \$3`).
		WithArgs("cliente_confermato", sqlmock.AnyArg(), int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT \* FROM "leads" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows(leadColumns).AddRow(1, "Mario Rossi", "Milano", 2, false, "cliente_confermato", now, now))

	fields := map[string]interface{}{"status": "cliente_confermato"}
	lead, err := repo.Update(context.Background(), 1, fields)
	require.NoError(t, err)

	assert.Equal(t, models.LeadStatusClienteConfermato, lead.Status)
	assert.NotContains(t, fields, "updated_at", "caller map is not mutated")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLeadDeleteRemovesAppointmentsFirstInOneTransaction(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewLeadRepository(db)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "leads" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows(leadColumns).AddRow(7, "Mario Rossi", "Milano", 2, false, "lead", now, now))
	mock.ExpectExec(`DELETE FROM "appointments" WHERE lead_id = \$1`).
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(`DELETE FROM "leads" WHERE id = \$1`).
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	lead, err := repo.DeleteWithAppointments(context.Background(), 7)
	require.NoError(t, err)

	assert.Equal(t, uint(7), lead.ID)
	assert.Equal(t, "Mario Rossi", lead.Nome)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLeadDeleteRollsBackWhenAppointmentDeleteFails(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewLeadRepository(db)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "leads" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows(leadColumns).AddRow(7, "Mario Rossi", "Milano", 2, false, "lead", now, now))
	mock.ExpectExec(`DELETE FROM "appointments" WHERE lead_id = \$1`).
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	_, err := repo.DeleteWithAppointments(context.Background(), 7)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLeadDeleteMissingLeadTouchesNothing(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewLeadRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "leads" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows(leadColumns))
	mock.ExpectRollback()

	_, err := repo.DeleteWithAppointments(context.Background(), 404)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLeadExists(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewLeadRepository(db)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "leads" WHERE id = \$1`).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	ok, err := repo.Exists(context.Background(), 3)
	require.NoError(t, err)
	assert.True(t, ok)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTranslateError(t *testing.T) {
	assert.NoError(t, translateError(nil))
	assert.ErrorIs(t, translateError(gorm.ErrRecordNotFound), repositories.ErrNotFound)
	assert.ErrorIs(t, translateError(gorm.ErrForeignKeyViolated), repositories.ErrForeignKeyViolation)
	assert.ErrorIs(t, translateError(gorm.ErrDuplicatedKey), repositories.ErrDuplicate)

	other := errors.New("boom")
	assert.Equal(t, other, translateError(other))
}
