package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rental-crm/domain/models"
	"rental-crm/domain/repositories"
)

var taskColumns = []string{"id", "user_id", "lead_id", "titolo", "tipo", "priorita", "stato", "completato", "colore", "created_at", "updated_at", "lead_nome", "lead_localita", "lead_status"}

func TestTaskListIsScopedToOwner(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTaskRepository(db)
	owner := uuid.New()
	now := time.Now()

	mock.ExpectQuery(`SELECT tasks\.\*, leads\.nome AS lead_nome, leads\.localita AS lead_localita, leads\.status AS lead_status FROM "tasks" LEFT JOIN leads ON leads.id = tasks.lead_id WHERE tasks.user_id = \$1 ORDER BY tasks.created_at DESC, tasks.id DESC`).
		WithArgs(owner).
		WillReturnRows(sqlmock.NewRows(taskColumns).
			AddRow(2, owner.String(), 7, "Richiamare", "chiamate_da_fare", "alta", "da_fare", false, "#3b82f6", now, now, "Mario Rossi", "Milano", "lead").
			AddRow(1, owner.String(), nil, "Preparare foto", "task_generiche", "media", "in_corso", false, "#3b82f6", now, now, nil, nil, nil))

	tasks, err := repo.ListByUser(context.Background(), owner)
	require.NoError(t, err)

	require.Len(t, tasks, 2)
	assert.Equal(t, owner, tasks[0].UserID)
	require.NotNil(t, tasks[0].LeadStatus)
	assert.Equal(t, models.LeadStatusLead, *tasks[0].LeadStatus)
	assert.Nil(t, tasks[1].LeadID)
	assert.Nil(t, tasks[1].LeadNome)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskUpdateOwnedByAnotherUserIsNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTaskRepository(db)
	caller := uuid.New()

	mock.ExpectExec(`UPDATE "tasks" SET "titolo"=\$1,"updated_at"=\$2 WHERE id = \$3 AND user_id = \$4`).
		WithArgs("Nuovo titolo", sqlmock.AnyArg(), int64(9), caller).
		WillReturnResult(sqlmock.NewResult(0, 0))

	_, err := repo.UpdateOwned(context.Background(), 9, caller, map[string]interface{}{"titolo": "Nuovo titolo"})
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskDeleteOwned(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTaskRepository(db)
	owner := uuid.New()
	now := time.Now()

	mock.ExpectQuery(`DELETE FROM "tasks" WHERE id = \$1 AND user_id = \$2 RETURNING \*`).
		WithArgs(int64(3), owner).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "titolo", "tipo", "created_at", "updated_at"}).
			AddRow(3, owner.String(), "Chiamare", "chiamate_da_fare", now, now))

	task, err := repo.DeleteOwned(context.Background(), 3, owner)
	require.NoError(t, err)
	assert.Equal(t, uint(3), task.ID)
	assert.Equal(t, "Chiamare", task.Titolo)
	require.NoError(t, mock.ExpectationsWereMet())

	mock.ExpectQuery(`DELETE FROM "tasks" WHERE id = \$1 AND user_id = \$2 RETURNING \*`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err = repo.DeleteOwned(context.Background(), 3, uuid.New())
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
