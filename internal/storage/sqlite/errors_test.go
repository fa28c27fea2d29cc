package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/ledgerwise/internal/models"
	"github.com/mmynk/ledgerwise/internal/storage"
)

var errDisk = errors.New("disk I/O error")

func newMockStore(t *testing.T) (*SQLiteStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewWithDB(db), mock
}

func TestListExpenses_PropagatesReadFailure(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery("SELECT (.+) FROM expenses").WillReturnError(errDisk)

	got, err := store.ListExpenses(context.Background())
	assert.Nil(t, got)
	assert.ErrorIs(t, err, storage.ErrStorage)
	assert.ErrorIs(t, err, errDisk)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListExpenses_RejectsCorruptAmount(t *testing.T) {
	store, mock := newMockStore(t)

	rows := sqlmock.NewRows([]string{"id", "date", "amount", "category", "location", "description", "owner", "group_id", "created_at"}).
		AddRow("e1", "2024-01-02", "twelve", "Food", "", "", "alice", nil, 1)
	mock.ExpectQuery("SELECT (.+) FROM expenses").WillReturnRows(rows)

	_, err := store.ListExpenses(context.Background())
	assert.ErrorIs(t, err, storage.ErrStorage)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReplaceExpenses_RollsBackOnInsertFailure(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM expenses").WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("INSERT INTO expenses").WillReturnError(errDisk)
	mock.ExpectRollback()

	err := store.ReplaceExpenses(context.Background(), []models.Expense{expense("alice", "", "5")})
	assert.ErrorIs(t, err, storage.ErrStorage)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMembersOf_PropagatesFailure(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery("SELECT EXISTS").WithArgs("group_1").WillReturnError(errDisk)

	_, err := store.MembersOf(context.Background(), "group_1")
	assert.ErrorIs(t, err, storage.ErrStorage)
	assert.False(t, errors.Is(err, storage.ErrNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}
