// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/mmynk/ledgerwise/internal/models"
	"github.com/mmynk/ledgerwise/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	if err := runMigrations(dbPath); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	// Pragmas go in the DSN so every pooled connection gets them.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// NewWithDB wraps an already opened database. The schema is assumed to exist.
func NewWithDB(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// storageErr marks err as a backend failure.
func storageErr(op string, err error) error {
	return fmt.Errorf("%w: failed to %s: %w", storage.ErrStorage, op, err)
}

const insertExpense = `
	INSERT INTO expenses (id, date, amount, category, location, description, owner, group_id, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
`

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func writeExpense(ctx context.Context, ex execer, e *models.Expense) error {
	_, err := ex.ExecContext(ctx, insertExpense,
		e.ID,
		e.Date.String(),
		e.Amount.String(),
		e.Category,
		e.Location,
		e.Description,
		e.Owner,
		sql.NullString{String: e.GroupID, Valid: e.GroupID != ""},
		e.CreatedAt,
	)
	return err
}

// AppendExpense inserts an expense after every existing one.
func (s *SQLiteStore) AppendExpense(ctx context.Context, expense *models.Expense) error {
	if err := writeExpense(ctx, s.db, expense); err != nil {
		return storageErr("insert expense", err)
	}
	return nil
}

// ListExpenses returns all expenses in insertion order.
func (s *SQLiteStore) ListExpenses(ctx context.Context) ([]models.Expense, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, date, amount, category, location, description, owner, group_id, created_at
		FROM expenses
		ORDER BY seq
	`)
	if err != nil {
		return nil, storageErr("list expenses", err)
	}
	defer rows.Close()

	var expenses []models.Expense
	for rows.Next() {
		var (
			e       models.Expense
			date    string
			amount  string
			groupID sql.NullString
		)
		if err := rows.Scan(&e.ID, &date, &amount, &e.Category, &e.Location, &e.Description, &e.Owner, &groupID, &e.CreatedAt); err != nil {
			return nil, storageErr("scan expense", err)
		}
		if e.Date, err = models.ParseDate(date); err != nil {
			return nil, storageErr("decode expense "+e.ID, err)
		}
		if e.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, storageErr("decode expense "+e.ID, err)
		}
		e.GroupID = groupID.String
		expenses = append(expenses, e)
	}

	if err := rows.Err(); err != nil {
		return nil, storageErr("iterate expenses", err)
	}

	return expenses, nil
}

// ReplaceExpenses rewrites the expense table inside a single transaction.
func (s *SQLiteStore) ReplaceExpenses(ctx context.Context, expenses []models.Expense) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return storageErr("begin transaction", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM expenses"); err != nil {
		return storageErr("clear expenses", err)
	}

	for i := range expenses {
		if err := writeExpense(ctx, tx, &expenses[i]); err != nil {
			return storageErr("reinsert expense", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return storageErr("commit transaction", err)
	}

	return nil
}
