package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mmynk/ledgerwise/internal/models"
	"github.com/mmynk/ledgerwise/internal/storage"
)

// CreateUser inserts a new user into the database.
func (s *SQLiteStore) CreateUser(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (username, password_hash, created_at)
		VALUES (?, ?, ?)
		ON CONFLICT (username) DO NOTHING
	`

	res, err := s.db.ExecContext(ctx, query,
		user.Username,
		user.PasswordHash,
		user.CreatedAt,
	)
	if err != nil {
		return storageErr("create user", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return storageErr("create user", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: username %q", storage.ErrAlreadyExists, user.Username)
	}

	return nil
}

// GetUser retrieves a user by username, with the groups they belong to.
func (s *SQLiteStore) GetUser(ctx context.Context, username string) (*models.User, error) {
	query := `
		SELECT username, password_hash, created_at
		FROM users
		WHERE username = ?
	`

	user := &models.User{}
	err := s.db.QueryRowContext(ctx, query, username).Scan(
		&user.Username,
		&user.PasswordHash,
		&user.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: user %q", storage.ErrNotFound, username)
	}
	if err != nil {
		return nil, storageErr("get user", err)
	}

	groups, err := s.queryStrings(ctx, `
		SELECT group_id FROM group_members
		WHERE username = ?
		ORDER BY joined_at, rowid
	`, username)
	if err != nil {
		return nil, storageErr("get user groups", err)
	}
	user.Groups = groups

	return user, nil
}

// queryStrings runs a single-column query and collects the values.
func (s *SQLiteStore) queryStrings(ctx context.Context, query string, args ...any) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	values := []string{}
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		values = append(values, v)
	}

	return values, rows.Err()
}
