package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mmynk/ledgerwise/internal/models"
	"github.com/mmynk/ledgerwise/internal/storage"
)

// CreateGroup inserts a group and its creator's membership in one transaction.
func (s *SQLiteStore) CreateGroup(ctx context.Context, group *models.Group) error {
	now := time.Now()
	if group.CreatedAt == 0 {
		group.CreatedAt = now.Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return storageErr("begin transaction", err)
	}
	defer tx.Rollback()

	if group.ID == "" {
		var count int
		if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM groups").Scan(&count); err != nil {
			return storageErr("count groups", err)
		}
		group.ID = models.NewGroupID(now, count)
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO groups (id, name, description, creator, created_at) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (id) DO NOTHING`,
		group.ID, group.Name, group.Description, group.Creator, group.CreatedAt,
	)
	if err != nil {
		return storageErr("insert group", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return storageErr("insert group", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: group %s", storage.ErrAlreadyExists, group.ID)
	}

	_, err = tx.ExecContext(ctx,
		"INSERT INTO group_members (group_id, username, joined_at) VALUES (?, ?, ?)",
		group.ID, group.Creator, group.CreatedAt,
	)
	if err != nil {
		return storageErr("insert group creator", err)
	}

	if err := tx.Commit(); err != nil {
		return storageErr("commit transaction", err)
	}

	group.Members = []string{group.Creator}
	group.PendingInvites = []string{}
	return nil
}

// GetGroup retrieves a group with its members and pending invites.
func (s *SQLiteStore) GetGroup(ctx context.Context, groupID string) (*models.Group, error) {
	group := &models.Group{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, description, creator, created_at FROM groups WHERE id = ?",
		groupID,
	).Scan(&group.ID, &group.Name, &group.Description, &group.Creator, &group.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: group %s", storage.ErrNotFound, groupID)
	}
	if err != nil {
		return nil, storageErr("get group", err)
	}

	group.Members, err = s.queryStrings(ctx,
		"SELECT username FROM group_members WHERE group_id = ? ORDER BY joined_at, rowid",
		groupID,
	)
	if err != nil {
		return nil, storageErr("get group members", err)
	}

	group.PendingInvites, err = s.queryStrings(ctx,
		"SELECT username FROM group_invites WHERE group_id = ? ORDER BY created_at, rowid",
		groupID,
	)
	if err != nil {
		return nil, storageErr("get group invites", err)
	}

	return group, nil
}

// ListGroupsForUser returns the groups the user is a member of, in join order.
func (s *SQLiteStore) ListGroupsForUser(ctx context.Context, username string) ([]*models.Group, error) {
	ids, err := s.queryStrings(ctx,
		"SELECT group_id FROM group_members WHERE username = ? ORDER BY joined_at, rowid",
		username,
	)
	if err != nil {
		return nil, storageErr("list user groups", err)
	}

	groups := make([]*models.Group, 0, len(ids))
	for _, id := range ids {
		group, err := s.GetGroup(ctx, id)
		if err != nil {
			return nil, err
		}
		groups = append(groups, group)
	}

	return groups, nil
}

// AddInvite records a pending invite for username.
func (s *SQLiteStore) AddInvite(ctx context.Context, groupID, username string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return storageErr("begin transaction", err)
	}
	defer tx.Rollback()

	var exists, member bool
	err = tx.QueryRowContext(ctx, `
		SELECT
			EXISTS (SELECT 1 FROM groups WHERE id = ?),
			EXISTS (SELECT 1 FROM group_members WHERE group_id = ? AND username = ?)
	`, groupID, groupID, username).Scan(&exists, &member)
	if err != nil {
		return storageErr("check invite", err)
	}
	if !exists {
		return fmt.Errorf("%w: group %s", storage.ErrNotFound, groupID)
	}
	if member {
		return fmt.Errorf("%w: %s is already a member of this group", storage.ErrAlreadyExists, username)
	}

	res, err := tx.ExecContext(ctx, `
		INSERT INTO group_invites (group_id, username, created_at)
		VALUES (?, ?, ?)
		ON CONFLICT (group_id, username) DO NOTHING
	`, groupID, username, time.Now().Unix())
	if err != nil {
		return storageErr("insert invite", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return storageErr("insert invite", err)
	} else if n == 0 {
		return fmt.Errorf("%w: %s has already been invited to this group", storage.ErrAlreadyExists, username)
	}

	if err := tx.Commit(); err != nil {
		return storageErr("commit transaction", err)
	}

	return nil
}

// AcceptInvite turns a pending invite into a membership.
func (s *SQLiteStore) AcceptInvite(ctx context.Context, groupID, username string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return storageErr("begin transaction", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		"DELETE FROM group_invites WHERE group_id = ? AND username = ?",
		groupID, username,
	)
	if err != nil {
		return storageErr("delete invite", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return storageErr("delete invite", err)
	} else if n == 0 {
		return fmt.Errorf("%w: no pending invite to %s for %s", storage.ErrNotFound, groupID, username)
	}

	_, err = tx.ExecContext(ctx,
		"INSERT INTO group_members (group_id, username, joined_at) VALUES (?, ?, ?)",
		groupID, username, time.Now().Unix(),
	)
	if err != nil {
		return storageErr("insert member", err)
	}

	if err := tx.Commit(); err != nil {
		return storageErr("commit transaction", err)
	}

	return nil
}

// ListPendingInvites returns the invites waiting for username.
func (s *SQLiteStore) ListPendingInvites(ctx context.Context, username string) ([]models.Invite, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT g.id, g.name, g.creator, g.description
		FROM group_invites i
		JOIN groups g ON g.id = i.group_id
		WHERE i.username = ?
		ORDER BY i.created_at, i.rowid
	`, username)
	if err != nil {
		return nil, storageErr("list invites", err)
	}
	defer rows.Close()

	invites := []models.Invite{}
	for rows.Next() {
		var inv models.Invite
		if err := rows.Scan(&inv.GroupID, &inv.GroupName, &inv.Creator, &inv.Description); err != nil {
			return nil, storageErr("scan invite", err)
		}
		invites = append(invites, inv)
	}

	if err := rows.Err(); err != nil {
		return nil, storageErr("iterate invites", err)
	}

	return invites, nil
}

// GroupExists reports whether the group exists.
func (s *SQLiteStore) GroupExists(ctx context.Context, groupID string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, "SELECT EXISTS (SELECT 1 FROM groups WHERE id = ?)", groupID).Scan(&exists)
	if err != nil {
		return false, storageErr("check group", err)
	}
	return exists, nil
}

// MembersOf returns the group's members straight from the membership table.
func (s *SQLiteStore) MembersOf(ctx context.Context, groupID string) ([]string, error) {
	exists, err := s.GroupExists(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: group %s", storage.ErrNotFound, groupID)
	}

	members, err := s.queryStrings(ctx,
		"SELECT username FROM group_members WHERE group_id = ? ORDER BY joined_at, rowid",
		groupID,
	)
	if err != nil {
		return nil, storageErr("get group members", err)
	}
	return members, nil
}
