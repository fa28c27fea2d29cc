// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/ledgerwise/internal/models"
)

var (
	// ErrNotFound is returned when a referenced user, group or invite does not exist.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists is returned when a record would be duplicated.
	ErrAlreadyExists = errors.New("already exists")
	// ErrStorage wraps every failure of the underlying storage backend.
	ErrStorage = errors.New("storage failure")
)

// ExpenseRecords is the ordered expense collection.
// Implementations return expenses in insertion order.
type ExpenseRecords interface {
	// AppendExpense adds an expense at the tail of the collection.
	AppendExpense(ctx context.Context, expense *models.Expense) error

	// ListExpenses returns the full collection in insertion order.
	ListExpenses(ctx context.Context) ([]models.Expense, error)

	// ReplaceExpenses atomically overwrites the whole collection, keeping the
	// order of the given slice.
	ReplaceExpenses(ctx context.Context, expenses []models.Expense) error
}

// Membership answers group membership questions directly from storage.
// Implementations must not cache.
type Membership interface {
	// GroupExists reports whether a group with the given ID exists.
	GroupExists(ctx context.Context, groupID string) (bool, error)

	// MembersOf returns the group's members in join order.
	// Returns ErrNotFound if the group does not exist.
	MembersOf(ctx context.Context, groupID string) ([]string, error)
}

// UserStore persists user accounts.
type UserStore interface {
	// CreateUser stores a new user. Returns ErrAlreadyExists if the username is taken.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUser returns the user with its groups filled in.
	// Returns ErrNotFound if there is no such user.
	GetUser(ctx context.Context, username string) (*models.User, error)
}

// GroupStore persists groups, membership and invites.
type GroupStore interface {
	// CreateGroup stores a new group with its creator as the only member.
	// The group.ID and group.CreatedAt fields are populated by the store when empty.
	CreateGroup(ctx context.Context, group *models.Group) error

	// GetGroup returns a group with members and pending invites.
	// Returns ErrNotFound if the group does not exist.
	GetGroup(ctx context.Context, groupID string) (*models.Group, error)

	// ListGroupsForUser returns the groups the user is a member of.
	ListGroupsForUser(ctx context.Context, username string) ([]*models.Group, error)

	// AddInvite records a pending invite. Returns ErrAlreadyExists if the user is
	// already a member or already invited.
	AddInvite(ctx context.Context, groupID, username string) error

	// AcceptInvite moves the user from the group's pending invites to its
	// members. Returns ErrNotFound if there is no such invite.
	AcceptInvite(ctx context.Context, groupID, username string) error

	// ListPendingInvites returns the invites waiting for the user.
	ListPendingInvites(ctx context.Context, username string) ([]models.Invite, error)
}

// Store is the full storage backend used by the server.
// This abstraction allows swapping storage backends (SQLite, in-memory)
// without changing the service layer.
type Store interface {
	ExpenseRecords
	Membership
	UserStore
	GroupStore

	// Close releases any resources held by the store.
	Close() error
}
