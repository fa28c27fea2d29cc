// Package memory provides an in-process implementation of storage.Store,
// used for tests and for running the server without a database file.
package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/mmynk/ledgerwise/internal/models"
	"github.com/mmynk/ledgerwise/internal/storage"
)

var _ storage.Store = (*Store)(nil)

// Store keeps every collection in memory behind a single lock.
type Store struct {
	mu       sync.RWMutex
	expenses []models.Expense
	users    map[string]models.User
	groups   map[string]*models.Group
	order    []string // group IDs in creation order
	now      func() time.Time
}

// New returns an empty Store.
func New() *Store {
	return &Store{
		users:  make(map[string]models.User),
		groups: make(map[string]*models.Group),
		now:    time.Now,
	}
}

// Close is a no-op.
func (s *Store) Close() error { return nil }

func (s *Store) AppendExpense(_ context.Context, expense *models.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expenses = append(s.expenses, *expense)
	return nil
}

func (s *Store) ListExpenses(_ context.Context) ([]models.Expense, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.expenses), nil
}

func (s *Store) ReplaceExpenses(_ context.Context, expenses []models.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expenses = slices.Clone(expenses)
	return nil
}

func (s *Store) CreateUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user.Username]; ok {
		return fmt.Errorf("%w: username %q", storage.ErrAlreadyExists, user.Username)
	}
	u := *user
	u.Groups = nil
	s.users[user.Username] = u
	return nil
}

func (s *Store) GetUser(_ context.Context, username string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[username]
	if !ok {
		return nil, fmt.Errorf("%w: user %q", storage.ErrNotFound, username)
	}
	u.Groups = []string{}
	for _, id := range s.order {
		if s.groups[id].HasMember(username) {
			u.Groups = append(u.Groups, id)
		}
	}
	return &u, nil
}

func (s *Store) CreateGroup(_ context.Context, g *models.Group) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	if g.ID == "" {
		g.ID = models.NewGroupID(now, len(s.groups))
	}
	if _, ok := s.groups[g.ID]; ok {
		return fmt.Errorf("%w: group %s", storage.ErrAlreadyExists, g.ID)
	}
	if g.CreatedAt == 0 {
		g.CreatedAt = now.Unix()
	}
	g.Members = []string{g.Creator}
	g.PendingInvites = []string{}

	stored := *g
	stored.Members = slices.Clone(g.Members)
	stored.PendingInvites = []string{}
	s.groups[g.ID] = &stored
	s.order = append(s.order, g.ID)
	return nil
}

// copyGroup returns a copy the caller may keep; s.mu must be held.
func copyGroup(g *models.Group) *models.Group {
	c := *g
	c.Members = slices.Clone(g.Members)
	c.PendingInvites = slices.Clone(g.PendingInvites)
	return &c
}

func (s *Store) GetGroup(_ context.Context, groupID string) (*models.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g, ok := s.groups[groupID]
	if !ok {
		return nil, fmt.Errorf("%w: group %s", storage.ErrNotFound, groupID)
	}
	return copyGroup(g), nil
}

func (s *Store) ListGroupsForUser(_ context.Context, username string) ([]*models.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	groups := []*models.Group{}
	for _, id := range s.order {
		if g := s.groups[id]; g.HasMember(username) {
			groups = append(groups, copyGroup(g))
		}
	}
	return groups, nil
}

func (s *Store) AddInvite(_ context.Context, groupID, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.groups[groupID]
	if !ok {
		return fmt.Errorf("%w: group %s", storage.ErrNotFound, groupID)
	}
	if g.HasMember(username) {
		return fmt.Errorf("%w: %s is already a member of this group", storage.ErrAlreadyExists, username)
	}
	if g.IsInvited(username) {
		return fmt.Errorf("%w: %s has already been invited to this group", storage.ErrAlreadyExists, username)
	}
	g.PendingInvites = append(g.PendingInvites, username)
	return nil
}

func (s *Store) AcceptInvite(_ context.Context, groupID, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.groups[groupID]
	if !ok || !g.IsInvited(username) {
		return fmt.Errorf("%w: no pending invite to %s for %s", storage.ErrNotFound, groupID, username)
	}
	g.PendingInvites = slices.DeleteFunc(g.PendingInvites, func(u string) bool { return u == username })
	g.Members = append(g.Members, username)
	return nil
}

func (s *Store) ListPendingInvites(_ context.Context, username string) ([]models.Invite, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	invites := []models.Invite{}
	for _, id := range s.order {
		g := s.groups[id]
		if g.IsInvited(username) {
			invites = append(invites, models.Invite{
				GroupID:     g.ID,
				GroupName:   g.Name,
				Creator:     g.Creator,
				Description: g.Description,
			})
		}
	}
	return invites, nil
}

func (s *Store) GroupExists(_ context.Context, groupID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.groups[groupID]
	return ok, nil
}

func (s *Store) MembersOf(_ context.Context, groupID string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g, ok := s.groups[groupID]
	if !ok {
		return nil, fmt.Errorf("%w: group %s", storage.ErrNotFound, groupID)
	}
	return slices.Clone(g.Members), nil
}
