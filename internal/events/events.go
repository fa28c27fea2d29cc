// Package events publishes ledger and group activity to a message broker.
package events

import (
	"context"
	"time"
)

// Type is the routing key of an event.
type Type string

const (
	ExpenseAdded        Type = "expense.added"
	ExpensesRemoved     Type = "expenses.removed"
	GroupCreated        Type = "group.created"
	GroupInviteSent     Type = "group.invite_sent"
	GroupInviteAccepted Type = "group.invite_accepted"
)

// Event describes one state change. Only the fields relevant to Type are set.
type Event struct {
	Type       Type      `json:"type"`
	Actor      string    `json:"actor"`
	GroupID    string    `json:"groupId,omitempty"`
	Username   string    `json:"username,omitempty"`
	ExpenseIDs []string  `json:"expenseIds,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

// New returns an event of type t stamped with the current time.
func New(t Type, actor string) Event {
	return Event{Type: t, Actor: actor, OccurredAt: time.Now().UTC()}
}

// Publisher delivers events. Implementations must be safe for concurrent use.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// Nop discards every event.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }

func (Nop) Close() error { return nil }
