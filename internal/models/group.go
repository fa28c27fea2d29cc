package models

import (
	"fmt"
	"time"
)

// Group is a shared ledger.
//
// The creator is a member from the moment the group exists, so Members is never
// empty. Members only grows, by accepting an invite. A username is in
// PendingInvites only while it is not in Members.
type Group struct {
	// ID is the unique identifier for the group (see NewGroupID).
	ID string

	// Name is the display name of the group (e.g., "Lisbon 2024").
	Name string

	// Description is an optional note about the group.
	Description string

	// Creator is the username that created the group.
	Creator string

	// Members is the list of member usernames, in join order.
	Members []string

	// PendingInvites is the list of invited usernames that have not accepted yet.
	PendingInvites []string

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64
}

// HasMember reports whether username is a member of the group.
func (g *Group) HasMember(username string) bool {
	for _, m := range g.Members {
		if m == username {
			return true
		}
	}
	return false
}

// IsInvited reports whether username has a pending invite to the group.
func (g *Group) IsInvited(username string) bool {
	for _, u := range g.PendingInvites {
		if u == username {
			return true
		}
	}
	return false
}

// NewGroupID builds a group ID of the form group_<YYYYmmddHHMMSS>_<n>, where n is
// the number of groups that existed before this one.
func NewGroupID(now time.Time, existing int) string {
	return fmt.Sprintf("group_%s_%d", now.UTC().Format("20060102150405"), existing)
}

// Invite is a pending invitation as listed for the invited user.
type Invite struct {
	GroupID     string
	GroupName   string
	Creator     string
	Description string
}
