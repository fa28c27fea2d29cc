package ledger

import (
	"fmt"

	"github.com/mmynk/ledgerwise/internal/models"
)

type filterKind int

const (
	filterAll filterKind = iota
	filterOwner
	filterGroup
	filterPersonal
	filterPersonalAndGroup
)

// Filter selects which expenses a View contains.
type Filter struct {
	kind    filterKind
	owner   string
	groupID string
}

// All matches every expense.
func All() Filter { return Filter{kind: filterAll} }

// ByOwner matches every expense spent by username, personal or grouped.
func ByOwner(username string) Filter { return Filter{kind: filterOwner, owner: username} }

// ByGroup matches every expense charged to the group, whoever spent it.
func ByGroup(groupID string) Filter { return Filter{kind: filterGroup, groupID: groupID} }

// PersonalOnly matches username's expenses that belong to no group.
func PersonalOnly(username string) Filter { return Filter{kind: filterPersonal, owner: username} }

// PersonalAndGroup matches username's personal expenses plus every expense of the group.
func PersonalAndGroup(username, groupID string) Filter {
	return Filter{kind: filterPersonalAndGroup, owner: username, groupID: groupID}
}

// GroupID returns the group the filter is scoped to, or "".
func (f Filter) GroupID() string { return f.groupID }

// Match reports whether e is selected by the filter.
func (f Filter) Match(e models.Expense) bool {
	switch f.kind {
	case filterOwner:
		return e.Owner == f.owner
	case filterGroup:
		return e.GroupID == f.groupID
	case filterPersonal:
		return e.Owner == f.owner && e.IsPersonal()
	case filterPersonalAndGroup:
		return (e.Owner == f.owner && e.IsPersonal()) || e.GroupID == f.groupID
	default:
		return true
	}
}

func (f Filter) validate() error {
	switch f.kind {
	case filterOwner, filterPersonal:
		if f.owner == "" {
			return fmt.Errorf("%w: owner is required", ErrValidation)
		}
	case filterGroup:
		if f.groupID == "" {
			return fmt.Errorf("%w: group is required", ErrValidation)
		}
	case filterPersonalAndGroup:
		if f.owner == "" || f.groupID == "" {
			return fmt.Errorf("%w: owner and group are required", ErrValidation)
		}
	}
	return nil
}

func (f Filter) String() string {
	switch f.kind {
	case filterOwner:
		return "owner:" + f.owner
	case filterGroup:
		return "group:" + f.groupID
	case filterPersonal:
		return "personal:" + f.owner
	case filterPersonalAndGroup:
		return "personal:" + f.owner + "+group:" + f.groupID
	default:
		return "all"
	}
}
