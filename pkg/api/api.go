// Package api defines the request and response messages of the Ledgerwise RPC services.
//
// Messages are plain structs carried as JSON (see package apiconnect). Dates are
// YYYY-MM-DD strings and amounts are decimals encoded as JSON strings.
package api

import "github.com/shopspring/decimal"

// User is the public view of an account.
type User struct {
	Username  string   `json:"username"`
	CreatedAt int64    `json:"createdAt"`
	Groups    []string `json:"groups"`
}

type RegisterRequest struct {
	Username        string `json:"username"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

type RegisterResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

type GetCurrentUserRequest struct{}

type GetCurrentUserResponse struct {
	User *User `json:"user"`
}

// Group is a shared ledger and its membership.
type Group struct {
	Id             string   `json:"id"`
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	Creator        string   `json:"creator"`
	Members        []string `json:"members"`
	PendingInvites []string `json:"pendingInvites"`
	CreatedAt      int64    `json:"createdAt"`
}

// Invite is a pending invitation addressed to the caller.
type Invite struct {
	GroupId     string `json:"groupId"`
	GroupName   string `json:"groupName"`
	Creator     string `json:"creator"`
	Description string `json:"description"`
}

type CreateGroupRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"max=500"`
}

type CreateGroupResponse struct {
	Group *Group `json:"group"`
}

type GetGroupRequest struct {
	GroupId string `json:"groupId"`
}

type GetGroupResponse struct {
	Group *Group `json:"group"`
}

type ListGroupsRequest struct{}

type ListGroupsResponse struct {
	Groups []*Group `json:"groups"`
}

type InviteMemberRequest struct {
	GroupId  string `json:"groupId" validate:"required"`
	Username string `json:"username" validate:"required"`
}

type InviteMemberResponse struct{}

type AcceptInviteRequest struct {
	GroupId string `json:"groupId" validate:"required"`
}

type AcceptInviteResponse struct {
	Group *Group `json:"group"`
}

type ListPendingInvitesRequest struct{}

type ListPendingInvitesResponse struct {
	Invites []*Invite `json:"invites"`
}

// ViewKind selects which slice of the ledger a request works on.
type ViewKind string

const (
	// ViewPersonal is the caller's expenses outside any group.
	ViewPersonal ViewKind = "personal"
	// ViewMine is everything the caller spent, personal or grouped.
	ViewMine ViewKind = "mine"
	// ViewGroup is every expense of one group.
	ViewGroup ViewKind = "group"
	// ViewPersonalAndGroup is the caller's personal expenses plus one group.
	ViewPersonalAndGroup ViewKind = "personal_and_group"
)

// ViewSelector carries the caller's current view with each request.
// An empty Kind means ViewPersonal.
type ViewSelector struct {
	Kind    ViewKind `json:"kind"`
	GroupId string   `json:"groupId,omitempty"`
}

// Expense is a ledger entry. Position is its index in the full ledger at the
// time it was listed and is what RemoveExpenses expects.
type Expense struct {
	Id          string          `json:"id"`
	Position    int             `json:"position"`
	Date        string          `json:"date"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Location    string          `json:"location,omitempty"`
	Description string          `json:"description,omitempty"`
	Owner       string          `json:"owner"`
	GroupId     string          `json:"groupId,omitempty"`
	CreatedAt   int64           `json:"createdAt"`
}

type AddExpenseRequest struct {
	Date        string          `json:"date"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Location    string          `json:"location,omitempty"`
	Description string          `json:"description,omitempty"`
	// Owner is the spender; defaults to the caller.
	Owner   string `json:"owner,omitempty"`
	GroupId string `json:"groupId,omitempty"`
}

type AddExpenseResponse struct {
	Expense *Expense `json:"expense"`
}

type ListExpensesRequest struct {
	View ViewSelector `json:"view"`
	From string       `json:"from,omitempty"`
	To   string       `json:"to,omitempty"`
}

type ListExpensesResponse struct {
	Expenses []*Expense `json:"expenses"`
}

type RemoveExpensesRequest struct {
	Positions []int `json:"positions"`
}

type RemoveExpensesResponse struct {
	Removed []*Expense `json:"removed"`
}

// Stats summarizes a view. TopCategory is "N/A" for an empty view.
type Stats struct {
	Total       decimal.Decimal `json:"total"`
	Mean        decimal.Decimal `json:"mean"`
	Count       int             `json:"count"`
	TopCategory string          `json:"topCategory"`
	ThisMonth   decimal.Decimal `json:"thisMonth"`
	LastMonth   decimal.Decimal `json:"lastMonth"`
}

type GetStatsRequest struct {
	View ViewSelector `json:"view"`
	// ReferenceDate anchors "this month"; defaults to today.
	ReferenceDate string `json:"referenceDate,omitempty"`
}

type GetStatsResponse struct {
	Stats *Stats `json:"stats"`
}

type CategoryShare struct {
	Category   string          `json:"category"`
	Total      decimal.Decimal `json:"total"`
	Percentage decimal.Decimal `json:"percentage"`
}

type GetCategoryBreakdownRequest struct {
	View ViewSelector `json:"view"`
}

type GetCategoryBreakdownResponse struct {
	Categories []*CategoryShare `json:"categories"`
}

type MemberShare struct {
	Member     string          `json:"member"`
	Spent      decimal.Decimal `json:"spent"`
	Count      int             `json:"count"`
	Mean       decimal.Decimal `json:"mean"`
	Percentage decimal.Decimal `json:"percentage"`
}

type GetMemberBreakdownRequest struct {
	GroupId string `json:"groupId"`
}

type GetMemberBreakdownResponse struct {
	Members []*MemberShare `json:"members"`
}

type MemberBalance struct {
	Member     string          `json:"member"`
	Spent      decimal.Decimal `json:"spent"`
	FairShare  decimal.Decimal `json:"fairShare"`
	NetBalance decimal.Decimal `json:"netBalance"`
}

type Transfer struct {
	From   string          `json:"from"`
	To     string          `json:"to"`
	Amount decimal.Decimal `json:"amount"`
}

type GetSettlementRequest struct {
	GroupId string `json:"groupId"`
}

type GetSettlementResponse struct {
	Total     decimal.Decimal  `json:"total"`
	FairShare decimal.Decimal  `json:"fairShare"`
	Balances  []*MemberBalance `json:"balances"`
	Transfers []*Transfer      `json:"transfers"`
}

type ListCategoriesRequest struct {
	Grouped bool `json:"grouped"`
}

type ListCategoriesResponse struct {
	Categories []string `json:"categories"`
}
