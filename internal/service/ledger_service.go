package service

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/ledgerwise/internal/calculator"
	"github.com/mmynk/ledgerwise/internal/events"
	"github.com/mmynk/ledgerwise/internal/ledger"
	"github.com/mmynk/ledgerwise/internal/models"
	"github.com/mmynk/ledgerwise/internal/storage"
	"github.com/mmynk/ledgerwise/pkg/api"
	"github.com/mmynk/ledgerwise/pkg/api/apiconnect"
)

// LedgerService implements the Connect LedgerService
type LedgerService struct {
	apiconnect.UnimplementedLedgerServiceHandler
	ledger    *ledger.Ledger
	members   storage.Membership
	publisher events.Publisher
	now       func() time.Time
}

// NewLedgerService creates a LedgerService over the given ledger and membership lookup.
func NewLedgerService(l *ledger.Ledger, members storage.Membership, publisher events.Publisher) *LedgerService {
	return &LedgerService{
		ledger:    l,
		members:   members,
		publisher: publisher,
		now:       time.Now,
	}
}

// requireMember returns the group's members if username is one of them.
func (s *LedgerService) requireMember(ctx context.Context, groupID, username string) ([]string, error) {
	if groupID == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("group_id required"))
	}
	members, err := s.members.MembersOf(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !slices.Contains(members, username) {
		return nil, errNotMember
	}
	return members, nil
}

// resolveFilter turns the caller's view selector into a ledger filter.
// Group views are only available to members of the group.
func (s *LedgerService) resolveFilter(ctx context.Context, username string, sel api.ViewSelector) (ledger.Filter, error) {
	switch sel.Kind {
	case "", api.ViewPersonal:
		return ledger.PersonalOnly(username), nil
	case api.ViewMine:
		return ledger.ByOwner(username), nil
	case api.ViewGroup:
		if _, err := s.requireMember(ctx, sel.GroupId, username); err != nil {
			return ledger.Filter{}, err
		}
		return ledger.ByGroup(sel.GroupId), nil
	case api.ViewPersonalAndGroup:
		if _, err := s.requireMember(ctx, sel.GroupId, username); err != nil {
			return ledger.Filter{}, err
		}
		return ledger.PersonalAndGroup(username, sel.GroupId), nil
	default:
		return ledger.Filter{}, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("unknown view %q", sel.Kind))
	}
}

// queryView authenticates the caller and returns the view they selected.
func (s *LedgerService) queryView(ctx context.Context, sel api.ViewSelector) (ledger.View, error) {
	username, err := callerFrom(ctx)
	if err != nil {
		return ledger.View{}, err
	}
	filter, err := s.resolveFilter(ctx, username, sel)
	if err != nil {
		return ledger.View{}, err
	}
	return s.ledger.Query(ctx, filter)
}

// AddExpense appends an expense to the ledger.
//
// A personal expense is always the caller's own. A group expense may name any
// member as the spender, but only a member can record it.
func (s *LedgerService) AddExpense(ctx context.Context, req *connect.Request[api.AddExpenseRequest]) (*connect.Response[api.AddExpenseResponse], error) {
	username, err := callerFrom(ctx)
	if err != nil {
		return nil, err
	}

	slog.Info("AddExpense request received",
		"user", username,
		"group_id", req.Msg.GroupId,
		"amount", req.Msg.Amount,
		"category", req.Msg.Category,
	)

	date, err := parseOptionalDate(req.Msg.Date)
	if err != nil {
		return nil, err
	}

	owner := req.Msg.Owner
	if owner == "" {
		owner = username
	}
	if req.Msg.GroupId == "" && owner != username {
		return nil, connect.NewError(connect.CodePermissionDenied, errNotOwner)
	}
	if req.Msg.GroupId != "" {
		if _, err := s.requireMember(ctx, req.Msg.GroupId, username); err != nil {
			slog.Warn("AddExpense rejected", "group_id", req.Msg.GroupId, "error", err)
			return nil, toConnectError(err)
		}
	}

	expense := &models.Expense{
		Date:        date,
		Amount:      req.Msg.Amount,
		Category:    req.Msg.Category,
		Location:    req.Msg.Location,
		Description: req.Msg.Description,
		Owner:       owner,
		GroupID:     req.Msg.GroupId,
	}

	// Save to ledger (generates ID and CreatedAt)
	if err := s.ledger.Append(ctx, expense); err != nil {
		slog.Warn("AddExpense failed", "error", err)
		return nil, toConnectError(err)
	}

	position, err := s.positionOf(ctx, expense.ID)
	if err != nil {
		slog.Error("Failed to locate appended expense", "expense_id", expense.ID, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Expense added", "expense_id", expense.ID, "position", position)

	ev := events.New(events.ExpenseAdded, username)
	ev.GroupID = expense.GroupID
	ev.ExpenseIDs = []string{expense.ID}
	publish(ctx, s.publisher, ev)

	return connect.NewResponse(&api.AddExpenseResponse{Expense: toAPIExpense(position, *expense)}), nil
}

// positionOf finds the current position of the expense with the given ID.
func (s *LedgerService) positionOf(ctx context.Context, id string) (int, error) {
	view, err := s.ledger.Query(ctx, ledger.All())
	if err != nil {
		return 0, err
	}
	for pos, e := range view.All() {
		if e.ID == id {
			return pos, nil
		}
	}
	return 0, fmt.Errorf("%w: expense %s", storage.ErrNotFound, id)
}

// ListExpenses returns the expenses of the selected view, optionally narrowed to a date window.
func (s *LedgerService) ListExpenses(ctx context.Context, req *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error) {
	slog.Info("ListExpenses request received",
		"view", req.Msg.View.Kind,
		"group_id", req.Msg.View.GroupId,
		"from", req.Msg.From,
		"to", req.Msg.To,
	)

	from, err := parseOptionalDate(req.Msg.From)
	if err != nil {
		return nil, err
	}
	to, err := parseOptionalDate(req.Msg.To)
	if err != nil {
		return nil, err
	}

	view, err := s.queryView(ctx, req.Msg.View)
	if err != nil {
		slog.Warn("ListExpenses failed", "error", err)
		return nil, toConnectError(err)
	}

	expenses := []*api.Expense{}
	for pos, e := range view.Between(from, to).All() {
		expenses = append(expenses, toAPIExpense(pos, e))
	}

	slog.Info("ListExpenses successful", "count", len(expenses))

	return connect.NewResponse(&api.ListExpensesResponse{Expenses: expenses}), nil
}

// RemoveExpenses deletes expenses by their position in the full ledger.
// The caller must own every personal expense targeted and belong to the group
// of every group expense targeted; otherwise nothing is removed.
func (s *LedgerService) RemoveExpenses(ctx context.Context, req *connect.Request[api.RemoveExpensesRequest]) (*connect.Response[api.RemoveExpensesResponse], error) {
	username, err := callerFrom(ctx)
	if err != nil {
		return nil, err
	}

	slog.Info("RemoveExpenses request received", "user", username, "positions", req.Msg.Positions)

	authorize := func(e models.Expense) error {
		if e.IsPersonal() {
			if e.Owner != username {
				return errNotOwner
			}
			return nil
		}
		_, err := s.requireMember(ctx, e.GroupID, username)
		return err
	}

	removed, err := s.ledger.RemoveByPositions(ctx, req.Msg.Positions, authorize)
	if err != nil {
		slog.Warn("RemoveExpenses failed", "error", err)
		return nil, toConnectError(err)
	}

	// Positions refer to the ledger before removal.
	positions := slices.Clone(req.Msg.Positions)
	slices.Sort(positions)
	positions = slices.Compact(positions)

	resp := make([]*api.Expense, len(removed))
	ids := make([]string, len(removed))
	for i, e := range removed {
		resp[i] = toAPIExpense(positions[i], e)
		ids[i] = e.ID
	}

	slog.Info("Expenses removed", "count", len(removed))

	if len(removed) > 0 {
		ev := events.New(events.ExpensesRemoved, username)
		ev.ExpenseIDs = ids
		publish(ctx, s.publisher, ev)
	}

	return connect.NewResponse(&api.RemoveExpensesResponse{Removed: resp}), nil
}

// GetStats summarizes the selected view.
func (s *LedgerService) GetStats(ctx context.Context, req *connect.Request[api.GetStatsRequest]) (*connect.Response[api.GetStatsResponse], error) {
	slog.Info("GetStats request received", "view", req.Msg.View.Kind, "reference_date", req.Msg.ReferenceDate)

	ref, err := parseOptionalDate(req.Msg.ReferenceDate)
	if err != nil {
		return nil, err
	}
	if ref.IsZero() {
		ref = models.DateOf(s.now())
	}

	view, err := s.queryView(ctx, req.Msg.View)
	if err != nil {
		slog.Warn("GetStats failed", "error", err)
		return nil, toConnectError(err)
	}

	stats := calculator.ComputeStats(view.Expenses(), ref)

	return connect.NewResponse(&api.GetStatsResponse{
		Stats: &api.Stats{
			Total:       stats.Total,
			Mean:        stats.Mean,
			Count:       stats.Count,
			TopCategory: stats.TopCategory,
			ThisMonth:   stats.ThisMonth,
			LastMonth:   stats.LastMonth,
		},
	}), nil
}

// GetCategoryBreakdown reports per-category sums of the selected view.
func (s *LedgerService) GetCategoryBreakdown(ctx context.Context, req *connect.Request[api.GetCategoryBreakdownRequest]) (*connect.Response[api.GetCategoryBreakdownResponse], error) {
	slog.Info("GetCategoryBreakdown request received", "view", req.Msg.View.Kind)

	view, err := s.queryView(ctx, req.Msg.View)
	if err != nil {
		slog.Warn("GetCategoryBreakdown failed", "error", err)
		return nil, toConnectError(err)
	}

	shares := calculator.CategoryBreakdown(view.Expenses())
	categories := make([]*api.CategoryShare, len(shares))
	for i, c := range shares {
		categories[i] = &api.CategoryShare{
			Category:   c.Category,
			Total:      c.Total,
			Percentage: c.Percentage,
		}
	}

	return connect.NewResponse(&api.GetCategoryBreakdownResponse{Categories: categories}), nil
}

// GetMemberBreakdown reports how much each member of a group spent for it.
func (s *LedgerService) GetMemberBreakdown(ctx context.Context, req *connect.Request[api.GetMemberBreakdownRequest]) (*connect.Response[api.GetMemberBreakdownResponse], error) {
	slog.Info("GetMemberBreakdown request received", "group_id", req.Msg.GroupId)

	view, err := s.queryView(ctx, api.ViewSelector{Kind: api.ViewGroup, GroupId: req.Msg.GroupId})
	if err != nil {
		slog.Warn("GetMemberBreakdown failed", "group_id", req.Msg.GroupId, "error", err)
		return nil, toConnectError(err)
	}

	shares := calculator.MemberBreakdown(view.Expenses())
	members := make([]*api.MemberShare, len(shares))
	for i, m := range shares {
		members[i] = &api.MemberShare{
			Member:     m.Member,
			Spent:      m.Spent,
			Count:      m.Count,
			Mean:       m.Mean,
			Percentage: m.Percentage,
		}
	}

	return connect.NewResponse(&api.GetMemberBreakdownResponse{Members: members}), nil
}

// GetSettlement splits a group's spending equally and suggests who pays whom.
func (s *LedgerService) GetSettlement(ctx context.Context, req *connect.Request[api.GetSettlementRequest]) (*connect.Response[api.GetSettlementResponse], error) {
	username, err := callerFrom(ctx)
	if err != nil {
		return nil, err
	}

	groupID := req.Msg.GroupId
	slog.Info("GetSettlement request received", "group_id", groupID)

	members, err := s.requireMember(ctx, groupID, username)
	if err != nil {
		slog.Warn("GetSettlement failed", "group_id", groupID, "error", err)
		return nil, toConnectError(err)
	}

	view, err := s.ledger.Query(ctx, ledger.ByGroup(groupID))
	if err != nil {
		slog.Error("GetSettlement failed - could not query ledger", "group_id", groupID, "error", err)
		return nil, toConnectError(err)
	}

	settlement, err := calculator.Settle(view.Expenses(), members)
	if err != nil {
		slog.Error("GetSettlement failed - calculation error", "group_id", groupID, "error", err)
		return nil, toConnectError(err)
	}
	transfers := calculator.Transfers(settlement.Balances)

	balances := make([]*api.MemberBalance, len(settlement.Balances))
	for i, b := range settlement.Balances {
		balances[i] = &api.MemberBalance{
			Member:     b.Member,
			Spent:      b.Spent,
			FairShare:  b.FairShare,
			NetBalance: b.NetBalance,
		}
	}

	apiTransfers := make([]*api.Transfer, len(transfers))
	for i, t := range transfers {
		apiTransfers[i] = &api.Transfer{From: t.From, To: t.To, Amount: t.Amount}
	}

	slog.Info("GetSettlement successful",
		"group_id", groupID,
		"members_count", len(balances),
		"transfers_count", len(transfers),
	)

	return connect.NewResponse(&api.GetSettlementResponse{
		Total:     settlement.Total,
		FairShare: settlement.FairShare,
		Balances:  balances,
		Transfers: apiTransfers,
	}), nil
}

// ListCategories returns the suggested categories for personal or group expenses.
func (s *LedgerService) ListCategories(ctx context.Context, req *connect.Request[api.ListCategoriesRequest]) (*connect.Response[api.ListCategoriesResponse], error) {
	categories := models.PersonalCategories
	if req.Msg.Grouped {
		categories = models.GroupCategories
	}
	return connect.NewResponse(&api.ListCategoriesResponse{Categories: slices.Clone(categories)}), nil
}
