package service

import (
	"context"
	"errors"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/ledgerwise/internal/auth"
	"github.com/mmynk/ledgerwise/internal/calculator"
	"github.com/mmynk/ledgerwise/internal/events"
	"github.com/mmynk/ledgerwise/internal/ledger"
	"github.com/mmynk/ledgerwise/internal/middleware"
	"github.com/mmynk/ledgerwise/internal/models"
	"github.com/mmynk/ledgerwise/internal/storage"
	"github.com/mmynk/ledgerwise/pkg/api"
)

var (
	errNotMember = errors.New("you are not a member of this group")
	errNotOwner  = errors.New("expense belongs to another user")
)

// callerFrom returns the authenticated username set by the auth interceptor.
func callerFrom(ctx context.Context) (string, error) {
	username := middleware.GetUsername(ctx)
	if username == "" {
		return "", connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}
	return username, nil
}

// toConnectError maps domain errors onto Connect codes. Anything unrecognized
// is treated as an internal failure.
func toConnectError(err error) *connect.Error {
	var connectErr *connect.Error
	if errors.As(err, &connectErr) {
		return connectErr
	}

	switch {
	case errors.Is(err, ledger.ErrValidation):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.Is(err, storage.ErrNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, storage.ErrAlreadyExists):
		return connect.NewError(connect.CodeAlreadyExists, err)
	case errors.Is(err, errNotMember), errors.Is(err, errNotOwner):
		return connect.NewError(connect.CodePermissionDenied, err)
	case errors.Is(err, calculator.ErrDivisionUndefined):
		return connect.NewError(connect.CodeFailedPrecondition, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}

// publish sends event and only logs a failure; the RPC has already succeeded.
func publish(ctx context.Context, publisher events.Publisher, event events.Event) {
	if err := publisher.Publish(ctx, event); err != nil {
		slog.Warn("Failed to publish event", "type", event.Type, "error", err)
	}
}

func toAPIUser(u *models.User) *api.User {
	groups := u.Groups
	if groups == nil {
		groups = []string{}
	}
	return &api.User{
		Username:  u.Username,
		CreatedAt: u.CreatedAt,
		Groups:    groups,
	}
}

func toAPIGroup(g *models.Group) *api.Group {
	pending := g.PendingInvites
	if pending == nil {
		pending = []string{}
	}
	return &api.Group{
		Id:             g.ID,
		Name:           g.Name,
		Description:    g.Description,
		Creator:        g.Creator,
		Members:        g.Members,
		PendingInvites: pending,
		CreatedAt:      g.CreatedAt,
	}
}

func toAPIExpense(position int, e models.Expense) *api.Expense {
	return &api.Expense{
		Id:          e.ID,
		Position:    position,
		Date:        e.Date.String(),
		Amount:      e.Amount,
		Category:    e.Category,
		Location:    e.Location,
		Description: e.Description,
		Owner:       e.Owner,
		GroupId:     e.GroupID,
		CreatedAt:   e.CreatedAt,
	}
}

// parseOptionalDate parses s, treating "" as the zero date.
func parseOptionalDate(s string) (models.Date, error) {
	if s == "" {
		return models.Date{}, nil
	}
	d, err := models.ParseDate(s)
	if err != nil {
		return models.Date{}, connect.NewError(connect.CodeInvalidArgument, err)
	}
	return d, nil
}
