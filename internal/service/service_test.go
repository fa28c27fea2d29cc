package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/ledgerwise/internal/auth"
	"github.com/mmynk/ledgerwise/internal/events"
	"github.com/mmynk/ledgerwise/internal/ledger"
	"github.com/mmynk/ledgerwise/internal/middleware"
	"github.com/mmynk/ledgerwise/internal/storage/sqlite"
	"github.com/mmynk/ledgerwise/pkg/api"
	"github.com/mmynk/ledgerwise/pkg/api/apiconnect"
)

const testPassword = "Passw0rd!"

// recordingPublisher keeps every published event.
type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, ev events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, ev)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) types() []events.Type {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]events.Type, len(p.events))
	for i, ev := range p.events {
		out[i] = ev.Type
	}
	return out
}

type testEnv struct {
	auth      apiconnect.AuthServiceClient
	groups    apiconnect.GroupServiceClient
	ledger    apiconnect.LedgerServiceClient
	publisher *recordingPublisher
}

// setupTestServer wires all three services over a temporary SQLite database,
// with the same interceptors the server uses.
func setupTestServer(t *testing.T) *testEnv {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	publisher := &recordingPublisher{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	authSvc := NewAuthService(auth.NewPasswordAuthenticator(store), store, jwtManager, logger)
	groupSvc := NewGroupService(store, publisher)
	ledgerSvc := NewLedgerService(ledger.New(store, store), store, publisher)

	authPath, authHandler := apiconnect.NewAuthServiceHandler(authSvc,
		connect.WithInterceptors(middleware.OptionalAuth(jwtManager)))
	groupPath, groupHandler := apiconnect.NewGroupServiceHandler(groupSvc,
		connect.WithInterceptors(middleware.RequireAuth(jwtManager)))
	ledgerPath, ledgerHandler := apiconnect.NewLedgerServiceHandler(ledgerSvc,
		connect.WithInterceptors(middleware.RequireAuth(jwtManager)))

	mux := http.NewServeMux()
	mux.Handle(authPath, authHandler)
	mux.Handle(groupPath, groupHandler)
	mux.Handle(ledgerPath, ledgerHandler)

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return &testEnv{
		auth:      apiconnect.NewAuthServiceClient(http.DefaultClient, server.URL),
		groups:    apiconnect.NewGroupServiceClient(http.DefaultClient, server.URL),
		ledger:    apiconnect.NewLedgerServiceClient(http.DefaultClient, server.URL),
		publisher: publisher,
	}
}

// register creates an account and returns its token.
func (e *testEnv) register(t *testing.T, username string) string {
	t.Helper()
	resp, err := e.auth.Register(context.Background(), connect.NewRequest(&api.RegisterRequest{
		Username:        username,
		Password:        testPassword,
		ConfirmPassword: testPassword,
	}))
	if err != nil {
		t.Fatalf("Register(%s) failed: %v", username, err)
	}
	return resp.Msg.Token
}

// createGroup creates a group owned by the token's user and has every other
// token join it. It returns the group ID.
func (e *testEnv) createGroup(t *testing.T, name, ownerToken string, joiners map[string]string) string {
	t.Helper()
	ctx := context.Background()

	resp, err := e.groups.CreateGroup(ctx, authed(&api.CreateGroupRequest{Name: name}, ownerToken))
	if err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}
	groupID := resp.Msg.Group.Id

	for username, token := range joiners {
		if _, err := e.groups.InviteMember(ctx, authed(&api.InviteMemberRequest{GroupId: groupID, Username: username}, ownerToken)); err != nil {
			t.Fatalf("InviteMember(%s) failed: %v", username, err)
		}
		if _, err := e.groups.AcceptInvite(ctx, authed(&api.AcceptInviteRequest{GroupId: groupID}, token)); err != nil {
			t.Fatalf("AcceptInvite(%s) failed: %v", username, err)
		}
	}
	return groupID
}

// authed wraps msg in a request carrying the bearer token.
func authed[T any](msg *T, token string) *connect.Request[T] {
	req := connect.NewRequest(msg)
	if token != "" {
		req.Header().Set("Authorization", "Bearer "+token)
	}
	return req
}

// expectCode fails the test unless err is a Connect error with the given code.
func expectCode(t *testing.T, err error, want connect.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %v error, got nil", want)
	}
	var connectErr *connect.Error
	if !errors.As(err, &connectErr) {
		t.Fatalf("expected connect.Error, got %T", err)
	}
	if connectErr.Code() != want {
		t.Errorf("expected %v, got %v (%s)", want, connectErr.Code(), connectErr.Message())
	}
}
