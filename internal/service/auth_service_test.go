package service

import (
	"context"
	"testing"

	"connectrpc.com/connect"

	"github.com/mmynk/ledgerwise/pkg/api"
)

func TestRegister(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()

	resp, err := env.auth.Register(ctx, connect.NewRequest(&api.RegisterRequest{
		Username:        "alice",
		Password:        testPassword,
		ConfirmPassword: testPassword,
	}))
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if resp.Msg.Token == "" {
		t.Error("expected a token")
	}
	if resp.Msg.User.Username != "alice" {
		t.Errorf("username: expected 'alice', got '%s'", resp.Msg.User.Username)
	}
	if resp.Msg.User.CreatedAt == 0 {
		t.Error("expected non-zero CreatedAt")
	}

	tests := []struct {
		name     string
		req      *api.RegisterRequest
		wantCode connect.Code
	}{
		{
			name:     "duplicate username",
			req:      &api.RegisterRequest{Username: "alice", Password: testPassword, ConfirmPassword: testPassword},
			wantCode: connect.CodeAlreadyExists,
		},
		{
			name:     "confirmation mismatch",
			req:      &api.RegisterRequest{Username: "bob", Password: testPassword, ConfirmPassword: "Passw0rd?"},
			wantCode: connect.CodeInvalidArgument,
		},
		{
			name:     "weak password",
			req:      &api.RegisterRequest{Username: "bob", Password: "password", ConfirmPassword: "password"},
			wantCode: connect.CodeInvalidArgument,
		},
		{
			name:     "empty username",
			req:      &api.RegisterRequest{Password: testPassword, ConfirmPassword: testPassword},
			wantCode: connect.CodeInvalidArgument,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.auth.Register(ctx, connect.NewRequest(tt.req))
			expectCode(t, err, tt.wantCode)
		})
	}
}

func TestLogin(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()
	env.register(t, "alice")

	resp, err := env.auth.Login(ctx, connect.NewRequest(&api.LoginRequest{Username: "alice", Password: testPassword}))
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if resp.Msg.Token == "" {
		t.Error("expected a token")
	}

	_, err = env.auth.Login(ctx, connect.NewRequest(&api.LoginRequest{Username: "alice", Password: "Wr0ng!pass"}))
	expectCode(t, err, connect.CodeUnauthenticated)

	_, err = env.auth.Login(ctx, connect.NewRequest(&api.LoginRequest{Username: "nobody", Password: testPassword}))
	expectCode(t, err, connect.CodeUnauthenticated)

	_, err = env.auth.Login(ctx, connect.NewRequest(&api.LoginRequest{Username: "alice"}))
	expectCode(t, err, connect.CodeInvalidArgument)
}

func TestGetCurrentUser(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()
	aliceToken := env.register(t, "alice")
	bobToken := env.register(t, "bob")

	_, err := env.auth.GetCurrentUser(ctx, connect.NewRequest(&api.GetCurrentUserRequest{}))
	expectCode(t, err, connect.CodeUnauthenticated)

	groupID := env.createGroup(t, "Flat", aliceToken, map[string]string{"bob": bobToken})

	resp, err := env.auth.GetCurrentUser(ctx, authed(&api.GetCurrentUserRequest{}, bobToken))
	if err != nil {
		t.Fatalf("GetCurrentUser failed: %v", err)
	}
	if resp.Msg.User.Username != "bob" {
		t.Errorf("username: expected 'bob', got '%s'", resp.Msg.User.Username)
	}
	if len(resp.Msg.User.Groups) != 1 || resp.Msg.User.Groups[0] != groupID {
		t.Errorf("groups: expected [%s], got %v", groupID, resp.Msg.User.Groups)
	}
}
