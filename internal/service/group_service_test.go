package service

import (
	"context"
	"errors"
	"slices"
	"strings"
	"testing"

	"connectrpc.com/connect"

	"github.com/mmynk/ledgerwise/internal/events"
	"github.com/mmynk/ledgerwise/pkg/api"
)

func TestCreateGroup(t *testing.T) {
	env := setupTestServer(t)
	token := env.register(t, "alice")

	resp, err := env.groups.CreateGroup(context.Background(), authed(&api.CreateGroupRequest{
		Name:        "Lisbon 2024",
		Description: "Spring trip",
	}, token))
	if err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}

	group := resp.Msg.Group
	if !strings.HasPrefix(group.Id, "group_") {
		t.Errorf("expected group_ prefix, got '%s'", group.Id)
	}
	if group.Creator != "alice" {
		t.Errorf("creator: expected 'alice', got '%s'", group.Creator)
	}
	if !slices.Equal(group.Members, []string{"alice"}) {
		t.Errorf("members: expected [alice], got %v", group.Members)
	}
	if len(group.PendingInvites) != 0 {
		t.Errorf("expected no pending invites, got %v", group.PendingInvites)
	}
	if group.CreatedAt == 0 {
		t.Error("expected non-zero CreatedAt")
	}

	if got := env.publisher.types(); !slices.Equal(got, []events.Type{events.GroupCreated}) {
		t.Errorf("events: expected [group.created], got %v", got)
	}
}

func TestCreateGroup_Validation(t *testing.T) {
	env := setupTestServer(t)
	token := env.register(t, "alice")

	_, err := env.groups.CreateGroup(context.Background(), authed(&api.CreateGroupRequest{}, token))
	expectCode(t, err, connect.CodeInvalidArgument)

	_, err = env.groups.CreateGroup(context.Background(), authed(&api.CreateGroupRequest{Name: "No token"}, ""))
	expectCode(t, err, connect.CodeUnauthenticated)
}

func TestGroupInviteFlow(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()
	aliceToken := env.register(t, "alice")
	bobToken := env.register(t, "bob")
	carolToken := env.register(t, "carol")

	createResp, err := env.groups.CreateGroup(ctx, authed(&api.CreateGroupRequest{Name: "Flat"}, aliceToken))
	if err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}
	groupID := createResp.Msg.Group.Id

	// Non-members can neither read nor invite.
	_, err = env.groups.GetGroup(ctx, authed(&api.GetGroupRequest{GroupId: groupID}, bobToken))
	expectCode(t, err, connect.CodePermissionDenied)
	_, err = env.groups.InviteMember(ctx, authed(&api.InviteMemberRequest{GroupId: groupID, Username: "carol"}, bobToken))
	expectCode(t, err, connect.CodePermissionDenied)

	_, err = env.groups.InviteMember(ctx, authed(&api.InviteMemberRequest{GroupId: groupID, Username: "nobody"}, aliceToken))
	expectCode(t, err, connect.CodeNotFound)

	_, err = env.groups.InviteMember(ctx, authed(&api.InviteMemberRequest{GroupId: "group_missing", Username: "bob"}, aliceToken))
	expectCode(t, err, connect.CodeNotFound)

	if _, err := env.groups.InviteMember(ctx, authed(&api.InviteMemberRequest{GroupId: groupID, Username: "bob"}, aliceToken)); err != nil {
		t.Fatalf("InviteMember failed: %v", err)
	}

	_, err = env.groups.InviteMember(ctx, authed(&api.InviteMemberRequest{GroupId: groupID, Username: "bob"}, aliceToken))
	expectCode(t, err, connect.CodeAlreadyExists)
	_, err = env.groups.InviteMember(ctx, authed(&api.InviteMemberRequest{GroupId: groupID, Username: "alice"}, aliceToken))
	expectCode(t, err, connect.CodeAlreadyExists)

	invitesResp, err := env.groups.ListPendingInvites(ctx, authed(&api.ListPendingInvitesRequest{}, bobToken))
	if err != nil {
		t.Fatalf("ListPendingInvites failed: %v", err)
	}
	if len(invitesResp.Msg.Invites) != 1 {
		t.Fatalf("expected 1 invite, got %d", len(invitesResp.Msg.Invites))
	}
	invite := invitesResp.Msg.Invites[0]
	if invite.GroupId != groupID || invite.GroupName != "Flat" || invite.Creator != "alice" {
		t.Errorf("unexpected invite: %+v", invite)
	}

	// Carol was never invited.
	_, err = env.groups.AcceptInvite(ctx, authed(&api.AcceptInviteRequest{GroupId: groupID}, carolToken))
	expectCode(t, err, connect.CodeNotFound)

	acceptResp, err := env.groups.AcceptInvite(ctx, authed(&api.AcceptInviteRequest{GroupId: groupID}, bobToken))
	if err != nil {
		t.Fatalf("AcceptInvite failed: %v", err)
	}
	if !slices.Equal(acceptResp.Msg.Group.Members, []string{"alice", "bob"}) {
		t.Errorf("members: expected [alice bob], got %v", acceptResp.Msg.Group.Members)
	}
	if len(acceptResp.Msg.Group.PendingInvites) != 0 {
		t.Errorf("expected invite to be consumed, got %v", acceptResp.Msg.Group.PendingInvites)
	}

	_, err = env.groups.AcceptInvite(ctx, authed(&api.AcceptInviteRequest{GroupId: groupID}, bobToken))
	expectCode(t, err, connect.CodeNotFound)

	// Bob is a member now.
	getResp, err := env.groups.GetGroup(ctx, authed(&api.GetGroupRequest{GroupId: groupID}, bobToken))
	if err != nil {
		t.Fatalf("GetGroup failed: %v", err)
	}
	if getResp.Msg.Group.Name != "Flat" {
		t.Errorf("name: expected 'Flat', got '%s'", getResp.Msg.Group.Name)
	}

	want := []events.Type{events.GroupCreated, events.GroupInviteSent, events.GroupInviteAccepted}
	if got := env.publisher.types(); !slices.Equal(got, want) {
		t.Errorf("events: expected %v, got %v", want, got)
	}
}

func TestListGroups(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()
	aliceToken := env.register(t, "alice")
	bobToken := env.register(t, "bob")

	env.createGroup(t, "Group A", aliceToken, nil)
	env.createGroup(t, "Group B", aliceToken, map[string]string{"bob": bobToken})
	env.createGroup(t, "Group C", bobToken, nil)

	aliceResp, err := env.groups.ListGroups(ctx, authed(&api.ListGroupsRequest{}, aliceToken))
	if err != nil {
		t.Fatalf("ListGroups failed: %v", err)
	}
	if len(aliceResp.Msg.Groups) != 2 {
		t.Errorf("alice: expected 2 groups, got %d", len(aliceResp.Msg.Groups))
	}

	bobResp, err := env.groups.ListGroups(ctx, authed(&api.ListGroupsRequest{}, bobToken))
	if err != nil {
		t.Fatalf("ListGroups failed: %v", err)
	}
	if len(bobResp.Msg.Groups) != 2 {
		t.Errorf("bob: expected 2 groups, got %d", len(bobResp.Msg.Groups))
	}
	for _, g := range bobResp.Msg.Groups {
		if !slices.Contains(g.Members, "bob") {
			t.Errorf("group %s listed for bob without him as a member", g.Name)
		}
	}
}

func TestGroupService_PublishFailureDoesNotFailRPC(t *testing.T) {
	env := setupTestServer(t)
	env.publisher.err = errors.New("broker down")
	token := env.register(t, "alice")

	if _, err := env.groups.CreateGroup(context.Background(), authed(&api.CreateGroupRequest{Name: "Flat"}, token)); err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}
}
