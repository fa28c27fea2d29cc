package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/ledgerwise/internal/events"
	"github.com/mmynk/ledgerwise/internal/models"
	"github.com/mmynk/ledgerwise/internal/storage"
	"github.com/mmynk/ledgerwise/internal/validation"
	"github.com/mmynk/ledgerwise/pkg/api"
	"github.com/mmynk/ledgerwise/pkg/api/apiconnect"
)

// GroupService implements the Connect GroupService
type GroupService struct {
	apiconnect.UnimplementedGroupServiceHandler
	store     storage.Store
	publisher events.Publisher
}

// NewGroupService creates a new GroupService with the given storage backend.
func NewGroupService(store storage.Store, publisher events.Publisher) *GroupService {
	return &GroupService{store: store, publisher: publisher}
}

// memberGroup loads the group and checks that username belongs to it.
func (s *GroupService) memberGroup(ctx context.Context, groupID, username string) (*models.Group, error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !group.HasMember(username) {
		return nil, errNotMember
	}
	return group, nil
}

// CreateGroup creates a new group with the caller as its only member.
func (s *GroupService) CreateGroup(ctx context.Context, req *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error) {
	username, err := callerFrom(ctx)
	if err != nil {
		return nil, err
	}

	slog.Info("CreateGroup request received", "name", req.Msg.Name, "user", username)

	if err := validation.Struct(req.Msg); err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	group := &models.Group{
		Name:        req.Msg.Name,
		Description: req.Msg.Description,
		Creator:     username,
	}

	// Save to storage (generates ID and CreatedAt)
	if err := s.store.CreateGroup(ctx, group); err != nil {
		slog.Error("CreateGroup failed", "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Group created", "group_id", group.ID)

	ev := events.New(events.GroupCreated, username)
	ev.GroupID = group.ID
	publish(ctx, s.publisher, ev)

	return connect.NewResponse(&api.CreateGroupResponse{Group: toAPIGroup(group)}), nil
}

// GetGroup returns a group to one of its members.
func (s *GroupService) GetGroup(ctx context.Context, req *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GetGroupResponse], error) {
	username, err := callerFrom(ctx)
	if err != nil {
		return nil, err
	}

	slog.Info("GetGroup request received", "group_id", req.Msg.GroupId)

	group, err := s.memberGroup(ctx, req.Msg.GroupId, username)
	if err != nil {
		slog.Warn("GetGroup failed", "group_id", req.Msg.GroupId, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.GetGroupResponse{Group: toAPIGroup(group)}), nil
}

// ListGroups returns the groups the caller belongs to.
func (s *GroupService) ListGroups(ctx context.Context, req *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error) {
	username, err := callerFrom(ctx)
	if err != nil {
		return nil, err
	}

	slog.Info("ListGroups request received", "user", username)

	groups, err := s.store.ListGroupsForUser(ctx, username)
	if err != nil {
		slog.Error("ListGroups failed", "error", err)
		return nil, toConnectError(err)
	}

	apiGroups := make([]*api.Group, len(groups))
	for i, group := range groups {
		apiGroups[i] = toAPIGroup(group)
	}

	slog.Info("ListGroups successful", "count", len(groups))

	return connect.NewResponse(&api.ListGroupsResponse{Groups: apiGroups}), nil
}

// InviteMember records a pending invite. The inviter must be a member and the
// invitee must be a registered user who is neither a member nor already invited.
func (s *GroupService) InviteMember(ctx context.Context, req *connect.Request[api.InviteMemberRequest]) (*connect.Response[api.InviteMemberResponse], error) {
	username, err := callerFrom(ctx)
	if err != nil {
		return nil, err
	}

	slog.Info("InviteMember request received",
		"group_id", req.Msg.GroupId,
		"invitee", req.Msg.Username,
		"user", username,
	)

	if err := validation.Struct(req.Msg); err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	if _, err := s.memberGroup(ctx, req.Msg.GroupId, username); err != nil {
		slog.Warn("InviteMember rejected", "group_id", req.Msg.GroupId, "error", err)
		return nil, toConnectError(err)
	}
	if _, err := s.store.GetUser(ctx, req.Msg.Username); err != nil {
		slog.Warn("InviteMember failed - unknown invitee", "invitee", req.Msg.Username, "error", err)
		return nil, toConnectError(err)
	}

	if err := s.store.AddInvite(ctx, req.Msg.GroupId, req.Msg.Username); err != nil {
		slog.Warn("InviteMember failed", "group_id", req.Msg.GroupId, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Invite sent", "group_id", req.Msg.GroupId, "invitee", req.Msg.Username)

	ev := events.New(events.GroupInviteSent, username)
	ev.GroupID = req.Msg.GroupId
	ev.Username = req.Msg.Username
	publish(ctx, s.publisher, ev)

	return connect.NewResponse(&api.InviteMemberResponse{}), nil
}

// AcceptInvite makes the caller a member of a group they were invited to.
func (s *GroupService) AcceptInvite(ctx context.Context, req *connect.Request[api.AcceptInviteRequest]) (*connect.Response[api.AcceptInviteResponse], error) {
	username, err := callerFrom(ctx)
	if err != nil {
		return nil, err
	}

	slog.Info("AcceptInvite request received", "group_id", req.Msg.GroupId, "user", username)

	if err := validation.Struct(req.Msg); err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	if err := s.store.AcceptInvite(ctx, req.Msg.GroupId, username); err != nil {
		slog.Warn("AcceptInvite failed", "group_id", req.Msg.GroupId, "error", err)
		return nil, toConnectError(err)
	}

	group, err := s.store.GetGroup(ctx, req.Msg.GroupId)
	if err != nil {
		slog.Error("Failed to fetch group after accepting invite", "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Invite accepted", "group_id", group.ID, "members_count", len(group.Members))

	ev := events.New(events.GroupInviteAccepted, username)
	ev.GroupID = group.ID
	publish(ctx, s.publisher, ev)

	return connect.NewResponse(&api.AcceptInviteResponse{Group: toAPIGroup(group)}), nil
}

// ListPendingInvites returns the invites waiting for the caller.
func (s *GroupService) ListPendingInvites(ctx context.Context, req *connect.Request[api.ListPendingInvitesRequest]) (*connect.Response[api.ListPendingInvitesResponse], error) {
	username, err := callerFrom(ctx)
	if err != nil {
		return nil, err
	}

	slog.Info("ListPendingInvites request received", "user", username)

	invites, err := s.store.ListPendingInvites(ctx, username)
	if err != nil {
		slog.Error("ListPendingInvites failed", "error", err)
		return nil, toConnectError(err)
	}

	apiInvites := make([]*api.Invite, len(invites))
	for i, inv := range invites {
		apiInvites[i] = &api.Invite{
			GroupId:     inv.GroupID,
			GroupName:   inv.GroupName,
			Creator:     inv.Creator,
			Description: inv.Description,
		}
	}

	return connect.NewResponse(&api.ListPendingInvitesResponse{Invites: apiInvites}), nil
}
