package apiconnect

import (
	"context"
	"errors"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/ledgerwise/pkg/api"
)

// GroupServiceName is the fully-qualified name of the GroupService service.
const GroupServiceName = "ledgerwise.v1.GroupService"

const (
	GroupServiceCreateGroupProcedure        = "/ledgerwise.v1.GroupService/CreateGroup"
	GroupServiceGetGroupProcedure           = "/ledgerwise.v1.GroupService/GetGroup"
	GroupServiceListGroupsProcedure         = "/ledgerwise.v1.GroupService/ListGroups"
	GroupServiceInviteMemberProcedure       = "/ledgerwise.v1.GroupService/InviteMember"
	GroupServiceAcceptInviteProcedure       = "/ledgerwise.v1.GroupService/AcceptInvite"
	GroupServiceListPendingInvitesProcedure = "/ledgerwise.v1.GroupService/ListPendingInvites"
)

// GroupServiceHandler is implemented by the server side of GroupService.
type GroupServiceHandler interface {
	CreateGroup(context.Context, *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error)
	GetGroup(context.Context, *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GetGroupResponse], error)
	ListGroups(context.Context, *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error)
	InviteMember(context.Context, *connect.Request[api.InviteMemberRequest]) (*connect.Response[api.InviteMemberResponse], error)
	AcceptInvite(context.Context, *connect.Request[api.AcceptInviteRequest]) (*connect.Response[api.AcceptInviteResponse], error)
	ListPendingInvites(context.Context, *connect.Request[api.ListPendingInvitesRequest]) (*connect.Response[api.ListPendingInvitesResponse], error)
}

// NewGroupServiceHandler builds an HTTP handler for every GroupService procedure.
func NewGroupServiceHandler(svc GroupServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	mux.Handle(GroupServiceCreateGroupProcedure, connect.NewUnaryHandler(GroupServiceCreateGroupProcedure, svc.CreateGroup, opts...))
	mux.Handle(GroupServiceGetGroupProcedure, connect.NewUnaryHandler(GroupServiceGetGroupProcedure, svc.GetGroup, opts...))
	mux.Handle(GroupServiceListGroupsProcedure, connect.NewUnaryHandler(GroupServiceListGroupsProcedure, svc.ListGroups, opts...))
	mux.Handle(GroupServiceInviteMemberProcedure, connect.NewUnaryHandler(GroupServiceInviteMemberProcedure, svc.InviteMember, opts...))
	mux.Handle(GroupServiceAcceptInviteProcedure, connect.NewUnaryHandler(GroupServiceAcceptInviteProcedure, svc.AcceptInvite, opts...))
	mux.Handle(GroupServiceListPendingInvitesProcedure, connect.NewUnaryHandler(GroupServiceListPendingInvitesProcedure, svc.ListPendingInvites, opts...))
	return "/" + GroupServiceName + "/", jsonOnly(mux)
}

// GroupServiceClient is a client for GroupService.
type GroupServiceClient interface {
	CreateGroup(context.Context, *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error)
	GetGroup(context.Context, *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GetGroupResponse], error)
	ListGroups(context.Context, *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error)
	InviteMember(context.Context, *connect.Request[api.InviteMemberRequest]) (*connect.Response[api.InviteMemberResponse], error)
	AcceptInvite(context.Context, *connect.Request[api.AcceptInviteRequest]) (*connect.Response[api.AcceptInviteResponse], error)
	ListPendingInvites(context.Context, *connect.Request[api.ListPendingInvitesRequest]) (*connect.Response[api.ListPendingInvitesResponse], error)
}

// NewGroupServiceClient returns a client for the GroupService at baseURL.
func NewGroupServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) GroupServiceClient {
	opts = clientOptions(opts)
	return &groupServiceClient{
		createGroup:        connect.NewClient[api.CreateGroupRequest, api.CreateGroupResponse](httpClient, baseURL+GroupServiceCreateGroupProcedure, opts...),
		getGroup:           connect.NewClient[api.GetGroupRequest, api.GetGroupResponse](httpClient, baseURL+GroupServiceGetGroupProcedure, opts...),
		listGroups:         connect.NewClient[api.ListGroupsRequest, api.ListGroupsResponse](httpClient, baseURL+GroupServiceListGroupsProcedure, opts...),
		inviteMember:       connect.NewClient[api.InviteMemberRequest, api.InviteMemberResponse](httpClient, baseURL+GroupServiceInviteMemberProcedure, opts...),
		acceptInvite:       connect.NewClient[api.AcceptInviteRequest, api.AcceptInviteResponse](httpClient, baseURL+GroupServiceAcceptInviteProcedure, opts...),
		listPendingInvites: connect.NewClient[api.ListPendingInvitesRequest, api.ListPendingInvitesResponse](httpClient, baseURL+GroupServiceListPendingInvitesProcedure, opts...),
	}
}

type groupServiceClient struct {
	createGroup        *connect.Client[api.CreateGroupRequest, api.CreateGroupResponse]
	getGroup           *connect.Client[api.GetGroupRequest, api.GetGroupResponse]
	listGroups         *connect.Client[api.ListGroupsRequest, api.ListGroupsResponse]
	inviteMember       *connect.Client[api.InviteMemberRequest, api.InviteMemberResponse]
	acceptInvite       *connect.Client[api.AcceptInviteRequest, api.AcceptInviteResponse]
	listPendingInvites *connect.Client[api.ListPendingInvitesRequest, api.ListPendingInvitesResponse]
}

func (c *groupServiceClient) CreateGroup(ctx context.Context, req *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error) {
	return c.createGroup.CallUnary(ctx, req)
}

func (c *groupServiceClient) GetGroup(ctx context.Context, req *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GetGroupResponse], error) {
	return c.getGroup.CallUnary(ctx, req)
}

func (c *groupServiceClient) ListGroups(ctx context.Context, req *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error) {
	return c.listGroups.CallUnary(ctx, req)
}

func (c *groupServiceClient) InviteMember(ctx context.Context, req *connect.Request[api.InviteMemberRequest]) (*connect.Response[api.InviteMemberResponse], error) {
	return c.inviteMember.CallUnary(ctx, req)
}

func (c *groupServiceClient) AcceptInvite(ctx context.Context, req *connect.Request[api.AcceptInviteRequest]) (*connect.Response[api.AcceptInviteResponse], error) {
	return c.acceptInvite.CallUnary(ctx, req)
}

func (c *groupServiceClient) ListPendingInvites(ctx context.Context, req *connect.Request[api.ListPendingInvitesRequest]) (*connect.Response[api.ListPendingInvitesResponse], error) {
	return c.listPendingInvites.CallUnary(ctx, req)
}

// UnimplementedGroupServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedGroupServiceHandler struct{}

func (UnimplementedGroupServiceHandler) CreateGroup(context.Context, *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("ledgerwise.v1.GroupService.CreateGroup is not implemented"))
}

func (UnimplementedGroupServiceHandler) GetGroup(context.Context, *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GetGroupResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("ledgerwise.v1.GroupService.GetGroup is not implemented"))
}

func (UnimplementedGroupServiceHandler) ListGroups(context.Context, *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("ledgerwise.v1.GroupService.ListGroups is not implemented"))
}

func (UnimplementedGroupServiceHandler) InviteMember(context.Context, *connect.Request[api.InviteMemberRequest]) (*connect.Response[api.InviteMemberResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("ledgerwise.v1.GroupService.InviteMember is not implemented"))
}

func (UnimplementedGroupServiceHandler) AcceptInvite(context.Context, *connect.Request[api.AcceptInviteRequest]) (*connect.Response[api.AcceptInviteResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("ledgerwise.v1.GroupService.AcceptInvite is not implemented"))
}

func (UnimplementedGroupServiceHandler) ListPendingInvites(context.Context, *connect.Request[api.ListPendingInvitesRequest]) (*connect.Response[api.ListPendingInvitesResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("ledgerwise.v1.GroupService.ListPendingInvites is not implemented"))
}
