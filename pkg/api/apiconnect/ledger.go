package apiconnect

import (
	"context"
	"errors"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/ledgerwise/pkg/api"
)

// LedgerServiceName is the fully-qualified name of the LedgerService service.
const LedgerServiceName = "ledgerwise.v1.LedgerService"

const (
	LedgerServiceAddExpenseProcedure           = "/ledgerwise.v1.LedgerService/AddExpense"
	LedgerServiceListExpensesProcedure         = "/ledgerwise.v1.LedgerService/ListExpenses"
	LedgerServiceRemoveExpensesProcedure       = "/ledgerwise.v1.LedgerService/RemoveExpenses"
	LedgerServiceGetStatsProcedure             = "/ledgerwise.v1.LedgerService/GetStats"
	LedgerServiceGetCategoryBreakdownProcedure = "/ledgerwise.v1.LedgerService/GetCategoryBreakdown"
	LedgerServiceGetMemberBreakdownProcedure   = "/ledgerwise.v1.LedgerService/GetMemberBreakdown"
	LedgerServiceGetSettlementProcedure        = "/ledgerwise.v1.LedgerService/GetSettlement"
	LedgerServiceListCategoriesProcedure       = "/ledgerwise.v1.LedgerService/ListCategories"
)

// LedgerServiceHandler is implemented by the server side of LedgerService.
type LedgerServiceHandler interface {
	AddExpense(context.Context, *connect.Request[api.AddExpenseRequest]) (*connect.Response[api.AddExpenseResponse], error)
	ListExpenses(context.Context, *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error)
	RemoveExpenses(context.Context, *connect.Request[api.RemoveExpensesRequest]) (*connect.Response[api.RemoveExpensesResponse], error)
	GetStats(context.Context, *connect.Request[api.GetStatsRequest]) (*connect.Response[api.GetStatsResponse], error)
	GetCategoryBreakdown(context.Context, *connect.Request[api.GetCategoryBreakdownRequest]) (*connect.Response[api.GetCategoryBreakdownResponse], error)
	GetMemberBreakdown(context.Context, *connect.Request[api.GetMemberBreakdownRequest]) (*connect.Response[api.GetMemberBreakdownResponse], error)
	GetSettlement(context.Context, *connect.Request[api.GetSettlementRequest]) (*connect.Response[api.GetSettlementResponse], error)
	ListCategories(context.Context, *connect.Request[api.ListCategoriesRequest]) (*connect.Response[api.ListCategoriesResponse], error)
}

// NewLedgerServiceHandler builds an HTTP handler for every LedgerService procedure.
func NewLedgerServiceHandler(svc LedgerServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	mux.Handle(LedgerServiceAddExpenseProcedure, connect.NewUnaryHandler(LedgerServiceAddExpenseProcedure, svc.AddExpense, opts...))
	mux.Handle(LedgerServiceListExpensesProcedure, connect.NewUnaryHandler(LedgerServiceListExpensesProcedure, svc.ListExpenses, opts...))
	mux.Handle(LedgerServiceRemoveExpensesProcedure, connect.NewUnaryHandler(LedgerServiceRemoveExpensesProcedure, svc.RemoveExpenses, opts...))
	mux.Handle(LedgerServiceGetStatsProcedure, connect.NewUnaryHandler(LedgerServiceGetStatsProcedure, svc.GetStats, opts...))
	mux.Handle(LedgerServiceGetCategoryBreakdownProcedure, connect.NewUnaryHandler(LedgerServiceGetCategoryBreakdownProcedure, svc.GetCategoryBreakdown, opts...))
	mux.Handle(LedgerServiceGetMemberBreakdownProcedure, connect.NewUnaryHandler(LedgerServiceGetMemberBreakdownProcedure, svc.GetMemberBreakdown, opts...))
	mux.Handle(LedgerServiceGetSettlementProcedure, connect.NewUnaryHandler(LedgerServiceGetSettlementProcedure, svc.GetSettlement, opts...))
	mux.Handle(LedgerServiceListCategoriesProcedure, connect.NewUnaryHandler(LedgerServiceListCategoriesProcedure, svc.ListCategories, opts...))
	return "/" + LedgerServiceName + "/", jsonOnly(mux)
}

// LedgerServiceClient is a client for LedgerService.
type LedgerServiceClient interface {
	AddExpense(context.Context, *connect.Request[api.AddExpenseRequest]) (*connect.Response[api.AddExpenseResponse], error)
	ListExpenses(context.Context, *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error)
	RemoveExpenses(context.Context, *connect.Request[api.RemoveExpensesRequest]) (*connect.Response[api.RemoveExpensesResponse], error)
	GetStats(context.Context, *connect.Request[api.GetStatsRequest]) (*connect.Response[api.GetStatsResponse], error)
	GetCategoryBreakdown(context.Context, *connect.Request[api.GetCategoryBreakdownRequest]) (*connect.Response[api.GetCategoryBreakdownResponse], error)
	GetMemberBreakdown(context.Context, *connect.Request[api.GetMemberBreakdownRequest]) (*connect.Response[api.GetMemberBreakdownResponse], error)
	GetSettlement(context.Context, *connect.Request[api.GetSettlementRequest]) (*connect.Response[api.GetSettlementResponse], error)
	ListCategories(context.Context, *connect.Request[api.ListCategoriesRequest]) (*connect.Response[api.ListCategoriesResponse], error)
}

// NewLedgerServiceClient returns a client for the LedgerService at baseURL.
func NewLedgerServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) LedgerServiceClient {
	opts = clientOptions(opts)
	return &ledgerServiceClient{
		addExpense:           connect.NewClient[api.AddExpenseRequest, api.AddExpenseResponse](httpClient, baseURL+LedgerServiceAddExpenseProcedure, opts...),
		listExpenses:         connect.NewClient[api.ListExpensesRequest, api.ListExpensesResponse](httpClient, baseURL+LedgerServiceListExpensesProcedure, opts...),
		removeExpenses:       connect.NewClient[api.RemoveExpensesRequest, api.RemoveExpensesResponse](httpClient, baseURL+LedgerServiceRemoveExpensesProcedure, opts...),
		getStats:             connect.NewClient[api.GetStatsRequest, api.GetStatsResponse](httpClient, baseURL+LedgerServiceGetStatsProcedure, opts...),
		getCategoryBreakdown: connect.NewClient[api.GetCategoryBreakdownRequest, api.GetCategoryBreakdownResponse](httpClient, baseURL+LedgerServiceGetCategoryBreakdownProcedure, opts...),
		getMemberBreakdown:   connect.NewClient[api.GetMemberBreakdownRequest, api.GetMemberBreakdownResponse](httpClient, baseURL+LedgerServiceGetMemberBreakdownProcedure, opts...),
		getSettlement:        connect.NewClient[api.GetSettlementRequest, api.GetSettlementResponse](httpClient, baseURL+LedgerServiceGetSettlementProcedure, opts...),
		listCategories:       connect.NewClient[api.ListCategoriesRequest, api.ListCategoriesResponse](httpClient, baseURL+LedgerServiceListCategoriesProcedure, opts...),
	}
}

type ledgerServiceClient struct {
	addExpense           *connect.Client[api.AddExpenseRequest, api.AddExpenseResponse]
	listExpenses         *connect.Client[api.ListExpensesRequest, api.ListExpensesResponse]
	removeExpenses       *connect.Client[api.RemoveExpensesRequest, api.RemoveExpensesResponse]
	getStats             *connect.Client[api.GetStatsRequest, api.GetStatsResponse]
	getCategoryBreakdown *connect.Client[api.GetCategoryBreakdownRequest, api.GetCategoryBreakdownResponse]
	getMemberBreakdown   *connect.Client[api.GetMemberBreakdownRequest, api.GetMemberBreakdownResponse]
	getSettlement        *connect.Client[api.GetSettlementRequest, api.GetSettlementResponse]
	listCategories       *connect.Client[api.ListCategoriesRequest, api.ListCategoriesResponse]
}

func (c *ledgerServiceClient) AddExpense(ctx context.Context, req *connect.Request[api.AddExpenseRequest]) (*connect.Response[api.AddExpenseResponse], error) {
	return c.addExpense.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) ListExpenses(ctx context.Context, req *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error) {
	return c.listExpenses.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) RemoveExpenses(ctx context.Context, req *connect.Request[api.RemoveExpensesRequest]) (*connect.Response[api.RemoveExpensesResponse], error) {
	return c.removeExpenses.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) GetStats(ctx context.Context, req *connect.Request[api.GetStatsRequest]) (*connect.Response[api.GetStatsResponse], error) {
	return c.getStats.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) GetCategoryBreakdown(ctx context.Context, req *connect.Request[api.GetCategoryBreakdownRequest]) (*connect.Response[api.GetCategoryBreakdownResponse], error) {
	return c.getCategoryBreakdown.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) GetMemberBreakdown(ctx context.Context, req *connect.Request[api.GetMemberBreakdownRequest]) (*connect.Response[api.GetMemberBreakdownResponse], error) {
	return c.getMemberBreakdown.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) GetSettlement(ctx context.Context, req *connect.Request[api.GetSettlementRequest]) (*connect.Response[api.GetSettlementResponse], error) {
	return c.getSettlement.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) ListCategories(ctx context.Context, req *connect.Request[api.ListCategoriesRequest]) (*connect.Response[api.ListCategoriesResponse], error) {
	return c.listCategories.CallUnary(ctx, req)
}

// UnimplementedLedgerServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedLedgerServiceHandler struct{}

func (UnimplementedLedgerServiceHandler) AddExpense(context.Context, *connect.Request[api.AddExpenseRequest]) (*connect.Response[api.AddExpenseResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("ledgerwise.v1.LedgerService.AddExpense is not implemented"))
}

func (UnimplementedLedgerServiceHandler) ListExpenses(context.Context, *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("ledgerwise.v1.LedgerService.ListExpenses is not implemented"))
}

func (UnimplementedLedgerServiceHandler) RemoveExpenses(context.Context, *connect.Request[api.RemoveExpensesRequest]) (*connect.Response[api.RemoveExpensesResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("ledgerwise.v1.LedgerService.RemoveExpenses is not implemented"))
}

func (UnimplementedLedgerServiceHandler) GetStats(context.Context, *connect.Request[api.GetStatsRequest]) (*connect.Response[api.GetStatsResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("ledgerwise.v1.LedgerService.GetStats is not implemented"))
}

func (UnimplementedLedgerServiceHandler) GetCategoryBreakdown(context.Context, *connect.Request[api.GetCategoryBreakdownRequest]) (*connect.Response[api.GetCategoryBreakdownResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("ledgerwise.v1.LedgerService.GetCategoryBreakdown is not implemented"))
}

func (UnimplementedLedgerServiceHandler) GetMemberBreakdown(context.Context, *connect.Request[api.GetMemberBreakdownRequest]) (*connect.Response[api.GetMemberBreakdownResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("ledgerwise.v1.LedgerService.GetMemberBreakdown is not implemented"))
}

func (UnimplementedLedgerServiceHandler) GetSettlement(context.Context, *connect.Request[api.GetSettlementRequest]) (*connect.Response[api.GetSettlementResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("ledgerwise.v1.LedgerService.GetSettlement is not implemented"))
}

func (UnimplementedLedgerServiceHandler) ListCategories(context.Context, *connect.Request[api.ListCategoriesRequest]) (*connect.Response[api.ListCategoriesResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("ledgerwise.v1.LedgerService.ListCategories is not implemented"))
}
