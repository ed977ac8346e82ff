package api

import (
	"context"

	"connectrpc.com/connect"
)

func clientOptions(opts []connect.ClientOption) []connect.ClientOption {
	return append([]connect.ClientOption{connect.WithCodec(jsonCodec{})}, opts...)
}

// AuthServiceClient calls the auth service.
type AuthServiceClient interface {
	Register(context.Context, *connect.Request[RegisterRequest]) (*connect.Response[RegisterResponse], error)
	Login(context.Context, *connect.Request[LoginRequest]) (*connect.Response[LoginResponse], error)
	GetCurrentMember(context.Context, *connect.Request[GetCurrentMemberRequest]) (*connect.Response[GetCurrentMemberResponse], error)
}

type authServiceClient struct {
	register         *connect.Client[RegisterRequest, RegisterResponse]
	login            *connect.Client[LoginRequest, LoginResponse]
	getCurrentMember *connect.Client[GetCurrentMemberRequest, GetCurrentMemberResponse]
}

// NewAuthServiceClient builds a client against baseURL.
func NewAuthServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) AuthServiceClient {
	opts = clientOptions(opts)
	return &authServiceClient{
		register:         connect.NewClient[RegisterRequest, RegisterResponse](httpClient, baseURL+AuthServiceRegisterProcedure, opts...),
		login:            connect.NewClient[LoginRequest, LoginResponse](httpClient, baseURL+AuthServiceLoginProcedure, opts...),
		getCurrentMember: connect.NewClient[GetCurrentMemberRequest, GetCurrentMemberResponse](httpClient, baseURL+AuthServiceGetCurrentMemberProcedure, opts...),
	}
}

func (c *authServiceClient) Register(ctx context.Context, req *connect.Request[RegisterRequest]) (*connect.Response[RegisterResponse], error) {
	return c.register.CallUnary(ctx, req)
}

func (c *authServiceClient) Login(ctx context.Context, req *connect.Request[LoginRequest]) (*connect.Response[LoginResponse], error) {
	return c.login.CallUnary(ctx, req)
}

func (c *authServiceClient) GetCurrentMember(ctx context.Context, req *connect.Request[GetCurrentMemberRequest]) (*connect.Response[GetCurrentMemberResponse], error) {
	return c.getCurrentMember.CallUnary(ctx, req)
}

// DirectoryServiceClient calls the member directory.
type DirectoryServiceClient interface {
	ListMembers(context.Context, *connect.Request[ListMembersRequest]) (*connect.Response[ListMembersResponse], error)
}

type directoryServiceClient struct {
	listMembers *connect.Client[ListMembersRequest, ListMembersResponse]
}

// NewDirectoryServiceClient builds a client against baseURL.
func NewDirectoryServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) DirectoryServiceClient {
	opts = clientOptions(opts)
	return &directoryServiceClient{
		listMembers: connect.NewClient[ListMembersRequest, ListMembersResponse](httpClient, baseURL+DirectoryServiceListMembersProcedure, opts...),
	}
}

func (c *directoryServiceClient) ListMembers(ctx context.Context, req *connect.Request[ListMembersRequest]) (*connect.Response[ListMembersResponse], error) {
	return c.listMembers.CallUnary(ctx, req)
}

// GroupServiceClient calls the group service.
type GroupServiceClient interface {
	CreateGroup(context.Context, *connect.Request[CreateGroupRequest]) (*connect.Response[CreateGroupResponse], error)
	GetGroup(context.Context, *connect.Request[GetGroupRequest]) (*connect.Response[GetGroupResponse], error)
	ListGroups(context.Context, *connect.Request[ListGroupsRequest]) (*connect.Response[ListGroupsResponse], error)
	AddMember(context.Context, *connect.Request[AddMemberRequest]) (*connect.Response[AddMemberResponse], error)
	RemoveMember(context.Context, *connect.Request[RemoveMemberRequest]) (*connect.Response[RemoveMemberResponse], error)
	DeleteGroup(context.Context, *connect.Request[DeleteGroupRequest]) (*connect.Response[DeleteGroupResponse], error)
	GetGroupBalances(context.Context, *connect.Request[GetGroupBalancesRequest]) (*connect.Response[GetGroupBalancesResponse], error)
}

type groupServiceClient struct {
	createGroup      *connect.Client[CreateGroupRequest, CreateGroupResponse]
	getGroup         *connect.Client[GetGroupRequest, GetGroupResponse]
	listGroups       *connect.Client[ListGroupsRequest, ListGroupsResponse]
	addMember        *connect.Client[AddMemberRequest, AddMemberResponse]
	removeMember     *connect.Client[RemoveMemberRequest, RemoveMemberResponse]
	deleteGroup      *connect.Client[DeleteGroupRequest, DeleteGroupResponse]
	getGroupBalances *connect.Client[GetGroupBalancesRequest, GetGroupBalancesResponse]
}

// NewGroupServiceClient builds a client against baseURL.
func NewGroupServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) GroupServiceClient {
	opts = clientOptions(opts)
	return &groupServiceClient{
		createGroup:      connect.NewClient[CreateGroupRequest, CreateGroupResponse](httpClient, baseURL+GroupServiceCreateGroupProcedure, opts...),
		getGroup:         connect.NewClient[GetGroupRequest, GetGroupResponse](httpClient, baseURL+GroupServiceGetGroupProcedure, opts...),
		listGroups:       connect.NewClient[ListGroupsRequest, ListGroupsResponse](httpClient, baseURL+GroupServiceListGroupsProcedure, opts...),
		addMember:        connect.NewClient[AddMemberRequest, AddMemberResponse](httpClient, baseURL+GroupServiceAddMemberProcedure, opts...),
		removeMember:     connect.NewClient[RemoveMemberRequest, RemoveMemberResponse](httpClient, baseURL+GroupServiceRemoveMemberProcedure, opts...),
		deleteGroup:      connect.NewClient[DeleteGroupRequest, DeleteGroupResponse](httpClient, baseURL+GroupServiceDeleteGroupProcedure, opts...),
		getGroupBalances: connect.NewClient[GetGroupBalancesRequest, GetGroupBalancesResponse](httpClient, baseURL+GroupServiceGetGroupBalancesProcedure, opts...),
	}
}

func (c *groupServiceClient) CreateGroup(ctx context.Context, req *connect.Request[CreateGroupRequest]) (*connect.Response[CreateGroupResponse], error) {
	return c.createGroup.CallUnary(ctx, req)
}

func (c *groupServiceClient) GetGroup(ctx context.Context, req *connect.Request[GetGroupRequest]) (*connect.Response[GetGroupResponse], error) {
	return c.getGroup.CallUnary(ctx, req)
}

func (c *groupServiceClient) ListGroups(ctx context.Context, req *connect.Request[ListGroupsRequest]) (*connect.Response[ListGroupsResponse], error) {
	return c.listGroups.CallUnary(ctx, req)
}

func (c *groupServiceClient) AddMember(ctx context.Context, req *connect.Request[AddMemberRequest]) (*connect.Response[AddMemberResponse], error) {
	return c.addMember.CallUnary(ctx, req)
}

func (c *groupServiceClient) RemoveMember(ctx context.Context, req *connect.Request[RemoveMemberRequest]) (*connect.Response[RemoveMemberResponse], error) {
	return c.removeMember.CallUnary(ctx, req)
}

func (c *groupServiceClient) DeleteGroup(ctx context.Context, req *connect.Request[DeleteGroupRequest]) (*connect.Response[DeleteGroupResponse], error) {
	return c.deleteGroup.CallUnary(ctx, req)
}

func (c *groupServiceClient) GetGroupBalances(ctx context.Context, req *connect.Request[GetGroupBalancesRequest]) (*connect.Response[GetGroupBalancesResponse], error) {
	return c.getGroupBalances.CallUnary(ctx, req)
}

// ExpenseServiceClient calls the expense service.
type ExpenseServiceClient interface {
	CreateExpense(context.Context, *connect.Request[CreateExpenseRequest]) (*connect.Response[CreateExpenseResponse], error)
	GetExpense(context.Context, *connect.Request[GetExpenseRequest]) (*connect.Response[GetExpenseResponse], error)
	ListExpenses(context.Context, *connect.Request[ListExpensesRequest]) (*connect.Response[ListExpensesResponse], error)
	UpdateExpense(context.Context, *connect.Request[UpdateExpenseRequest]) (*connect.Response[UpdateExpenseResponse], error)
	DeleteExpense(context.Context, *connect.Request[DeleteExpenseRequest]) (*connect.Response[DeleteExpenseResponse], error)
	GetMyBalances(context.Context, *connect.Request[GetMyBalancesRequest]) (*connect.Response[GetMyBalancesResponse], error)
}

type expenseServiceClient struct {
	createExpense *connect.Client[CreateExpenseRequest, CreateExpenseResponse]
	getExpense    *connect.Client[GetExpenseRequest, GetExpenseResponse]
	listExpenses  *connect.Client[ListExpensesRequest, ListExpensesResponse]
	updateExpense *connect.Client[UpdateExpenseRequest, UpdateExpenseResponse]
	deleteExpense *connect.Client[DeleteExpenseRequest, DeleteExpenseResponse]
	getMyBalances *connect.Client[GetMyBalancesRequest, GetMyBalancesResponse]
}

// NewExpenseServiceClient builds a client against baseURL.
func NewExpenseServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) ExpenseServiceClient {
	opts = clientOptions(opts)
	return &expenseServiceClient{
		createExpense: connect.NewClient[CreateExpenseRequest, CreateExpenseResponse](httpClient, baseURL+ExpenseServiceCreateExpenseProcedure, opts...),
		getExpense:    connect.NewClient[GetExpenseRequest, GetExpenseResponse](httpClient, baseURL+ExpenseServiceGetExpenseProcedure, opts...),
		listExpenses:  connect.NewClient[ListExpensesRequest, ListExpensesResponse](httpClient, baseURL+ExpenseServiceListExpensesProcedure, opts...),
		updateExpense: connect.NewClient[UpdateExpenseRequest, UpdateExpenseResponse](httpClient, baseURL+ExpenseServiceUpdateExpenseProcedure, opts...),
		deleteExpense: connect.NewClient[DeleteExpenseRequest, DeleteExpenseResponse](httpClient, baseURL+ExpenseServiceDeleteExpenseProcedure, opts...),
		getMyBalances: connect.NewClient[GetMyBalancesRequest, GetMyBalancesResponse](httpClient, baseURL+ExpenseServiceGetMyBalancesProcedure, opts...),
	}
}

func (c *expenseServiceClient) CreateExpense(ctx context.Context, req *connect.Request[CreateExpenseRequest]) (*connect.Response[CreateExpenseResponse], error) {
	return c.createExpense.CallUnary(ctx, req)
}

func (c *expenseServiceClient) GetExpense(ctx context.Context, req *connect.Request[GetExpenseRequest]) (*connect.Response[GetExpenseResponse], error) {
	return c.getExpense.CallUnary(ctx, req)
}

func (c *expenseServiceClient) ListExpenses(ctx context.Context, req *connect.Request[ListExpensesRequest]) (*connect.Response[ListExpensesResponse], error) {
	return c.listExpenses.CallUnary(ctx, req)
}

func (c *expenseServiceClient) UpdateExpense(ctx context.Context, req *connect.Request[UpdateExpenseRequest]) (*connect.Response[UpdateExpenseResponse], error) {
	return c.updateExpense.CallUnary(ctx, req)
}

func (c *expenseServiceClient) DeleteExpense(ctx context.Context, req *connect.Request[DeleteExpenseRequest]) (*connect.Response[DeleteExpenseResponse], error) {
	return c.deleteExpense.CallUnary(ctx, req)
}

func (c *expenseServiceClient) GetMyBalances(ctx context.Context, req *connect.Request[GetMyBalancesRequest]) (*connect.Response[GetMyBalancesResponse], error) {
	return c.getMyBalances.CallUnary(ctx, req)
}

// SettlementServiceClient calls the settlement service.
type SettlementServiceClient interface {
	RequestSettlement(context.Context, *connect.Request[RequestSettlementRequest]) (*connect.Response[RequestSettlementResponse], error)
	ConfirmSettlement(context.Context, *connect.Request[ConfirmSettlementRequest]) (*connect.Response[ConfirmSettlementResponse], error)
	RejectSettlement(context.Context, *connect.Request[RejectSettlementRequest]) (*connect.Response[RejectSettlementResponse], error)
}

type settlementServiceClient struct {
	request *connect.Client[RequestSettlementRequest, RequestSettlementResponse]
	confirm *connect.Client[ConfirmSettlementRequest, ConfirmSettlementResponse]
	reject  *connect.Client[RejectSettlementRequest, RejectSettlementResponse]
}

// NewSettlementServiceClient builds a client against baseURL.
func NewSettlementServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) SettlementServiceClient {
	opts = clientOptions(opts)
	return &settlementServiceClient{
		request: connect.NewClient[RequestSettlementRequest, RequestSettlementResponse](httpClient, baseURL+SettlementServiceRequestSettlementProcedure, opts...),
		confirm: connect.NewClient[ConfirmSettlementRequest, ConfirmSettlementResponse](httpClient, baseURL+SettlementServiceConfirmSettlementProcedure, opts...),
		reject:  connect.NewClient[RejectSettlementRequest, RejectSettlementResponse](httpClient, baseURL+SettlementServiceRejectSettlementProcedure, opts...),
	}
}

func (c *settlementServiceClient) RequestSettlement(ctx context.Context, req *connect.Request[RequestSettlementRequest]) (*connect.Response[RequestSettlementResponse], error) {
	return c.request.CallUnary(ctx, req)
}

func (c *settlementServiceClient) ConfirmSettlement(ctx context.Context, req *connect.Request[ConfirmSettlementRequest]) (*connect.Response[ConfirmSettlementResponse], error) {
	return c.confirm.CallUnary(ctx, req)
}

func (c *settlementServiceClient) RejectSettlement(ctx context.Context, req *connect.Request[RejectSettlementRequest]) (*connect.Response[RejectSettlementResponse], error) {
	return c.reject.CallUnary(ctx, req)
}
