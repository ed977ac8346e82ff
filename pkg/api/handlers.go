package api

import (
	"context"
	"net/http"

	"connectrpc.com/connect"
)

// Procedure paths. Connect routes by exact path, so each service
// handler returns its path prefix for mux registration, the same way
// generated handlers do.
const (
	AuthServicePath       = "/splitledger.v1.AuthService/"
	DirectoryServicePath  = "/splitledger.v1.DirectoryService/"
	GroupServicePath      = "/splitledger.v1.GroupService/"
	ExpenseServicePath    = "/splitledger.v1.ExpenseService/"
	SettlementServicePath = "/splitledger.v1.SettlementService/"
)

const (
	AuthServiceRegisterProcedure         = AuthServicePath + "Register"
	AuthServiceLoginProcedure            = AuthServicePath + "Login"
	AuthServiceGetCurrentMemberProcedure = AuthServicePath + "GetCurrentMember"

	DirectoryServiceListMembersProcedure = DirectoryServicePath + "ListMembers"

	GroupServiceCreateGroupProcedure      = GroupServicePath + "CreateGroup"
	GroupServiceGetGroupProcedure         = GroupServicePath + "GetGroup"
	GroupServiceListGroupsProcedure       = GroupServicePath + "ListGroups"
	GroupServiceAddMemberProcedure        = GroupServicePath + "AddMember"
	GroupServiceRemoveMemberProcedure     = GroupServicePath + "RemoveMember"
	GroupServiceDeleteGroupProcedure      = GroupServicePath + "DeleteGroup"
	GroupServiceGetGroupBalancesProcedure = GroupServicePath + "GetGroupBalances"

	ExpenseServiceCreateExpenseProcedure = ExpenseServicePath + "CreateExpense"
	ExpenseServiceGetExpenseProcedure    = ExpenseServicePath + "GetExpense"
	ExpenseServiceListExpensesProcedure  = ExpenseServicePath + "ListExpenses"
	ExpenseServiceUpdateExpenseProcedure = ExpenseServicePath + "UpdateExpense"
	ExpenseServiceDeleteExpenseProcedure = ExpenseServicePath + "DeleteExpense"
	ExpenseServiceGetMyBalancesProcedure = ExpenseServicePath + "GetMyBalances"

	SettlementServiceRequestSettlementProcedure = SettlementServicePath + "RequestSettlement"
	SettlementServiceConfirmSettlementProcedure = SettlementServicePath + "ConfirmSettlement"
	SettlementServiceRejectSettlementProcedure  = SettlementServicePath + "RejectSettlement"
)

// handlerOptions prepends the JSON codec so callers can still append
// their own interceptors and options.
func handlerOptions(opts []connect.HandlerOption) []connect.HandlerOption {
	return append([]connect.HandlerOption{connect.WithCodec(jsonCodec{})}, opts...)
}

// AuthServiceHandler is the server contract for authentication.
type AuthServiceHandler interface {
	Register(context.Context, *connect.Request[RegisterRequest]) (*connect.Response[RegisterResponse], error)
	Login(context.Context, *connect.Request[LoginRequest]) (*connect.Response[LoginResponse], error)
	GetCurrentMember(context.Context, *connect.Request[GetCurrentMemberRequest]) (*connect.Response[GetCurrentMemberResponse], error)
}

// NewAuthServiceHandler builds an HTTP handler for the auth service.
// Returns the path prefix to mount it on.
func NewAuthServiceHandler(svc AuthServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	mux.Handle(AuthServiceRegisterProcedure, connect.NewUnaryHandler(AuthServiceRegisterProcedure, svc.Register, opts...))
	mux.Handle(AuthServiceLoginProcedure, connect.NewUnaryHandler(AuthServiceLoginProcedure, svc.Login, opts...))
	mux.Handle(AuthServiceGetCurrentMemberProcedure, connect.NewUnaryHandler(AuthServiceGetCurrentMemberProcedure, svc.GetCurrentMember, opts...))
	return AuthServicePath, mux
}

// DirectoryServiceHandler is the server contract for the member directory.
type DirectoryServiceHandler interface {
	ListMembers(context.Context, *connect.Request[ListMembersRequest]) (*connect.Response[ListMembersResponse], error)
}

// NewDirectoryServiceHandler builds an HTTP handler for the directory service.
func NewDirectoryServiceHandler(svc DirectoryServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	mux.Handle(DirectoryServiceListMembersProcedure, connect.NewUnaryHandler(DirectoryServiceListMembersProcedure, svc.ListMembers, opts...))
	return DirectoryServicePath, mux
}

// GroupServiceHandler is the server contract for group management.
type GroupServiceHandler interface {
	CreateGroup(context.Context, *connect.Request[CreateGroupRequest]) (*connect.Response[CreateGroupResponse], error)
	GetGroup(context.Context, *connect.Request[GetGroupRequest]) (*connect.Response[GetGroupResponse], error)
	ListGroups(context.Context, *connect.Request[ListGroupsRequest]) (*connect.Response[ListGroupsResponse], error)
	AddMember(context.Context, *connect.Request[AddMemberRequest]) (*connect.Response[AddMemberResponse], error)
	RemoveMember(context.Context, *connect.Request[RemoveMemberRequest]) (*connect.Response[RemoveMemberResponse], error)
	DeleteGroup(context.Context, *connect.Request[DeleteGroupRequest]) (*connect.Response[DeleteGroupResponse], error)
	GetGroupBalances(context.Context, *connect.Request[GetGroupBalancesRequest]) (*connect.Response[GetGroupBalancesResponse], error)
}

// NewGroupServiceHandler builds an HTTP handler for the group service.
func NewGroupServiceHandler(svc GroupServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	mux.Handle(GroupServiceCreateGroupProcedure, connect.NewUnaryHandler(GroupServiceCreateGroupProcedure, svc.CreateGroup, opts...))
	mux.Handle(GroupServiceGetGroupProcedure, connect.NewUnaryHandler(GroupServiceGetGroupProcedure, svc.GetGroup, opts...))
	mux.Handle(GroupServiceListGroupsProcedure, connect.NewUnaryHandler(GroupServiceListGroupsProcedure, svc.ListGroups, opts...))
	mux.Handle(GroupServiceAddMemberProcedure, connect.NewUnaryHandler(GroupServiceAddMemberProcedure, svc.AddMember, opts...))
	mux.Handle(GroupServiceRemoveMemberProcedure, connect.NewUnaryHandler(GroupServiceRemoveMemberProcedure, svc.RemoveMember, opts...))
	mux.Handle(GroupServiceDeleteGroupProcedure, connect.NewUnaryHandler(GroupServiceDeleteGroupProcedure, svc.DeleteGroup, opts...))
	mux.Handle(GroupServiceGetGroupBalancesProcedure, connect.NewUnaryHandler(GroupServiceGetGroupBalancesProcedure, svc.GetGroupBalances, opts...))
	return GroupServicePath, mux
}

// ExpenseServiceHandler is the server contract for group expenses and
// the caller's balance view.
type ExpenseServiceHandler interface {
	CreateExpense(context.Context, *connect.Request[CreateExpenseRequest]) (*connect.Response[CreateExpenseResponse], error)
	GetExpense(context.Context, *connect.Request[GetExpenseRequest]) (*connect.Response[GetExpenseResponse], error)
	ListExpenses(context.Context, *connect.Request[ListExpensesRequest]) (*connect.Response[ListExpensesResponse], error)
	UpdateExpense(context.Context, *connect.Request[UpdateExpenseRequest]) (*connect.Response[UpdateExpenseResponse], error)
	DeleteExpense(context.Context, *connect.Request[DeleteExpenseRequest]) (*connect.Response[DeleteExpenseResponse], error)
	GetMyBalances(context.Context, *connect.Request[GetMyBalancesRequest]) (*connect.Response[GetMyBalancesResponse], error)
}

// NewExpenseServiceHandler builds an HTTP handler for the expense service.
func NewExpenseServiceHandler(svc ExpenseServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	mux.Handle(ExpenseServiceCreateExpenseProcedure, connect.NewUnaryHandler(ExpenseServiceCreateExpenseProcedure, svc.CreateExpense, opts...))
	mux.Handle(ExpenseServiceGetExpenseProcedure, connect.NewUnaryHandler(ExpenseServiceGetExpenseProcedure, svc.GetExpense, opts...))
	mux.Handle(ExpenseServiceListExpensesProcedure, connect.NewUnaryHandler(ExpenseServiceListExpensesProcedure, svc.ListExpenses, opts...))
	mux.Handle(ExpenseServiceUpdateExpenseProcedure, connect.NewUnaryHandler(ExpenseServiceUpdateExpenseProcedure, svc.UpdateExpense, opts...))
	mux.Handle(ExpenseServiceDeleteExpenseProcedure, connect.NewUnaryHandler(ExpenseServiceDeleteExpenseProcedure, svc.DeleteExpense, opts...))
	mux.Handle(ExpenseServiceGetMyBalancesProcedure, connect.NewUnaryHandler(ExpenseServiceGetMyBalancesProcedure, svc.GetMyBalances, opts...))
	return ExpenseServicePath, mux
}

// SettlementServiceHandler is the server contract for the settlement
// state machine.
type SettlementServiceHandler interface {
	RequestSettlement(context.Context, *connect.Request[RequestSettlementRequest]) (*connect.Response[RequestSettlementResponse], error)
	ConfirmSettlement(context.Context, *connect.Request[ConfirmSettlementRequest]) (*connect.Response[ConfirmSettlementResponse], error)
	RejectSettlement(context.Context, *connect.Request[RejectSettlementRequest]) (*connect.Response[RejectSettlementResponse], error)
}

// NewSettlementServiceHandler builds an HTTP handler for the settlement service.
func NewSettlementServiceHandler(svc SettlementServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	mux.Handle(SettlementServiceRequestSettlementProcedure, connect.NewUnaryHandler(SettlementServiceRequestSettlementProcedure, svc.RequestSettlement, opts...))
	mux.Handle(SettlementServiceConfirmSettlementProcedure, connect.NewUnaryHandler(SettlementServiceConfirmSettlementProcedure, svc.ConfirmSettlement, opts...))
	mux.Handle(SettlementServiceRejectSettlementProcedure, connect.NewUnaryHandler(SettlementServiceRejectSettlementProcedure, svc.RejectSettlement, opts...))
	return SettlementServicePath, mux
}
