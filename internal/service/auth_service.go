package service

import (
	"context"
	"errors"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/splitledger/splitledger/internal/auth"
	"github.com/splitledger/splitledger/internal/middleware"
	"github.com/splitledger/splitledger/internal/storage"
	"github.com/splitledger/splitledger/pkg/api"
)

// AuthService implements the AuthService RPC interface.
type AuthService struct {
	authenticator auth.Authenticator
	jwtManager    *auth.JWTManager
	store         storage.Store
	logger        *slog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(authenticator auth.Authenticator, jwtManager *auth.JWTManager, store storage.Store, logger *slog.Logger) *AuthService {
	return &AuthService{
		authenticator: authenticator,
		jwtManager:    jwtManager,
		store:         store,
		logger:        logger,
	}
}

// Register creates a new member account and returns a bearer token.
func (s *AuthService) Register(ctx context.Context, req *connect.Request[api.RegisterRequest]) (*connect.Response[api.RegisterResponse], error) {
	s.logger.Info("Register request", "email", req.Msg.Email, "username", req.Msg.Username)

	if req.Msg.Email == "" || req.Msg.Username == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("email and username are required"))
	}
	displayName := req.Msg.DisplayName
	if displayName == "" {
		displayName = req.Msg.Username
	}

	member, err := s.authenticator.Register(ctx, req.Msg.Email, req.Msg.Username, displayName, req.Msg.Password)
	if err != nil {
		s.logger.Error("Registration failed", "email", req.Msg.Email, "error", err)
		if errors.Is(err, auth.ErrEmailExists) {
			return nil, connect.NewError(connect.CodeAlreadyExists, err)
		}
		if errors.Is(err, auth.ErrWeakPassword) {
			return nil, connect.NewError(connect.CodeInvalidArgument, err)
		}
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	token, err := s.jwtManager.Generate(member)
	if err != nil {
		s.logger.Error("Failed to generate token", "member_id", member.ID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	s.logger.Info("Member registered", "member_id", member.ID, "username", member.Username)
	return connect.NewResponse(&api.RegisterResponse{
		Member: toAPIMember(member),
		Token:  token,
	}), nil
}

// Login authenticates a member and returns a bearer token.
func (s *AuthService) Login(ctx context.Context, req *connect.Request[api.LoginRequest]) (*connect.Response[api.LoginResponse], error) {
	s.logger.Info("Login request", "email", req.Msg.Email)

	if req.Msg.Email == "" || req.Msg.Password == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, auth.ErrInvalidCredentials)
	}

	member, err := s.authenticator.Authenticate(ctx, req.Msg.Email, req.Msg.Password)
	if err != nil {
		s.logger.Warn("Login failed", "email", req.Msg.Email, "error", err)
		return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrInvalidCredentials)
	}

	token, err := s.jwtManager.Generate(member)
	if err != nil {
		s.logger.Error("Failed to generate token", "member_id", member.ID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	s.logger.Info("Member logged in", "member_id", member.ID)
	return connect.NewResponse(&api.LoginResponse{
		Member: toAPIMember(member),
		Token:  token,
	}), nil
}

// GetCurrentMember returns the member identified by the presented token.
func (s *AuthService) GetCurrentMember(ctx context.Context, req *connect.Request[api.GetCurrentMemberRequest]) (*connect.Response[api.GetCurrentMemberResponse], error) {
	memberID := middleware.GetMemberID(ctx)
	if memberID == "" {
		return nil, errUnauthenticated()
	}

	member, err := s.store.GetMemberByID(ctx, memberID)
	if err != nil {
		return nil, rpcError(err)
	}

	return connect.NewResponse(&api.GetCurrentMemberResponse{Member: toAPIMember(member)}), nil
}
