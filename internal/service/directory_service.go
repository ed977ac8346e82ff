package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/splitledger/splitledger/internal/middleware"
	"github.com/splitledger/splitledger/internal/storage"
	"github.com/splitledger/splitledger/pkg/api"
)

// DirectoryService implements the DirectoryService RPC interface:
// the member directory used when assembling groups.
type DirectoryService struct {
	store  storage.Store
	logger *slog.Logger
}

// NewDirectoryService creates a new directory service.
func NewDirectoryService(store storage.Store, logger *slog.Logger) *DirectoryService {
	return &DirectoryService{store: store, logger: logger}
}

// ListMembers returns directory candidates, optionally filtered by a
// username or display name substring.
func (s *DirectoryService) ListMembers(ctx context.Context, req *connect.Request[api.ListMembersRequest]) (*connect.Response[api.ListMembersResponse], error) {
	if middleware.GetMemberID(ctx) == "" {
		return nil, errUnauthenticated()
	}

	members, err := s.store.ListMembers(ctx, req.Msg.Query)
	if err != nil {
		s.logger.Error("Failed to list members", "error", err)
		return nil, rpcError(err)
	}

	resp := &api.ListMembersResponse{Members: make([]*api.Member, 0, len(members))}
	for _, m := range members {
		resp.Members = append(resp.Members, toAPIMember(m))
	}
	return connect.NewResponse(resp), nil
}
