package service

import (
	"context"
	"log/slog"
	"time"

	"connectrpc.com/connect"
	"github.com/google/uuid"

	"github.com/splitledger/splitledger/internal/apperr"
	"github.com/splitledger/splitledger/internal/middleware"
	"github.com/splitledger/splitledger/internal/models"
	"github.com/splitledger/splitledger/internal/splitter"
	"github.com/splitledger/splitledger/internal/storage"
	"github.com/splitledger/splitledger/pkg/api"
)

const defaultCurrency = "INR"

// GroupService implements the GroupService RPC interface.
type GroupService struct {
	store  storage.Store
	logger *slog.Logger
}

// NewGroupService creates a new group service.
func NewGroupService(store storage.Store, logger *slog.Logger) *GroupService {
	return &GroupService{store: store, logger: logger}
}

// CreateGroup creates a group with the caller as its admin creator.
func (s *GroupService) CreateGroup(ctx context.Context, req *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error) {
	actorID := middleware.GetMemberID(ctx)
	if actorID == "" {
		return nil, errUnauthenticated()
	}
	if req.Msg.Name == "" {
		return nil, rpcError(apperr.Validation(apperr.InvalidInput, "group name is required"))
	}
	currency := req.Msg.Currency
	if currency == "" {
		currency = defaultCurrency
	}

	now := time.Now().Unix()
	group := &models.Group{
		ID:          uuid.New().String(),
		Name:        req.Msg.Name,
		Description: req.Msg.Description,
		Currency:    currency,
		AvatarURL:   req.Msg.AvatarURL,
		CreatedBy:   actorID,
		CreatedAt:   now,
	}

	// Creator first, always admin. The requested members follow,
	// validated against the directory.
	group.Members = append(group.Members, models.GroupMembership{
		GroupID:  group.ID,
		MemberID: actorID,
		IsAdmin:  true,
		JoinedAt: now,
	})
	seen := map[string]bool{actorID: true}
	targetIDs := make([]string, 0, len(req.Msg.Members))
	for _, m := range req.Msg.Members {
		if m.MemberID == actorID {
			continue
		}
		if seen[m.MemberID] {
			return nil, rpcError(apperr.Validation(apperr.DuplicateParticipant, "member %q listed more than once", m.MemberID))
		}
		seen[m.MemberID] = true
		targetIDs = append(targetIDs, m.MemberID)
		group.Members = append(group.Members, models.GroupMembership{
			GroupID:  group.ID,
			MemberID: m.MemberID,
			IsAdmin:  m.IsAdmin,
			Nickname: m.Nickname,
			JoinedAt: now,
		})
	}

	records, err := s.store.GetMembersByIDs(ctx, append(targetIDs, actorID))
	if err != nil {
		return nil, rpcError(err)
	}
	for _, id := range targetIDs {
		if _, ok := records[id]; !ok {
			return nil, rpcError(apperr.NotFound("member", id))
		}
	}

	if err := s.store.CreateGroup(ctx, group); err != nil {
		s.logger.Error("Failed to create group", "name", req.Msg.Name, "error", err)
		return nil, rpcError(err)
	}

	s.logger.Info("Group created", "group_id", group.ID, "created_by", actorID, "members", len(group.Members))
	return connect.NewResponse(&api.CreateGroupResponse{Group: toAPIGroup(group, records)}), nil
}

// GetGroup returns a group the caller belongs to.
func (s *GroupService) GetGroup(ctx context.Context, req *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GetGroupResponse], error) {
	actorID := middleware.GetMemberID(ctx)
	if actorID == "" {
		return nil, errUnauthenticated()
	}

	group, err := s.loadGroupForMember(ctx, req.Msg.GroupID, actorID)
	if err != nil {
		return nil, rpcError(err)
	}
	out, err := s.apiGroup(ctx, group)
	if err != nil {
		return nil, rpcError(err)
	}
	return connect.NewResponse(&api.GetGroupResponse{Group: out}), nil
}

// ListGroups returns every group the caller belongs to.
func (s *GroupService) ListGroups(ctx context.Context, req *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error) {
	actorID := middleware.GetMemberID(ctx)
	if actorID == "" {
		return nil, errUnauthenticated()
	}

	groups, err := s.store.ListGroupsByMember(ctx, actorID)
	if err != nil {
		s.logger.Error("Failed to list groups", "member_id", actorID, "error", err)
		return nil, rpcError(err)
	}

	resp := &api.ListGroupsResponse{Groups: make([]*api.Group, 0, len(groups))}
	for _, group := range groups {
		records, err := s.memberRecords(ctx, group)
		if err != nil {
			return nil, rpcError(err)
		}
		resp.Groups = append(resp.Groups, toAPIGroup(group, records))
	}
	return connect.NewResponse(resp), nil
}

// AddMember adds a directory member to a group. Any member may add.
func (s *GroupService) AddMember(ctx context.Context, req *connect.Request[api.AddMemberRequest]) (*connect.Response[api.AddMemberResponse], error) {
	actorID := middleware.GetMemberID(ctx)
	if actorID == "" {
		return nil, errUnauthenticated()
	}

	group, err := s.loadGroupForMember(ctx, req.Msg.GroupID, actorID)
	if err != nil {
		return nil, rpcError(err)
	}
	if group.IsMember(req.Msg.MemberID) {
		return nil, rpcError(apperr.Validation(apperr.AlreadyMember, "member %q already belongs to the group", req.Msg.MemberID))
	}
	if _, err := s.store.GetMemberByID(ctx, req.Msg.MemberID); err != nil {
		return nil, rpcError(err)
	}

	membership := &models.GroupMembership{
		GroupID:  group.ID,
		MemberID: req.Msg.MemberID,
		Nickname: req.Msg.Nickname,
		JoinedAt: time.Now().Unix(),
	}
	if err := s.store.AddGroupMember(ctx, membership); err != nil {
		s.logger.Error("Failed to add group member", "group_id", group.ID, "member_id", req.Msg.MemberID, "error", err)
		return nil, rpcError(err)
	}

	s.logger.Info("Group member added", "group_id", group.ID, "member_id", req.Msg.MemberID, "added_by", actorID)
	group, err = s.store.GetGroup(ctx, group.ID)
	if err != nil {
		return nil, rpcError(err)
	}
	out, err := s.apiGroup(ctx, group)
	if err != nil {
		return nil, rpcError(err)
	}
	return connect.NewResponse(&api.AddMemberResponse{Group: out}), nil
}

// RemoveMember removes a member from a group. Admin only; the
// creator can never be removed.
func (s *GroupService) RemoveMember(ctx context.Context, req *connect.Request[api.RemoveMemberRequest]) (*connect.Response[api.RemoveMemberResponse], error) {
	actorID := middleware.GetMemberID(ctx)
	if actorID == "" {
		return nil, errUnauthenticated()
	}

	group, err := s.loadGroupForMember(ctx, req.Msg.GroupID, actorID)
	if err != nil {
		return nil, rpcError(err)
	}
	if !group.IsAdmin(actorID) {
		return nil, rpcError(apperr.Permission("remove member", "only a group admin can remove members"))
	}
	if req.Msg.MemberID == group.CreatedBy {
		return nil, rpcError(apperr.Permission("remove member", "the group creator cannot be removed"))
	}
	if !group.IsMember(req.Msg.MemberID) {
		return nil, rpcError(apperr.Validation(apperr.NotGroupMember, "member %q does not belong to the group", req.Msg.MemberID))
	}

	if err := s.store.RemoveGroupMember(ctx, group.ID, req.Msg.MemberID); err != nil {
		s.logger.Error("Failed to remove group member", "group_id", group.ID, "member_id", req.Msg.MemberID, "error", err)
		return nil, rpcError(err)
	}

	s.logger.Info("Group member removed", "group_id", group.ID, "member_id", req.Msg.MemberID, "removed_by", actorID)
	group, err = s.store.GetGroup(ctx, group.ID)
	if err != nil {
		return nil, rpcError(err)
	}
	out, err := s.apiGroup(ctx, group)
	if err != nil {
		return nil, rpcError(err)
	}
	return connect.NewResponse(&api.RemoveMemberResponse{Group: out}), nil
}

// DeleteGroup deletes a group and cascades to its expenses and
// splits. Admin only.
func (s *GroupService) DeleteGroup(ctx context.Context, req *connect.Request[api.DeleteGroupRequest]) (*connect.Response[api.DeleteGroupResponse], error) {
	actorID := middleware.GetMemberID(ctx)
	if actorID == "" {
		return nil, errUnauthenticated()
	}

	group, err := s.loadGroupForMember(ctx, req.Msg.GroupID, actorID)
	if err != nil {
		return nil, rpcError(err)
	}
	if !group.IsAdmin(actorID) {
		return nil, rpcError(apperr.Permission("delete group", "only a group admin can delete the group"))
	}

	if err := s.store.DeleteGroup(ctx, group.ID); err != nil {
		s.logger.Error("Failed to delete group", "group_id", group.ID, "error", err)
		return nil, rpcError(err)
	}

	s.logger.Info("Group deleted", "group_id", group.ID, "deleted_by", actorID)
	return connect.NewResponse(&api.DeleteGroupResponse{}), nil
}

// GetGroupBalances returns each member's outstanding standing in the
// group plus a simplified settle-up plan.
func (s *GroupService) GetGroupBalances(ctx context.Context, req *connect.Request[api.GetGroupBalancesRequest]) (*connect.Response[api.GetGroupBalancesResponse], error) {
	actorID := middleware.GetMemberID(ctx)
	if actorID == "" {
		return nil, errUnauthenticated()
	}

	group, err := s.loadGroupForMember(ctx, req.Msg.GroupID, actorID)
	if err != nil {
		return nil, rpcError(err)
	}

	details, err := s.store.ListSplitDetailsByGroup(ctx, group.ID)
	if err != nil {
		s.logger.Error("Failed to load group splits", "group_id", group.ID, "error", err)
		return nil, rpcError(err)
	}

	balances, edges := splitter.GroupView(balanceEntries(details))
	resp := &api.GetGroupBalancesResponse{
		Balances:        make([]*api.GroupMemberBalance, 0, len(balances)),
		SimplifiedDebts: make([]*api.DebtEdge, 0, len(edges)),
	}
	for _, b := range balances {
		resp.Balances = append(resp.Balances, &api.GroupMemberBalance{
			MemberID:    b.MemberID,
			OwedCents:   int64(b.Owed),
			OwedToCents: int64(b.OwedTo),
			NetCents:    int64(b.Net),
		})
	}
	for _, e := range edges {
		resp.SimplifiedDebts = append(resp.SimplifiedDebts, &api.DebtEdge{
			FromMemberID: e.From,
			ToMemberID:   e.To,
			AmountCents:  int64(e.Amount),
		})
	}
	return connect.NewResponse(resp), nil
}

// loadGroupForMember fetches a group and verifies the actor belongs
// to it.
func (s *GroupService) loadGroupForMember(ctx context.Context, groupID, actorID string) (*models.Group, error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !group.IsMember(actorID) {
		return nil, apperr.Permission("access group", "caller is not a member of the group")
	}
	return group, nil
}

func (s *GroupService) memberRecords(ctx context.Context, group *models.Group) (map[string]*models.Member, error) {
	ids := make([]string, 0, len(group.Members))
	for _, m := range group.Members {
		ids = append(ids, m.MemberID)
	}
	return s.store.GetMembersByIDs(ctx, ids)
}

// apiGroup converts a group with its directory records joined.
func (s *GroupService) apiGroup(ctx context.Context, group *models.Group) (*api.Group, error) {
	records, err := s.memberRecords(ctx, group)
	if err != nil {
		return nil, err
	}
	return toAPIGroup(group, records), nil
}

// balanceEntries projects stored split details into aggregator
// entries.
func balanceEntries(details []*models.SplitDetail) []splitter.Entry {
	entries := make([]splitter.Entry, 0, len(details))
	for _, d := range details {
		entries = append(entries, splitter.Entry{
			GroupID:   d.GroupID,
			GroupName: d.GroupName,
			PayerID:   d.PayerID,
			DebtorID:  d.DebtorID,
			Amount:    d.AmountOwed,
			Status:    d.Status,
		})
	}
	return entries
}
