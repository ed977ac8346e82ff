package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/splitledger/splitledger/internal/apperr"
	"github.com/splitledger/splitledger/internal/middleware"
	"github.com/splitledger/splitledger/internal/models"
	"github.com/splitledger/splitledger/internal/storage"
	"github.com/splitledger/splitledger/pkg/api"
)

// SettlementService implements the SettlementService RPC interface:
// the split settlement state machine. Every transition is a
// compare-and-swap in the store, so two racing callers cannot both
// win; the loser sees the state the winner left behind.
type SettlementService struct {
	store  storage.Store
	logger *slog.Logger
}

// NewSettlementService creates a new settlement service.
func NewSettlementService(store storage.Store, logger *slog.Logger) *SettlementService {
	return &SettlementService{store: store, logger: logger}
}

// RequestSettlement lets the debtor claim a pending split was paid,
// moving it to requested.
func (s *SettlementService) RequestSettlement(ctx context.Context, req *connect.Request[api.RequestSettlementRequest]) (*connect.Response[api.RequestSettlementResponse], error) {
	split, err := s.transition(ctx, req.Msg.SplitID, actorDebtor, models.StatusPending, models.StatusRequested)
	if err != nil {
		return nil, rpcError(err)
	}
	return connect.NewResponse(&api.RequestSettlementResponse{Split: toAPISplit(split)}), nil
}

// ConfirmSettlement lets the payer acknowledge a requested split,
// moving it to confirmed and stamping the settlement time.
func (s *SettlementService) ConfirmSettlement(ctx context.Context, req *connect.Request[api.ConfirmSettlementRequest]) (*connect.Response[api.ConfirmSettlementResponse], error) {
	split, err := s.transition(ctx, req.Msg.SplitID, actorPayer, models.StatusRequested, models.StatusConfirmed)
	if err != nil {
		return nil, rpcError(err)
	}
	return connect.NewResponse(&api.ConfirmSettlementResponse{Split: toAPISplit(split)}), nil
}

// RejectSettlement lets the payer dispute a requested split, moving
// it to rejected. Rejected is terminal; the split leaves the
// outstanding balance and settling the debt again takes a new
// expense.
func (s *SettlementService) RejectSettlement(ctx context.Context, req *connect.Request[api.RejectSettlementRequest]) (*connect.Response[api.RejectSettlementResponse], error) {
	split, err := s.transition(ctx, req.Msg.SplitID, actorPayer, models.StatusRequested, models.StatusRejected)
	if err != nil {
		return nil, rpcError(err)
	}
	return connect.NewResponse(&api.RejectSettlementResponse{Split: toAPISplit(split)}), nil
}

type actorRole int

const (
	actorDebtor actorRole = iota
	actorPayer
)

// transition enforces the actor rule, then hands the state rule to
// the store's compare-and-swap. The actor check reads the split
// first, but correctness does not depend on that read staying fresh:
// payer and debtor never change, and the status check is the CAS.
func (s *SettlementService) transition(ctx context.Context, splitID string, role actorRole, from, to models.SplitStatus) (*models.Split, error) {
	actorID := middleware.GetMemberID(ctx)
	if actorID == "" {
		return nil, errUnauthenticated()
	}

	split, err := s.store.GetSplit(ctx, splitID)
	if err != nil {
		return nil, err
	}
	switch role {
	case actorDebtor:
		if split.DebtorID != actorID {
			return nil, apperr.Permission("request settlement", "only the debtor can request settlement")
		}
	case actorPayer:
		if split.PayerID != actorID {
			return nil, apperr.Permission("settle split", "only the payer can confirm or reject settlement")
		}
	}

	updated, err := s.store.TransitionSplit(ctx, splitID, from, to)
	if err != nil {
		s.logger.Warn("Settlement transition failed", "split_id", splitID, "from", from, "to", to, "error", err)
		return nil, err
	}

	s.logger.Info("Settlement transition", "split_id", splitID, "from", from, "to", to, "actor_id", actorID)
	return updated, nil
}
