package service

import (
	"context"
	"log/slog"
	"sort"
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

const dateLayout = "2006-01-02"

// ExpenseService implements the ExpenseService RPC interface: group
// expenses, their splits, and the caller's balance view.
type ExpenseService struct {
	store  storage.Store
	logger *slog.Logger
}

// NewExpenseService creates a new expense service.
func NewExpenseService(store storage.Store, logger *slog.Logger) *ExpenseService {
	return &ExpenseService{store: store, logger: logger}
}

// expenseInput is the validated, strategy-resolved form shared by
// create and update.
type expenseInput struct {
	amount        models.Money
	description   string
	date          string
	category      models.Category
	paymentMethod models.PaymentMethod
	splitType     models.SplitType
	shares        map[string]models.Money
}

// resolveExpense validates the common expense fields against the
// group and runs the split resolver. The payer must be a group
// member, every participant must be a group member, and the resolver
// runs before anything is written.
func resolveExpense(group *models.Group, payerID string, amountCents int64, description, date, category, paymentMethod string, spec *api.SplitSpec) (*expenseInput, error) {
	if !group.IsMember(payerID) {
		return nil, apperr.Validation(apperr.PayerNotMember, "payer %q is not a member of the group", payerID)
	}

	in := &expenseInput{
		amount:      models.Money(amountCents),
		description: description,
		date:        date,
	}
	if in.date == "" {
		in.date = time.Now().Format(dateLayout)
	} else if _, err := time.Parse(dateLayout, in.date); err != nil {
		return nil, apperr.Validation(apperr.InvalidInput, "date must be YYYY-MM-DD, got %q", date)
	}

	in.category = models.CategoryOther
	if category != "" {
		in.category = models.Category(category)
		if !in.category.Valid() {
			return nil, apperr.Validation(apperr.InvalidInput, "unknown category %q", category)
		}
	}
	in.paymentMethod = models.PaymentOther
	if paymentMethod != "" {
		in.paymentMethod = models.PaymentMethod(paymentMethod)
		if !in.paymentMethod.Valid() {
			return nil, apperr.Validation(apperr.InvalidInput, "unknown payment method %q", paymentMethod)
		}
	}

	strategy, participants, err := strategyFromSpec(spec)
	if err != nil {
		return nil, err
	}
	in.splitType = strategy.Type()
	for _, p := range participants {
		if !group.IsMember(p) {
			return nil, apperr.Validation(apperr.NotGroupMember, "participant %q is not a member of the group", p)
		}
	}

	in.shares, err = strategy.Split(in.amount, participants)
	if err != nil {
		return nil, err
	}
	return in, nil
}

// buildSplits materializes Split records from resolved shares. The
// payer's own share is implicit and zero allocations (a participant
// at 0%) produce no record.
func buildSplits(expenseID, payerID string, shares map[string]models.Money) []models.Split {
	debtors := make([]string, 0, len(shares))
	for id := range shares {
		debtors = append(debtors, id)
	}
	sort.Strings(debtors)

	splits := make([]models.Split, 0, len(debtors))
	for _, debtorID := range debtors {
		amount := shares[debtorID]
		if debtorID == payerID || amount == 0 {
			continue
		}
		splits = append(splits, models.Split{
			ID:         uuid.New().String(),
			ExpenseID:  expenseID,
			PayerID:    payerID,
			DebtorID:   debtorID,
			AmountOwed: amount,
			Status:     models.StatusPending,
		})
	}
	return splits
}

// CreateExpense records a group expense paid by the caller and its
// resolved splits in one atomic write.
func (s *ExpenseService) CreateExpense(ctx context.Context, req *connect.Request[api.CreateExpenseRequest]) (*connect.Response[api.CreateExpenseResponse], error) {
	actorID := middleware.GetMemberID(ctx)
	if actorID == "" {
		return nil, errUnauthenticated()
	}

	group, err := s.store.GetGroup(ctx, req.Msg.GroupID)
	if err != nil {
		return nil, rpcError(err)
	}

	in, err := resolveExpense(group, actorID, req.Msg.AmountCents, req.Msg.Description, req.Msg.Date, req.Msg.Category, req.Msg.PaymentMethod, req.Msg.Split)
	if err != nil {
		s.logger.Warn("Expense rejected", "group_id", group.ID, "payer_id", actorID, "error", err)
		return nil, rpcError(err)
	}

	now := time.Now().Unix()
	expense := &models.GroupExpense{
		ID:            uuid.New().String(),
		GroupID:       group.ID,
		PaidBy:        actorID,
		Amount:        in.amount,
		Description:   in.description,
		Date:          in.date,
		Category:      in.category,
		PaymentMethod: in.paymentMethod,
		SplitType:     in.splitType,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	expense.Splits = buildSplits(expense.ID, actorID, in.shares)

	if err := s.store.CreateExpense(ctx, expense); err != nil {
		s.logger.Error("Failed to create expense", "group_id", group.ID, "error", err)
		return nil, rpcError(err)
	}

	s.logger.Info("Expense created", "expense_id", expense.ID, "group_id", group.ID,
		"payer_id", actorID, "amount", expense.Amount, "splits", len(expense.Splits))
	return connect.NewResponse(&api.CreateExpenseResponse{Expense: toAPIExpense(expense)}), nil
}

// GetExpense returns an expense with its splits. Group members only.
func (s *ExpenseService) GetExpense(ctx context.Context, req *connect.Request[api.GetExpenseRequest]) (*connect.Response[api.GetExpenseResponse], error) {
	actorID := middleware.GetMemberID(ctx)
	if actorID == "" {
		return nil, errUnauthenticated()
	}

	expense, _, err := s.loadExpenseForMember(ctx, req.Msg.ExpenseID, actorID)
	if err != nil {
		return nil, rpcError(err)
	}
	return connect.NewResponse(&api.GetExpenseResponse{Expense: toAPIExpense(expense)}), nil
}

// ListExpenses returns a group's expenses. Group members only.
func (s *ExpenseService) ListExpenses(ctx context.Context, req *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error) {
	actorID := middleware.GetMemberID(ctx)
	if actorID == "" {
		return nil, errUnauthenticated()
	}

	group, err := s.store.GetGroup(ctx, req.Msg.GroupID)
	if err != nil {
		return nil, rpcError(err)
	}
	if !group.IsMember(actorID) {
		return nil, rpcError(apperr.Permission("list expenses", "caller is not a member of the group"))
	}

	expenses, err := s.store.ListExpensesByGroup(ctx, group.ID)
	if err != nil {
		s.logger.Error("Failed to list expenses", "group_id", group.ID, "error", err)
		return nil, rpcError(err)
	}

	resp := &api.ListExpensesResponse{Expenses: make([]*api.Expense, 0, len(expenses))}
	for _, e := range expenses {
		resp.Expenses = append(resp.Expenses, toAPIExpense(e))
	}
	return connect.NewResponse(resp), nil
}

// UpdateExpense re-resolves and atomically replaces an expense's
// splits. Payer only, and only while every existing split is still
// pending.
func (s *ExpenseService) UpdateExpense(ctx context.Context, req *connect.Request[api.UpdateExpenseRequest]) (*connect.Response[api.UpdateExpenseResponse], error) {
	actorID := middleware.GetMemberID(ctx)
	if actorID == "" {
		return nil, errUnauthenticated()
	}

	expense, group, err := s.loadExpenseForMember(ctx, req.Msg.ExpenseID, actorID)
	if err != nil {
		return nil, rpcError(err)
	}
	if expense.PaidBy != actorID {
		return nil, rpcError(apperr.Permission("update expense", "only the payer can update an expense"))
	}
	for i := range expense.Splits {
		if status := expense.Splits[i].Status; status != models.StatusPending {
			return nil, rpcError(apperr.InvalidState("update expense", string(status)))
		}
	}

	in, err := resolveExpense(group, actorID, req.Msg.AmountCents, req.Msg.Description, req.Msg.Date, req.Msg.Category, req.Msg.PaymentMethod, req.Msg.Split)
	if err != nil {
		s.logger.Warn("Expense update rejected", "expense_id", expense.ID, "error", err)
		return nil, rpcError(err)
	}

	updated := &models.GroupExpense{
		ID:            expense.ID,
		GroupID:       expense.GroupID,
		PaidBy:        expense.PaidBy,
		Amount:        in.amount,
		Description:   in.description,
		Date:          in.date,
		Category:      in.category,
		PaymentMethod: in.paymentMethod,
		SplitType:     in.splitType,
		CreatedAt:     expense.CreatedAt,
		UpdatedAt:     time.Now().Unix(),
	}
	updated.Splits = buildSplits(updated.ID, actorID, in.shares)

	if err := s.store.ReplaceExpense(ctx, updated); err != nil {
		s.logger.Error("Failed to update expense", "expense_id", expense.ID, "error", err)
		return nil, rpcError(err)
	}

	s.logger.Info("Expense updated", "expense_id", updated.ID, "amount", updated.Amount, "splits", len(updated.Splits))
	return connect.NewResponse(&api.UpdateExpenseResponse{Expense: toAPIExpense(updated)}), nil
}

// DeleteExpense removes an expense and its splits. Payer or group
// admin.
func (s *ExpenseService) DeleteExpense(ctx context.Context, req *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[api.DeleteExpenseResponse], error) {
	actorID := middleware.GetMemberID(ctx)
	if actorID == "" {
		return nil, errUnauthenticated()
	}

	expense, group, err := s.loadExpenseForMember(ctx, req.Msg.ExpenseID, actorID)
	if err != nil {
		return nil, rpcError(err)
	}
	if expense.PaidBy != actorID && !group.IsAdmin(actorID) {
		return nil, rpcError(apperr.Permission("delete expense", "only the payer or a group admin can delete an expense"))
	}

	if err := s.store.DeleteExpense(ctx, expense.ID); err != nil {
		s.logger.Error("Failed to delete expense", "expense_id", expense.ID, "error", err)
		return nil, rpcError(err)
	}

	s.logger.Info("Expense deleted", "expense_id", expense.ID, "deleted_by", actorID)
	return connect.NewResponse(&api.DeleteExpenseResponse{}), nil
}

// GetMyBalances returns the caller's two-sided outstanding balance
// view across all groups.
func (s *ExpenseService) GetMyBalances(ctx context.Context, req *connect.Request[api.GetMyBalancesRequest]) (*connect.Response[api.GetMyBalancesResponse], error) {
	actorID := middleware.GetMemberID(ctx)
	if actorID == "" {
		return nil, errUnauthenticated()
	}

	details, err := s.store.ListSplitDetailsByMember(ctx, actorID)
	if err != nil {
		s.logger.Error("Failed to load member splits", "member_id", actorID, "error", err)
		return nil, rpcError(err)
	}

	view := splitter.MemberView(actorID, balanceEntries(details))
	return connect.NewResponse(&api.GetMyBalancesResponse{
		OwedBy:           toAPIBalanceLines(view.OwedBy),
		OwedTo:           toAPIBalanceLines(view.OwedTo),
		TotalOwedByCents: int64(view.TotalOwedBy),
		TotalOwedToCents: int64(view.TotalOwedTo),
		NetCents:         int64(view.Net),
	}), nil
}

func toAPIBalanceLines(lines []splitter.BalanceLine) []*api.BalanceLine {
	out := make([]*api.BalanceLine, 0, len(lines))
	for _, l := range lines {
		out = append(out, &api.BalanceLine{
			CounterpartyID: l.CounterpartyID,
			GroupID:        l.GroupID,
			GroupName:      l.GroupName,
			AmountCents:    int64(l.Amount),
		})
	}
	return out
}

// loadExpenseForMember fetches an expense and its group, verifying
// the actor belongs to the group.
func (s *ExpenseService) loadExpenseForMember(ctx context.Context, expenseID, actorID string) (*models.GroupExpense, *models.Group, error) {
	expense, err := s.store.GetExpense(ctx, expenseID)
	if err != nil {
		return nil, nil, err
	}
	group, err := s.store.GetGroup(ctx, expense.GroupID)
	if err != nil {
		return nil, nil, err
	}
	if !group.IsMember(actorID) {
		return nil, nil, apperr.Permission("access expense", "caller is not a member of the expense's group")
	}
	return expense, group, nil
}
