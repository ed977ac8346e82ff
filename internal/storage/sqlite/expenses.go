package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/splitledger/splitledger/internal/apperr"
	"github.com/splitledger/splitledger/internal/models"
)

const expenseColumns = "id, group_id, paid_by, amount, description, expense_date, category, payment_method, split_type, created_at, updated_at"

// CreateExpense writes the expense and all its splits in one
// transaction. Generates IDs and timestamps when unset.
func (s *Store) CreateExpense(ctx context.Context, expense *models.GroupExpense) error {
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	now := time.Now().Unix()
	if expense.CreatedAt == 0 {
		expense.CreatedAt = now
	}
	if expense.UpdatedAt == 0 {
		expense.UpdatedAt = expense.CreatedAt
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO expenses ("+expenseColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		expense.ID, expense.GroupID, expense.PaidBy, int64(expense.Amount), expense.Description,
		expense.Date, string(expense.Category), string(expense.PaymentMethod),
		string(expense.SplitType), expense.CreatedAt, expense.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	if err := insertSplits(ctx, tx, expense); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func insertSplits(ctx context.Context, tx *sql.Tx, expense *models.GroupExpense) error {
	for i := range expense.Splits {
		sp := &expense.Splits[i]
		if sp.ID == "" {
			sp.ID = uuid.New().String()
		}
		sp.ExpenseID = expense.ID
		var settledAt any
		if sp.SettledAt != 0 {
			settledAt = sp.SettledAt
		}
		_, err := tx.ExecContext(ctx,
			"INSERT INTO splits (id, expense_id, payer_id, debtor_id, amount_owed, status, settled_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
			sp.ID, sp.ExpenseID, sp.PayerID, sp.DebtorID, int64(sp.AmountOwed), string(sp.Status), settledAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert split: %w", err)
		}
	}
	return nil
}

// GetExpense retrieves an expense by ID with its splits.
func (s *Store) GetExpense(ctx context.Context, id string) (*models.GroupExpense, error) {
	expense, err := scanExpense(s.db.QueryRowContext(ctx,
		"SELECT "+expenseColumns+" FROM expenses WHERE id = ?", id))
	if err == sql.ErrNoRows {
		return nil, apperr.NotFound("expense", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}

	splits, err := s.expenseSplits(ctx, id)
	if err != nil {
		return nil, err
	}
	expense.Splits = splits
	return expense, nil
}

func scanExpense(row interface{ Scan(...any) error }) (*models.GroupExpense, error) {
	e := &models.GroupExpense{}
	var amount int64
	var category, paymentMethod, splitType string
	err := row.Scan(&e.ID, &e.GroupID, &e.PaidBy, &amount, &e.Description, &e.Date,
		&category, &paymentMethod, &splitType, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	e.Amount = models.Money(amount)
	e.Category = models.Category(category)
	e.PaymentMethod = models.PaymentMethod(paymentMethod)
	e.SplitType = models.SplitType(splitType)
	return e, nil
}

func (s *Store) expenseSplits(ctx context.Context, expenseID string) ([]models.Split, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, expense_id, payer_id, debtor_id, amount_owed, status, settled_at FROM splits WHERE expense_id = ? ORDER BY debtor_id",
		expenseID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get splits: %w", err)
	}
	defer rows.Close()

	var splits []models.Split
	for rows.Next() {
		sp, err := scanSplit(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan split: %w", err)
		}
		splits = append(splits, *sp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate splits: %w", err)
	}
	return splits, nil
}

// ListExpensesByGroup retrieves all expenses for a group, newest
// first, each with its splits.
func (s *Store) ListExpensesByGroup(ctx context.Context, groupID string) ([]*models.GroupExpense, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+expenseColumns+" FROM expenses WHERE group_id = ? ORDER BY expense_date DESC, created_at DESC",
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*models.GroupExpense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	for _, e := range expenses {
		splits, err := s.expenseSplits(ctx, e.ID)
		if err != nil {
			return nil, err
		}
		e.Splits = splits
	}
	return expenses, nil
}

// ReplaceExpense updates the expense row and atomically replaces its
// split set with expense.Splits.
func (s *Store) ReplaceExpense(ctx context.Context, expense *models.GroupExpense) error {
	if expense.UpdatedAt == 0 {
		expense.UpdatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// The pending-only guard lives inside the transaction: a split
	// that entered settlement after the caller's read must fail the
	// replace, never be silently deleted.
	var status string
	err = tx.QueryRowContext(ctx,
		"SELECT status FROM splits WHERE expense_id = ? AND status != ? LIMIT 1",
		expense.ID, string(models.StatusPending),
	).Scan(&status)
	switch {
	case err == nil:
		return apperr.InvalidState("replace splits", status)
	case err != sql.ErrNoRows:
		return fmt.Errorf("failed to check split status: %w", err)
	}

	res, err := tx.ExecContext(ctx,
		`UPDATE expenses SET amount = ?, description = ?, expense_date = ?, category = ?,
		 payment_method = ?, split_type = ?, updated_at = ? WHERE id = ?`,
		int64(expense.Amount), expense.Description, expense.Date, string(expense.Category),
		string(expense.PaymentMethod), string(expense.SplitType), expense.UpdatedAt, expense.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update expense: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.NotFound("expense", expense.ID)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM splits WHERE expense_id = ?", expense.ID); err != nil {
		return fmt.Errorf("failed to clear splits: %w", err)
	}
	if err := insertSplits(ctx, tx, expense); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// DeleteExpense removes an expense; its splits cascade.
func (s *Store) DeleteExpense(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM expenses WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.NotFound("expense", id)
	}
	return nil
}
