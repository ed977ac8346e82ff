package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/splitledger/splitledger/internal/apperr"
	"github.com/splitledger/splitledger/internal/models"
)

func scanSplit(row interface{ Scan(...any) error }) (*models.Split, error) {
	sp := &models.Split{}
	var amount int64
	var status string
	var settledAt sql.NullInt64
	err := row.Scan(&sp.ID, &sp.ExpenseID, &sp.PayerID, &sp.DebtorID, &amount, &status, &settledAt)
	if err != nil {
		return nil, err
	}
	sp.AmountOwed = models.Money(amount)
	sp.Status = models.SplitStatus(status)
	if settledAt.Valid {
		sp.SettledAt = settledAt.Int64
	}
	return sp, nil
}

// GetSplit retrieves a split by ID.
func (s *Store) GetSplit(ctx context.Context, id string) (*models.Split, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, expense_id, payer_id, debtor_id, amount_owed, status, settled_at FROM splits WHERE id = ?", id)
	sp, err := scanSplit(row)
	if err == sql.ErrNoRows {
		return nil, apperr.NotFound("split", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get split: %w", err)
	}
	return sp, nil
}

// TransitionSplit moves a split from one status to another with a
// compare-and-swap on the stored status. When the guard fails, the
// split is re-read so the caller gets the state that actually won:
// a missing row is NotFound, anything else is InvalidState. Two
// concurrent transitions can therefore never both succeed.
// Confirmation stamps settled_at here, in the winning statement, so
// the timestamp belongs to the transition that actually landed.
func (s *Store) TransitionSplit(ctx context.Context, id string, from, to models.SplitStatus) (*models.Split, error) {
	var settled any
	if to == models.StatusConfirmed {
		settled = time.Now().Unix()
	}
	res, err := s.db.ExecContext(ctx,
		"UPDATE splits SET status = ?, settled_at = ? WHERE id = ? AND status = ?",
		string(to), settled, id, string(from),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to transition split: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		current, err := s.GetSplit(ctx, id)
		if err != nil {
			return nil, err // NotFound or storage failure
		}
		return nil, apperr.InvalidState(string(to), string(current.Status))
	}
	return s.GetSplit(ctx, id)
}

const splitDetailQuery = `
	SELECT sp.id, sp.expense_id, sp.payer_id, sp.debtor_id, sp.amount_owed, sp.status, sp.settled_at,
	       e.group_id, g.name, e.description, e.expense_date
	FROM splits sp
	JOIN expenses e ON e.id = sp.expense_id
	JOIN groups g ON g.id = e.group_id`

func (s *Store) querySplitDetails(ctx context.Context, query string, args ...any) ([]*models.SplitDetail, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query split details: %w", err)
	}
	defer rows.Close()

	var details []*models.SplitDetail
	for rows.Next() {
		d := &models.SplitDetail{}
		var amount int64
		var status string
		var settledAt sql.NullInt64
		if err := rows.Scan(&d.ID, &d.ExpenseID, &d.PayerID, &d.DebtorID, &amount, &status, &settledAt,
			&d.GroupID, &d.GroupName, &d.ExpenseDescription, &d.ExpenseDate); err != nil {
			return nil, fmt.Errorf("failed to scan split detail: %w", err)
		}
		d.AmountOwed = models.Money(amount)
		d.Status = models.SplitStatus(status)
		if settledAt.Valid {
			d.SettledAt = settledAt.Int64
		}
		details = append(details, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate split details: %w", err)
	}
	return details, nil
}

// ListSplitDetailsByMember returns every split, any status, where the
// member is payer or debtor, joined with group and expense context.
func (s *Store) ListSplitDetailsByMember(ctx context.Context, memberID string) ([]*models.SplitDetail, error) {
	return s.querySplitDetails(ctx,
		splitDetailQuery+" WHERE sp.payer_id = ? OR sp.debtor_id = ? ORDER BY e.expense_date DESC, sp.id",
		memberID, memberID,
	)
}

// ListSplitDetailsByGroup returns every split in the group, any status.
func (s *Store) ListSplitDetailsByGroup(ctx context.Context, groupID string) ([]*models.SplitDetail, error) {
	return s.querySplitDetails(ctx,
		splitDetailQuery+" WHERE e.group_id = ? ORDER BY e.expense_date DESC, sp.id",
		groupID,
	)
}
