package models

// SplitStatus is the settlement state of a single Split.
//
// Lifecycle: pending -> requested -> confirmed | rejected.
// The debtor moves pending to requested (claiming money changed
// hands); only the payer can close the claim as confirmed or
// rejected. Both confirmed and rejected are terminal: a rejected
// split is not retried by the engine, settling it again requires a
// new expense.
type SplitStatus string

const (
	// StatusPending means no settlement has been initiated.
	StatusPending SplitStatus = "pending"

	// StatusRequested means the debtor claims to have paid and is
	// waiting for the payer to confirm.
	StatusRequested SplitStatus = "requested"

	// StatusConfirmed means the payer acknowledged payment. The split
	// no longer counts toward outstanding balances.
	StatusConfirmed SplitStatus = "confirmed"

	// StatusRejected means the payer disputed the claim. Terminal; the
	// split is excluded from balances and never re-enters pending.
	StatusRejected SplitStatus = "rejected"
)

func (s SplitStatus) Valid() bool {
	switch s {
	case StatusPending, StatusRequested, StatusConfirmed, StatusRejected:
		return true
	}
	return false
}

// Terminal reports whether no further transition is allowed from s.
func (s SplitStatus) Terminal() bool {
	return s == StatusConfirmed || s == StatusRejected
}

// CanTransition reports whether the settlement machine allows moving
// from s to next.
func (s SplitStatus) CanTransition(next SplitStatus) bool {
	switch s {
	case StatusPending:
		return next == StatusRequested
	case StatusRequested:
		return next == StatusConfirmed || next == StatusRejected
	}
	return false
}

// Outstanding reports whether the split still counts toward balances.
// Confirmed debts are settled; rejected claims are excluded as well
// (the underlying debt is disputed, not owed-and-open).
func (s SplitStatus) Outstanding() bool {
	return s == StatusPending || s == StatusRequested
}

// Split is one member's share of a GroupExpense. Created atomically
// with its parent expense and cascade-deleted with it. Only Status
// and SettledAt mutate after creation, and only through the
// settlement state machine.
type Split struct {
	// ID is the unique identifier for the split (UUID format).
	ID string

	// ExpenseID is the parent GroupExpense.
	ExpenseID string

	// PayerID is the member owed this amount (the expense's payer,
	// denormalized so settlement checks need no join).
	PayerID string

	// DebtorID is the member who owes this amount.
	DebtorID string

	// AmountOwed is the debtor's share. Always > 0.
	AmountOwed Money

	Status SplitStatus

	// SettledAt is the Unix timestamp of confirmation, 0 until then.
	SettledAt int64
}

// SplitDetail is a Split joined with the context needed for balance
// views: which group it belongs to and what the expense was.
type SplitDetail struct {
	Split

	GroupID            string
	GroupName          string
	ExpenseDescription string
	ExpenseDate        string
}
