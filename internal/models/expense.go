package models

// SplitType selects the strategy used to decompose an expense amount
// into per-member splits.
type SplitType string

const (
	SplitTypeEqual      SplitType = "EQUAL"
	SplitTypePercentage SplitType = "PERCENTAGE"
	SplitTypeExact      SplitType = "EXACT"
	SplitTypeShares     SplitType = "SHARES"
)

// Valid reports whether t is a known split type.
func (t SplitType) Valid() bool {
	switch t {
	case SplitTypeEqual, SplitTypePercentage, SplitTypeExact, SplitTypeShares:
		return true
	}
	return false
}

// Category tags an expense for later filtering.
type Category string

const (
	CategoryFood          Category = "food"
	CategoryTransport     Category = "transport"
	CategoryEntertainment Category = "entertainment"
	CategoryHealth        Category = "health"
	CategoryShopping      Category = "shopping"
	CategoryOther         Category = "other"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryFood, CategoryTransport, CategoryEntertainment,
		CategoryHealth, CategoryShopping, CategoryOther:
		return true
	}
	return false
}

// PaymentMethod records how the payer settled the merchant.
type PaymentMethod string

const (
	PaymentCash  PaymentMethod = "cash"
	PaymentCard  PaymentMethod = "card"
	PaymentUPI   PaymentMethod = "upi"
	PaymentOther PaymentMethod = "other"
)

func (p PaymentMethod) Valid() bool {
	switch p {
	case PaymentCash, PaymentCard, PaymentUPI, PaymentOther:
		return true
	}
	return false
}

// GroupExpense is an expense scoped to a group, paid in full by one
// member and decomposed into Splits for the non-paying participants.
// It is immutable after creation except through an explicit update,
// which re-runs split validation and replaces the Split set.
type GroupExpense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	// GroupID is the group this expense belongs to.
	GroupID string

	// PaidBy is the member who fronted the full amount.
	PaidBy string

	// Amount is the total expense amount. Always > 0.
	Amount Money

	// Description is optional free text.
	Description string

	// Date is the day the expense occurred, formatted YYYY-MM-DD.
	Date string

	Category      Category
	PaymentMethod PaymentMethod

	// SplitType records which strategy produced the splits.
	SplitType SplitType

	// Splits is one record per non-payer participant. The payer's own
	// share is implicit: amount minus the sum of the splits.
	Splits []Split

	// CreatedAt / UpdatedAt are Unix timestamps.
	CreatedAt int64
	UpdatedAt int64
}
