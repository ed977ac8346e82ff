// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"

	"github.com/splitledger/splitledger/internal/models"
)

// Store defines the persistence contract for the expense engine.
// Implementations must provide atomic multi-record writes for the
// expense operations (expense plus splits is all-or-nothing) and a
// compare-and-swap semantic for split status transitions, and at
// least read-committed isolation so a status can never be read that
// was not durably written.
//
// Missing records surface as *apperr.NotFoundError and lost status
// races as *apperr.InvalidStateError, so the service layer can pass
// them through unchanged.
type Store interface {
	// Members (the member directory)

	CreateMember(ctx context.Context, member *models.Member) error
	GetMemberByID(ctx context.Context, id string) (*models.Member, error)
	// GetMemberByEmail returns (nil, nil) when no member has the email.
	GetMemberByEmail(ctx context.Context, email string) (*models.Member, error)
	// GetMembersByIDs returns the members that exist, keyed by ID.
	GetMembersByIDs(ctx context.Context, ids []string) (map[string]*models.Member, error)
	// ListMembers returns directory candidates, optionally filtered by
	// a username/display-name substring.
	ListMembers(ctx context.Context, query string) ([]*models.Member, error)

	// Groups

	// CreateGroup writes the group and its memberships in one
	// transaction.
	CreateGroup(ctx context.Context, group *models.Group) error
	// GetGroup returns the group with its full membership list.
	GetGroup(ctx context.Context, id string) (*models.Group, error)
	ListGroupsByMember(ctx context.Context, memberID string) ([]*models.Group, error)
	AddGroupMember(ctx context.Context, membership *models.GroupMembership) error
	RemoveGroupMember(ctx context.Context, groupID, memberID string) error
	// DeleteGroup removes the group; expenses and splits cascade.
	DeleteGroup(ctx context.Context, id string) error

	// Expenses and splits

	// CreateExpense writes the expense and all its splits atomically.
	CreateExpense(ctx context.Context, expense *models.GroupExpense) error
	// GetExpense returns the expense with its splits.
	GetExpense(ctx context.Context, id string) (*models.GroupExpense, error)
	ListExpensesByGroup(ctx context.Context, groupID string) ([]*models.GroupExpense, error)
	// ReplaceExpense updates the expense row and atomically swaps its
	// split set for the given one. It fails with
	// *apperr.InvalidStateError if any existing split has left
	// pending, checked inside the same transaction as the swap.
	ReplaceExpense(ctx context.Context, expense *models.GroupExpense) error
	DeleteExpense(ctx context.Context, id string) error

	GetSplit(ctx context.Context, id string) (*models.Split, error)
	// TransitionSplit is a compare-and-swap: it moves the split from
	// `from` to `to` only if the stored status still equals `from`.
	// A lost race or illegal source state yields
	// *apperr.InvalidStateError with the status actually observed.
	// A transition landing on confirmed stamps settled_at as part of
	// the same statement.
	TransitionSplit(ctx context.Context, id string, from, to models.SplitStatus) (*models.Split, error)
	// ListSplitDetailsByMember returns every split where the member is
	// payer or debtor, joined with group and expense context.
	ListSplitDetailsByMember(ctx context.Context, memberID string) ([]*models.SplitDetail, error)
	ListSplitDetailsByGroup(ctx context.Context, groupID string) ([]*models.SplitDetail, error)

	// Close releases any resources held by the store.
	Close() error
}
