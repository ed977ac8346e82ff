package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/splitledger/splitledger/internal/apperr"
	"github.com/splitledger/splitledger/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func seedMember(t *testing.T, store *Store, username string) *models.Member {
	t.Helper()
	m := models.NewMember(username+"@example.com", username, username, "hash")
	require.NoError(t, store.CreateMember(context.Background(), m))
	return m
}

func seedGroup(t *testing.T, store *Store, creator *models.Member, others ...*models.Member) *models.Group {
	t.Helper()
	now := time.Now().Unix()
	group := &models.Group{
		ID:        uuid.New().String(),
		Name:      "Trip",
		Currency:  "INR",
		CreatedBy: creator.ID,
		CreatedAt: now,
	}
	group.Members = append(group.Members, models.GroupMembership{
		GroupID: group.ID, MemberID: creator.ID, IsAdmin: true, JoinedAt: now,
	})
	for _, m := range others {
		group.Members = append(group.Members, models.GroupMembership{
			GroupID: group.ID, MemberID: m.ID, JoinedAt: now,
		})
	}
	require.NoError(t, store.CreateGroup(context.Background(), group))
	return group
}

func seedExpense(t *testing.T, store *Store, group *models.Group, payer *models.Member, amount models.Money, debtorShares map[string]models.Money) *models.GroupExpense {
	t.Helper()
	now := time.Now().Unix()
	expense := &models.GroupExpense{
		ID:            uuid.New().String(),
		GroupID:       group.ID,
		PaidBy:        payer.ID,
		Amount:        amount,
		Description:   "dinner",
		Date:          "2026-08-01",
		Category:      models.CategoryFood,
		PaymentMethod: models.PaymentCard,
		SplitType:     models.SplitTypeEqual,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	for debtorID, owed := range debtorShares {
		expense.Splits = append(expense.Splits, models.Split{
			ID:         uuid.New().String(),
			ExpenseID:  expense.ID,
			PayerID:    payer.ID,
			DebtorID:   debtorID,
			AmountOwed: owed,
			Status:     models.StatusPending,
		})
	}
	require.NoError(t, store.CreateExpense(context.Background(), expense))
	return expense
}

func TestMembers(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	alice := seedMember(t, store, "alice")
	bob := seedMember(t, store, "bob")

	t.Run("get by id", func(t *testing.T) {
		got, err := store.GetMemberByID(ctx, alice.ID)
		require.NoError(t, err)
		assert.Equal(t, alice.Username, got.Username)
		assert.Equal(t, alice.Email, got.Email)
	})

	t.Run("get by id missing", func(t *testing.T) {
		_, err := store.GetMemberByID(ctx, "nope")
		assert.True(t, apperr.IsNotFound(err))
	})

	t.Run("get by email", func(t *testing.T) {
		got, err := store.GetMemberByEmail(ctx, "bob@example.com")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, bob.ID, got.ID)
	})

	t.Run("get by email missing returns nil", func(t *testing.T) {
		got, err := store.GetMemberByEmail(ctx, "nobody@example.com")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("get by ids", func(t *testing.T) {
		got, err := store.GetMembersByIDs(ctx, []string{alice.ID, bob.ID, "nope"})
		require.NoError(t, err)
		assert.Len(t, got, 2)
		assert.Contains(t, got, alice.ID)
		assert.Contains(t, got, bob.ID)
	})

	t.Run("list with query", func(t *testing.T) {
		got, err := store.ListMembers(ctx, "ali")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, alice.ID, got[0].ID)
	})

	t.Run("duplicate email rejected", func(t *testing.T) {
		dup := models.NewMember("alice@example.com", "alice2", "alice2", "hash")
		assert.Error(t, store.CreateMember(ctx, dup))
	})
}

func TestGroups(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	alice := seedMember(t, store, "alice")
	bob := seedMember(t, store, "bob")
	carol := seedMember(t, store, "carol")
	group := seedGroup(t, store, alice, bob)

	t.Run("get with members", func(t *testing.T) {
		got, err := store.GetGroup(ctx, group.ID)
		require.NoError(t, err)
		assert.Equal(t, group.Name, got.Name)
		assert.Len(t, got.Members, 2)
		assert.True(t, got.IsAdmin(alice.ID))
		assert.False(t, got.IsAdmin(bob.ID))
	})

	t.Run("list by member", func(t *testing.T) {
		got, err := store.ListGroupsByMember(ctx, bob.ID)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, group.ID, got[0].ID)

		got, err = store.ListGroupsByMember(ctx, carol.ID)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("add and remove member", func(t *testing.T) {
		err := store.AddGroupMember(ctx, &models.GroupMembership{
			GroupID: group.ID, MemberID: carol.ID, Nickname: "C", JoinedAt: time.Now().Unix(),
		})
		require.NoError(t, err)

		got, err := store.GetGroup(ctx, group.ID)
		require.NoError(t, err)
		assert.Len(t, got.Members, 3)
		assert.Equal(t, "C", got.Membership(carol.ID).Nickname)

		require.NoError(t, store.RemoveGroupMember(ctx, group.ID, carol.ID))
		got, err = store.GetGroup(ctx, group.ID)
		require.NoError(t, err)
		assert.Len(t, got.Members, 2)
	})

	t.Run("delete missing", func(t *testing.T) {
		err := store.DeleteGroup(ctx, "nope")
		assert.True(t, apperr.IsNotFound(err))
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, store.DeleteGroup(ctx, group.ID))
		_, err := store.GetGroup(ctx, group.ID)
		assert.True(t, apperr.IsNotFound(err))
	})
}

func TestExpenses(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	alice := seedMember(t, store, "alice")
	bob := seedMember(t, store, "bob")
	carol := seedMember(t, store, "carol")
	group := seedGroup(t, store, alice, bob, carol)

	expense := seedExpense(t, store, group, alice, 9000, map[string]models.Money{
		bob.ID:   3000,
		carol.ID: 3000,
	})

	t.Run("get with splits", func(t *testing.T) {
		got, err := store.GetExpense(ctx, expense.ID)
		require.NoError(t, err)
		assert.Equal(t, models.Money(9000), got.Amount)
		assert.Len(t, got.Splits, 2)
		for _, split := range got.Splits {
			assert.Equal(t, alice.ID, split.PayerID)
			assert.Equal(t, models.StatusPending, split.Status)
		}
	})

	t.Run("list by group", func(t *testing.T) {
		got, err := store.ListExpensesByGroup(ctx, group.ID)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Len(t, got[0].Splits, 2)
	})

	t.Run("replace swaps splits", func(t *testing.T) {
		updated := *expense
		updated.Amount = 6000
		updated.Splits = []models.Split{{
			ID:         uuid.New().String(),
			ExpenseID:  expense.ID,
			PayerID:    alice.ID,
			DebtorID:   bob.ID,
			AmountOwed: 3000,
			Status:     models.StatusPending,
		}}
		require.NoError(t, store.ReplaceExpense(ctx, &updated))

		got, err := store.GetExpense(ctx, expense.ID)
		require.NoError(t, err)
		assert.Equal(t, models.Money(6000), got.Amount)
		require.Len(t, got.Splits, 1)
		assert.Equal(t, bob.ID, got.Splits[0].DebtorID)

		// the old splits are gone
		_, err = store.GetSplit(ctx, expense.Splits[0].ID)
		assert.True(t, apperr.IsNotFound(err))
	})

	t.Run("replace refused once a split leaves pending", func(t *testing.T) {
		current, err := store.GetExpense(ctx, expense.ID)
		require.NoError(t, err)
		require.Len(t, current.Splits, 1)
		splitID := current.Splits[0].ID

		// A settlement request lands after the caller last read the
		// expense but before the replace.
		_, err = store.TransitionSplit(ctx, splitID, models.StatusPending, models.StatusRequested)
		require.NoError(t, err)

		replacement := *current
		replacement.Amount = 8000
		replacement.Splits = []models.Split{{
			ID:         uuid.New().String(),
			ExpenseID:  expense.ID,
			PayerID:    alice.ID,
			DebtorID:   carol.ID,
			AmountOwed: 4000,
			Status:     models.StatusPending,
		}}
		err = store.ReplaceExpense(ctx, &replacement)
		var stateErr *apperr.InvalidStateError
		require.True(t, errors.As(err, &stateErr))
		assert.Equal(t, string(models.StatusRequested), stateErr.Current)

		// The requested split survived untouched.
		got, err := store.GetSplit(ctx, splitID)
		require.NoError(t, err)
		assert.Equal(t, models.StatusRequested, got.Status)
	})

	t.Run("delete cascades to splits", func(t *testing.T) {
		got, err := store.GetExpense(ctx, expense.ID)
		require.NoError(t, err)
		splitID := got.Splits[0].ID

		require.NoError(t, store.DeleteExpense(ctx, expense.ID))
		_, err = store.GetExpense(ctx, expense.ID)
		assert.True(t, apperr.IsNotFound(err))
		_, err = store.GetSplit(ctx, splitID)
		assert.True(t, apperr.IsNotFound(err))
	})
}

func TestDeleteCascadesAcrossConnections(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	alice := seedMember(t, store, "alice")
	bob := seedMember(t, store, "bob")
	group := seedGroup(t, store, alice, bob)
	expense := seedExpense(t, store, group, alice, 4000, map[string]models.Money{bob.ID: 2000})
	splitID := expense.Splits[0].ID

	// Pin the connection that served every call so far, forcing the
	// delete onto a freshly opened pool connection. Foreign keys must
	// be on for that connection too or the cascade silently skips.
	conn, err := store.db.Conn(ctx)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, store.DeleteGroup(ctx, group.ID))

	_, err = store.GetExpense(ctx, expense.ID)
	assert.True(t, apperr.IsNotFound(err))
	_, err = store.GetSplit(ctx, splitID)
	assert.True(t, apperr.IsNotFound(err))
}

func TestTransitionSplit(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	alice := seedMember(t, store, "alice")
	bob := seedMember(t, store, "bob")
	group := seedGroup(t, store, alice, bob)
	expense := seedExpense(t, store, group, alice, 4000, map[string]models.Money{bob.ID: 2000})
	splitID := expense.Splits[0].ID

	t.Run("pending to requested", func(t *testing.T) {
		got, err := store.TransitionSplit(ctx, splitID, models.StatusPending, models.StatusRequested)
		require.NoError(t, err)
		assert.Equal(t, models.StatusRequested, got.Status)
		assert.Zero(t, got.SettledAt)
	})

	t.Run("lost race reports observed state", func(t *testing.T) {
		_, err := store.TransitionSplit(ctx, splitID, models.StatusPending, models.StatusRequested)
		var stateErr *apperr.InvalidStateError
		require.True(t, errors.As(err, &stateErr))
		assert.Equal(t, string(models.StatusRequested), stateErr.Current)
	})

	t.Run("requested to confirmed stamps settled_at", func(t *testing.T) {
		before := time.Now().Unix()
		got, err := store.TransitionSplit(ctx, splitID, models.StatusRequested, models.StatusConfirmed)
		require.NoError(t, err)
		assert.Equal(t, models.StatusConfirmed, got.Status)
		assert.GreaterOrEqual(t, got.SettledAt, before)
		assert.LessOrEqual(t, got.SettledAt, time.Now().Unix())
	})

	t.Run("confirmed is terminal", func(t *testing.T) {
		_, err := store.TransitionSplit(ctx, splitID, models.StatusRequested, models.StatusConfirmed)
		var stateErr *apperr.InvalidStateError
		require.True(t, errors.As(err, &stateErr))
		assert.Equal(t, string(models.StatusConfirmed), stateErr.Current)
	})

	t.Run("missing split", func(t *testing.T) {
		_, err := store.TransitionSplit(ctx, "nope", models.StatusPending, models.StatusRequested)
		assert.True(t, apperr.IsNotFound(err))
	})
}

func TestSplitDetails(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	alice := seedMember(t, store, "alice")
	bob := seedMember(t, store, "bob")
	carol := seedMember(t, store, "carol")
	group := seedGroup(t, store, alice, bob, carol)
	seedExpense(t, store, group, alice, 9000, map[string]models.Money{
		bob.ID:   3000,
		carol.ID: 3000,
	})

	t.Run("by member covers both sides", func(t *testing.T) {
		details, err := store.ListSplitDetailsByMember(ctx, alice.ID)
		require.NoError(t, err)
		assert.Len(t, details, 2) // alice is payer on both

		details, err = store.ListSplitDetailsByMember(ctx, bob.ID)
		require.NoError(t, err)
		require.Len(t, details, 1)
		assert.Equal(t, group.ID, details[0].GroupID)
		assert.Equal(t, "Trip", details[0].GroupName)
		assert.Equal(t, "dinner", details[0].ExpenseDescription)
	})

	t.Run("by group", func(t *testing.T) {
		details, err := store.ListSplitDetailsByGroup(ctx, group.ID)
		require.NoError(t, err)
		assert.Len(t, details, 2)
	})

	t.Run("group delete cascades all the way down", func(t *testing.T) {
		require.NoError(t, store.DeleteGroup(ctx, group.ID))
		details, err := store.ListSplitDetailsByGroup(ctx, group.ID)
		require.NoError(t, err)
		assert.Empty(t, details)
	})
}
