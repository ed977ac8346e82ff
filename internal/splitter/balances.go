package splitter

import (
	"sort"

	"github.com/splitledger/splitledger/internal/models"
)

// Entry is the slice of split state the aggregator needs: who owes
// whom how much, in which group, and the current settlement status.
// Entries are re-read from the store on every query; there is no
// cached running balance that could drift.
type Entry struct {
	GroupID   string
	GroupName string
	PayerID   string
	DebtorID  string
	Amount    models.Money
	Status    models.SplitStatus
}

// BalanceLine is an outstanding amount against one counterparty
// within one group.
type BalanceLine struct {
	CounterpartyID string
	GroupID        string
	GroupName      string
	Amount         models.Money
}

// MemberBalances is the two-sided view for one member: what they owe
// (they are the debtor) and what they are owed (they are the payer),
// grouped by counterparty and group.
type MemberBalances struct {
	MemberID string

	OwedBy []BalanceLine // member owes these
	OwedTo []BalanceLine // member is owed these

	TotalOwedBy models.Money
	TotalOwedTo models.Money

	// Net = TotalOwedTo - TotalOwedBy. Positive means the member is
	// owed money overall.
	Net models.Money
}

type lineKey struct {
	counterparty string
	groupID      string
}

// MemberView computes the balance view for memberID from the given
// entries. Only outstanding splits (pending, requested) are summed:
// confirmed debts are settled and rejected claims are excluded.
func MemberView(memberID string, entries []Entry) MemberBalances {
	owedBy := make(map[lineKey]BalanceLine)
	owedTo := make(map[lineKey]BalanceLine)

	view := MemberBalances{MemberID: memberID}
	for _, e := range entries {
		if !e.Status.Outstanding() {
			continue
		}
		switch memberID {
		case e.DebtorID:
			k := lineKey{e.PayerID, e.GroupID}
			line := owedBy[k]
			line.CounterpartyID, line.GroupID, line.GroupName = e.PayerID, e.GroupID, e.GroupName
			line.Amount += e.Amount
			owedBy[k] = line
			view.TotalOwedBy += e.Amount
		case e.PayerID:
			k := lineKey{e.DebtorID, e.GroupID}
			line := owedTo[k]
			line.CounterpartyID, line.GroupID, line.GroupName = e.DebtorID, e.GroupID, e.GroupName
			line.Amount += e.Amount
			owedTo[k] = line
			view.TotalOwedTo += e.Amount
		}
	}

	view.OwedBy = sortLines(owedBy)
	view.OwedTo = sortLines(owedTo)
	view.Net = view.TotalOwedTo - view.TotalOwedBy
	return view
}

func sortLines(m map[lineKey]BalanceLine) []BalanceLine {
	lines := make([]BalanceLine, 0, len(m))
	for _, line := range m {
		lines = append(lines, line)
	}
	sort.Slice(lines, func(i, j int) bool {
		if lines[i].CounterpartyID != lines[j].CounterpartyID {
			return lines[i].CounterpartyID < lines[j].CounterpartyID
		}
		return lines[i].GroupID < lines[j].GroupID
	})
	return lines
}

// GroupBalance is one member's standing within a group, computed from
// outstanding splits only.
type GroupBalance struct {
	MemberID string

	// Owed is the sum this member still owes others in the group.
	Owed models.Money

	// OwedTo is the sum others still owe this member.
	OwedTo models.Money

	// Net = OwedTo - Owed.
	Net models.Money
}

// DebtEdge is one transfer in the simplified debt matrix: From pays
// To the given amount.
type DebtEdge struct {
	From   string
	To     string
	Amount models.Money
}

// GroupView computes per-member net balances for one group's entries
// and a simplified debt matrix that settles those balances with a
// minimal-ish number of transfers (greedy matching of debtors to
// creditors in ascending member-ID order, so the output is stable).
func GroupView(entries []Entry) ([]GroupBalance, []DebtEdge) {
	byMember := make(map[string]*GroupBalance)
	touch := func(id string) *GroupBalance {
		b, ok := byMember[id]
		if !ok {
			b = &GroupBalance{MemberID: id}
			byMember[id] = b
		}
		return b
	}

	for _, e := range entries {
		if !e.Status.Outstanding() {
			continue
		}
		touch(e.DebtorID).Owed += e.Amount
		touch(e.PayerID).OwedTo += e.Amount
	}

	balances := make([]GroupBalance, 0, len(byMember))
	for _, b := range byMember {
		b.Net = b.OwedTo - b.Owed
		balances = append(balances, *b)
	}
	sort.Slice(balances, func(i, j int) bool { return balances[i].MemberID < balances[j].MemberID })

	// Split into debtors and creditors, then walk both lists matching
	// the current debtor against the current creditor until one side
	// is exhausted. Integer amounts, no epsilon needed.
	var debtors, creditors []GroupBalance
	for _, b := range balances {
		switch {
		case b.Net < 0:
			debtors = append(debtors, b)
		case b.Net > 0:
			creditors = append(creditors, b)
		}
	}

	var edges []DebtEdge
	i, j := 0, 0
	remainingDebt := make(map[string]models.Money, len(debtors))
	remainingCredit := make(map[string]models.Money, len(creditors))
	for _, d := range debtors {
		remainingDebt[d.MemberID] = -d.Net
	}
	for _, c := range creditors {
		remainingCredit[c.MemberID] = c.Net
	}
	for i < len(debtors) && j < len(creditors) {
		debtor := debtors[i].MemberID
		creditor := creditors[j].MemberID

		amount := remainingDebt[debtor]
		if remainingCredit[creditor] < amount {
			amount = remainingCredit[creditor]
		}
		if amount > 0 {
			edges = append(edges, DebtEdge{From: debtor, To: creditor, Amount: amount})
		}

		remainingDebt[debtor] -= amount
		remainingCredit[creditor] -= amount
		if remainingDebt[debtor] == 0 {
			i++
		}
		if remainingCredit[creditor] == 0 {
			j++
		}
	}

	return balances, edges
}
