// Package api defines the wire types and procedure bindings for the
// splitledger Connect RPC surface. Amounts travel as integer minor
// currency units (`*_cents` fields); dates as YYYY-MM-DD strings;
// timestamps as Unix seconds.
package api

// Member is a directory entry: who can be added to groups.
type Member struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	AvatarURL   string `json:"avatar_url,omitempty"`
	CreatedAt   int64  `json:"created_at"`
}

// Auth

type RegisterRequest struct {
	Email       string `json:"email"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Password    string `json:"password"`
}

type RegisterResponse struct {
	Member *Member `json:"member"`
	Token  string  `json:"token"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Member *Member `json:"member"`
	Token  string  `json:"token"`
}

type GetCurrentMemberRequest struct{}

type GetCurrentMemberResponse struct {
	Member *Member `json:"member"`
}

// Directory

type ListMembersRequest struct {
	// Query optionally filters by username/display name substring.
	Query string `json:"query,omitempty"`
}

type ListMembersResponse struct {
	Members []*Member `json:"members"`
}

// Groups

// GroupMember is one membership row inside a Group.
type GroupMember struct {
	MemberID    string `json:"member_id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Nickname    string `json:"nickname,omitempty"`
	IsAdmin     bool   `json:"is_admin"`
	JoinedAt    int64  `json:"joined_at"`
}

type Group struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Currency    string         `json:"currency"`
	AvatarURL   string         `json:"avatar_url,omitempty"`
	CreatedBy   string         `json:"created_by"`
	Members     []*GroupMember `json:"members"`
	CreatedAt   int64          `json:"created_at"`
}

// NewGroupMember names a member to include when creating a group.
type NewGroupMember struct {
	MemberID string `json:"member_id"`
	Nickname string `json:"nickname,omitempty"`
	IsAdmin  bool   `json:"is_admin,omitempty"`
}

type CreateGroupRequest struct {
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	Currency    string            `json:"currency,omitempty"`
	AvatarURL   string            `json:"avatar_url,omitempty"`
	Members     []*NewGroupMember `json:"members,omitempty"`
}

type CreateGroupResponse struct {
	Group *Group `json:"group"`
}

type GetGroupRequest struct {
	GroupID string `json:"group_id"`
}

type GetGroupResponse struct {
	Group *Group `json:"group"`
}

type ListGroupsRequest struct{}

type ListGroupsResponse struct {
	Groups []*Group `json:"groups"`
}

type AddMemberRequest struct {
	GroupID  string `json:"group_id"`
	MemberID string `json:"member_id"`
	Nickname string `json:"nickname,omitempty"`
}

type AddMemberResponse struct {
	Group *Group `json:"group"`
}

type RemoveMemberRequest struct {
	GroupID  string `json:"group_id"`
	MemberID string `json:"member_id"`
}

type RemoveMemberResponse struct {
	Group *Group `json:"group"`
}

type DeleteGroupRequest struct {
	GroupID string `json:"group_id"`
}

type DeleteGroupResponse struct{}

// GroupMemberBalance is one member's outstanding standing in a group.
type GroupMemberBalance struct {
	MemberID    string `json:"member_id"`
	OwedCents   int64  `json:"owed_cents"`
	OwedToCents int64  `json:"owed_to_cents"`
	NetCents    int64  `json:"net_cents"`
}

// DebtEdge is one transfer in the simplified settle-up plan.
type DebtEdge struct {
	FromMemberID string `json:"from_member_id"`
	ToMemberID   string `json:"to_member_id"`
	AmountCents  int64  `json:"amount_cents"`
}

type GetGroupBalancesRequest struct {
	GroupID string `json:"group_id"`
}

type GetGroupBalancesResponse struct {
	Balances        []*GroupMemberBalance `json:"balances"`
	SimplifiedDebts []*DebtEdge           `json:"simplified_debts"`
}

// Expenses

// SplitSpec is the discriminated strategy input: Type selects which
// of the per-strategy fields applies, and only that field may be set.
// EQUAL uses Participants; the keyed strategies name their
// participants through their map keys.
type SplitSpec struct {
	Type string `json:"type"`

	// Participants, for EQUAL only.
	Participants []string `json:"participants,omitempty"`

	// Percentages, for PERCENTAGE only: member ID -> integer percent.
	Percentages map[string]int `json:"percentages,omitempty"`

	// AmountsCents, for EXACT only: member ID -> owed amount.
	AmountsCents map[string]int64 `json:"amounts_cents,omitempty"`

	// Shares, for SHARES only: member ID -> positive share count.
	Shares map[string]int `json:"shares,omitempty"`
}

type Split struct {
	ID              string `json:"id"`
	ExpenseID       string `json:"expense_id"`
	PayerID         string `json:"payer_id"`
	DebtorID        string `json:"debtor_id"`
	AmountOwedCents int64  `json:"amount_owed_cents"`
	Status          string `json:"status"`
	SettledAt       int64  `json:"settled_at,omitempty"`
}

type Expense struct {
	ID            string   `json:"id"`
	GroupID       string   `json:"group_id"`
	PaidBy        string   `json:"paid_by"`
	AmountCents   int64    `json:"amount_cents"`
	Description   string   `json:"description,omitempty"`
	Date          string   `json:"date"`
	Category      string   `json:"category"`
	PaymentMethod string   `json:"payment_method"`
	SplitType     string   `json:"split_type"`
	Splits        []*Split `json:"splits"`
	CreatedAt     int64    `json:"created_at"`
}

type CreateExpenseRequest struct {
	GroupID       string     `json:"group_id"`
	AmountCents   int64      `json:"amount_cents"`
	Description   string     `json:"description,omitempty"`
	Date          string     `json:"date"`
	Category      string     `json:"category,omitempty"`
	PaymentMethod string     `json:"payment_method,omitempty"`
	Split         *SplitSpec `json:"split"`
}

type CreateExpenseResponse struct {
	Expense *Expense `json:"expense"`
}

type GetExpenseRequest struct {
	ExpenseID string `json:"expense_id"`
}

type GetExpenseResponse struct {
	Expense *Expense `json:"expense"`
}

type ListExpensesRequest struct {
	GroupID string `json:"group_id"`
}

type ListExpensesResponse struct {
	Expenses []*Expense `json:"expenses"`
}

type UpdateExpenseRequest struct {
	ExpenseID     string     `json:"expense_id"`
	AmountCents   int64      `json:"amount_cents"`
	Description   string     `json:"description,omitempty"`
	Date          string     `json:"date"`
	Category      string     `json:"category,omitempty"`
	PaymentMethod string     `json:"payment_method,omitempty"`
	Split         *SplitSpec `json:"split"`
}

type UpdateExpenseResponse struct {
	Expense *Expense `json:"expense"`
}

type DeleteExpenseRequest struct {
	ExpenseID string `json:"expense_id"`
}

type DeleteExpenseResponse struct{}

// BalanceLine is an outstanding amount against one counterparty in
// one group.
type BalanceLine struct {
	CounterpartyID string `json:"counterparty_id"`
	GroupID        string `json:"group_id"`
	GroupName      string `json:"group_name,omitempty"`
	AmountCents    int64  `json:"amount_cents"`
}

type GetMyBalancesRequest struct{}

type GetMyBalancesResponse struct {
	OwedBy           []*BalanceLine `json:"owed_by"`
	OwedTo           []*BalanceLine `json:"owed_to"`
	TotalOwedByCents int64          `json:"total_owed_by_cents"`
	TotalOwedToCents int64          `json:"total_owed_to_cents"`
	NetCents         int64          `json:"net_cents"`
}

// Settlement

type RequestSettlementRequest struct {
	SplitID string `json:"split_id"`
}

type RequestSettlementResponse struct {
	Split *Split `json:"split"`
}

type ConfirmSettlementRequest struct {
	SplitID string `json:"split_id"`
}

type ConfirmSettlementResponse struct {
	Split *Split `json:"split"`
}

type RejectSettlementRequest struct {
	SplitID string `json:"split_id"`
}

type RejectSettlementResponse struct {
	Split *Split `json:"split"`
}
