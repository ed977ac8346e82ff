package models

// Group is a named collection of members that share expenses.
// Invariants: a group always has at least one member, the set of
// admins is a subset of the members, and the creator is an admin.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string

	// Name is the display name of the group (e.g. "Roommates").
	Name string

	// Description is optional free text.
	Description string

	// Currency is an ISO 4217 label for the group's amounts.
	// It is informational only; there is no conversion.
	Currency string

	// AvatarURL is an optional group picture location.
	AvatarURL string

	// CreatedBy is the member ID of the creator. The creator is always
	// an admin and cannot be removed from the group.
	CreatedBy string

	// Members is the full membership list, creator included.
	Members []GroupMembership

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64
}

// GroupMembership is the many-to-many join between groups and members.
type GroupMembership struct {
	GroupID  string
	MemberID string

	// IsAdmin marks members allowed to delete the group and remove
	// other members.
	IsAdmin bool

	// Nickname is a per-group display override for the member.
	Nickname string

	// JoinedAt is the Unix timestamp when the member was added.
	JoinedAt int64
}

// Membership returns the membership record for memberID, or nil if
// the member does not belong to the group.
func (g *Group) Membership(memberID string) *GroupMembership {
	for i := range g.Members {
		if g.Members[i].MemberID == memberID {
			return &g.Members[i]
		}
	}
	return nil
}

// IsMember reports whether memberID belongs to the group.
func (g *Group) IsMember(memberID string) bool {
	return g.Membership(memberID) != nil
}

// IsAdmin reports whether memberID is an admin of the group.
func (g *Group) IsAdmin(memberID string) bool {
	m := g.Membership(memberID)
	return m != nil && m.IsAdmin
}
