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

// CreateGroup writes the group and its memberships in one transaction.
// Generates the group ID and timestamps when unset.
func (s *Store) CreateGroup(ctx context.Context, group *models.Group) error {
	if group.ID == "" {
		group.ID = uuid.New().String()
	}
	if group.CreatedAt == 0 {
		group.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO groups (id, name, description, currency, avatar_url, created_by, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
		group.ID, group.Name, group.Description, group.Currency, group.AvatarURL, group.CreatedBy, group.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert group: %w", err)
	}

	for i := range group.Members {
		m := &group.Members[i]
		m.GroupID = group.ID
		if m.JoinedAt == 0 {
			m.JoinedAt = group.CreatedAt
		}
		_, err = tx.ExecContext(ctx,
			"INSERT INTO group_members (group_id, member_id, is_admin, nickname, joined_at) VALUES (?, ?, ?, ?, ?)",
			m.GroupID, m.MemberID, m.IsAdmin, m.Nickname, m.JoinedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert membership: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetGroup retrieves a group by ID with its full membership list.
func (s *Store) GetGroup(ctx context.Context, id string) (*models.Group, error) {
	group := &models.Group{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, description, currency, avatar_url, created_by, created_at FROM groups WHERE id = ?",
		id,
	).Scan(&group.ID, &group.Name, &group.Description, &group.Currency, &group.AvatarURL, &group.CreatedBy, &group.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, apperr.NotFound("group", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get group: %w", err)
	}

	members, err := s.groupMembers(ctx, id)
	if err != nil {
		return nil, err
	}
	group.Members = members
	return group, nil
}

func (s *Store) groupMembers(ctx context.Context, groupID string) ([]models.GroupMembership, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT group_id, member_id, is_admin, nickname, joined_at FROM group_members WHERE group_id = ? ORDER BY joined_at, member_id",
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get group members: %w", err)
	}
	defer rows.Close()

	var members []models.GroupMembership
	for rows.Next() {
		var m models.GroupMembership
		if err := rows.Scan(&m.GroupID, &m.MemberID, &m.IsAdmin, &m.Nickname, &m.JoinedAt); err != nil {
			return nil, fmt.Errorf("failed to scan membership: %w", err)
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate memberships: %w", err)
	}
	return members, nil
}

// ListGroupsByMember retrieves all groups the member belongs to.
func (s *Store) ListGroupsByMember(ctx context.Context, memberID string) ([]*models.Group, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT g.id, g.name, g.description, g.currency, g.avatar_url, g.created_by, g.created_at
		 FROM groups g
		 JOIN group_members gm ON gm.group_id = g.id
		 WHERE gm.member_id = ?
		 ORDER BY g.created_at DESC`,
		memberID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	defer rows.Close()

	var groups []*models.Group
	for rows.Next() {
		group := &models.Group{}
		if err := rows.Scan(&group.ID, &group.Name, &group.Description, &group.Currency,
			&group.AvatarURL, &group.CreatedBy, &group.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}
		groups = append(groups, group)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate groups: %w", err)
	}

	for _, group := range groups {
		members, err := s.groupMembers(ctx, group.ID)
		if err != nil {
			return nil, err
		}
		group.Members = members
	}
	return groups, nil
}

// AddGroupMember inserts a membership record.
func (s *Store) AddGroupMember(ctx context.Context, membership *models.GroupMembership) error {
	if membership.JoinedAt == 0 {
		membership.JoinedAt = time.Now().Unix()
	}
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO group_members (group_id, member_id, is_admin, nickname, joined_at) VALUES (?, ?, ?, ?, ?)",
		membership.GroupID, membership.MemberID, membership.IsAdmin, membership.Nickname, membership.JoinedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to add group member: %w", err)
	}
	return nil
}

// RemoveGroupMember deletes a membership record.
func (s *Store) RemoveGroupMember(ctx context.Context, groupID, memberID string) error {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM group_members WHERE group_id = ? AND member_id = ?",
		groupID, memberID,
	)
	if err != nil {
		return fmt.Errorf("failed to remove group member: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.NotFound("membership", memberID)
	}
	return nil
}

// DeleteGroup removes a group; memberships, expenses, and splits
// cascade through foreign keys.
func (s *Store) DeleteGroup(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM groups WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete group: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.NotFound("group", id)
	}
	return nil
}
