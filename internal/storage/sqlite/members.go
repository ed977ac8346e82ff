package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/splitledger/splitledger/internal/apperr"
	"github.com/splitledger/splitledger/internal/models"
)

const memberColumns = "id, username, email, display_name, avatar_url, password_hash, created_at"

func scanMember(row interface{ Scan(...any) error }) (*models.Member, error) {
	m := &models.Member{}
	err := row.Scan(&m.ID, &m.Username, &m.Email, &m.DisplayName, &m.AvatarURL, &m.PasswordHash, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// CreateMember inserts a new member into the database.
func (s *Store) CreateMember(ctx context.Context, member *models.Member) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO members ("+memberColumns+") VALUES (?, ?, ?, ?, ?, ?, ?)",
		member.ID, member.Username, member.Email, member.DisplayName,
		member.AvatarURL, member.PasswordHash, member.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create member: %w", err)
	}
	return nil
}

// GetMemberByID retrieves a member by ID.
func (s *Store) GetMemberByID(ctx context.Context, id string) (*models.Member, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+memberColumns+" FROM members WHERE id = ?", id)
	m, err := scanMember(row)
	if err == sql.ErrNoRows {
		return nil, apperr.NotFound("member", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get member: %w", err)
	}
	return m, nil
}

// GetMemberByEmail retrieves a member by email address.
// Returns (nil, nil) when no member has the email.
func (s *Store) GetMemberByEmail(ctx context.Context, email string) (*models.Member, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+memberColumns+" FROM members WHERE email = ?", email)
	m, err := scanMember(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get member by email: %w", err)
	}
	return m, nil
}

// GetMembersByIDs retrieves multiple members by ID, keyed by ID.
// Members that don't exist are omitted from the result.
func (s *Store) GetMembersByIDs(ctx context.Context, ids []string) (map[string]*models.Member, error) {
	members := make(map[string]*models.Member, len(ids))
	if len(ids) == 0 {
		return members, nil
	}

	query := "SELECT " + memberColumns + " FROM members WHERE id IN (?" + repeatPlaceholder(len(ids)-1) + ")"
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get members by IDs: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members[m.ID] = m
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate members: %w", err)
	}
	return members, nil
}

// ListMembers returns directory candidates ordered by username,
// optionally filtered by a username/display-name substring.
func (s *Store) ListMembers(ctx context.Context, query string) ([]*models.Member, error) {
	sqlQuery := "SELECT " + memberColumns + " FROM members"
	var args []any
	if query != "" {
		sqlQuery += " WHERE username LIKE ? OR display_name LIKE ?"
		pattern := "%" + query + "%"
		args = append(args, pattern, pattern)
	}
	sqlQuery += " ORDER BY username"

	rows, err := s.db.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	defer rows.Close()

	var members []*models.Member
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate members: %w", err)
	}
	return members, nil
}

// repeatPlaceholder returns a string of ", ?" repeated n times.
// Used for building IN clauses with multiple placeholders.
func repeatPlaceholder(n int) string {
	out := ""
	for i := 0; i < n; i++ {
		out += ", ?"
	}
	return out
}
