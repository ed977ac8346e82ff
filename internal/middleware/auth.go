package middleware

import (
	"context"
	"strings"

	"connectrpc.com/connect"

	"github.com/splitledger/splitledger/internal/auth"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const (
	// MemberIDKey is the context key for the authenticated member ID.
	MemberIDKey contextKey = "member_id"
	// UsernameKey is the context key for the authenticated username.
	UsernameKey contextKey = "username"
)

// GetMemberID extracts the acting member's ID from the context.
// Returns empty string if not found. Every core operation derives its
// actor from this, never from the request body.
func GetMemberID(ctx context.Context) string {
	id, _ := ctx.Value(MemberIDKey).(string)
	return id
}

// GetUsername extracts the acting member's username from the context.
func GetUsername(ctx context.Context) string {
	username, _ := ctx.Value(UsernameKey).(string)
	return username
}

// WithMember returns a context carrying the given member identity.
// Used by the auth interceptor and by tests that bypass it.
func WithMember(ctx context.Context, memberID, username string) context.Context {
	ctx = context.WithValue(ctx, MemberIDKey, memberID)
	return context.WithValue(ctx, UsernameKey, username)
}

// RequireAuth returns an interceptor that validates bearer tokens and
// requires authentication. It extracts the token from the
// Authorization header, validates it, and adds the member identity to
// the request context.
func RequireAuth(jwtManager *auth.JWTManager) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			claims, err := claimsFromHeader(jwtManager, req.Header().Get("Authorization"))
			if err != nil {
				return nil, connect.NewError(connect.CodeUnauthenticated, err)
			}
			return next(WithMember(ctx, claims.MemberID, claims.Username), req)
		}
	}
}

// OptionalAuth returns an interceptor that attaches the member
// identity when a valid token is present but lets unauthenticated
// requests through.
func OptionalAuth(jwtManager *auth.JWTManager) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			if claims, err := claimsFromHeader(jwtManager, req.Header().Get("Authorization")); err == nil {
				ctx = WithMember(ctx, claims.MemberID, claims.Username)
			}
			return next(ctx, req)
		}
	}
}

func claimsFromHeader(jwtManager *auth.JWTManager, header string) (*auth.Claims, error) {
	if header == "" {
		return nil, auth.ErrMissingToken
	}
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, auth.ErrInvalidToken
	}
	return jwtManager.Validate(parts[1])
}
