package ports

import (
	"context"

	"github.com/hostelhub/hostel-api/internal/core/domain"
)

// RegisterInput carries everything needed to create an account. Role is
// optional; the service defaults and validates it.
type RegisterInput struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
	Role      string
}

// UpdateProfileInput carries the self-mutable profile fields. Email and
// role are deliberately absent: they do not change through this flow.
// LastName is a pointer so an omitted field keeps the stored value while
// an explicit empty string clears it.
type UpdateProfileInput struct {
	UserID    string
	Username  string
	FirstName string
	LastName  *string
}

// AuthService implements registration, credential verification, and token
// issuance. Login returns the signed token alongside the stored user.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password, remoteIP string) (string, *domain.User, error)
	UpdateProfile(ctx context.Context, input UpdateProfileInput) (*domain.User, error)
}

// LoginThrottle limits repeated failed logins for one identity+origin pair.
// Implementations should fail open: an unreachable backend must not lock
// everyone out.
type LoginThrottle interface {
	// Allow reports whether another attempt is permitted right now.
	Allow(ctx context.Context, email, remoteIP string) (bool, error)
	// RecordFailure counts a failed attempt against the pair.
	RecordFailure(ctx context.Context, email, remoteIP string) error
	// Reset clears the counter after a successful login.
	Reset(ctx context.Context, email, remoteIP string) error
}
