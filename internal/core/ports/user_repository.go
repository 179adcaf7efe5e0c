package ports

import (
	"context"

	"github.com/hostelhub/hostel-api/internal/core/domain"
)

// UserRepository defines persistence for account records. Implementations
// must never return the password hash from FindByID; that lookup backs the
// per-request identity resolution and its result flows toward clients.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
}
