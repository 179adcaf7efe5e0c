package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/hostelhub/hostel-api/internal/core/domain"
	"github.com/hostelhub/hostel-api/internal/core/ports"
)

// AuthService implements registration, login, and profile maintenance.
type AuthService struct {
	repo     ports.UserRepository
	issuer   *TokenIssuer
	throttle ports.LoginThrottle
	logger   zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, issuer *TokenIssuer, throttle ports.LoginThrottle, logger zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, issuer: issuer, throttle: throttle, logger: logger}
}

// Register creates an account. Email uniqueness is checked up front so a
// duplicate yields domain.ErrUserExists rather than a raw index violation;
// the repository's unique index still backs the race.
func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	if input.Username == "" || input.Email == "" || input.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	role := input.Role
	if role == "" {
		role = domain.DefaultRole
	}
	if !domain.ValidRole(role) {
		return nil, domain.ErrInvalidCredentials
	}

	if _, err := s.repo.FindByEmail(ctx, input.Email); err == nil {
		return nil, domain.ErrUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	firstName := input.FirstName
	if firstName == "" {
		firstName = input.Username
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: string(hash),
		FirstName:    firstName,
		LastName:     input.LastName,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", created.ID).Str("role", created.Role).Msg("account created")
	return created, nil
}

// Login verifies credentials and mints a session token. Failures keep their
// identity distinct: unknown email is ErrUserNotFound, a bad password is
// ErrInvalidCredentials, a throttled origin is ErrTooManyAttempts.
func (s *AuthService) Login(ctx context.Context, email, password, remoteIP string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	if s.throttle != nil {
		allowed, err := s.throttle.Allow(ctx, email, remoteIP)
		if err != nil {
			s.logger.Warn().Err(err).Msg("login throttle unavailable, allowing attempt")
		} else if !allowed {
			return "", nil, domain.ErrTooManyAttempts
		}
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		if s.throttle != nil {
			_ = s.throttle.RecordFailure(ctx, email, remoteIP)
		}
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.issuer.Issue(user)
	if err != nil {
		return "", nil, err
	}

	if s.throttle != nil {
		_ = s.throttle.Reset(ctx, email, remoteIP)
	}

	s.logger.Info().Str("user_id", user.ID).Str("role", user.Role).Msg("login succeeded")
	return token, user, nil
}

// UpdateProfile rewrites the self-mutable fields. Email and role are read
// from the stored record and carried over untouched.
func (s *AuthService) UpdateProfile(ctx context.Context, input ports.UpdateProfileInput) (*domain.User, error) {
	user, err := s.repo.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	if input.Username != "" {
		user.Username = input.Username
	}
	if input.FirstName != "" {
		user.FirstName = input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	user.UpdatedAt = time.Now().UTC()

	updated, err := s.repo.Update(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", updated.ID).Msg("profile updated")
	return updated, nil
}
