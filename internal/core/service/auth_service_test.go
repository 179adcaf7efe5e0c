package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/hostelhub/hostel-api/internal/core/domain"
	"github.com/hostelhub/hostel-api/internal/core/ports"
)

// fakeUserRepo is an in-memory UserRepository keyed by email.
type fakeUserRepo struct {
	byEmail map[string]*domain.User
	nextID  int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: make(map[string]*domain.User), nextID: 1}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, ok := r.byEmail[user.Email]; ok {
		return nil, domain.ErrUserExists
	}
	created := *user
	created.ID = string(rune('a' + r.nextID))
	r.nextID++
	r.byEmail[user.Email] = &created
	return &created, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	if u, ok := r.byEmail[email]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *fakeUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	for _, u := range r.byEmail {
		if u.ID == id {
			copied := *u
			copied.PasswordHash = ""
			return &copied, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *fakeUserRepo) Update(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.byEmail {
		if u.ID == user.ID {
			u.Username = user.Username
			u.FirstName = user.FirstName
			u.LastName = user.LastName
			u.UpdatedAt = user.UpdatedAt
			copied := *u
			return &copied, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

// blockingThrottle denies every attempt.
type blockingThrottle struct{}

func (blockingThrottle) Allow(context.Context, string, string) (bool, error) { return false, nil }
func (blockingThrottle) RecordFailure(context.Context, string, string) error { return nil }
func (blockingThrottle) Reset(context.Context, string, string) error         { return nil }

func newTestService(repo ports.UserRepository, throttle ports.LoginThrottle) *AuthService {
	issuer := NewTokenIssuer("test-secret", TokenTTL)
	return NewAuthService(repo, issuer, throttle, zerolog.Nop())
}

func TestRegister_DefaultsAndSanitization(t *testing.T) {
	svc := newTestService(newFakeUserRepo(), nil)

	user, err := svc.Register(context.Background(), ports.RegisterInput{
		Username: "ann",
		Email:    "ann@x.com",
		Password: "secret1",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Role != domain.RoleResident {
		t.Fatalf("role = %q, want resident", user.Role)
	}
	if user.FirstName != "ann" {
		t.Fatalf("firstName = %q, want username fallback", user.FirstName)
	}
	if user.PasswordHash == "secret1" {
		t.Fatalf("password stored in clear")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret1")) != nil {
		t.Fatalf("stored hash does not verify password")
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc := newTestService(newFakeUserRepo(), nil)
	input := ports.RegisterInput{Username: "ann", Email: "ann@x.com", Password: "secret1"}

	if _, err := svc.Register(context.Background(), input); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if _, err := svc.Register(context.Background(), input); err != domain.ErrUserExists {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestRegister_MissingFields(t *testing.T) {
	svc := newTestService(newFakeUserRepo(), nil)

	cases := []ports.RegisterInput{
		{Email: "a@x.com", Password: "p"},
		{Username: "a", Password: "p"},
		{Username: "a", Email: "a@x.com"},
	}
	for _, input := range cases {
		if _, err := svc.Register(context.Background(), input); err != domain.ErrInvalidCredentials {
			t.Fatalf("input %+v: expected ErrInvalidCredentials, got %v", input, err)
		}
	}
}

func TestRegister_UnknownRole(t *testing.T) {
	svc := newTestService(newFakeUserRepo(), nil)
	_, err := svc.Register(context.Background(), ports.RegisterInput{
		Username: "ann", Email: "ann@x.com", Password: "secret1", Role: "landlord",
	})
	if err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLogin_TokenSubjectResolvesBack(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo, nil)

	created, err := svc.Register(context.Background(), ports.RegisterInput{
		Username: "ann", Email: "ann@x.com", Password: "secret1",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	token, user, err := svc.Login(context.Background(), "ann@x.com", "secret1", "127.0.0.1")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if token == "" {
		t.Fatalf("empty token")
	}
	if user.ID != created.ID {
		t.Fatalf("login user id = %q, want %q", user.ID, created.ID)
	}

	subject, err := ParseSubject(token, "test-secret")
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if subject != created.ID {
		t.Fatalf("token subject = %q, want %q", subject, created.ID)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	svc := newTestService(newFakeUserRepo(), nil)
	if _, err := svc.Register(context.Background(), ports.RegisterInput{
		Username: "ann", Email: "ann@x.com", Password: "secret1",
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	token, _, err := svc.Login(context.Background(), "ann@x.com", "wrong", "127.0.0.1")
	if err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if token != "" {
		t.Fatalf("token issued on bad password")
	}
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc := newTestService(newFakeUserRepo(), nil)
	if _, _, err := svc.Login(context.Background(), "ghost@x.com", "secret1", "127.0.0.1"); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestLogin_Throttled(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo, blockingThrottle{})
	if _, _, err := svc.Login(context.Background(), "ann@x.com", "secret1", "127.0.0.1"); err != domain.ErrTooManyAttempts {
		t.Fatalf("expected ErrTooManyAttempts, got %v", err)
	}
}

func TestUpdateProfile_KeepsEmailAndRole(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo, nil)

	created, err := svc.Register(context.Background(), ports.RegisterInput{
		Username: "ann", Email: "ann@x.com", Password: "secret1", Role: domain.RoleStaff,
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	lastName := "Lee"
	updated, err := svc.UpdateProfile(context.Background(), ports.UpdateProfileInput{
		UserID: created.ID, Username: "annie", FirstName: "Ann", LastName: &lastName,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Username != "annie" || updated.FirstName != "Ann" || updated.LastName != "Lee" {
		t.Fatalf("profile fields not applied: %+v", updated)
	}
	if updated.Email != "ann@x.com" || updated.Role != domain.RoleStaff {
		t.Fatalf("email or role mutated: %+v", updated)
	}
}

func TestUpdateProfile_OmittedLastNameKept(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo, nil)

	created, err := svc.Register(context.Background(), ports.RegisterInput{
		Username: "ann", Email: "ann@x.com", Password: "secret1", LastName: "Lee",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	// A username-only update leaves the stored last name alone.
	updated, err := svc.UpdateProfile(context.Background(), ports.UpdateProfileInput{
		UserID: created.ID, Username: "annie",
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.LastName != "Lee" {
		t.Fatalf("last name = %q after username-only update, want %q", updated.LastName, "Lee")
	}

	// An explicit empty string still clears it.
	empty := ""
	updated, err = svc.UpdateProfile(context.Background(), ports.UpdateProfileInput{
		UserID: created.ID, LastName: &empty,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.LastName != "" {
		t.Fatalf("last name = %q after explicit clear, want empty", updated.LastName)
	}
}
