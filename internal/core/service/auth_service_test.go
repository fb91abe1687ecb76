package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/agriscan/platform/internal/core/domain"
	"github.com/agriscan/platform/internal/core/ports"
)

type stubUserRepo struct {
	users  map[string]*domain.User
	nextID int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Phone == user.Phone {
			return nil, domain.ErrUserExists
		}
	}
	copy := cloneUser(user)
	r.nextID++
	copy.ID = fmt.Sprintf("u%d", r.nextID)
	r.users[copy.ID] = cloneUser(copy)
	return cloneUser(copy), nil
}

func (r *stubUserRepo) FindByPhone(_ context.Context, phone string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Phone == phone {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, ok := r.users[user.ID]; !ok {
		return nil, domain.ErrUserNotFound
	}
	r.users[user.ID] = cloneUser(user)
	return cloneUser(user), nil
}

func (r *stubUserRepo) TouchLastActive(_ context.Context, id string, at time.Time) error {
	if u, ok := r.users[id]; ok {
		u.LastActive = at
	}
	return nil
}

func (r *stubUserRepo) ListFarmers(_ context.Context, filter ports.ListFarmersFilter) ([]*domain.User, int64, error) {
	var out []*domain.User
	for _, u := range r.users {
		if u.Role != domain.RoleFarmer {
			continue
		}
		if filter.State != "" && u.State != filter.State {
			continue
		}
		out = append(out, cloneUser(u))
	}
	return out, int64(len(out)), nil
}

func registerInput() ports.RegisterInput {
	return ports.RegisterInput{
		Phone:    "0244123456",
		Password: "harvest2024",
		FullName: "Ama Mensah",
		Role:     domain.RoleFarmer,
		City:     "Tamale",
		State:    "Northern",
	}
}

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, "secret", "GH", time.Hour)

	user, err := svc.Register(context.Background(), registerInput())
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.Phone != "+233244123456" {
		t.Fatalf("expected E.164 phone, got %s", user.Phone)
	}
	if user.PasswordHash == "harvest2024" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("harvest2024")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestAuthService_Register_InvalidPhone(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, "secret", "GH", time.Hour)

	input := registerInput()
	input.Phone = "12345"
	if _, err := svc.Register(context.Background(), input); err != domain.ErrInvalidPhone {
		t.Fatalf("expected ErrInvalidPhone, got %v", err)
	}
}

func TestAuthService_Register_InvalidRole(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, "secret", "GH", time.Hour)

	input := registerInput()
	input.Role = "admin"
	if _, err := svc.Register(context.Background(), input); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for bad role, got %v", err)
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, "secret", "GH", time.Hour)

	if _, err := svc.Register(context.Background(), registerInput()); err != nil {
		t.Fatalf("first register failed: %v", err)
	}

	// Same number in national format resolves to the same account.
	input := registerInput()
	input.Phone = "+233244123456"
	if _, err := svc.Register(context.Background(), input); err != domain.ErrUserExists {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, "secret", "GH", time.Hour)

	if _, err := svc.Register(context.Background(), registerInput()); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	token, user, err := svc.Login(context.Background(), "0244123456", "harvest2024")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token, got empty")
	}
	if user == nil || user.FullName != "Ama Mensah" {
		t.Fatalf("unexpected user: %+v", user)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["uid"] != user.ID || claims["role"] != domain.RoleFarmer {
		t.Fatalf("unexpected claims: %+v", claims)
	}

	stored, _ := repo.FindByID(context.Background(), user.ID)
	if stored.LastActive.Before(user.CreatedAt) {
		t.Fatalf("expected last active to be touched on login")
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, "secret", "GH", time.Hour)

	if _, err := svc.Register(context.Background(), registerInput()); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if _, _, err := svc.Login(context.Background(), "0244123456", "wrong"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_UpdateProfile_Partial(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, "secret", "GH", time.Hour)

	created, err := svc.Register(context.Background(), registerInput())
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	city := "Kumasi"
	updated, err := svc.UpdateProfile(context.Background(), created.ID, ports.ProfileUpdate{City: &city})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.City != "Kumasi" {
		t.Fatalf("expected city update, got %s", updated.City)
	}
	if updated.FullName != "Ama Mensah" || updated.Phone != "+233244123456" {
		t.Fatalf("untouched fields changed: %+v", updated)
	}
}
