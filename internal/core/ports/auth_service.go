package ports

import (
	"context"

	"github.com/agriscan/platform/internal/core/domain"
)

// RegisterInput carries all fields needed to create an account.
type RegisterInput struct {
	Phone    string
	Password string
	FullName string
	Role     string
	City     string
	State    string
	GPSLat   float64
	GPSLng   float64
}

// ProfileUpdate carries the mutable profile fields. Nil pointers mean
// "leave unchanged"; phone, role, and id are not updatable at all.
type ProfileUpdate struct {
	FullName *string
	City     *string
	State    *string
	GPSLat   *float64
	GPSLng   *float64
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, phone, password string) (string, *domain.User, error)
	Profile(ctx context.Context, userID string) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID string, update ProfileUpdate) (*domain.User, error)
}
