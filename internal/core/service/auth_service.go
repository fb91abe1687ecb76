package service

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/nyaruka/phonenumbers"
	"golang.org/x/crypto/bcrypt"

	"github.com/agriscan/platform/internal/core/domain"
	"github.com/agriscan/platform/internal/core/ports"
)

// AuthService implements registration, login, and profile management.
type AuthService struct {
	repo          ports.UserRepository
	jwtSecret     string
	tokenTTL      time.Duration
	defaultRegion string
}

func NewAuthService(repo ports.UserRepository, jwtSecret, defaultRegion string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	if defaultRegion == "" {
		defaultRegion = "GH"
	}
	return &AuthService{repo: repo, jwtSecret: jwtSecret, tokenTTL: tokenTTL, defaultRegion: defaultRegion}
}

func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	if input.Phone == "" || input.Password == "" || input.FullName == "" {
		return nil, domain.ErrInvalidCredentials
	}
	if !domain.ValidRole(input.Role) {
		return nil, domain.ErrInvalidCredentials
	}

	phone, err := s.normalizePhone(input.Phone)
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Phone:        phone,
		FullName:     input.FullName,
		PasswordHash: string(hash),
		Role:         input.Role,
		City:         input.City,
		State:        input.State,
		GPSLat:       input.GPSLat,
		GPSLng:       input.GPSLng,
		CreatedAt:    now,
		LastActive:   now,
	}

	return s.repo.Create(ctx, user)
}

func (s *AuthService) Login(ctx context.Context, phone, password string) (string, *domain.User, error) {
	if phone == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	normalized, err := s.normalizePhone(phone)
	if err != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByPhone(ctx, normalized)
	if err != nil {
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, err
	}

	_ = s.repo.TouchLastActive(ctx, user.ID, time.Now().UTC())

	return token, user, nil
}

func (s *AuthService) Profile(ctx context.Context, userID string) (*domain.User, error) {
	return s.repo.FindByID(ctx, userID)
}

// UpdateProfile applies the mutable subset of profile fields and returns the
// stored record. Identity fields (phone, role, id) are never touched here.
func (s *AuthService) UpdateProfile(ctx context.Context, userID string, update ports.ProfileUpdate) (*domain.User, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if update.FullName != nil {
		user.FullName = *update.FullName
	}
	if update.City != nil {
		user.City = *update.City
	}
	if update.State != nil {
		user.State = *update.State
	}
	if update.GPSLat != nil {
		user.GPSLat = *update.GPSLat
	}
	if update.GPSLng != nil {
		user.GPSLng = *update.GPSLng
	}

	return s.repo.Update(ctx, user)
}

// normalizePhone validates the number and stores it in E.164 form so that
// "0551234567" and "+233551234567" resolve to the same account.
func (s *AuthService) normalizePhone(raw string) (string, error) {
	num, err := phonenumbers.Parse(raw, s.defaultRegion)
	if err != nil || !phonenumbers.IsValidNumber(num) {
		return "", domain.ErrInvalidPhone
	}
	return phonenumbers.Format(num, phonenumbers.E164), nil
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"uid":   user.ID,
		"phone": user.Phone,
		"role":  user.Role,
		"exp":   time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
