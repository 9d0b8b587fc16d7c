package service

import (
	"context"
	"errors"
	"time"

	"trackfit/fitness-api/internal/apperr"
	"trackfit/fitness-api/internal/domain"
	"trackfit/fitness-api/internal/repository"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles registration, login, and token issuing.
type AuthService interface {
	Register(ctx context.Context, firstName, lastName, email, password string, dateOfBirth time.Time) (*domain.User, string, error)
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
	GetJWTSecret() string
}

// authService implements the AuthService interface.
type authService struct {
	userRepo      repository.UserRepository
	jwtSecret     string
	jwtExpiration time.Duration
}

// NewAuthService creates a new instance of authService.
func NewAuthService(userRepo repository.UserRepository, jwtSecret string, jwtExpiration time.Duration) AuthService {
	if jwtSecret == "" {
		panic("JWT secret cannot be empty") // Critical configuration
	}
	if jwtExpiration <= 0 {
		jwtExpiration = time.Hour
	}
	return &authService{
		userRepo:      userRepo,
		jwtSecret:     jwtSecret,
		jwtExpiration: jwtExpiration,
	}
}

// Register handles new user registration. A duplicate email is a
// conflict; the unique index backs the pre-check, so a race between two
// registrations still resolves to exactly one account.
func (s *authService) Register(ctx context.Context, firstName, lastName, email, password string, dateOfBirth time.Time) (*domain.User, string, error) {
	if firstName == "" || email == "" || password == "" {
		return nil, "", apperr.Validation("first name, email, and password cannot be empty")
	}
	if len(password) < 8 {
		return nil, "", apperr.Validation("password must be at least 8 characters")
	}

	_, err := s.userRepo.GetByEmail(ctx, email)
	if err == nil {
		return nil, "", apperr.Conflict("user with email %s already exists", email)
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, "", apperr.Internal("failed to check existing user", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", apperr.Internal("failed to hash password", err)
	}

	user := &domain.User{
		FirstName:    firstName,
		LastName:     lastName,
		Email:        email,
		PasswordHash: string(hashedPassword),
		DateOfBirth:  dateOfBirth,
	}

	userID, err := s.userRepo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, "", apperr.Conflict("user with email %s already exists", email)
		}
		return nil, "", apperr.Internal("failed to create user", err)
	}
	user.ID = userID

	token, err := s.generateJWT(user)
	if err != nil {
		return nil, "", apperr.Internal("failed to generate authentication token", err)
	}

	user.PasswordHash = ""
	return user, token, nil
}

// Login handles user authentication and JWT generation. Unknown email
// and wrong password are distinct kinds per the API contract.
func (s *authService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	if email == "" || password == "" {
		return nil, "", apperr.Validation("email and password cannot be empty")
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", apperr.NotFound("no account for email %s", email)
		}
		return nil, "", apperr.Internal("failed to look up user", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", apperr.Auth("invalid password")
	}

	token, err := s.generateJWT(user)
	if err != nil {
		return nil, "", apperr.Internal("failed to generate authentication token", err)
	}

	user.PasswordHash = ""
	return user, token, nil
}

// jwtClaims defines the structure of the JWT payload.
type jwtClaims struct {
	UserID string `json:"uid"`
	jwt.RegisteredClaims
}

// generateJWT creates a new HS256-signed token for the given user.
func (s *authService) generateJWT(user *domain.User) (string, error) {
	expirationTime := time.Now().Add(s.jwtExpiration)
	claims := &jwtClaims{
		UserID: user.ID.Hex(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.Hex(),
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "trackfit",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

// GetJWTSecret returns the JWT secret for middleware authentication.
func (s *authService) GetJWTSecret() string {
	return s.jwtSecret
}
