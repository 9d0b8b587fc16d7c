package api

import (
	"net/http"
	"time"

	"trackfit/fitness-api/internal/apperr"
	"trackfit/fitness-api/internal/domain"
	"trackfit/fitness-api/internal/service"

	"github.com/gin-gonic/gin"
)

// AuthHandler holds the authentication service dependency.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// --- Request/Response Structs ---

type RegisterRequest struct {
	FirstName   string `json:"firstName" binding:"required"`
	LastName    string `json:"lastName"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	DateOfBirth string `json:"dateOfBirth"` // YYYY-MM-DD, optional
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UserResponse excludes sensitive info like the password hash.
type UserResponse struct {
	ID          string                 `json:"id"`
	FirstName   string                 `json:"firstName"`
	LastName    string                 `json:"lastName,omitempty"`
	Email       string                 `json:"email"`
	Gender      domain.Gender          `json:"gender,omitempty"`
	DateOfBirth string                 `json:"dateOfBirth,omitempty"`
	Experience  domain.ExperienceLevel `json:"experience,omitempty"`
	AvatarURL   string                 `json:"avatarUrl,omitempty"`
	Weight      float64                `json:"weight,omitempty"`
	WeightUnit  domain.WeightUnit      `json:"weightUnit,omitempty"`
	CreatedAt   time.Time              `json:"createdAt"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// MapUserToResponse converts a domain User to a UserResponse DTO.
func MapUserToResponse(user *domain.User) UserResponse {
	if user == nil {
		return UserResponse{}
	}

	resp := UserResponse{
		ID:         user.ID.Hex(),
		FirstName:  user.FirstName,
		LastName:   user.LastName,
		Email:      user.Email,
		Gender:     user.Gender,
		Experience: user.Experience,
		AvatarURL:  user.AvatarURL,
		Weight:     user.Weight,
		WeightUnit: user.WeightUnit,
		CreatedAt:  user.CreatedAt,
	}
	if !user.DateOfBirth.IsZero() {
		resp.DateOfBirth = user.DateOfBirth.UTC().Format("2006-01-02")
	}
	return resp
}

// --- Handler Methods ---

// Register creates a new account and returns it with a signed session
// token. Duplicate email is a 409.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return
	}

	var dob time.Time
	if req.DateOfBirth != "" {
		parsed, err := time.Parse("2006-01-02", req.DateOfBirth)
		if err != nil {
			respondError(c, apperr.Validation("dateOfBirth must be formatted as 2006-01-02"))
			return
		}
		dob = parsed
	}

	user, token, err := h.authService.Register(c.Request.Context(), req.FirstName, req.LastName, req.Email, req.Password, dob)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, AuthResponse{
		Token: token,
		User:  MapUserToResponse(user),
	})
}

// Login authenticates a user and returns a JWT token. Unknown email is
// a 404, wrong password a 401.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return
	}

	user, token, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, AuthResponse{
		Token: token,
		User:  MapUserToResponse(user),
	})
}
