package api

import (
	"net/http"
	"strings"
	"time"

	"trackfit/fitness-api/internal/apperr"
	"trackfit/fitness-api/internal/domain"
	"trackfit/fitness-api/internal/service"

	"github.com/gin-gonic/gin"
)

// UserHandler holds the user service dependency.
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// --- DTOs ---

type UpdateProfileRequest struct {
	FirstName   string `json:"firstName" binding:"required"`
	LastName    string `json:"lastName"`
	DateOfBirth string `json:"dateOfBirth"` // YYYY-MM-DD, optional
}

type UpdateAvatarRequest struct {
	Avatar string `json:"avatar" binding:"required,url"`
}

type UpdateWeightRequest struct {
	Weight float64 `json:"weight" binding:"required,gt=0"`
	Unit   string  `json:"unit" binding:"required"`
}

type UpdateGenderRequest struct {
	Gender string `json:"gender" binding:"required"`
}

type UpdateExperienceRequest struct {
	Experience string `json:"experience" binding:"required"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=8"`
}

// --- Handler Methods ---

// GetUser returns the profile for one account.
func (h *UserHandler) GetUser(c *gin.Context) {
	id, err := parseObjectID(c.Param("id"), "id")
	if err != nil {
		respondError(c, err)
		return
	}

	user, err := h.userService.GetUser(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, MapUserToResponse(user))
}

// UpdateProfile replaces name and date of birth.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	id, err := parseObjectID(c.Param("id"), "id")
	if err != nil {
		respondError(c, err)
		return
	}

	var req UpdateProfileRequest
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

	user, err := h.userService.UpdateProfile(c.Request.Context(), id, req.FirstName, req.LastName, dob)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, MapUserToResponse(user))
}

// UpdateAvatar accepts either a multipart upload (field "avatar") that
// is streamed to object storage, or a JSON body {"avatar": url}
// pointing at an externally hosted image.
func (h *UserHandler) UpdateAvatar(c *gin.Context) {
	id, err := parseObjectID(c.Param("id"), "id")
	if err != nil {
		respondError(c, err)
		return
	}

	contentType := c.GetHeader("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		fileHeader, err := c.FormFile("avatar")
		if err != nil {
			respondError(c, apperr.Validation("multipart field 'avatar' is required"))
			return
		}

		file, err := fileHeader.Open()
		if err != nil {
			respondError(c, apperr.Internal("failed to read uploaded file", err))
			return
		}
		defer file.Close()

		user, err := h.userService.UpdateAvatarFile(
			c.Request.Context(),
			id,
			fileHeader.Filename,
			fileHeader.Header.Get("Content-Type"),
			file,
		)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, MapUserToResponse(user))
		return
	}

	var req UpdateAvatarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return
	}

	user, err := h.userService.UpdateAvatarURL(c.Request.Context(), id, req.Avatar)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapUserToResponse(user))
}

// UpdateWeight sets body weight and its unit.
func (h *UserHandler) UpdateWeight(c *gin.Context) {
	id, err := parseObjectID(c.Param("id"), "id")
	if err != nil {
		respondError(c, err)
		return
	}

	var req UpdateWeightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return
	}

	user, err := h.userService.UpdateWeight(c.Request.Context(), id, req.Weight, domain.WeightUnit(req.Unit))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, MapUserToResponse(user))
}

// UpdateGender sets the gender field.
func (h *UserHandler) UpdateGender(c *gin.Context) {
	id, err := parseObjectID(c.Param("id"), "id")
	if err != nil {
		respondError(c, err)
		return
	}

	var req UpdateGenderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return
	}

	user, err := h.userService.UpdateGender(c.Request.Context(), id, domain.Gender(req.Gender))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, MapUserToResponse(user))
}

// UpdateExperience sets the experience level.
func (h *UserHandler) UpdateExperience(c *gin.Context) {
	id, err := parseObjectID(c.Param("id"), "id")
	if err != nil {
		respondError(c, err)
		return
	}

	var req UpdateExperienceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return
	}

	user, err := h.userService.UpdateExperience(c.Request.Context(), id, domain.ExperienceLevel(req.Experience))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, MapUserToResponse(user))
}

// ChangePassword verifies the current password before storing a new hash.
func (h *UserHandler) ChangePassword(c *gin.Context) {
	id, err := parseObjectID(c.Param("id"), "id")
	if err != nil {
		respondError(c, err)
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return
	}

	if err := h.userService.ChangePassword(c.Request.Context(), id, req.OldPassword, req.NewPassword); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "password updated"})
}

// DeleteUser removes the account.
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, err := parseObjectID(c.Param("id"), "id")
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.userService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
