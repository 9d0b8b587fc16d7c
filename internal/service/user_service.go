package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"path"
	"strings"
	"time"

	"trackfit/fitness-api/internal/apperr"
	"trackfit/fitness-api/internal/domain"
	"trackfit/fitness-api/internal/repository"
	"trackfit/fitness-api/internal/storage"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

// UserService provides single-record CRUD over account/profile data.
type UserService interface {
	GetUser(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	UpdateProfile(ctx context.Context, id primitive.ObjectID, firstName, lastName string, dateOfBirth time.Time) (*domain.User, error)
	UpdateAvatarFile(ctx context.Context, id primitive.ObjectID, filename, contentType string, file io.Reader) (*domain.User, error)
	UpdateAvatarURL(ctx context.Context, id primitive.ObjectID, url string) (*domain.User, error)
	UpdateWeight(ctx context.Context, id primitive.ObjectID, weight float64, unit domain.WeightUnit) (*domain.User, error)
	UpdateGender(ctx context.Context, id primitive.ObjectID, gender domain.Gender) (*domain.User, error)
	UpdateExperience(ctx context.Context, id primitive.ObjectID, level domain.ExperienceLevel) (*domain.User, error)
	ChangePassword(ctx context.Context, id primitive.ObjectID, oldPassword, newPassword string) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// userService implements the UserService interface.
type userService struct {
	userRepo    repository.UserRepository
	fileStorage storage.FileStorage
}

// NewUserService creates a new instance of userService.
func NewUserService(userRepo repository.UserRepository, fileStorage storage.FileStorage) UserService {
	return &userService{
		userRepo:    userRepo,
		fileStorage: fileStorage,
	}
}

func (s *userService) GetUser(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	user, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = ""
	s.presignAvatar(ctx, user)
	return user, nil
}

// UpdateProfile replaces name and date of birth.
func (s *userService) UpdateProfile(ctx context.Context, id primitive.ObjectID, firstName, lastName string, dateOfBirth time.Time) (*domain.User, error) {
	firstName = strings.TrimSpace(firstName)
	if firstName == "" {
		return nil, apperr.Validation("first name is required")
	}

	return s.mutate(ctx, id, func(user *domain.User) error {
		user.FirstName = firstName
		user.LastName = strings.TrimSpace(lastName)
		if !dateOfBirth.IsZero() {
			user.DateOfBirth = dateOfBirth
		}
		return nil
	})
}

// UpdateAvatarFile streams an uploaded image to object storage and
// points the profile at it. The previous object, if any, is removed
// best-effort after the profile update sticks.
func (s *userService) UpdateAvatarFile(ctx context.Context, id primitive.ObjectID, filename, contentType string, file io.Reader) (*domain.User, error) {
	if file == nil {
		return nil, apperr.Validation("avatar file is required")
	}
	if !strings.HasPrefix(contentType, "image/") {
		return nil, apperr.Validation("avatar must be an image, got %q", contentType)
	}

	user, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	objectKey := fmt.Sprintf("avatars/%s/%s%s", id.Hex(), uuid.NewString(), path.Ext(filename))
	if err := s.fileStorage.Upload(ctx, objectKey, contentType, file); err != nil {
		return nil, apperr.Internal("failed to store avatar", err)
	}

	// Stored avatars are served through presigned URLs minted at read
	// time, so only the object key is persisted.
	oldKey := user.AvatarKey
	user.AvatarKey = objectKey
	user.AvatarURL = ""

	updated, err := s.save(ctx, user)
	if err != nil {
		return nil, err
	}

	if oldKey != "" && oldKey != objectKey {
		if err := s.fileStorage.DeleteObject(ctx, oldKey); err != nil {
			logrus.WithError(err).WithField("objectKey", oldKey).Warn("failed to delete previous avatar object")
		}
	}
	return updated, nil
}

// UpdateAvatarURL points the profile at an externally hosted avatar.
func (s *userService) UpdateAvatarURL(ctx context.Context, id primitive.ObjectID, url string) (*domain.User, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return nil, apperr.Validation("avatar URL is required")
	}

	return s.mutate(ctx, id, func(user *domain.User) error {
		user.AvatarKey = ""
		user.AvatarURL = url
		return nil
	})
}

func (s *userService) UpdateWeight(ctx context.Context, id primitive.ObjectID, weight float64, unit domain.WeightUnit) (*domain.User, error) {
	if math.IsNaN(weight) || math.IsInf(weight, 0) || weight <= 0 {
		return nil, apperr.Validation("weight must be a finite positive number")
	}
	if !unit.Valid() {
		return nil, apperr.Validation("unknown weight unit %q", unit)
	}

	return s.mutate(ctx, id, func(user *domain.User) error {
		user.Weight = weight
		user.WeightUnit = unit
		return nil
	})
}

func (s *userService) UpdateGender(ctx context.Context, id primitive.ObjectID, gender domain.Gender) (*domain.User, error) {
	if !gender.Valid() {
		return nil, apperr.Validation("unknown gender %q", gender)
	}

	return s.mutate(ctx, id, func(user *domain.User) error {
		user.Gender = gender
		return nil
	})
}

func (s *userService) UpdateExperience(ctx context.Context, id primitive.ObjectID, level domain.ExperienceLevel) (*domain.User, error) {
	if !level.Valid() {
		return nil, apperr.Validation("unknown experience level %q", level)
	}

	return s.mutate(ctx, id, func(user *domain.User) error {
		user.Experience = level
		return nil
	})
}

// ChangePassword verifies the old password hash before storing a new
// one.
func (s *userService) ChangePassword(ctx context.Context, id primitive.ObjectID, oldPassword, newPassword string) error {
	if len(newPassword) < 8 {
		return apperr.Validation("password must be at least 8 characters")
	}

	user, err := s.get(ctx, id)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)); err != nil {
		return apperr.Auth("current password does not match")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return apperr.Internal("failed to hash password", err)
	}

	user.PasswordHash = string(hashed)
	_, err = s.save(ctx, user)
	return err
}

// Delete removes the account and its stored avatar object.
func (s *userService) Delete(ctx context.Context, id primitive.ObjectID) error {
	user, err := s.get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound("user %s not found", id.Hex())
		}
		return apperr.Internal("failed to delete user", err)
	}

	if user.AvatarKey != "" {
		if err := s.fileStorage.DeleteObject(ctx, user.AvatarKey); err != nil {
			logrus.WithError(err).WithField("objectKey", user.AvatarKey).Warn("failed to delete avatar object")
		}
	}
	return nil
}

func (s *userService) get(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	if id == primitive.NilObjectID {
		return nil, apperr.Validation("user ID is required")
	}
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("user %s not found", id.Hex())
		}
		return nil, apperr.Internal("failed to load user", err)
	}
	return user, nil
}

func (s *userService) save(ctx context.Context, user *domain.User) (*domain.User, error) {
	if err := s.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("user %s not found", user.ID.Hex())
		}
		return nil, apperr.Internal("failed to update user", err)
	}
	user.PasswordHash = ""
	s.presignAvatar(ctx, user)
	return user, nil
}

// presignAvatar fills AvatarURL with a temporary download URL when the
// profile points at a stored object. Failures are non-fatal; the
// profile is still served, just without the avatar link.
func (s *userService) presignAvatar(ctx context.Context, user *domain.User) {
	if user.AvatarKey == "" {
		return
	}
	url, err := s.fileStorage.GeneratePresignedDownloadURL(ctx, user.AvatarKey, storage.DefaultPresignedURLExpiry)
	if err != nil {
		logrus.WithError(err).WithField("objectKey", user.AvatarKey).Warn("failed to presign avatar URL")
		return
	}
	user.AvatarURL = url
}

func (s *userService) mutate(ctx context.Context, id primitive.ObjectID, apply func(*domain.User) error) (*domain.User, error) {
	user, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := apply(user); err != nil {
		return nil, err
	}
	return s.save(ctx, user)
}
