package service

import (
	"context"
	"strings"
	"time"

	"trackfit/fitness-api/internal/domain"
	"trackfit/fitness-api/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory fakes mirroring the repository contracts, including the
// ErrConflict/ErrNotFound semantics the Mongo implementations get from
// their unique indexes.

type fakeUserRepo struct {
	users map[primitive.ObjectID]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[primitive.ObjectID]*domain.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) (primitive.ObjectID, error) {
	for _, u := range r.users {
		if strings.EqualFold(u.Email, user.Email) {
			return primitive.NilObjectID, repository.ErrConflict
		}
	}
	user.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now
	cp := *user
	r.users[user.ID] = &cp
	return user.ID, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return repository.ErrNotFound
	}
	user.UpdatedAt = time.Now().UTC()
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := r.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

type fakeHistoryRepo struct {
	entries []domain.ExerciseHistoryEntry
}

func (r *fakeHistoryRepo) Create(_ context.Context, entry *domain.ExerciseHistoryEntry) (primitive.ObjectID, error) {
	entry.ID = primitive.NewObjectID()
	entry.CreatedAt = time.Now().UTC()
	r.entries = append(r.entries, *entry)
	return entry.ID, nil
}

func (r *fakeHistoryRepo) GetByUserID(_ context.Context, userID primitive.ObjectID) ([]domain.ExerciseHistoryEntry, error) {
	out := []domain.ExerciseHistoryEntry{}
	for _, e := range r.entries {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeFavoriteRepo struct {
	favorites []domain.Favorite
}

func (r *fakeFavoriteRepo) Add(_ context.Context, fav *domain.Favorite) (primitive.ObjectID, error) {
	for _, f := range r.favorites {
		if f.UserID == fav.UserID && f.ExerciseName == fav.ExerciseName {
			return primitive.NilObjectID, repository.ErrConflict
		}
	}
	fav.ID = primitive.NewObjectID()
	fav.CreatedAt = time.Now().UTC()
	r.favorites = append(r.favorites, *fav)
	return fav.ID, nil
}

func (r *fakeFavoriteRepo) Remove(_ context.Context, userID primitive.ObjectID, exerciseName string) error {
	for i, f := range r.favorites {
		if f.UserID == userID && f.ExerciseName == exerciseName {
			r.favorites = append(r.favorites[:i], r.favorites[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *fakeFavoriteRepo) GetByUserID(_ context.Context, userID primitive.ObjectID) ([]domain.Favorite, error) {
	out := []domain.Favorite{}
	for _, f := range r.favorites {
		if f.UserID == userID {
			out = append(out, f)
		}
	}
	return out, nil
}

func (r *fakeFavoriteRepo) Names(ctx context.Context, userID primitive.ObjectID) (map[string]bool, error) {
	favorites, err := r.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	names := make(map[string]bool, len(favorites))
	for _, f := range favorites {
		names[f.ExerciseName] = true
	}
	return names, nil
}

type fakeFoodRepo struct {
	entries []domain.FoodLogEntry
}

func (r *fakeFoodRepo) Create(_ context.Context, entry *domain.FoodLogEntry) (primitive.ObjectID, error) {
	entry.ID = primitive.NewObjectID()
	entry.CreatedAt = time.Now().UTC()
	if entry.Day == "" {
		entry.Day = domain.DayKey(entry.CreatedAt)
	}
	r.entries = append(r.entries, *entry)
	return entry.ID, nil
}

func (r *fakeFoodRepo) GetByUserID(_ context.Context, userID primitive.ObjectID) ([]domain.FoodLogEntry, error) {
	out := []domain.FoodLogEntry{}
	for _, e := range r.entries {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeFoodRepo) GetByUserAndDay(_ context.Context, userID primitive.ObjectID, day string) ([]domain.FoodLogEntry, error) {
	out := []domain.FoodLogEntry{}
	for _, e := range r.entries {
		if e.UserID == userID && e.Day == day {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakePrefRepo struct {
	prefs map[primitive.ObjectID]*domain.CaloriePreferences
}

func newFakePrefRepo() *fakePrefRepo {
	return &fakePrefRepo{prefs: map[primitive.ObjectID]*domain.CaloriePreferences{}}
}

func (r *fakePrefRepo) Upsert(_ context.Context, prefs *domain.CaloriePreferences) error {
	now := time.Now().UTC()
	existing, ok := r.prefs[prefs.UserID]
	if ok {
		prefs.ID = existing.ID
		prefs.CreatedAt = existing.CreatedAt
	} else {
		prefs.ID = primitive.NewObjectID()
		prefs.CreatedAt = now
	}
	prefs.UpdatedAt = now
	cp := *prefs
	r.prefs[prefs.UserID] = &cp
	return nil
}

func (r *fakePrefRepo) GetByUserID(_ context.Context, userID primitive.ObjectID) (*domain.CaloriePreferences, error) {
	p, ok := r.prefs[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

type intakeKey struct {
	userID primitive.ObjectID
	date   string
}

type fakeIntakeRepo struct {
	buckets map[intakeKey]float64
}

func newFakeIntakeRepo() *fakeIntakeRepo {
	return &fakeIntakeRepo{buckets: map[intakeKey]float64{}}
}

func (r *fakeIntakeRepo) Increment(_ context.Context, userID primitive.ObjectID, date string, calories float64) error {
	r.buckets[intakeKey{userID, date}] += calories
	return nil
}

func (r *fakeIntakeRepo) Get(_ context.Context, userID primitive.ObjectID, date string) (*domain.DailyIntake, error) {
	cal, ok := r.buckets[intakeKey{userID, date}]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &domain.DailyIntake{UserID: userID, Date: date, Calories: cal}, nil
}
