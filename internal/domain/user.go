package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Gender as stored on the profile.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// ExperienceLevel describes how long a user has been training.
type ExperienceLevel string

const (
	ExperienceNovice       ExperienceLevel = "novice"
	ExperienceIntermediate ExperienceLevel = "intermediate"
	ExperienceAdvanced     ExperienceLevel = "advanced"
)

// WeightUnit is the unit the user prefers for body weight.
type WeightUnit string

const (
	WeightKilograms WeightUnit = "kg"
	WeightPounds    WeightUnit = "lbs"
)

// User represents a single account with its profile fields.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FirstName    string             `bson:"firstName" json:"firstName"`
	LastName     string             `bson:"lastName" json:"lastName"`
	Email        string             `bson:"email" json:"email"` // Should be unique
	PasswordHash string             `bson:"passwordHash" json:"-"` // Never expose this via JSON
	Gender       Gender             `bson:"gender,omitempty" json:"gender,omitempty"`
	DateOfBirth  time.Time          `bson:"dateOfBirth,omitempty" json:"dateOfBirth,omitempty"`
	Experience   ExperienceLevel    `bson:"experience,omitempty" json:"experience,omitempty"`
	AvatarKey    string             `bson:"avatarKey,omitempty" json:"-"` // Object storage key, not for clients
	AvatarURL    string             `bson:"avatarUrl,omitempty" json:"avatarUrl,omitempty"`
	Weight       float64            `bson:"weight,omitempty" json:"weight,omitempty"`
	WeightUnit   WeightUnit         `bson:"weightUnit,omitempty" json:"weightUnit,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

func (e ExperienceLevel) Valid() bool {
	switch e {
	case ExperienceNovice, ExperienceIntermediate, ExperienceAdvanced:
		return true
	}
	return false
}

func (w WeightUnit) Valid() bool {
	return w == WeightKilograms || w == WeightPounds
}
