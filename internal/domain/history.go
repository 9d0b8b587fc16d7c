package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ExerciseHistoryEntry records one logged performance of an exercise:
// how many sets and reps, and at what weight. The exercise name is free
// text, not a reference into a catalog. Duplicate submissions create
// duplicate entries on purpose.
type ExerciseHistoryEntry struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID       primitive.ObjectID `bson:"userId" json:"userId"`
	ExerciseName string             `bson:"exerciseName" json:"exerciseName"`
	Sets         int                `bson:"sets" json:"sets"`
	Reps         int                `bson:"reps" json:"reps"`
	Weight       float64            `bson:"weight" json:"weight"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`

	// Favorite is not persisted on the entry. It is decorated at read
	// time from the favorites collection.
	Favorite bool `bson:"-" json:"favorite"`
}

// Favorite is pure set membership: the pair (UserID, ExerciseName) is
// unique. Marking an exercise as favorite is independent of ever having
// logged a set of it.
type Favorite struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID       primitive.ObjectID `bson:"userId" json:"userId"`
	ExerciseName string             `bson:"exerciseName" json:"exerciseName"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}
