package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DayFormat is the layout for day-bucket keys. All buckets use UTC.
const DayFormat = "2006-01-02"

// DayKey returns the UTC day bucket for a point in time.
func DayKey(t time.Time) string {
	return t.UTC().Format(DayFormat)
}

// ActivityLevel is the self-reported activity of the user, used by the
// client to suggest calorie targets.
type ActivityLevel string

const (
	ActivitySedentary  ActivityLevel = "sedentary"
	ActivityLight      ActivityLevel = "light"
	ActivityModerate   ActivityLevel = "moderate"
	ActivityActive     ActivityLevel = "active"
	ActivityVeryActive ActivityLevel = "very_active"
)

func (a ActivityLevel) Valid() bool {
	switch a {
	case ActivitySedentary, ActivityLight, ActivityModerate, ActivityActive, ActivityVeryActive:
		return true
	}
	return false
}

// MealPreferences flags which meals the user wants tracked/suggested.
type MealPreferences struct {
	Breakfast bool `bson:"breakfast" json:"breakfast"`
	Lunch     bool `bson:"lunch" json:"lunch"`
	Dinner    bool `bson:"dinner" json:"dinner"`
	Snacks    bool `bson:"snacks" json:"snacks"`
}

// FoodLogEntry is one logged food item with its macros. Day is the UTC
// day bucket the entry was logged in, denormalized for per-day queries.
type FoodLogEntry struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID        primitive.ObjectID `bson:"userId" json:"userId"`
	Label         string             `bson:"label" json:"label"`
	Calories      float64            `bson:"calories" json:"calories"`
	Carbohydrates float64            `bson:"carbohydrates" json:"carbohydrates"`
	Fats          float64            `bson:"fats" json:"fats"`
	Proteins      float64            `bson:"proteins" json:"proteins"`
	Sugars        float64            `bson:"sugars" json:"sugars"`
	ImageURL      string             `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	Day           string             `bson:"day" json:"day"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
}

// CaloriePreferences holds one record per user with weight goals and
// meal settings. The daily calorie intake is NOT stored here; it lives
// in the day-keyed DailyIntake ledger and is joined in when serving the
// preferences back.
type CaloriePreferences struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID        primitive.ObjectID `bson:"userId" json:"userId"`
	CurrentWeight float64            `bson:"currentWeight" json:"currentWeight"`
	GoalWeight    *float64           `bson:"goalWeight,omitempty" json:"goalWeight,omitempty"`
	ActivityLevel ActivityLevel      `bson:"activityLevel" json:"activityLevel"`
	Meals         MealPreferences    `bson:"meals" json:"meals"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// DailyIntake is the per-(user, day) calorie accumulator. The pair
// (UserID, Date) is unique and Calories is only ever mutated with an
// atomic increment, so concurrent food logs cannot lose updates.
type DailyIntake struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	UserID   primitive.ObjectID `bson:"userId" json:"userId"`
	Date     string             `bson:"date" json:"date"`
	Calories float64            `bson:"calories" json:"calories"`
}
