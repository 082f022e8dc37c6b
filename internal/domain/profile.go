package domain

import "time"

// Profile holds per-user presentation data. AvatarKey is the S3 object key of
// the user's avatar, empty when none was uploaded.
type Profile struct {
	UserID      string    `json:"user_id" dynamodbav:"user_id"`
	DisplayName string    `json:"display_name" dynamodbav:"display_name"`
	Bio         string    `json:"bio" dynamodbav:"bio"`
	AvatarKey   string    `json:"avatar_key,omitempty" dynamodbav:"avatar_key"`
	AvatarURL   string    `json:"avatar_url,omitempty" dynamodbav:"-"`
	UpdatedAt   time.Time `json:"updated" dynamodbav:"updated_at"`
}

type UpdateProfileRequest struct {
	DisplayName *string `json:"display_name"`
	Bio         *string `json:"bio"`
}

// TravelPreferences stores a user's trip defaults.
type TravelPreferences struct {
	UserID        string    `json:"user_id" dynamodbav:"user_id"`
	TravelStyle   string    `json:"travel_style" dynamodbav:"travel_style"`
	BudgetLevel   string    `json:"budget_level" dynamodbav:"budget_level"`
	Interests     []string  `json:"interests" dynamodbav:"interests"`
	HomeAirport   string    `json:"home_airport" dynamodbav:"home_airport"`
	DietaryNotes  string    `json:"dietary_notes" dynamodbav:"dietary_notes"`
	UpdatedAt     time.Time `json:"updated" dynamodbav:"updated_at"`
}
