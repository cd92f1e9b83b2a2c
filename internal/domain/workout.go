package domain

import (
	"time"

	"alcyxob/fitcoach-api/internal/schema"
)

// DefaultWorkoutTitle is used when a program is saved without a title.
const DefaultWorkoutTitle = "My program"

// WorkoutProgram is a generated program saved by a user, together with the
// request that produced it.
type WorkoutProgram struct {
	ID          string              `json:"id"`
	UserID      string              `json:"user_id"` // Owner, every query filters on it
	Title       string              `json:"title"`
	InputText   *string             `json:"input_text,omitempty"`
	Preferences *schema.Preferences `json:"preferences,omitempty"`
	Program     schema.Program      `json:"program"`
	CreatedAt   time.Time           `json:"created_at"`
}
