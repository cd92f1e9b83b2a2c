package domain

import (
	"time"
)

// Size limits of an exercise list.
const (
	MinExerciseListItems = 1
	MaxExerciseListItems = 200
)

// ExerciseList is a named, ordered list of exercise names owned by a user.
type ExerciseList struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Items     []string  `json:"items"`
	CreatedAt time.Time `json:"created_at"`
}
