package repository

import (
	"alcyxob/fitcoach-api/internal/domain"
	"context"
)

// Error constants for repository layer
var (
	ErrNotFound = RepositoryError("not found")
	ErrConflict = RepositoryError("already exists")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	// Create stores a new user. ID and CreatedAt are assigned here.
	// Returns ErrConflict when the email is taken.
	Create(ctx context.Context, user *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
}

// WorkoutRepository persists saved workout programs.
// Every method except Create is scoped to the owner: a program that exists
// but belongs to someone else is reported as ErrNotFound.
type WorkoutRepository interface {
	Create(ctx context.Context, workout *domain.WorkoutProgram) error
	// ListByUser returns summaries, newest first. Program and Preferences
	// are left empty.
	ListByUser(ctx context.Context, userID string) ([]domain.WorkoutProgram, error)
	GetByID(ctx context.Context, id, userID string) (*domain.WorkoutProgram, error)
	UpdateTitle(ctx context.Context, id, userID, title string) (*domain.WorkoutProgram, error)
	Delete(ctx context.Context, id, userID string) error
}

// ExerciseListRepository persists named exercise lists, owner-scoped like
// WorkoutRepository.
type ExerciseListRepository interface {
	Create(ctx context.Context, list *domain.ExerciseList) error
	ListByUser(ctx context.Context, userID string) ([]domain.ExerciseList, error) // Newest first
	GetByID(ctx context.Context, id, userID string) (*domain.ExerciseList, error)
	Delete(ctx context.Context, id, userID string) error
}
