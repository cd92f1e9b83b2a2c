package postgres

import (
	"alcyxob/fitcoach-api/internal/domain"
	"alcyxob/fitcoach-api/internal/repository"
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
)

const (
	insertWorkoutQuery = `INSERT INTO workout_programs (id, user_id, title, input_text, preferences_json, program_json, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	listWorkoutsQuery = `SELECT id, title, created_at FROM workout_programs
		WHERE user_id = $1 ORDER BY created_at DESC`
	selectWorkoutQuery = `SELECT id, user_id, title, input_text, preferences_json, program_json, created_at
		FROM workout_programs WHERE id = $1 AND user_id = $2`
	renameWorkoutQuery = `UPDATE workout_programs SET title = $1 WHERE id = $2 AND user_id = $3
		RETURNING id, user_id, title, created_at`
	deleteWorkoutQuery = `DELETE FROM workout_programs WHERE id = $1 AND user_id = $2`
)

// postgresWorkoutRepository implements repository.WorkoutRepository.
type postgresWorkoutRepository struct {
	db *sql.DB
}

// NewPostgresWorkoutRepository creates a workout repository backed by PostgreSQL.
func NewPostgresWorkoutRepository(db *sql.DB) repository.WorkoutRepository {
	return &postgresWorkoutRepository{db: db}
}

// Create inserts a new saved program.
func (r *postgresWorkoutRepository) Create(ctx context.Context, workout *domain.WorkoutProgram) error {
	if workout.UserID == "" {
		return errors.New("workout requires a user id")
	}
	programJSON, err := repository.EncodeProgram(workout.Program)
	if err != nil {
		return err
	}
	prefsJSON, err := repository.EncodePreferences(workout.Preferences)
	if err != nil {
		return err
	}

	workout.ID = uuid.NewString()
	workout.CreatedAt = time.Now().UTC()
	if workout.Title == "" {
		workout.Title = domain.DefaultWorkoutTitle
	}

	_, err = r.db.ExecContext(ctx, insertWorkoutQuery,
		workout.ID, workout.UserID, workout.Title, workout.InputText, prefsJSON, programJSON, workout.CreatedAt)
	return err
}

// ListByUser returns the owner's programs, newest first.
func (r *postgresWorkoutRepository) ListByUser(ctx context.Context, userID string) ([]domain.WorkoutProgram, error) {
	rows, err := r.db.QueryContext(ctx, listWorkoutsQuery, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	workouts := []domain.WorkoutProgram{}
	for rows.Next() {
		w := domain.WorkoutProgram{UserID: userID}
		if err := rows.Scan(&w.ID, &w.Title, &w.CreatedAt); err != nil {
			return nil, err
		}
		w.CreatedAt = w.CreatedAt.UTC()
		workouts = append(workouts, w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return workouts, nil
}

// GetByID loads one program if it belongs to userID.
func (r *postgresWorkoutRepository) GetByID(ctx context.Context, id, userID string) (*domain.WorkoutProgram, error) {
	var (
		w           domain.WorkoutProgram
		inputText   sql.NullString
		prefsJSON   sql.NullString
		programJSON string
	)
	err := r.db.QueryRowContext(ctx, selectWorkoutQuery, id, userID).
		Scan(&w.ID, &w.UserID, &w.Title, &inputText, &prefsJSON, &programJSON, &w.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	if inputText.Valid {
		w.InputText = &inputText.String
	}
	if prefsJSON.Valid {
		if w.Preferences, err = repository.DecodePreferences(&prefsJSON.String); err != nil {
			return nil, err
		}
	}
	if w.Program, err = repository.DecodeProgram(programJSON); err != nil {
		return nil, err
	}
	w.CreatedAt = w.CreatedAt.UTC()
	return &w, nil
}

// UpdateTitle renames a program owned by userID.
func (r *postgresWorkoutRepository) UpdateTitle(ctx context.Context, id, userID, title string) (*domain.WorkoutProgram, error) {
	var w domain.WorkoutProgram
	err := r.db.QueryRowContext(ctx, renameWorkoutQuery, title, id, userID).
		Scan(&w.ID, &w.UserID, &w.Title, &w.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	w.CreatedAt = w.CreatedAt.UTC()
	return &w, nil
}

// Delete hard-deletes a program owned by userID.
func (r *postgresWorkoutRepository) Delete(ctx context.Context, id, userID string) error {
	return execDelete(ctx, r.db, deleteWorkoutQuery, id, userID)
}

// execDelete runs an owner-scoped delete and maps "no row" to ErrNotFound.
func execDelete(ctx context.Context, db *sql.DB, query, id, userID string) error {
	result, err := db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
