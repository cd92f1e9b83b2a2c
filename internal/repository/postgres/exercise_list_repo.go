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
	insertExerciseListQuery = `INSERT INTO exercise_lists (id, user_id, name, items_json, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	listExerciseListsQuery = `SELECT id, name, items_json, created_at FROM exercise_lists
		WHERE user_id = $1 ORDER BY created_at DESC`
	selectExerciseListQuery = `SELECT id, user_id, name, items_json, created_at
		FROM exercise_lists WHERE id = $1 AND user_id = $2`
	deleteExerciseListQuery = `DELETE FROM exercise_lists WHERE id = $1 AND user_id = $2`
)

// postgresExerciseListRepository implements repository.ExerciseListRepository.
type postgresExerciseListRepository struct {
	db *sql.DB
}

// NewPostgresExerciseListRepository creates an exercise list repository backed by PostgreSQL.
func NewPostgresExerciseListRepository(db *sql.DB) repository.ExerciseListRepository {
	return &postgresExerciseListRepository{db: db}
}

func (r *postgresExerciseListRepository) Create(ctx context.Context, list *domain.ExerciseList) error {
	if list.UserID == "" || list.Name == "" {
		return errors.New("exercise list requires a user id and a name")
	}
	itemsJSON, err := repository.EncodeItems(list.Items)
	if err != nil {
		return err
	}

	list.ID = uuid.NewString()
	list.CreatedAt = time.Now().UTC()

	_, err = r.db.ExecContext(ctx, insertExerciseListQuery, list.ID, list.UserID, list.Name, itemsJSON, list.CreatedAt)
	return err
}

func (r *postgresExerciseListRepository) ListByUser(ctx context.Context, userID string) ([]domain.ExerciseList, error) {
	rows, err := r.db.QueryContext(ctx, listExerciseListsQuery, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lists := []domain.ExerciseList{}
	for rows.Next() {
		l := domain.ExerciseList{UserID: userID}
		var itemsJSON string
		if err := rows.Scan(&l.ID, &l.Name, &itemsJSON, &l.CreatedAt); err != nil {
			return nil, err
		}
		if l.Items, err = repository.DecodeItems(itemsJSON); err != nil {
			return nil, err
		}
		l.CreatedAt = l.CreatedAt.UTC()
		lists = append(lists, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return lists, nil
}

func (r *postgresExerciseListRepository) GetByID(ctx context.Context, id, userID string) (*domain.ExerciseList, error) {
	var (
		l         domain.ExerciseList
		itemsJSON string
	)
	err := r.db.QueryRowContext(ctx, selectExerciseListQuery, id, userID).
		Scan(&l.ID, &l.UserID, &l.Name, &itemsJSON, &l.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	if l.Items, err = repository.DecodeItems(itemsJSON); err != nil {
		return nil, err
	}
	l.CreatedAt = l.CreatedAt.UTC()
	return &l, nil
}

func (r *postgresExerciseListRepository) Delete(ctx context.Context, id, userID string) error {
	return execDelete(ctx, r.db, deleteExerciseListQuery, id, userID)
}
