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
	insertUserQuery     = `INSERT INTO users (id, email, password_hash, created_at) VALUES ($1, $2, $3, $4)`
	selectUserByEmail   = `SELECT id, email, password_hash, created_at FROM users WHERE email = $1`
	selectUserByIDQuery = `SELECT id, email, password_hash, created_at FROM users WHERE id = $1`
)

// postgresUserRepository implements repository.UserRepository.
type postgresUserRepository struct {
	db *sql.DB
}

// NewPostgresUserRepository creates a user repository backed by PostgreSQL.
func NewPostgresUserRepository(db *sql.DB) repository.UserRepository {
	return &postgresUserRepository{db: db}
}

// Create inserts a new user. The unique index on email turns a concurrent
// duplicate signup into ErrConflict.
func (r *postgresUserRepository) Create(ctx context.Context, user *domain.User) error {
	if user.Email == "" || user.PasswordHash == "" {
		return errors.New("user email and password hash are required")
	}

	user.ID = uuid.NewString()
	user.CreatedAt = time.Now().UTC()

	_, err := r.db.ExecContext(ctx, insertUserQuery, user.ID, user.Email, user.PasswordHash, user.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrConflict
		}
		return err
	}
	return nil
}

// GetByEmail retrieves a user by their email address.
func (r *postgresUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.scanOne(r.db.QueryRowContext(ctx, selectUserByEmail, email))
}

// GetByID retrieves a user by id.
func (r *postgresUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.scanOne(r.db.QueryRowContext(ctx, selectUserByIDQuery, id))
}

func (r *postgresUserRepository) scanOne(row *sql.Row) (*domain.User, error) {
	var user domain.User
	err := row.Scan(&user.ID, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	user.CreatedAt = user.CreatedAt.UTC()
	return &user, nil
}
