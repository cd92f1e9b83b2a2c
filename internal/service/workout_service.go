package service

import (
	"alcyxob/fitcoach-api/internal/domain"
	"alcyxob/fitcoach-api/internal/repository"
	"alcyxob/fitcoach-api/internal/schema"
	"alcyxob/fitcoach-api/internal/storage"
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"
)

var (
	ErrWorkoutNotFound = errors.New("workout not found")
	ErrStorageDisabled = errors.New("object storage is not configured")
)

// ExportResult points at a downloadable copy of a saved program.
type ExportResult struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// WorkoutService manages saved programs. Every operation is scoped to userID.
type WorkoutService interface {
	Save(ctx context.Context, userID, title string, inputText *string, prefs *schema.Preferences, program schema.Program) (*domain.WorkoutProgram, error)
	List(ctx context.Context, userID string) ([]domain.WorkoutProgram, error)
	Get(ctx context.Context, userID, workoutID string) (*domain.WorkoutProgram, error)
	Rename(ctx context.Context, userID, workoutID, title string) (*domain.WorkoutProgram, error)
	Delete(ctx context.Context, userID, workoutID string) error
	Export(ctx context.Context, userID, workoutID string) (*ExportResult, error)
}

type workoutService struct {
	workoutRepo repository.WorkoutRepository
	files       storage.ObjectStorage // nil when exports are disabled
	now         func() time.Time
}

// NewWorkoutService creates a new WorkoutService. files may be nil.
func NewWorkoutService(workoutRepo repository.WorkoutRepository, files storage.ObjectStorage) WorkoutService {
	return &workoutService{
		workoutRepo: workoutRepo,
		files:       files,
		now:         time.Now,
	}
}

func (s *workoutService) Save(ctx context.Context, userID, title string, inputText *string, prefs *schema.Preferences, program schema.Program) (*domain.WorkoutProgram, error) {
	workout := &domain.WorkoutProgram{
		UserID:      userID,
		Title:       title,
		InputText:   inputText,
		Preferences: prefs,
		Program:     program,
	}
	if err := s.workoutRepo.Create(ctx, workout); err != nil {
		return nil, err
	}
	return workout, nil
}

func (s *workoutService) List(ctx context.Context, userID string) ([]domain.WorkoutProgram, error) {
	return s.workoutRepo.ListByUser(ctx, userID)
}

func (s *workoutService) Get(ctx context.Context, userID, workoutID string) (*domain.WorkoutProgram, error) {
	workout, err := s.workoutRepo.GetByID(ctx, workoutID, userID)
	if err != nil {
		return nil, mapWorkoutError(err)
	}
	return workout, nil
}

func (s *workoutService) Rename(ctx context.Context, userID, workoutID, title string) (*domain.WorkoutProgram, error) {
	workout, err := s.workoutRepo.UpdateTitle(ctx, workoutID, userID, title)
	if err != nil {
		return nil, mapWorkoutError(err)
	}
	return workout, nil
}

// Delete removes the workout and, best effort, its export.
func (s *workoutService) Delete(ctx context.Context, userID, workoutID string) error {
	if err := s.workoutRepo.Delete(ctx, workoutID, userID); err != nil {
		return mapWorkoutError(err)
	}
	if s.files != nil {
		if err := s.files.DeleteObject(ctx, storage.ProgramExportKey(userID, workoutID)); err != nil {
			log.Printf("WARN: Failed to remove export of workout %s: %v", workoutID, err)
		}
	}
	return nil
}

// Export uploads the full workout as JSON and returns a presigned download URL.
func (s *workoutService) Export(ctx context.Context, userID, workoutID string) (*ExportResult, error) {
	if s.files == nil {
		return nil, ErrStorageDisabled
	}
	workout, err := s.Get(ctx, userID, workoutID)
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(workout)
	if err != nil {
		return nil, err
	}
	key := storage.ProgramExportKey(userID, workoutID)
	if err := s.files.PutObject(ctx, key, "application/json", body); err != nil {
		return nil, err
	}

	expiresAt := s.now().UTC().Add(storage.DefaultPresignedURLExpiry)
	url, err := s.files.GeneratePresignedDownloadURL(ctx, key, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return nil, err
	}
	return &ExportResult{URL: url, ExpiresAt: expiresAt}, nil
}

func mapWorkoutError(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrWorkoutNotFound
	}
	return err
}
