package service

import (
	"alcyxob/fitcoach-api/internal/domain"
	"alcyxob/fitcoach-api/internal/repository"
	"context"
	"errors"
	"fmt"
)

var (
	ErrExerciseListNotFound = errors.New("exercise list not found")
	ErrValidationFailed     = errors.New("validation failed")
)

// ExerciseListService manages a user's named exercise lists.
type ExerciseListService interface {
	Create(ctx context.Context, userID, name string, items []string) (*domain.ExerciseList, error)
	List(ctx context.Context, userID string) ([]domain.ExerciseList, error)
	Get(ctx context.Context, userID, listID string) (*domain.ExerciseList, error)
	Delete(ctx context.Context, userID, listID string) error
}

type exerciseListService struct {
	listRepo repository.ExerciseListRepository
}

// NewExerciseListService creates a new ExerciseListService.
func NewExerciseListService(listRepo repository.ExerciseListRepository) ExerciseListService {
	return &exerciseListService{listRepo: listRepo}
}

func (s *exerciseListService) Create(ctx context.Context, userID, name string, items []string) (*domain.ExerciseList, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidationFailed)
	}
	if len(items) < domain.MinExerciseListItems || len(items) > domain.MaxExerciseListItems {
		return nil, fmt.Errorf("%w: items must contain %d to %d entries", ErrValidationFailed, domain.MinExerciseListItems, domain.MaxExerciseListItems)
	}

	list := &domain.ExerciseList{
		UserID: userID,
		Name:   name,
		Items:  items,
	}
	if err := s.listRepo.Create(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

func (s *exerciseListService) List(ctx context.Context, userID string) ([]domain.ExerciseList, error) {
	return s.listRepo.ListByUser(ctx, userID)
}

func (s *exerciseListService) Get(ctx context.Context, userID, listID string) (*domain.ExerciseList, error) {
	list, err := s.listRepo.GetByID(ctx, listID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseListNotFound
		}
		return nil, err
	}
	return list, nil
}

func (s *exerciseListService) Delete(ctx context.Context, userID, listID string) error {
	if err := s.listRepo.Delete(ctx, listID, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrExerciseListNotFound
		}
		return err
	}
	return nil
}
