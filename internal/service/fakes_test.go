package service

import (
	"alcyxob/fitcoach-api/internal/domain"
	"alcyxob/fitcoach-api/internal/repository"
	"context"
	"fmt"
	"sort"
	"sync"
	"time"
)

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]domain.User
	seq   int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]domain.User{}}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return repository.ErrConflict
		}
	}
	r.seq++
	user.ID = fmt.Sprintf("user-%d", r.seq)
	user.CreatedAt = time.Now().UTC()
	r.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

type fakeWorkoutRepo struct {
	mu       sync.Mutex
	workouts map[string]domain.WorkoutProgram
	seq      int
	clock    time.Time
}

func newFakeWorkoutRepo() *fakeWorkoutRepo {
	return &fakeWorkoutRepo{
		workouts: map[string]domain.WorkoutProgram{},
		clock:    time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (r *fakeWorkoutRepo) Create(ctx context.Context, w *domain.WorkoutProgram) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	r.clock = r.clock.Add(time.Minute)
	w.ID = fmt.Sprintf("workout-%d", r.seq)
	w.CreatedAt = r.clock
	r.workouts[w.ID] = *w
	return nil
}

func (r *fakeWorkoutRepo) ListByUser(ctx context.Context, userID string) ([]domain.WorkoutProgram, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.WorkoutProgram{}
	for _, w := range r.workouts {
		if w.UserID == userID {
			out = append(out, domain.WorkoutProgram{ID: w.ID, UserID: w.UserID, Title: w.Title, CreatedAt: w.CreatedAt})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeWorkoutRepo) GetByID(ctx context.Context, id, userID string) (*domain.WorkoutProgram, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.workouts[id]
	if !ok || w.UserID != userID {
		return nil, repository.ErrNotFound
	}
	return &w, nil
}

func (r *fakeWorkoutRepo) UpdateTitle(ctx context.Context, id, userID, title string) (*domain.WorkoutProgram, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.workouts[id]
	if !ok || w.UserID != userID {
		return nil, repository.ErrNotFound
	}
	w.Title = title
	r.workouts[id] = w
	return &w, nil
}

func (r *fakeWorkoutRepo) Delete(ctx context.Context, id, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.workouts[id]
	if !ok || w.UserID != userID {
		return repository.ErrNotFound
	}
	delete(r.workouts, id)
	return nil
}

type fakeExerciseListRepo struct {
	mu    sync.Mutex
	lists map[string]domain.ExerciseList
	seq   int
}

func newFakeExerciseListRepo() *fakeExerciseListRepo {
	return &fakeExerciseListRepo{lists: map[string]domain.ExerciseList{}}
}

func (r *fakeExerciseListRepo) Create(ctx context.Context, l *domain.ExerciseList) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	l.ID = fmt.Sprintf("list-%d", r.seq)
	l.CreatedAt = time.Now().UTC()
	r.lists[l.ID] = *l
	return nil
}

func (r *fakeExerciseListRepo) ListByUser(ctx context.Context, userID string) ([]domain.ExerciseList, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.ExerciseList{}
	for _, l := range r.lists {
		if l.UserID == userID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *fakeExerciseListRepo) GetByID(ctx context.Context, id, userID string) (*domain.ExerciseList, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.lists[id]
	if !ok || l.UserID != userID {
		return nil, repository.ErrNotFound
	}
	return &l, nil
}

func (r *fakeExerciseListRepo) Delete(ctx context.Context, id, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.lists[id]
	if !ok || l.UserID != userID {
		return repository.ErrNotFound
	}
	delete(r.lists, id)
	return nil
}

type fakeStorage struct {
	objects map[string][]byte
	deleted []string
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: map[string][]byte{}}
}

func (s *fakeStorage) PutObject(ctx context.Context, key, contentType string, body []byte) error {
	s.objects[key] = body
	return nil
}

func (s *fakeStorage) GeneratePresignedDownloadURL(ctx context.Context, key string, expires time.Duration) (string, error) {
	return "https://files.test/" + key, nil
}

func (s *fakeStorage) DeleteObject(ctx context.Context, key string) error {
	s.deleted = append(s.deleted, key)
	delete(s.objects, key)
	return nil
}
