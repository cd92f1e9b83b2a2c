package api

import (
	"alcyxob/fitcoach-api/internal/domain"
	"alcyxob/fitcoach-api/internal/repository"
	"alcyxob/fitcoach-api/internal/schema"
	"context"
	"fmt"
	"sort"
	"sync"
	"time"
)

// memStore backs all three repositories for handler tests.
type memStore struct {
	mu       sync.Mutex
	seq      int
	clock    time.Time
	users    map[string]domain.User
	workouts map[string]domain.WorkoutProgram
	lists    map[string]domain.ExerciseList
}

func newMemStore() *memStore {
	return &memStore{
		clock:    time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC),
		users:    map[string]domain.User{},
		workouts: map[string]domain.WorkoutProgram{},
		lists:    map[string]domain.ExerciseList{},
	}
}

func (s *memStore) next(prefix string) (string, time.Time) {
	s.seq++
	s.clock = s.clock.Add(time.Second)
	return fmt.Sprintf("%s-%d", prefix, s.seq), s.clock
}

type memUsers struct{ *memStore }

func (r memUsers) Create(ctx context.Context, u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return repository.ErrConflict
		}
	}
	u.ID, u.CreatedAt = r.next("user")
	r.users[u.ID] = *u
	return nil
}

func (r memUsers) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r memUsers) GetByID(ctx context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

type memWorkouts struct{ *memStore }

func (r memWorkouts) Create(ctx context.Context, w *domain.WorkoutProgram) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	w.ID, w.CreatedAt = r.next("workout")
	r.workouts[w.ID] = *w
	return nil
}

func (r memWorkouts) ListByUser(ctx context.Context, userID string) ([]domain.WorkoutProgram, error) {
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

func (r memWorkouts) GetByID(ctx context.Context, id, userID string) (*domain.WorkoutProgram, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.workouts[id]
	if !ok || w.UserID != userID {
		return nil, repository.ErrNotFound
	}
	return &w, nil
}

func (r memWorkouts) UpdateTitle(ctx context.Context, id, userID, title string) (*domain.WorkoutProgram, error) {
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

func (r memWorkouts) Delete(ctx context.Context, id, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.workouts[id]
	if !ok || w.UserID != userID {
		return repository.ErrNotFound
	}
	delete(r.workouts, id)
	return nil
}

type memLists struct{ *memStore }

func (r memLists) Create(ctx context.Context, l *domain.ExerciseList) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	l.ID, l.CreatedAt = r.next("list")
	r.lists[l.ID] = *l
	return nil
}

func (r memLists) ListByUser(ctx context.Context, userID string) ([]domain.ExerciseList, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.ExerciseList{}
	for _, l := range r.lists {
		if l.UserID == userID {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r memLists) GetByID(ctx context.Context, id, userID string) (*domain.ExerciseList, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.lists[id]
	if !ok || l.UserID != userID {
		return nil, repository.ErrNotFound
	}
	return &l, nil
}

func (r memLists) Delete(ctx context.Context, id, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.lists[id]
	if !ok || l.UserID != userID {
		return repository.ErrNotFound
	}
	delete(r.lists, id)
	return nil
}

// stubGenerator returns a canned result and records what it was asked.
type stubGenerator struct {
	program   *schema.Program
	err       error
	lastText  string
	lastPrefs *schema.Preferences
}

func (g *stubGenerator) Generate(ctx context.Context, text string, prefs *schema.Preferences) (*schema.Program, error) {
	g.lastText = text
	g.lastPrefs = prefs
	return g.program, g.err
}
