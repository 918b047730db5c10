package service

import (
	"context"
	"sync"
	"time"

	"learning_platform/internal/models"
	"learning_platform/internal/repository"
)

// memAccounts is an in-memory repository.AccountRepo.
type memAccounts struct {
	mu      sync.Mutex
	byName  map[string]models.Account
	failErr error
}

func newMemAccounts() *memAccounts {
	return &memAccounts{byName: map[string]models.Account{}}
}

func (m *memAccounts) Create(_ context.Context, a models.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failErr != nil {
		return m.failErr
	}
	if _, ok := m.byName[a.Username]; ok {
		return repository.ErrDuplicate
	}
	m.byName[a.Username] = a
	return nil
}

func (m *memAccounts) GetByUsername(_ context.Context, username string) (models.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failErr != nil {
		return models.Account{}, m.failErr
	}
	a, ok := m.byName[username]
	if !ok {
		return models.Account{}, repository.ErrNotFound
	}
	return a, nil
}

func (m *memAccounts) List(_ context.Context) ([]models.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failErr != nil {
		return nil, m.failErr
	}
	var out []models.Account
	for _, a := range m.byName {
		out = append(out, a)
	}
	return out, nil
}

func (m *memAccounts) UpdatePassword(_ context.Context, username, hash string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.byName[username]
	if !ok {
		return repository.ErrNotFound
	}
	a.PasswordHash = hash
	a.UpdatedAt = at
	m.byName[username] = a
	return nil
}

func (m *memAccounts) Delete(_ context.Context, username string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byName[username]; !ok {
		return repository.ErrNotFound
	}
	delete(m.byName, username)
	return nil
}

// memModules is an in-memory repository.ModuleRepo.
type memModules struct {
	mu       sync.Mutex
	byID     map[string]models.Module
	replaces int
	failErr  error
}

func newMemModules() *memModules {
	return &memModules{byID: map[string]models.Module{}}
}

func (m *memModules) Create(_ context.Context, mod models.Module) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failErr != nil {
		return m.failErr
	}
	m.byID[mod.ID] = mod
	return nil
}

func (m *memModules) Get(_ context.Context, id string) (models.Module, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failErr != nil {
		return models.Module{}, m.failErr
	}
	mod, ok := m.byID[id]
	if !ok {
		return models.Module{}, repository.ErrNotFound
	}
	return mod, nil
}

func (m *memModules) List(_ context.Context) ([]models.Module, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failErr != nil {
		return nil, m.failErr
	}
	var out []models.Module
	for _, mod := range m.byID {
		out = append(out, mod)
	}
	return out, nil
}

func (m *memModules) UpdateTitle(_ context.Context, id, title string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	mod, ok := m.byID[id]
	if !ok {
		return repository.ErrNotFound
	}
	mod.Title = title
	mod.UpdatedAt = at
	m.byID[id] = mod
	return nil
}

func (m *memModules) Replace(_ context.Context, mod models.Module) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[mod.ID]; !ok {
		return repository.ErrNotFound
	}
	m.replaces++
	m.byID[mod.ID] = mod
	return nil
}

func (m *memModules) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.byID, id)
	return nil
}

// recorder captures activity entries.
type recorder struct {
	mu      sync.Mutex
	entries []models.Activity
}

func (r *recorder) Record(ctx context.Context, a models.Activity) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a.Actor == "" {
		a.Actor = ActorFromContext(ctx)
	}
	r.entries = append(r.entries, a)
}

func (r *recorder) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.entries))
	for i, e := range r.entries {
		out[i] = e.Type
	}
	return out
}
