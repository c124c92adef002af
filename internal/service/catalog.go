package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/msomdec/therapy-admin/internal/domain"
)

// CatalogStore owns the therapy module collection, persisted as one JSON
// array under a single key. It performs no validation; see
// ValidateModuleInput for the checks callers run first.
type CatalogStore struct {
	mu       sync.Mutex
	kv       domain.KVStore
	key      string
	ids      domain.IDGenerator
	notifier domain.Notifier
	now      func() time.Time
	seed     []domain.TherapyModule
}

// NewCatalogStore creates a CatalogStore persisting under key.
func NewCatalogStore(kv domain.KVStore, key string, ids domain.IDGenerator, notifier domain.Notifier, opts ...StoreOption) *CatalogStore {
	o := defaultStoreOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &CatalogStore{
		kv:       kv,
		key:      key,
		ids:      ids,
		notifier: notifier,
		now:      o.now,
		seed:     o.seed,
	}
}

// ListAll returns every module. The first call against an empty backend
// writes the seed set and returns it.
func (s *CatalogStore) ListAll(ctx context.Context) ([]domain.TherapyModule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

// GetByID returns the module with the given id or domain.ErrNotFound.
func (s *CatalogStore) GetByID(ctx context.Context, id string) (*domain.TherapyModule, error) {
	modules, err := s.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	i := indexModule(modules, id)
	if i < 0 {
		return nil, domain.ErrNotFound
	}
	m := modules[i]
	return &m, nil
}

// Create appends a new module with a fresh id and both timestamps set to now.
func (s *CatalogStore) Create(ctx context.Context, in domain.ModuleInput) (*domain.TherapyModule, error) {
	s.mu.Lock()
	modules, err := s.load(ctx)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}

	now := s.now()
	m := domain.TherapyModule{
		ID:          s.ids.NewID(),
		Title:       in.Title,
		Description: in.Description,
		Category:    in.Category,
		Icon:        in.Icon,
		Color:       in.Color,
		Duration:    in.Duration,
		Difficulty:  in.Difficulty,
		Sessions:    in.Sessions,
		Tags:        slices.Clone(in.Tags),
		Status:      in.Status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	modules = append(modules, m)

	err = saveBlob(ctx, s.kv, s.key, modules)
	s.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("create module: %w", err)
	}

	notify(ctx, s.notifier, domain.Event{Topic: domain.TopicModules, Op: domain.OpCreated, ID: m.ID, At: now})
	return &m, nil
}

// Update merges patch over the stored module and refreshes UpdatedAt.
// It returns domain.ErrNotFound without writing when id is unknown.
func (s *CatalogStore) Update(ctx context.Context, id string, patch domain.ModulePatch) (*domain.TherapyModule, error) {
	s.mu.Lock()
	modules, err := s.load(ctx)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}

	i := indexModule(modules, id)
	if i < 0 {
		s.mu.Unlock()
		return nil, domain.ErrNotFound
	}

	now := s.now()
	patch.Apply(&modules[i])
	modules[i].UpdatedAt = now
	m := modules[i]

	err = saveBlob(ctx, s.kv, s.key, modules)
	s.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("update module: %w", err)
	}

	notify(ctx, s.notifier, domain.Event{Topic: domain.TopicModules, Op: domain.OpUpdated, ID: id, At: now})
	return &m, nil
}

// Delete removes the module and reports whether one was removed. Nothing is
// written or broadcast for an unknown id. The module's content record, if
// any, is left in the content store.
func (s *CatalogStore) Delete(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	modules, err := s.load(ctx)
	if err != nil {
		s.mu.Unlock()
		return false, err
	}

	i := indexModule(modules, id)
	if i < 0 {
		s.mu.Unlock()
		return false, nil
	}
	modules = slices.Delete(modules, i, i+1)

	err = saveBlob(ctx, s.kv, s.key, modules)
	s.mu.Unlock()
	if err != nil {
		return false, fmt.Errorf("delete module: %w", err)
	}

	notify(ctx, s.notifier, domain.Event{Topic: domain.TopicModules, Op: domain.OpDeleted, ID: id, At: s.now()})
	return true, nil
}

// ToggleStatus flips Active and Inactive through Update.
func (s *CatalogStore) ToggleStatus(ctx context.Context, id string) (*domain.TherapyModule, error) {
	m, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	next := domain.ModuleStatusActive
	if m.Status == domain.ModuleStatusActive {
		next = domain.ModuleStatusInactive
	}
	return s.Update(ctx, id, domain.ModulePatch{Status: &next})
}

// ListActive returns the modules an end user may start, in catalog order.
func (s *CatalogStore) ListActive(ctx context.Context) ([]domain.TherapyModule, error) {
	modules, err := s.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return slices.DeleteFunc(modules, func(m domain.TherapyModule) bool {
		return m.Status != domain.ModuleStatusActive
	}), nil
}

// Ready reports whether the backing store answers. It reads the catalog key
// without seeding it.
func (s *CatalogStore) Ready(ctx context.Context) error {
	if _, err := s.kv.Get(ctx, s.key); err != nil && !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("catalog storage: %w", err)
	}
	return nil
}

// load must be called with s.mu held.
func (s *CatalogStore) load(ctx context.Context) ([]domain.TherapyModule, error) {
	var modules []domain.TherapyModule
	found, err := loadBlob(ctx, s.kv, s.key, &modules)
	if err != nil {
		return nil, err
	}
	if found {
		return modules, nil
	}

	now := s.now()
	modules = make([]domain.TherapyModule, len(s.seed))
	for i, m := range s.seed {
		m.Tags = slices.Clone(m.Tags)
		m.CreatedAt = now
		m.UpdatedAt = now
		modules[i] = m
	}
	if err := saveBlob(ctx, s.kv, s.key, modules); err != nil {
		return nil, fmt.Errorf("seed catalog: %w", err)
	}
	slog.Debug("therapy catalog seeded", "key", s.key, "modules", len(modules))
	return modules, nil
}

func indexModule(modules []domain.TherapyModule, id string) int {
	return slices.IndexFunc(modules, func(m domain.TherapyModule) bool { return m.ID == id })
}

// Subscribe calls fn with the reloaded catalog after every module change
// until ctx is done.
func (s *CatalogStore) Subscribe(ctx context.Context, bus domain.Subscriber, fn func([]domain.TherapyModule)) error {
	events, cancel := bus.Subscribe(domain.TopicModules)
	defer cancel()
	return Watch(ctx, events, s.ListAll, fn)
}
