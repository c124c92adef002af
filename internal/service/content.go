package service

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/msomdec/therapy-admin/internal/domain"
)

// ContentStore owns the per-module content records, persisted as one JSON
// array under a single key. Unlike the catalog it is never seeded.
type ContentStore struct {
	mu       sync.Mutex
	kv       domain.KVStore
	key      string
	ids      domain.IDGenerator
	notifier domain.Notifier
	now      func() time.Time
}

// NewContentStore creates a ContentStore persisting under key.
func NewContentStore(kv domain.KVStore, key string, ids domain.IDGenerator, notifier domain.Notifier, opts ...StoreOption) *ContentStore {
	o := defaultStoreOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &ContentStore{
		kv:       kv,
		key:      key,
		ids:      ids,
		notifier: notifier,
		now:      o.now,
	}
}

// ListAll returns every content record, or an empty slice if nothing was
// ever saved.
func (s *ContentStore) ListAll(ctx context.Context) ([]domain.Content, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

// GetByModuleID returns the first record owned by moduleID.
func (s *ContentStore) GetByModuleID(ctx context.Context, moduleID string) (*domain.Content, error) {
	all, err := s.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	i := indexModuleContent(all, moduleID)
	if i < 0 {
		return nil, domain.ErrNotFound
	}
	c := all[i]
	return &c, nil
}

// GetByID returns the record with the given id.
func (s *ContentStore) GetByID(ctx context.Context, id string) (*domain.Content, error) {
	all, err := s.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	i := indexContent(all, id)
	if i < 0 {
		return nil, domain.ErrNotFound
	}
	c := all[i]
	return &c, nil
}

// Save upserts content for moduleID. When existingID names a stored record
// its payload is replaced and its version bumped; the publish flag is kept.
// Otherwise a new unpublished record with version 1 is created. The content
// type always follows the payload.
func (s *ContentStore) Save(ctx context.Context, moduleID string, payload domain.Payload, existingID string) (*domain.Content, error) {
	locate := func(all []domain.Content) (int, error) {
		if existingID == "" {
			return -1, nil
		}
		return indexContent(all, existingID), nil
	}
	return s.write(ctx, moduleID, locate, replaceWith(payload))
}

// SaveForModule is Save with one record per module. An existingID owned by
// a different module is ErrNotFound; an empty or stale existingID resolves
// to the module's current record, if any.
func (s *ContentStore) SaveForModule(ctx context.Context, moduleID string, payload domain.Payload, existingID string) (*domain.Content, error) {
	locate := func(all []domain.Content) (int, error) {
		if existingID != "" {
			if i := indexContent(all, existingID); i >= 0 {
				if all[i].ModuleID != moduleID {
					return -1, fmt.Errorf("content %s of module %s: %w", existingID, moduleID, domain.ErrNotFound)
				}
				return i, nil
			}
		}
		return indexModuleContent(all, moduleID), nil
	}
	return s.write(ctx, moduleID, locate, replaceWith(payload))
}

// Update rewrites the payload of record id with fn and bumps its version.
// fn runs under the store lock, so concurrent updates never lose an edit.
func (s *ContentStore) Update(ctx context.Context, id string, fn func(domain.Payload) (domain.Payload, error)) (*domain.Content, error) {
	locate := func(all []domain.Content) (int, error) {
		i := indexContent(all, id)
		if i < 0 {
			return -1, fmt.Errorf("content %s: %w", id, domain.ErrNotFound)
		}
		return i, nil
	}
	return s.write(ctx, "", locate, fn)
}

func replaceWith(payload domain.Payload) func(domain.Payload) (domain.Payload, error) {
	return func(domain.Payload) (domain.Payload, error) { return payload, nil }
}

// write is the read-modify-write behind Save, SaveForModule and Update.
// locate picks the record to replace, or -1 to create one for moduleID.
func (s *ContentStore) write(
	ctx context.Context,
	moduleID string,
	locate func([]domain.Content) (int, error),
	build func(domain.Payload) (domain.Payload, error),
) (*domain.Content, error) {
	s.mu.Lock()
	all, err := s.load(ctx)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}

	i, err := locate(all)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	var current domain.Payload
	if i >= 0 {
		current = all[i].Payload
	}
	payload, err := build(current)
	if err == nil && payload == nil {
		err = fmt.Errorf("%w: payload is required", domain.ErrInvalidInput)
	}
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}

	now := s.now()
	op := domain.OpUpdated
	if i >= 0 {
		all[i].Type = payload.ContentType()
		all[i].Payload = payload
		all[i].Version++
		all[i].UpdatedAt = now
	} else {
		op = domain.OpCreated
		all = append(all, domain.Content{
			ID:        s.ids.NewID(),
			ModuleID:  moduleID,
			Type:      payload.ContentType(),
			Payload:   payload,
			Version:   1,
			CreatedAt: now,
			UpdatedAt: now,
		})
		i = len(all) - 1
	}
	c := all[i]

	err = saveBlob(ctx, s.kv, s.key, all)
	s.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("save content: %w", err)
	}

	notify(ctx, s.notifier, domain.Event{Topic: domain.TopicContent, Op: op, ID: c.ID, At: now})
	return &c, nil
}

// Publish sets the publish flag and reports whether the record exists.
// Version and payload are never touched.
func (s *ContentStore) Publish(ctx context.Context, id string, published bool) (bool, error) {
	s.mu.Lock()
	all, err := s.load(ctx)
	if err != nil {
		s.mu.Unlock()
		return false, err
	}

	i := indexContent(all, id)
	if i < 0 {
		s.mu.Unlock()
		return false, nil
	}
	now := s.now()
	all[i].IsPublished = published
	all[i].UpdatedAt = now

	err = saveBlob(ctx, s.kv, s.key, all)
	s.mu.Unlock()
	if err != nil {
		return false, fmt.Errorf("publish content: %w", err)
	}

	notify(ctx, s.notifier, domain.Event{Topic: domain.TopicContent, Op: domain.OpPublished, ID: id, At: now})
	return true, nil
}

// Delete removes the record and reports whether one was removed.
func (s *ContentStore) Delete(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	all, err := s.load(ctx)
	if err != nil {
		s.mu.Unlock()
		return false, err
	}

	i := indexContent(all, id)
	if i < 0 {
		s.mu.Unlock()
		return false, nil
	}
	all = slices.Delete(all, i, i+1)

	err = saveBlob(ctx, s.kv, s.key, all)
	s.mu.Unlock()
	if err != nil {
		return false, fmt.Errorf("delete content: %w", err)
	}

	notify(ctx, s.notifier, domain.Event{Topic: domain.TopicContent, Op: domain.OpDeleted, ID: id, At: s.now()})
	return true, nil
}

// load must be called with s.mu held.
func (s *ContentStore) load(ctx context.Context) ([]domain.Content, error) {
	all := []domain.Content{}
	if _, err := loadBlob(ctx, s.kv, s.key, &all); err != nil {
		return nil, err
	}
	return all, nil
}

func indexContent(all []domain.Content, id string) int {
	return slices.IndexFunc(all, func(c domain.Content) bool { return c.ID == id })
}

func indexModuleContent(all []domain.Content, moduleID string) int {
	return slices.IndexFunc(all, func(c domain.Content) bool { return c.ModuleID == moduleID })
}

// Subscribe calls fn with every content record after each content change
// until ctx is done.
func (s *ContentStore) Subscribe(ctx context.Context, bus domain.Subscriber, fn func([]domain.Content)) error {
	events, cancel := bus.Subscribe(domain.TopicContent)
	defer cancel()
	return Watch(ctx, events, s.ListAll, fn)
}
