package services

import (
	"context"
	"fmt"

	"github.com/natureviewrelax/bible-audio-journey-sub000/internal/cache"
	"github.com/natureviewrelax/bible-audio-journey-sub000/internal/domain"
	"github.com/natureviewrelax/bible-audio-journey-sub000/internal/logger"
	"github.com/natureviewrelax/bible-audio-journey-sub000/internal/store"
)

// Authors wraps author CRUD with the cache invalidation and referential
// cleanup the raw store leaves to callers.
type Authors struct {
	db    *store.DB
	cache *cache.Cache
	log   *logger.Logger
}

// NewAuthors wires the author workflows.
func NewAuthors(db *store.DB, c *cache.Cache, log *logger.Logger) *Authors {
	return &Authors{
		db:    db,
		cache: c,
		log:   log.WithComponent("authors"),
	}
}

// List returns every narrator profile.
func (s *Authors) List(ctx context.Context) ([]domain.AudioAuthor, error) {
	return s.db.ListAuthors()
}

// Get returns one narrator profile, or nil when it does not exist.
func (s *Authors) Get(ctx context.Context, id string) (*domain.AudioAuthor, error) {
	return s.db.GetAuthor(id)
}

// Create registers a narrator profile.
func (s *Authors) Create(ctx context.Context, a *domain.AudioAuthor) error {
	if err := s.db.CreateAuthor(a); err != nil {
		return err
	}
	s.cache.ClearAuthorNames()
	return nil
}

// Update rewrites a narrator profile. Cached display names go stale on a
// rename, so the name cache is flushed.
func (s *Authors) Update(ctx context.Context, a *domain.AudioAuthor) error {
	if err := s.db.UpdateAuthor(a); err != nil {
		return err
	}
	s.cache.ClearAuthorNames()
	return nil
}

// Delete removes a narrator. Recordings survive: their author reference is
// nulled first, then the profile row goes. Order matters — the store keeps
// no foreign key between the two.
func (s *Authors) Delete(ctx context.Context, id string) error {
	if err := s.db.ClearAuthorReferences(id); err != nil {
		return fmt.Errorf("failed to detach recordings: %w", err)
	}
	if err := s.db.DeleteAuthor(id); err != nil {
		return fmt.Errorf("failed to delete author: %w", err)
	}
	s.cache.ClearAuthorNames()
	s.log.Info("author deleted", "author", id)
	return nil
}
