// Package cache holds the process-wide memoization state: the fetched
// corpus, the book list, and per-chapter author-name lookups. It is an
// explicit object owned by the composition root and passed by reference,
// not hidden module state.
package cache

import (
	"fmt"
	"sync"

	gocache "github.com/patrickmn/go-cache"

	"github.com/natureviewrelax/bible-audio-journey-sub000/internal/domain"
)

// Cache never expires entries on its own: the corpus is a single bounded
// document and the author-name entries are bounded by the chapters visited
// in a session. ClearAll is the single manual invalidation entry point.
type Cache struct {
	mu          sync.RWMutex
	corpus      domain.Corpus
	books       []domain.BookInfo
	authorNames *gocache.Cache
}

// New creates an empty cache.
func New() *Cache {
	return &Cache{
		authorNames: gocache.New(gocache.NoExpiration, 0),
	}
}

// Corpus returns the cached corpus, if one has been stored.
func (c *Cache) Corpus() (domain.Corpus, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.corpus, c.corpus != nil
}

// SetCorpus stores the fetched corpus for the lifetime of the process.
func (c *Cache) SetCorpus(corpus domain.Corpus) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.corpus = corpus
}

// Books returns the cached book listing, if one has been stored.
func (c *Cache) Books() ([]domain.BookInfo, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.books, c.books != nil
}

// SetBooks stores the book listing.
func (c *Cache) SetBooks(books []domain.BookInfo) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.books = books
}

func chapterKey(book string, chapter int) string {
	return fmt.Sprintf("%s-%d", book, chapter)
}

// AuthorNames returns the memoized authorID→display-name map for a chapter.
func (c *Cache) AuthorNames(book string, chapter int) (map[string]string, bool) {
	v, ok := c.authorNames.Get(chapterKey(book, chapter))
	if !ok {
		return nil, false
	}
	names, ok := v.(map[string]string)
	return names, ok
}

// SetAuthorNames memoizes the author display names for a chapter.
func (c *Cache) SetAuthorNames(book string, chapter int, names map[string]string) {
	c.authorNames.Set(chapterKey(book, chapter), names, gocache.NoExpiration)
}

// ClearAuthorNames drops only the memoized author-name maps. Called after
// author or narration mutations; the corpus stays cached.
func (c *Cache) ClearAuthorNames() {
	c.authorNames.Flush()
}

// ClearAll drops everything: corpus, book list and author names. Invoked
// from the user-triggered settings reset.
func (c *Cache) ClearAll() {
	c.mu.Lock()
	c.corpus = nil
	c.books = nil
	c.mu.Unlock()
	c.authorNames.Flush()
}
