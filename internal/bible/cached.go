package bible

import (
	"context"

	"github.com/natureviewrelax/bible-audio-journey-sub000/internal/cache"
	"github.com/natureviewrelax/bible-audio-journey-sub000/internal/domain"
)

// Fetcher is the corpus retrieval capability CachedSource decorates.
type Fetcher interface {
	FetchCorpus(ctx context.Context) (domain.Corpus, error)
}

var _ Fetcher = (*Source)(nil)
var _ Fetcher = (*CachedSource)(nil)

// CachedSource memoizes the corpus in the shared cache layer: the network
// is hit at most once per process lifetime, and a failed fetch caches
// nothing so the next call retries.
type CachedSource struct {
	source Fetcher
	cache  *cache.Cache
}

// NewCachedSource wraps source with the shared cache.
func NewCachedSource(source Fetcher, c *cache.Cache) *CachedSource {
	return &CachedSource{
		source: source,
		cache:  c,
	}
}

// FetchCorpus returns the cached corpus, fetching and storing it on miss.
func (c *CachedSource) FetchCorpus(ctx context.Context) (domain.Corpus, error) {
	if corpus, ok := c.cache.Corpus(); ok {
		return corpus, nil
	}

	corpus, err := c.source.FetchCorpus(ctx)
	if err != nil {
		return nil, err
	}

	c.cache.SetCorpus(corpus)
	return corpus, nil
}

// BookList returns the name and chapter count of every book in the corpus,
// memoized alongside it. Chapter counts come from the corpus itself, not
// the canonical table, so the listing always matches the loaded text.
func (c *CachedSource) BookList(ctx context.Context) ([]domain.BookInfo, error) {
	if books, ok := c.cache.Books(); ok {
		return books, nil
	}

	corpus, err := c.FetchCorpus(ctx)
	if err != nil {
		return nil, err
	}

	books := make([]domain.BookInfo, 0, len(corpus))
	for _, b := range corpus {
		info := domain.BookInfo{Name: b.Name, Chapters: len(b.Chapters)}
		if canonical, ok := FindBook(b.Name); ok {
			info.Slug = canonical.Slug
		}
		books = append(books, info)
	}

	c.cache.SetBooks(books)
	return books, nil
}
