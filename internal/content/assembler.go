// Package content assembles reader-facing verse records: corpus text
// merged with the narration overlay and author attribution.
package content

import (
	"context"

	"github.com/natureviewrelax/bible-audio-journey-sub000/internal/audio"
	"github.com/natureviewrelax/bible-audio-journey-sub000/internal/bible"
	"github.com/natureviewrelax/bible-audio-journey-sub000/internal/cache"
	"github.com/natureviewrelax/bible-audio-journey-sub000/internal/domain"
	"github.com/natureviewrelax/bible-audio-journey-sub000/internal/logger"
)

// Provider supplies the memoized corpus and book listing.
type Provider interface {
	FetchCorpus(ctx context.Context) (domain.Corpus, error)
	BookList(ctx context.Context) ([]domain.BookInfo, error)
}

// Resolver is the audio resolution capability the assembler consumes.
type Resolver interface {
	Resolve(ctx context.Context, book string, chapter, verse int, preferredAuthorID string) audio.Resolution
	ResolveChapter(ctx context.Context, book string, chapter int, preferredAuthorID string) map[int]audio.Resolution
}

// Store is the slice of the record store the assembler needs: author
// display names per chapter and the global audio settings.
type Store interface {
	AuthorNamesForChapter(book string, chapter int) (map[string]string, error)
	GetAudioSettings() (*domain.AudioSettings, error)
}

// Assembler merges corpus text with resolved audio. Audio and attribution
// failures degrade silently; only corpus unavailability is surfaced.
type Assembler struct {
	provider         Provider
	resolver         Resolver
	store            Store
	cache            *cache.Cache
	defaultAudioBase string
	log              *logger.Logger
}

// NewAssembler wires the assembler.
func NewAssembler(provider Provider, resolver Resolver, store Store, c *cache.Cache, defaultAudioBase string, log *logger.Logger) *Assembler {
	return &Assembler{
		provider:         provider,
		resolver:         resolver,
		store:            store,
		cache:            c,
		defaultAudioBase: defaultAudioBase,
		log:              log.WithComponent("content"),
	}
}

// Books lists the corpus books with their chapter counts.
func (a *Assembler) Books(ctx context.Context) ([]domain.BookInfo, error) {
	return a.provider.BookList(ctx)
}

// GetChapter returns the fully assembled verses of a chapter in ascending
// verse order. An unknown book name or out-of-range chapter yields an
// empty slice, never an error: callers present zero verses as "not found".
// Only a corpus fetch failure returns an error.
func (a *Assembler) GetChapter(ctx context.Context, book string, chapter int, preferredAuthorID string) ([]domain.Verse, error) {
	corpus, err := a.provider.FetchCorpus(ctx)
	if err != nil {
		return nil, err
	}

	var content *domain.BookContent
	for i := range corpus {
		if corpus[i].Name == book {
			content = &corpus[i]
			break
		}
	}
	if content == nil {
		return []domain.Verse{}, nil
	}
	if chapter < 1 || chapter > len(content.Chapters) {
		return []domain.Verse{}, nil
	}

	texts := content.Chapters[chapter-1]
	defaultURL := a.defaultAudioURL(book)
	resolved := a.resolver.ResolveChapter(ctx, book, chapter, preferredAuthorID)
	names := a.authorNames(book, chapter)

	verses := make([]domain.Verse, 0, len(texts))
	for i, text := range texts {
		v := domain.Verse{
			Book:            book,
			Chapter:         chapter,
			Verse:           i + 1,
			Text:            text,
			DefaultAudioURL: defaultURL,
		}
		if res, ok := resolved[v.Verse]; ok {
			v.Audio = res.URL
			v.AuthorID = res.AuthorID
			v.AuthorName = names[res.AuthorID]
		}
		verses = append(verses, v)
	}
	return verses, nil
}

// defaultAudioURL computes the per-book fallback clip URL, honoring the
// global use_default_audio switch. A settings read failure keeps the
// default behavior (enabled) rather than hiding audio.
func (a *Assembler) defaultAudioURL(book string) string {
	settings, err := a.store.GetAudioSettings()
	if err != nil {
		a.log.Error("audio settings lookup failed", "error", err)
	} else if !settings.UseDefaultAudio {
		return ""
	}
	return bible.DefaultAudioURL(a.defaultAudioBase, book)
}

// authorNames returns the memoized authorID→name map for a chapter,
// populating the cache on first visit. Store failures degrade to no
// attribution.
func (a *Assembler) authorNames(book string, chapter int) map[string]string {
	if names, ok := a.cache.AuthorNames(book, chapter); ok {
		return names
	}

	names, err := a.store.AuthorNamesForChapter(book, chapter)
	if err != nil {
		a.log.Error("author name lookup failed", "book", book, "chapter", chapter, "error", err)
		return map[string]string{}
	}
	a.cache.SetAuthorNames(book, chapter, names)
	return names
}
