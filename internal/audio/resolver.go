// Package audio decides which narration clip accompanies a verse.
package audio

import (
	"context"

	"github.com/natureviewrelax/bible-audio-journey-sub000/internal/constants"
	"github.com/natureviewrelax/bible-audio-journey-sub000/internal/domain"
	"github.com/natureviewrelax/bible-audio-journey-sub000/internal/logger"
)

// Store is the slice of the record store the resolver consumes.
type Store interface {
	GetVerseAudioByAuthor(book string, chapter, verse int, authorID string) (*domain.VerseAudio, error)
	FirstVerseAudio(book string, chapter, verse int) (*domain.VerseAudio, error)
	ListChapterVerseAudio(book string, chapter int, authorID string) ([]domain.VerseAudio, error)
}

// URLResolver turns a stored audio path into a public URL.
type URLResolver interface {
	PublicURL(bucket, path string) string
}

// Resolution is the outcome for one verse: the clip URL and who narrated
// it. The zero value means no narration exists.
type Resolution struct {
	URL      string `json:"url"`
	AuthorID string `json:"author_id,omitempty"`
}

// Found reports whether a narration was resolved.
func (r Resolution) Found() bool {
	return r.URL != ""
}

// Resolver applies the two-tier preference rule: a preferred author's
// recording wins outright; otherwise the first recording by any author is
// used. Store failures degrade to "no audio" — narration being missing must
// never block verse text from rendering.
type Resolver struct {
	store Store
	urls  URLResolver
	log   *logger.Logger
}

// NewResolver wires the resolver against the record store.
func NewResolver(store Store, urls URLResolver, log *logger.Logger) *Resolver {
	return &Resolver{
		store: store,
		urls:  urls,
		log:   log.WithComponent("audio-resolver"),
	}
}

// Resolve finds the narration for a single verse. A preferred author match
// is terminal; absent one, the verse falls back to any available recording,
// ties broken by insertion order.
func (r *Resolver) Resolve(ctx context.Context, book string, chapter, verse int, preferredAuthorID string) Resolution {
	if preferredAuthorID != "" {
		row, err := r.store.GetVerseAudioByAuthor(book, chapter, verse, preferredAuthorID)
		if err != nil {
			r.log.Error("preferred-author lookup failed", "book", book, "chapter", chapter, "verse", verse, "error", err)
			return Resolution{}
		}
		if row != nil {
			return r.resolution(row)
		}
	}

	row, err := r.store.FirstVerseAudio(book, chapter, verse)
	if err != nil {
		r.log.Error("verse audio lookup failed", "book", book, "chapter", chapter, "verse", verse, "error", err)
		return Resolution{}
	}
	if row == nil {
		return Resolution{}
	}
	return r.resolution(row)
}

// ResolveChapter resolves a whole chapter with at most two store queries:
// one scoped to the preferred author and, only when that returns nothing,
// one unscoped. A non-empty preferred-author result set is used
// exclusively — verses the preferred author never recorded stay absent
// from the map instead of falling back per verse. That asymmetry with
// Resolve is long-standing observed behavior and is kept as-is.
func (r *Resolver) ResolveChapter(ctx context.Context, book string, chapter int, preferredAuthorID string) map[int]Resolution {
	if preferredAuthorID != "" {
		rows, err := r.store.ListChapterVerseAudio(book, chapter, preferredAuthorID)
		if err != nil {
			r.log.Error("preferred-author chapter lookup failed", "book", book, "chapter", chapter, "error", err)
			return map[int]Resolution{}
		}
		if len(rows) > 0 {
			return r.group(rows)
		}
	}

	rows, err := r.store.ListChapterVerseAudio(book, chapter, "")
	if err != nil {
		r.log.Error("chapter audio lookup failed", "book", book, "chapter", chapter, "error", err)
		return map[int]Resolution{}
	}
	return r.group(rows)
}

func (r *Resolver) group(rows []domain.VerseAudio) map[int]Resolution {
	out := make(map[int]Resolution, len(rows))
	for i := range rows {
		if _, taken := out[rows[i].Verse]; taken {
			continue
		}
		out[rows[i].Verse] = r.resolution(&rows[i])
	}
	return out
}

func (r *Resolver) resolution(row *domain.VerseAudio) Resolution {
	res := Resolution{
		URL: r.urls.PublicURL(constants.BucketVerseAudio, row.AudioPath),
	}
	if row.AuthorID != nil {
		res.AuthorID = *row.AuthorID
	}
	return res
}
