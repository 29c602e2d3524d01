package content

import (
	"context"
	"strings"

	"github.com/natureviewrelax/bible-audio-journey-sub000/internal/constants"
	"github.com/natureviewrelax/bible-audio-journey-sub000/internal/domain"
)

// Search scans the whole corpus for verses containing the query as a
// case-insensitive substring. Accents are significant: "deus" matches
// "Deus" but not "Dêus". Results arrive in canonical order (book, chapter,
// verse) and are capped softly: the limit is checked between books, so the
// book that crosses it still contributes all its matches.
func (a *Assembler) Search(ctx context.Context, query, preferredAuthorID string) ([]domain.Verse, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return []domain.Verse{}, nil
	}

	corpus, err := a.provider.FetchCorpus(ctx)
	if err != nil {
		return nil, err
	}

	var results []domain.Verse
	for i := range corpus {
		if len(results) >= constants.SearchLimit {
			break
		}
		results = a.searchBook(ctx, &corpus[i], q, preferredAuthorID, results)
	}
	if results == nil {
		results = []domain.Verse{}
	}
	return results, nil
}

func (a *Assembler) searchBook(ctx context.Context, book *domain.BookContent, q, preferredAuthorID string, results []domain.Verse) []domain.Verse {
	defaultURL := a.defaultAudioURL(book.Name)
	for ci, chapter := range book.Chapters {
		for vi, text := range chapter {
			if !strings.Contains(strings.ToLower(text), q) {
				continue
			}
			v := domain.Verse{
				Book:            book.Name,
				Chapter:         ci + 1,
				Verse:           vi + 1,
				Text:            text,
				DefaultAudioURL: defaultURL,
			}
			if res := a.resolver.Resolve(ctx, v.Book, v.Chapter, v.Verse, preferredAuthorID); res.Found() {
				v.Audio = res.URL
				v.AuthorID = res.AuthorID
				v.AuthorName = a.authorNames(v.Book, v.Chapter)[res.AuthorID]
			}
			results = append(results, v)
		}
	}
	return results
}
