package bible

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/natureviewrelax/bible-audio-journey-sub000/internal/constants"
	"github.com/natureviewrelax/bible-audio-journey-sub000/internal/domain"
)

// ErrContentUnavailable marks a failed corpus fetch or parse. Callers
// surface it to the user with a retry action; nothing is cached until a
// fetch fully succeeds.
var ErrContentUnavailable = errors.New("bible content unavailable")

// Source fetches the full corpus JSON from its static asset location.
type Source struct {
	httpClient *http.Client
	url        string
}

// NewSource creates a corpus source for the given asset URL.
func NewSource(url string) *Source {
	return &Source{
		url: url,
		httpClient: &http.Client{
			Timeout: constants.DefaultHTTPTimeout,
		},
	}
}

// FetchCorpus performs one GET of the corpus asset and decodes it.
// The corpus is static canonical text, so no revalidation is ever needed;
// memoization is the cache layer's job (see CachedSource).
func (s *Source) FetchCorpus(ctx context.Context) (domain.Corpus, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: creating request: %v", ErrContentUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.doWithRetry(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%w: fetching corpus: %v", ErrContentUnavailable, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: corpus asset returned status %d", ErrContentUnavailable, resp.StatusCode)
	}

	var corpus domain.Corpus
	if err := json.NewDecoder(resp.Body).Decode(&corpus); err != nil {
		return nil, fmt.Errorf("%w: decoding corpus: %v", ErrContentUnavailable, err)
	}

	if len(corpus) == 0 {
		return nil, fmt.Errorf("%w: corpus asset is empty", ErrContentUnavailable)
	}

	return corpus, nil
}

func (s *Source) doWithRetry(ctx context.Context, req *http.Request) (*http.Response, error) {
	var lastErr error
	for attempt := 0; attempt < constants.DefaultRetryCount; attempt++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		resp, err := s.httpClient.Do(req)
		if err == nil {
			return resp, nil
		}
		lastErr = err
		time.Sleep(time.Duration(attempt+1) * constants.DefaultRetryBase)
	}
	return nil, lastErr
}
