package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/natureviewrelax/bible-audio-journey-sub000/internal/audio"
	"github.com/natureviewrelax/bible-audio-journey-sub000/internal/bible"
	"github.com/natureviewrelax/bible-audio-journey-sub000/internal/cache"
	"github.com/natureviewrelax/bible-audio-journey-sub000/internal/config"
	"github.com/natureviewrelax/bible-audio-journey-sub000/internal/content"
	"github.com/natureviewrelax/bible-audio-journey-sub000/internal/domain"
	"github.com/natureviewrelax/bible-audio-journey-sub000/internal/logger"
	"github.com/natureviewrelax/bible-audio-journey-sub000/internal/services"
	"github.com/natureviewrelax/bible-audio-journey-sub000/internal/store"
)

type stubProvider struct {
	corpus domain.Corpus
	err    error
}

func (s *stubProvider) FetchCorpus(ctx context.Context) (domain.Corpus, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.corpus, nil
}

func (s *stubProvider) BookList(ctx context.Context) ([]domain.BookInfo, error) {
	if s.err != nil {
		return nil, s.err
	}
	books := make([]domain.BookInfo, 0, len(s.corpus))
	for _, b := range s.corpus {
		info, _ := bible.FindBook(b.Name)
		info.Chapters = len(b.Chapters)
		books = append(books, info)
	}
	return books, nil
}

type env struct {
	db     *store.DB
	cache  *cache.Cache
	server *httptest.Server
}

func newEnv(t *testing.T, provider content.Provider) *env {
	t.Helper()
	dir := t.TempDir()
	log := logger.Default()

	db, err := store.NewSQLiteDB(filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	blobs, err := store.NewBlobs(filepath.Join(dir, "data"))
	if err != nil {
		t.Fatalf("failed to create blobs: %v", err)
	}

	c := cache.New()
	cfg := &config.Config{
		AdminUsername:  "admin",
		AdminPassword:  "admin-secret",
		EditorUsername: "editor",
		EditorPassword: "editor-secret",
	}

	resolver := audio.NewResolver(db, blobs, log)
	assembler := content.NewAssembler(provider, resolver, db, c, "/media/default-audio", log)
	narration := services.NewNarration(db, blobs, c, log)
	authors := services.NewAuthors(db, c, log)

	h := NewHandler(assembler, narration, authors, db, blobs, c, cfg, log)
	r := chi.NewRouter()
	h.RegisterRoutes(r)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return &env{db: db, cache: c, server: srv}
}

func defaultProvider() *stubProvider {
	return &stubProvider{corpus: domain.Corpus{
		{Name: "Gênesis", Chapters: [][]string{
			{"No princípio criou Deus os céus e a terra.", "E a terra era sem forma e vazia."},
		}},
	}}
}

func (e *env) do(t *testing.T, method, path string, body *bytes.Buffer, opts ...func(*http.Request)) *http.Response {
	t.Helper()
	var reader *bytes.Buffer
	if body == nil {
		reader = &bytes.Buffer{}
	} else {
		reader = body
	}
	req, err := http.NewRequest(method, e.server.URL+path, reader)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	for _, opt := range opts {
		opt(req)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func asAdmin(req *http.Request)  { req.SetBasicAuth("admin", "admin-secret") }
func asEditor(req *http.Request) { req.SetBasicAuth("editor", "editor-secret") }

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return v
}

func TestListBooks(t *testing.T) {
	e := newEnv(t, defaultProvider())

	resp := e.do(t, http.MethodGet, "/api/books", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	books := decode[[]domain.BookInfo](t, resp)
	if len(books) != 1 || books[0].Slug != "genesis" {
		t.Errorf("unexpected book list: %+v", books)
	}
}

func TestSuggestBooks_FoldsAccents(t *testing.T) {
	e := newEnv(t, defaultProvider())

	resp := e.do(t, http.MethodGet, "/api/books/suggest?q=genesis", nil)
	books := decode[[]domain.BookInfo](t, resp)
	if len(books) == 0 || books[0].Name != "Gênesis" {
		t.Errorf("expected accent-folded suggestion, got %+v", books)
	}
}

func TestGetChapter(t *testing.T) {
	e := newEnv(t, defaultProvider())

	resp := e.do(t, http.MethodGet, "/api/bible/Gênesis/1", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	verses := decode[[]domain.Verse](t, resp)
	if len(verses) != 2 {
		t.Fatalf("expected 2 verses, got %d", len(verses))
	}
	if verses[0].DefaultAudioURL != "/media/default-audio/genesis.mp3" {
		t.Errorf("unexpected default audio URL: %s", verses[0].DefaultAudioURL)
	}
}

func TestGetChapter_UnknownBookIsEmpty(t *testing.T) {
	e := newEnv(t, defaultProvider())

	resp := e.do(t, http.MethodGet, "/api/bible/Atlantida/1", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	verses := decode[[]domain.Verse](t, resp)
	if len(verses) != 0 {
		t.Errorf("expected empty verse list, got %d", len(verses))
	}
}

func TestGetChapter_BadChapter(t *testing.T) {
	e := newEnv(t, defaultProvider())

	resp := e.do(t, http.MethodGet, "/api/bible/Gênesis/abc", nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", resp.StatusCode)
	}
}

func TestGetChapter_CorpusDown(t *testing.T) {
	e := newEnv(t, &stubProvider{err: bible.ErrContentUnavailable})

	resp := e.do(t, http.MethodGet, "/api/bible/Gênesis/1", nil)
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("expected 503, got %d", resp.StatusCode)
	}
}

func TestSearch(t *testing.T) {
	e := newEnv(t, defaultProvider())

	resp := e.do(t, http.MethodGet, "/api/search?q=Deus", nil)
	verses := decode[[]domain.Verse](t, resp)
	if len(verses) != 1 || verses[0].Verse != 1 {
		t.Errorf("unexpected search results: %+v", verses)
	}
}

func TestPreferencesLifecycle(t *testing.T) {
	e := newEnv(t, defaultProvider())

	// Defaults before anything is stored.
	resp := e.do(t, http.MethodGet, "/api/preferences", nil)
	got := decode[domain.AppSettings](t, resp)
	if got.DisplayMode != domain.DisplayModeBox || !got.ShowAudio {
		t.Errorf("unexpected defaults: %+v", got)
	}

	// Store a full blob.
	body := bytes.NewBufferString(`{"dark_theme":true,"display_mode":"inline","show_audio":false,"selected_author_id":"a-1"}`)
	resp = e.do(t, http.MethodPut, "/api/preferences", body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	resp = e.do(t, http.MethodGet, "/api/preferences", nil)
	got = decode[domain.AppSettings](t, resp)
	if !got.DarkTheme || got.DisplayMode != domain.DisplayModeInline || got.SelectedAuthorID != "a-1" {
		t.Errorf("unexpected stored settings: %+v", got)
	}

	// Reset drops the blob and clears the cache.
	e.cache.SetAuthorNames("Gênesis", 1, map[string]string{"a": "A"})
	resp = e.do(t, http.MethodDelete, "/api/preferences", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if _, ok := e.cache.AuthorNames("Gênesis", 1); ok {
		t.Error("expected cache cleared on reset")
	}

	resp = e.do(t, http.MethodGet, "/api/preferences", nil)
	got = decode[domain.AppSettings](t, resp)
	if got.DarkTheme {
		t.Errorf("expected defaults after reset, got %+v", got)
	}
}

func TestPutPreferences_InvalidDisplayMode(t *testing.T) {
	e := newEnv(t, defaultProvider())

	body := bytes.NewBufferString(`{"display_mode":"grid"}`)
	resp := e.do(t, http.MethodPut, "/api/preferences", body)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", resp.StatusCode)
	}
}

func TestAudioSettings_AdminOnlyWrite(t *testing.T) {
	e := newEnv(t, defaultProvider())

	resp := e.do(t, http.MethodGet, "/api/settings/audio", nil)
	settings := decode[domain.AudioSettings](t, resp)
	if !settings.UseDefaultAudio {
		t.Errorf("expected default audio enabled, got %+v", settings)
	}

	body := bytes.NewBufferString(`{"use_default_audio":false}`)
	resp = e.do(t, http.MethodPut, "/api/settings/audio", body)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 without credentials, got %d", resp.StatusCode)
	}

	body = bytes.NewBufferString(`{"use_default_audio":false}`)
	resp = e.do(t, http.MethodPut, "/api/settings/audio", body, asAdmin)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 as admin, got %d", resp.StatusCode)
	}

	resp = e.do(t, http.MethodGet, "/api/settings/audio", nil)
	settings = decode[domain.AudioSettings](t, resp)
	if settings.UseDefaultAudio {
		t.Error("expected default audio disabled after update")
	}
}

func TestAuthorCRUD(t *testing.T) {
	e := newEnv(t, defaultProvider())

	// Creation requires admin.
	body := bytes.NewBufferString(`{"first_name":"João","last_name":"Silva"}`)
	resp := e.do(t, http.MethodPost, "/api/authors", body)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 as viewer, got %d", resp.StatusCode)
	}

	body = bytes.NewBufferString(`{"first_name":"João","last_name":"Silva"}`)
	resp = e.do(t, http.MethodPost, "/api/authors", body, asAdmin)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	created := decode[domain.AudioAuthor](t, resp)
	if created.ID == "" {
		t.Fatal("expected an assigned id")
	}

	// Listing is public.
	resp = e.do(t, http.MethodGet, "/api/authors", nil)
	authors := decode[[]domain.AudioAuthor](t, resp)
	if len(authors) != 1 {
		t.Fatalf("expected 1 author, got %d", len(authors))
	}

	body = bytes.NewBufferString(`{"first_name":"João","last_name":"Souza"}`)
	resp = e.do(t, http.MethodPut, "/api/authors/"+created.ID, body, asAdmin)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	resp = e.do(t, http.MethodGet, "/api/authors/"+created.ID, nil)
	updated := decode[domain.AudioAuthor](t, resp)
	if updated.LastName != "Souza" {
		t.Errorf("expected updated name, got %+v", updated)
	}

	resp = e.do(t, http.MethodDelete, "/api/authors/"+created.ID, nil, asAdmin)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.StatusCode)
	}

	resp = e.do(t, http.MethodGet, "/api/authors/"+created.ID, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 after delete, got %d", resp.StatusCode)
	}
}

func TestVideoCRUD(t *testing.T) {
	e := newEnv(t, defaultProvider())

	resp := e.do(t, http.MethodGet, "/api/videos", nil)
	videos := decode[[]domain.Video](t, resp)
	if len(videos) != 0 {
		t.Errorf("expected empty list, got %+v", videos)
	}

	body := bytes.NewBufferString(`{"title":"Salmo 23","url":"https://example.com/v1","position":2}`)
	resp = e.do(t, http.MethodPost, "/api/videos", body, asAdmin)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	created := decode[domain.Video](t, resp)

	body = bytes.NewBufferString(`{"title":"Gênesis 1","url":"https://example.com/v2","position":1}`)
	resp = e.do(t, http.MethodPost, "/api/videos", body, asAdmin)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}

	// Position order on listing.
	resp = e.do(t, http.MethodGet, "/api/videos", nil)
	videos = decode[[]domain.Video](t, resp)
	if len(videos) != 2 || videos[0].Title != "Gênesis 1" {
		t.Errorf("expected position order, got %+v", videos)
	}

	resp = e.do(t, http.MethodDelete, "/api/videos/"+created.ID, nil, asAdmin)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.StatusCode)
	}
}

func multipartUpload(t *testing.T, fields map[string]string, filename string, clip []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("failed to write field: %v", err)
		}
	}
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("failed to create form file: %v", err)
	}
	if _, err := fw.Write(clip); err != nil {
		t.Fatalf("failed to write clip: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}
	return &buf, mw.FormDataContentType()
}

func TestUploadAudio(t *testing.T) {
	e := newEnv(t, defaultProvider())

	fields := map[string]string{"book": "Gênesis", "chapter": "1", "verse": "1"}
	body, contentType := multipartUpload(t, fields, "clip.mp3", nil)

	// Viewers cannot upload.
	resp := e.do(t, http.MethodPost, "/api/audio", body, func(r *http.Request) {
		r.Header.Set("Content-Type", contentType)
	})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 as viewer, got %d", resp.StatusCode)
	}

	body, contentType = multipartUpload(t, fields, "clip.mp3", nil)
	resp = e.do(t, http.MethodPost, "/api/audio", body, asEditor, func(r *http.Request) {
		r.Header.Set("Content-Type", contentType)
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201 as editor, got %d", resp.StatusCode)
	}
	row := decode[domain.VerseAudio](t, resp)
	if row.AudioPath != "genesis/1/1-anon.mp3" {
		t.Errorf("unexpected stored path: %s", row.AudioPath)
	}

	// The clip resolves into the chapter read.
	resp = e.do(t, http.MethodGet, "/api/bible/Gênesis/1", nil)
	verses := decode[[]domain.Verse](t, resp)
	if verses[0].Audio != "/media/verse-audio/genesis/1/1-anon.mp3" {
		t.Errorf("expected narration on verse 1, got %+v", verses[0])
	}

	// And the blob is served on the media route.
	resp = e.do(t, http.MethodGet, verses[0].Audio, nil)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected media blob to be served, got %d", resp.StatusCode)
	}
}

func TestDeleteAudio(t *testing.T) {
	e := newEnv(t, defaultProvider())

	fields := map[string]string{"book": "Gênesis", "chapter": "1", "verse": "1"}
	body, contentType := multipartUpload(t, fields, "clip.mp3", nil)
	resp := e.do(t, http.MethodPost, "/api/audio", body, asEditor, func(r *http.Request) {
		r.Header.Set("Content-Type", contentType)
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("upload failed: %d", resp.StatusCode)
	}

	resp = e.do(t, http.MethodDelete, "/api/audio?book=G%C3%AAnesis&chapter=1&verse=1", nil, asEditor)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.StatusCode)
	}

	resp = e.do(t, http.MethodGet, "/api/bible/Gênesis/1", nil)
	verses := decode[[]domain.Verse](t, resp)
	if verses[0].Audio != "" {
		t.Errorf("expected narration gone, got %+v", verses[0])
	}
}

func TestPreferredAuthorQueryParam(t *testing.T) {
	e := newEnv(t, defaultProvider())

	// Two narrators on the same verse.
	for _, tc := range []struct{ author, file string }{
		{"author-a", "a.mp3"}, {"author-b", "b.mp3"},
	} {
		fields := map[string]string{"book": "Gênesis", "chapter": "1", "verse": "1", "author_id": tc.author}
		body, contentType := multipartUpload(t, fields, tc.file, nil)
		resp := e.do(t, http.MethodPost, "/api/audio", body, asEditor, func(r *http.Request) {
			r.Header.Set("Content-Type", contentType)
		})
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("upload for %s failed: %d", tc.author, resp.StatusCode)
		}
	}

	resp := e.do(t, http.MethodGet, "/api/bible/Gênesis/1?author=author-b", nil)
	verses := decode[[]domain.Verse](t, resp)
	if verses[0].AuthorID != "author-b" {
		t.Errorf("expected preferred author to win, got %+v", verses[0])
	}
}

func TestResolveRole(t *testing.T) {
	h := &Handler{Config: &config.Config{
		AdminUsername: "admin", AdminPassword: "admin-secret",
		EditorUsername: "editor", EditorPassword: "editor-secret",
	}}

	cases := []struct {
		user, pass string
		want       domain.Role
	}{
		{"admin", "admin-secret", domain.RoleAdmin},
		{"editor", "editor-secret", domain.RoleEditor},
		{"admin", "wrong", domain.RoleViewer},
		{"nobody", "nothing", domain.RoleViewer},
	}
	for _, tc := range cases {
		if got := h.resolveRole(tc.user, tc.pass); got != tc.want {
			t.Errorf("resolveRole(%s): expected %s, got %s", tc.user, tc.want, got)
		}
	}
}

func TestRoleNeverInferredFromIdentifier(t *testing.T) {
	h := &Handler{Config: &config.Config{AdminUsername: "admin", AdminPassword: "secret"}}

	// Looking like an admin is not being one.
	for _, user := range []string{"admin@example.com", "administrator", "Admin"} {
		if got := h.resolveRole(user, "secret"); got != domain.RoleViewer {
			t.Errorf("expected viewer for %q, got %s", user, got)
		}
	}
}

func TestMediaRouteRejectsTraversal(t *testing.T) {
	e := newEnv(t, defaultProvider())

	resp := e.do(t, http.MethodGet, "/media/"+strings.ReplaceAll("../../etc/passwd", "/", "%2F"), nil)
	if resp.StatusCode == http.StatusOK {
		t.Error("expected traversal request to be refused")
	}
}
