// Package services holds the write-side workflows that span the record
// store, the blob store and the cache.
package services

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/natureviewrelax/bible-audio-journey-sub000/internal/bible"
	"github.com/natureviewrelax/bible-audio-journey-sub000/internal/cache"
	"github.com/natureviewrelax/bible-audio-journey-sub000/internal/constants"
	"github.com/natureviewrelax/bible-audio-journey-sub000/internal/domain"
	"github.com/natureviewrelax/bible-audio-journey-sub000/internal/logger"
	"github.com/natureviewrelax/bible-audio-journey-sub000/internal/store"
	"github.com/natureviewrelax/bible-audio-journey-sub000/internal/tagging"
)

// anonSegment names the path segment for narrations with no author.
const anonSegment = "anon"

// Narration handles uploading and removing verse recordings. A verse holds
// at most one recording per author: uploading again replaces both the blob
// and the row.
type Narration struct {
	db    *store.DB
	blobs *store.Blobs
	cache *cache.Cache
	log   *logger.Logger
}

// NewNarration wires the narration workflows.
func NewNarration(db *store.DB, blobs *store.Blobs, c *cache.Cache, log *logger.Logger) *Narration {
	return &Narration{
		db:    db,
		blobs: blobs,
		cache: c,
		log:   log.WithComponent("narration"),
	}
}

// Upload stores a narration clip for a verse. The clip is tagged with the
// verse reference and narrator name, written to the verse-audio bucket
// under a deterministic path, and registered in the record store, replacing
// any previous recording by the same author.
func (n *Narration) Upload(ctx context.Context, book string, chapter, verse int, authorID *string, filename string, clip io.Reader, cover []byte) (*domain.VerseAudio, error) {
	info, err := n.validateRef(book, chapter, verse)
	if err != nil {
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if ext != constants.ExtMP3 && ext != constants.ExtFLAC {
		return nil, fmt.Errorf("unsupported audio format: %s", ext)
	}

	base := n.pathBase(info.Slug, chapter, verse, authorID)
	relPath := base + ext

	tmp, err := n.stageClip(clip, ext)
	if err != nil {
		return nil, err
	}
	defer os.Remove(tmp)

	tags := tagging.Tags{
		Title:  tagging.VerseTitle(book, chapter, verse),
		Artist: n.narratorName(authorID),
		Album:  book,
	}
	if err := tagging.TagFile(tmp, tags, cover); err != nil {
		return nil, fmt.Errorf("failed to tag narration: %w", err)
	}

	f, err := os.Open(tmp)
	if err != nil {
		return nil, fmt.Errorf("failed to reopen staged clip: %w", err)
	}
	defer f.Close()

	// A re-upload may switch formats; drop both candidates before saving.
	n.removeBlobCandidates(base)
	if err := n.blobs.Save(constants.BucketVerseAudio, relPath, f); err != nil {
		return nil, fmt.Errorf("failed to store narration: %w", err)
	}

	if err := n.db.DeleteVerseAudio(book, chapter, verse, authorID); err != nil {
		return nil, fmt.Errorf("failed to replace narration record: %w", err)
	}
	row := &domain.VerseAudio{
		Book:      book,
		Chapter:   chapter,
		Verse:     verse,
		AuthorID:  authorID,
		AudioPath: relPath,
	}
	if err := n.db.CreateVerseAudio(row); err != nil {
		return nil, fmt.Errorf("failed to record narration: %w", err)
	}

	n.cache.ClearAuthorNames()
	n.log.Info("narration uploaded", "book", book, "chapter", chapter, "verse", verse, "path", relPath)
	return row, nil
}

// Delete removes a verse recording: the rows and the stored clip. Deleting
// a verse that has no recording is not an error.
func (n *Narration) Delete(ctx context.Context, book string, chapter, verse int, authorID *string) error {
	info, err := n.validateRef(book, chapter, verse)
	if err != nil {
		return err
	}

	if err := n.db.DeleteVerseAudio(book, chapter, verse, authorID); err != nil {
		return fmt.Errorf("failed to delete narration record: %w", err)
	}
	n.removeBlobCandidates(n.pathBase(info.Slug, chapter, verse, authorID))

	n.cache.ClearAuthorNames()
	n.log.Info("narration deleted", "book", book, "chapter", chapter, "verse", verse)
	return nil
}

func (n *Narration) validateRef(book string, chapter, verse int) (domain.BookInfo, error) {
	info, ok := bible.FindBook(book)
	if !ok {
		return domain.BookInfo{}, fmt.Errorf("unknown book: %s", book)
	}
	if chapter < 1 || chapter > info.Chapters {
		return domain.BookInfo{}, fmt.Errorf("chapter %d out of range for %s", chapter, book)
	}
	if verse < 1 {
		return domain.BookInfo{}, fmt.Errorf("invalid verse: %d", verse)
	}
	return info, nil
}

// pathBase builds the deterministic blob path without its extension:
// {slug}/{chapter}/{verse}-{author}.
func (n *Narration) pathBase(slug string, chapter, verse int, authorID *string) string {
	seg := anonSegment
	if authorID != nil {
		if s := store.SanitizeName(*authorID); s != "" {
			seg = s
		}
	}
	return fmt.Sprintf("%s/%d/%d-%s", slug, chapter, verse, seg)
}

// stageClip copies the upload to a temp file so it can be tagged in place
// before entering the blob store.
func (n *Narration) stageClip(clip io.Reader, ext string) (string, error) {
	tmp, err := os.CreateTemp("", "narration-*"+ext)
	if err != nil {
		return "", fmt.Errorf("failed to stage clip: %w", err)
	}
	if _, err := io.Copy(tmp, clip); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to stage clip: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to stage clip: %w", err)
	}
	return tmp.Name(), nil
}

// narratorName resolves the display name for tagging. Lookup failures only
// cost the artist tag, never the upload.
func (n *Narration) narratorName(authorID *string) string {
	if authorID == nil {
		return ""
	}
	author, err := n.db.GetAuthor(*authorID)
	if err != nil {
		n.log.Error("narrator lookup failed", "author", *authorID, "error", err)
		return ""
	}
	if author == nil {
		return ""
	}
	return author.DisplayName()
}

func (n *Narration) removeBlobCandidates(base string) {
	for _, ext := range []string{constants.ExtMP3, constants.ExtFLAC} {
		if err := n.blobs.Remove(constants.BucketVerseAudio, base+ext); err != nil {
			n.log.Error("failed to remove narration blob", "path", base+ext, "error", err)
		}
	}
}
