package store

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/natureviewrelax/bible-audio-journey-sub000/internal/domain"
)

// CreateVerseAudio inserts one narration row. The id and timestamp are
// assigned here when unset. Uniqueness per (verse, author) is the caller's
// concern; the store accepts duplicates.
func (db *DB) CreateVerseAudio(va *domain.VerseAudio) error {
	if va.ID == "" {
		va.ID = uuid.New().String()
	}
	if va.CreatedAt.IsZero() {
		va.CreatedAt = time.Now()
	}
	_, err := db.Exec(`INSERT INTO verse_audio (id, book, chapter, verse, author_id, audio_path, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		va.ID, va.Book, va.Chapter, va.Verse, va.AuthorID, va.AudioPath, va.CreatedAt)
	return err
}

// GetVerseAudioByAuthor returns the narration of a specific author for a
// specific verse, or nil when none exists.
func (db *DB) GetVerseAudioByAuthor(book string, chapter, verse int, authorID string) (*domain.VerseAudio, error) {
	var va domain.VerseAudio
	err := db.Get(&va, `SELECT id, book, chapter, verse, author_id, audio_path, created_at
		FROM verse_audio
		WHERE book = ? AND chapter = ? AND verse = ? AND author_id = ?
		ORDER BY rowid LIMIT 1`,
		book, chapter, verse, authorID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &va, nil
}

// FirstVerseAudio returns the first narration stored for a verse regardless
// of author, or nil when the verse has none. Ties between authors break by
// insertion order (rowid), made explicit here rather than left to the store.
func (db *DB) FirstVerseAudio(book string, chapter, verse int) (*domain.VerseAudio, error) {
	var va domain.VerseAudio
	err := db.Get(&va, `SELECT id, book, chapter, verse, author_id, audio_path, created_at
		FROM verse_audio
		WHERE book = ? AND chapter = ? AND verse = ?
		ORDER BY rowid LIMIT 1`,
		book, chapter, verse)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &va, nil
}

// ListChapterVerseAudio returns every narration row for a chapter. An empty
// authorID lists all authors; otherwise the list is scoped to that author.
// Rows come back in verse then insertion order.
func (db *DB) ListChapterVerseAudio(book string, chapter int, authorID string) ([]domain.VerseAudio, error) {
	var rows []domain.VerseAudio
	var err error
	if authorID == "" {
		err = db.Select(&rows, `SELECT id, book, chapter, verse, author_id, audio_path, created_at
			FROM verse_audio
			WHERE book = ? AND chapter = ?
			ORDER BY verse, rowid`,
			book, chapter)
	} else {
		err = db.Select(&rows, `SELECT id, book, chapter, verse, author_id, audio_path, created_at
			FROM verse_audio
			WHERE book = ? AND chapter = ? AND author_id = ?
			ORDER BY verse, rowid`,
			book, chapter, authorID)
	}
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// DeleteVerseAudio removes the narration rows for a verse. A nil authorID
// removes only anonymous rows; a non-nil one removes that author's rows.
func (db *DB) DeleteVerseAudio(book string, chapter, verse int, authorID *string) error {
	if authorID == nil {
		_, err := db.Exec(`DELETE FROM verse_audio
			WHERE book = ? AND chapter = ? AND verse = ? AND author_id IS NULL`,
			book, chapter, verse)
		return err
	}
	_, err := db.Exec(`DELETE FROM verse_audio
		WHERE book = ? AND chapter = ? AND verse = ? AND author_id = ?`,
		book, chapter, verse, *authorID)
	return err
}

// ClearAuthorReferences nulls the author on every narration that points at
// the given author. Called before the author row itself is deleted; the
// store does not enforce this integrity on its own.
func (db *DB) ClearAuthorReferences(authorID string) error {
	_, err := db.Exec(`UPDATE verse_audio SET author_id = NULL WHERE author_id = ?`, authorID)
	return err
}
