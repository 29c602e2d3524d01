package store

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/natureviewrelax/bible-audio-journey-sub000/internal/domain"
)

const authorColumns = `id, first_name, last_name, ministry_role, biography,
	email, phone, website, facebook, youtube, instagram, created_at, updated_at`

// CreateAuthor inserts a narrator profile, assigning id and timestamps.
func (db *DB) CreateAuthor(a *domain.AudioAuthor) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	now := time.Now()
	a.CreatedAt = now
	a.UpdatedAt = now

	_, err := db.NamedExec(`INSERT INTO audio_authors
		(id, first_name, last_name, ministry_role, biography, email, phone, website, facebook, youtube, instagram, created_at, updated_at)
		VALUES (:id, :first_name, :last_name, :ministry_role, :biography, :email, :phone, :website, :facebook, :youtube, :instagram, :created_at, :updated_at)`, a)
	return err
}

// GetAuthor returns one narrator by id, or nil when absent.
func (db *DB) GetAuthor(id string) (*domain.AudioAuthor, error) {
	var a domain.AudioAuthor
	err := db.Get(&a, `SELECT `+authorColumns+` FROM audio_authors WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// ListAuthors returns all narrators ordered by name.
func (db *DB) ListAuthors() ([]domain.AudioAuthor, error) {
	var authors []domain.AudioAuthor
	err := db.Select(&authors, `SELECT `+authorColumns+` FROM audio_authors ORDER BY first_name, last_name`)
	if err != nil {
		return nil, err
	}
	return authors, nil
}

// UpdateAuthor replaces a narrator's profile fields.
func (db *DB) UpdateAuthor(a *domain.AudioAuthor) error {
	a.UpdatedAt = time.Now()
	_, err := db.NamedExec(`UPDATE audio_authors SET
		first_name = :first_name,
		last_name = :last_name,
		ministry_role = :ministry_role,
		biography = :biography,
		email = :email,
		phone = :phone,
		website = :website,
		facebook = :facebook,
		youtube = :youtube,
		instagram = :instagram,
		updated_at = :updated_at
		WHERE id = :id`, a)
	return err
}

// DeleteAuthor removes the narrator row only. Referencing verse_audio rows
// must be nulled first via ClearAuthorReferences; that ordering is the
// caller's responsibility.
func (db *DB) DeleteAuthor(id string) error {
	_, err := db.Exec(`DELETE FROM audio_authors WHERE id = ?`, id)
	return err
}

// AuthorNamesForChapter returns id→display-name for every narrator with at
// least one recording in the chapter. Feeds the per-chapter name cache.
func (db *DB) AuthorNamesForChapter(book string, chapter int) (map[string]string, error) {
	var rows []struct {
		ID        string `db:"id"`
		FirstName string `db:"first_name"`
		LastName  string `db:"last_name"`
	}
	err := db.Select(&rows, `SELECT DISTINCT a.id, a.first_name, a.last_name
		FROM verse_audio v
		JOIN audio_authors a ON a.id = v.author_id
		WHERE v.book = ? AND v.chapter = ?`,
		book, chapter)
	if err != nil {
		return nil, err
	}

	names := make(map[string]string, len(rows))
	for _, r := range rows {
		names[r.ID] = domain.AudioAuthor{FirstName: r.FirstName, LastName: r.LastName}.DisplayName()
	}
	return names, nil
}
