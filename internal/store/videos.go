package store

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/natureviewrelax/bible-audio-journey-sub000/internal/domain"
)

// CreateVideo inserts a devotional video entry.
func (db *DB) CreateVideo(v *domain.Video) error {
	if v.ID == "" {
		v.ID = uuid.New().String()
	}
	now := time.Now()
	v.CreatedAt = now
	v.UpdatedAt = now

	_, err := db.Exec(`INSERT INTO bible_videos (id, title, url, description, position, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		v.ID, v.Title, v.URL, v.Description, v.Position, v.CreatedAt, v.UpdatedAt)
	return err
}

// GetVideo returns one video by id, or nil when absent.
func (db *DB) GetVideo(id string) (*domain.Video, error) {
	var v domain.Video
	err := db.Get(&v, `SELECT id, title, url, description, position, created_at, updated_at
		FROM bible_videos WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// ListVideos returns all videos in display order.
func (db *DB) ListVideos() ([]domain.Video, error) {
	var videos []domain.Video
	err := db.Select(&videos, `SELECT id, title, url, description, position, created_at, updated_at
		FROM bible_videos ORDER BY position, created_at`)
	if err != nil {
		return nil, err
	}
	return videos, nil
}

// UpdateVideo replaces a video's fields.
func (db *DB) UpdateVideo(v *domain.Video) error {
	v.UpdatedAt = time.Now()
	_, err := db.Exec(`UPDATE bible_videos SET title = ?, url = ?, description = ?, position = ?, updated_at = ?
		WHERE id = ?`,
		v.Title, v.URL, v.Description, v.Position, v.UpdatedAt, v.ID)
	return err
}

// DeleteVideo removes a video entry.
func (db *DB) DeleteVideo(id string) error {
	_, err := db.Exec(`DELETE FROM bible_videos WHERE id = ?`, id)
	return err
}
