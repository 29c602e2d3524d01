package store

import (
	"database/sql"
	"errors"
	"time"

	"github.com/natureviewrelax/bible-audio-journey-sub000/internal/domain"
)

// GetAudioSettings returns the global audio singleton, creating the default
// row on first access (default audio enabled).
func (db *DB) GetAudioSettings() (*domain.AudioSettings, error) {
	var s domain.AudioSettings
	err := db.Get(&s, `SELECT use_default_audio, default_audio_source, updated_by, updated_at
		FROM audio_settings WHERE id = 1`)
	if errors.Is(err, sql.ErrNoRows) {
		s = domain.AudioSettings{UseDefaultAudio: true, UpdatedAt: time.Now()}
		if _, insErr := db.Exec(`INSERT INTO audio_settings (id, use_default_audio, default_audio_source, updated_by, updated_at)
			VALUES (1, ?, ?, ?, ?)`,
			s.UseDefaultAudio, s.DefaultAudioSource, s.UpdatedBy, s.UpdatedAt); insErr != nil {
			return nil, insErr
		}
		return &s, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// UpdateAudioSettings replaces the singleton, stamping who and when.
func (db *DB) UpdateAudioSettings(s *domain.AudioSettings) error {
	s.UpdatedAt = time.Now()
	_, err := db.Exec(`INSERT INTO audio_settings (id, use_default_audio, default_audio_source, updated_by, updated_at)
		VALUES (1, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			use_default_audio = excluded.use_default_audio,
			default_audio_source = excluded.default_audio_source,
			updated_by = excluded.updated_by,
			updated_at = excluded.updated_at`,
		s.UseDefaultAudio, s.DefaultAudioSource, s.UpdatedBy, s.UpdatedAt)
	return err
}

// GetPreference reads a raw preference blob; empty string when unset.
func (db *DB) GetPreference(key string) (string, error) {
	var value string
	err := db.Get(&value, `SELECT value FROM preferences WHERE key = ?`, key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return value, err
}

// SetPreference writes a whole preference blob under its key.
func (db *DB) SetPreference(key, value string) error {
	_, err := db.Exec(`INSERT INTO preferences (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now())
	return err
}

// DeletePreference removes a preference blob (the explicit reset path).
func (db *DB) DeletePreference(key string) error {
	_, err := db.Exec(`DELETE FROM preferences WHERE key = ?`, key)
	return err
}
