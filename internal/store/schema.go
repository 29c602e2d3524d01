package store

const Schema = `
CREATE TABLE IF NOT EXISTS verse_audio (
	id TEXT PRIMARY KEY,
	book TEXT NOT NULL,
	chapter INTEGER NOT NULL,
	verse INTEGER NOT NULL,
	author_id TEXT,
	audio_path TEXT NOT NULL,
	created_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_verse_audio_ref ON verse_audio(book, chapter, verse);
CREATE INDEX IF NOT EXISTS idx_verse_audio_author ON verse_audio(author_id);

CREATE TABLE IF NOT EXISTS audio_authors (
	id TEXT PRIMARY KEY,
	first_name TEXT NOT NULL,
	last_name TEXT NOT NULL,
	ministry_role TEXT NOT NULL DEFAULT '',
	biography TEXT NOT NULL DEFAULT '',
	email TEXT NOT NULL DEFAULT '',
	phone TEXT NOT NULL DEFAULT '',
	website TEXT NOT NULL DEFAULT '',
	facebook TEXT NOT NULL DEFAULT '',
	youtube TEXT NOT NULL DEFAULT '',
	instagram TEXT NOT NULL DEFAULT '',
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS audio_settings (
	id INTEGER PRIMARY KEY CHECK (id = 1),
	use_default_audio INTEGER NOT NULL DEFAULT 1,
	default_audio_source TEXT NOT NULL DEFAULT '',
	updated_by TEXT NOT NULL DEFAULT '',
	updated_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS bible_videos (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	url TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	position INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS preferences (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL,
	updated_at DATETIME NOT NULL
);
`
