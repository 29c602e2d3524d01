// Package constants contains application-wide constants to avoid magic numbers and strings.
package constants

import "time"

// Application defaults
const (
	DefaultPort            = "8080"
	DefaultDBPath          = "bible.db"
	DefaultDataDir         = "data"
	DefaultCorpusURL       = "https://assets.bible-audio-journey.app/acf.json"
	DefaultAudioBase       = "/media/default-audio"
	DefaultHTTPTimeout     = 30 * time.Second
	DefaultRetryCount      = 3
	DefaultRetryBase       = 1 * time.Second
	DefaultShutdownTimeout = 5 * time.Second
	DefaultAdminUsername   = "admin"
)

// Blob buckets
const (
	BucketVerseAudio   = "verse-audio"
	BucketDefaultAudio = "default-audio"
)

// Search
const (
	// SearchLimit is a soft cap checked between books, so the book being
	// scanned when the cap is reached may push the total slightly past it.
	SearchLimit = 100

	MaxBookSuggestions = 10
)

// MIME Types
const (
	MimeTypeFLAC = "audio/flac"
	MimeTypeMP3  = "audio/mpeg"
	MimeTypeJPEG = "image/jpeg"
)

// File Extensions
const (
	ExtFLAC = ".flac"
	ExtMP3  = ".mp3"
)

// File Permissions
const (
	DirPermissions  = 0755
	FilePermissions = 0644
)

// Preference store
const (
	// AppSettingsKey is the single fixed key the whole AppSettings blob
	// lives under. Read whole, written whole, no partial-field API.
	AppSettingsKey = "app_settings"
)

// Characters to sanitize from filesystem paths
const InvalidPathChars = "<>:\"/\\|?*"
