package domain

import (
	"strings"
	"time"
)

// BookContent is one book of the fetched corpus: a name plus an ordered
// list of chapters, each chapter an ordered list of verse strings.
type BookContent struct {
	Name     string     `json:"name"`
	Chapters [][]string `json:"chapters"`
}

// Corpus is the complete Bible text as served by the static asset,
// in canonical book order. Loaded once and treated as immutable.
type Corpus []BookContent

// BookInfo describes one canonical book for listings and navigation.
type BookInfo struct {
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	Chapters int    `json:"chapters"`
}

// Verse is the atomic content unit returned to readers: source text merged
// with the resolved audio overlay for that verse.
type Verse struct {
	Book            string `json:"book"`
	Chapter         int    `json:"chapter"`
	Verse           int    `json:"verse"`
	Text            string `json:"text"`
	DefaultAudioURL string `json:"default_audio_url,omitempty"`
	Audio           string `json:"audio,omitempty"`
	AuthorID        string `json:"author_id,omitempty"`
	AuthorName      string `json:"author_name,omitempty"`
}

// VerseAudio is one stored narration: a verse reference, an optional
// narrator, and the storage path of the clip. Multiple rows may exist for
// the same verse when multiple narrators have recorded it.
type VerseAudio struct {
	ID        string    `db:"id" json:"id"`
	Book      string    `db:"book" json:"book"`
	Chapter   int       `db:"chapter" json:"chapter"`
	Verse     int       `db:"verse" json:"verse"`
	AuthorID  *string   `db:"author_id" json:"author_id,omitempty"`
	AudioPath string    `db:"audio_path" json:"audio_path"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// AudioAuthor is narrator metadata. First and last name are required;
// the contact and social fields are optional profile data.
type AudioAuthor struct {
	ID           string    `db:"id" json:"id"`
	FirstName    string    `db:"first_name" json:"first_name"`
	LastName     string    `db:"last_name" json:"last_name"`
	MinistryRole string    `db:"ministry_role" json:"ministry_role,omitempty"`
	Biography    string    `db:"biography" json:"biography,omitempty"`
	Email        string    `db:"email" json:"email,omitempty"`
	Phone        string    `db:"phone" json:"phone,omitempty"`
	Website      string    `db:"website" json:"website,omitempty"`
	Facebook     string    `db:"facebook" json:"facebook,omitempty"`
	Youtube      string    `db:"youtube" json:"youtube,omitempty"`
	Instagram    string    `db:"instagram" json:"instagram,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// DisplayName returns the narrator's name as shown next to a verse.
func (a AudioAuthor) DisplayName() string {
	return strings.TrimSpace(a.FirstName + " " + a.LastName)
}

// AudioSettings is the global audio singleton. UseDefaultAudio controls
// whether verses without a narration fall back to the per-book default clip.
type AudioSettings struct {
	UseDefaultAudio    bool      `db:"use_default_audio" json:"use_default_audio"`
	DefaultAudioSource string    `db:"default_audio_source" json:"default_audio_source,omitempty"`
	UpdatedBy          string    `db:"updated_by" json:"updated_by,omitempty"`
	UpdatedAt          time.Time `db:"updated_at" json:"updated_at"`
}

// Video is one entry of the devotional video list shown in the admin area.
type Video struct {
	ID          string    `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	URL         string    `db:"url" json:"url"`
	Description string    `db:"description" json:"description,omitempty"`
	Position    int       `db:"position" json:"position"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// DisplayMode selects how verses are laid out by the reader.
type DisplayMode string

const (
	DisplayModeBox    DisplayMode = "box"
	DisplayModeInline DisplayMode = "inline"
)

// AppSettings is the per-user preference bundle. It is persisted as one
// JSON blob under a single key and is the source of the preferred-author
// hint consumed by audio resolution.
type AppSettings struct {
	DarkTheme        bool        `json:"dark_theme"`
	DisplayMode      DisplayMode `json:"display_mode"`
	ShowAudio        bool        `json:"show_audio"`
	SelectedAuthorID string      `json:"selected_author_id,omitempty"`
}

// DefaultAppSettings returns the settings a fresh session starts with.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		DarkTheme:   false,
		DisplayMode: DisplayModeBox,
		ShowAudio:   true,
	}
}

// Role is a static session role. Authorization is a first-class attribute
// of the session, never inferred from identifier contents.
type Role string

const (
	RoleViewer Role = "viewer"
	RoleEditor Role = "editor"
	RoleAdmin  Role = "admin"
)

// CanEdit reports whether the role may upload or remove narrations.
func (r Role) CanEdit() bool {
	return r == RoleEditor || r == RoleAdmin
}

// CanAdmin reports whether the role may manage authors, videos and settings.
func (r Role) CanAdmin() bool {
	return r == RoleAdmin
}
