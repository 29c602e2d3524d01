package tagging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bogem/id3v2/v2"
	"github.com/go-flac/flacvorbis"
	flac "github.com/go-flac/go-flac"
)

func TestVerseTitle(t *testing.T) {
	got := VerseTitle("Gênesis", 1, 3)
	if got != "Gênesis 1:3" {
		t.Errorf("unexpected verse title: %q", got)
	}
}

func TestBuildComment_SkipsEmptyFields(t *testing.T) {
	comment := buildComment(Tags{Title: "Salmos 23:1"})

	titles, err := comment.Get(flacvorbis.FIELD_TITLE)
	if err != nil {
		t.Fatalf("Get(TITLE) failed: %v", err)
	}
	if len(titles) != 1 || titles[0] != "Salmos 23:1" {
		t.Errorf("unexpected TITLE: %v", titles)
	}

	artists, err := comment.Get(flacvorbis.FIELD_ARTIST)
	if err != nil {
		t.Fatalf("Get(ARTIST) failed: %v", err)
	}
	if len(artists) != 0 {
		t.Errorf("expected no ARTIST tag for empty value, got %v", artists)
	}
}

func TestTagFile_UnsupportedFormat(t *testing.T) {
	if err := TagFile("clip.ogg", Tags{Title: "x"}, nil); err == nil {
		t.Error("expected an error for unsupported format")
	}
}

func TestTagFile_MP3(t *testing.T) {
	path := filepath.Join(t.TempDir(), "1-author.mp3")
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatalf("failed to create file: %v", err)
	}

	tags := Tags{Title: "Gênesis 1:1", Artist: "João Silva", Album: "Gênesis"}
	if err := TagFile(path, tags, nil); err != nil {
		t.Fatalf("TagFile failed: %v", err)
	}

	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		t.Fatalf("failed to reopen MP3: %v", err)
	}
	defer tag.Close()

	if tag.Title() != "Gênesis 1:1" {
		t.Errorf("unexpected title: %q", tag.Title())
	}
	if tag.Artist() != "João Silva" {
		t.Errorf("unexpected artist: %q", tag.Artist())
	}
	if tag.Album() != "Gênesis" {
		t.Errorf("unexpected album: %q", tag.Album())
	}
}

// minimalFLAC returns the smallest parseable FLAC stream: the marker plus a
// zeroed StreamInfo block flagged as last.
func minimalFLAC() []byte {
	data := []byte("fLaC")
	data = append(data, 0x80, 0x00, 0x00, 0x22)
	return append(data, make([]byte, 34)...)
}

func TestTagFile_FLAC(t *testing.T) {
	path := filepath.Join(t.TempDir(), "1-author.flac")
	if err := os.WriteFile(path, minimalFLAC(), 0644); err != nil {
		t.Fatalf("failed to create file: %v", err)
	}

	tags := Tags{Title: "Salmos 23:1", Artist: "João Silva", Album: "Salmos"}
	if err := TagFile(path, tags, nil); err != nil {
		t.Fatalf("TagFile failed: %v", err)
	}

	f, err := flac.ParseFile(path)
	if err != nil {
		t.Fatalf("failed to reparse FLAC: %v", err)
	}

	var found bool
	for _, block := range f.Meta {
		if block.Type != flac.VorbisComment {
			continue
		}
		found = true
		comment, err := flacvorbis.ParseFromMetaDataBlock(*block)
		if err != nil {
			t.Fatalf("failed to parse vorbis comment: %v", err)
		}
		titles, err := comment.Get(flacvorbis.FIELD_TITLE)
		if err != nil || len(titles) != 1 || titles[0] != "Salmos 23:1" {
			t.Errorf("unexpected TITLE: %v (err %v)", titles, err)
		}
		artists, err := comment.Get(flacvorbis.FIELD_ARTIST)
		if err != nil || len(artists) != 1 || artists[0] != "João Silva" {
			t.Errorf("unexpected ARTIST: %v (err %v)", artists, err)
		}
	}
	if !found {
		t.Error("expected a vorbis comment block after tagging")
	}
}

func TestTagFile_FLACReplacesExistingComment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "2-author.flac")
	if err := os.WriteFile(path, minimalFLAC(), 0644); err != nil {
		t.Fatalf("failed to create file: %v", err)
	}

	if err := TagFile(path, Tags{Title: "old"}, nil); err != nil {
		t.Fatalf("first TagFile failed: %v", err)
	}
	if err := TagFile(path, Tags{Title: "Salmos 23:2"}, nil); err != nil {
		t.Fatalf("second TagFile failed: %v", err)
	}

	f, err := flac.ParseFile(path)
	if err != nil {
		t.Fatalf("failed to reparse FLAC: %v", err)
	}

	var comments int
	for _, block := range f.Meta {
		if block.Type == flac.VorbisComment {
			comments++
			comment, err := flacvorbis.ParseFromMetaDataBlock(*block)
			if err != nil {
				t.Fatalf("failed to parse vorbis comment: %v", err)
			}
			titles, _ := comment.Get(flacvorbis.FIELD_TITLE)
			if len(titles) != 1 || titles[0] != "Salmos 23:2" {
				t.Errorf("expected replaced title, got %v", titles)
			}
		}
	}
	if comments != 1 {
		t.Errorf("expected exactly one vorbis comment block, got %d", comments)
	}
}

func TestDetectMIME(t *testing.T) {
	jpeg := []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F'}
	if got := detectMIME(jpeg); got != "image/jpeg" {
		t.Errorf("unexpected MIME: %q", got)
	}
}
