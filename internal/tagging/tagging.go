// Package tagging stamps metadata onto uploaded narration clips so the
// files stay self-describing outside the application: title is the verse
// reference, artist is the narrator.
package tagging

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/bogem/id3v2/v2"
	"github.com/go-flac/flacpicture"
	"github.com/go-flac/flacvorbis"
	flac "github.com/go-flac/go-flac"

	"github.com/natureviewrelax/bible-audio-journey-sub000/internal/constants"
)

// Tags is the metadata written to a narration clip.
type Tags struct {
	Title  string // verse reference, e.g. "Gênesis 1:1"
	Artist string // narrator display name
	Album  string // book name
}

// VerseTitle formats the canonical verse reference used as the clip title.
func VerseTitle(book string, chapter, verse int) string {
	return fmt.Sprintf("%s %d:%d", book, chapter, verse)
}

// TagFile writes metadata tags to the audio file at path, dispatching on
// the file extension. Cover art is optional.
func TagFile(path string, tags Tags, cover []byte) error {
	ext := strings.ToLower(filepath.Ext(path))

	switch ext {
	case constants.ExtFLAC:
		return tagFLAC(path, tags, cover)
	case constants.ExtMP3:
		return tagMP3(path, tags, cover)
	default:
		return fmt.Errorf("unsupported file format: %s", ext)
	}
}

// tagFLAC replaces the Vorbis comment and picture blocks of a FLAC file,
// keeping every other metadata block intact.
func tagFLAC(path string, tags Tags, cover []byte) error {
	f, err := flac.ParseFile(path)
	if err != nil {
		return fmt.Errorf("failed to parse FLAC file: %w", err)
	}

	kept := f.Meta[:0]
	for _, block := range f.Meta {
		if block.Type == flac.VorbisComment || block.Type == flac.Picture {
			continue
		}
		kept = append(kept, block)
	}
	f.Meta = kept

	comment := buildComment(tags)
	block := comment.Marshal()
	f.Meta = append(f.Meta, &block)

	if len(cover) > 0 {
		pic, err := flacpicture.NewFromImageData(flacpicture.PictureTypeFrontCover, "Front Cover", cover, detectMIME(cover))
		if err != nil {
			return fmt.Errorf("failed to build picture block: %w", err)
		}
		picBlock := pic.Marshal()
		f.Meta = append(f.Meta, &picBlock)
	}

	if err := f.Save(path); err != nil {
		return fmt.Errorf("failed to save FLAC file: %w", err)
	}
	return nil
}

// buildComment assembles the Vorbis comment block, skipping empty fields.
func buildComment(tags Tags) *flacvorbis.MetaDataBlockVorbisComment {
	comment := flacvorbis.New()

	add := func(name, value string) {
		if value != "" {
			comment.Add(name, value)
		}
	}
	add(flacvorbis.FIELD_TITLE, tags.Title)
	add(flacvorbis.FIELD_ARTIST, tags.Artist)
	add(flacvorbis.FIELD_ALBUM, tags.Album)
	return comment
}

// tagMP3 writes ID3v2.4 tags to an MP3 file.
func tagMP3(path string, tags Tags, cover []byte) error {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return fmt.Errorf("failed to open MP3 file: %w", err)
	}
	defer tag.Close()

	tag.SetVersion(4)

	if tags.Title != "" {
		tag.SetTitle(tags.Title)
	}
	if tags.Artist != "" {
		tag.SetArtist(tags.Artist)
	}
	if tags.Album != "" {
		tag.SetAlbum(tags.Album)
	}

	if len(cover) > 0 {
		tag.AddAttachedPicture(id3v2.PictureFrame{
			Encoding:    id3v2.EncodingUTF8,
			MimeType:    detectMIME(cover),
			PictureType: id3v2.PTFrontCover,
			Description: "Front Cover",
			Picture:     cover,
		})
	}

	if err := tag.Save(); err != nil {
		return fmt.Errorf("failed to save MP3 tags: %w", err)
	}
	return nil
}

// detectMIME sniffs the image MIME type and strips any parameters.
func detectMIME(data []byte) string {
	mime := http.DetectContentType(data)
	if idx := strings.Index(mime, ";"); idx != -1 {
		mime = strings.TrimSpace(mime[:idx])
	}
	return mime
}
