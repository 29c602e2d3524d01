package handlers

import (
	"io"
	"net/http"
	"strconv"
)

// maxUploadSize bounds a narration upload (clip plus optional cover).
const maxUploadSize = 64 << 20

// UploadAudio accepts a multipart narration upload: the clip under "file",
// an optional cover image under "cover", and book/chapter/verse fields.
// An empty author_id records an anonymous narration.
func (h *Handler) UploadAudio(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		http.Error(w, "invalid multipart payload", http.StatusBadRequest)
		return
	}

	book, chapter, verse, ok := verseRef(w, r)
	if !ok {
		return
	}
	var authorID *string
	if id := r.FormValue("author_id"); id != "" {
		authorID = &id
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "audio file is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	var cover []byte
	if coverFile, _, err := r.FormFile("cover"); err == nil {
		cover, err = io.ReadAll(coverFile)
		coverFile.Close()
		if err != nil {
			http.Error(w, "failed to read cover image", http.StatusBadRequest)
			return
		}
	}

	row, err := h.Narration.Upload(r.Context(), book, chapter, verse, authorID, header.Filename, file, cover)
	if err != nil {
		h.Log.Error("narration upload rejected", "book", book, "chapter", chapter, "verse", verse, "error", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	h.writeJSON(w, http.StatusCreated, row)
}

// DeleteAudio removes a verse recording. The verse reference comes from
// query parameters; an absent author removes the anonymous recording.
func (h *Handler) DeleteAudio(w http.ResponseWriter, r *http.Request) {
	book, chapter, verse, ok := verseRefQuery(w, r)
	if !ok {
		return
	}
	var authorID *string
	if id := r.URL.Query().Get("author_id"); id != "" {
		authorID = &id
	}

	if err := h.Narration.Delete(r.Context(), book, chapter, verse, authorID); err != nil {
		h.Log.Error("narration delete rejected", "book", book, "chapter", chapter, "verse", verse, "error", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func verseRef(w http.ResponseWriter, r *http.Request) (string, int, int, bool) {
	return parseVerseRef(w, r.FormValue("book"), r.FormValue("chapter"), r.FormValue("verse"))
}

func verseRefQuery(w http.ResponseWriter, r *http.Request) (string, int, int, bool) {
	q := r.URL.Query()
	return parseVerseRef(w, q.Get("book"), q.Get("chapter"), q.Get("verse"))
}

func parseVerseRef(w http.ResponseWriter, book, chapterRaw, verseRaw string) (string, int, int, bool) {
	if book == "" {
		http.Error(w, "book is required", http.StatusBadRequest)
		return "", 0, 0, false
	}
	chapter, err := strconv.Atoi(chapterRaw)
	if err != nil {
		http.Error(w, "chapter must be a number", http.StatusBadRequest)
		return "", 0, 0, false
	}
	verse, err := strconv.Atoi(verseRaw)
	if err != nil {
		http.Error(w, "verse must be a number", http.StatusBadRequest)
		return "", 0, 0, false
	}
	return book, chapter, verse, true
}
