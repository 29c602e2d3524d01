package bible

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/natureviewrelax/bible-audio-journey-sub000/internal/domain"
)

// Books contains all 66 canonical books in canonical order, with the ACF
// (Almeida Corrigida Fiel) Portuguese names the corpus asset uses.
var Books = []domain.BookInfo{
	// Velho Testamento
	{Name: "Gênesis", Slug: "genesis", Chapters: 50},
	{Name: "Êxodo", Slug: "exodo", Chapters: 40},
	{Name: "Levítico", Slug: "levitico", Chapters: 27},
	{Name: "Números", Slug: "numeros", Chapters: 36},
	{Name: "Deuteronômio", Slug: "deuteronomio", Chapters: 34},
	{Name: "Josué", Slug: "josue", Chapters: 24},
	{Name: "Juízes", Slug: "juizes", Chapters: 21},
	{Name: "Rute", Slug: "rute", Chapters: 4},
	{Name: "1 Samuel", Slug: "1-samuel", Chapters: 31},
	{Name: "2 Samuel", Slug: "2-samuel", Chapters: 24},
	{Name: "1 Reis", Slug: "1-reis", Chapters: 22},
	{Name: "2 Reis", Slug: "2-reis", Chapters: 25},
	{Name: "1 Crônicas", Slug: "1-cronicas", Chapters: 29},
	{Name: "2 Crônicas", Slug: "2-cronicas", Chapters: 36},
	{Name: "Esdras", Slug: "esdras", Chapters: 10},
	{Name: "Neemias", Slug: "neemias", Chapters: 13},
	{Name: "Ester", Slug: "ester", Chapters: 10},
	{Name: "Jó", Slug: "jo", Chapters: 42},
	{Name: "Salmos", Slug: "salmos", Chapters: 150},
	{Name: "Provérbios", Slug: "proverbios", Chapters: 31},
	{Name: "Eclesiastes", Slug: "eclesiastes", Chapters: 12},
	{Name: "Cantares", Slug: "cantares", Chapters: 8},
	{Name: "Isaías", Slug: "isaias", Chapters: 66},
	{Name: "Jeremias", Slug: "jeremias", Chapters: 52},
	{Name: "Lamentações", Slug: "lamentacoes", Chapters: 5},
	{Name: "Ezequiel", Slug: "ezequiel", Chapters: 48},
	{Name: "Daniel", Slug: "daniel", Chapters: 12},
	{Name: "Oséias", Slug: "oseias", Chapters: 14},
	{Name: "Joel", Slug: "joel", Chapters: 3},
	{Name: "Amós", Slug: "amos", Chapters: 9},
	{Name: "Obadias", Slug: "obadias", Chapters: 1},
	{Name: "Jonas", Slug: "jonas", Chapters: 4},
	{Name: "Miquéias", Slug: "miqueias", Chapters: 7},
	{Name: "Naum", Slug: "naum", Chapters: 3},
	{Name: "Habacuque", Slug: "habacuque", Chapters: 3},
	{Name: "Sofonias", Slug: "sofonias", Chapters: 3},
	{Name: "Ageu", Slug: "ageu", Chapters: 2},
	{Name: "Zacarias", Slug: "zacarias", Chapters: 14},
	{Name: "Malaquias", Slug: "malaquias", Chapters: 4},
	// Novo Testamento
	{Name: "Mateus", Slug: "mateus", Chapters: 28},
	{Name: "Marcos", Slug: "marcos", Chapters: 16},
	{Name: "Lucas", Slug: "lucas", Chapters: 24},
	{Name: "João", Slug: "joao", Chapters: 21},
	{Name: "Atos", Slug: "atos", Chapters: 28},
	{Name: "Romanos", Slug: "romanos", Chapters: 16},
	{Name: "1 Coríntios", Slug: "1-corintios", Chapters: 16},
	{Name: "2 Coríntios", Slug: "2-corintios", Chapters: 13},
	{Name: "Gálatas", Slug: "galatas", Chapters: 6},
	{Name: "Efésios", Slug: "efesios", Chapters: 6},
	{Name: "Filipenses", Slug: "filipenses", Chapters: 4},
	{Name: "Colossenses", Slug: "colossenses", Chapters: 4},
	{Name: "1 Tessalonicenses", Slug: "1-tessalonicenses", Chapters: 5},
	{Name: "2 Tessalonicenses", Slug: "2-tessalonicenses", Chapters: 3},
	{Name: "1 Timóteo", Slug: "1-timoteo", Chapters: 6},
	{Name: "2 Timóteo", Slug: "2-timoteo", Chapters: 4},
	{Name: "Tito", Slug: "tito", Chapters: 3},
	{Name: "Filemom", Slug: "filemom", Chapters: 1},
	{Name: "Hebreus", Slug: "hebreus", Chapters: 13},
	{Name: "Tiago", Slug: "tiago", Chapters: 5},
	{Name: "1 Pedro", Slug: "1-pedro", Chapters: 5},
	{Name: "2 Pedro", Slug: "2-pedro", Chapters: 3},
	{Name: "1 João", Slug: "1-joao", Chapters: 5},
	{Name: "2 João", Slug: "2-joao", Chapters: 1},
	{Name: "3 João", Slug: "3-joao", Chapters: 1},
	{Name: "Judas", Slug: "judas", Chapters: 1},
	{Name: "Apocalipse", Slug: "apocalipse", Chapters: 22},
}

var booksByName = func() map[string]domain.BookInfo {
	m := make(map[string]domain.BookInfo, len(Books))
	for _, b := range Books {
		m[b.Name] = b
	}
	return m
}()

// FindBook returns the canonical entry for an exact book name.
func FindBook(name string) (domain.BookInfo, bool) {
	b, ok := booksByName[name]
	return b, ok
}

// DefaultAudioURL returns the per-book default narration URL under base,
// or the empty string when the book has no mapping. It never panics on
// unknown names.
func DefaultAudioURL(base, name string) string {
	b, ok := booksByName[name]
	if !ok {
		return ""
	}
	return strings.TrimSuffix(base, "/") + "/" + b.Slug + ".mp3"
}

var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Fold lowercases and strips diacritics, so "Gênesis" matches "genesis".
// Only the book-name suggestion search folds accents; verse text search
// deliberately does not.
func Fold(s string) string {
	folded, _, err := transform.String(foldTransformer, s)
	if err != nil {
		return strings.ToLower(s)
	}
	return strings.ToLower(folded)
}

// Suggest returns up to limit canonical books whose folded name contains
// the folded query, in canonical order. An empty query yields nothing.
func Suggest(query string, limit int) []domain.BookInfo {
	q := Fold(strings.TrimSpace(query))
	if q == "" || limit <= 0 {
		return nil
	}

	var out []domain.BookInfo
	for _, b := range Books {
		if strings.Contains(Fold(b.Name), q) {
			out = append(out, b)
			if len(out) >= limit {
				break
			}
		}
	}
	return out
}
