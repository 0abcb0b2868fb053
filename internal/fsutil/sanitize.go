package fsutil

import (
	"path/filepath"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// limite de longueur du slug
const maxSlugLen = 200

var (
	// tout ce qui n'est pas alphanumérique ASCII
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)
	multipleHyphens = regexp.MustCompile(`-+`)
)

// Slugify : "A - B --  C (Multi Spaces) & 😁 Chars: Test" -> "a-b-c-multi-spaces-chars-test".
// Les accents sont décomposés (NFKD) puis retirés, le reste du non-ASCII disparaît.
func Slugify(s string) string {
	s = norm.NFKD.String(s)

	s = strings.Map(func(r rune) rune {
		if r > unicode.MaxASCII {
			return -1
		}
		return r
	}, s)

	s = strings.ToLower(s)
	s = nonAlphanumeric.ReplaceAllString(s, "-")
	s = multipleHyphens.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")

	if len(s) > maxSlugLen {
		s = strings.TrimRight(s[:maxSlugLen], "-")
	}
	return s
}

// OutputNameForTitle : nom du fichier de sortie pour une vidéo.
// Titre sans caractère exploitable (ex: tout en japonais) => fallback, puis "untitled".
func OutputNameForTitle(title, fallback, ext string) string {
	slug := Slugify(title)
	if slug == "" {
		slug = Slugify(fallback)
	}
	if slug == "" {
		slug = "untitled"
	}
	return slug + ext
}

// OutputNameForFile : "notes/talk.txt" -> "talk" + ext.
func OutputNameForFile(path, ext string) string {
	base := filepath.Base(path)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if stem == "" || stem == "." {
		stem = "transcript"
	}
	return stem + ext
}
