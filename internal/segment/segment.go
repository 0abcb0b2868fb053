// Package segment découpe un transcript copié à la main depuis YouTube en chapitres.
//
// Format attendu (sans délimiteur explicite de chapitre) :
//
//	Introduction          <- titre du premier chapitre
//	0:02                  <- début du premier chapitre
//	hello                 <- contenu
//	2:30
//	world                 <- dernière ligne de contenu
//	Chapter Two           <- titre du chapitre suivant
//	5:00
//	more
//
// Exactement deux lignes entre deux timestamps consécutifs marquent une frontière :
// la première termine le chapitre courant, la seconde est le titre du suivant.
package segment

import (
	"strings"

	"github.com/patrickprogramme/ytxml/internal/classify"
	"github.com/patrickprogramme/ytxml/internal/timecode"
	"github.com/patrickprogramme/ytxml/pkg/model"
)

// LinesForChapterBoundary : nombre de lignes entre deux timestamps qui signale un nouveau chapitre.
const LinesForChapterBoundary = 2

// minimumLines : titre, timestamp, contenu.
const minimumLines = 3

// boundary décrit le début d'un chapitre dans la liste des lignes.
type boundary struct {
	titleIdx     int
	contentStart int
	start        model.Seconds
}

// Segment valide puis découpe raw en chapitres.
// Les erreurs retournées sont des *classify.Error (FileEmpty, FileInvalidFormat).
func Segment(raw string) ([]model.Chapter, error) {
	lines, err := Validate(raw)
	if err != nil {
		return nil, err
	}

	tsIdx := TimestampIndices(lines)
	bounds := findBoundaries(lines, tsIdx)
	return extractChapters(lines, bounds)
}

// Validate contrôle la forme minimale du transcript et retourne les lignes non vides.
//   - 1re ligne : titre (pas un timestamp)
//   - 2e ligne  : timestamp
//   - 3e ligne  : contenu (pas un timestamp)
func Validate(raw string) ([]string, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, classify.New(classify.FileEmpty, "")
	}

	lines := SplitLines(raw)
	if len(lines) < minimumLines {
		return nil, classify.New(classify.FileInvalidFormat, "File must have at least 3 lines: chapter title, timestamp, content")
	}
	if timecode.IsTimestamp(lines[0]) {
		return nil, classify.New(classify.FileInvalidFormat, "First line must be chapter title, not timestamp")
	}
	if !timecode.IsTimestamp(lines[1]) {
		return nil, classify.New(classify.FileInvalidFormat, "Second line must be a timestamp")
	}
	if timecode.IsTimestamp(lines[2]) {
		return nil, classify.New(classify.FileInvalidFormat, "Third line must be content, not timestamp")
	}
	return lines, nil
}

// SplitLines découpe raw en lignes, retire les fins de ligne (\n, \r\n) et les lignes blanches.
// Le reste du contenu de chaque ligne est conservé tel quel.
func SplitLines(raw string) []string {
	parts := strings.Split(raw, "\n")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSuffix(p, "\r")
		if strings.TrimSpace(p) == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}

// TimestampIndices retourne les index des lignes qui sont des timestamps, dans l'ordre.
func TimestampIndices(lines []string) []int {
	var idx []int
	for i, l := range lines {
		if timecode.IsTimestamp(l) {
			idx = append(idx, i)
		}
	}
	return idx
}

// findBoundaries applique la règle du "gap" sur les index de timestamps.
// Le chapitre 0 commence à la ligne 0 ; Validate garantit tsIdx[0] == 1.
func findBoundaries(lines []string, tsIdx []int) []boundary {
	first := tsIdx[0]
	bounds := []boundary{{
		titleIdx:     0,
		contentStart: first,
		start:        mustParse(lines[first]),
	}}

	for i := 0; i+1 < len(tsIdx); i++ {
		cur, next := tsIdx[i], tsIdx[i+1]
		if next-cur-1 != LinesForChapterBoundary {
			continue
		}
		bounds = append(bounds, boundary{
			titleIdx:     next - 1,
			contentStart: next,
			start:        mustParse(lines[next]),
		})
	}
	return bounds
}

// extractChapters découpe les lignes de contenu entre deux frontières.
func extractChapters(lines []string, bounds []boundary) ([]model.Chapter, error) {
	chapters := make([]model.Chapter, 0, len(bounds))
	for i, b := range bounds {
		end := len(lines)
		if i+1 < len(bounds) {
			next := bounds[i+1]
			if next.start < b.start {
				return nil, classify.New(classify.FileInvalidFormat, "Chapter timestamps must not go backwards")
			}
			end = next.titleIdx
		}

		content := make([]string, end-b.contentStart)
		copy(content, lines[b.contentStart:end])

		chapters = append(chapters, model.Chapter{
			Title: lines[b.titleIdx],
			Start: b.start,
			Lines: content,
		})
	}
	return chapters, nil
}

// mustParse : la ligne a déjà été reconnue comme timestamp.
func mustParse(line string) model.Seconds {
	s, err := timecode.Parse(line)
	if err != nil {
		panic(err)
	}
	return s
}
