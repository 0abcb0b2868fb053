package subtitles

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/patrickprogramme/ytxml/internal/classify"
	"github.com/patrickprogramme/ytxml/internal/timecode"
	"github.com/patrickprogramme/ytxml/pkg/model"
)

// UntitledChapter : titre de repli quand la vidéo n'a ni chapitres ni titre.
const UntitledChapter = "Untitled"

// window : intervalle [start, end) d'un chapitre, end à +Inf pour le dernier.
type window struct {
	title string
	start model.Seconds
	end   model.Seconds
}

// Aggregate répartit les captions dans les chapitres fournis par l'outil d'extraction.
//
//   - sans marqueur : un seul chapitre à 0, titré fallbackTitle (ou "Untitled")
//   - avec marqueurs : chaque caption va au premier chapitre dont [start, end) la contient,
//     le dernier chapitre est ouvert, les captions antérieures au premier chapitre sont ignorées
//   - un chapitre sans caption est omis
//
// Zéro caption (ou aucune dans les chapitres) => URLTranscriptNotFound : la vidéo existe
// mais n'a pas de transcript exploitable.
// Un start négatif, NaN ou infini => Internal.
func Aggregate(captions []model.Caption, markers []model.ChapterMarker, fallbackTitle string) ([]model.Chapter, error) {
	if len(captions) == 0 {
		return nil, classify.New(classify.URLTranscriptNotFound, "zero captions")
	}
	for i, c := range captions {
		if !validStart(c.Start) {
			return nil, classify.New(classify.Internal, fmt.Sprintf("caption %d: invalid start %v", i, float64(c.Start)))
		}
	}

	caps := make([]model.Caption, len(captions))
	copy(caps, captions)
	ensureSortedCaptions(caps)

	if len(markers) == 0 {
		title := strings.TrimSpace(fallbackTitle)
		if title == "" {
			title = UntitledChapter
		}
		lines, err := flatten(caps)
		if err != nil {
			return nil, err
		}
		return []model.Chapter{{
			Title: title,
			Start: 0,
			Lines: lines,
		}}, nil
	}

	windows := buildWindows(markers)
	buckets := make([][]model.Caption, len(windows))
	for _, c := range caps {
		i := locate(windows, c.Start)
		if i < 0 {
			continue
		}
		buckets[i] = append(buckets[i], c)
	}

	chapters := make([]model.Chapter, 0, len(windows))
	for i, w := range windows {
		if len(buckets[i]) == 0 {
			continue
		}
		lines, err := flatten(buckets[i])
		if err != nil {
			return nil, err
		}
		chapters = append(chapters, model.Chapter{
			Title: w.title,
			Start: w.start,
			Lines: lines,
		})
	}
	if len(chapters) == 0 {
		return nil, classify.New(classify.URLTranscriptNotFound, "no caption inside chapters")
	}
	return chapters, nil
}

// validStart : fini et >= 0.
func validStart(s model.Seconds) bool {
	f := float64(s)
	return !math.IsNaN(f) && !s.IsOpenEnded() && !math.IsInf(f, -1) && f >= 0
}

// ensureSortedCaptions trie seulement si la slice n'est pas déjà triée.
func ensureSortedCaptions(caps []model.Caption) {
	less := func(i, j int) bool { return caps[i].Start < caps[j].Start }
	if sort.SliceIsSorted(caps, less) {
		return
	}
	sort.SliceStable(caps, less)
}

// buildWindows trie les marqueurs (stable) et calcule leur intervalle.
// Un end absent, inversé ou qui laisse un trou avant le marqueur suivant
// est prolongé jusqu'au start suivant.
func buildWindows(markers []model.ChapterMarker) []window {
	marks := make([]model.ChapterMarker, len(markers))
	copy(marks, markers)
	sort.SliceStable(marks, func(i, j int) bool { return marks[i].Start < marks[j].Start })

	windows := make([]window, len(marks))
	for i, m := range marks {
		title := strings.TrimSpace(m.Title)
		if title == "" {
			title = fmt.Sprintf("Chapter %d", i+1)
		}

		end := model.OpenEnded()
		if i+1 < len(marks) {
			next := marks[i+1].Start
			end = m.End
			if math.IsNaN(float64(end)) || end < next {
				end = next
			}
		}
		windows[i] = window{title: title, start: m.Start, end: end}
	}
	return windows
}

// locate retourne l'index du premier intervalle qui contient at.
// Avant le premier chapitre => -1. Le dernier intervalle est ouvert,
// donc au-delà on trouve toujours.
func locate(windows []window, at model.Seconds) int {
	if at < windows[0].start {
		return -1
	}
	for i, w := range windows {
		if at >= w.start && at < w.end {
			return i
		}
	}
	return len(windows) - 1
}

// flatten : chaque caption donne deux lignes, son timestamp puis son texte,
// comme dans un transcript copié à la main.
func flatten(caps []model.Caption) ([]string, error) {
	lines := make([]string, 0, 2*len(caps))
	for _, c := range caps {
		ts, err := timecode.Format(c.Start)
		if err != nil {
			return nil, classify.Wrap(classify.Internal, "caption start", err)
		}
		lines = append(lines, ts, c.Text)
	}
	return lines, nil
}
