// Package transcript construit le Document final : point de convergence
// du chemin "fichier texte" et du chemin "yt-dlp".
package transcript

import (
	"fmt"
	"math"

	"github.com/patrickprogramme/ytxml/internal/classify"
	"github.com/patrickprogramme/ytxml/internal/segment"
	"github.com/patrickprogramme/ytxml/internal/subtitles"
	"github.com/patrickprogramme/ytxml/internal/timecode"
	"github.com/patrickprogramme/ytxml/pkg/model"
)

// BuildFromText : transcript copié à la main. Métadonnées vides.
func BuildFromText(raw string) (model.Document, error) {
	chapters, err := segment.Segment(raw)
	if err != nil {
		return model.Document{}, err
	}
	return New(model.Metadata{}, chapters)
}

// BuildFromExtraction : sortie de l'outil d'extraction (captions + chapitres déclarés).
func BuildFromExtraction(data model.Extraction) (model.Document, error) {
	chapters, err := subtitles.Aggregate(data.Captions, data.Markers, data.Title)
	if err != nil {
		return model.Document{}, err
	}
	return New(MetadataFrom(data), chapters)
}

// MetadataFrom normalise les métadonnées brutes :
// date YYYYMMDD -> YYYY-MM-DD, durée en secondes -> "1h 5m 12s".
func MetadataFrom(data model.Extraction) model.Metadata {
	return model.Metadata{
		VideoTitle: data.Title,
		UploadDate: timecode.FormatPublished(data.UploadDate),
		Duration:   timecode.FormatDuration(data.Duration),
		VideoURL:   data.CanonicalURL,
	}
}

// New assemble le Document et vérifie sa cohérence :
// au moins un chapitre, titres et contenus non vides, starts finis et non décroissants.
// Une violation est un bug en amont => Internal.
func New(meta model.Metadata, chapters []model.Chapter) (model.Document, error) {
	if len(chapters) == 0 {
		return model.Document{}, classify.New(classify.Internal, "document without chapters")
	}

	prev := model.Seconds(math.Inf(-1))
	for i, ch := range chapters {
		if err := checkChapter(i, ch, prev); err != nil {
			return model.Document{}, err
		}
		prev = ch.Start
	}

	out := make([]model.Chapter, len(chapters))
	for i, ch := range chapters {
		lines := make([]string, len(ch.Lines))
		copy(lines, ch.Lines)
		out[i] = model.Chapter{Title: ch.Title, Start: ch.Start, Lines: lines}
	}
	return model.Document{Metadata: meta, Chapters: out}, nil
}

func checkChapter(i int, ch model.Chapter, prev model.Seconds) error {
	switch {
	case ch.Title == "":
		return classify.New(classify.Internal, fmt.Sprintf("chapter %d has no title", i))
	case len(ch.Lines) == 0:
		return classify.New(classify.Internal, fmt.Sprintf("chapter %d has no content", i))
	}
	if _, err := timecode.Format(ch.Start); err != nil {
		return classify.Wrap(classify.Internal, fmt.Sprintf("chapter %d start", i), err)
	}
	if ch.Start < prev {
		return classify.New(classify.Internal, fmt.Sprintf("chapter %d starts before chapter %d", i, i-1))
	}
	return nil
}
