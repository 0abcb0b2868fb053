package yt

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/patrickprogramme/ytxml/internal/classify"
	"github.com/patrickprogramme/ytxml/pkg/model"
)

// DefaultSubtitleLangs : anglais (manuel ou auto) puis piste originale auto-générée.
var DefaultSubtitleLangs = []string{"en", "en-orig"}

// Video : ce que l'application retient de la sortie yt-dlp.
type Video struct {
	ID         string
	Title      string
	UploadDate string // YYYYMMDD brut
	Duration   float64
	WebpageURL string
	Markers    []model.ChapterMarker
	Track      *Track // nil si aucune piste json3 dans les langues demandées
}

// ParseYTDLP transforme le JSON brut en Video.
// langs fixe l'ordre de préférence des pistes ; vide => DefaultSubtitleLangs.
// Un résultat de type playlist est rejeté (URLPlaylistNotSupported).
func ParseYTDLP(raw []byte, requestURL string, langs []string) (*Video, error) {
	var y ytdlpOutput
	if err := json.Unmarshal(raw, &y); err != nil {
		return nil, classify.Wrap(classify.URLUnclassified, "unmarshal yt-dlp output", err)
	}
	if y.Type == "playlist" || y.Type == "multi_video" {
		return nil, classify.New(classify.URLPlaylistNotSupported, y.Type)
	}

	v := &Video{
		ID:         y.ID,
		Title:      y.Title,
		UploadDate: y.UploadDate,
		Duration:   y.Duration,
		WebpageURL: y.WebpageURL,
	}
	if v.WebpageURL == "" {
		v.WebpageURL = requestURL
	}

	for _, c := range y.Chapters {
		v.Markers = append(v.Markers, model.ChapterMarker{
			Title: c.Title,
			Start: clampSeconds(c.StartTime, 0),
			End:   clampSeconds(c.EndTime, math.NaN()),
		})
	}

	if len(langs) == 0 {
		langs = DefaultSubtitleLangs
	}
	v.Track = selectTrack(y.Subtitles, y.AutomaticCaptions, langs)
	return v, nil
}

// clampSeconds : nil, NaN ou négatif => missing.
func clampSeconds(p *float64, missing float64) model.Seconds {
	if p == nil || math.IsNaN(*p) || *p < 0 {
		return model.Seconds(missing)
	}
	return model.Seconds(*p)
}

// selectTrack suit l'ordre de langs ; pour chaque langue la piste manuelle
// passe avant l'automatique (même règle que yt-dlp --write-subs --write-auto-subs).
func selectTrack(manual, auto map[string][]subtitleItem, langs []string) *Track {
	for _, lang := range langs {
		lang = strings.TrimSpace(lang)
		if u := json3URL(manual[lang]); u != "" {
			return &Track{Lang: lang, URL: u}
		}
		if u := json3URL(auto[lang]); u != "" {
			return &Track{Lang: lang, URL: u, Automatic: true}
		}
	}
	return nil
}

// json3URL retourne l'URL du format json3, "" sinon.
func json3URL(items []subtitleItem) string {
	for _, it := range items {
		if strings.EqualFold(it.Ext, model.FormatJSON3.String()) && it.URL != "" {
			return it.URL
		}
	}
	return ""
}

// Extraction assemble la forme consommée par le builder de document.
func (v *Video) Extraction(captions []model.Caption) model.Extraction {
	return model.Extraction{
		Title:        v.Title,
		UploadDate:   v.UploadDate,
		Duration:     v.Duration,
		CanonicalURL: v.WebpageURL,
		Captions:     captions,
		Markers:      v.Markers,
	}
}

// TrackURL : "" quand aucune piste n'a été retenue.
func (v *Video) TrackURL() string {
	if v.Track == nil {
		return ""
	}
	return v.Track.URL
}
