package yt

import (
	"strings"
)

type ytdlpChapter struct {
	StartTime *float64 `json:"start_time"`
	EndTime   *float64 `json:"end_time"`
	Title     string   `json:"title"`
}

type subtitleItem struct {
	Ext  string `json:"ext"`
	URL  string `json:"url"`
	Name string `json:"name"`
}

// ytdlpOutput représente la sortie JSON brute de `yt-dlp -j` pour une vidéo.
//
// Subtitles et AutomaticCaptions sont des maps où :
//   - la clé correspond au code langue de la piste (ex. "en", "en-orig").
//   - la valeur liste les formats disponibles pour cette langue (json3, vtt, srv1...).
type ytdlpOutput struct {
	Type              string                    `json:"_type"`
	ID                string                    `json:"id"`
	Title             string                    `json:"title"`
	UploadDate        string                    `json:"upload_date"`
	Duration          float64                   `json:"duration"`
	WebpageURL        string                    `json:"webpage_url"`
	Chapters          []ytdlpChapter            `json:"chapters"`
	Subtitles         map[string][]subtitleItem `json:"subtitles"`
	AutomaticCaptions map[string][]subtitleItem `json:"automatic_captions"`
}

// ExtractedRaw contient le JSON brut et les avertissements émis sur stderr.
type ExtractedRaw struct {
	JSON     []byte
	Warnings []string
}

// ToolError : échec de yt-dlp. Error() renvoie le texte de stderr,
// c'est lui que la classification analyse.
type ToolError struct {
	Stderr string
	Err    error
}

func (e *ToolError) Error() string {
	if e.Stderr != "" {
		return e.Stderr
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "yt-dlp failed"
}

func (e *ToolError) Unwrap() error {
	return e.Err
}

// Track : piste de sous-titres retenue pour la vidéo.
type Track struct {
	Lang      string
	URL       string
	Automatic bool
}

func (t Track) String() string {
	src := "manual"
	if t.Automatic {
		src = "auto"
	}
	return t.Lang + " (" + src + ")"
}

// splitStderr sépare les lignes "WARNING:" du reste de stderr.
func splitStderr(stderr string) (warnings []string, other []string) {
	for _, line := range strings.Split(stderr, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "WARNING:") {
			warnings = append(warnings, line)
			continue
		}
		other = append(other, line)
	}
	return warnings, other
}
