package subtitles

import "strings"

// rawJSON3 représente la structure "brute" d'une piste json3 servie par YouTube.
type rawJSON3 struct {
	WireMagic string     `json:"wireMagic,omitempty"`
	Events    []rawEvent `json:"events"`
}

type rawEvent struct {
	TStartMs    *int64   `json:"tStartMs,omitempty"`
	DDurationMs *int64   `json:"dDurationMs,omitempty"`
	AAppend     *int     `json:"aAppend,omitempty"`
	Segs        []rawSeg `json:"segs,omitempty"`
	// autres champs ignorés (wpWinPosId, wWinId, etc.)
}

type rawSeg struct {
	Utf8      string `json:"utf8"`
	TOffsetMs *int64 `json:"tOffsetMs,omitempty"`
}

// text assemble les segs de l'event : concaténation brute, trim,
// puis chaque retour à la ligne devient un espace.
func (e rawEvent) text() string {
	var b strings.Builder
	for _, s := range e.Segs {
		b.WriteString(s.Utf8)
	}
	t := strings.TrimSpace(b.String())
	return strings.ReplaceAll(t, "\n", " ")
}

// startMs : tStartMs, 0 si absent ou négatif.
func (e rawEvent) startMs() int64 {
	if e.TStartMs == nil || *e.TStartMs < 0 {
		return 0
	}
	return *e.TStartMs
}
