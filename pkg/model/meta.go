package model

import "fmt"

// Chapter est l'unité commune aux deux chemins d'acquisition (fichier texte et yt-dlp).
// Lines alterne ligne de timestamp et ligne de texte, dans l'ordre d'origine,
// exactement comme elles seront ré-émises.
type Chapter struct {
	Title string   `json:"title"`
	Start Seconds  `json:"start"`
	Lines []string `json:"lines"`
}

// Metadata : les quatre champs toujours présents dans la sortie.
// Chemin fichier texte => tout est vide.
type Metadata struct {
	VideoTitle string `json:"video_title"`
	UploadDate string `json:"video_published"`
	Duration   string `json:"video_duration"`
	VideoURL   string `json:"video_url"`
}

// Document est le résultat d'un traitement : métadonnées + chapitres.
// Construit une seule fois (cf. transcript.New) puis uniquement lu.
type Document struct {
	Metadata Metadata
	Chapters []Chapter
}

// Caption est une ligne de sous-titre telle que fournie par l'outil d'extraction.
type Caption struct {
	Start Seconds
	Text  string
}

// ChapterMarker est un chapitre déclaré par la plateforme (yt-dlp "chapters").
type ChapterMarker struct {
	Title string
	Start Seconds
	End   Seconds
}

// Extraction regroupe ce que l'outil d'extraction renvoie pour une vidéo.
type Extraction struct {
	Title        string
	UploadDate   string  // brut, YYYYMMDD
	Duration     float64 // secondes
	CanonicalURL string
	Captions     []Caption
	Markers      []ChapterMarker
}

func (e Extraction) String() string {
	return fmt.Sprintf("Extraction[Title=%q, Date=%s, Duration=%.0fs, Captions=%d, Chapters=%d]",
		e.Title, e.UploadDate, e.Duration, len(e.Captions), len(e.Markers))
}
