package yt

import "context"

// Interface : ce que l'application attend de l'outil d'extraction.
// Les tests de internal/app la remplacent par un faux client.
type Interface interface {
	CheckBinary() error
	GetVersion(ctx context.Context) (string, error)
	// ExtractRaw retourne le JSON de `yt-dlp -j` ; les échecs sont des *classify.Error.
	ExtractRaw(ctx context.Context, url string) (*ExtractedRaw, error)
}

var _ Interface = (*YtDlp)(nil)
