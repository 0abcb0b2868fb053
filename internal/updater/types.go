package updater

import (
	"time"
)

// YtDlpAsset : exécutable publié dans une release (Windows ou Linux).
type YtDlpAsset struct {
	Name               string
	BrowserDownloadURL string
	ContentType        string
}

// YtDlpReleaseInfo : métadonnées de la release et les deux exécutables suivis.
type YtDlpReleaseInfo struct {
	TagName        string
	Name           string
	PublishedAt    time.Time
	Body           string
	HTMLURL        string
	WindowsRelease YtDlpAsset
	LinuxRelease   YtDlpAsset
}

// AssetFor retourne l'exécutable adapté à system (runtime.GOOS).
// Hors Windows, le binaire "yt-dlp" (zipapp Python) est retenu.
func (r *YtDlpReleaseInfo) AssetFor(system string) YtDlpAsset {
	if r == nil {
		return YtDlpAsset{}
	}
	if system == "windows" {
		return r.WindowsRelease
	}
	return r.LinuxRelease
}
