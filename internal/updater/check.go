package updater

import (
	"context"
	"fmt"
	"strings"

	"github.com/patrickprogramme/ytxml/internal/fetch"
)

// UpdateCheck contient le résultat de la comparaison
type UpdateCheck struct {
	CurrentVersion string            // version récupérée localement
	LatestRelease  *YtDlpReleaseInfo // info complète de la release distante
	IsUpToDate     bool              // true si CurrentVersion == LatestRelease.TagName
}

// CheckYtDlpUpdate compare la version locale et la version GitHub.
func CheckYtDlpUpdate(ctx context.Context, localVer, releaseURL string, opts fetch.Options) (*UpdateCheck, error) {
	latest, err := GetLatestYtDlpRelease(ctx, releaseURL, opts)
	if err != nil {
		return nil, fmt.Errorf("cannot fetch latest yt-dlp release: %w", err)
	}

	return &UpdateCheck{
		CurrentVersion: localVer,
		LatestRelease:  latest,
		IsUpToDate:     strings.TrimSpace(localVer) == latest.TagName,
	}, nil
}

func (u UpdateCheck) GetUpdateLink(system string) string {
	return u.LatestRelease.AssetFor(system).BrowserDownloadURL
}

// Summary : une ligne lisible pour la sortie de `ytxml version --check-update`.
func (u UpdateCheck) Summary(system string) string {
	if u.IsUpToDate {
		return fmt.Sprintf("yt-dlp %s is up to date", u.CurrentVersion)
	}
	return fmt.Sprintf("yt-dlp %s is available (installed: %s): %s", u.LatestRelease.TagName, u.CurrentVersion, u.GetUpdateLink(system))
}
