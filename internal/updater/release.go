package updater

import (
	"context"
	"fmt"
	"time"

	"github.com/patrickprogramme/ytxml/internal/fetch"
)

// LatestReleaseURL : API GitHub de la dernière release yt-dlp.
const LatestReleaseURL = "https://api.github.com/repos/yt-dlp/yt-dlp/releases/latest"

type rawRelease struct {
	TagName     string    `json:"tag_name"`
	Name        string    `json:"name"`
	PublishedAt time.Time `json:"published_at"`
	Body        string    `json:"body"`
	HTMLURL     string    `json:"html_url"`
	Assets      []struct {
		Name               string `json:"name"`
		BrowserDownloadURL string `json:"browser_download_url"`
		ContentType        string `json:"content_type"`
	} `json:"assets"`
}

// GetLatestYtDlpRelease interroge releaseURL (LatestReleaseURL en production)
// et retient les exécutables Windows et Linux.
func GetLatestYtDlpRelease(ctx context.Context, releaseURL string, opts fetch.Options) (*YtDlpReleaseInfo, error) {
	if releaseURL == "" {
		releaseURL = LatestReleaseURL
	}
	raw, err := fetch.FetchJSON[rawRelease](ctx, releaseURL, opts)
	if err != nil {
		return nil, fmt.Errorf("github release: %w", err)
	}

	info := &YtDlpReleaseInfo{
		TagName:     raw.TagName,
		Name:        raw.Name,
		PublishedAt: raw.PublishedAt,
		Body:        raw.Body,
		HTMLURL:     raw.HTMLURL,
	}

	for _, a := range raw.Assets {
		switch a.Name {
		case "yt-dlp.exe":
			info.WindowsRelease = YtDlpAsset{a.Name, a.BrowserDownloadURL, a.ContentType}
		case "yt-dlp":
			info.LinuxRelease = YtDlpAsset{a.Name, a.BrowserDownloadURL, a.ContentType}
		}
	}

	if info.TagName == "" {
		return nil, fmt.Errorf("release without tag_name")
	}
	if info.WindowsRelease.BrowserDownloadURL == "" {
		return nil, fmt.Errorf("windows asset not found")
	}
	if info.LinuxRelease.BrowserDownloadURL == "" {
		return nil, fmt.Errorf("linux asset not found")
	}

	return info, nil
}
