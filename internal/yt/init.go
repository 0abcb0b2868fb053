package yt

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/patrickprogramme/ytxml/internal/config"
)

const defaultVersionTimeout = 5 * time.Second

// InitYtDlp initialise le client YtDlp, vérifie le binaire et récupère la version.
// Retourne le client (implémentant Interface) et la version.
func InitYtDlp(ctx context.Context, cfg *config.Config, logger *slog.Logger) (Interface, string, error) {
	ytDlpcfg := NewYtDlpConfig(cfg.YtDlp.ShowWarnings)
	dl := NewYtDlp(cfg.YtDlp.Name, cfg.YtDlp.ResolvedPath, *ytDlpcfg, logger)
	dl.Logger.Debug("yt-dlp configured", "name", dl.Name, "path", dl.Path)

	if err := dl.CheckBinary(); err != nil {
		return nil, "", fmt.Errorf("yt-dlp unavailable: %w", err)
	}

	vctx, cancel := context.WithTimeout(ctx, defaultVersionTimeout)
	defer cancel()
	version, err := dl.GetVersion(vctx)
	if err != nil {
		return dl, "", fmt.Errorf("yt-dlp version: %w", err)
	}

	return dl, version, nil
}
