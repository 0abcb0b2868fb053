package yt

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/patrickprogramme/ytxml/internal/classify"
)

// YtDlp représente la commande yt-dlp à exécuter (nom de binaire ou chemin) + args.
type YtDlp struct {
	Name   string
	Path   string // chemin résolu vers l'exe, vide => recherche de Name dans le PATH
	Config YtDlpConfig
	Logger *slog.Logger
}

// NewYtDlp construit une instance. logger peut être nil.
func NewYtDlp(name string, resolvedPath string, cfg YtDlpConfig, logger *slog.Logger) *YtDlp {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &YtDlp{
		Name:   name,
		Path:   resolvedPath,
		Config: cfg,
		Logger: logger,
	}
}

// exe retourne le binaire à lancer.
func (y *YtDlp) exe() string {
	if y.Path != "" {
		return y.Path
	}
	return y.Name
}

// CheckBinary vérifie que le binaire existe et n'est pas un répertoire.
func (y *YtDlp) CheckBinary() error {
	if y == nil {
		return fmt.Errorf("yt-dlp not initialised")
	}

	if y.Path == "" {
		// pas de chemin résolu : le nom doit être trouvable dans le PATH
		p, err := exec.LookPath(y.Name)
		if err != nil {
			return fmt.Errorf("yt-dlp (%s) not found in PATH: %w", y.Name, err)
		}
		y.Logger.Debug("yt-dlp found in PATH", "path", p)
		return nil
	}

	info, err := os.Stat(y.Path)
	if err != nil {
		return fmt.Errorf("yt-dlp not found at %s: %w", y.Path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("yt-dlp path %s is a directory, not an executable", y.Path)
	}
	return nil
}

// ExtractRaw exécute `yt-dlp -j <url>` et renvoie la sortie JSON brute.
// stdout porte le JSON, stderr les avertissements et les erreurs.
// En cas d'échec l'erreur retournée est déjà classée (*classify.Error).
func (y *YtDlp) ExtractRaw(ctx context.Context, url string) (*ExtractedRaw, error) {
	start := time.Now()
	defer func() {
		y.Logger.Debug("yt-dlp metadata extracted", "elapsed", time.Since(start))
	}()

	args := y.Config.BuildArgs(url)
	y.Logger.Debug("running yt-dlp", "exe", y.exe(), "args", args)

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, y.exe(), args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, classify.Wrap(classify.Cancelled, "yt-dlp", ctxErr)
		}
		warnings, other := splitStderr(stderr.String())
		msg := strings.Join(other, "\n")
		if msg == "" {
			msg = strings.Join(warnings, "\n")
		}
		return nil, classify.FromTool(&ToolError{Stderr: msg, Err: err})
	}
	warnings, _ := splitStderr(stderr.String())

	jsonLine := lastJSONLine(stdout.String())
	if jsonLine == "" {
		return nil, classify.Wrap(classify.URLUnclassified, "no JSON in yt-dlp output", &ToolError{Stderr: stderr.String()})
	}
	if !json.Valid([]byte(jsonLine)) {
		return nil, classify.New(classify.URLUnclassified, "invalid JSON in yt-dlp output")
	}
	return &ExtractedRaw{
		JSON:     []byte(jsonLine),
		Warnings: warnings,
	}, nil
}

// lastJSONLine : avec --no-playlist une seule ligne JSON est attendue ;
// si plusieurs apparaissent on garde la dernière.
func lastJSONLine(out string) string {
	var jsonLine string
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "{") {
			jsonLine = line
		}
	}
	return jsonLine
}

// LogWarnings journalise les avertissements de yt-dlp.
func (r *ExtractedRaw) LogWarnings(logger *slog.Logger) {
	for _, w := range r.Warnings {
		logger.Warn("yt-dlp", "message", w)
	}
}
