package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/patrickprogramme/ytxml/internal/classify"
	"github.com/patrickprogramme/ytxml/internal/config"
	"github.com/patrickprogramme/ytxml/internal/fsutil"
	"github.com/patrickprogramme/ytxml/internal/logger"
	"github.com/patrickprogramme/ytxml/internal/subtitles"
	"github.com/patrickprogramme/ytxml/internal/transcript"
	"github.com/patrickprogramme/ytxml/internal/ui"
	"github.com/patrickprogramme/ytxml/internal/xmldoc"
	"github.com/patrickprogramme/ytxml/internal/yt"
	"github.com/patrickprogramme/ytxml/pkg/model"
)

const (
	defaultUpdateTimeout = 15 * time.Second
)

// CLIFlags contient les information venant des flags de l'app
type CLIFlags struct {
	ConfigPath string
	Input      string // URL ou chemin .txt ; vide => clipboard puis prompt
	OutputDir  string
	YtDlpPath  string
}

// App orchestre les différentes dépendances (UI, YtDlp, FS...)
type App struct {
	cfg        *config.Config
	ui         ui.Interface
	flags      *CLIFlags
	logger     *slog.Logger
	ytClient   yt.Interface // nil => initialisé à la demande (chemin URL seulement)
	ytVersion  string
	initYt     InitFunc
	httpClient *http.Client // nil => client par défaut de fetch
}

// InitFunc initialise le client yt-dlp et retourne sa version (yt.InitYtDlp en production).
type InitFunc func(ctx context.Context, cfg *config.Config, log *slog.Logger) (yt.Interface, string, error)

// Option modifie App à la construction (injection pour les tests).
type Option func(*App)

// WithYtClient remplace le client yt-dlp réel.
func WithYtClient(c yt.Interface) Option {
	return func(a *App) { a.ytClient = c }
}

// WithYtInit remplace l'initialisation de yt-dlp.
func WithYtInit(f InitFunc) Option {
	return func(a *App) { a.initYt = f }
}

// WithHTTPClient remplace le client HTTP du téléchargement des sous-titres.
func WithHTTPClient(c *http.Client) Option {
	return func(a *App) { a.httpClient = c }
}

// New construit l'application. Les flags non vides priment sur la config.
func New(cfg *config.Config, uiClient ui.Interface, flags *CLIFlags, log *slog.Logger, opts ...Option) *App {
	if flags == nil {
		flags = &CLIFlags{}
	}
	if log == nil {
		log = logger.Discard()
	}
	if flags.OutputDir != "" {
		cfg.OutputDir = flags.OutputDir
	}
	// si l'utilisateur a passé --yt-dlp-path, l'appliquer et re-resoudre
	if flags.YtDlpPath != "" {
		cfg.YtDlp.Path = flags.YtDlpPath
		cfg.ResolveYtDlpPath()
	}

	a := &App{
		cfg:    cfg,
		ui:     uiClient,
		flags:  flags,
		logger: log,
		initYt: yt.InitYtDlp,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Run exécute le flux principal et retourne le chemin du fichier XML écrit.
// Les échecs destinés à l'utilisateur sont des *classify.Error.
func (a *App) Run(ctx context.Context) (string, error) {
	log, _ := logger.WithRunID(a.logger)
	start := time.Now()

	// Récupération de l'entrée : priorité flag > clipboard > prompt
	input := a.flags.Input
	if input == "" {
		in, err := a.ui.GetInput(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return "", classify.Wrap(classify.Cancelled, "", err)
			}
			return "", classify.Wrap(classify.InputInvalid, "", err)
		}
		input = in
	}

	kind, err := Route(input)
	log.Info("run started", "input", input, "route", kind.String())
	if err != nil {
		log.Warn("input rejected", "error", err)
		return "", err
	}

	var (
		doc  model.Document
		name string
	)
	switch kind {
	case InputFile:
		doc, name, err = a.fromFile(input)
	case InputURL:
		doc, name, err = a.fromURL(ctx, log, input)
	}
	if err != nil {
		log.Error("conversion failed", "error", err)
		return "", err
	}

	out := xmldoc.Serialize(doc)
	path, err := fsutil.SaveAtomic(a.cfg.OutputDir, name, []byte(out), a.cfg.OverwriteOutput)
	if err != nil {
		log.Error("write failed", "dir", a.cfg.OutputDir, "file", name, "error", err)
		return "", fmt.Errorf("cannot save file to disk: %w", err)
	}

	log.Info("run finished",
		"output", path,
		"chapters", len(doc.Chapters),
		"elapsed", time.Since(start).Round(time.Millisecond).String(),
	)
	return path, nil
}

// fromFile : chemin manuel (fichier texte copié depuis YouTube).
func (a *App) fromFile(path string) (model.Document, string, error) {
	raw, err := ReadTranscriptFile(path)
	if err != nil {
		return model.Document{}, "", err
	}
	doc, err := transcript.BuildFromText(raw)
	if err != nil {
		return model.Document{}, "", err
	}
	return doc, fsutil.OutputNameForFile(path, model.FormatXML.Extension()), nil
}

// fromURL : validation de l'URL, yt-dlp, piste json3, agrégation par chapitre.
// L'URL est validée avant toute initialisation de yt-dlp.
func (a *App) fromURL(ctx context.Context, log *slog.Logger, rawURL string) (model.Document, string, error) {
	videoURL, err := yt.ValidateVideoURL(rawURL)
	if err != nil {
		return model.Document{}, "", err
	}

	client, err := a.client(ctx, log)
	if err != nil {
		return model.Document{}, "", err
	}

	// Extraction des métadonnées
	exCtx, exCancel := context.WithTimeout(ctx, a.cfg.ExtractTimeout)
	defer exCancel()

	raw, err := client.ExtractRaw(exCtx, videoURL)
	if err != nil {
		return model.Document{}, "", classify.FromTool(err)
	}
	raw.LogWarnings(log)

	video, err := yt.ParseYTDLP(raw.JSON, videoURL, a.cfg.SubtitleLangs)
	if err != nil {
		return model.Document{}, "", err
	}
	log.Info("video metadata",
		"id", video.ID,
		"title", video.Title,
		"chapters", len(video.Markers),
		"track", trackLabel(video.Track),
	)

	captions, err := subtitles.Download(ctx, video.TrackURL(), a.downloadOptions())
	if err != nil {
		return model.Document{}, "", err
	}

	data := video.Extraction(captions)
	log.Debug("extraction", "summary", data.String())

	doc, err := transcript.BuildFromExtraction(data)
	if err != nil {
		return model.Document{}, "", err
	}
	return doc, fsutil.OutputNameForTitle(video.Title, video.ID, model.FormatXML.Extension()), nil
}

// client retourne le client yt-dlp, initialisé au premier appel.
// Un échec d'initialisation devient Cancelled (ctx annulé) ou ToolUnavailable ;
// la cause technique reste dans la chaîne pour le journal.
func (a *App) client(ctx context.Context, log *slog.Logger) (yt.Interface, error) {
	if a.ytClient != nil {
		return a.ytClient, nil
	}

	// Init yt-dlp (CheckBinary + version)
	dl, version, err := a.initYt(ctx, a.cfg, log)
	if err != nil {
		log.Error("yt-dlp init failed", "name", a.cfg.YtDlp.Name, "path", a.cfg.YtDlp.ResolvedPath, "error", err)
		return nil, toolError(ctx, "yt-dlp init", err)
	}
	log.Info("yt-dlp ready", "version", version)
	a.ytClient = dl
	a.ytVersion = version

	// Update check (optionnel), jamais bloquant
	if a.cfg.YtDlp.AutoUpdateCheck {
		if _, err := a.YtDlpUpdateCheck(ctx, defaultUpdateTimeout, version); err != nil {
			log.Warn("yt-dlp update check failed", "error", err)
		}
	}
	return dl, nil
}

// YtDlpVersion initialise yt-dlp si besoin et retourne sa version.
func (a *App) YtDlpVersion(ctx context.Context) (string, error) {
	if _, err := a.client(ctx, a.logger); err != nil {
		return "", err
	}
	if a.ytVersion == "" {
		v, err := a.ytClient.GetVersion(ctx)
		if err != nil {
			return "", toolError(ctx, "yt-dlp --version", err)
		}
		a.ytVersion = v
	}
	return a.ytVersion, nil
}

// toolError : ctx annulé => Cancelled, sinon ToolUnavailable.
func toolError(ctx context.Context, detail string, err error) error {
	if ctx.Err() != nil {
		return classify.Wrap(classify.Cancelled, detail, err)
	}
	return classify.Wrap(classify.ToolUnavailable, detail, err)
}

func trackLabel(t *yt.Track) string {
	if t == nil {
		return "none"
	}
	return t.String()
}
