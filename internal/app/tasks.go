package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/patrickprogramme/ytxml/internal/classify"
	"github.com/patrickprogramme/ytxml/internal/fetch"
	"github.com/patrickprogramme/ytxml/internal/updater"
	"github.com/patrickprogramme/ytxml/internal/yt"
	"github.com/patrickprogramme/ytxml/pkg/model"
)

// InputKind : nature de l'entrée utilisateur.
type InputKind int

const (
	InputUnknown InputKind = iota
	InputURL
	InputFile
)

func (k InputKind) String() string {
	switch k {
	case InputURL:
		return "url"
	case InputFile:
		return "file"
	default:
		return "unknown"
	}
}

// Route décide si input est une URL ou un fichier .txt.
// Toute autre entrée => InputInvalid.
func Route(input string) (InputKind, error) {
	s := strings.TrimSpace(input)
	switch {
	case s == "":
		return InputUnknown, classify.New(classify.InputInvalid, "empty input")
	case yt.LooksLikeURL(s):
		return InputURL, nil
	case strings.EqualFold(filepath.Ext(s), model.FormatTXT.Extension()):
		return InputFile, nil
	}
	return InputUnknown, classify.New(classify.InputInvalid, s)
}

// ReadTranscriptFile lit un transcript texte.
// Absent, illisible ou non UTF-8 => *classify.Error.
func ReadTranscriptFile(path string) (string, error) {
	path = strings.TrimSpace(path)
	info, err := os.Stat(path)
	if err != nil {
		return "", classify.FromFile(err)
	}
	if info.IsDir() {
		return "", classify.New(classify.FileNotFound, "is a directory: "+path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", classify.FromFile(err)
	}
	if !utf8.Valid(data) {
		return "", classify.New(classify.FileEncodingError, path)
	}
	// BOM éventuel (Notepad)
	return strings.TrimPrefix(string(data), "\ufeff"), nil
}

// downloadOptions : réglages de fetch issus de la config.
func (a *App) downloadOptions() fetch.Options {
	return fetch.Options{
		Timeout:  a.cfg.Download.Timeout,
		MaxBytes: a.cfg.Download.MaxBytes,
		Attempts: a.cfg.Download.Attempts,
		Client:   a.httpClient,
	}
}

// YtDlpUpdateCheck compare la version locale à la dernière release GitHub et l'affiche.
func (a *App) YtDlpUpdateCheck(ctx context.Context, timeout time.Duration, version string) (*updater.UpdateCheck, error) {
	uc, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	opts := a.downloadOptions()
	opts.Attempts = 1
	check, err := updater.CheckYtDlpUpdate(uc, version, updater.LatestReleaseURL, opts)
	if err != nil {
		return nil, fmt.Errorf("update check failed: %w", err)
	}

	if check.IsUpToDate {
		a.ui.PrintInfo(ctx, fmt.Sprintf("✅ %s", check.Summary(runtime.GOOS)))
	} else {
		a.ui.PrintInfo(ctx, fmt.Sprintf("⚠️ %s", check.Summary(runtime.GOOS)))
	}
	return check, nil
}
