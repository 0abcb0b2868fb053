package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/patrickprogramme/ytxml/internal/app"
	"github.com/patrickprogramme/ytxml/internal/classify"
	"github.com/patrickprogramme/ytxml/internal/config"
	"github.com/patrickprogramme/ytxml/internal/logger"
	"github.com/patrickprogramme/ytxml/internal/ui"
)

var flags app.CLIFlags

var rootCmd = &cobra.Command{
	Use:   "ytxml [transcript.txt | URL]",
	Short: "Convert YouTube transcripts to XML with chapter detection",
	Long: `ytxml converts a YouTube transcript into an XML document split into chapters.

The input is either a text file copied from YouTube's "Show transcript" panel,
or a YouTube video URL (subtitles and chapters are fetched with yt-dlp).
Without argument, a YouTube URL is taken from the clipboard, otherwise prompted.

Expected text file format:
  ┌─────────────────────────────────────────
  │ Introduction to Bret Taylor
  │ 00:04
  │ You're CTO of Meta and and co-CEO of...
  └─────────────────────────────────────────

  - 1st line: (non-timestamp) becomes the first chapter title
  - 2nd line: (timestamp e.g. "0:03") becomes its start_time
  - 3rd line: (non-timestamp) first content line of the first chapter`,
	Args:          cobra.MaximumNArgs(1),
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runConvert,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&flags.ConfigPath, "config", "", "config file (default: ytxml.yaml next to the executable)",
	)
	rootCmd.PersistentFlags().StringVar(
		&flags.YtDlpPath, "yt-dlp-path", "", "path to the yt-dlp executable or its directory",
	)
	rootCmd.Flags().StringVar(
		&flags.OutputDir, "output-dir", "", "directory for the XML files (overrides output_dir)",
	)

	rootCmd.AddCommand(versionCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()

	if len(args) == 1 {
		flags.Input = args[0]
	}

	cfg, log, closeLog, err := setup()
	if err != nil {
		return report(errOut, err)
	}
	defer closeLog.Close()

	tui := ui.NewTerminal()
	a := app.New(cfg, tui, &flags, log)
	path, err := a.Run(ctx)
	if err != nil {
		return report(errOut, err)
	}
	fmt.Fprintf(out, "✅ Created: %s\n", path)

	// lancé sans argument (double-clic) : garder la console ouverte
	if len(args) == 0 {
		_ = tui.WaitForExit(ctx)
	}
	return nil
}

// setup charge la config et ouvre le journal. closeLog est toujours non nil si err == nil.
func setup() (*config.Config, *slog.Logger, io.Closer, error) {
	cfg, err := config.Load(configPath())
	if err != nil {
		return nil, nil, nil, err
	}

	w, err := logger.OpenFile(cfg.LogFile)
	if err != nil {
		return nil, nil, nil, err
	}
	log := logger.New(logger.Config{
		Writer: w,
		Format: cfg.LogFormat,
		Level:  logger.ParseLevel(cfg.LogLevel),
	})
	for _, n := range cfg.Notices {
		log.Info(n)
	}
	if warnings, err := cfg.ValidateYtDlpPresence(); err != nil {
		log.Warn("yt-dlp path check", "error", err)
	} else {
		for _, msg := range warnings {
			log.Debug(msg)
		}
	}
	return cfg, log, w, nil
}

// configPath : --config, sinon ytxml.yaml à côté de l'exécutable.
func configPath() string {
	if flags.ConfigPath != "" {
		return flags.ConfigPath
	}
	exePath, err := os.Executable()
	if err != nil {
		return config.DefaultFileName
	}
	return filepath.Join(filepath.Dir(exePath), config.DefaultFileName)
}

// report affiche l'erreur pour l'utilisateur et la retourne (code de sortie 1).
func report(w io.Writer, err error) error {
	msg := err.Error()
	var ce *classify.Error
	if errors.As(err, &ce) {
		msg = ce.Kind.Message()
	}
	fmt.Fprintf(w, "❌ %s\n\nTry: ytxml --help\n", msg)
	return err
}
