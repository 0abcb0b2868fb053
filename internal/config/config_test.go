package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), DefaultFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadCreatesDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)

	cfg, err := Load(path)
	require.NoError(t, err)

	_, err = os.Stat(path)
	require.NoError(t, err, "le fichier par défaut doit être écrit")

	assert.Equal(t, "transcript_files", cfg.OutputDir)
	assert.True(t, cfg.OverwriteOutput)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 2*time.Minute, cfg.ExtractTimeout)
	assert.Equal(t, []string{"en", "en-orig"}, cfg.SubtitleLangs)
	assert.Equal(t, 15*time.Second, cfg.Download.Timeout)
	assert.Equal(t, uint(3), cfg.Download.Attempts)
	assert.Equal(t, CurrentConfigVersion, cfg.ConfigVersion)
	assert.Equal(t, path, cfg.Path())
	require.Len(t, cfg.Notices, 1)
	assert.Contains(t, cfg.Notices[0], "default config created")
}

func TestLoadKeepsExistingValues(t *testing.T) {
	path := writeConfig(t, `
output_dir: " out/xml "
log_level: WARNING
log_format: JSON
extract_timeout: 30s
subtitle_langs: [fr, " fr ", en, ""]
download:
  timeout: 5s
  max_bytes: 1024
  attempts: 2
yt_dlp:
  name: yt-dlp
  path: /opt/tools
config_version: 2
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, filepath.Clean("out/xml"), cfg.OutputDir)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ExtractTimeout)
	assert.Equal(t, []string{"fr", "en"}, cfg.SubtitleLangs)
	assert.Equal(t, DownloadConfig{Timeout: 5 * time.Second, MaxBytes: 1024, Attempts: 2}, cfg.Download)
	assert.Empty(t, cfg.Notices)
}

func TestLoadMigratesV1(t *testing.T) {
	path := writeConfig(t, `
output_dir: transcripts
log_level: debug
yt_dlp:
  name: yt-dlp
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, CurrentConfigVersion, cfg.ConfigVersion)
	assert.Equal(t, "transcripts", cfg.OutputDir)
	assert.Equal(t, []string{"en", "en-orig"}, cfg.SubtitleLangs)
	require.Len(t, cfg.Notices, 1)
	assert.Contains(t, cfg.Notices[0], "v1 to v2")

	backups, err := filepath.Glob(path + ".bak.*")
	require.NoError(t, err)
	assert.Len(t, backups, 1)

	// le fichier réécrit se recharge sans nouvelle migration
	again, err := Load(path)
	require.NoError(t, err)
	assert.Empty(t, again.Notices)
	assert.Equal(t, "transcripts", again.OutputDir)
	assert.Equal(t, "debug", again.LogLevel)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := map[string]string{
		"log level":  "log_level: verbose\nconfig_version: 2\n",
		"log format": "log_format: xml\nconfig_version: 2\n",
		"attempts":   "download:\n  attempts: 50\nconfig_version: 2\n",
		"timeout":    "extract_timeout: -1s\nconfig_version: 2\n",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid config")
		})
	}
}

func TestLoadRejectsBrokenYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "output_dir: [unterminated\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

func TestResolveYtDlpPath(t *testing.T) {
	dir := t.TempDir()

	c := defaultConfig()
	c.YtDlp.Path = dir
	c.ResolveYtDlpPath()
	assert.Equal(t, filepath.Join(dir, c.YtDlp.Name), c.YtDlp.ResolvedPath)

	c.YtDlp.Path = filepath.Join(dir, c.YtDlp.Name)
	c.ResolveYtDlpPath()
	assert.Equal(t, filepath.Join(dir, c.YtDlp.Name), c.YtDlp.ResolvedPath)

	c.YtDlp.Name = "  "
	c.YtDlp.Path = ""
	c.ResolveYtDlpPath()
	assert.Contains(t, c.YtDlp.Name, "yt-dlp")
}

func TestValidateYtDlpPresence(t *testing.T) {
	dir := t.TempDir()
	c := defaultConfig()
	c.YtDlp.Path = dir

	warnings, err := c.ValidateYtDlpPresence()
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "not found")

	require.NoError(t, os.WriteFile(c.YtDlp.ResolvedPath, []byte("#!/bin/sh\n"), 0o755))
	warnings, err = c.ValidateYtDlpPresence()
	require.NoError(t, err)
	assert.Empty(t, warnings)

	c.YtDlp.Path = ""
	warnings, err = c.ValidateYtDlpPresence()
	require.NoError(t, err)
	if c.YtDlp.ResolvedPath == "" {
		assert.Len(t, warnings, 1)
	}
}
