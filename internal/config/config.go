package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/patrickprogramme/ytxml/internal/assets"
	"github.com/patrickprogramme/ytxml/internal/bootstrap"
)

const (
	CurrentConfigVersion = 2
	DefaultFileName      = "ytxml.yaml"
)

// DownloadConfig règle le téléchargement de la piste de sous-titres.
type DownloadConfig struct {
	Timeout  time.Duration `yaml:"timeout" validate:"gt=0"`
	MaxBytes int64         `yaml:"max_bytes" validate:"gt=0"`
	Attempts uint          `yaml:"attempts" validate:"min=1,max=10"`
}

// struct pour les paramètres de configuration
type Config struct {
	// Sortie
	OutputDir       string `yaml:"output_dir" validate:"required"`
	OverwriteOutput bool   `yaml:"overwrite_output"`

	// Journal
	LogFile   string `yaml:"log_file"`
	LogLevel  string `yaml:"log_level" validate:"oneof=debug info warn error"`
	LogFormat string `yaml:"log_format" validate:"oneof=text json"`

	// Extraction
	ExtractTimeout time.Duration  `yaml:"extract_timeout" validate:"gt=0"`
	SubtitleLangs  []string       `yaml:"subtitle_langs" validate:"min=1,dive,required"`
	Download       DownloadConfig `yaml:"download"`

	// yt-dlp
	YtDlp struct {
		Name            string `yaml:"name" validate:"required"`
		Path            string `yaml:"path"`
		ShowWarnings    bool   `yaml:"show_warnings"`
		AutoUpdateCheck bool   `yaml:"auto_update_check"`

		// ResolvedPath contient le chemin effectif vers l'exécutable, vide => recherche dans le PATH
		ResolvedPath string `yaml:"-"`
	} `yaml:"yt_dlp"`

	ConfigVersion int `yaml:"config_version"`

	// Notices : événements du chargement (création, migration) à journaliser
	// une fois le logger prêt.
	Notices []string `yaml:"-"`

	configFilePath string
}

// Configuration par défaut, appliquée avant la lecture du YAML.
func defaultConfig() *Config {
	c := &Config{}

	c.OutputDir = "transcript_files"
	c.OverwriteOutput = true

	c.LogFile = "ytxml.log"
	c.LogLevel = "info"
	c.LogFormat = "text"

	c.ExtractTimeout = 2 * time.Minute
	c.SubtitleLangs = []string{"en", "en-orig"}
	c.Download = DownloadConfig{
		Timeout:  15 * time.Second,
		MaxBytes: 10_000_000,
		Attempts: 3,
	}

	c.YtDlp.Name = "yt-dlp"
	c.YtDlp.Path = ""
	c.YtDlp.ShowWarnings = false
	c.YtDlp.AutoUpdateCheck = false

	c.ConfigVersion = CurrentConfigVersion
	return c
}

// Load lit la config ; si le fichier n'existe pas, on copie l'exemple embarqué depuis internal/assets.
// La config retournée est normalisée, migrée si besoin et validée.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultFileName
	}

	created, err := bootstrap.EnsureConfigPresent(path, assets.Embedded, assets.DefaultConfigAsset)
	if err != nil {
		return nil, fmt.Errorf("create default config: %w", err)
	}

	cfg := defaultConfig()
	if created {
		cfg.Notices = append(cfg.Notices, "default config created: "+path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	// corriger les chemins Windows avec des backslashes
	data = bytes.ReplaceAll(data, []byte(`\`), []byte(`/`))

	// version absente du fichier => on le considère en v1 (avant l'introduction du champ)
	cfg.ConfigVersion = 1
	// les champs absents conservent les valeurs par défaut
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.configFilePath = path

	cfg.normalizeConfig()

	if cfg.ConfigVersion < CurrentConfigVersion {
		from := cfg.ConfigVersion
		backup, err := orchestrateConfigUpgrade(cfg, from)
		if err != nil {
			return nil, fmt.Errorf("config upgrade: %w", err)
		}
		cfg.Notices = append(cfg.Notices, fmt.Sprintf("config upgraded from v%d to v%d (backup: %s)", from, CurrentConfigVersion, backup))
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Path retourne le chemin du fichier lu par Load.
func (c *Config) Path() string {
	return c.configFilePath
}

func (c *Config) normalizeConfig() {
	c.OutputDir = strings.TrimSpace(c.OutputDir)
	if c.OutputDir == "" {
		c.OutputDir = "."
	}
	c.OutputDir = filepath.Clean(c.OutputDir)
	c.LogFile = strings.TrimSpace(c.LogFile)

	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.LogLevel == "warning" {
		c.LogLevel = "warn"
	}
	c.LogFormat = strings.ToLower(strings.TrimSpace(c.LogFormat))
	if c.LogFormat == "" {
		c.LogFormat = "text"
	}

	// langues : trim + dédoublonnage, ordre conservé
	seen := make(map[string]struct{}, len(c.SubtitleLangs))
	langs := c.SubtitleLangs[:0]
	for _, l := range c.SubtitleLangs {
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}
		if _, dup := seen[l]; dup {
			continue
		}
		seen[l] = struct{}{}
		langs = append(langs, l)
	}
	c.SubtitleLangs = langs

	// centraliser la résolution/normalisation de yt-dlp
	c.ResolveYtDlpPath()
}

// ResolveYtDlpPath normalise le nom et résout le chemin complet vers l'exécutable.
// Appeler après avoir modifié cfg.YtDlp.Name ou cfg.YtDlp.Path.
func (c *Config) ResolveYtDlpPath() {
	if c == nil {
		return
	}

	c.YtDlp.Name = strings.TrimSpace(c.YtDlp.Name)
	if c.YtDlp.Name == "" {
		c.YtDlp.Name = "yt-dlp"
	}

	// ajoute .exe si nécessaire
	if runtime.GOOS == "windows" && !strings.HasSuffix(strings.ToLower(c.YtDlp.Name), ".exe") {
		c.YtDlp.Name = c.YtDlp.Name + ".exe"
	}

	exeName := c.YtDlp.Name
	cfgPath := strings.TrimSpace(c.YtDlp.Path)
	if cfgPath == "" {
		// pas de chemin : "./<exe>" s'il est présent, sinon recherche dans le PATH
		local := "./" + exeName
		if st, err := os.Stat(local); err == nil && !st.IsDir() {
			c.YtDlp.ResolvedPath = local
		} else {
			c.YtDlp.ResolvedPath = ""
		}
		return
	}
	cleanPath := filepath.Clean(cfgPath)

	// si le chemin fourni finit déjà par l'exécutable -> on l'utilise
	if filepath.Base(cleanPath) == exeName {
		c.YtDlp.ResolvedPath = cleanPath
	} else {
		// sinon on considère cfgPath comme un répertoire et on y joint l'exe
		c.YtDlp.ResolvedPath = filepath.Join(cleanPath, exeName)
	}
}
