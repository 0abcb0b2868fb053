package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/patrickprogramme/ytxml/internal/fsutil"
)

// orchestrateConfigUpgrade : sauvegarde, migration, écriture. Retourne le chemin de la sauvegarde.
func orchestrateConfigUpgrade(cfg *Config, fromVersion int) (string, error) {
	if cfg == nil {
		return "", fmt.Errorf("nil config during migration")
	}
	if cfg.configFilePath == "" {
		return "", fmt.Errorf("unknown config file path: cannot back up")
	}

	// 1) backup
	backupPath, err := backupConfig(cfg.configFilePath)
	if err != nil {
		return "", fmt.Errorf("backup before migration: %w", err)
	}

	// 2) migrations successives
	if err := migrateConfig(cfg, fromVersion); err != nil {
		return backupPath, fmt.Errorf("migrate config from v%d: %w", fromVersion, err)
	}

	// 2b) normaliser au cas où la migration aurait introduit des valeurs à nettoyer
	cfg.normalizeConfig()
	cfg.ConfigVersion = CurrentConfigVersion

	// 3) sérialiser la config en YAML
	b, err := yaml.Marshal(cfg)
	if err != nil {
		return backupPath, fmt.Errorf("encode migrated config: %w", err)
	}

	// 4) écrire atomiquement le YAML
	if err := fsutil.WriteFileAtomic(cfg.configFilePath, b, 0o644); err != nil {
		// tentative de restauration depuis la sauvegarde
		_ = fsutil.WriteFileAtomic(cfg.configFilePath, mustReadFileOrEmpty(backupPath), 0o644)
		return backupPath, fmt.Errorf("write migrated config %s: %w", cfg.configFilePath, err)
	}
	return backupPath, nil
}

// mustReadFileOrEmpty lit le contenu d'un fichier, et retourne un slice vide en cas d'erreur
func mustReadFileOrEmpty(path string) []byte {
	if path == "" {
		return []byte{}
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return []byte{}
	}
	return b
}

// backupConfig : sauvegarde le fichier de config et retourne le chemin de la sauvegarde
func backupConfig(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read config for backup: %w", err)
	}
	backup := path + ".bak." + time.Now().Format("20060102T150405")
	if err := fsutil.WriteFileAtomic(backup, data, 0o644); err != nil {
		return "", fmt.Errorf("write backup %s: %w", backup, err)
	}
	return backup, nil
}

// migrateConfig applique les étapes entre versions, dans l'ordre.
func migrateConfig(cfg *Config, from int) error {
	if cfg == nil {
		return fmt.Errorf("no config provided")
	}
	def := defaultConfig()
	for v := from; v < CurrentConfigVersion; v++ {
		switch v {
		case 0:
			// 0 -> 1 : rien
		case 1:
			// 1 -> 2 : introduction de subtitle_langs et du bloc download
			if len(cfg.SubtitleLangs) == 0 {
				cfg.SubtitleLangs = def.SubtitleLangs
			}
			if cfg.Download.Timeout <= 0 {
				cfg.Download.Timeout = def.Download.Timeout
			}
			if cfg.Download.MaxBytes <= 0 {
				cfg.Download.MaxBytes = def.Download.MaxBytes
			}
			if cfg.Download.Attempts == 0 {
				cfg.Download.Attempts = def.Download.Attempts
			}
		}
	}
	return nil
}
