package fsutil

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// WriteFileAtomic écrit data dans destPath de manière atomique : écriture dans
// un fichier temporaire du même répertoire puis os.Rename(tmp -> dest).
// Crée les répertoires parents si nécessaire.
//
// destPath : chemin complet vers le fichier cible.
// data : contenu à écrire.
// perm : permissions POSIX (ex: 0o644).
func WriteFileAtomic(destPath string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(destPath)
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	// cleanup si échec (après rename, Remove échoue silencieusement)
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	// best-effort : certaines plateformes/fs ne supportent pas fsync
	_ = tmp.Sync()

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	// set permission (best-effort)
	_ = os.Chmod(tmpName, perm)

	if err := os.Rename(tmpName, destPath); err != nil {
		return fmt.Errorf("rename tmp -> dest: %w", err)
	}
	return nil
}

// SaveAtomic écrit content dans outDir/fileName.
//   - overwrite=true  : on écrase directement (écriture atomique via tmp+rename).
//   - overwrite=false : si le fichier existe, on ajoute un suffixe _1, _2, ... avant l'extension.
//
// Retourne le chemin final du fichier.
func SaveAtomic(outDir, fileName string, content []byte, overwrite bool) (string, error) {
	if fileName == "" {
		return "", fmt.Errorf("file name empty")
	}
	if outDir == "" {
		outDir = "."
	}

	final := filepath.Join(outDir, fileName)
	if !overwrite {
		final = freeName(outDir, fileName)
	}

	if err := WriteFileAtomic(final, content, 0o644); err != nil {
		return "", err
	}
	return final, nil
}

// freeName cherche un nom libre : name.ext, name_1.ext, name_2.ext...
func freeName(outDir, fileName string) string {
	final := filepath.Join(outDir, fileName)
	if _, err := os.Stat(final); os.IsNotExist(err) {
		return final
	}

	ext := filepath.Ext(fileName)
	base := fileName[:len(fileName)-len(ext)]

	const maxAttempts = 1000
	for i := 1; i <= maxAttempts; i++ {
		candidate := filepath.Join(outDir, fmt.Sprintf("%s_%d%s", base, i, ext))
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			return candidate
		}
	}
	// au bout des essais : fallback timestamp
	return filepath.Join(outDir, fmt.Sprintf("%s_%d%s", base, time.Now().Unix(), ext))
}
