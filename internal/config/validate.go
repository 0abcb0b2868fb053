package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate contrôle les contraintes déclarées dans les tags `validate`.
// Retourne une erreur lisible listant les champs fautifs.
func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("nil config")
	}
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s: failed %q (value %v)", fe.Namespace(), fe.Tag(), fe.Value()))
	}
	return errors.New(strings.Join(msgs, "; "))
}

// ValidateYtDlpPresence vérifie de manière statique que si un ResolvedPath est défini,
// le fichier existe et que le répertoire parent est accessible.
// Retourne warnings (non-fataux) et une erreur si c'est critique.
func (c *Config) ValidateYtDlpPresence() (warnings []string, err error) {
	if c == nil {
		return nil, fmt.Errorf("nil config")
	}

	c.ResolveYtDlpPath()

	p := strings.TrimSpace(c.YtDlp.ResolvedPath)
	if p == "" {
		warnings = append(warnings, "no configured yt-dlp path; falling back to PATH lookup")
		return warnings, nil
	}

	parent := filepath.Dir(p)
	if st, serr := os.Stat(parent); serr != nil {
		if os.IsNotExist(serr) {
			warnings = append(warnings, fmt.Sprintf("yt-dlp parent directory does not exist: %s", parent))
		} else {
			return warnings, fmt.Errorf("cannot access %s: %w", parent, serr)
		}
	} else if !st.IsDir() {
		return warnings, fmt.Errorf("yt-dlp parent is not a directory: %s", parent)
	}

	info, serr := os.Stat(p)
	if serr != nil {
		if os.IsNotExist(serr) {
			warnings = append(warnings, fmt.Sprintf("yt-dlp not found at configured path: %s", p))
			return warnings, nil
		}
		return warnings, fmt.Errorf("stat %s: %w", p, serr)
	}
	if info.IsDir() {
		return warnings, fmt.Errorf("configured yt-dlp path is a directory: %s", p)
	}
	return warnings, nil
}
