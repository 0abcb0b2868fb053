package clipboard

import (
	"strings"

	"github.com/atotto/clipboard"
)

// ReadAll lit le contenu texte du presse-papier.
// Retourne une chaîne de caractères et une erreur éventuelle.
func ReadAll() (string, error) {
	text, err := clipboard.ReadAll()
	if err != nil {
		return "", err
	}
	return text, nil
}

// ReadTrimmed lit le presse-papier et retire BOM, espaces et retours chariot de bord.
// Presse-papier vide ou inaccessible => "".
func ReadTrimmed() string {
	text, err := ReadAll()
	if err != nil {
		return ""
	}
	text = strings.TrimPrefix(text, "\ufeff")
	return strings.TrimSpace(text)
}
