// Package timecode reconnaît les lignes de timestamp ("2:30", "1:15:30", "100:00:00")
// et convertit entre texte et secondes.
package timecode

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/patrickprogramme/ytxml/pkg/model"
)

const (
	secondsPerMinute = 60
	secondsPerHour   = 3600
)

// Pattern : M:SS, MM:SS, H:MM:SS, HH:MM:SS ou HHH:MM:SS.
// Minutes et secondes entre 00 et 59, rien d'autre sur la ligne.
var Pattern = regexp.MustCompile(`^(\d{1,2}:[0-5]\d(:[0-5]\d)?|\d{3}:[0-5]\d:[0-5]\d)$`)

var ErrNotRenderable = errors.New("seconds must be finite and >= 0")

// IsTimestamp indique si la ligne (espaces de bord ignorés) est un timestamp.
// Un nombre seul sans ":" n'en est jamais un.
func IsTimestamp(line string) bool {
	return Pattern.MatchString(strings.TrimSpace(line))
}

// Recognize retourne le Token si line est un timestamp.
func Recognize(line string) (model.Token, bool) {
	at, err := Parse(line)
	if err != nil {
		return model.Token{}, false
	}
	return model.Token{Line: line, At: at}, true
}

// Parse convertit "2:30" -> 150, "1:15:30" -> 4530.
// Pondération positionnelle : groupe de droite = secondes, puis minutes, puis heures.
func Parse(line string) (model.Seconds, error) {
	ts := strings.TrimSpace(line)
	if !Pattern.MatchString(ts) {
		return 0, fmt.Errorf("invalid timestamp format: %q", line)
	}

	var total int64
	for _, part := range strings.Split(ts, ":") {
		n, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid timestamp format: %q: %w", line, err)
		}
		total = total*secondsPerMinute + n
	}
	return model.Seconds(total), nil
}

// Format rend des secondes en "M:SS" (moins d'une heure) ou "H:MM:SS".
// Les fractions sont tronquées. Erreur pour négatif, NaN ou fin ouverte.
func Format(s model.Seconds) (string, error) {
	f := float64(s)
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return "", ErrNotRenderable
	}
	total := int64(f)
	h := total / secondsPerHour
	m := (total % secondsPerHour) / secondsPerMinute
	sec := total % secondsPerMinute
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, sec), nil
	}
	return fmt.Sprintf("%d:%02d", m, sec), nil
}

// FormatDuration : 163 -> "2m 43s", 3660 -> "1h 1m". Vide si <= 0.
func FormatDuration(seconds float64) string {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds < 1 {
		return ""
	}
	total := int64(seconds)
	h := total / secondsPerHour
	m := (total % secondsPerHour) / secondsPerMinute
	sec := total % secondsPerMinute

	parts := make([]string, 0, 3)
	if h > 0 {
		parts = append(parts, fmt.Sprintf("%dh", h))
	}
	if m > 0 {
		parts = append(parts, fmt.Sprintf("%dm", m))
	}
	if sec > 0 {
		parts = append(parts, fmt.Sprintf("%ds", sec))
	}
	return strings.Join(parts, " ")
}

// FormatPublished : "20250717" -> "2025-07-17". Toute autre valeur est rendue telle quelle.
func FormatPublished(raw string) string {
	if len(raw) != len("20060102") {
		return raw
	}
	t, err := time.Parse("20060102", raw)
	if err != nil {
		return raw
	}
	return t.Format("2006-01-02")
}
