package classify

import (
	"context"
	"errors"
	"os"
	"regexp"
)

// rule associe un motif (insensible à la casse) à un Kind.
type rule struct {
	pattern *regexp.Regexp
	kind    Kind
}

// toolRules : l'ordre compte, la première règle qui matche gagne.
// Bot et rate limit passent avant "unavailable" : yt-dlp les formule
// souvent comme "... temporarily unavailable".
var toolRules = []rule{
	{regexp.MustCompile(`(?i)sign in to confirm|not a bot|captcha`), URLBotProtectionTriggered},
	{regexp.MustCompile(`(?i)http error 429|too many requests|rate[- ]limit`), URLRateLimited},
	{regexp.MustCompile(`(?i)private video|video is private`), URLVideoPrivate},
	{regexp.MustCompile(`(?i)incomplete youtube id|looks truncated`), URLIncompleteIdentifier},
	{regexp.MustCompile(`(?i)unsupported url`), URLNotASupportedVideoSite},
	{regexp.MustCompile(`(?i)is not a valid url|invalid url`), URLMalformed},
	{regexp.MustCompile(`(?i)\bplaylist\b`), URLPlaylistNotSupported},
	{regexp.MustCompile(`(?i)no subtitles|no captions|no transcript`), URLTranscriptNotFound},
	{regexp.MustCompile(`(?i)video unavailable|video is (not |un)available|has been removed|no longer available`), URLVideoUnavailable},
}

// Classify mappe un message brut de l'outil d'extraction vers un Kind.
// Fonction pure : URLUnclassified si rien ne matche.
func Classify(msg string) Kind {
	for _, r := range toolRules {
		if r.pattern.MatchString(msg) {
			return r.kind
		}
	}
	return URLUnclassified
}

// FromTool classe un échec venant de l'outil d'extraction.
//   - une *Error déjà classée est renvoyée telle quelle
//   - annulation / timeout => Cancelled
//   - sinon le texte est passé à Classify
//
// Pour URLUnclassified le texte brut n'est pas conservé dans Detail.
func FromTool(err error) *Error {
	if err == nil {
		return nil
	}
	var ce *Error
	if errors.As(err, &ce) {
		return ce
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return Wrap(Cancelled, "", err)
	}
	return Wrap(Classify(err.Error()), "", err)
}

// FromFile classe une erreur de lecture de fichier.
func FromFile(err error) *Error {
	if err == nil {
		return nil
	}
	var ce *Error
	if errors.As(err, &ce) {
		return ce
	}
	switch {
	case errors.Is(err, os.ErrNotExist):
		return Wrap(FileNotFound, "", err)
	case errors.Is(err, os.ErrPermission):
		return Wrap(FilePermissionDenied, "", err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return Wrap(Cancelled, "", err)
	}
	return Wrap(FileNotFound, "unreadable file", err)
}
