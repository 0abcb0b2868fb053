// Package classify ramène chaque échec (fichier, validation, yt-dlp) à un type
// d'erreur fermé, avec un message fixe destiné à l'utilisateur.
//
// Usage :
//
//	if errors.Is(err, classify.ErrRateLimited) { ... }
//
//	var ce *classify.Error
//	if errors.As(err, &ce) {
//	    switch ce.Kind {
//	    case classify.URLVideoPrivate:
//	    }
//	}
package classify

import (
	"errors"
	"fmt"
	"log/slog"
)

// Kind est le tag de l'erreur classée. Liste plate et fermée.
type Kind string

const (
	InputInvalid              Kind = "InputInvalid"
	FileNotFound              Kind = "FileNotFound"
	FileEmpty                 Kind = "FileEmpty"
	FileInvalidFormat         Kind = "FileInvalidFormat"
	FilePermissionDenied      Kind = "FilePermissionDenied"
	FileEncodingError         Kind = "FileEncodingError"
	URLNotASupportedVideoSite Kind = "URLNotASupportedVideoSite"
	URLMalformed              Kind = "URLMalformed"
	URLIncompleteIdentifier   Kind = "URLIncompleteIdentifier"
	URLVideoUnavailable       Kind = "URLVideoUnavailable"
	URLVideoPrivate           Kind = "URLVideoPrivate"
	URLTranscriptNotFound     Kind = "URLTranscriptNotFound"
	URLPlaylistNotSupported   Kind = "URLPlaylistNotSupported"
	URLBotProtectionTriggered Kind = "URLBotProtectionTriggered"
	URLRateLimited            Kind = "URLRateLimited"
	URLUnclassified           Kind = "URLUnclassified"
	Cancelled                 Kind = "Cancelled"
	Internal                  Kind = "Internal"
	ToolUnavailable           Kind = "ToolUnavailable"
)

// messages : un seul message court et non technique par Kind.
var messages = map[Kind]string{
	InputInvalid:              "Input must be a YouTube URL or a .txt transcript file",
	FileNotFound:              "We couldn't find your file",
	FileEmpty:                 "Your file is empty",
	FileInvalidFormat:         "Wrong format in your transcript file",
	FilePermissionDenied:      "We don't have permission to access your file",
	FileEncodingError:         "Your file is not valid UTF-8 text",
	URLNotASupportedVideoSite: "URL is not a YouTube video",
	URLMalformed:              "Invalid URL format",
	URLIncompleteIdentifier:   "YouTube URL is incomplete",
	URLVideoUnavailable:       "YouTube video unavailable",
	URLVideoPrivate:           "This YouTube video is private",
	URLTranscriptNotFound:     "This video doesn't have a transcript available",
	URLPlaylistNotSupported:   "Playlists are not supported, please provide a single video URL",
	URLBotProtectionTriggered: "YouTube bot protection triggered, please try again later",
	URLRateLimited:            "YouTube rate limit in force, transcript temporarily unavailable",
	URLUnclassified:           "Something went wrong while fetching this YouTube video",
	Cancelled:                 "Operation cancelled",
	Internal:                  "Internal error while building the transcript",
	ToolUnavailable:           "yt-dlp could not be started, check yt_dlp.path in ytxml.yaml",
}

// Kinds retourne la liste complète des Kind, dans l'ordre de déclaration.
func Kinds() []Kind {
	return []Kind{
		InputInvalid, FileNotFound, FileEmpty, FileInvalidFormat, FilePermissionDenied,
		FileEncodingError, URLNotASupportedVideoSite, URLMalformed, URLIncompleteIdentifier,
		URLVideoUnavailable, URLVideoPrivate, URLTranscriptNotFound, URLPlaylistNotSupported,
		URLBotProtectionTriggered, URLRateLimited, URLUnclassified, Cancelled, Internal,
		ToolUnavailable,
	}
}

// Message retourne le message fixe associé à k.
func (k Kind) Message() string {
	if m, ok := messages[k]; ok {
		return m
	}
	return messages[URLUnclassified]
}

func (k Kind) String() string {
	return string(k)
}

// Error est une erreur classée. Error() ne renvoie que le message fixe :
// Detail et cause servent aux logs, jamais à l'affichage.
type Error struct {
	Kind   Kind
	Detail string // précision courte (ex: "Second line must be a timestamp")
	cause  error
}

// New construit une erreur classée. detail peut être vide.
func New(kind Kind, detail string) *Error {
	return &Error{Kind: kind, Detail: detail}
}

// Wrap construit une erreur classée en conservant la cause pour errors.Is/As.
func Wrap(kind Kind, detail string, cause error) *Error {
	return &Error{Kind: kind, Detail: detail, cause: cause}
}

func (e *Error) Error() string {
	return e.Kind.Message()
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Is : deux *Error sont égales si elles ont le même Kind.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Kind == t.Kind
	}
	return false
}

// Verbose donne une version détaillée (Kind, Detail, cause) pour les logs.
func (e *Error) Verbose() string {
	switch {
	case e.Detail != "" && e.cause != nil:
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Detail, e.cause)
	case e.Detail != "":
		return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
	case e.cause != nil:
		return fmt.Sprintf("%s: %v", e.Kind, e.cause)
	}
	return string(e.Kind)
}

// LogValue implémente slog.LogValuer : les logs reçoivent la version détaillée.
func (e *Error) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("kind", string(e.Kind)),
		slog.String("detail", e.Verbose()),
	)
}

// Sentinelles pour errors.Is.
var (
	ErrInputInvalid          = New(InputInvalid, "")
	ErrFileNotFound          = New(FileNotFound, "")
	ErrFileEmpty             = New(FileEmpty, "")
	ErrFileInvalidFormat     = New(FileInvalidFormat, "")
	ErrTranscriptNotFound    = New(URLTranscriptNotFound, "")
	ErrPlaylistNotSupported  = New(URLPlaylistNotSupported, "")
	ErrRateLimited           = New(URLRateLimited, "")
	ErrBotProtection         = New(URLBotProtectionTriggered, "")
	ErrVideoUnavailable      = New(URLVideoUnavailable, "")
	ErrUnclassified          = New(URLUnclassified, "")
	ErrCancelled             = New(Cancelled, "")
	ErrInternal              = New(Internal, "")
	ErrToolUnavailable       = New(ToolUnavailable, "")
	ErrNotASupportedVideoURL = New(URLNotASupportedVideoSite, "")
)

// KindOf retourne le Kind de err, ou "" si err n'est pas classée.
func KindOf(err error) Kind {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return ""
}
