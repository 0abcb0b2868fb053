package yt

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/patrickprogramme/ytxml/internal/classify"
)

var ytRegex = regexp.MustCompile(`(?i)^(https?://)?(www\.|m\.|music\.)?(youtube\.com/|youtu\.be/|youtube-nocookie\.com/)`)

// schemeRegex : "xxx://" en tête de chaîne.
var schemeRegex = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.-]*://`)

var youtubeHosts = map[string]struct{}{
	"youtube.com":              {},
	"www.youtube.com":          {},
	"m.youtube.com":            {},
	"music.youtube.com":        {},
	"youtu.be":                 {},
	"youtube-nocookie.com":     {},
	"www.youtube-nocookie.com": {},
}

// chemins qui désignent une collection de vidéos et non une vidéo seule
var collectionPrefixes = []string{"/playlist", "/channel/", "/c/", "/user/", "/@", "/feed/", "/results"}

// IsYouTubeURL teste grossièrement si s ressemble à une URL YouTube (utilisé pour le presse-papier).
func IsYouTubeURL(s string) bool {
	return ytRegex.MatchString(strings.TrimSpace(s))
}

// LooksLikeURL indique si l'entrée utilisateur doit être traitée comme une URL
// plutôt que comme un chemin de fichier.
func LooksLikeURL(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	if schemeRegex.MatchString(s) {
		return true
	}
	lower := strings.ToLower(s)
	return strings.HasPrefix(lower, "www.") || IsYouTubeURL(lower)
}

// ValidateVideoURL vérifie qu'une URL désigne UNE vidéo YouTube, avant tout appel à yt-dlp.
// Retourne l'URL normalisée (schéma ajouté, paramètre list retiré) ou une *classify.Error.
// Les playlists/chaînes sont rejetées ici : yt-dlp ne lève pas d'erreur exploitable dans ce cas.
func ValidateVideoURL(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", classify.New(classify.URLMalformed, "empty url")
	}
	if !schemeRegex.MatchString(s) {
		s = "https://" + s
	}

	u, err := url.Parse(s)
	if err != nil {
		return "", classify.Wrap(classify.URLMalformed, "unparseable url", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", classify.New(classify.URLMalformed, "scheme must be http or https")
	}
	host := strings.ToLower(u.Hostname())
	if host == "" || !strings.Contains(host, ".") {
		return "", classify.New(classify.URLMalformed, "missing host")
	}
	if _, ok := youtubeHosts[host]; !ok {
		return "", classify.New(classify.URLNotASupportedVideoSite, host)
	}

	path := u.EscapedPath()
	for _, p := range collectionPrefixes {
		if strings.HasPrefix(path, p) {
			return "", classify.New(classify.URLPlaylistNotSupported, path)
		}
	}

	q := u.Query()
	videoID := q.Get("v")
	if host == "youtu.be" {
		videoID = strings.Trim(path, "/")
	} else if strings.HasPrefix(path, "/shorts/") || strings.HasPrefix(path, "/embed/") || strings.HasPrefix(path, "/live/") {
		parts := strings.Split(strings.Trim(path, "/"), "/")
		if len(parts) >= 2 {
			videoID = parts[1]
		}
	}

	if videoID == "" {
		if q.Has("list") {
			return "", classify.New(classify.URLPlaylistNotSupported, "list without video id")
		}
		return "", classify.New(classify.URLIncompleteIdentifier, "missing video id")
	}

	// une vidéo ouverte depuis une playlist : on garde la vidéo seule
	if q.Has("list") {
		q.Del("list")
		q.Del("index")
		u.RawQuery = q.Encode()
	}
	return u.String(), nil
}
