// Package fetch télécharge de petites ressources HTTP (pistes json3, API GitHub)
// avec limite de taille, timeout par tentative et retries sur les échecs transitoires.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/avast/retry-go/v4"
)

const (
	DefaultTimeout   = 15 * time.Second
	DefaultMaxBytes  = 10_000_000
	DefaultAttempts  = 3
	DefaultDelay     = 500 * time.Millisecond
	DefaultUserAgent = "ytxml/1.0"
)

var ErrTooLarge = errors.New("response body too large")

// StatusError : réponse HTTP hors 2xx.
// Le texte contient le status ("429 Too Many Requests") pour que la classification
// en aval puisse le reconnaître.
type StatusError struct {
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected http status %s", e.Status)
}

// Temporary : seules les erreurs serveur valent un nouvel essai.
// 429 n'est pas retenté, insister aggrave le rate limit.
func (e *StatusError) Temporary() bool {
	return e.Code >= 500
}

// Options règle un téléchargement. Les valeurs nulles prennent les défauts.
type Options struct {
	Timeout   time.Duration // par tentative
	MaxBytes  int64
	Attempts  uint
	Delay     time.Duration
	UserAgent string
	Client    *http.Client // nil => client par défaut (injectable en test)
}

func (o Options) withDefaults() Options {
	if o.Timeout <= 0 {
		o.Timeout = DefaultTimeout
	}
	if o.MaxBytes <= 0 {
		o.MaxBytes = DefaultMaxBytes
	}
	if o.Attempts == 0 {
		o.Attempts = DefaultAttempts
	}
	if o.Delay <= 0 {
		o.Delay = DefaultDelay
	}
	if o.UserAgent == "" {
		o.UserAgent = DefaultUserAgent
	}
	if o.Client == nil {
		o.Client = &http.Client{}
	}
	return o
}

// FetchBytes télécharge rawURL et retourne le corps complet (lu en mémoire).
// Les erreurs réseau et 5xx sont retentées jusqu'à opts.Attempts fois ;
// 4xx, dépassement de taille et annulation du ctx arrêtent tout de suite.
func FetchBytes(ctx context.Context, rawURL string, opts Options) ([]byte, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	opts = opts.withDefaults()

	// valider l'URL tôt
	if _, err := url.ParseRequestURI(rawURL); err != nil {
		return nil, fmt.Errorf("fetch: invalid url %q: %w", rawURL, err)
	}

	var data []byte
	err := retry.Do(
		func() error {
			b, err := fetchOnce(ctx, rawURL, opts)
			if err != nil {
				return err
			}
			data = b
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(opts.Attempts),
		retry.Delay(opts.Delay),
		retry.RetryIf(isTransient),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return nil, err
	}
	return data, nil
}

// fetchOnce : une seule tentative, bornée par opts.Timeout.
func fetchOnce(ctx context.Context, rawURL string, opts Options) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch: new request: %w", err)
	}
	req.Header.Set("User-Agent", opts.UserAgent)

	resp, err := opts.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{Code: resp.StatusCode, Status: resp.Status}
	}

	// Content-Length connu et trop grand -> échouer vite
	if resp.ContentLength > opts.MaxBytes {
		return nil, fmt.Errorf("fetch: content-length %d exceeds limit %d: %w", resp.ContentLength, opts.MaxBytes, ErrTooLarge)
	}

	r := io.LimitReader(resp.Body, opts.MaxBytes+1) // +1 pour détecter dépassement
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("fetch: read body: %w", err)
	}
	if int64(len(data)) > opts.MaxBytes {
		return nil, fmt.Errorf("fetch: body exceeds %d bytes: %w", opts.MaxBytes, ErrTooLarge)
	}
	return data, nil
}

// isTransient décide si une tentative ratée mérite un nouvel essai.
func isTransient(err error) bool {
	if errors.Is(err, ErrTooLarge) || errors.Is(err, context.Canceled) {
		return false
	}
	var se *StatusError
	if errors.As(err, &se) {
		return se.Temporary()
	}
	return true
}
