package classify

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		msg  string
		want Kind
	}{
		{"ERROR: [youtube] abc: Sign in to confirm you're not a bot", URLBotProtectionTriggered},
		{"ERROR: unable to download webpage: HTTP Error 429: Too Many Requests", URLRateLimited},
		{"ERROR: [youtube] abc: Private video. Sign in if you've been granted access", URLVideoPrivate},
		{"ERROR: [youtube] abc: Incomplete YouTube ID abc. URL looks truncated.", URLIncompleteIdentifier},
		{"ERROR: Unsupported URL: https://example.com/", URLNotASupportedVideoSite},
		{"ERROR: 'nope' is not a valid URL", URLMalformed},
		{"ERROR: this is a playlist", URLPlaylistNotSupported},
		{"WARNING: There are no subtitles for the requested languages", URLTranscriptNotFound},
		{"ERROR: [youtube] abc: Video unavailable", URLVideoUnavailable},
		{"ERROR: [youtube] abc: This video has been removed by the uploader", URLVideoUnavailable},
		{"ERROR: something exotic happened", URLUnclassified},
		{"", URLUnclassified},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, Classify(tc.msg), "Classify(%q)", tc.msg)
	}
}

func TestClassifyPrecedence(t *testing.T) {
	// 429 formulé comme "unavailable" : le rate limit gagne
	msg := "HTTP Error 429: Too Many Requests. Video unavailable for now"
	assert.Equal(t, URLRateLimited, Classify(msg))

	// "Private video. Sign in ..." n'est pas une protection anti-bot
	assert.Equal(t, URLVideoPrivate, Classify("Private video. Sign in if you've been granted access to this video"))

	assert.Equal(t, URLBotProtectionTriggered, Classify("Sign in to confirm you're not a bot. Video unavailable"))
}

func TestFromToolKeepsClassifiedError(t *testing.T) {
	orig := New(URLPlaylistNotSupported, "list")
	wrapped := fmt.Errorf("extract: %w", orig)

	got := FromTool(wrapped)
	assert.Same(t, orig, got)
}

func TestFromToolCancellation(t *testing.T) {
	got := FromTool(fmt.Errorf("yt-dlp: %w", context.Canceled))
	assert.Equal(t, Cancelled, got.Kind)
	assert.ErrorIs(t, got, context.Canceled)

	got = FromTool(context.DeadlineExceeded)
	assert.Equal(t, Cancelled, got.Kind)
}

func TestFromToolUnclassifiedHidesRawText(t *testing.T) {
	raw := errors.New("Traceback (most recent call last): KeyError 'foo'")

	got := FromTool(raw)
	assert.Equal(t, URLUnclassified, got.Kind)
	assert.Equal(t, "Something went wrong while fetching this YouTube video", got.Error())
	assert.NotContains(t, got.Error(), "Traceback")
	assert.Contains(t, got.Verbose(), "Traceback")
	assert.ErrorIs(t, got, raw)
}

func TestFromToolNil(t *testing.T) {
	assert.Nil(t, FromTool(nil))
	assert.Nil(t, FromFile(nil))
}

func TestFromFile(t *testing.T) {
	_, err := os.Open("/definitely/not/here.txt")
	require.Error(t, err)
	assert.Equal(t, FileNotFound, FromFile(err).Kind)

	perm := &fs.PathError{Op: "open", Path: "x.txt", Err: fs.ErrPermission}
	assert.Equal(t, FilePermissionDenied, FromFile(perm).Kind)

	assert.Equal(t, Cancelled, FromFile(context.Canceled).Kind)

	already := New(FileEncodingError, "")
	assert.Same(t, already, FromFile(already))
}

func TestErrorIsMatchesByKind(t *testing.T) {
	err := fmt.Errorf("wrap: %w", Wrap(URLRateLimited, "detail", errors.New("cause")))

	assert.ErrorIs(t, err, ErrRateLimited)
	assert.NotErrorIs(t, err, ErrVideoUnavailable)
	assert.NotErrorIs(t, err, ErrBotProtection)
	assert.ErrorIs(t, FromTool(errors.New("Sign in to confirm you're not a bot")), ErrBotProtection)
	assert.Equal(t, URLRateLimited, KindOf(err))
	assert.Equal(t, Kind(""), KindOf(errors.New("plain")))
}

func TestEveryKindHasAMessage(t *testing.T) {
	seen := map[string]Kind{}
	for _, k := range Kinds() {
		msg, ok := messages[k]
		require.True(t, ok, "missing message for %s", k)
		require.NotEmpty(t, msg)
		if prev, dup := seen[msg]; dup {
			t.Fatalf("message %q shared by %s and %s", msg, prev, k)
		}
		seen[msg] = k
	}
	assert.Len(t, messages, len(Kinds()))
}

func TestVerbose(t *testing.T) {
	assert.Equal(t, "FileEmpty", New(FileEmpty, "").Verbose())
	assert.Equal(t, "FileInvalidFormat: bad", New(FileInvalidFormat, "bad").Verbose())
	assert.Equal(t, "URLUnclassified: boom", Wrap(URLUnclassified, "", errors.New("boom")).Verbose())
	assert.Equal(t, "Internal: a: b", Wrap(Internal, "a", errors.New("b")).Verbose())
}

func TestLogValue(t *testing.T) {
	v := Wrap(URLRateLimited, "", errors.New("HTTP Error 429")).LogValue()
	require.Equal(t, slog.KindGroup, v.Kind())

	attrs := map[string]string{}
	for _, a := range v.Group() {
		attrs[a.Key] = a.Value.String()
	}
	assert.Equal(t, "URLRateLimited", attrs["kind"])
	assert.Equal(t, "URLRateLimited: HTTP Error 429", attrs["detail"])
}
