package yt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patrickprogramme/ytxml/internal/classify"
)

func TestValidateVideoURLAccepts(t *testing.T) {
	tests := map[string]string{
		"https://www.youtube.com/watch?v=dQw4w9WgXcQ":                    "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		"youtube.com/watch?v=dQw4w9WgXcQ":                                "https://youtube.com/watch?v=dQw4w9WgXcQ",
		"https://youtu.be/dQw4w9WgXcQ":                                   "https://youtu.be/dQw4w9WgXcQ",
		"https://m.youtube.com/watch?v=dQw4w9WgXcQ&t=42":                 "https://m.youtube.com/watch?v=dQw4w9WgXcQ&t=42",
		"https://www.youtube.com/shorts/abcdefghijk":                     "https://www.youtube.com/shorts/abcdefghijk",
		"https://www.youtube.com/watch?v=dQw4w9WgXcQ&list=PL123&index=2": "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		"  https://www.youtube.com/watch?v=dQw4w9WgXcQ  ":                "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
	}
	for in, want := range tests {
		got, err := ValidateVideoURL(in)
		require.NoError(t, err, "input %q", in)
		assert.Equal(t, want, got)
	}
}

func TestValidateVideoURLRejects(t *testing.T) {
	tests := []struct {
		in   string
		kind classify.Kind
	}{
		{"", classify.URLMalformed},
		{"ftp://youtube.com/watch?v=x", classify.URLMalformed},
		{"https://localhost/watch?v=x", classify.URLMalformed},
		{"https://vimeo.com/123456", classify.URLNotASupportedVideoSite},
		{"https://example.com/watch?v=dQw4w9WgXcQ", classify.URLNotASupportedVideoSite},
		{"https://www.youtube.com/playlist?list=PL123", classify.URLPlaylistNotSupported},
		{"https://www.youtube.com/@somechannel", classify.URLPlaylistNotSupported},
		{"https://www.youtube.com/channel/UC123", classify.URLPlaylistNotSupported},
		{"https://www.youtube.com/watch?list=PL123", classify.URLPlaylistNotSupported},
		{"https://www.youtube.com/watch?v=", classify.URLIncompleteIdentifier},
		{"https://youtu.be/", classify.URLIncompleteIdentifier},
	}
	for _, tc := range tests {
		_, err := ValidateVideoURL(tc.in)
		require.Error(t, err, "input %q", tc.in)
		assert.Equal(t, tc.kind, classify.KindOf(err), "input %q", tc.in)
	}

	_, err := ValidateVideoURL("https://vimeo.com/123456")
	assert.ErrorIs(t, err, classify.ErrNotASupportedVideoURL)
}

func TestLooksLikeURL(t *testing.T) {
	for _, s := range []string{"https://a.b/c", "http://x.y", "www.youtube.com/watch?v=a", "youtu.be/abc", "youtube.com/watch?v=a"} {
		assert.True(t, LooksLikeURL(s), s)
	}
	for _, s := range []string{"", "transcript.txt", "./notes/video.txt", "C:\\videos\\a.txt", "my file"} {
		assert.False(t, LooksLikeURL(s), s)
	}
}

func TestIsYouTubeURL(t *testing.T) {
	assert.True(t, IsYouTubeURL("https://www.youtube.com/watch?v=abc"))
	assert.True(t, IsYouTubeURL("youtu.be/abc"))
	assert.False(t, IsYouTubeURL("https://vimeo.com/1"))
	assert.False(t, IsYouTubeURL("some text"))
}
