package yt

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patrickprogramme/ytxml/internal/classify"
	"github.com/patrickprogramme/ytxml/pkg/model"
)

const sampleOutput = `{
  "_type": "video",
  "id": "abc123",
  "title": "How to Build an AI Agent",
  "upload_date": "20250717",
  "duration": 163.4,
  "webpage_url": "https://www.youtube.com/watch?v=abc123",
  "chapters": [
    {"start_time": 0.0, "end_time": 60.0, "title": "Intro"},
    {"start_time": 60.0, "end_time": 163.0, "title": "Build"}
  ],
  "subtitles": {
    "fr": [{"ext": "json3", "url": "https://example.test/fr.json3"}]
  },
  "automatic_captions": {
    "en": [{"ext": "vtt", "url": "https://example.test/en.vtt"}, {"ext": "json3", "url": "https://example.test/en-auto.json3"}],
    "en-orig": [{"ext": "json3", "url": "https://example.test/en-orig.json3"}]
  }
}`

func TestParseYTDLP(t *testing.T) {
	v, err := ParseYTDLP([]byte(sampleOutput), "https://youtu.be/abc123", nil)
	require.NoError(t, err)

	assert.Equal(t, "abc123", v.ID)
	assert.Equal(t, "How to Build an AI Agent", v.Title)
	assert.Equal(t, "20250717", v.UploadDate)
	assert.InDelta(t, 163.4, v.Duration, 1e-9)
	assert.Equal(t, "https://www.youtube.com/watch?v=abc123", v.WebpageURL)

	require.Len(t, v.Markers, 2)
	assert.Equal(t, model.ChapterMarker{Title: "Build", Start: 60, End: 163}, v.Markers[1])

	require.NotNil(t, v.Track)
	assert.Equal(t, Track{Lang: "en", URL: "https://example.test/en-auto.json3", Automatic: true}, *v.Track)
}

func TestParseYTDLPManualBeatsAutomatic(t *testing.T) {
	raw := `{"title":"t","subtitles":{"en":[{"ext":"json3","url":"m"}]},"automatic_captions":{"en":[{"ext":"json3","url":"a"}]}}`

	v, err := ParseYTDLP([]byte(raw), "u", nil)
	require.NoError(t, err)
	require.NotNil(t, v.Track)
	assert.Equal(t, "m", v.Track.URL)
	assert.False(t, v.Track.Automatic)
	assert.Equal(t, "en (manual)", v.Track.String())
}

func TestParseYTDLPLanguageOrder(t *testing.T) {
	v, err := ParseYTDLP([]byte(sampleOutput), "u", []string{"en-orig", "en"})
	require.NoError(t, err)
	assert.Equal(t, "https://example.test/en-orig.json3", v.TrackURL())

	v, err = ParseYTDLP([]byte(sampleOutput), "u", []string{"de"})
	require.NoError(t, err)
	assert.Nil(t, v.Track)
	assert.Equal(t, "", v.TrackURL())
}

func TestParseYTDLPDefaults(t *testing.T) {
	v, err := ParseYTDLP([]byte(`{"id":"x","chapters":[{"title":"A"}]}`), "https://youtu.be/x", nil)
	require.NoError(t, err)
	assert.Equal(t, "", v.Title, "pas de titre inventé dans les métadonnées")
	assert.Equal(t, "https://youtu.be/x", v.WebpageURL)

	require.Len(t, v.Markers, 1)
	assert.Equal(t, model.Seconds(0), v.Markers[0].Start)
	assert.True(t, math.IsNaN(float64(v.Markers[0].End)))
}

func TestParseYTDLPRejectsPlaylist(t *testing.T) {
	_, err := ParseYTDLP([]byte(`{"_type":"playlist","id":"PL1","entries":[]}`), "u", nil)
	assert.ErrorIs(t, err, classify.ErrPlaylistNotSupported)
}

func TestParseYTDLPInvalidJSON(t *testing.T) {
	_, err := ParseYTDLP([]byte(`{`), "u", nil)
	assert.Equal(t, classify.URLUnclassified, classify.KindOf(err))
}

func TestVideoExtraction(t *testing.T) {
	v, err := ParseYTDLP([]byte(sampleOutput), "u", nil)
	require.NoError(t, err)

	captions := []model.Caption{{Start: 1, Text: "hi"}}
	ex := v.Extraction(captions)
	assert.Equal(t, "How to Build an AI Agent", ex.Title)
	assert.Equal(t, "20250717", ex.UploadDate)
	assert.Equal(t, "https://www.youtube.com/watch?v=abc123", ex.CanonicalURL)
	assert.Equal(t, captions, ex.Captions)
	assert.Len(t, ex.Markers, 2)
}

func TestBuildArgs(t *testing.T) {
	args := NewYtDlpConfig(false).BuildArgs("https://youtu.be/x")
	assert.Equal(t, []string{
		"--no-config", "-j", "--skip-download", "--no-playlist",
		"--no-warnings", "--no-progress", "--no-update", "--", "https://youtu.be/x",
	}, args)

	args = NewYtDlpConfig(true).BuildArgs("u")
	assert.NotContains(t, args, "--no-warnings")
}
