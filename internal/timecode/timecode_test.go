package timecode

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patrickprogramme/ytxml/pkg/model"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want model.Seconds
	}{
		{"0:00", 0},
		{"2:30", 150},
		{"59:59", 3599},
		{"1:00:00", 3600},
		{"1:15:30", 4530},
		{"10:15:30", 36930},
		{"999:59:59", 3599999},
		{" 0:05 ", 5},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := Parse(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestRecognizeRejectsNonTimestamps(t *testing.T) {
	rejected := []string{
		"", ":", "1:", ":30",
		"1:60", "25:61", "1:60:30", "1:30:60",
		"abc:def", "1:2:3:4",
		"1234",         // nombre seul : jamais un timestamp
		"2:30 welcome", // prose derrière
		"at 2:30",
		"1000:00:00",
	}
	for _, line := range rejected {
		_, ok := Recognize(line)
		assert.False(t, ok, "should not be a timestamp: %q", line)
		assert.False(t, IsTimestamp(line), "should not be a timestamp: %q", line)
	}
}

func TestRecognizeKeepsRawLine(t *testing.T) {
	tok, ok := Recognize("  1:02:03")
	require.True(t, ok)
	assert.Equal(t, "  1:02:03", tok.Line)
	assert.Equal(t, model.Seconds(3723), tok.At)
}

func TestFormat(t *testing.T) {
	tests := []struct {
		in   model.Seconds
		want string
	}{
		{0, "0:00"},
		{150, "2:30"},
		{3599, "59:59"},
		{3600, "1:00:00"},
		{4530, "1:15:30"},
		{36930, "10:15:30"},
		{2.9, "0:02"},
		{59.999, "0:59"},
	}
	for _, tc := range tests {
		got, err := Format(tc.in)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got)
	}
}

func TestFormatRejectsUnrenderable(t *testing.T) {
	for _, s := range []model.Seconds{-1, -0.1, model.OpenEnded(), model.Seconds(math.NaN()), model.Seconds(math.Inf(-1))} {
		_, err := Format(s)
		assert.ErrorIs(t, err, ErrNotRenderable)
	}
}

func TestRoundTripIsLossless(t *testing.T) {
	for _, line := range []string{"0:07", "12:34", "1:02:03", "23:59:59", "100:00:00"} {
		at, err := Parse(line)
		require.NoError(t, err)

		rendered, err := Format(at)
		require.NoError(t, err)

		again, err := Parse(rendered)
		require.NoError(t, err)
		assert.Equal(t, at, again, "round trip of %q via %q", line, rendered)
	}
}

func TestFormatDuration(t *testing.T) {
	tests := map[float64]string{
		0:      "",
		-1:     "",
		-0.5:   "",
		1:      "1s",
		59:     "59s",
		60:     "1m",
		61:     "1m 1s",
		163:    "2m 43s",
		3600:   "1h",
		3660:   "1h 1m",
		7322:   "2h 2m 2s",
		86399:  "23h 59m 59s",
		3661.9: "1h 1m 1s",
	}
	for in, want := range tests {
		assert.Equal(t, want, FormatDuration(in), "FormatDuration(%v)", in)
	}
}

func TestFormatPublished(t *testing.T) {
	assert.Equal(t, "", FormatPublished(""))
	assert.Equal(t, "2025-01-01", FormatPublished("20250101"))
	assert.Equal(t, "2024-02-29", FormatPublished("20240229"))
	assert.Equal(t, "2025-01-01", FormatPublished("2025-01-01"))
	assert.Equal(t, "not-a-date", FormatPublished("not-a-date"))
	assert.Equal(t, "20251301", FormatPublished("20251301"))
	assert.Equal(t, "202501", FormatPublished("202501"))
}
