package ui

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetInputPrefersClipboardURL(t *testing.T) {
	var out bytes.Buffer
	term := NewTerminalWith(strings.NewReader("ignored.txt\n"), &out, &out, func() string {
		return "https://youtu.be/dQw4w9WgXcQ"
	})

	got, err := term.GetInput(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "https://youtu.be/dQw4w9WgXcQ", got)
	assert.Contains(t, out.String(), "clipboard")
}

func TestGetInputIgnoresNonURLClipboard(t *testing.T) {
	var out bytes.Buffer
	term := NewTerminalWith(strings.NewReader("\n  \"my notes.txt\"  \n"), &out, &out, func() string {
		return "some copied prose"
	})

	got, err := term.GetInput(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "my notes.txt", got)
	assert.Contains(t, out.String(), "Empty input")
}

func TestGetInputEOF(t *testing.T) {
	var out bytes.Buffer
	term := NewTerminalWith(strings.NewReader(""), &out, &out, nil)

	_, err := term.GetInput(context.Background())
	assert.ErrorIs(t, err, ErrNoInput)
}

func TestGetInputCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	term := NewTerminalWith(strings.NewReader("x.txt\n"), &bytes.Buffer{}, &bytes.Buffer{}, nil)

	_, err := term.GetInput(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWaitForExitReturnsOnContext(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	term := NewTerminalWith(strings.NewReader(""), &bytes.Buffer{}, &bytes.Buffer{}, nil)

	assert.ErrorIs(t, term.WaitForExit(ctx), context.DeadlineExceeded)
}

func TestPrintErrorWritesToErrOut(t *testing.T) {
	var out, errOut bytes.Buffer
	term := NewTerminalWith(strings.NewReader(""), &out, &errOut, nil)

	term.PrintError(context.Background(), "❌ boom")
	term.PrintInfo(context.Background(), "✅ ok")
	assert.Equal(t, "❌ boom\n", errOut.String())
	assert.Equal(t, "✅ ok\n", out.String())
}
