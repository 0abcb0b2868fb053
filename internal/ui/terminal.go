package ui

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/patrickprogramme/ytxml/internal/clipboard"
	"github.com/patrickprogramme/ytxml/internal/yt"
)

// ErrNoInput : stdin fermé avant qu'une entrée soit saisie.
var ErrNoInput = errors.New("no input provided")

type terminalUI struct {
	reader    *bufio.Reader
	out       io.Writer
	errOut    io.Writer
	clipboard func() string
}

func NewTerminal() Interface {
	return NewTerminalWith(os.Stdin, os.Stdout, os.Stderr, clipboard.ReadTrimmed)
}

// NewTerminalWith : flux et lecture du presse-papier injectables (tests).
// readClip nil => presse-papier ignoré.
func NewTerminalWith(in io.Reader, out, errOut io.Writer, readClip func() string) Interface {
	if readClip == nil {
		readClip = func() string { return "" }
	}
	return &terminalUI{
		reader:    bufio.NewReader(in),
		out:       out,
		errOut:    errOut,
		clipboard: readClip,
	}
}

func (t *terminalUI) GetInput(ctx context.Context) (string, error) {
	// 1) clipboard
	if clip := t.clipboard(); yt.IsYouTubeURL(clip) {
		t.PrintInfo(ctx, fmt.Sprintf("Using URL from clipboard: %s", clip))
		return clip, nil
	}
	// 2) prompt
	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		fmt.Fprint(t.out, "Enter a YouTube URL or a transcript .txt path: ")
		input, err := t.reader.ReadString('\n')
		value := strings.Trim(strings.TrimSpace(input), `"'`)
		if value != "" {
			return value, nil
		}
		if err != nil {
			// EOF sans saisie : rien à traiter
			return "", ErrNoInput
		}
		fmt.Fprintln(t.out, "❌ Empty input. Try again.")
	}
}

func (t *terminalUI) WaitForExit(ctx context.Context) error {
	fmt.Fprintln(t.out, "\n\nPress Ctrl+C to exit.")

	// Prépare le canal pour les signaux d'interruption
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case <-ctx.Done(): // Context annulé ailleurs
		return ctx.Err()
	case <-sigCh: // Reçu Ctrl+C (SIGINT ou SIGTERM)
		return nil
	}
}

func (t *terminalUI) PrintInfo(ctx context.Context, s string) {
	fmt.Fprintln(t.out, s)
}

func (t *terminalUI) PrintError(ctx context.Context, s string) {
	fmt.Fprintln(t.errOut, s)
}
