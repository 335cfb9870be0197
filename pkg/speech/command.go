package speech

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"math"
	"os/exec"
	"strconv"
	"strings"
)

const (
	kindEspeak = "espeak"
	kindSay    = "say"
	kindSAPI   = "sapi"
)

// Runner executes name with args, feeding stdin to the process.
type Runner func(ctx context.Context, name string, args []string, stdin string) error

// CommandEngine drives a TTS program installed on the host. Text is passed on
// stdin so it never needs shell quoting.
type CommandEngine struct {
	kind    string
	command string
	run     Runner
}

// NewCommandEngine resolves the binary for kind (espeak, say or sapi).
// An empty command picks the usual binary name for that kind.
func NewCommandEngine(kind, command string) (*CommandEngine, error) {
	return newCommandEngine(kind, command, exec.LookPath, runCommand)
}

func newCommandEngine(kind, command string, lookPath func(string) (string, error), run Runner) (*CommandEngine, error) {
	var candidates []string
	switch kind {
	case kindEspeak:
		candidates = []string{"espeak-ng", "espeak"}
	case kindSay:
		candidates = []string{"say"}
	case kindSAPI:
		candidates = []string{"powershell", "pwsh"}
	default:
		return nil, fmt.Errorf("unsupported tts engine: %s", kind)
	}
	if c := strings.TrimSpace(command); c != "" {
		candidates = []string{c}
	}

	var lastErr error
	for _, c := range candidates {
		resolved, err := lookPath(c)
		if err == nil {
			return &CommandEngine{kind: kind, command: resolved, run: run}, nil
		}
		lastErr = err
	}
	return nil, fmt.Errorf("%w: %s engine not available: %w", ErrSpeechFailed, kind, lastErr)
}

func (e *CommandEngine) Name() string { return e.kind }

// Speak blocks until the program exits. Empty text is a no-op.
func (e *CommandEngine) Speak(ctx context.Context, req Request) error {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil
	}
	req.Text = text

	var args []string
	stdin := text
	switch e.kind {
	case kindEspeak:
		args = espeakArgs(req)
	case kindSay:
		args, stdin = sayArgs(req)
	case kindSAPI:
		args = sapiArgs(req)
	}

	if err := e.run(ctx, e.command, args, stdin); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrSpeechFailed, e.kind, err)
	}
	return nil
}

func espeakArgs(req Request) []string {
	args := []string{"--stdin"}
	if req.Voice != "" {
		args = append(args, "-v", req.Voice)
	}
	if req.Rate > 0 {
		args = append(args, "-s", strconv.Itoa(req.Rate))
	}
	if req.Volume > 0 {
		// espeak amplitude runs 0..200 with 100 as normal.
		amp := int(math.Round(math.Min(req.Volume, 2) * 100))
		args = append(args, "-a", strconv.Itoa(amp))
	}
	return args
}

func sayArgs(req Request) ([]string, string) {
	var args []string
	if req.Voice != "" {
		args = append(args, "-v", req.Voice)
	}
	if req.Rate > 0 {
		args = append(args, "-r", strconv.Itoa(req.Rate))
	}
	args = append(args, "-f", "-")
	text := req.Text
	if req.Volume > 0 && req.Volume < 1 {
		text = fmt.Sprintf("[[volm %.2f]] %s", req.Volume, text)
	}
	return args, text
}

func sapiArgs(req Request) []string {
	var b strings.Builder
	b.WriteString("Add-Type -AssemblyName System.Speech; ")
	b.WriteString("$s = New-Object System.Speech.Synthesis.SpeechSynthesizer; ")
	if req.Voice != "" {
		fmt.Fprintf(&b, "$s.SelectVoice('%s'); ", strings.ReplaceAll(req.Voice, "'", "''"))
	}
	if req.Rate > 0 {
		fmt.Fprintf(&b, "$s.Rate = %d; ", sapiRate(req.Rate))
	}
	if req.Volume > 0 {
		fmt.Fprintf(&b, "$s.Volume = %d; ", int(math.Round(math.Min(req.Volume, 1)*100)))
	}
	b.WriteString("$s.Speak([Console]::In.ReadToEnd())")
	return []string{"-NoProfile", "-NonInteractive", "-Command", b.String()}
}

// sapiRate maps words per minute onto SAPI's -10..10 scale, 175 wpm being 0.
// The slow side spans 0..175 and the fast side 175..425, so each gets its own step.
func sapiRate(wpm int) int {
	step := 25.0
	if wpm < 175 {
		step = 17.5
	}
	r := int(math.Round(float64(wpm-175) / step))
	return max(-10, min(10, r))
}

func runCommand(ctx context.Context, name string, args []string, stdin string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = strings.NewReader(stdin)
	cmd.Stdout = io.Discard
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("%w: %s", err, msg)
		}
		return err
	}
	return nil
}
