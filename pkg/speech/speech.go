// Package speech reads text aloud through an external text-to-speech engine.
package speech

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strings"
)

var (
	// ErrSpeechFailed is wrapped by every error the engines and the Speaker return.
	ErrSpeechFailed = errors.New("speech failed")
	ErrQueueFull    = fmt.Errorf("%w: speech queue full", ErrSpeechFailed)
	ErrClosed       = fmt.Errorf("%w: speaker closed", ErrSpeechFailed)
)

// Request is a single utterance.
type Request struct {
	Text  string
	Voice string // engine specific voice id; empty selects the engine default
	// Rate is the speaking rate in words per minute. Zero keeps the engine default.
	Rate int
	// Volume is in the range 0..1. Zero or less keeps the engine default.
	Volume float64
}

// Engine synthesizes and plays speech. Speak blocks until playback finishes.
type Engine interface {
	Name() string
	Speak(ctx context.Context, req Request) error
}

// Config selects and tunes an engine.
type Config struct {
	// Engine is one of system, espeak, say, sapi, none.
	Engine string
	// Command overrides the engine binary (e.g. a full path to espeak-ng).
	Command string
	Voice   string
	Rate    int
	Volume  float64
}

// DefaultConfig returns conservative defaults: 175 words per minute at 90% volume.
func DefaultConfig() Config {
	return Config{
		Engine: "system",
		Rate:   175,
		Volume: 0.9,
	}
}

// Engines lists the accepted Config.Engine values.
var Engines = []string{"system", "espeak", "say", "sapi", "none"}

// New builds the engine named by cfg.Engine. "system" picks the platform engine.
func New(cfg Config) (Engine, error) {
	kind := strings.ToLower(strings.TrimSpace(cfg.Engine))
	if kind == "" || kind == "system" {
		kind = systemEngine(runtime.GOOS)
	}
	switch kind {
	case "none":
		return NoneEngine{}, nil
	case kindEspeak, kindSay, kindSAPI:
		return NewCommandEngine(kind, cfg.Command)
	default:
		return nil, fmt.Errorf("unsupported tts engine: %s", cfg.Engine)
	}
}

func systemEngine(goos string) string {
	switch goos {
	case "windows":
		return kindSAPI
	case "darwin":
		return kindSay
	default:
		return kindEspeak
	}
}

// NoneEngine discards everything it is asked to say.
type NoneEngine struct{}

func (NoneEngine) Name() string                         { return "none" }
func (NoneEngine) Speak(context.Context, Request) error { return nil }

// Unavailable returns an engine that fails every request with err. It stands in
// when the configured engine cannot be started, so the failure surfaces on Speak.
func Unavailable(err error) Engine {
	if !errors.Is(err, ErrSpeechFailed) {
		err = fmt.Errorf("%w: %w", ErrSpeechFailed, err)
	}
	return unavailableEngine{err: err}
}

type unavailableEngine struct{ err error }

func (unavailableEngine) Name() string                           { return "unavailable" }
func (e unavailableEngine) Speak(context.Context, Request) error { return e.err }
