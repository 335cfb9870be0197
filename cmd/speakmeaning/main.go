package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/japaniel/speakmeaning/pkg/app"
	"github.com/japaniel/speakmeaning/pkg/config"
	"github.com/japaniel/speakmeaning/pkg/dictionary"
	"github.com/japaniel/speakmeaning/pkg/speakmeaning"
	"github.com/japaniel/speakmeaning/pkg/speech"
)

func main() {
	// Setup context for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	cancel()
	os.Exit(code)
}

// run parses args and either answers a single -word on stdout or opens the window.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("speakmeaning", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configFlag := fs.String("config", "", "Path to YAML config file (default $"+config.EnvPath+" or ./speakmeaning.yaml)")
	wordFlag := fs.String("word", "", "Look up a single word, print it and exit")
	speakFlag := fs.Bool("speak", false, "With -word, also read the result aloud")
	levelFlag := fs.String("log-level", "", "Override log level (debug, info, warn, error)")
	versionFlag := fs.Bool("version", false, "Print version and exit")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if *versionFlag {
		fmt.Fprintf(stdout, "speakmeaning %s\n", speakmeaning.Version())
		return 0
	}

	cfg, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(stderr, "Failed to load config: %v\n", err)
		return 1
	}
	if *levelFlag != "" {
		cfg.Log.Level = *levelFlag
	}
	logger := app.NewLogger(cfg.Log, stderr)

	lookuper, err := newLookuper(cfg, logger)
	if err != nil {
		logger.Error("failed to create dictionary client", slog.String("error", err.Error()))
		return 1
	}

	engine, err := speech.New(cfg.SpeechEngineConfig())
	if err != nil {
		logger.Warn("speech engine unavailable", slog.String("engine", cfg.Speech.Engine), slog.String("error", err.Error()))
		engine = speech.Unavailable(err)
	}

	if *wordFlag != "" {
		return lookupOnce(ctx, lookuper, engine, cfg, *wordFlag, *speakFlag, stdout, stderr, logger)
	}
	if *speakFlag {
		fmt.Fprintln(stderr, "-speak requires -word")
		return 2
	}

	logger.Info("starting", slog.String("version", speakmeaning.Version()), slog.String("engine", engine.Name()))
	return runGUI(ctx, cfg, lookuper, engine, logger)
}

func newLookuper(cfg *config.Config, logger *slog.Logger) (dictionary.Lookuper, error) {
	client := dictionary.NewFreeDictionary(
		dictionary.WithBaseURL(cfg.Dictionary.BaseURL),
		dictionary.WithTimeout(cfg.Dictionary.Timeout),
		dictionary.WithRateLimit(cfg.Dictionary.RateLimit),
		dictionary.WithRetries(cfg.Dictionary.Retries, 0),
		dictionary.WithLogger(logger),
	)
	return dictionary.NewCached(client, cfg.Dictionary.CacheSize)
}

// lookupOnce is the headless path: same lookup, formatting and speech as the window.
func lookupOnce(ctx context.Context, lookuper dictionary.Lookuper, engine speech.Engine, cfg *config.Config,
	word string, speak bool, stdout, stderr io.Writer, logger *slog.Logger) int {
	res, err := lookuper.Lookup(ctx, word)
	if err != nil {
		fmt.Fprintln(stdout, app.LookupErrorText(err))
		return 1
	}
	text := dictionary.FormatSummary(res)
	fmt.Fprintln(stdout, text)

	if !speak {
		return 0
	}
	sc := cfg.SpeechEngineConfig()
	req := speech.Request{Text: text, Voice: sc.Voice, Rate: sc.Rate, Volume: sc.Volume}
	if err := engine.Speak(ctx, req); err != nil {
		logger.Debug("speech failed", slog.String("engine", engine.Name()), slog.String("error", err.Error()))
		fmt.Fprintf(stderr, "Speech failed: %v\n", err)
		return 1
	}
	return 0
}
