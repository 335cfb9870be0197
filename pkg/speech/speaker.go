package speech

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/japaniel/speakmeaning/pkg/worker"
)

// DefaultQueueSize bounds how many utterances may wait behind the one being spoken.
const DefaultQueueSize = 4

// Speaker queues utterances in front of an Engine and speaks them one at a time, in order.
type Speaker struct {
	engine   Engine
	defaults Request
	pool     *worker.Pool
	cancel   context.CancelFunc
	log      *slog.Logger
}

// NewSpeaker starts a single worker that feeds engine. Voice, rate and volume
// from cfg apply to every utterance.
func NewSpeaker(engine Engine, cfg Config, queue int, logger *slog.Logger) *Speaker {
	if queue <= 0 {
		queue = DefaultQueueSize
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	ctx, cancel := context.WithCancel(context.Background())
	s := &Speaker{
		engine:   engine,
		defaults: Request{Voice: cfg.Voice, Rate: cfg.Rate, Volume: cfg.Volume},
		pool:     worker.NewPool(1, queue),
		cancel:   cancel,
		log:      logger.With("component", "speech", "engine", engine.Name()),
	}
	s.pool.Start(ctx)
	return s
}

// Enqueue schedules text to be spoken and returns immediately. done, if not nil,
// is called from the speech goroutine once the engine finishes. Blank text is
// ignored and done is not called.
func (s *Speaker) Enqueue(text string, done func(error)) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	req := s.defaults
	req.Text = text

	err := s.pool.TrySubmit(func(ctx context.Context) error {
		err := s.engine.Speak(ctx, req)
		if err != nil {
			s.log.Warn("speak failed", slog.String("error", err.Error()))
		}
		if done != nil {
			done(err)
		}
		return err
	})
	switch {
	case errors.Is(err, worker.ErrPoolBusy):
		s.log.Warn("speech queue full; dropping text")
		return ErrQueueFull
	case errors.Is(err, worker.ErrPoolClosed):
		return ErrClosed
	}
	return err
}

// Say speaks text synchronously, bypassing the queue.
func (s *Speaker) Say(ctx context.Context, text string) error {
	req := s.defaults
	req.Text = text
	return s.engine.Speak(ctx, req)
}

// Close stops the current utterance, drops queued ones and waits for the worker to exit.
func (s *Speaker) Close() {
	s.cancel()
	s.pool.Close()
}
