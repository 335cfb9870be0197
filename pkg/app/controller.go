// Package app wires the dictionary and speech packages behind a UI-agnostic controller.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync/atomic"

	"github.com/japaniel/speakmeaning/pkg/dictionary"
	"github.com/japaniel/speakmeaning/pkg/worker"
)

// Status bar texts.
const (
	StatusReady     = "Ready"
	StatusLookingUp = "Looking up..."
)

// Messages shown to the user.
const (
	MsgEnterWord     = "Please enter a word."
	MsgNothingToSay  = "Nothing to speak."
	lookupErrorIntro = "An error occurred while looking up the word:\n"
)

// ErrBusy is returned when no lookup worker can take another request.
var ErrBusy = errors.New("app: too many lookups in flight")

// State is the controller's position in the lookup cycle.
type State int

const (
	Idle State = iota
	LookingUp
	DisplayingResult
	DisplayingError
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case LookingUp:
		return "looking up"
	case DisplayingResult:
		return "displaying result"
	case DisplayingError:
		return "displaying error"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// View is the surface the controller drives. All methods are called on the UI goroutine.
type View interface {
	SetBusy(busy bool)
	SetStatus(text string)
	SetSpeakEnabled(enabled bool)
	ShowResult(text string)
	ShowError(text string)
	ShowNotice(text string)
	ClearResult()
	ClearInput()
	Notify(title, message string)
}

// Speaker accepts text for asynchronous playback.
type Speaker interface {
	Enqueue(text string, done func(error)) error
}

// Options tune a Controller. Zero values pick sensible defaults.
type Options struct {
	// Workers and Queue size the lookup pool.
	Workers int
	Queue   int
	// Dispatch runs f on the UI goroutine. Defaults to calling f directly.
	Dispatch func(f func())
	Logger   *slog.Logger
}

// Controller implements the lookup and speech triggers. Its exported methods must
// be called from the UI goroutine; background work reports back through Dispatch.
type Controller struct {
	view     View
	lookuper dictionary.Lookuper
	speaker  Speaker
	dispatch func(func())
	pool     *worker.Pool
	log      *slog.Logger

	ctx    context.Context
	stop   context.CancelFunc
	closed atomic.Bool

	// owned by the UI goroutine
	state      State
	displayed  string
	generation uint64
	cancel     context.CancelFunc
}

// NewController starts the lookup workers. Call Close to stop them.
func NewController(view View, lookuper dictionary.Lookuper, speaker Speaker, opts Options) *Controller {
	if opts.Dispatch == nil {
		opts.Dispatch = func(f func()) { f() }
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if opts.Workers <= 0 {
		opts.Workers = 2
	}

	ctx, stop := context.WithCancel(context.Background())
	c := &Controller{
		view:     view,
		lookuper: lookuper,
		speaker:  speaker,
		dispatch: opts.Dispatch,
		pool:     worker.NewPool(opts.Workers, opts.Queue),
		log:      opts.Logger.With("component", "controller"),
		ctx:      ctx,
		stop:     stop,
	}
	c.pool.Start(ctx)
	return c
}

// State reports the current state.
func (c *Controller) State() State { return c.state }

// Displayed returns the text of the result currently on screen, or "" when no result is shown.
func (c *Controller) Displayed() string { return c.displayed }

// Lookup starts a background lookup of word. Any lookup still in flight is
// canceled and its result will be ignored.
func (c *Controller) Lookup(word string) {
	word = strings.TrimSpace(word)
	if word == "" {
		c.view.Notify("Input required", MsgEnterWord)
		return
	}
	if c.closed.Load() {
		return
	}

	c.abandon()
	gen := c.generation
	ctx, cancel := context.WithCancel(c.ctx)
	c.cancel = cancel

	c.state = LookingUp
	c.displayed = ""
	c.view.SetSpeakEnabled(false)
	c.view.SetBusy(true)
	c.view.SetStatus(StatusLookingUp)
	c.log.Debug("lookup started", slog.String("word", word), slog.Uint64("generation", gen))

	err := c.pool.TrySubmit(func(context.Context) error {
		res, err := c.lookuper.Lookup(ctx, word)
		if c.closed.Load() {
			return nil
		}
		c.dispatch(func() { c.finish(gen, word, res, err) })
		return nil
	})
	if err != nil {
		if errors.Is(err, worker.ErrPoolBusy) {
			err = ErrBusy
		}
		c.finish(gen, word, dictionary.Result{}, err)
	}
}

// Speak queues the displayed result for speech. Without a displayed result it
// only tells the user there is nothing to speak.
func (c *Controller) Speak() {
	if c.state != DisplayingResult || strings.TrimSpace(c.displayed) == "" {
		c.view.Notify("Info", MsgNothingToSay)
		return
	}
	gen := c.generation
	err := c.speaker.Enqueue(c.displayed, func(err error) {
		if err == nil || c.closed.Load() {
			return
		}
		c.dispatch(func() { c.speechFailed(gen, err) })
	})
	if err != nil {
		c.speechFailed(gen, err)
	}
}

// Clear cancels any pending lookup and resets the window to its initial state.
func (c *Controller) Clear() {
	c.abandon()
	c.state = Idle
	c.displayed = ""
	c.view.ClearInput()
	c.view.ClearResult()
	c.view.SetSpeakEnabled(false)
	c.view.SetBusy(false)
	c.view.SetStatus(StatusReady)
}

// Close cancels outstanding lookups and stops the workers. Results arriving
// afterwards are discarded.
func (c *Controller) Close() {
	if c.closed.Swap(true) {
		return
	}
	c.abandon()
	c.stop()
	c.pool.Close()
}

// abandon invalidates the in-flight lookup, if any.
func (c *Controller) abandon() {
	c.generation++
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

func (c *Controller) finish(gen uint64, word string, res dictionary.Result, err error) {
	if gen != c.generation {
		c.log.Debug("dropping stale lookup", slog.String("word", word), slog.Uint64("generation", gen))
		return
	}
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.view.SetBusy(false)
	c.view.SetStatus(StatusReady)

	if err != nil {
		c.log.Info("lookup failed", slog.String("word", word), slog.String("error", err.Error()))
		c.state = DisplayingError
		c.displayed = ""
		c.view.SetSpeakEnabled(false)
		c.view.ShowError(LookupErrorText(err))
		return
	}

	text := dictionary.FormatSummary(res)
	c.state = DisplayingResult
	c.displayed = text
	c.view.ShowResult(text)
	c.view.SetSpeakEnabled(true)
}

func (c *Controller) speechFailed(gen uint64, err error) {
	if errors.Is(err, context.Canceled) {
		return
	}
	c.log.Warn("speech failed", slog.String("error", err.Error()))
	if gen != c.generation || c.state != DisplayingResult {
		return
	}
	c.view.ShowNotice("Speech failed: " + err.Error())
}

// LookupErrorText renders a lookup failure the way the result area shows it.
func LookupErrorText(err error) string {
	return lookupErrorIntro + err.Error()
}
