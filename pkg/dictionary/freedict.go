package dictionary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/time/rate"

	"github.com/japaniel/speakmeaning/pkg/speakmeaning"
)

const (
	DefaultBaseURL   = "https://api.dictionaryapi.dev/api/v2/entries/en"
	DefaultTimeout   = 10 * time.Second
	DefaultRateLimit = 5 // requests per second
	DefaultRetries   = 2

	// Responses are small JSON documents; anything larger is treated as an error.
	maxBodySize = 2 * 1024 * 1024
)

// FreeDictionary looks words up in the Free Dictionary API (dictionaryapi.dev).
type FreeDictionary struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	retries    int
	backoff    time.Duration
	log        *slog.Logger
}

// Option configures a FreeDictionary.
type Option func(*FreeDictionary)

// WithBaseURL overrides the API endpoint (used by tests).
func WithBaseURL(baseURL string) Option {
	return func(c *FreeDictionary) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithTimeout sets the HTTP timeout for a single attempt.
func WithTimeout(timeout time.Duration) Option {
	return func(c *FreeDictionary) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *FreeDictionary) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithRateLimit sets the client-side rate limit. Zero or less disables limiting.
func WithRateLimit(requestsPerSecond int) Option {
	return func(c *FreeDictionary) {
		if requestsPerSecond <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 0)
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// WithRetries sets how many times a failed attempt (network error or 5xx) is retried.
func WithRetries(retries int, initialInterval time.Duration) Option {
	return func(c *FreeDictionary) {
		if retries >= 0 {
			c.retries = retries
		}
		if initialInterval > 0 {
			c.backoff = initialInterval
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *FreeDictionary) {
		if logger != nil {
			c.log = logger
		}
	}
}

// NewFreeDictionary creates a client with defaults suitable for interactive use.
func NewFreeDictionary(opts ...Option) *FreeDictionary {
	c := &FreeDictionary{
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		limiter:    rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		retries:    DefaultRetries,
		backoff:    500 * time.Millisecond,
		log:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.With("component", "freedict")
	return c
}

// Lookup fetches definitions, synonyms and antonyms for word.
// A word the service does not know yields an error wrapping ErrNotFound.
func (c *FreeDictionary) Lookup(ctx context.Context, word string) (Result, error) {
	word = NormalizeWord(word)
	if word == "" {
		return Result{}, ErrEmptyWord
	}

	reqURL := c.baseURL + "/" + url.PathEscape(word)
	var entries []apiEntry

	op := func() error {
		if err := c.limiter.Wait(ctx); err != nil {
			return backoff.Permanent(fmt.Errorf("rate limit wait: %w", err))
		}
		got, err := c.fetch(ctx, reqURL)
		if err != nil {
			return err
		}
		entries = got
		return nil
	}

	var policy backoff.BackOff = backoff.WithMaxRetries(c.newBackOff(), uint64(c.retries))
	policy = backoff.WithContext(policy, ctx)
	notify := func(err error, wait time.Duration) {
		c.log.WarnContext(ctx, "freedict retry", slog.String("word", word), slog.String("error", err.Error()), slog.Duration("wait", wait))
	}

	c.log.DebugContext(ctx, "freedict request", slog.String("word", word))
	if err := backoff.RetryNotify(op, policy, notify); err != nil {
		c.log.DebugContext(ctx, "freedict lookup failed", slog.String("word", word), slog.String("error", err.Error()))
		if errors.Is(err, ErrNotFound) {
			return Result{}, fmt.Errorf("%w for %q", ErrNotFound, word)
		}
		return Result{}, fmt.Errorf("%w: %s: %w", ErrLookupFailed, word, err)
	}

	result, err := mapEntries(word, entries)
	if err != nil {
		return Result{}, err
	}
	c.log.DebugContext(ctx, "freedict response",
		slog.String("word", word),
		slog.Int("parts_of_speech", len(result.Meanings)),
		slog.Int("synonyms", len(result.Synonyms)),
		slog.Int("antonyms", len(result.Antonyms)),
	)
	return result, nil
}

func (c *FreeDictionary) newBackOff() *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.backoff
	b.MaxElapsedTime = 0
	return b
}

// fetch performs one attempt. Errors that must not be retried are wrapped in backoff.Permanent.
func (c *FreeDictionary) fetch(ctx context.Context, reqURL string) ([]apiEntry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, backoff.Permanent(fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("User-Agent", speakmeaning.UserAgent())
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, backoff.Permanent(ctx.Err())
		}
		return nil, fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, backoff.Permanent(ErrNotFound)
	case resp.StatusCode >= http.StatusInternalServerError:
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return nil, backoff.Permanent(fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize+1))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if len(body) > maxBodySize {
		return nil, backoff.Permanent(fmt.Errorf("response exceeds %d bytes", maxBodySize))
	}

	var entries []apiEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, backoff.Permanent(fmt.Errorf("decode json: %w", err))
	}
	return entries, nil
}

// mapEntries merges all entries (one per etymology) into a single Result.
func mapEntries(word string, entries []apiEntry) (Result, error) {
	title := cases.Title(language.English)
	result := Result{Word: word, Meanings: make(map[string][]string)}
	if len(entries) > 0 && strings.TrimSpace(entries[0].Word) != "" {
		result.Word = strings.TrimSpace(entries[0].Word)
	}

	seenDefs := make(map[string]map[string]struct{})
	var syns, ants []string
	for _, entry := range entries {
		for _, m := range entry.Meanings {
			pos := title.String(strings.TrimSpace(m.PartOfSpeech))
			if pos == "" {
				pos = "Other"
			}
			if seenDefs[pos] == nil {
				seenDefs[pos] = make(map[string]struct{})
			}
			for _, d := range m.Definitions {
				def := strings.TrimSpace(d.Definition)
				if def != "" {
					if _, dup := seenDefs[pos][def]; !dup {
						seenDefs[pos][def] = struct{}{}
						result.Meanings[pos] = append(result.Meanings[pos], def)
					}
				}
				syns = append(syns, d.Synonyms...)
				ants = append(ants, d.Antonyms...)
			}
			syns = append(syns, m.Synonyms...)
			ants = append(ants, m.Antonyms...)
		}
	}

	if len(result.Meanings) == 0 {
		return Result{}, fmt.Errorf("%w for %q", ErrNotFound, word)
	}
	result.Synonyms = cleanTerms(word, syns)
	result.Antonyms = cleanTerms(word, ants)
	return result, nil
}
