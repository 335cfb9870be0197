package config

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strings"

	"github.com/japaniel/speakmeaning/pkg/speech"
)

var (
	logLevels  = []string{"debug", "info", "warn", "error"}
	logFormats = []string{"text", "json"}
)

// Validate checks value ranges and enumerations. All problems are reported together.
func (c *Config) Validate() error {
	var errs []error

	if u, err := url.Parse(c.Dictionary.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("dictionary.base_url: invalid url %q", c.Dictionary.BaseURL))
	}
	if c.Dictionary.Timeout <= 0 {
		errs = append(errs, errors.New("dictionary.timeout: must be positive"))
	}
	if c.Dictionary.Retries < 0 {
		errs = append(errs, errors.New("dictionary.retries: must not be negative"))
	}
	if c.Dictionary.CacheSize < 0 {
		errs = append(errs, errors.New("dictionary.cache_size: must not be negative"))
	}
	if c.Lookup.Workers <= 0 {
		errs = append(errs, errors.New("lookup.workers: must be positive"))
	}
	if !slices.Contains(speech.Engines, strings.ToLower(c.Speech.Engine)) {
		errs = append(errs, fmt.Errorf("speech.engine: must be one of %s", strings.Join(speech.Engines, ", ")))
	}
	if c.Speech.Rate <= 0 {
		errs = append(errs, errors.New("speech.rate: must be positive"))
	}
	if c.Speech.Volume < 0 || c.Speech.Volume > 1 {
		errs = append(errs, errors.New("speech.volume: must be between 0 and 1"))
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, errors.New("window: width and height must be positive"))
	}
	if !slices.Contains(logLevels, strings.ToLower(c.Log.Level)) {
		errs = append(errs, fmt.Errorf("log.level: must be one of %s", strings.Join(logLevels, ", ")))
	}
	if !slices.Contains(logFormats, strings.ToLower(c.Log.Format)) {
		errs = append(errs, fmt.Errorf("log.format: must be one of %s", strings.Join(logFormats, ", ")))
	}

	return errors.Join(errs...)
}

// SpeechEngineConfig converts the speech section for the speech package.
func (c *Config) SpeechEngineConfig() speech.Config {
	return speech.Config{
		Engine:  c.Speech.Engine,
		Command: c.Speech.Command,
		Voice:   c.Speech.Voice,
		Rate:    c.Speech.Rate,
		Volume:  c.Speech.Volume,
	}
}
