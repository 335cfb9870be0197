// Package config loads speakmeaning settings from YAML and the environment.
package config

import (
	"time"
)

// Config is the root application configuration.
type Config struct {
	Dictionary DictionaryConfig `yaml:"dictionary"`
	Lookup     LookupConfig     `yaml:"lookup"`
	Speech     SpeechConfig     `yaml:"speech"`
	Window     WindowConfig     `yaml:"window"`
	Log        LogConfig        `yaml:"log"`
}

// DictionaryConfig holds the dictionary service client settings.
type DictionaryConfig struct {
	BaseURL   string        `yaml:"base_url"   env:"SPEAKMEANING_DICTIONARY_URL"        env-default:"https://api.dictionaryapi.dev/api/v2/entries/en"`
	Timeout   time.Duration `yaml:"timeout"    env:"SPEAKMEANING_DICTIONARY_TIMEOUT"    env-default:"10s"`
	RateLimit int           `yaml:"rate_limit" env:"SPEAKMEANING_DICTIONARY_RATE_LIMIT" env-default:"5"`
	Retries   int           `yaml:"retries"    env:"SPEAKMEANING_DICTIONARY_RETRIES"    env-default:"2"`
	CacheSize int           `yaml:"cache_size" env:"SPEAKMEANING_DICTIONARY_CACHE_SIZE" env-default:"512"`
}

// LookupConfig sizes the background lookup pool.
type LookupConfig struct {
	Workers int `yaml:"workers" env:"SPEAKMEANING_LOOKUP_WORKERS" env-default:"2"`
	Queue   int `yaml:"queue"   env:"SPEAKMEANING_LOOKUP_QUEUE"   env-default:"4"`
}

// SpeechConfig selects and tunes the text-to-speech engine.
type SpeechConfig struct {
	Engine    string  `yaml:"engine"     env:"SPEAKMEANING_SPEECH_ENGINE"  env-default:"system"`
	Command   string  `yaml:"command"    env:"SPEAKMEANING_SPEECH_COMMAND"`
	Voice     string  `yaml:"voice"      env:"SPEAKMEANING_SPEECH_VOICE"`
	Rate      int     `yaml:"rate"       env:"SPEAKMEANING_SPEECH_RATE"    env-default:"175"`
	Volume    float64 `yaml:"volume"     env:"SPEAKMEANING_SPEECH_VOLUME"  env-default:"0.9"`
	QueueSize int     `yaml:"queue_size" env:"SPEAKMEANING_SPEECH_QUEUE"   env-default:"4"`
}

// WindowConfig holds the main window settings.
type WindowConfig struct {
	Title  string  `yaml:"title"  env:"SPEAKMEANING_WINDOW_TITLE"  env-default:"Speak the Meaning of Word"`
	Width  float32 `yaml:"width"  env:"SPEAKMEANING_WINDOW_WIDTH"  env-default:"720"`
	Height float32 `yaml:"height" env:"SPEAKMEANING_WINDOW_HEIGHT" env-default:"520"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"SPEAKMEANING_LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"SPEAKMEANING_LOG_FORMAT" env-default:"text"`
}
