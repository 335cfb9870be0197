package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "speakmeaning.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv(EnvPath, "")
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "https://api.dictionaryapi.dev/api/v2/entries/en", cfg.Dictionary.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.Dictionary.Timeout)
	assert.Equal(t, 512, cfg.Dictionary.CacheSize)
	assert.Equal(t, "system", cfg.Speech.Engine)
	assert.Equal(t, 175, cfg.Speech.Rate)
	assert.InDelta(t, 0.9, cfg.Speech.Volume, 1e-9)
	assert.Equal(t, "Speak the Meaning of Word", cfg.Window.Title)
	assert.InDelta(t, 720, cfg.Window.Width, 0.01)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestLoad_YAMLAndEnvOverride(t *testing.T) {
	path := writeConfig(t, `
dictionary:
  base_url: http://localhost:9999/entries
  retries: 5
speech:
  engine: none
  rate: 200
log:
  level: debug
  format: json
`)
	t.Setenv("SPEAKMEANING_SPEECH_RATE", "150")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9999/entries", cfg.Dictionary.BaseURL)
	assert.Equal(t, 5, cfg.Dictionary.Retries)
	assert.Equal(t, "none", cfg.Speech.Engine)
	assert.Equal(t, 150, cfg.Speech.Rate, "env wins over yaml")
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	// untouched keys still get defaults
	assert.Equal(t, 512, cfg.Dictionary.CacheSize)
}

func TestLoad_PathFromEnv(t *testing.T) {
	path := writeConfig(t, "speech:\n  engine: espeak\n")
	t.Setenv(EnvPath, path)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "espeak", cfg.Speech.Engine)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoad_InvalidValues(t *testing.T) {
	path := writeConfig(t, "speech:\n  volume: 1.5\n  engine: festival\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "speech.volume")
	assert.Contains(t, err.Error(), "speech.engine")
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Dictionary: DictionaryConfig{BaseURL: "https://example.com/x", Timeout: time.Second, CacheSize: 1},
			Lookup:     LookupConfig{Workers: 1},
			Speech:     SpeechConfig{Engine: "none", Rate: 175, Volume: 0.9},
			Window:     WindowConfig{Width: 10, Height: 10},
			Log:        LogConfig{Level: "info", Format: "text"},
		}
	}

	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"valid", func(*Config) {}, ""},
		{"bad url", func(c *Config) { c.Dictionary.BaseURL = "not a url" }, "dictionary.base_url"},
		{"zero timeout", func(c *Config) { c.Dictionary.Timeout = 0 }, "dictionary.timeout"},
		{"negative retries", func(c *Config) { c.Dictionary.Retries = -1 }, "dictionary.retries"},
		{"negative cache", func(c *Config) { c.Dictionary.CacheSize = -1 }, "dictionary.cache_size"},
		{"no workers", func(c *Config) { c.Lookup.Workers = 0 }, "lookup.workers"},
		{"zero rate", func(c *Config) { c.Speech.Rate = 0 }, "speech.rate"},
		{"negative volume", func(c *Config) { c.Speech.Volume = -0.1 }, "speech.volume"},
		{"engine case insensitive", func(c *Config) { c.Speech.Engine = "ESPEAK" }, ""},
		{"zero height", func(c *Config) { c.Window.Height = 0 }, "window"},
		{"bad level", func(c *Config) { c.Log.Level = "trace" }, "log.level"},
		{"bad format", func(c *Config) { c.Log.Format = "xml" }, "log.format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.want == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestSpeechEngineConfig(t *testing.T) {
	cfg := Config{Speech: SpeechConfig{Engine: "say", Voice: "Alex", Rate: 190, Volume: 0.5, Command: "/usr/bin/say"}}
	sc := cfg.SpeechEngineConfig()
	assert.Equal(t, "say", sc.Engine)
	assert.Equal(t, "Alex", sc.Voice)
	assert.Equal(t, 190, sc.Rate)
	assert.InDelta(t, 0.5, sc.Volume, 1e-9)
	assert.Equal(t, "/usr/bin/say", sc.Command)
}

func TestResolvePath(t *testing.T) {
	t.Setenv(EnvPath, "")
	path, required := resolvePath("")
	assert.Equal(t, DefaultPath, path)
	assert.False(t, required)

	path, required = resolvePath("/etc/speakmeaning.yaml")
	assert.Equal(t, "/etc/speakmeaning.yaml", path)
	assert.True(t, required)

	t.Setenv(EnvPath, "/tmp/env.yaml")
	path, required = resolvePath("")
	assert.Equal(t, "/tmp/env.yaml", path)
	assert.True(t, required)

	path, _ = resolvePath("/flag.yaml")
	assert.Equal(t, "/flag.yaml", path, "flag wins over env")
}

func TestLoad_DefaultFileInWorkingDir(t *testing.T) {
	t.Setenv(EnvPath, "")
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultPath), []byte("speech:\n  engine: say\n"), 0o600))
	t.Chdir(dir)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "say", cfg.Speech.Engine)
}
