package config

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Settings represents the application configuration persisted to disk.
type Settings struct {
	Server      ServerSettings     `json:"server"`
	Providers   ProviderSettings   `json:"providers"`
	Weather     WeatherSettings    `json:"weather"`
	Cache       CacheSettings      `json:"cache"`
	Suggestions SuggestionSettings `json:"suggestions"`
	Preview     PreviewSettings    `json:"preview"`
	Log         LogConfig          `json:"log"`
}

type ServerSettings struct {
	Host string `json:"host"`
	Port int    `json:"port"`
}

// ProviderSettings holds credentials and endpoints for the two movie data
// providers. Base URLs are configurable so tests can point at fakes.
type ProviderSettings struct {
	OMDBAPIKey  string `json:"omdbApiKey"`
	OMDBBaseURL string `json:"omdbBaseUrl"`
	TMDBAPIKey  string `json:"tmdbApiKey"`
	TMDBBaseURL string `json:"tmdbBaseUrl"`
	Language    string `json:"language"`
}

type WeatherSettings struct {
	BaseURL string `json:"baseUrl"`
}

type CacheSettings struct {
	Directory      string `json:"directory"`
	SearchTTLHours int    `json:"searchTtlHours"`
}

// SuggestionSettings controls the startup suggestion pipeline.
type SuggestionSettings struct {
	// FallbackQuery is the generic keyword searched when both the weather
	// path and the top-rated path fail.
	FallbackQuery string `json:"fallbackQuery"`
}

// PreviewSettings controls hover preview timing and panel geometry.
type PreviewSettings struct {
	ShowDelayMs  int     `json:"showDelayMs"`
	CloseDelayMs int     `json:"closeDelayMs"`
	PanelWidth   float64 `json:"panelWidth"`
	EdgeMargin   float64 `json:"edgeMargin"`
}

// LogConfig represents log file rotation configuration.
type LogConfig struct {
	File       string `json:"file"`
	MaxSize    int    `json:"maxSize"`
	MaxAge     int    `json:"maxAge"`
	MaxBackups int    `json:"maxBackups"`
	Compress   bool   `json:"compress"`
}

// DefaultSettings returns sane defaults for a fresh install.
func DefaultSettings() Settings {
	return Settings{
		Server: ServerSettings{Host: "0.0.0.0", Port: 7788},
		Providers: ProviderSettings{
			OMDBBaseURL: "https://www.omdbapi.com",
			TMDBBaseURL: "https://api.themoviedb.org/3",
			Language:    "en",
		},
		Weather:     WeatherSettings{BaseURL: "https://api.open-meteo.com/v1"},
		Cache:       CacheSettings{Directory: "cache", SearchTTLHours: 6},
		Suggestions: SuggestionSettings{FallbackQuery: "adventure"},
		Preview: PreviewSettings{
			ShowDelayMs:  700,
			CloseDelayMs: 300,
			PanelWidth:   360,
			EdgeMargin:   10,
		},
		Log: LogConfig{
			File:       "cache/logs/backend.log",
			MaxSize:    50,
			MaxBackups: 3,
			MaxAge:     7,
			Compress:   true,
		},
	}
}

// Manager loads and persists settings to a JSON file.
type Manager struct {
	path string
}

func NewManager(configPath string) *Manager {
	return &Manager{path: configPath}
}

// EnsureDir ensures parent directory exists.
func (m *Manager) EnsureDir() error {
	dir := filepath.Dir(m.path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

// Load reads settings from disk or creates defaults if missing.
func (m *Manager) Load() (Settings, error) {
	if m.path == "" {
		return Settings{}, errors.New("config path not set")
	}
	if _, err := os.Stat(m.path); errors.Is(err, fs.ErrNotExist) {
		defaults := DefaultSettings()
		if err := m.Save(defaults); err != nil {
			return Settings{}, err
		}
		return defaults, nil
	}
	f, err := os.Open(m.path)
	if err != nil {
		return Settings{}, err
	}
	defer f.Close()

	var s Settings
	if err := json.NewDecoder(f).Decode(&s); err != nil {
		return Settings{}, err
	}

	// Backfill defaults for settings introduced after the config was written
	if strings.TrimSpace(s.Providers.OMDBBaseURL) == "" {
		s.Providers.OMDBBaseURL = "https://www.omdbapi.com"
	}
	if strings.TrimSpace(s.Providers.TMDBBaseURL) == "" {
		s.Providers.TMDBBaseURL = "https://api.themoviedb.org/3"
	}
	if strings.TrimSpace(s.Providers.Language) == "" {
		s.Providers.Language = "en"
	}
	if strings.TrimSpace(s.Weather.BaseURL) == "" {
		s.Weather.BaseURL = "https://api.open-meteo.com/v1"
	}
	if strings.TrimSpace(s.Cache.Directory) == "" {
		s.Cache.Directory = "cache"
	}
	if s.Cache.SearchTTLHours == 0 {
		s.Cache.SearchTTLHours = 6
	}
	if strings.TrimSpace(s.Suggestions.FallbackQuery) == "" {
		s.Suggestions.FallbackQuery = "adventure"
	}
	if s.Preview.ShowDelayMs == 0 {
		s.Preview.ShowDelayMs = 700
	}
	if s.Preview.CloseDelayMs == 0 {
		s.Preview.CloseDelayMs = 300
	}
	if s.Preview.PanelWidth == 0 {
		s.Preview.PanelWidth = 360
	}
	if s.Preview.EdgeMargin == 0 {
		s.Preview.EdgeMargin = 10
	}
	if strings.TrimSpace(s.Log.File) == "" {
		s.Log.File = "cache/logs/backend.log"
	}
	if s.Log.MaxSize == 0 {
		s.Log.MaxSize = 50
	}
	if s.Log.MaxBackups == 0 {
		s.Log.MaxBackups = 3
	}
	if s.Log.MaxAge == 0 {
		s.Log.MaxAge = 7
	}

	return s, nil
}

// Save writes the provided settings to disk atomically.
func (m *Manager) Save(s Settings) error {
	if m.path == "" {
		return errors.New("config path not set")
	}
	if err := m.EnsureDir(); err != nil {
		return err
	}
	tmp := m.path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, m.path)
}
