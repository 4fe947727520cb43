package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	DefaultConfigFileName = "config.toml"
	DefaultDBName         = "lockin.db"
	DefaultLogName        = "lockin.log"
	DefaultPollInterval   = 30 * time.Second

	EnvConfig = "LOCKIN_CONFIG"
)

type Keymap struct {
	Quit     string `toml:"quit"`
	Add      string `toml:"add"`
	Up       string `toml:"up"`
	Down     string `toml:"down"`
	Edit     string `toml:"edit"`
	Delete   string `toml:"delete"`
	Complete string `toml:"complete"`
	Confirm  string `toml:"confirm"`
	Cancel   string `toml:"cancel"`
	NextTab  string `toml:"next_tab"`
	PrevTab  string `toml:"prev_tab"`
	NextTier string `toml:"next_tier"`
	PrevTier string `toml:"prev_tier"`
}

// Schema selects the form variant: which task types are offered and
// whether a due date is mandatory.
type Schema struct {
	TaskTypes       []string `toml:"task_types"`
	DefaultType     string   `toml:"default_type"`
	TaskDueRequired bool     `toml:"task_due_required"`
	NoteDueRequired bool     `toml:"note_due_required"`
}

type Config struct {
	DBPath            string `toml:"db_path"`
	LogPath           string `toml:"log_path"`
	LogLevel          string `toml:"log_level"`
	DefaultTab        string `toml:"default_tab"`
	StatsPollInterval string `toml:"stats_poll_interval"`
	Schema            Schema `toml:"schema"`
	Keys              Keymap `toml:"keys"`
}

// ResolveConfigPath picks $LOCKIN_CONFIG, then the XDG config dir, then
// ~/.config/lockin.
func ResolveConfigPath() string {
	if p := strings.TrimSpace(os.Getenv(EnvConfig)); p != "" {
		return p
	}
	if xdg := strings.TrimSpace(os.Getenv("XDG_CONFIG_HOME")); xdg != "" {
		return filepath.Join(xdg, "lockin", DefaultConfigFileName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return DefaultConfigFileName
	}
	return filepath.Join(home, ".config", "lockin", DefaultConfigFileName)
}

// LoadOrCreate reads the config at path, writing the defaults there on
// first launch. Relative db and log paths are resolved against the
// config directory.
func LoadOrCreate(path string) (Config, error) {
	cfg := defaultConfig()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return cfg, err
		}
		return cfg.resolve(path), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	if cfg.DBPath == "" {
		cfg.DBPath = DefaultDBName
	}
	if cfg.LogPath == "" {
		cfg.LogPath = DefaultLogName
	}
	if cfg.Schema.DefaultType == "" {
		cfg.Schema.DefaultType = "Reminder"
	}
	if _, err := cfg.PollInterval(); err != nil {
		return cfg, err
	}
	return cfg.resolve(path), nil
}

// PollInterval parses stats_poll_interval; empty means the default.
func (c Config) PollInterval() (time.Duration, error) {
	if strings.TrimSpace(c.StatsPollInterval) == "" {
		return DefaultPollInterval, nil
	}
	d, err := time.ParseDuration(c.StatsPollInterval)
	if err != nil {
		return 0, fmt.Errorf("stats_poll_interval: %w", err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("stats_poll_interval must be positive, got %s", d)
	}
	return d, nil
}

func (c Config) resolve(path string) Config {
	dir := filepath.Dir(path)
	if !filepath.IsAbs(c.DBPath) && !strings.HasPrefix(c.DBPath, "file:") {
		c.DBPath = filepath.Join(dir, c.DBPath)
	}
	if !filepath.IsAbs(c.LogPath) {
		c.LogPath = filepath.Join(dir, c.LogPath)
	}
	return c
}

func write(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultConfig() Config {
	return Config{
		DBPath:            DefaultDBName,
		LogPath:           DefaultLogName,
		LogLevel:          "info",
		DefaultTab:        "planner",
		StatsPollInterval: DefaultPollInterval.String(),
		Schema: Schema{
			TaskTypes:   []string{"Reminder", "Assignment", "Exam", "Project", "Meeting", "Personal"},
			DefaultType: "Reminder",
		},
		Keys: Keymap{
			Quit:     "q",
			Add:      "a",
			Up:       "k",
			Down:     "j",
			Edit:     "e",
			Delete:   "d",
			Complete: " ",
			Confirm:  "enter",
			Cancel:   "esc",
			NextTab:  "tab",
			PrevTab:  "shift+tab",
			NextTier: "]",
			PrevTier: "[",
		},
	}
}
