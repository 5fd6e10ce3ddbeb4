package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Defaults for the polling loop and API endpoints.
const (
	DefaultHylableBaseURL  = "https://api.hylable.com/v1"
	DefaultMiroBaseURL     = "https://api.miro.com/v2"
	DefaultBackupPath      = "miro_board_backup.json"
	DefaultDisplayTimezone = "Asia/Tokyo"
	DefaultPollInterval    = 3 * time.Second
	DefaultPollTimeout     = 30 * time.Second
)

type Config struct {
	HylableAPIKey   string
	HylableBaseURL  string
	CourseID        string
	OutputDir       string // empty means ./<course-id> at fetch time
	DisplayTimezone string
	PollInterval    time.Duration
	PollTimeout     time.Duration

	MiroAccessToken string
	MiroBoardID     string
	MiroBaseURL     string
	MiroBackupPath  string
}

type fileConfig struct {
	HylableAPIKey   string `toml:"hylable_api_key"`
	HylableBaseURL  string `toml:"hylable_base_url"`
	CourseID        string `toml:"course_id"`
	OutputDir       string `toml:"output_dir"`
	DisplayTimezone string `toml:"display_timezone"`
	PollIntervalSec int    `toml:"poll_interval_sec"`
	PollTimeoutSec  int    `toml:"poll_timeout_sec"`
	MiroAccessToken string `toml:"miro_access_token"`
	MiroBoardID     string `toml:"miro_board_id"`
	MiroBaseURL     string `toml:"miro_base_url"`
}

// Load builds the config from defaults, then an optional config.toml, then
// a .env file in the working directory, then process environment variables.
// Later layers win.
func Load() (*Config, error) {
	cfg := &Config{
		HylableBaseURL:  DefaultHylableBaseURL,
		DisplayTimezone: DefaultDisplayTimezone,
		PollInterval:    DefaultPollInterval,
		PollTimeout:     DefaultPollTimeout,
		MiroBaseURL:     DefaultMiroBaseURL,
		MiroBackupPath:  DefaultBackupPath,
	}

	if configPath := configFilePath(); configPath != "" {
		var fc fileConfig
		if _, err := toml.DecodeFile(configPath, &fc); err == nil {
			if fc.HylableAPIKey != "" {
				cfg.HylableAPIKey = fc.HylableAPIKey
			}
			if fc.HylableBaseURL != "" {
				cfg.HylableBaseURL = fc.HylableBaseURL
			}
			if fc.CourseID != "" {
				cfg.CourseID = fc.CourseID
			}
			if fc.OutputDir != "" {
				cfg.OutputDir = expandTilde(fc.OutputDir)
			}
			if fc.DisplayTimezone != "" {
				cfg.DisplayTimezone = fc.DisplayTimezone
			}
			if fc.PollIntervalSec > 0 {
				cfg.PollInterval = time.Duration(fc.PollIntervalSec) * time.Second
			}
			if fc.PollTimeoutSec > 0 {
				cfg.PollTimeout = time.Duration(fc.PollTimeoutSec) * time.Second
			}
			if fc.MiroAccessToken != "" {
				cfg.MiroAccessToken = fc.MiroAccessToken
			}
			if fc.MiroBoardID != "" {
				cfg.MiroBoardID = fc.MiroBoardID
			}
			if fc.MiroBaseURL != "" {
				cfg.MiroBaseURL = fc.MiroBaseURL
			}
		}
	}

	// .env in the working directory, if present. godotenv never overrides
	// variables already set in the environment.
	_ = godotenv.Load()

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("HYLABLE_API_KEY"); v != "" {
		cfg.HylableAPIKey = v
	}
	if v := os.Getenv("HYLABLE_BASE_URL"); v != "" {
		cfg.HylableBaseURL = v
	}
	if v := os.Getenv("HYLABLE_COURSE_ID"); v != "" {
		cfg.CourseID = v
	}
	if v := os.Getenv("HYLABLE_OUTPUT_DIR"); v != "" {
		cfg.OutputDir = expandTilde(v)
	}
	if v := os.Getenv("HYLABLE_DISPLAY_TZ"); v != "" {
		cfg.DisplayTimezone = v
	}

	interval, err := secondsEnv("HYLABLE_POLL_INTERVAL_SEC")
	if err != nil {
		return err
	}
	if interval > 0 {
		cfg.PollInterval = interval
	}
	timeout, err := secondsEnv("HYLABLE_POLL_TIMEOUT_SEC")
	if err != nil {
		return err
	}
	if timeout > 0 {
		cfg.PollTimeout = timeout
	}

	if v := os.Getenv("MIRO_ACCESS_TOKEN"); v != "" {
		cfg.MiroAccessToken = v
	}
	if v := os.Getenv("MIRO_BOARD_ID"); v != "" {
		cfg.MiroBoardID = v
	}
	if v := os.Getenv("MIRO_BASE_URL"); v != "" {
		cfg.MiroBaseURL = v
	}
	if v := os.Getenv("OUTPUT_PATH"); v != "" {
		cfg.MiroBackupPath = v
	}
	return nil
}

// ValidateFetch checks everything the discussion fetcher needs before it
// makes any network call.
func (c *Config) ValidateFetch() error {
	if c.HylableAPIKey == "" {
		return errors.New("hylable API key not set: set HYLABLE_API_KEY or add hylable_api_key to config")
	}
	if c.CourseID == "" {
		return errors.New("course ID not set: pass --course, set HYLABLE_COURSE_ID, or add course_id to config")
	}
	return nil
}

// ValidateBackup checks everything the board backup needs before it makes
// any network call.
func (c *Config) ValidateBackup() error {
	if c.MiroAccessToken == "" {
		return errors.New("miro access token not set: set MIRO_ACCESS_TOKEN or add miro_access_token to config")
	}
	if c.MiroBoardID == "" {
		return errors.New("miro board ID not set: pass --board, set MIRO_BOARD_ID, or add miro_board_id to config")
	}
	return nil
}

// TranscriptDir resolves the transcript output directory, defaulting to a
// directory named after the course in the working directory.
func (c *Config) TranscriptDir() string {
	if c.OutputDir != "" {
		return c.OutputDir
	}
	return filepath.Join(".", c.CourseID)
}

func secondsEnv(key string) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return time.Duration(n) * time.Second, nil
}

func configFilePath() string {
	var configDir string
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		configDir = filepath.Join(xdg, "hylable-backup")
	} else if home, err := os.UserHomeDir(); err == nil {
		configDir = filepath.Join(home, ".config", "hylable-backup")
	} else {
		return ""
	}

	path := filepath.Join(configDir, "config.toml")
	if _, err := os.Stat(path); err == nil {
		return path
	}
	return ""
}

func expandTilde(path string) string {
	if len(path) > 1 && path[:2] == "~/" {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
