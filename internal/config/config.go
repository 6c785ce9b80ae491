// Load envs from .env
// Provide scraper defaults
// Override paths and Telegram credentials from environment

package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	//Job Bank endpoints
	BaseURL    string
	SearchPath string

	//Browser behavior
	Headless        bool
	Timeout         time.Duration
	SelectorTimeout time.Duration
	PageDelay       time.Duration
	MaxRetries      int

	//Paths
	DataDir string
	DBPath  string

	//Optional Telegram reporting
	TelegramToken  string
	TelegramChatID int64
}

// Default returns the stock configuration for scraping jobbank.gc.ca.
func Default() *Config {
	return &Config{
		BaseURL:         "https://www.jobbank.gc.ca",
		SearchPath:      "/jobsearch/jobsearch",
		Headless:        true,
		Timeout:         30 * time.Second,
		SelectorTimeout: 10 * time.Second,
		PageDelay:       2 * time.Second,
		MaxRetries:      3,
		DataDir:         "data",
		DBPath:          filepath.Join("data", "jobbank.db"),
	}
}

func Load() *Config {
	_ = godotenv.Load()

	cfg := Default()

	//Override with env vars
	if dir := os.Getenv("JOBBANK_DATA_DIR"); dir != "" {
		cfg.DataDir = dir
		cfg.DBPath = filepath.Join(dir, "jobbank.db")
	}

	if path := os.Getenv("JOBBANK_DB_PATH"); path != "" {
		cfg.DBPath = path
	}

	if token := os.Getenv("TELEGRAM_BOT_TOKEN"); token != "" {
		cfg.TelegramToken = token
	}

	if chatID := os.Getenv("TELEGRAM_CHAT_ID"); chatID != "" {
		id, err := strconv.ParseInt(chatID, 10, 64)
		if err != nil {
			log.Fatalf("Invalid TELEGRAM_CHAT_ID: %v", err)
		}
		cfg.TelegramChatID = id
	}

	return cfg
}

// SearchURL is the job search endpoint without query parameters.
func (c *Config) SearchURL() string {
	return c.BaseURL + c.SearchPath
}

// TelegramEnabled reports whether both reporting credentials are present.
func (c *Config) TelegramEnabled() bool {
	return c.TelegramToken != "" && c.TelegramChatID != 0
}
