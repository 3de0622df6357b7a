package config

import (
	"log"
	"strings"
	"sync"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const (
	placeholderDatabaseCreds = "username:password"
	placeholderRedditID      = "your_reddit_client_id"
	placeholderRedditSecret  = "your_reddit_client_secret"
)

type Config struct {
	App struct {
		Env         string   `env:"APP_ENV" env-default:"development"`
		Port        int      `env:"APP_PORT" env-default:"8000"`
		SentryUrl   string   `env:"SENTRY_URL"`
		CorsOrigins []string `env:"APP_CORS_ORIGINS" env-default:"*" env-separator:","`
	}
	Database struct {
		URL        string `env:"DATABASE_URL" env-description:"Postgres connection string; empty selects SQLite"`
		SQLitePath string `env:"DATABASE_SQLITE_PATH" env-default:"./reddit_sentiment.db"`
	}
	Reddit struct {
		ClientID     string        `env:"REDDIT_CLIENT_ID"`
		ClientSecret string        `env:"REDDIT_CLIENT_SECRET"`
		UserAgent    string        `env:"REDDIT_USER_AGENT" env-default:"RedditSentimentApp/1.0"`
		Timeout      time.Duration `env:"REDDIT_TIMEOUT" env-default:"10s"`
	}
	Emotion struct {
		ModelEnabled bool          `env:"EMOTION_MODEL_ENABLED" env-default:"false"`
		OpenAIKey    string        `env:"OPENAI_API_KEY"`
		OpenAIURL    string        `env:"OPENAI_BASE_URL"`
		Model        string        `env:"EMOTION_MODEL" env-default:"gpt-4o-mini"`
		LoadTimeout  time.Duration `env:"EMOTION_MODEL_LOAD_TIMEOUT" env-default:"30s"`
	}
	Trend struct {
		Timezone string `env:"TREND_TIMEZONE" env-default:"UTC"`
	}
	Scheduler struct {
		Topics   []string      `env:"SCHEDULER_TOPICS" env-separator:","`
		Interval time.Duration `env:"SCHEDULER_INTERVAL" env-default:"1h"`
		Limit    int           `env:"SCHEDULER_LIMIT" env-default:"10"`
	}
	NATS struct {
		URL     string `env:"NATS_URL"`
		Subject string `env:"NATS_SUBJECT" env-default:"analysis.completed"`
	}
	Telegram struct {
		Token  string `env:"TELEGRAM_TOKEN"`
		ChatID int64  `env:"TELEGRAM_CHAT_ID"`
	}
	RateLimit struct {
		Requests int           `env:"RATE_LIMIT_REQUESTS" env-default:"5"`
		Per      time.Duration `env:"RATE_LIMIT_PER" env-default:"1m"`
		Burst    int           `env:"RATE_LIMIT_BURST" env-default:"3"`
	}
}

var (
	once sync.Once
	cfg  *Config
)

func New() (*Config, error) {
	once.Do(func() {
		// .env is optional; real environment variables win over it.
		_ = godotenv.Load()

		cfg = &Config{}
		if err := cleanenv.ReadEnv(cfg); err != nil {
			help, _ := cleanenv.GetDescription(cfg, nil)
			log.Fatalf("Failed to read configuration: %v\n%v", err, help)
		}
	})
	return cfg, nil
}

// UseSQLite reports whether the embedded SQLite store should be used instead of Postgres.
func (c *Config) UseSQLite() bool {
	url := strings.TrimSpace(c.Database.URL)
	return url == "" || strings.Contains(url, placeholderDatabaseCreds)
}

// GetDSN returns the Postgres connection string. Heroku-style postgres:// URLs are
// normalized to postgresql://.
func (c *Config) GetDSN() string {
	url := strings.TrimSpace(c.Database.URL)
	if strings.HasPrefix(url, "postgres://") {
		url = "postgresql://" + strings.TrimPrefix(url, "postgres://")
	}
	return url
}

// RedditConfigured reports whether live Reddit credentials are present and are not
// the placeholder values shipped in .env.example.
func (c *Config) RedditConfigured() bool {
	id := strings.TrimSpace(c.Reddit.ClientID)
	secret := strings.TrimSpace(c.Reddit.ClientSecret)
	if id == "" || id == placeholderRedditID {
		return false
	}
	if secret == "" || secret == placeholderRedditSecret {
		return false
	}
	return true
}

// TrendLocation resolves the calendar used to bucket trend dates.
func (c *Config) TrendLocation() *time.Location {
	loc, err := time.LoadLocation(c.Trend.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
