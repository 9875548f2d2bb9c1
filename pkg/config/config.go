package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"summarybot/pkg/domain"
)

// Config holds every runtime setting, loaded from the environment with an
// optional .env file for local runs.
type Config struct {
	// Telegram
	TelegramToken  string
	AllowedUsers   []int64 // empty means everyone
	ShowProcessing bool

	// Primary chat completion provider (OpenAI-compatible)
	LLMAPIKey  string
	LLMBaseURL string
	LLMModel   string

	// Secondary provider, used only on explicit request
	SecondaryAPIKey  string
	SecondaryBaseURL string
	SecondaryModel   string

	// Audio transcription
	GroqAPIKey       string
	UseAudioFallback bool

	// Processing
	Language  domain.Language
	ChunkSize int
	TmpDir    string

	// Persistence (optional)
	MongoURI        string
	MongoDatabase   string
	MongoCollection string

	// Email notifications (optional)
	EnableEmail  bool
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	EmailFrom    string
	EmailTo      string
	EmailCC      []string

	// Discord notifications (optional)
	EnableDiscord     bool
	DiscordWebhookURL string
}

// Load reads configuration from the environment. A .env file in the working
// directory is merged in when present; real environment variables win.
func Load() (*Config, error) {
	if err := godotenv.Load(); err == nil {
		log.Printf("config: loaded .env file")
	}

	cfg := &Config{
		TelegramToken:  os.Getenv("TELEGRAM_TOKEN"),
		AllowedUsers:   parseUserIDs(os.Getenv("ALLOWED_USERS")),
		ShowProcessing: parseBool(os.Getenv("SHOW_PROCESSING"), true),

		LLMAPIKey:  os.Getenv("OPENAI_API_KEY"),
		LLMBaseURL: os.Getenv("LLM_BASE_URL"),
		LLMModel:   os.Getenv("LLM_MODEL"),

		SecondaryAPIKey:  os.Getenv("SECONDARY_API_KEY"),
		SecondaryBaseURL: os.Getenv("SECONDARY_BASE_URL"),
		SecondaryModel:   os.Getenv("SECONDARY_MODEL"),

		GroqAPIKey:       os.Getenv("GROQ_API_KEY"),
		UseAudioFallback: parseBool(os.Getenv("USE_AUDIO_FALLBACK"), false),

		Language:  domain.Language(getEnvDefault("TS_LANG", string(domain.LangZhTW))),
		ChunkSize: parseInt(os.Getenv("CHUNK_SIZE"), 0),
		TmpDir:    os.Getenv("TMP_DIR"),

		MongoURI:        os.Getenv("MONGO_URI"),
		MongoDatabase:   getEnvDefault("MONGO_DATABASE", "summarybot"),
		MongoCollection: getEnvDefault("MONGO_COLLECTION", "summaries"),

		EnableEmail:  parseBool(os.Getenv("ENABLE_EMAIL"), false),
		SMTPHost:     os.Getenv("SMTP_HOST"),
		SMTPPort:     parseInt(os.Getenv("SMTP_PORT"), 465),
		SMTPUsername: os.Getenv("SMTP_USERNAME"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		EmailFrom:    os.Getenv("EMAIL_FROM"),
		EmailTo:      os.Getenv("EMAIL_TO"),
		EmailCC:      parseList(os.Getenv("EMAIL_CC")),

		EnableDiscord:     parseBool(os.Getenv("ENABLE_DISCORD_WEBHOOK"), false),
		DiscordWebhookURL: os.Getenv("DISCORD_WEBHOOK_URL"),
	}

	if !cfg.Language.Supported() {
		log.Printf("config: unsupported TS_LANG %q, falling back to %s", cfg.Language, domain.LangZhTW)
		cfg.Language = domain.LangZhTW
	}

	return cfg, cfg.validate()
}

func (c *Config) validate() error {
	if c.TelegramToken == "" {
		return fmt.Errorf("TELEGRAM_TOKEN is required")
	}
	if c.LLMAPIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY is required")
	}
	if c.UseAudioFallback && c.GroqAPIKey == "" {
		return fmt.Errorf("GROQ_API_KEY is required when USE_AUDIO_FALLBACK is on")
	}
	if c.EnableEmail && (c.SMTPHost == "" || c.EmailTo == "") {
		return fmt.Errorf("SMTP_HOST and EMAIL_TO are required when ENABLE_EMAIL is on")
	}
	if c.EnableDiscord && c.DiscordWebhookURL == "" {
		return fmt.Errorf("DISCORD_WEBHOOK_URL is required when ENABLE_DISCORD_WEBHOOK is on")
	}
	return nil
}

// UserAllowed reports whether a Telegram user may use the bot. An empty
// allow-list admits everyone.
func (c *Config) UserAllowed(userID int64) bool {
	if len(c.AllowedUsers) == 0 {
		return true
	}
	for _, id := range c.AllowedUsers {
		if id == userID {
			return true
		}
	}
	return false
}

func getEnvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseBool(v string, fallback bool) bool {
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func parseInt(v string, fallback int) int {
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func parseList(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseUserIDs(v string) []int64 {
	ids := make([]int64, 0)
	for _, p := range parseList(v) {
		id, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			log.Printf("config: skipping invalid user id %q", p)
			continue
		}
		ids = append(ids, id)
	}
	return ids
}
