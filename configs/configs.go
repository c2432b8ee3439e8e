package configs

import (
	"errors"

	"github.com/spf13/viper"
)

type Configs struct {
	WebServerPort       string   `mapstructure:"WEB_SERVER_PORT"`
	RedirectURI         string   `mapstructure:"REDIRECT_URI"`
	ClientSecretsFile   string   `mapstructure:"CLIENT_SECRETS_FILE"`
	GoogleClientID      string   `mapstructure:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret  string   `mapstructure:"GOOGLE_CLIENT_SECRET"`
	JWTSecret           string   `mapstructure:"JWT_SECRET"`
	SessionTTL          int      `mapstructure:"SESSION_TTL"`       // Seconds; credential and snapshots expire with the session
	RateLimitDelay      float64  `mapstructure:"RATE_LIMIT_DELAY"`  // Seconds between language-model calls
	OpenAIAPIKey        string   `mapstructure:"OPENAI_API_KEY"`
	OpenAIModel         string   `mapstructure:"OPENAI_MODEL"`
	EmailTo             string   `mapstructure:"EMAIL_TO"`
	EmailFrom           string   `mapstructure:"EMAIL_FROM"`
	MailProvider        string   `mapstructure:"MAIL_PROVIDER"` // gmail, smtp or mailjet
	SMTPHost            string   `mapstructure:"SMTP_HOST"`
	SMTPPort            int      `mapstructure:"SMTP_PORT"`
	SMTPUser            string   `mapstructure:"SMTP_USER"`
	SMTPPass            string   `mapstructure:"SMTP_PASS"`
	MailjetAPIKey       string   `mapstructure:"MAILJET_API_KEY"`
	MailjetAPISecret    string   `mapstructure:"MAILJET_API_SECRET"`
	BackupDir           string   `mapstructure:"BACKUP_DIR"`
	BackupRetentionDays int      `mapstructure:"BACKUP_RETENTION_DAYS"`
	CronExpression      string   `mapstructure:"CRON_EXPRESSION"` // Retention sweep schedule (6 fields with seconds)
	RedisURL            string   `mapstructure:"REDIS_URL"`
	RedisHost           string   `mapstructure:"REDIS_HOST"`
	RedisPort           string   `mapstructure:"REDIS_PORT"`
	RedisPassword       string   `mapstructure:"REDIS_PASSWORD"`
	RedisDB             int      `mapstructure:"REDIS_DB"`
	TwilioAccountSID    string   `mapstructure:"TWILIO_ACCOUNT_SID"`
	TwilioAuthToken     string   `mapstructure:"TWILIO_AUTH_TOKEN"`
	TwilioNumber        string   `mapstructure:"TWILIO_NUMBER"`
	SyncAlertPhone      string   `mapstructure:"SYNC_ALERT_PHONE"`
	AlertRecipients     []string `mapstructure:"ALERT_RECIPIENTS"`
	LogPath             string   `mapstructure:"LOG_PATH"`
}

// ErrMissingRedirectURI aborts startup: without the OAuth redirect target the
// authorization flow can never complete.
var ErrMissingRedirectURI = errors.New("REDIRECT_URI is required")

func LoadConfig(path string) (*Configs, error) {
	var cfg *Configs
	viper.SetConfigName("app_config")
	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	viper.SetDefault("WEB_SERVER_PORT", ":8080")
	viper.SetDefault("CLIENT_SECRETS_FILE", "client_secrets.json")
	viper.SetDefault("SESSION_TTL", 43200) // 12 hours
	viper.SetDefault("RATE_LIMIT_DELAY", 0.2)
	viper.SetDefault("OPENAI_MODEL", "gpt-4")
	viper.SetDefault("MAIL_PROVIDER", "gmail")
	viper.SetDefault("BACKUP_DIR", "backups")
	viper.SetDefault("BACKUP_RETENTION_DAYS", 30)

	// Retention sweep at 3:00 AM every day
	viper.SetDefault("CRON_EXPRESSION", "0 0 3 * * *")

	viper.SetDefault("REDIS_HOST", "")
	viper.SetDefault("REDIS_PORT", "6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)

	viper.SetDefault("LOG_PATH", "")
	viper.SetDefault("ALERT_RECIPIENTS", []string{})

	err := viper.ReadInConfig()
	if err != nil {
		return nil, err
	}
	err = viper.Unmarshal(&cfg)
	if err != nil {
		return nil, err
	}

	if cfg.RedirectURI == "" {
		return nil, ErrMissingRedirectURI
	}

	return cfg, nil
}
