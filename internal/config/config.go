package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration (env + Viper).
type Config struct {
	Env         string
	Port        string
	DatabaseURL string
	RedisURL    string

	CORSAllowedOrigins []string

	DiscogsToken          string
	DiscogsSellerUsername string
	DiscogsUserAgent      string
	EnableAutoSync        bool
	SyncIntervalHours     int

	GeminiAPIKey string
}

// Load loads config from env and optional .env file.
func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	port := viper.GetString("PORT")
	if port == "" {
		port = "3000"
	}
	env := viper.GetString("APP_ENV")
	if env == "" {
		env = "development"
	}

	dbURL := viper.GetString("DATABASE_URL")
	if env == "test" {
		dbURL = viper.GetString("DATABASE_URL_TEST")
	}

	interval := viper.GetInt("SYNC_INTERVAL_HOURS")
	if interval <= 0 {
		interval = 1
	}

	userAgent := viper.GetString("DISCOGS_USER_AGENT")
	if userAgent == "" {
		userAgent = "RecordShopBackend/1.0"
	}

	var corsOrigins []string
	if raw := viper.GetString("CORS_ALLOWED_ORIGINS"); raw != "" {
		for _, origin := range strings.Split(raw, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				corsOrigins = append(corsOrigins, origin)
			}
		}
	}

	return &Config{
		Env:         env,
		Port:        port,
		DatabaseURL: dbURL,
		RedisURL:    viper.GetString("REDIS_URL"),

		CORSAllowedOrigins: corsOrigins,

		DiscogsToken:          viper.GetString("DISCOGS_TOKEN"),
		DiscogsSellerUsername: viper.GetString("DISCOGS_SELLER_USERNAME"),
		DiscogsUserAgent:      userAgent,
		EnableAutoSync:        strings.EqualFold(viper.GetString("ENABLE_AUTO_SYNC"), "true"),
		SyncIntervalHours:     interval,

		GeminiAPIKey: viper.GetString("GEMINI_API_KEY"),
	}, nil
}
