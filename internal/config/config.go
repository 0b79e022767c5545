package config

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

// getEnv reads a required env var. It fails fast if the var is not set.
func getEnv(key string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	log.Fatalf("Error: Required environment variable %s is not set.", key)
	return "" // This line is never reached
}

// getEnvOr reads an optional env var with a fallback.
func getEnvOr(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// Load reads the full configuration from environment variables and .env
// file. The DailyGammon credentials are required.
func Load() Config {
	cfg := LoadLocal()
	cfg.Login = getEnv("DG_LOGIN")
	cfg.Password = getEnv("DG_PW")
	return cfg
}

// LoadLocal reads the configuration subset for commands that never contact
// DailyGammon, so no credentials are demanded.
func LoadLocal() Config {
	err := godotenv.Load()
	if err != nil {
		log.Info("No .env file found, reading from environment variables")
	}

	return Config{
		Season:  getEnvOr("DG_SEASON", "34"),
		DataDir: getEnvOr("DG_DATA_DIR", "."),
		DBName:  getEnvOr("DG_DB_NAME", "gammonsync.db"),
		Slack: SlackConfig{
			Token:     getEnvOr("SLACK_BOT_TOKEN", ""),
			ChannelID: getEnvOr("SLACK_CHANNEL_ID", ""),
		},
		Turso: TursoConfig{
			PrimaryURL: getEnvOr("TURSO_PRIMARY_URL", ""),
			AuthToken:  getEnvOr("TURSO_AUTH_TOKEN", ""),
		},
		PushgatewayURL: getEnvOr("PUSHGATEWAY_URL", ""),
	}
}
