package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Env struct {
	AppAddr string
	GinMode string

	DBUser string
	DBPass string
	DBHost string
	DBName string

	JWTSecret string

	GoogleClientEmail string
	GooglePrivateKey  string
	GoogleCalendarID  string
}

// LoadEnv reads configuration from the environment, with a local .env file
// as a development convenience. Missing values fall back to dev defaults.
func LoadEnv() Env {
	_ = godotenv.Load()

	return Env{
		AppAddr: getenv("APP_ADDR", ":8080"),
		GinMode: getenv("GIN_MODE", ""),

		DBUser: getenv("DB_USER", "root"),
		DBPass: getenv("DB_PASS", ""),
		DBHost: getenv("DB_HOST", "127.0.0.1:3306"),
		DBName: getenv("DB_NAME", "dreamhouse"),

		JWTSecret: getenv("JWT_SECRET", "super-secret-key-change-me"),

		GoogleClientEmail: getenv("GOOGLE_CLIENT_EMAIL", ""),
		// Private keys pasted into env files usually carry literal \n.
		GooglePrivateKey: strings.ReplaceAll(getenv("GOOGLE_PRIVATE_KEY", ""), `\n`, "\n"),
		GoogleCalendarID: getenv("GOOGLE_CALENDAR_ID", ""),
	}
}

// JWTSecretBytes returns the signing key in the form jwt wants it.
func (e Env) JWTSecretBytes() []byte {
	return []byte(e.JWTSecret)
}

// CalendarConfigured reports whether the Google Calendar mirror can run.
func (e Env) CalendarConfigured() bool {
	return e.GoogleClientEmail != "" && e.GooglePrivateKey != "" && e.GoogleCalendarID != ""
}

func getenv(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}
