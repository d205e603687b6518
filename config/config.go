package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	RabbitURL string

	// OrganizerTokens maps bearer tokens to organizer user ids. Stand-in for
	// the real auth collaborator; parsed from ORGANIZER_TOKENS as
	// "token:userID" pairs separated by commas.
	OrganizerTokens map[string]uint
}

func Load() *Config {
	// .env is optional; real deployments set env vars directly.
	_ = godotenv.Load()

	return &Config{
		ServerPort: getEnv("SERVER_PORT", "8080"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBName:     getEnv("DB_NAME", "event_checkin"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		RabbitURL: getEnv("RABBITMQ_URL", ""),

		OrganizerTokens: parseTokens(getEnv("ORGANIZER_TOKENS", "")),
	}
}

func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

func parseTokens(raw string) map[string]uint {
	tokens := make(map[string]uint)
	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		token, idStr, ok := strings.Cut(pair, ":")
		if !ok || token == "" {
			log.Printf("[config] skipping malformed ORGANIZER_TOKENS entry %q", pair)
			continue
		}
		id, err := strconv.ParseUint(idStr, 10, 64)
		if err != nil {
			log.Printf("[config] skipping ORGANIZER_TOKENS entry %q: bad user id", pair)
			continue
		}
		tokens[token] = uint(id)
	}
	return tokens
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
