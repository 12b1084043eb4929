package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"iracing-bot/model"

	"github.com/joho/godotenv"
)

const defaultUpdateMinutes = 30

// Load loads the configuration from the environment. Missing required
// credentials abort startup with a clear diagnostic rather than allowing a
// degraded run.
func Load() *model.Config {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("Info: .env file not found, relying on environment variables")
	}

	token := os.Getenv("BOT_TOKEN")
	if token == "" {
		log.Fatal("Error: BOT_TOKEN environment variable not set")
	}

	iracingEmail := os.Getenv("IRACING_EMAIL")
	iracingPassword := os.Getenv("IRACING_PASSWORD")
	if iracingEmail == "" || iracingPassword == "" {
		log.Fatal("Error: IRACING_EMAIL and IRACING_PASSWORD environment variables must be set")
	}

	logChannelID := os.Getenv("LOG_CHANNEL_ID")
	if logChannelID == "" {
		log.Println("Warning: LOG_CHANNEL_ID not set, log channel reporting will be disabled")
	}

	databasePath := os.Getenv("DATABASE_PATH")
	if databasePath == "" {
		databasePath = "data/users.db"
	}

	updateMinutes := defaultUpdateMinutes
	if v := os.Getenv("UPDATE_INTERVAL_MINUTES"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 {
			log.Printf("Warning: Invalid UPDATE_INTERVAL_MINUTES value %q, using default of %d", v, defaultUpdateMinutes)
		} else {
			updateMinutes = parsed
		}
	}

	return &model.Config{
		BotToken:         token,
		IRacingEmail:     iracingEmail,
		IRacingPassword:  iracingPassword,
		LogChannelID:     logChannelID,
		DatabasePath:     databasePath,
		UpdateInterval:   time.Duration(updateMinutes) * time.Minute,
		DeveloperUserIDs: splitList(os.Getenv("DEVELOPER_USER_IDS")),
		AdminRoleIDs:     splitList(os.Getenv("ADMIN_ROLE_IDS")),
	}
}

func splitList(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
