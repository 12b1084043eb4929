package model

import "time"

// Config holds the process-wide configuration loaded at startup.
type Config struct {
	BotToken         string
	IRacingEmail     string
	IRacingPassword  string
	LogChannelID     string
	DatabasePath     string
	UpdateInterval   time.Duration
	DeveloperUserIDs []string
	AdminRoleIDs     []string
}
