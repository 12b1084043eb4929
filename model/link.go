package model

import (
	"database/sql"
	"time"
)

// AccountLink maps a Discord user to an iRacing account. One row per
// Discord user; re-linking overwrites.
type AccountLink struct {
	DiscordID         string        `db:"discord_id"`
	IRacingUsername   string        `db:"iracing_username"`
	IRacingCustomerID sql.NullInt64 `db:"iracing_customer_id"`
	CreatedAt         time.Time     `db:"created_at"`
}

// CustomerID returns the resolved iRacing customer id, or 0 when the
// link was stored before the identity could be resolved.
func (l AccountLink) CustomerID() int {
	if !l.IRacingCustomerID.Valid {
		return 0
	}
	return int(l.IRacingCustomerID.Int64)
}

// GuildConfig holds the per-guild leaderboard destination and the id of
// the last message this bot posted there. StatsMessageID is cleared when
// the tracked message is found to be gone.
type GuildConfig struct {
	GuildID        string         `db:"guild_id"`
	StatsChannelID sql.NullString `db:"stats_channel_id"`
	StatsMessageID sql.NullString `db:"stats_message_id"`
	CreatedAt      time.Time      `db:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at"`
}

// LeaderboardEntry is one ranked row. Derived on every cycle, never stored.
type LeaderboardEntry struct {
	DiscordID       string
	IRacingUsername string
	IRating         int
	SafetyRating    float64
	LicenseLevel    int
}
