package store

import (
	"database/sql"
	"fmt"
	"iracing-bot/model"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// Store is the durable mapping of Discord users to iRacing accounts plus
// the per-guild leaderboard channel configuration.
type Store struct {
	db *sqlx.DB
}

// New opens the database at path and ensures the schema exists. Safe to
// call on every startup.
func New(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	db, err := sqlx.Connect("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := createTables(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return &Store{db: db}, nil
}

func createTables(db *sqlx.DB) error {
	usersSchema := `CREATE TABLE IF NOT EXISTS users (
	    discord_id TEXT NOT NULL PRIMARY KEY,
	    iracing_username TEXT NOT NULL,
	    iracing_customer_id INTEGER,
	    created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);`
	if _, err := db.Exec(usersSchema); err != nil {
		return err
	}

	guildConfigsSchema := `CREATE TABLE IF NOT EXISTS guild_configs (
	    guild_id TEXT NOT NULL PRIMARY KEY,
	    stats_channel_id TEXT,
	    stats_message_id TEXT,
	    created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	    updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);`
	_, err := db.Exec(guildConfigsSchema)
	return err
}

// Close closes the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// UpsertLink inserts or overwrites the link for a Discord user. A re-link
// keeps the original created_at so the user's position in the ranking
// tie-break order stays put.
func (s *Store) UpsertLink(discordID, iracingUsername string, customerID int) error {
	custID := sql.NullInt64{}
	if customerID > 0 {
		custID = sql.NullInt64{Int64: int64(customerID), Valid: true}
	}
	_, err := s.db.Exec(
		`INSERT INTO users (discord_id, iracing_username, iracing_customer_id) VALUES (?, ?, ?)
		 ON CONFLICT(discord_id) DO UPDATE SET
		     iracing_username = excluded.iracing_username,
		     iracing_customer_id = excluded.iracing_customer_id`,
		discordID, iracingUsername, custID,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert link for %s: %w", discordID, err)
	}
	return nil
}

// GetLink returns the link for a Discord user. The bool reports whether a
// link exists; a miss is not an error.
func (s *Store) GetLink(discordID string) (model.AccountLink, bool, error) {
	var link model.AccountLink
	err := s.db.Get(&link, `SELECT * FROM users WHERE discord_id = ?`, discordID)
	if err == sql.ErrNoRows {
		return model.AccountLink{}, false, nil
	}
	if err != nil {
		return model.AccountLink{}, false, fmt.Errorf("failed to get link for %s: %w", discordID, err)
	}
	return link, true, nil
}

// RemoveLink deletes the link for a Discord user and reports whether a
// row actually existed.
func (s *Store) RemoveLink(discordID string) (bool, error) {
	res, err := s.db.Exec(`DELETE FROM users WHERE discord_id = ?`, discordID)
	if err != nil {
		return false, fmt.Errorf("failed to remove link for %s: %w", discordID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ListLinks returns every stored link in insertion order.
func (s *Store) ListLinks() ([]model.AccountLink, error) {
	var links []model.AccountLink
	if err := s.db.Select(&links, `SELECT * FROM users ORDER BY created_at, discord_id`); err != nil {
		return nil, fmt.Errorf("failed to list links: %w", err)
	}
	return links, nil
}

// UpsertGuildConfig enables leaderboard posting for a guild in the given
// channel. Re-enabling the same channel keeps the tracked message id so
// the live leaderboard message is edited rather than duplicated; changing
// the channel clears it, since the old message lives elsewhere.
func (s *Store) UpsertGuildConfig(guildID, channelID string) error {
	_, err := s.db.Exec(
		`INSERT INTO guild_configs (guild_id, stats_channel_id, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(guild_id) DO UPDATE SET
		     stats_channel_id = excluded.stats_channel_id,
		     stats_message_id = CASE
		         WHEN guild_configs.stats_channel_id = excluded.stats_channel_id THEN guild_configs.stats_message_id
		         ELSE NULL
		     END,
		     updated_at = CURRENT_TIMESTAMP`,
		guildID, channelID,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert guild config for %s: %w", guildID, err)
	}
	return nil
}

// GetGuildConfig returns the leaderboard configuration for a guild.
func (s *Store) GetGuildConfig(guildID string) (model.GuildConfig, bool, error) {
	var cfg model.GuildConfig
	err := s.db.Get(&cfg, `SELECT * FROM guild_configs WHERE guild_id = ?`, guildID)
	if err == sql.ErrNoRows {
		return model.GuildConfig{}, false, nil
	}
	if err != nil {
		return model.GuildConfig{}, false, fmt.Errorf("failed to get guild config for %s: %w", guildID, err)
	}
	return cfg, true, nil
}

// RemoveGuildConfig disables leaderboard posting for a guild.
func (s *Store) RemoveGuildConfig(guildID string) (bool, error) {
	res, err := s.db.Exec(`DELETE FROM guild_configs WHERE guild_id = ?`, guildID)
	if err != nil {
		return false, fmt.Errorf("failed to remove guild config for %s: %w", guildID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ListEnabledGuilds returns only the guilds that have a stats channel set.
func (s *Store) ListEnabledGuilds() ([]model.GuildConfig, error) {
	var cfgs []model.GuildConfig
	err := s.db.Select(&cfgs, `SELECT * FROM guild_configs WHERE stats_channel_id IS NOT NULL ORDER BY guild_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list enabled guilds: %w", err)
	}
	return cfgs, nil
}

// UpdateStatsMessage records the id of the live leaderboard message for a
// guild. An empty messageID clears the reference.
func (s *Store) UpdateStatsMessage(guildID, messageID string) error {
	msgID := sql.NullString{}
	if messageID != "" {
		msgID = sql.NullString{String: messageID, Valid: true}
	}
	_, err := s.db.Exec(
		`UPDATE guild_configs SET stats_message_id = ?, updated_at = CURRENT_TIMESTAMP WHERE guild_id = ?`,
		msgID, guildID,
	)
	if err != nil {
		return fmt.Errorf("failed to update stats message for %s: %w", guildID, err)
	}
	return nil
}
