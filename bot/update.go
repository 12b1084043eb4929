package bot

import (
	"context"
	"fmt"

	"iracing-bot/leaderboard"
	"iracing-bot/model"
	"iracing-bot/utils"
)

// ListEnabledGuilds returns the guilds with a leaderboard channel set.
func (b *Bot) ListEnabledGuilds() ([]model.GuildConfig, error) {
	return b.Store.ListEnabledGuilds()
}

// UpdateGuildLeaderboard runs one build-and-publish cycle for a guild.
// A guild with no leaderboard channel configured is a no-op.
func (b *Bot) UpdateGuildLeaderboard(ctx context.Context, guildID string) error {
	cfg, ok, err := b.Store.GetGuildConfig(guildID)
	if err != nil {
		return fmt.Errorf("failed to load guild config: %w", err)
	}
	if !ok || !cfg.StatsChannelID.Valid {
		return nil
	}

	members := newGuildMembers(b.Session, guildID)
	builder := &leaderboard.Builder{Links: b.Store, Stats: b.IRacing}
	entries, linked, err := builder.Build(ctx, members.Filter())
	if err != nil {
		return fmt.Errorf("failed to build leaderboard: %w", err)
	}

	embed := leaderboard.BuildEmbed(entries, linked, b.GetConfig().UpdateInterval, members.Resolve())

	publisher := &leaderboard.Publisher{
		Session:   b.Session,
		Tracker:   b.Store,
		BotUserID: b.Session.State.User.ID,
	}
	if _, err := publisher.Publish(guildID, cfg.StatsChannelID.String, cfg.StatsMessageID.String, embed); err != nil {
		utils.LogError(b.Session, b.GetConfig().LogChannelID, "Leaderboard", "Publish", err.Error())
		return fmt.Errorf("failed to publish leaderboard: %w", err)
	}
	return nil
}
