package leaderboard

import (
	"errors"
	"fmt"
	"log"

	"github.com/bwmarrin/discordgo"
)

// How far back the self-heal purge scans for stale bot messages. Messages
// older than this window are left behind; the cleanup is best-effort.
const purgeScanLimit = 100

// Messenger is the subset of discordgo.Session the publisher needs.
type Messenger interface {
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageEditEmbed(channelID, messageID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessages(channelID string, limit int, beforeID, afterID, aroundID string, options ...discordgo.RequestOption) ([]*discordgo.Message, error)
	ChannelMessageDelete(channelID, messageID string, options ...discordgo.RequestOption) error
}

// MessageTracker persists which message currently carries the leaderboard.
type MessageTracker interface {
	UpdateStatsMessage(guildID, messageID string) error
}

// Publisher keeps exactly one live leaderboard message per guild: it edits
// the tracked message in place and recreates it when it has been deleted
// out from under us.
type Publisher struct {
	Session   Messenger
	Tracker   MessageTracker
	BotUserID string
}

// Publish posts or updates the leaderboard message for a guild and returns
// the id of the live message. lastMessageID is the currently tracked id, or
// empty when no message exists yet.
//
// The tracked id is persisted only after the remote call succeeds. A crash
// between post and persist self-heals on the next cycle: the stale edit
// fails with not-found and the purge step removes the orphaned message.
func (p *Publisher) Publish(guildID, channelID, lastMessageID string, embed *discordgo.MessageEmbed) (string, error) {
	if lastMessageID != "" {
		_, err := p.Session.ChannelMessageEditEmbed(channelID, lastMessageID, embed)
		if err == nil {
			return lastMessageID, nil
		}
		if !isUnknownMessage(err) {
			return "", fmt.Errorf("failed to edit leaderboard message %s: %w", lastMessageID, err)
		}

		// The tracked message was deleted. Clear the stale reference before
		// creating a replacement so we never hold a dangling id, and sweep
		// out any other leftover bot messages in the channel.
		log.Printf("Leaderboard message %s in channel %s is gone, recreating", lastMessageID, channelID)
		if err := p.Tracker.UpdateStatsMessage(guildID, ""); err != nil {
			return "", fmt.Errorf("failed to clear stale message reference: %w", err)
		}
		p.purgeOwnMessages(channelID)
	}

	message, err := p.Session.ChannelMessageSendEmbed(channelID, embed)
	if err != nil {
		return "", fmt.Errorf("failed to send leaderboard message: %w", err)
	}
	if err := p.Tracker.UpdateStatsMessage(guildID, message.ID); err != nil {
		return "", fmt.Errorf("failed to persist message reference: %w", err)
	}
	return message.ID, nil
}

// purgeOwnMessages deletes bot-authored messages among the most recent
// purgeScanLimit messages in the channel. Failures are logged and skipped.
func (p *Publisher) purgeOwnMessages(channelID string) {
	messages, err := p.Session.ChannelMessages(channelID, purgeScanLimit, "", "", "")
	if err != nil {
		log.Printf("Error listing messages in channel %s for purge: %v", channelID, err)
		return
	}
	for _, m := range messages {
		if m.Author == nil || m.Author.ID != p.BotUserID {
			continue
		}
		if err := p.Session.ChannelMessageDelete(channelID, m.ID); err != nil {
			log.Printf("Error deleting stale leaderboard message %s: %v", m.ID, err)
		}
	}
}

func isUnknownMessage(err error) bool {
	var restErr *discordgo.RESTError
	if !errors.As(err, &restErr) {
		return false
	}
	if restErr.Message != nil && restErr.Message.Code == discordgo.ErrCodeUnknownMessage {
		return true
	}
	return restErr.Response != nil && restErr.Response.StatusCode == 404
}
