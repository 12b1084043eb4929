package leaderboard

import (
	"fmt"
	"strings"
	"time"

	"iracing-bot/model"

	"github.com/bwmarrin/discordgo"
)

const embedColor = 0x3498db

// DisplayNameResolver maps a Discord user id to a human-readable name.
// Resolution failures fall back to the stored iRacing username.
type DisplayNameResolver func(discordID string) string

// BuildEmbed renders the ranked entries into the leaderboard embed.
// linkedCount is the raw number of in-scope links and drives the empty-state
// messaging: no links at all prompts for /link, while linked-but-unranked
// accounts get a different notice.
func BuildEmbed(entries []model.LeaderboardEntry, linkedCount int, interval time.Duration, resolve DisplayNameResolver) *discordgo.MessageEmbed {
	now := time.Now().UTC()
	embed := &discordgo.MessageEmbed{
		Title:     "🏁 iRacing Leaderboard (Road)",
		Color:     embedColor,
		Timestamp: now.Format(time.RFC3339),
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Updates every %d minutes", int(interval.Minutes())),
		},
	}

	switch {
	case linkedCount == 0:
		embed.Description = "No linked accounts found. Use `/link` to add your iRacing account!"
	case len(entries) == 0:
		embed.Description = "No ranked road data available yet for the linked accounts."
	default:
		var sb strings.Builder
		for i, entry := range entries {
			name := entry.IRacingUsername
			if resolve != nil {
				if resolved := resolve(entry.DiscordID); resolved != "" {
					name = resolved
				}
			}
			sb.WriteString(fmt.Sprintf("%d. **%s** (%s)\n", i+1, name, entry.IRacingUsername))
			sb.WriteString(fmt.Sprintf("   iRating: %d | SR: %.2f | License: %d\n\n", entry.IRating, entry.SafetyRating, entry.LicenseLevel))
		}
		embed.Description = sb.String()
	}

	return embed
}
