package leaderboard

import (
	"testing"
	"time"

	"iracing-bot/model"

	"github.com/stretchr/testify/assert"
)

func TestBuildEmbedRendersEntries(t *testing.T) {
	entries := []model.LeaderboardEntry{
		{DiscordID: "1", IRacingUsername: "fast_driver", IRating: 2400, SafetyRating: 3.87, LicenseLevel: 18},
		{DiscordID: "2", IRacingUsername: "slow_driver", IRating: 1500, SafetyRating: 2.10, LicenseLevel: 8},
	}
	resolve := func(discordID string) string {
		if discordID == "1" {
			return "Fast Friend"
		}
		return ""
	}

	embed := BuildEmbed(entries, 2, 30*time.Minute, resolve)

	assert.Equal(t, "🏁 iRacing Leaderboard (Road)", embed.Title)
	assert.Contains(t, embed.Description, "1. **Fast Friend** (fast_driver)")
	assert.Contains(t, embed.Description, "iRating: 2400 | SR: 3.87 | License: 18")
	// Unresolvable display names fall back to the iRacing username.
	assert.Contains(t, embed.Description, "2. **slow_driver** (slow_driver)")
	assert.Equal(t, "Updates every 30 minutes", embed.Footer.Text)
}

func TestBuildEmbedNoLinkedAccounts(t *testing.T) {
	embed := BuildEmbed(nil, 0, 30*time.Minute, nil)
	assert.Contains(t, embed.Description, "No linked accounts found")
}

func TestBuildEmbedLinkedButUnranked(t *testing.T) {
	// Accounts exist but none produced ranked data; the /link prompt must
	// not be shown.
	embed := BuildEmbed(nil, 3, 30*time.Minute, nil)
	assert.NotContains(t, embed.Description, "No linked accounts found")
	assert.Contains(t, embed.Description, "No ranked road data")
}
