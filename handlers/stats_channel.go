package handlers

import (
	"fmt"
	"log"

	"iracing-bot/bot"
	"iracing-bot/utils"

	"github.com/bwmarrin/discordgo"
)

// HandleStatsChannel enables or disables leaderboard posting for the
// guild. Admin-only; rejected before any state is touched.
func HandleStatsChannel(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	if !utils.IsPrivileged(callerPermission(i, b)) {
		utils.SendErrorResponse(s, i, "You do not have permission to use this command.")
		return
	}

	options := i.ApplicationCommandData().Options
	if len(options) == 0 {
		utils.SendErrorResponse(s, i, "Missing subcommand.")
		return
	}

	switch options[0].Name {
	case "set":
		channel := optionMap(options[0].Options)["channel"].ChannelValue(s)
		if err := b.Store.UpsertGuildConfig(i.GuildID, channel.ID); err != nil {
			log.Printf("Error enabling leaderboard for guild %s: %v", i.GuildID, err)
			utils.SendErrorResponse(s, i, "An error occurred while configuring the leaderboard channel.")
			return
		}
		// Kick off the first post right away instead of waiting a full
		// timer interval.
		b.GetScheduler().Trigger(i.GuildID)
		utils.SendSimpleResponse(s, i, fmt.Sprintf("✅ Leaderboard will be posted in <#%s> and refreshed every %d minutes.",
			channel.ID, int(b.GetConfig().UpdateInterval.Minutes())))

	case "off":
		removed, err := b.Store.RemoveGuildConfig(i.GuildID)
		if err != nil {
			log.Printf("Error disabling leaderboard for guild %s: %v", i.GuildID, err)
			utils.SendErrorResponse(s, i, "An error occurred while disabling the leaderboard.")
			return
		}
		if !removed {
			utils.SendErrorResponse(s, i, "No leaderboard channel is configured for this server.")
			return
		}
		utils.SendSimpleResponse(s, i, "✅ Leaderboard posting disabled for this server.")

	default:
		utils.SendErrorResponse(s, i, "Unknown subcommand.")
	}
}
