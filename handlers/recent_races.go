package handlers

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"iracing-bot/bot"
	"iracing-bot/utils"

	"github.com/bwmarrin/discordgo"
)

const maxRecentRaces = 5

// HandleRecentRaces shows the caller's recent iRacing races.
func HandleRecentRaces(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	link, found, err := b.Store.GetLink(i.Member.User.ID)
	if err != nil {
		log.Printf("Error looking up link for %s: %v", i.Member.User.ID, err)
		utils.SendErrorResponse(s, i, "An error occurred while looking up your account.")
		return
	}
	if !found || link.CustomerID() == 0 {
		utils.SendErrorResponse(s, i, "No iRacing account linked. Use `/link` first.")
		return
	}

	if err := utils.DeferResponse(s, i, true); err != nil {
		log.Printf("Error deferring recent races response: %v", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	races, ok := b.IRacing.RecentRaces(ctx, link.CustomerID())
	if !ok {
		utils.SendFollowUpError(s, i.Interaction, "Could not retrieve recent races. Please try again later.")
		return
	}
	if len(races) == 0 {
		utils.SendFollowUp(s, i.Interaction, "No recent races found.")
		return
	}
	if len(races) > maxRecentRaces {
		races = races[:maxRecentRaces]
	}

	var sb strings.Builder
	for _, race := range races {
		fmt.Fprintf(&sb, "**%s** — %s\n", race.SeriesName, race.Track.TrackName)
		fmt.Fprintf(&sb, "   Finished P%d | Incidents: %d | %s\n\n", race.FinishPosition, race.Incidents, race.StartTime)
	}

	embed := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("Recent Races — %s", link.IRacingUsername),
		Description: sb.String(),
		Color:       0x3498db,
	}
	utils.SendFollowUpEmbed(s, i.Interaction, embed)
}
