package handlers

import (
	"context"
	"fmt"
	"log"
	"time"

	"iracing-bot/bot"
	"iracing-bot/model"
	"iracing-bot/utils"

	"github.com/bwmarrin/discordgo"
)

// Resolving plus fetching a summary is two serialized upstream calls that
// may queue behind a running leaderboard build.
const linkTimeout = 2 * time.Minute

// HandleLink resolves an iRacing identity for the given display name and
// stores the link. Linking on behalf of another user is admin-only.
func HandleLink(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	opts := optionMap(i.ApplicationCommandData().Options)
	username := opts["iracing_username"].StringValue()

	target := i.Member.User
	if opt, ok := opts["user"]; ok {
		requested := opt.UserValue(s)
		if requested.ID != target.ID {
			if !utils.IsPrivileged(callerPermission(i, b)) {
				utils.SendErrorResponse(s, i, "You do not have permission to link accounts for other users.")
				return
			}
			target = requested
		}
	}

	if err := utils.DeferResponse(s, i, false); err != nil {
		log.Printf("Error deferring link response: %v", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), linkTimeout)
	defer cancel()

	custID, ok := b.IRacing.ResolveMember(ctx, username)
	if !ok {
		utils.SendFollowUpError(s, i.Interaction, fmt.Sprintf("Could not find iRacing user: %s", username))
		return
	}

	summary, ok := b.IRacing.MemberSummary(ctx, custID)
	if !ok {
		utils.SendFollowUpError(s, i.Interaction, fmt.Sprintf("Could not retrieve data for iRacing user: %s", username))
		return
	}

	if err := b.Store.UpsertLink(target.ID, username, custID); err != nil {
		log.Printf("Error storing link for %s: %v", target.ID, err)
		utils.SendFollowUpError(s, i.Interaction, "An error occurred while linking the account. Please try again later.")
		return
	}

	embed := &discordgo.MessageEmbed{
		Title: "✅ Account Linked Successfully",
		Color: 0x2ecc71,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Discord User", Value: target.Mention(), Inline: true},
			{Name: "iRacing User", Value: username, Inline: true},
			{Name: "Customer ID", Value: fmt.Sprintf("%d", custID), Inline: true},
		},
	}
	if road, ok := summary.License(model.CategoryRoad); ok {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   "Road License",
			Value:  fmt.Sprintf("%d %.2f", road.LicenseLevel, road.SafetyRating),
			Inline: true,
		})
	}
	if oval, ok := summary.License(model.CategoryOval); ok {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   "Oval License",
			Value:  fmt.Sprintf("%d %.2f", oval.LicenseLevel, oval.SafetyRating),
			Inline: true,
		})
	}

	utils.SendFollowUpEmbed(s, i.Interaction, embed)
}
