package handlers

import (
	"fmt"
	"log"
	"strings"

	"iracing-bot/bot"
	"iracing-bot/utils"

	"github.com/bwmarrin/discordgo"
)

// HandleListLinks shows every stored account link. Admin-only.
func HandleListLinks(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	if !utils.IsPrivileged(callerPermission(i, b)) {
		utils.SendErrorResponse(s, i, "You do not have permission to use this command.")
		return
	}

	links, err := b.Store.ListLinks()
	if err != nil {
		log.Printf("Error listing links: %v", err)
		utils.SendErrorResponse(s, i, "An error occurred while listing links.")
		return
	}

	if len(links) == 0 {
		utils.SendSimpleResponse(s, i, "No accounts are linked yet.")
		return
	}

	var sb strings.Builder
	for _, link := range links {
		if link.IRacingCustomerID.Valid {
			fmt.Fprintf(&sb, "<@%s> — %s (#%d)\n", link.DiscordID, link.IRacingUsername, link.CustomerID())
		} else {
			fmt.Fprintf(&sb, "<@%s> — %s (unresolved)\n", link.DiscordID, link.IRacingUsername)
		}
	}

	embed := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("Linked Accounts (%d)", len(links)),
		Description: sb.String(),
		Color:       0x3498db,
	}
	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
			Flags:  discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.Printf("Error sending links list: %v", err)
	}
}
