package handlers

import (
	"log"

	"iracing-bot/bot"
	"iracing-bot/utils"

	"github.com/bwmarrin/discordgo"
)

// HandleUnlink removes the caller's account link. Unlinking another user
// is admin-only. Unlinking without a link reports not-found and mutates
// nothing.
func HandleUnlink(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	opts := optionMap(i.ApplicationCommandData().Options)

	target := i.Member.User
	if opt, ok := opts["user"]; ok {
		requested := opt.UserValue(s)
		if requested.ID != target.ID {
			if !utils.IsPrivileged(callerPermission(i, b)) {
				utils.SendErrorResponse(s, i, "You do not have permission to unlink accounts for other users.")
				return
			}
			target = requested
		}
	}

	_, found, err := b.Store.GetLink(target.ID)
	if err != nil {
		log.Printf("Error looking up link for %s: %v", target.ID, err)
		utils.SendErrorResponse(s, i, "An error occurred while unlinking the account.")
		return
	}
	if !found {
		utils.SendErrorResponse(s, i, "No iRacing account linked to that Discord account.")
		return
	}

	if _, err := b.Store.RemoveLink(target.ID); err != nil {
		log.Printf("Error removing link for %s: %v", target.ID, err)
		utils.SendErrorResponse(s, i, "An error occurred while unlinking the account.")
		return
	}

	utils.SendSimpleResponse(s, i, "✅ Successfully unlinked the iRacing account.")
}
