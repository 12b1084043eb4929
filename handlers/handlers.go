package handlers

import (
	"log"

	"iracing-bot/bot"
	"iracing-bot/utils"

	"github.com/bwmarrin/discordgo"
)

func Register(b *bot.Bot) {
	b.CommandHandlers = commandHandlers(b)
	addHandlers(b)
}

func commandHandlers(b *bot.Bot) map[string]func(s *discordgo.Session, i *discordgo.InteractionCreate) {
	return map[string]func(s *discordgo.Session, i *discordgo.InteractionCreate){
		"link": func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			HandleLink(s, i, b)
		},
		"unlink": func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			HandleUnlink(s, i, b)
		},
		"links": func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			HandleListLinks(s, i, b)
		},
		"stats-channel": func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			HandleStatsChannel(s, i, b)
		},
		"recentraces": func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			HandleRecentRaces(s, i, b)
		},
		"botinfo": func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			HandleBotInfo(s, i, b)
		},
	}
}

func addHandlers(b *bot.Bot) {
	b.Session.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		log.Printf("Logged in as: %v#%v", s.State.User.Username, s.State.User.Discriminator)
	})
	b.Session.AddHandler(func(s *discordgo.Session, i *discordgo.InteractionCreate) {
		if i.Type != discordgo.InteractionApplicationCommand {
			return
		}
		if i.Member == nil {
			// Guild-only bot; ignore DMs.
			return
		}
		if h, ok := b.CommandHandlers[i.ApplicationCommandData().Name]; ok {
			h(s, i)
		}
	})
}

// callerPermission returns the invoking member's permission level.
func callerPermission(i *discordgo.InteractionCreate, b *bot.Bot) string {
	cfg := b.GetConfig()
	return utils.CheckPermission(i.Member.Roles, i.Member.User.ID, cfg.AdminRoleIDs, cfg.DeveloperUserIDs)
}

// optionMap flattens a command's options for lookup by name.
func optionMap(options []*discordgo.ApplicationCommandInteractionDataOption) map[string]*discordgo.ApplicationCommandInteractionDataOption {
	m := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(options))
	for _, opt := range options {
		m[opt.Name] = opt
	}
	return m
}
