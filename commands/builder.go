package commands

import (
	"github.com/bwmarrin/discordgo"
)

func GenerateCommands() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        "link",
			Description: "Link an iRacing account to a Discord account.",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "iracing_username",
					Description: "The iRacing display name to link.",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "user",
					Description: "Link on behalf of another user (admin only).",
					Required:    false,
				},
			},
		},
		{
			Name:        "unlink",
			Description: "Unlink an iRacing account from a Discord account.",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "user",
					Description: "Unlink another user (admin only).",
					Required:    false,
				},
			},
		},
		{
			Name:        "links",
			Description: "List all linked iRacing accounts (admin only).",
		},
		{
			Name:        "stats-channel",
			Description: "Configure the leaderboard channel for this server (admin only).",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "set",
					Description: "Post the leaderboard in a channel.",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionChannel,
							Name:        "channel",
							Description: "The channel to post the leaderboard in.",
							ChannelTypes: []discordgo.ChannelType{
								discordgo.ChannelTypeGuildText,
							},
							Required: true,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "off",
					Description: "Stop posting the leaderboard in this server.",
				},
			},
		},
		{
			Name:        "recentraces",
			Description: "Show your recent iRacing races.",
		},
		{
			Name:        "botinfo",
			Description: "Show bot and system information (developer only).",
		},
	}
}
