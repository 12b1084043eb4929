package bot

import (
	"iracing-bot/leaderboard"

	"github.com/bwmarrin/discordgo"
)

// guildMembers caches member lookups for one guild so that the scope
// filter and the display-name resolver share a single API call per user.
type guildMembers struct {
	session *discordgo.Session
	guildID string
	cache   map[string]*discordgo.Member
}

func newGuildMembers(session *discordgo.Session, guildID string) *guildMembers {
	return &guildMembers{
		session: session,
		guildID: guildID,
		cache:   make(map[string]*discordgo.Member),
	}
}

func (g *guildMembers) member(discordID string) *discordgo.Member {
	if m, ok := g.cache[discordID]; ok {
		return m
	}
	m, err := g.session.GuildMember(g.guildID, discordID)
	if err != nil {
		m = nil
	}
	g.cache[discordID] = m
	return m
}

// Filter reports whether a linked user is currently a member of the guild.
func (g *guildMembers) Filter() leaderboard.MemberFilter {
	return func(discordID string) bool {
		return g.member(discordID) != nil
	}
}

// Resolve maps a Discord user id to their display name in the guild,
// returning "" when the member cannot be resolved.
func (g *guildMembers) Resolve() leaderboard.DisplayNameResolver {
	return func(discordID string) string {
		m := g.member(discordID)
		if m == nil {
			return ""
		}
		if m.Nick != "" {
			return m.Nick
		}
		if m.User != nil {
			if m.User.GlobalName != "" {
				return m.User.GlobalName
			}
			return m.User.Username
		}
		return ""
	}
}
