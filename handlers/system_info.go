package handlers

import (
	"fmt"
	"log"
	"os"
	"runtime"

	"iracing-bot/bot"
	"iracing-bot/utils"

	"github.com/bwmarrin/discordgo"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
)

// HandleBotInfo reports host and bot statistics. Developer-only.
func HandleBotInfo(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	if callerPermission(i, b) != utils.DeveloperPermission {
		utils.SendErrorResponse(s, i, "You do not have permission to use this command.")
		return
	}

	// Get CPU info
	cpuCount, _ := cpu.Counts(true)
	cpuPercent, _ := cpu.Percent(0, false)

	// Get memory info
	vm, _ := mem.VirtualMemory()

	// Get host info
	hostInfo, _ := host.Info()

	var dbSize int64
	if fi, err := os.Stat(b.GetConfig().DatabasePath); err == nil {
		dbSize = fi.Size() / 1024
	}

	linkedCount := 0
	if links, err := b.Store.ListLinks(); err == nil {
		linkedCount = len(links)
	}
	enabledGuilds := 0
	if cfgs, err := b.Store.ListEnabledGuilds(); err == nil {
		enabledGuilds = len(cfgs)
	}

	cpuUsage := "n/a"
	if len(cpuPercent) > 0 {
		cpuUsage = fmt.Sprintf("%.1f%%", cpuPercent[0])
	}

	embed := &discordgo.MessageEmbed{
		Title: "Bot Info",
		Color: 0x5865F2, // Discord Blurple
		Fields: []*discordgo.MessageEmbedField{
			{Name: "💻 OS", Value: fmt.Sprintf("%s %s", hostInfo.Platform, hostInfo.PlatformVersion), Inline: true},
			{Name: "🐹 Go Version", Value: runtime.Version(), Inline: true},
			{Name: "🔼 CPUs", Value: fmt.Sprintf("%d", cpuCount), Inline: true},
			{Name: "🔥 CPU Usage", Value: cpuUsage, Inline: true},
			{Name: "🧠 Memory", Value: fmt.Sprintf("%.1f%% (%d MB / %d MB)", vm.UsedPercent, vm.Used/1024/1024, vm.Total/1024/1024), Inline: true},
			{Name: "🗃️ Database Size", Value: fmt.Sprintf("%d KB", dbSize), Inline: true},
			{Name: "🔗 Linked Accounts", Value: fmt.Sprintf("%d", linkedCount), Inline: true},
			{Name: "🏆 Leaderboard Guilds", Value: fmt.Sprintf("%d", enabledGuilds), Inline: true},
			{Name: "⏱️ WebSocket Latency", Value: s.HeartbeatLatency().String(), Inline: true},
			{Name: "🚀 Goroutines", Value: fmt.Sprintf("%d", runtime.NumGoroutine()), Inline: true},
		},
	}

	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
			Flags:  discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.Printf("Error sending bot info: %v", err)
	}
}
