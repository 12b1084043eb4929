package bot

import (
	"log"
	"sync/atomic"

	"iracing-bot/iracing"
	"iracing-bot/model"
	"iracing-bot/store"

	"github.com/bwmarrin/discordgo"
)

type Bot struct {
	Session            *discordgo.Session
	RegisteredCommands []*discordgo.ApplicationCommand
	CommandHandlers    map[string]func(s *discordgo.Session, i *discordgo.InteractionCreate)
	Store              *store.Store
	IRacing            *iracing.Client
	config             atomic.Value // *model.Config
	scheduler          *Scheduler
}

func New(cfg *model.Config, st *store.Store, irc *iracing.Client) (*Bot, error) {
	dg, err := discordgo.New("Bot " + cfg.BotToken)
	if err != nil {
		return nil, err
	}
	dg.Identify.Intents = discordgo.IntentsGuilds

	b := &Bot{
		Session: dg,
		Store:   st,
		IRacing: irc,
	}
	b.config.Store(cfg)
	b.scheduler = NewScheduler(b)
	return b, nil
}

func (b *Bot) GetConfig() *model.Config {
	return b.config.Load().(*model.Config)
}

func (b *Bot) GetSession() *discordgo.Session {
	return b.Session
}

func (b *Bot) GetStore() *store.Store {
	return b.Store
}

func (b *Bot) GetScheduler() *Scheduler {
	return b.scheduler
}

func (b *Bot) Close() {
	log.Println("Gracefully shutting down.")
	b.scheduler.Stop()
	b.Session.Close()
	if err := b.Store.Close(); err != nil {
		log.Printf("Error closing store: %v", err)
	}
}
