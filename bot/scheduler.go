package bot

import (
	"context"
	"log"
	"sync"
	"time"

	"iracing-bot/model"
)

// Limit concurrent guild updates. Stats fetches are serialized by the
// iRacing client anyway; this only bounds Discord-side work.
const workerLimit = 3

// BotProvider defines the methods the scheduler needs from the Bot.
type BotProvider interface {
	GetConfig() *model.Config
	ListEnabledGuilds() ([]model.GuildConfig, error)
	UpdateGuildLeaderboard(ctx context.Context, guildID string) error
}

// Scheduler drives the recurring leaderboard refresh for every enabled
// guild, plus on-demand refreshes for single guilds.
type Scheduler struct {
	bot     BotProvider
	done    chan struct{}
	wg      sync.WaitGroup
	trigger chan string
}

// NewScheduler creates a scheduler bound to the bot.
func NewScheduler(bot BotProvider) *Scheduler {
	return &Scheduler{
		bot:     bot,
		done:    make(chan struct{}),
		trigger: make(chan string, 16),
	}
}

// Start begins the periodic update loop.
func (s *Scheduler) Start() {
	s.wg.Add(1)
	go s.run()
}

// Stop terminates the scheduler gracefully.
func (s *Scheduler) Stop() {
	log.Println("Stopping scheduler...")
	close(s.done)
	s.wg.Wait()
	log.Println("Scheduler stopped.")
}

// Trigger requests an immediate refresh for one guild without touching the
// periodic cadence. Never blocks; a full queue drops the request since the
// next timer pass covers it anyway.
func (s *Scheduler) Trigger(guildID string) {
	select {
	case s.trigger <- guildID:
	default:
		log.Printf("Trigger queue full, dropping manual refresh for guild %s", guildID)
	}
}

func (s *Scheduler) run() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.bot.GetConfig().UpdateInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			log.Println("Updating leaderboards...")
			s.updateAllGuilds()
		case guildID := <-s.trigger:
			log.Printf("Manual leaderboard refresh for guild %s", guildID)
			s.updateGuild(guildID)
		case <-s.done:
			return
		}
	}
}

func (s *Scheduler) updateAllGuilds() {
	configs, err := s.bot.ListEnabledGuilds()
	if err != nil {
		log.Printf("Error listing enabled guilds: %v", err)
		return
	}

	var wg sync.WaitGroup
	guard := make(chan struct{}, workerLimit)

	for _, cfg := range configs {
		wg.Add(1)
		guard <- struct{}{} // Acquire a worker slot

		go func(guildID string) {
			defer func() {
				<-guard // Release the worker slot
				wg.Done()
			}()
			s.updateGuild(guildID)
		}(cfg.GuildID)
	}

	wg.Wait()
}

// updateGuild runs one full build-and-publish cycle for a guild. A failure
// or panic here must never take out the other guilds in the same pass.
func (s *Scheduler) updateGuild(guildID string) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Panic updating leaderboard for guild %s: %v", guildID, r)
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		select {
		case <-s.done:
			cancel()
		case <-ctx.Done():
		}
	}()

	if err := s.bot.UpdateGuildLeaderboard(ctx, guildID); err != nil {
		log.Printf("Error updating leaderboard for guild %s: %v", guildID, err)
	}
}
