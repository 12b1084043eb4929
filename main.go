package main

import (
	"log"

	"iracing-bot/bot"
	"iracing-bot/config"
	"iracing-bot/handlers"
	"iracing-bot/iracing"
	"iracing-bot/store"
)

func main() {
	cfg := config.Load()

	st, err := store.New(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Error initializing database: %v", err)
	}

	irc := iracing.New(cfg.IRacingEmail, cfg.IRacingPassword)

	b, err := bot.New(cfg, st, irc)
	if err != nil {
		log.Fatalf("Error creating bot: %v", err)
	}

	handlers.Register(b)

	b.Run()

	defer b.Close()
}
