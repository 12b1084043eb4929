package bot

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"iracing-bot/commands"
	"iracing-bot/utils"
)

func (b *Bot) Run() {
	err := b.Session.Open()
	if err != nil {
		log.Fatalf("Error opening connection: %v", err)
	}

	log.Println("Registering application commands...")
	cmds := commands.GenerateCommands()
	registered, err := b.Session.ApplicationCommandBulkOverwrite(b.Session.State.User.ID, "", cmds)
	if err != nil {
		log.Fatalf("Cannot register commands: %v", err)
	}
	b.RegisteredCommands = registered
	log.Printf("Registered %d commands", len(registered))

	b.scheduler.Start()

	fmt.Println("Bot is now running. Press CTRL-C to exit.")
	utils.LogInfo(b.Session, b.GetConfig().LogChannelID, "System", "Startup", "Bot has started successfully.")
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc
}
