package bot

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/shrimpsizemoose/semla/internal/app"
)

// Bot is the administrator's ops surface: it exposes the same approve
// and remove actions the admin panel has, over Telegram.
type Bot struct {
	config  *Config
	service *app.Service
	api     *tgbotapi.BotAPI
	admins  map[int64]bool
}

func New(config *Config, service *app.Service) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(config.Bot.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot API: %w", err)
	}

	admins := make(map[int64]bool)
	for _, id := range config.Bot.AdminIDs {
		admins[id] = true
	}

	return &Bot{
		config:  config,
		service: service,
		api:     api,
		admins:  admins,
	}, nil
}

func (b *Bot) Start() error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case update := <-updates:
			if update.Message == nil || !update.Message.IsCommand() {
				continue
			}
			if err := b.handleCommand(update.Message); err != nil {
				logger.Error.Printf("Command %s failed: %v", update.Message.Command(), err)
			}
		case <-sigChan:
			logger.Info.Println("Shutting down bot")
			b.api.StopReceivingUpdates()
			return nil
		}
	}
}

func (b *Bot) handleCommand(msg *tgbotapi.Message) error {
	if !b.admins[msg.From.ID] {
		return b.reply(msg, "This bot only talks to platform administrators")
	}

	handler, found := b.routeAdminCommands(msg.Command())
	if !found {
		return b.reply(msg, "Unknown command, try /help")
	}
	return handler(msg)
}

func (b *Bot) reply(msg *tgbotapi.Message, text string) error {
	out := tgbotapi.NewMessage(msg.Chat.ID, strings.TrimSpace(text))
	_, err := b.api.Send(out)
	return err
}
