package bot

import (
	"context"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	LONG_POLL_TIMEOUT_SECONDS = 60
)

// TelegramBot is the chat front end - it pulls updates over long polling,
// hands each message to the router and sends the single reply back. Business
// logic lives entirely behind the router.
type TelegramBot struct {
	api    *tgbotapi.BotAPI
	router *Router
}

func InitTelegramBot(token string, router *Router) (*TelegramBot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	slog.Info("telegram bot authorized", "account", api.Self.UserName)
	return &TelegramBot{
		api:    api,
		router: router,
	}, nil
}

func (bot *TelegramBot) Run(ctx context.Context) error {
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = LONG_POLL_TIMEOUT_SECONDS
	updates := bot.api.GetUpdatesChan(updateConfig)

	for {
		select {
		case <-ctx.Done():
			bot.api.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil || update.Message.Text == "" {
				continue
			}
			senderIdentity := ""
			if update.Message.From != nil {
				senderIdentity = update.Message.From.UserName
			}

			msg := InboundMessage{
				ChatId:         update.Message.Chat.ID,
				SenderIdentity: senderIdentity,
				Text:           update.Message.Text,
			}
			slog.Debug("inbound message", "chat_id", msg.ChatId, "sender", msg.SenderIdentity)

			reply := bot.router.Handle(ctx, msg)
			if _, err := bot.api.Send(tgbotapi.NewMessage(msg.ChatId, reply)); err != nil {
				slog.Warn("failed to send reply", "chat_id", msg.ChatId, "error", err.Error())
			}
		}
	}
}
