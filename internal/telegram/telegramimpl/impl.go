package telegramimpl

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/orgball2608/sentiment-trend-analyzer/internal/telegram"
	"github.com/orgball2608/sentiment-trend-analyzer/pkg/config"
	"github.com/orgball2608/sentiment-trend-analyzer/pkg/errors"
	"github.com/orgball2608/sentiment-trend-analyzer/pkg/logger"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	Config *config.Config
	Logger logger.Logger
}

// TelegramImpl wraps the bot API. TgBot is nil when no token is configured.
type TelegramImpl struct {
	TgBot  *tgbotapi.BotAPI
	Logger logger.Logger
}

var _ telegram.Client = (*TelegramImpl)(nil)

func New(opts Opts) (*TelegramImpl, error) {
	log := opts.Logger.WithComponent("TelegramClient")

	if opts.Config.Telegram.Token == "" {
		log.Info("TELEGRAM_TOKEN not set, notifications disabled")
		return &TelegramImpl{Logger: log}, nil
	}

	tgBot, err := tgbotapi.NewBotAPI(opts.Config.Telegram.Token)
	if err != nil {
		log.Error("Error creating bot", "error", err)
		return nil, err
	}

	log.Info("Authorized on telegram", "account", tgBot.Self.UserName)

	return &TelegramImpl{
		TgBot:  tgBot,
		Logger: log,
	}, nil
}

// SendMessage sends a message to a specific chat ID
func (tg *TelegramImpl) SendMessage(chatID int64, text string) (int, error) {
	if tg.TgBot == nil {
		return 0, errors.Wrap(errors.ErrServiceUnavailable, "telegram bot not configured")
	}

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdownV2
	msg.DisableWebPagePreview = true

	sentMsg, err := tg.TgBot.Send(msg)
	if err != nil {
		tg.Logger.Error("Error sending message",
			"chatID", chatID,
			"error", err)
		return 0, fmt.Errorf("failed to send message: %w", err)
	}

	tg.Logger.Info("Message sent",
		"chatID", chatID,
		"messageID", sentMsg.MessageID)
	return sentMsg.MessageID, nil
}

// GetUpdatesChan wraps the bot's GetUpdatesChan method. Without a bot the
// channel never delivers.
func (tg *TelegramImpl) GetUpdatesChan(u tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	if tg.TgBot == nil {
		return nil
	}
	return tg.TgBot.GetUpdatesChan(u)
}

func (tg *TelegramImpl) StopReceivingUpdates() {
	if tg.TgBot != nil {
		tg.TgBot.StopReceivingUpdates()
	}
}
