package commandimpl

import (
	"context"
	"errors"
	"runtime/debug"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/orgball2608/sentiment-trend-analyzer/internal/analysis"
	"github.com/orgball2608/sentiment-trend-analyzer/internal/telegram"
	apperrors "github.com/orgball2608/sentiment-trend-analyzer/pkg/errors"
	"github.com/orgball2608/sentiment-trend-analyzer/pkg/formatter"
)

const resultsPreviewLimit = 5

const helpMessage = `Welcome to the Reddit sentiment bot!

/analyze <topic> [limit] - Fetch and classify posts about a topic.
/trend <topic> [days] - Daily sentiment counts for a topic.
/results <topic> - The latest stored posts for a topic.

Type /help at any time to see this guide.`

func (c *CommandImpl) HandleCommand(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := c.Telegram.GetUpdatesChan(u)
	c.Logger.Info("Command handler started, listening for updates.")

	for {
		select {
		case <-ctx.Done():
			c.Logger.Info("Command handler shutting down.")
			c.Telegram.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				c.Logger.Warn("Telegram updates channel closed unexpectedly.")
				return errors.New("telegram updates channel closed")
			}

			go func(u tgbotapi.Update) {
				defer func() {
					if r := recover(); r != nil {
						c.Logger.Error("Panic recovered while processing an update", "panic", r, "stack", string(debug.Stack()))
					}
				}()

				if u.Message == nil || !u.Message.IsCommand() {
					return
				}

				if err := c.processCommand(ctx, u); err != nil {
					c.Logger.Error("Error processing command",
						"command", u.Message.Command(),
						"error", err)
				}
			}(update)
		}
	}
}

func (c *CommandImpl) processCommand(ctx context.Context, update tgbotapi.Update) error {
	command := update.Message.Command()
	args := strings.Fields(update.Message.CommandArguments())
	chatID := update.Message.Chat.ID

	switch command {
	case "start", "help":
		return c.reply(chatID, helpMessage)
	case "analyze":
		if !c.Limiter.Allow(strconv.FormatInt(chatID, 10)) {
			return c.reply(chatID, "Too many requests, please wait a moment before analyzing again.")
		}
		return c.handleAnalyze(ctx, chatID, args)
	case "trend":
		return c.handleTrend(ctx, chatID, args)
	case "results":
		return c.handleResults(ctx, chatID, args)
	default:
		return c.reply(chatID, "Unknown command. Type /help to see the list of available commands.")
	}
}

func (c *CommandImpl) handleAnalyze(ctx context.Context, chatID int64, args []string) error {
	topic, n, err := topicAndNumber(args, analysis.DefaultLimit)
	if err != nil {
		return c.reply(chatID, "Usage: /analyze <topic> [limit]")
	}

	summary, err := c.Service.RunAnalysis(ctx, topic, n)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return c.reply(chatID, "No Reddit posts found for "+topic+".")
		}
		c.Logger.Error("Bot analysis failed", "topic", topic, "error", err)
		return c.reply(chatID, "Something went wrong while analyzing. Please try again later.")
	}

	_, err = c.Telegram.SendMessage(chatID, telegram.FormatSummary(summary))
	return err
}

func (c *CommandImpl) handleTrend(ctx context.Context, chatID int64, args []string) error {
	topic, days, err := topicAndNumber(args, analysis.DefaultTrendDays)
	if err != nil {
		return c.reply(chatID, "Usage: /trend <topic> [days]")
	}

	points, err := c.Service.Trend(ctx, topic, days)
	if err != nil {
		c.Logger.Error("Bot trend failed", "topic", topic, "error", err)
		return c.reply(chatID, "Something went wrong while loading the trend.")
	}

	_, err = c.Telegram.SendMessage(chatID, telegram.FormatTrend(topic, points))
	return err
}

func (c *CommandImpl) handleResults(ctx context.Context, chatID int64, args []string) error {
	if len(args) == 0 {
		return c.reply(chatID, "Usage: /results <topic>")
	}
	topic := strings.Join(args, " ")

	posts, err := c.Service.Results(ctx, topic, resultsPreviewLimit)
	if err != nil {
		c.Logger.Error("Bot results failed", "topic", topic, "error", err)
		return c.reply(chatID, "Something went wrong while loading results.")
	}

	_, err = c.Telegram.SendMessage(chatID, telegram.FormatResults(topic, posts))
	return err
}

// reply sends plain text, escaped for the MarkdownV2 parse mode.
func (c *CommandImpl) reply(chatID int64, text string) error {
	_, err := c.Telegram.SendMessage(chatID, formatter.EscapeMarkdownV2(text))
	return err
}

// topicAndNumber splits "<topic words> [n]". A trailing integer is taken as
// the count; everything before it is the topic.
func topicAndNumber(args []string, def int) (string, int, error) {
	if len(args) == 0 {
		return "", 0, apperrors.ErrBadRequest
	}

	n := def
	if len(args) > 1 {
		if v, err := strconv.Atoi(args[len(args)-1]); err == nil {
			n = v
			args = args[:len(args)-1]
		}
	}

	return strings.Join(args, " "), n, nil
}
