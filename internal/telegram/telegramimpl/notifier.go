package telegramimpl

import (
	"context"
	"fmt"

	"github.com/orgball2608/sentiment-trend-analyzer/internal/analysis"
	"github.com/orgball2608/sentiment-trend-analyzer/internal/domain"
	"github.com/orgball2608/sentiment-trend-analyzer/internal/telegram"
	"github.com/orgball2608/sentiment-trend-analyzer/pkg/config"
	"github.com/orgball2608/sentiment-trend-analyzer/pkg/logger"
	"go.uber.org/fx"
)

type NotifierOpts struct {
	fx.In

	Client telegram.Client
	Config *config.Config
	Logger logger.Logger
}

// Notifier posts a run summary to the configured chat.
type Notifier struct {
	client  telegram.Client
	chatID  int64
	enabled bool
	logger  logger.Logger
}

var _ analysis.Observer = (*Notifier)(nil)

func NewNotifier(opts NotifierOpts) *Notifier {
	return &Notifier{
		client:  opts.Client,
		chatID:  opts.Config.Telegram.ChatID,
		enabled: opts.Config.Telegram.Token != "" && opts.Config.Telegram.ChatID != 0,
		logger:  opts.Logger.WithComponent("TelegramNotifier"),
	}
}

func (n *Notifier) Name() string { return "telegram" }

func (n *Notifier) OnAnalysisCompleted(_ context.Context, summary domain.AnalysisSummary) error {
	if !n.enabled {
		return nil
	}

	if _, err := n.client.SendMessage(n.chatID, telegram.FormatSummary(summary)); err != nil {
		return fmt.Errorf("failed to notify chat %d: %w", n.chatID, err)
	}

	n.logger.Debug("Run summary sent", "run_id", summary.RunID, "chatID", n.chatID)
	return nil
}
