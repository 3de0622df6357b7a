package commandimpl

import (
	"context"
	"errors"

	"github.com/orgball2608/sentiment-trend-analyzer/internal/analysis"
	"github.com/orgball2608/sentiment-trend-analyzer/internal/command"
	"github.com/orgball2608/sentiment-trend-analyzer/internal/ratelimit"
	"github.com/orgball2608/sentiment-trend-analyzer/internal/telegram"
	"github.com/orgball2608/sentiment-trend-analyzer/pkg/config"
	"github.com/orgball2608/sentiment-trend-analyzer/pkg/logger"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In
	LC fx.Lifecycle

	Telegram telegram.Client
	Service  analysis.Service
	Limiter  ratelimit.Limiter
	Logger   logger.Logger
	Config   *config.Config
}

type CommandImpl struct {
	Telegram telegram.Client
	Service  analysis.Service
	Limiter  ratelimit.Limiter
	Logger   logger.Logger
}

var _ command.Client = (*CommandImpl)(nil)

// New builds the bot command handler and, when a bot token is configured,
// runs it for the lifetime of the app.
func New(opts Opts) *CommandImpl {
	c := &CommandImpl{
		Telegram: opts.Telegram,
		Service:  opts.Service,
		Limiter:  opts.Limiter,
		Logger:   opts.Logger.WithComponent("BotCommands"),
	}

	if opts.Config.Telegram.Token == "" {
		return c
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	opts.LC.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				defer close(done)
				if err := c.HandleCommand(ctx); err != nil && !errors.Is(err, context.Canceled) {
					c.Logger.Error("Command handler stopped", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			select {
			case <-done:
			case <-stopCtx.Done():
			}
			return nil
		},
	})

	return c
}
