package app

import (
	"github.com/orgball2608/sentiment-trend-analyzer/internal/analysis"
	"github.com/orgball2608/sentiment-trend-analyzer/internal/analysis/analysisimpl"
	"github.com/orgball2608/sentiment-trend-analyzer/internal/command/commandimpl"
	"github.com/orgball2608/sentiment-trend-analyzer/internal/db"
	"github.com/orgball2608/sentiment-trend-analyzer/internal/emotion"
	"github.com/orgball2608/sentiment-trend-analyzer/internal/emotion/emotionimpl"
	"github.com/orgball2608/sentiment-trend-analyzer/internal/events/eventsimpl"
	"github.com/orgball2608/sentiment-trend-analyzer/internal/normalizer"
	"github.com/orgball2608/sentiment-trend-analyzer/internal/normalizer/normalizerimpl"
	"github.com/orgball2608/sentiment-trend-analyzer/internal/ratelimit"
	"github.com/orgball2608/sentiment-trend-analyzer/internal/repositories/analyzedpost"
	"github.com/orgball2608/sentiment-trend-analyzer/internal/sentiment"
	"github.com/orgball2608/sentiment-trend-analyzer/internal/sentiment/sentimentimpl"
	"github.com/orgball2608/sentiment-trend-analyzer/internal/server"
	"github.com/orgball2608/sentiment-trend-analyzer/internal/source"
	"github.com/orgball2608/sentiment-trend-analyzer/internal/source/sourceimpl"
	"github.com/orgball2608/sentiment-trend-analyzer/internal/telegram"
	"github.com/orgball2608/sentiment-trend-analyzer/internal/telegram/telegramimpl"
	"github.com/orgball2608/sentiment-trend-analyzer/pkg/config"
	"github.com/orgball2608/sentiment-trend-analyzer/pkg/logger"
	"github.com/orgball2608/sentiment-trend-analyzer/pkg/pgx"
	"go.uber.org/fx"
)

// Module assembles the service. The store is chosen from cfg before the
// graph is built so only one driver is ever opened.
func Module(cfg *config.Config) fx.Option {
	return fx.Options(
		fx.Supply(cfg),
		fx.Provide(logger.FxOption),
		storage(cfg),
		fx.Provide(
			fx.Annotate(
				normalizerimpl.New,
				fx.As(new(normalizer.Normalizer)),
			), fx.Annotate(
				sentimentimpl.New,
				fx.As(new(sentiment.Classifier)),
			),
			emotionimpl.NewOpenAILoader,
			fx.Annotate(
				emotionimpl.New,
				fx.As(new(emotion.Classifier)),
			), fx.Annotate(
				sourceimpl.New,
				fx.As(new(source.Source)),
			), fx.Annotate(
				analysisimpl.New,
				fx.As(new(analysis.Service)),
			), fx.Annotate(
				telegramimpl.New,
				fx.As(new(telegram.Client)),
			), fx.Annotate(
				newLimiter,
				fx.As(new(ratelimit.Limiter)),
			),
		),
		observers,
		fx.Invoke(analysisimpl.NewScheduler),
		fx.Invoke(commandimpl.New),
		fx.Invoke(server.New),
	)
}

var observers = fx.Provide(
	fx.Annotate(
		eventsimpl.New,
		fx.As(new(analysis.Observer)),
		fx.ResultTags(`group:"observers"`),
	),
	fx.Annotate(
		telegramimpl.NewNotifier,
		fx.As(new(analysis.Observer)),
		fx.ResultTags(`group:"observers"`),
	),
)

func storage(cfg *config.Config) fx.Option {
	if cfg.UseSQLite() {
		return fx.Options(
			fx.Provide(db.NewSQLite),
			analyzedpost.SQLiteModule,
		)
	}

	return fx.Options(
		fx.Invoke(db.MigratePostgres),
		fx.Provide(pgx.New),
		analyzedpost.PgxModule,
	)
}

func newLimiter(cfg *config.Config) *ratelimit.InMemoryLimiter {
	return ratelimit.NewInMemoryLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Per, cfg.RateLimit.Burst)
}
