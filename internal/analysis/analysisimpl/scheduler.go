package analysisimpl

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/orgball2608/sentiment-trend-analyzer/internal/analysis"
	"github.com/orgball2608/sentiment-trend-analyzer/pkg/config"
	"github.com/orgball2608/sentiment-trend-analyzer/pkg/logger"
	"go.uber.org/fx"
)

type SchedulerOpts struct {
	fx.In
	LC fx.Lifecycle

	Service analysis.Service
	Config  *config.Config
	Logger  logger.Logger
}

// Scheduler re-runs the analysis for tracked topics so trend windows keep
// filling without manual requests.
type Scheduler struct {
	service analysis.Service
	topics  []string
	limit   int
	logger  logger.Logger

	scheduler gocron.Scheduler
	ctx       context.Context
	cancel    context.CancelFunc
}

func NewScheduler(opts SchedulerOpts) (*Scheduler, error) {
	s := &Scheduler{
		service: opts.Service,
		topics:  trackedTopics(opts.Config.Scheduler.Topics),
		limit:   opts.Config.Scheduler.Limit,
		logger:  opts.Logger.WithComponent("TopicScheduler"),
	}
	s.ctx, s.cancel = context.WithCancel(context.Background())

	if len(s.topics) == 0 {
		s.logger.Info("No tracked topics configured, scheduler disabled")
		return s, nil
	}

	interval := opts.Config.Scheduler.Interval
	if interval <= 0 {
		interval = time.Hour
	}

	scheduler, err := gocron.NewScheduler(gocron.WithLocation(opts.Config.TrendLocation()))
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			s.RunTracked(s.ctx)
		}),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to schedule tracked topics: %w", err)
	}
	s.scheduler = scheduler

	opts.LC.Append(fx.Hook{
		OnStart: func(context.Context) error {
			s.logger.Info("Starting tracked topic scheduler", "topics", s.topics, "interval", interval.String())
			s.scheduler.Start()
			return nil
		},
		OnStop: func(context.Context) error {
			s.cancel()
			s.logger.Info("Stopping tracked topic scheduler")
			return s.scheduler.Shutdown()
		},
	})

	return s, nil
}

// RunTracked analyzes every tracked topic in order. Failures are logged and
// do not stop the remaining topics.
func (s *Scheduler) RunTracked(ctx context.Context) {
	for _, topic := range s.topics {
		if ctx.Err() != nil {
			s.logger.Info("Context cancelled, stopping tracked topic run")
			return
		}

		summary, err := s.service.RunAnalysis(ctx, topic, s.limit)
		if err != nil {
			s.logger.Error("Scheduled analysis failed", "topic", topic, "error", err)
			continue
		}

		s.logger.Info("Scheduled analysis completed", "topic", topic, "run_id", summary.RunID, "total", summary.TotalPosts)
	}
}

func trackedTopics(raw []string) []string {
	topics := make([]string, 0, len(raw))
	for _, t := range raw {
		if t = strings.TrimSpace(t); t != "" {
			topics = append(topics, t)
		}
	}
	return topics
}
