package analysisimpl

import (
	"context"
	"errors"
	"testing"

	mock_analysis "github.com/orgball2608/sentiment-trend-analyzer/internal/analysis/mocks"
	"github.com/orgball2608/sentiment-trend-analyzer/internal/domain"
	"github.com/orgball2608/sentiment-trend-analyzer/pkg/config"
	"github.com/orgball2608/sentiment-trend-analyzer/pkg/logger"
	"go.uber.org/fx/fxtest"
	"go.uber.org/mock/gomock"
)

func TestScheduler_RunTrackedContinuesAfterFailure(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	svc := mock_analysis.NewMockService(ctrl)

	cfg := &config.Config{}
	cfg.Scheduler.Topics = []string{"pizza", "  ", "cats"}
	cfg.Scheduler.Limit = 4

	gomock.InOrder(
		svc.EXPECT().RunAnalysis(gomock.Any(), "pizza", 4).Return(domain.AnalysisSummary{}, errors.New("boom")),
		svc.EXPECT().RunAnalysis(gomock.Any(), "cats", 4).Return(domain.AnalysisSummary{RunID: "r", TotalPosts: 4}, nil),
	)

	lc := fxtest.NewLifecycle(t)
	s, err := NewScheduler(SchedulerOpts{LC: lc, Service: svc, Config: cfg, Logger: logger.Nop()})
	if err != nil {
		t.Fatalf("NewScheduler() error: %v", err)
	}

	s.RunTracked(context.Background())
}

func TestScheduler_CancelledContextStops(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	svc := mock_analysis.NewMockService(ctrl)

	cfg := &config.Config{}
	cfg.Scheduler.Topics = []string{"pizza"}

	s, err := NewScheduler(SchedulerOpts{LC: fxtest.NewLifecycle(t), Service: svc, Config: cfg, Logger: logger.Nop()})
	if err != nil {
		t.Fatalf("NewScheduler() error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s.RunTracked(ctx)
}

func TestScheduler_DisabledWithoutTopics(t *testing.T) {
	t.Parallel()

	lc := fxtest.NewLifecycle(t)
	s, err := NewScheduler(SchedulerOpts{LC: lc, Config: &config.Config{}, Logger: logger.Nop()})
	if err != nil {
		t.Fatalf("NewScheduler() error: %v", err)
	}
	if s.scheduler != nil {
		t.Fatal("scheduler should not be created without tracked topics")
	}

	lc.RequireStart().RequireStop()
}
