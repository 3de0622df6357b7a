package analysis

import (
	"context"

	"github.com/orgball2608/sentiment-trend-analyzer/internal/domain"
)

const (
	DefaultLimit       = 10
	DefaultResultLimit = 50
	DefaultTrendDays   = 7
)

//go:generate go run go.uber.org/mock/mockgen -source=analysis.go -destination=mocks/mock.go
type Service interface {
	// RunAnalysis fetches, classifies and stores posts for topic. It fails with
	// errors.ErrNotFound when no posts are available and with errors.ErrPersistence
	// when a row cannot be stored.
	RunAnalysis(ctx context.Context, topic string, limit int) (domain.AnalysisSummary, error)

	// Results lists stored posts, newest first.
	Results(ctx context.Context, topic string, limit int) ([]domain.AnalyzedPost, error)

	// Trend buckets the last days of stored posts by calendar date and sentiment.
	Trend(ctx context.Context, topic string, days int) ([]domain.TrendPoint, error)
}

// Observer is told about every completed run.
type Observer interface {
	Name() string
	OnAnalysisCompleted(ctx context.Context, summary domain.AnalysisSummary) error
}
