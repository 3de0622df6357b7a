package analysisimpl

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/orgball2608/sentiment-trend-analyzer/internal/analysis"
	"github.com/orgball2608/sentiment-trend-analyzer/internal/domain"
	"github.com/orgball2608/sentiment-trend-analyzer/internal/emotion"
	"github.com/orgball2608/sentiment-trend-analyzer/internal/repositories/analyzedpost"
	"github.com/orgball2608/sentiment-trend-analyzer/internal/sentiment"
	"github.com/orgball2608/sentiment-trend-analyzer/internal/source"
	"github.com/orgball2608/sentiment-trend-analyzer/pkg/config"
	"github.com/orgball2608/sentiment-trend-analyzer/pkg/errors"
	"github.com/orgball2608/sentiment-trend-analyzer/pkg/logger"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	Source    source.Source
	Sentiment sentiment.Classifier
	Emotion   emotion.Classifier
	Repo      analyzedpost.Repository
	Logger    logger.Logger
	Config    *config.Config
	Observers []analysis.Observer `group:"observers"`
}

type AnalysisImpl struct {
	source    source.Source
	sentiment sentiment.Classifier
	emotion   emotion.Classifier
	repo      analyzedpost.Repository
	observers []analysis.Observer
	logger    logger.Logger
	location  *time.Location

	now   func() time.Time
	runID func() string
}

var _ analysis.Service = (*AnalysisImpl)(nil)

func New(opts Opts) *AnalysisImpl {
	return &AnalysisImpl{
		source:    opts.Source,
		sentiment: opts.Sentiment,
		emotion:   opts.Emotion,
		repo:      opts.Repo,
		observers: opts.Observers,
		logger:    opts.Logger.WithComponent("AnalysisService"),
		location:  opts.Config.TrendLocation(),
		now:       time.Now,
		runID:     uuid.NewString,
	}
}

// RunAnalysis processes posts strictly in order. Rows stored before a failed
// insert stay committed; the run then fails without a summary.
func (a *AnalysisImpl) RunAnalysis(ctx context.Context, topic string, limit int) (domain.AnalysisSummary, error) {
	runID := a.runID()

	raw := a.source.FetchPosts(ctx, topic, limit)
	if len(raw) == 0 {
		return domain.AnalysisSummary{}, errors.WrapWithCode(errors.ErrNotFound, "no_posts", "No posts found for the given topic")
	}

	a.logger.Info("Analyzing posts", "run_id", runID, "topic", topic, "count", len(raw))

	summary := domain.AnalysisSummary{
		RunID:                 runID,
		Topic:                 topic,
		Posts:                 make([]domain.AnalyzedPost, 0, len(raw)),
		SentimentDistribution: make(map[domain.Sentiment]int),
		EmotionDistribution:   make(map[domain.Emotion]int),
	}

	for i, p := range raw {
		text := p.Text()

		// Classifiers see the raw text, not the normalized form.
		analyzed := domain.AnalyzedPost{
			Topic:     topic,
			Text:      domain.TruncateRunes(text, domain.MaxPostTextLen),
			Sentiment: a.sentiment.Classify(text),
			Emotion:   a.emotion.Classify(ctx, text),
		}

		stored, err := a.repo.Create(ctx, analyzed)
		if err != nil {
			a.logger.Error("Failed to persist analyzed post", "run_id", runID, "topic", topic, "index", i, "error", err)
			return domain.AnalysisSummary{}, errors.Wrap(errors.ErrPersistence, err.Error())
		}

		summary.Posts = append(summary.Posts, stored)
		summary.SentimentDistribution[stored.Sentiment]++
		summary.EmotionDistribution[stored.Emotion]++
	}

	summary.TotalPosts = len(summary.Posts)

	a.logger.Info("Analysis finished",
		"run_id", runID,
		"topic", topic,
		"total", summary.TotalPosts,
		"sentiments", summary.SentimentDistribution,
	)

	a.notify(ctx, summary)

	return summary, nil
}

func (a *AnalysisImpl) notify(ctx context.Context, summary domain.AnalysisSummary) {
	for _, o := range a.observers {
		if err := o.OnAnalysisCompleted(ctx, summary); err != nil {
			a.logger.Warn("Observer failed", "observer", o.Name(), "run_id", summary.RunID, "error", err)
		}
	}
}

func (a *AnalysisImpl) Results(ctx context.Context, topic string, limit int) ([]domain.AnalyzedPost, error) {
	posts, err := a.repo.List(ctx, topic, limit)
	if err != nil {
		return nil, errors.Wrap(errors.ErrPersistence, err.Error())
	}
	return posts, nil
}
