package analysisimpl

import (
	"context"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/orgball2608/sentiment-trend-analyzer/internal/db"
	"github.com/orgball2608/sentiment-trend-analyzer/internal/emotion/emotionimpl"
	"github.com/orgball2608/sentiment-trend-analyzer/internal/migrations"
	"github.com/orgball2608/sentiment-trend-analyzer/internal/repositories/analyzedpost"
	"github.com/orgball2608/sentiment-trend-analyzer/internal/sentiment/sentimentimpl"
	"github.com/orgball2608/sentiment-trend-analyzer/internal/source/sourceimpl"
	"github.com/orgball2608/sentiment-trend-analyzer/pkg/config"
	apperrors "github.com/orgball2608/sentiment-trend-analyzer/pkg/errors"
	"github.com/orgball2608/sentiment-trend-analyzer/pkg/logger"
)

func newPipeline(t *testing.T) *AnalysisImpl {
	t.Helper()

	conn, err := db.OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("OpenSQLite() error: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := migrations.Up(context.Background(), conn, migrations.DialectSQLite); err != nil {
		t.Fatalf("migrations.Up() error: %v", err)
	}

	log := logger.Nop()
	cfg := &config.Config{}

	return New(Opts{
		Source:    sourceimpl.NewWithBackends(nil, sourceimpl.NewSynthetic(rand.New(rand.NewPCG(1, 2)), nil), log),
		Sentiment: sentimentimpl.New(sentimentimpl.Opts{Logger: log}),
		Emotion:   emotionimpl.New(emotionimpl.Opts{Config: cfg, Logger: log}),
		Repo:      analyzedpost.NewSQLite(conn, log),
		Logger:    log,
		Config:    cfg,
	})
}

func TestPipeline_RunThenTrend(t *testing.T) {
	t.Parallel()

	svc := newPipeline(t)
	ctx := context.Background()

	summary, err := svc.RunAnalysis(ctx, "pizza", 3)
	if err != nil {
		t.Fatalf("RunAnalysis() error: %v", err)
	}
	if summary.TotalPosts != 3 {
		t.Fatalf("TotalPosts=%d, want 3", summary.TotalPosts)
	}

	total := 0
	for _, n := range summary.SentimentDistribution {
		total += n
	}
	if total != 3 {
		t.Fatalf("sentiment distribution sums to %d, want 3", total)
	}

	stored, err := svc.Results(ctx, "pizza", 50)
	if err != nil {
		t.Fatalf("Results() error: %v", err)
	}
	if len(stored) != 3 {
		t.Fatalf("Results() returned %d rows, want 3", len(stored))
	}
	for _, p := range stored {
		if p.Topic != "pizza" || !p.Sentiment.Valid() || !p.Emotion.Valid() {
			t.Fatalf("unexpected stored row: %+v", p)
		}
		if !strings.Contains(strings.ToLower(p.Text), "pizza") {
			t.Fatalf("stored text %q does not mention the topic", p.Text)
		}
	}

	points, err := svc.Trend(ctx, "pizza", 7)
	if err != nil {
		t.Fatalf("Trend() error: %v", err)
	}
	if len(points) != 1 {
		t.Fatalf("Trend() returned %d buckets, want 1: %+v", len(points), points)
	}
	if points[0].Total() != 3 {
		t.Fatalf("today's bucket totals %d, want 3", points[0].Total())
	}
}

func TestPipeline_ZeroLimitIsNotFound(t *testing.T) {
	t.Parallel()

	svc := newPipeline(t)

	if _, err := svc.RunAnalysis(context.Background(), "pizza", 0); !apperrors.IsNotFound(err) {
		t.Fatalf("RunAnalysis(limit=0) error=%v, want not found", err)
	}

	stored, err := svc.Results(context.Background(), "", 50)
	if err != nil {
		t.Fatalf("Results() error: %v", err)
	}
	if len(stored) != 0 {
		t.Fatalf("expected no rows, got %d", len(stored))
	}
}
