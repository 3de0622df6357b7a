package analysisimpl

import (
	"context"
	"sort"
	"time"

	"github.com/orgball2608/sentiment-trend-analyzer/internal/domain"
	"github.com/orgball2608/sentiment-trend-analyzer/pkg/errors"
)

const dateLayout = "2006-01-02"

// Trend reads posts created in [now-days, now] and counts them per calendar
// date in the configured location, oldest date first.
func (a *AnalysisImpl) Trend(ctx context.Context, topic string, days int) ([]domain.TrendPoint, error) {
	to := a.now()
	from := to.Add(-time.Duration(days) * 24 * time.Hour)

	posts, err := a.repo.ListBetween(ctx, topic, from, to)
	if err != nil {
		return nil, errors.Wrap(errors.ErrPersistence, err.Error())
	}

	return bucketByDate(posts, a.location), nil
}

func bucketByDate(posts []domain.AnalyzedPost, loc *time.Location) []domain.TrendPoint {
	buckets := make(map[string]*domain.TrendPoint)
	for _, p := range posts {
		date := p.CreatedAt.In(loc).Format(dateLayout)
		b, ok := buckets[date]
		if !ok {
			b = &domain.TrendPoint{Date: date}
			buckets[date] = b
		}
		b.Add(string(p.Sentiment))
	}

	points := make([]domain.TrendPoint, 0, len(buckets))
	for _, b := range buckets {
		points = append(points, *b)
	}
	sort.Slice(points, func(i, j int) bool {
		return points[i].Date < points[j].Date
	})

	return points
}
