package analyzedpost

import (
	"context"
	"time"

	"github.com/orgball2608/sentiment-trend-analyzer/internal/domain"
)

const table = "reddit_posts"

//go:generate go run go.uber.org/mock/mockgen -source=analyzedpost.go -destination=mocks/mock.go
type Repository interface {
	// Create stores post and returns it with its generated id and created_at
	Create(ctx context.Context, post domain.AnalyzedPost) (domain.AnalyzedPost, error)

	// List returns the newest posts first. An empty topic matches every post,
	// otherwise topic is a case-insensitive substring match
	List(ctx context.Context, topic string, limit int) ([]domain.AnalyzedPost, error)

	// ListBetween returns posts whose topic contains topic, ignoring case,
	// created within [from, to]
	ListBetween(ctx context.Context, topic string, from, to time.Time) ([]domain.AnalyzedPost, error)
}
