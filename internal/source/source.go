package source

import (
	"context"

	"github.com/orgball2608/sentiment-trend-analyzer/internal/domain"
)

//go:generate go run go.uber.org/mock/mockgen -source=source.go -destination=mocks/mock.go
type Source interface {
	// FetchPosts returns up to limit posts about topic. Live backend failures
	// are absorbed and the synthetic bank is served instead.
	FetchPosts(ctx context.Context, topic string, limit int) []domain.RawPost
}

// Live is a remote post backend such as the Reddit API.
type Live interface {
	// Search returns relevance-ranked posts matching topic.
	Search(ctx context.Context, topic string, limit int) ([]domain.RawPost, error)

	// Hot returns currently trending posts, unfiltered.
	Hot(ctx context.Context, limit int) ([]domain.RawPost, error)
}
