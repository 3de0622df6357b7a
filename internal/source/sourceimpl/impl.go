package sourceimpl

import (
	"context"
	"strings"
	"time"

	"github.com/orgball2608/sentiment-trend-analyzer/internal/domain"
	"github.com/orgball2608/sentiment-trend-analyzer/internal/source"
	"github.com/orgball2608/sentiment-trend-analyzer/pkg/config"
	"github.com/orgball2608/sentiment-trend-analyzer/pkg/errors"
	"github.com/orgball2608/sentiment-trend-analyzer/pkg/logger"
	"github.com/orgball2608/sentiment-trend-analyzer/pkg/retry"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	Config *config.Config
	Logger logger.Logger
}

// SourceImpl prefers the live backend and falls back to the synthetic bank
// whenever the live one is missing, fails or finds nothing.
type SourceImpl struct {
	live      source.Live
	synthetic *Synthetic
	logger    logger.Logger
}

var _ source.Source = (*SourceImpl)(nil)

func New(opts Opts) *SourceImpl {
	log := opts.Logger.WithComponent("PostSource")

	var live source.Live
	if opts.Config.RedditConfigured() {
		live = NewRedditClient(RedditOpts{
			ClientID:     opts.Config.Reddit.ClientID,
			ClientSecret: opts.Config.Reddit.ClientSecret,
			UserAgent:    opts.Config.Reddit.UserAgent,
			Timeout:      opts.Config.Reddit.Timeout,
			Retry: retry.Config{
				MaxRetries:      2,
				InitialInterval: 300 * time.Millisecond,
				MaxInterval:     2 * time.Second,
				Multiplier:      2,
			},
		}, opts.Logger)
		log.Info("Reddit API credentials configured")
	} else {
		log.Info("Reddit API credentials not configured, serving synthetic posts")
	}

	return NewWithBackends(live, NewSynthetic(nil, nil), opts.Logger)
}

// NewWithBackends wires explicit backends. live may be nil.
func NewWithBackends(live source.Live, synthetic *Synthetic, log logger.Logger) *SourceImpl {
	return &SourceImpl{
		live:      live,
		synthetic: synthetic,
		logger:    log.WithComponent("PostSource"),
	}
}

func (s *SourceImpl) FetchPosts(ctx context.Context, topic string, limit int) []domain.RawPost {
	if limit <= 0 {
		return []domain.RawPost{}
	}

	if s.live == nil {
		return s.synthetic.Posts(topic, limit)
	}

	posts, err := s.fetchLive(ctx, topic, limit)
	if err != nil {
		s.logger.Warn("Live source failed, using synthetic posts",
			"topic", topic,
			"error", errors.Wrap(errors.ErrSourceUnavailable, err.Error()))
		return s.synthetic.Posts(topic, limit)
	}
	if len(posts) == 0 {
		s.logger.Info("Live source returned no posts, using synthetic posts", "topic", topic)
		return s.synthetic.Posts(topic, limit)
	}

	return posts
}

func (s *SourceImpl) fetchLive(ctx context.Context, topic string, limit int) ([]domain.RawPost, error) {
	posts, err := s.live.Search(ctx, topic, limit)
	if err != nil {
		return nil, err
	}
	if len(posts) > limit {
		posts = posts[:limit]
	}
	if len(posts) > 0 {
		return posts, nil
	}

	hot, err := s.live.Hot(ctx, limit*2)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(topic)
	matched := make([]domain.RawPost, 0, limit)
	for _, p := range hot {
		if strings.Contains(strings.ToLower(p.Title), needle) || strings.Contains(strings.ToLower(p.Body), needle) {
			matched = append(matched, p)
			if len(matched) >= limit {
				break
			}
		}
	}

	return matched, nil
}
