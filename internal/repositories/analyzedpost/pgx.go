package analyzedpost

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/orgball2608/sentiment-trend-analyzer/internal/domain"
	"github.com/orgball2608/sentiment-trend-analyzer/internal/repositories"
	"github.com/orgball2608/sentiment-trend-analyzer/pkg/logger"

	sq "github.com/Masterminds/squirrel"
)

type Pgx struct {
	pg     *pgxpool.Pool
	logger logger.Logger
	now    func() time.Time
}

func NewPgx(pg *pgxpool.Pool, logger logger.Logger) *Pgx {
	return &Pgx{
		pg:     pg,
		logger: logger.WithComponent("AnalyzedPostRepo"),
		now:    time.Now,
	}
}

var _ Repository = (*Pgx)(nil)

// Create adds a new analyzed post
func (p *Pgx) Create(ctx context.Context, post domain.AnalyzedPost) (domain.AnalyzedPost, error) {
	post.CreatedAt = p.now().UTC()

	query, args, err := repositories.SqBuilder.
		Insert(table).
		Columns("topic", "post_text", "sentiment", "emotion", "created_at").
		Values(post.Topic, post.Text, string(post.Sentiment), string(post.Emotion), post.CreatedAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return domain.AnalyzedPost{}, repositories.ErrBadQuery
	}

	if err := p.pg.QueryRow(ctx, query, args...).Scan(&post.ID); err != nil {
		p.logger.Error("Failed to insert analyzed post", "topic", post.Topic, "error", err)
		return domain.AnalyzedPost{}, err
	}

	return post, nil
}

// List returns the latest posts, optionally filtered by topic
func (p *Pgx) List(ctx context.Context, topic string, limit int) ([]domain.AnalyzedPost, error) {
	builder := repositories.SqBuilder.
		Select("id", "topic", "post_text", "sentiment", "emotion", "created_at").
		From(table).
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(max(limit, 0)))
	if topic != "" {
		builder = builder.Where(sq.ILike{"topic": "%" + topic + "%"})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, repositories.ErrBadQuery
	}

	return p.query(ctx, query, args...)
}

// ListBetween returns posts for a topic inside a created_at window
func (p *Pgx) ListBetween(ctx context.Context, topic string, from, to time.Time) ([]domain.AnalyzedPost, error) {
	query, args, err := repositories.SqBuilder.
		Select("id", "topic", "post_text", "sentiment", "emotion", "created_at").
		From(table).
		Where(sq.And{
			sq.ILike{"topic": "%" + topic + "%"},
			sq.GtOrEq{"created_at": from.UTC()},
			sq.LtOrEq{"created_at": to.UTC()},
		}).
		OrderBy("created_at ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, repositories.ErrBadQuery
	}

	return p.query(ctx, query, args...)
}

func (p *Pgx) query(ctx context.Context, query string, args ...any) ([]domain.AnalyzedPost, error) {
	rows, err := p.pg.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := []domain.AnalyzedPost{}
	for rows.Next() {
		var (
			post                domain.AnalyzedPost
			sentiment, emotion string
		)
		if err := rows.Scan(&post.ID, &post.Topic, &post.Text, &sentiment, &emotion, &post.CreatedAt); err != nil {
			return nil, err
		}
		post.Sentiment = domain.Sentiment(sentiment)
		post.Emotion = domain.Emotion(emotion)
		post.CreatedAt = post.CreatedAt.UTC()
		posts = append(posts, post)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return posts, nil
}
