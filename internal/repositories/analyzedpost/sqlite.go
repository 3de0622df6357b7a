package analyzedpost

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/orgball2608/sentiment-trend-analyzer/internal/domain"
	"github.com/orgball2608/sentiment-trend-analyzer/internal/repositories"
	"github.com/orgball2608/sentiment-trend-analyzer/pkg/logger"

	sq "github.com/Masterminds/squirrel"
)

// Fixed-width UTC layout so stored timestamps sort and compare as text.
const sqliteTimeLayout = "2006-01-02T15:04:05.000000000Z"

type SQLite struct {
	db     *sql.DB
	logger logger.Logger
	now    func() time.Time
}

func NewSQLite(db *sql.DB, logger logger.Logger) *SQLite {
	return &SQLite{
		db:     db,
		logger: logger.WithComponent("AnalyzedPostRepo"),
		now:    time.Now,
	}
}

var _ Repository = (*SQLite)(nil)

// Create adds a new analyzed post
func (s *SQLite) Create(ctx context.Context, post domain.AnalyzedPost) (domain.AnalyzedPost, error) {
	post.CreatedAt = s.now().UTC()

	query, args, err := repositories.SqliteBuilder.
		Insert(table).
		Columns("topic", "post_text", "sentiment", "emotion", "created_at").
		Values(post.Topic, post.Text, string(post.Sentiment), string(post.Emotion), formatTime(post.CreatedAt)).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return domain.AnalyzedPost{}, repositories.ErrBadQuery
	}

	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&post.ID); err != nil {
		s.logger.Error("Failed to insert analyzed post", "topic", post.Topic, "error", err)
		return domain.AnalyzedPost{}, err
	}

	return post, nil
}

// List returns the latest posts, optionally filtered by topic
func (s *SQLite) List(ctx context.Context, topic string, limit int) ([]domain.AnalyzedPost, error) {
	builder := repositories.SqliteBuilder.
		Select("id", "topic", "post_text", "sentiment", "emotion", "created_at").
		From(table).
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(max(limit, 0)))
	if topic != "" {
		// SQLite LIKE ignores ASCII case.
		builder = builder.Where(sq.Like{"topic": "%" + topic + "%"})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, repositories.ErrBadQuery
	}

	return s.query(ctx, query, args...)
}

// ListBetween returns posts for a topic inside a created_at window
func (s *SQLite) ListBetween(ctx context.Context, topic string, from, to time.Time) ([]domain.AnalyzedPost, error) {
	query, args, err := repositories.SqliteBuilder.
		Select("id", "topic", "post_text", "sentiment", "emotion", "created_at").
		From(table).
		Where(sq.And{
			sq.Like{"topic": "%" + topic + "%"},
			sq.GtOrEq{"created_at": formatTime(from)},
			sq.LtOrEq{"created_at": formatTime(to)},
		}).
		OrderBy("created_at ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, repositories.ErrBadQuery
	}

	return s.query(ctx, query, args...)
}

func (s *SQLite) query(ctx context.Context, query string, args ...any) ([]domain.AnalyzedPost, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := []domain.AnalyzedPost{}
	for rows.Next() {
		var (
			post                          domain.AnalyzedPost
			sentiment, emotion, createdAt string
		)
		if err := rows.Scan(&post.ID, &post.Topic, &post.Text, &sentiment, &emotion, &createdAt); err != nil {
			return nil, err
		}
		if post.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, err
		}
		post.Sentiment = domain.Sentiment(sentiment)
		post.Emotion = domain.Emotion(emotion)
		posts = append(posts, post)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return posts, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(sqliteTimeLayout)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(sqliteTimeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("bad created_at %q: %w", s, err)
	}
	return t, nil
}
