package analyzedpost

import (
	"context"
	"testing"
	"time"

	"github.com/orgball2608/sentiment-trend-analyzer/internal/db"
	"github.com/orgball2608/sentiment-trend-analyzer/internal/domain"
	"github.com/orgball2608/sentiment-trend-analyzer/internal/migrations"
	"github.com/orgball2608/sentiment-trend-analyzer/pkg/logger"
)

func newSQLiteRepo(t *testing.T) *SQLite {
	t.Helper()

	conn, err := db.OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("OpenSQLite() error: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := migrations.Up(context.Background(), conn, migrations.DialectSQLite); err != nil {
		t.Fatalf("migrations.Up() error: %v", err)
	}

	return NewSQLite(conn, logger.Nop())
}

func post(topic string, s domain.Sentiment) domain.AnalyzedPost {
	return domain.AnalyzedPost{Topic: topic, Text: topic + " text", Sentiment: s, Emotion: domain.EmotionNeutral}
}

func TestSQLite_CreateAssignsIDAndTimestamp(t *testing.T) {
	t.Parallel()

	repo := newSQLiteRepo(t)
	at := time.Date(2024, 5, 1, 10, 30, 0, 123456789, time.FixedZone("X", 3*3600))
	repo.now = func() time.Time { return at }

	first, err := repo.Create(context.Background(), post("pizza", domain.SentimentPositive))
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	second, err := repo.Create(context.Background(), post("pizza", domain.SentimentNegative))
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	if first.ID == 0 || second.ID <= first.ID {
		t.Fatalf("ids not increasing: %d then %d", first.ID, second.ID)
	}
	if !first.CreatedAt.Equal(at) || first.CreatedAt.Location() != time.UTC {
		t.Fatalf("CreatedAt=%v, want %v in UTC", first.CreatedAt, at)
	}

	got, err := repo.List(context.Background(), "pizza", 10)
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("List() returned %d posts, want 2", len(got))
	}
	if got[0].ID != second.ID {
		t.Fatalf("List() should order newest first, got ids %d,%d", got[0].ID, got[1].ID)
	}
	back := got[1]
	if back.ID != first.ID || back.Topic != first.Topic || back.Text != first.Text ||
		back.Sentiment != first.Sentiment || back.Emotion != first.Emotion || !back.CreatedAt.Equal(first.CreatedAt) {
		t.Fatalf("read back %+v, want %+v", back, first)
	}
}

func TestSQLite_ListFiltersAndLimits(t *testing.T) {
	t.Parallel()

	repo := newSQLiteRepo(t)
	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	i := 0
	repo.now = func() time.Time {
		i++
		return base.Add(time.Duration(i) * time.Minute)
	}

	for _, topic := range []string{"Pizza", "pineapple pizza", "cats", "pizza"} {
		if _, err := repo.Create(context.Background(), post(topic, domain.SentimentNeutral)); err != nil {
			t.Fatalf("Create() error: %v", err)
		}
	}

	got, err := repo.List(context.Background(), "PIZZA", 50)
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("List(PIZZA) returned %d posts, want 3", len(got))
	}

	all, err := repo.List(context.Background(), "", 2)
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(all) != 2 || all[0].Topic != "pizza" || all[1].Topic != "cats" {
		t.Fatalf("List(\"\", 2)=%+v, want the two newest posts", all)
	}
}

func TestSQLite_ListBetween(t *testing.T) {
	t.Parallel()

	repo := newSQLiteRepo(t)
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

	stamps := []time.Time{
		now.Add(-10 * 24 * time.Hour),
		now.Add(-7 * 24 * time.Hour),
		now.Add(-2 * time.Hour),
		now,
		now.Add(time.Hour),
	}
	for _, ts := range stamps {
		ts := ts
		repo.now = func() time.Time { return ts }
		if _, err := repo.Create(context.Background(), post("pizza", domain.SentimentPositive)); err != nil {
			t.Fatalf("Create() error: %v", err)
		}
	}
	repo.now = func() time.Time { return now }
	if _, err := repo.Create(context.Background(), post("cats", domain.SentimentPositive)); err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	got, err := repo.ListBetween(context.Background(), "Pizza", now.Add(-7*24*time.Hour), now)
	if err != nil {
		t.Fatalf("ListBetween() error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("ListBetween() returned %d posts, want 3 (inclusive bounds)", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i].CreatedAt.Before(got[i-1].CreatedAt) {
			t.Fatalf("ListBetween() not ascending: %v", got)
		}
	}
}
