package sourceimpl

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/orgball2608/sentiment-trend-analyzer/internal/domain"
	mock_source "github.com/orgball2608/sentiment-trend-analyzer/internal/source/mocks"
	"github.com/orgball2608/sentiment-trend-analyzer/pkg/config"
	"github.com/orgball2608/sentiment-trend-analyzer/pkg/logger"
	"go.uber.org/mock/gomock"
)

func isSynthetic(posts []domain.RawPost) bool {
	for _, p := range posts {
		found := false
		for _, tpl := range templates {
			if p.Score == tpl.score && p.Subreddit == tpl.subreddit {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return len(posts) > 0
}

func TestNew_PlaceholderCredentialsUseSynthetic(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{}
	cfg.Reddit.ClientID = "your_reddit_client_id"
	cfg.Reddit.ClientSecret = "your_reddit_client_secret"

	s := New(Opts{Config: cfg, Logger: logger.Nop()})
	if s.live != nil {
		t.Fatal("placeholder credentials should not enable the live source")
	}

	posts := s.FetchPosts(context.Background(), "cats", 5)
	if len(posts) != 5 || !isSynthetic(posts) {
		t.Fatalf("expected 5 synthetic posts, got %d", len(posts))
	}
}

func TestFetchPosts_SearchHit(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	live := mock_source.NewMockLive(ctrl)

	want := []domain.RawPost{{Title: "go 1.23 released", Score: 10}, {Title: "go generics", Score: 5}}
	live.EXPECT().Search(gomock.Any(), "go", 2).Return(want, nil)

	s := NewWithBackends(live, seeded(), logger.Nop())
	got := s.FetchPosts(context.Background(), "go", 2)

	if len(got) != 2 || got[0].Title != want[0].Title {
		t.Fatalf("FetchPosts()=%+v, want live posts", got)
	}
}

func TestFetchPosts_SearchEmptyScansHot(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	live := mock_source.NewMockLive(ctrl)

	hot := []domain.RawPost{
		{Title: "Unrelated news"},
		{Title: "PIZZA night", Score: 3},
		{Title: "Weekend", Body: "made pizza dough"},
		{Title: "More pizza"},
	}
	gomock.InOrder(
		live.EXPECT().Search(gomock.Any(), "pizza", 2).Return(nil, nil),
		live.EXPECT().Hot(gomock.Any(), 4).Return(hot, nil),
	)

	s := NewWithBackends(live, seeded(), logger.Nop())
	got := s.FetchPosts(context.Background(), "pizza", 2)

	if len(got) != 2 {
		t.Fatalf("len=%d, want 2", len(got))
	}
	if got[0].Title != "PIZZA night" || got[1].Title != "Weekend" {
		t.Fatalf("unexpected hot filter result: %+v", got)
	}
}

func TestFetchPosts_NothingLiveFallsBack(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	live := mock_source.NewMockLive(ctrl)
	live.EXPECT().Search(gomock.Any(), "cats", 3).Return([]domain.RawPost{}, nil)
	live.EXPECT().Hot(gomock.Any(), 6).Return([]domain.RawPost{{Title: "dogs"}}, nil)

	s := NewWithBackends(live, seeded(), logger.Nop())
	got := s.FetchPosts(context.Background(), "cats", 3)

	if len(got) != 3 || !isSynthetic(got) {
		t.Fatalf("expected 3 synthetic posts, got %+v", got)
	}
	for _, p := range got {
		if !strings.Contains(p.Title+p.Body, "cats") {
			t.Fatalf("synthetic post missing topic: %+v", p)
		}
	}
}

func TestFetchPosts_LiveErrorFallsBack(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	live := mock_source.NewMockLive(ctrl)
	live.EXPECT().Search(gomock.Any(), "cats", 4).Return(nil, errors.New("dial tcp: i/o timeout"))

	s := NewWithBackends(live, seeded(), logger.Nop())
	got := s.FetchPosts(context.Background(), "cats", 4)

	if len(got) != 4 || !isSynthetic(got) {
		t.Fatalf("expected 4 synthetic posts, got %+v", got)
	}
}

func TestFetchPosts_NonPositiveLimit(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	live := mock_source.NewMockLive(ctrl)

	s := NewWithBackends(live, seeded(), logger.Nop())
	if got := s.FetchPosts(context.Background(), "cats", 0); len(got) != 0 {
		t.Fatalf("limit 0 returned %d posts", len(got))
	}
}
