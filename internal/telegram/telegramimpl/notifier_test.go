package telegramimpl

import (
	"context"
	"errors"
	"testing"

	"github.com/orgball2608/sentiment-trend-analyzer/internal/domain"
	"github.com/orgball2608/sentiment-trend-analyzer/internal/telegram"
	mock_telegram "github.com/orgball2608/sentiment-trend-analyzer/internal/telegram/mocks"
	"github.com/orgball2608/sentiment-trend-analyzer/pkg/config"
	"github.com/orgball2608/sentiment-trend-analyzer/pkg/logger"
	"go.uber.org/mock/gomock"
)

func testSummary() domain.AnalysisSummary {
	return domain.AnalysisSummary{
		RunID:                 "3f1c-9a",
		Topic:                 "node.js",
		TotalPosts:            1200,
		SentimentDistribution: map[domain.Sentiment]int{domain.SentimentPositive: 1000, domain.SentimentNegative: 200},
		EmotionDistribution:   map[domain.Emotion]int{domain.EmotionJoy: 1200},
	}
}

func newNotifier(t *testing.T, token string, chatID int64) (*Notifier, *mock_telegram.MockClient) {
	t.Helper()

	client := mock_telegram.NewMockClient(gomock.NewController(t))
	cfg := &config.Config{}
	cfg.Telegram.Token = token
	cfg.Telegram.ChatID = chatID

	return NewNotifier(NotifierOpts{Client: client, Config: cfg, Logger: logger.Nop()}), client
}

func TestNotifier_SendsSummary(t *testing.T) {
	t.Parallel()

	n, client := newNotifier(t, "token", 42)
	client.EXPECT().SendMessage(int64(42), telegram.FormatSummary(testSummary())).Return(7, nil)

	if err := n.OnAnalysisCompleted(context.Background(), testSummary()); err != nil {
		t.Fatalf("OnAnalysisCompleted() error: %v", err)
	}
}

func TestNotifier_DisabledWithoutChat(t *testing.T) {
	t.Parallel()

	n, _ := newNotifier(t, "token", 0)
	if err := n.OnAnalysisCompleted(context.Background(), testSummary()); err != nil {
		t.Fatalf("disabled notifier returned %v", err)
	}
}

func TestNotifier_SendError(t *testing.T) {
	t.Parallel()

	n, client := newNotifier(t, "token", 42)
	client.EXPECT().SendMessage(gomock.Any(), gomock.Any()).Return(0, errors.New("Forbidden: bot was blocked"))

	if err := n.OnAnalysisCompleted(context.Background(), testSummary()); err == nil {
		t.Fatal("expected send error")
	}
}

func TestSendMessage_Unconfigured(t *testing.T) {
	t.Parallel()

	tg, err := New(Opts{Config: &config.Config{}, Logger: logger.Nop()})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if _, err := tg.SendMessage(1, "hi"); err == nil {
		t.Fatal("expected error without a bot token")
	}
}
