package events

import (
	"github.com/orgball2608/sentiment-trend-analyzer/internal/domain"
)

//go:generate go run go.uber.org/mock/mockgen -source=events.go -destination=mocks/mock.go
type Publisher interface {
	Publish(subject string, data []byte) error
}

// AnalysisCompleted is the payload published after every successful run.
type AnalysisCompleted struct {
	RunID                 string                   `json:"run_id"`
	Topic                 string                   `json:"topic"`
	TotalPosts            int                      `json:"total_posts"`
	SentimentDistribution map[domain.Sentiment]int `json:"sentiment_distribution"`
	EmotionDistribution   map[domain.Emotion]int   `json:"emotion_distribution"`
}

func NewAnalysisCompleted(s domain.AnalysisSummary) AnalysisCompleted {
	return AnalysisCompleted{
		RunID:                 s.RunID,
		Topic:                 s.Topic,
		TotalPosts:            s.TotalPosts,
		SentimentDistribution: s.SentimentDistribution,
		EmotionDistribution:   s.EmotionDistribution,
	}
}
