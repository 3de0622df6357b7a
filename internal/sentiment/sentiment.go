package sentiment

import "github.com/orgball2608/sentiment-trend-analyzer/internal/domain"

//go:generate go run go.uber.org/mock/mockgen -source=sentiment.go -destination=mocks/mock.go
type Classifier interface {
	// Classify never fails. Blank input and internal errors both yield Neutral.
	Classify(text string) domain.Sentiment
}
