package emotion

import (
	"context"

	"github.com/orgball2608/sentiment-trend-analyzer/internal/domain"
)

// MaxModelInputLen is how many characters of a post the model sees.
const MaxModelInputLen = 512

//go:generate go run go.uber.org/mock/mockgen -source=emotion.go -destination=mocks/mock.go
type Classifier interface {
	// Classify never fails. Model errors degrade to the keyword heuristic.
	Classify(ctx context.Context, text string) domain.Emotion
}

// Model is a loaded text classifier that returns a raw emotion label.
type Model interface {
	Predict(ctx context.Context, text string) (string, error)
}

// ModelLoader instantiates a Model. It is called at most once per process.
type ModelLoader func(ctx context.Context) (Model, error)
