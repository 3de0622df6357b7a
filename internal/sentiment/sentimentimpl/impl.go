package sentimentimpl

import (
	"strings"

	"github.com/jonreiter/govader"
	"github.com/orgball2608/sentiment-trend-analyzer/internal/domain"
	"github.com/orgball2608/sentiment-trend-analyzer/internal/sentiment"
	"github.com/orgball2608/sentiment-trend-analyzer/pkg/logger"
	"go.uber.org/fx"
)

// Polarity above PositiveThreshold is Positive, below NegativeThreshold is
// Negative. Both bounds are exclusive.
const (
	PositiveThreshold = 0.1
	NegativeThreshold = -0.1
)

type Opts struct {
	fx.In

	Logger logger.Logger
}

type ClassifierImpl struct {
	analyzer *govader.SentimentIntensityAnalyzer
	logger   logger.Logger
}

var _ sentiment.Classifier = (*ClassifierImpl)(nil)

func New(opts Opts) *ClassifierImpl {
	return &ClassifierImpl{
		analyzer: govader.NewSentimentIntensityAnalyzer(),
		logger:   opts.Logger.WithComponent("SentimentClassifier"),
	}
}

func (c *ClassifierImpl) Classify(text string) domain.Sentiment {
	if strings.TrimSpace(text) == "" {
		return domain.SentimentNeutral
	}

	polarity, ok := c.Polarity(text)
	if !ok {
		return domain.SentimentNeutral
	}

	return FromPolarity(polarity)
}

// Polarity returns the compound lexicon score in [-1, 1]. ok is false when the
// analyzer panicked on the input.
func (c *ClassifierImpl) Polarity(text string) (polarity float64, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("Sentiment scoring panicked", "error", r)
			polarity, ok = 0, false
		}
	}()

	return c.analyzer.PolarityScores(text).Compound, true
}

func FromPolarity(polarity float64) domain.Sentiment {
	switch {
	case polarity > PositiveThreshold:
		return domain.SentimentPositive
	case polarity < NegativeThreshold:
		return domain.SentimentNegative
	default:
		return domain.SentimentNeutral
	}
}
