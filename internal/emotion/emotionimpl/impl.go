package emotionimpl

import (
	"context"
	"strings"
	"sync"

	"github.com/orgball2608/sentiment-trend-analyzer/internal/domain"
	"github.com/orgball2608/sentiment-trend-analyzer/internal/emotion"
	"github.com/orgball2608/sentiment-trend-analyzer/pkg/config"
	"github.com/orgball2608/sentiment-trend-analyzer/pkg/errors"
	"github.com/orgball2608/sentiment-trend-analyzer/pkg/logger"
	"go.uber.org/fx"
)

const (
	StrategyModel   = "model"
	StrategyKeyword = "keyword"
)

type Opts struct {
	fx.In

	Config *config.Config
	Logger logger.Logger
	Loader emotion.ModelLoader `optional:"true"`
}

type strategy interface {
	name() string
	classify(ctx context.Context, text string) domain.Emotion
}

// ClassifierImpl holds the strategy chosen at construction. It never changes.
type ClassifierImpl struct {
	strategy strategy
	logger   logger.Logger
}

var _ emotion.Classifier = (*ClassifierImpl)(nil)

func New(opts Opts) *ClassifierImpl {
	log := opts.Logger.WithComponent("EmotionClassifier")

	var s strategy = keywordBacked{}
	if opts.Config.Emotion.ModelEnabled && opts.Loader != nil {
		s = &modelBacked{
			loader: opts.Loader,
			cfg:    opts.Config,
			logger: log,
		}
	}

	log.Info("Emotion classifier ready", "strategy", s.name())

	return &ClassifierImpl{strategy: s, logger: log}
}

func (c *ClassifierImpl) Classify(ctx context.Context, text string) domain.Emotion {
	if strings.TrimSpace(text) == "" {
		return domain.EmotionNeutral
	}
	return c.strategy.classify(ctx, text)
}

// Strategy names the active tier.
func (c *ClassifierImpl) Strategy() string {
	return c.strategy.name()
}

type keywordBacked struct {
	KeywordClassifier
}

func (keywordBacked) name() string { return StrategyKeyword }

func (k keywordBacked) classify(_ context.Context, text string) domain.Emotion {
	return k.Classify(text)
}

// modelBacked loads the model on first use. A failed load is final and every
// later call goes straight to the keyword heuristic.
type modelBacked struct {
	loader   emotion.ModelLoader
	cfg      *config.Config
	logger   logger.Logger
	fallback KeywordClassifier

	once  sync.Once
	model emotion.Model

	// Predict is not assumed safe for concurrent use.
	mu sync.Mutex
}

func (m *modelBacked) name() string { return StrategyModel }

func (m *modelBacked) classify(ctx context.Context, text string) domain.Emotion {
	model := m.load(ctx)
	if model == nil {
		return m.fallback.Classify(text)
	}

	label, err := m.predict(ctx, model, domain.TruncateRunes(text, emotion.MaxModelInputLen))
	if err != nil {
		m.logger.Warn("Emotion model call failed, using keyword heuristic",
			"error", errors.Wrap(errors.ErrClassifierDegraded, err.Error()))
		return m.fallback.Classify(text)
	}

	return FromLabel(label)
}

func (m *modelBacked) predict(ctx context.Context, model emotion.Model, text string) (label string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	defer func() {
		if r := recover(); r != nil {
			err = errors.New("emotion model panicked")
		}
	}()

	return model.Predict(ctx, text)
}

func (m *modelBacked) load(ctx context.Context) emotion.Model {
	m.once.Do(func() {
		defer func() {
			if r := recover(); r != nil {
				m.logger.Error("Emotion model load panicked", "error", r)
				m.model = nil
			}
		}()

		loadCtx := context.WithoutCancel(ctx)
		if m.cfg.Emotion.LoadTimeout > 0 {
			var cancel context.CancelFunc
			loadCtx, cancel = context.WithTimeout(loadCtx, m.cfg.Emotion.LoadTimeout)
			defer cancel()
		}

		m.logger.Info("Loading emotion model", "model", m.cfg.Emotion.Model)
		model, err := m.loader(loadCtx)
		if err != nil {
			m.logger.Error("Emotion model unavailable, keyword heuristic will be used",
				"error", errors.Wrap(errors.ErrClassifierDegraded, err.Error()))
			return
		}

		m.model = model
		m.logger.Info("Emotion model loaded", "model", m.cfg.Emotion.Model)
	})

	return m.model
}
