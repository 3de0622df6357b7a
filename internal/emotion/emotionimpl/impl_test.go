package emotionimpl

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/orgball2608/sentiment-trend-analyzer/internal/domain"
	"github.com/orgball2608/sentiment-trend-analyzer/internal/emotion"
	mock_emotion "github.com/orgball2608/sentiment-trend-analyzer/internal/emotion/mocks"
	"github.com/orgball2608/sentiment-trend-analyzer/pkg/config"
	"github.com/orgball2608/sentiment-trend-analyzer/pkg/logger"
	"go.uber.org/mock/gomock"
)

func modelConfig(enabled bool) *config.Config {
	cfg := &config.Config{}
	cfg.Emotion.ModelEnabled = enabled
	cfg.Emotion.Model = "test-model"
	return cfg
}

func countingLoader(model emotion.Model, err error, calls *atomic.Int32) emotion.ModelLoader {
	return func(context.Context) (emotion.Model, error) {
		calls.Add(1)
		if err != nil {
			return nil, err
		}
		return model, nil
	}
}

func TestKeywordClassifier(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want domain.Emotion
	}{
		{name: "no keywords", text: "The meeting is on Tuesday", want: domain.EmotionNeutral},
		{name: "joy", text: "I am so HAPPY and excited", want: domain.EmotionJoy},
		{name: "anger", text: "furious and annoyed", want: domain.EmotionAnger},
		{name: "sadness", text: "sad and miserable", want: domain.EmotionSadness},
		{name: "fear", text: "worried, anxious, scared", want: domain.EmotionFear},
		{name: "surprise", text: "shocked by the unexpected", want: domain.EmotionSurprise},
		{name: "substring match", text: "madness", want: domain.EmotionAnger},
		{name: "repeats count once", text: "sad sad sad sad happy great", want: domain.EmotionJoy},
		{name: "joy beats anger on tie", text: "happy thrilled angry furious", want: domain.EmotionJoy},
		{name: "anger beats sadness on tie", text: "angry sorrow", want: domain.EmotionAnger},
		{name: "sadness beats fear on tie", text: "miserable afraid", want: domain.EmotionSadness},
		{name: "fear beats surprise on tie", text: "terrified astonished", want: domain.EmotionFear},
	}

	var k KeywordClassifier
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := k.Classify(tc.text); got != tc.want {
				t.Fatalf("Classify(%q)=%s, want %s", tc.text, got, tc.want)
			}
		})
	}
}

func TestKeywordClassifier_TieIsStable(t *testing.T) {
	t.Parallel()

	var k KeywordClassifier
	text := "delighted pleased rage irritated"
	for i := 0; i < 50; i++ {
		if got := k.Classify(text); got != domain.EmotionJoy {
			t.Fatalf("run %d: Classify(%q)=%s, want Joy", i, text, got)
		}
	}
}

func TestFromLabel(t *testing.T) {
	t.Parallel()

	tests := map[string]domain.Emotion{
		"joy":      domain.EmotionJoy,
		"ANGER":    domain.EmotionAnger,
		" Sadness": domain.EmotionSadness,
		"fear":     domain.EmotionFear,
		"surprise": domain.EmotionSurprise,
		"neutral":  domain.EmotionNeutral,
		"disgust":  domain.EmotionNeutral,
		"love":     domain.EmotionNeutral,
		"":         domain.EmotionNeutral,
	}
	for label, want := range tests {
		if got := FromLabel(label); got != want {
			t.Errorf("FromLabel(%q)=%s, want %s", label, got, want)
		}
	}
}

func TestClassify_BlankBypassesBothTiers(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	c := New(Opts{
		Config: modelConfig(true),
		Logger: logger.Nop(),
		Loader: countingLoader(nil, errors.New("boom"), &calls),
	})

	for _, in := range []string{"", "   ", "\n"} {
		if got := c.Classify(context.Background(), in); got != domain.EmotionNeutral {
			t.Fatalf("Classify(%q)=%s, want Neutral", in, got)
		}
	}
	if calls.Load() != 0 {
		t.Fatalf("loader called %d times for blank input", calls.Load())
	}
}

func TestClassify_DisabledUsesKeywords(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	c := New(Opts{
		Config: modelConfig(false),
		Logger: logger.Nop(),
		Loader: countingLoader(nil, nil, &calls),
	})

	if c.Strategy() != StrategyKeyword {
		t.Fatalf("Strategy()=%s, want %s", c.Strategy(), StrategyKeyword)
	}
	if got := c.Classify(context.Background(), "I am terrified"); got != domain.EmotionFear {
		t.Fatalf("Classify()=%s, want Fear", got)
	}
	if calls.Load() != 0 {
		t.Fatalf("loader called %d times while disabled", calls.Load())
	}
}

func TestClassify_ModelLabelAndTruncation(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	model := mock_emotion.NewMockModel(ctrl)

	long := strings.Repeat("a", 600)
	model.EXPECT().
		Predict(gomock.Any(), strings.Repeat("a", emotion.MaxModelInputLen)).
		Return("Surprise", nil)

	var calls atomic.Int32
	c := New(Opts{
		Config: modelConfig(true),
		Logger: logger.Nop(),
		Loader: countingLoader(model, nil, &calls),
	})

	if c.Strategy() != StrategyModel {
		t.Fatalf("Strategy()=%s, want %s", c.Strategy(), StrategyModel)
	}
	if got := c.Classify(context.Background(), long); got != domain.EmotionSurprise {
		t.Fatalf("Classify()=%s, want Surprise", got)
	}
}

func TestClassify_UnknownModelLabelIsNeutral(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	model := mock_emotion.NewMockModel(ctrl)
	model.EXPECT().Predict(gomock.Any(), gomock.Any()).Return("disgust", nil)

	var calls atomic.Int32
	c := New(Opts{Config: modelConfig(true), Logger: logger.Nop(), Loader: countingLoader(model, nil, &calls)})

	if got := c.Classify(context.Background(), "so happy"); got != domain.EmotionNeutral {
		t.Fatalf("Classify()=%s, want Neutral", got)
	}
}

func TestClassify_LoadsModelOnce(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	model := mock_emotion.NewMockModel(ctrl)
	model.EXPECT().Predict(gomock.Any(), gomock.Any()).Return("joy", nil).Times(20)

	var calls atomic.Int32
	c := New(Opts{Config: modelConfig(true), Logger: logger.Nop(), Loader: countingLoader(model, nil, &calls)})

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Classify(context.Background(), "some text")
		}()
	}
	wg.Wait()

	if calls.Load() != 1 {
		t.Fatalf("loader called %d times, want 1", calls.Load())
	}
}

func TestClassify_LoadFailureIsPermanent(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	c := New(Opts{
		Config: modelConfig(true),
		Logger: logger.Nop(),
		Loader: countingLoader(nil, errors.New("model not found"), &calls),
	})

	for i := 0; i < 3; i++ {
		if got := c.Classify(context.Background(), "I am so angry"); got != domain.EmotionAnger {
			t.Fatalf("Classify()=%s, want Anger from keyword fallback", got)
		}
	}
	if calls.Load() != 1 {
		t.Fatalf("loader called %d times, want 1", calls.Load())
	}
}

func TestClassify_CallFailureFallsBackForThatCallOnly(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	model := mock_emotion.NewMockModel(ctrl)
	gomock.InOrder(
		model.EXPECT().Predict(gomock.Any(), gomock.Any()).Return("", errors.New("rate limited")),
		model.EXPECT().Predict(gomock.Any(), gomock.Any()).Return("fear", nil),
	)

	var calls atomic.Int32
	c := New(Opts{Config: modelConfig(true), Logger: logger.Nop(), Loader: countingLoader(model, nil, &calls)})

	if got := c.Classify(context.Background(), "I am so sad"); got != domain.EmotionSadness {
		t.Fatalf("first Classify()=%s, want Sadness from keyword fallback", got)
	}
	if got := c.Classify(context.Background(), "I am so sad"); got != domain.EmotionFear {
		t.Fatalf("second Classify()=%s, want Fear from the model", got)
	}
}

func TestClassify_ModelPanicFallsBack(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	model := mock_emotion.NewMockModel(ctrl)
	model.EXPECT().Predict(gomock.Any(), gomock.Any()).DoAndReturn(func(context.Context, string) (string, error) {
		panic("tensor shape mismatch")
	})

	var calls atomic.Int32
	c := New(Opts{Config: modelConfig(true), Logger: logger.Nop(), Loader: countingLoader(model, nil, &calls)})

	if got := c.Classify(context.Background(), "shocked"); got != domain.EmotionSurprise {
		t.Fatalf("Classify()=%s, want Surprise from keyword fallback", got)
	}
}

func TestLabelSchema(t *testing.T) {
	t.Parallel()

	props, ok := labelSchema["properties"].(map[string]any)
	if !ok {
		t.Fatalf("schema has no properties: %v", labelSchema)
	}
	label, ok := props["label"].(map[string]any)
	if !ok {
		t.Fatalf("schema has no label property: %v", props)
	}
	enum, ok := label["enum"].([]any)
	if !ok || len(enum) != 7 {
		t.Fatalf("label enum=%v, want 7 values", label["enum"])
	}
	if labelSchema["additionalProperties"] != false {
		t.Fatalf("additionalProperties=%v, want false", labelSchema["additionalProperties"])
	}
}
