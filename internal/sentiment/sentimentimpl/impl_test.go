package sentimentimpl

import (
	"testing"

	"github.com/orgball2608/sentiment-trend-analyzer/internal/domain"
	"github.com/orgball2608/sentiment-trend-analyzer/pkg/logger"
)

func TestFromPolarity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		polarity float64
		want     domain.Sentiment
	}{
		{polarity: 1, want: domain.SentimentPositive},
		{polarity: 0.1000001, want: domain.SentimentPositive},
		{polarity: 0.1, want: domain.SentimentNeutral},
		{polarity: 0, want: domain.SentimentNeutral},
		{polarity: -0.1, want: domain.SentimentNeutral},
		{polarity: -0.1000001, want: domain.SentimentNegative},
		{polarity: -1, want: domain.SentimentNegative},
	}

	for _, tc := range tests {
		if got := FromPolarity(tc.polarity); got != tc.want {
			t.Errorf("FromPolarity(%v)=%s, want %s", tc.polarity, got, tc.want)
		}
	}
}

func TestClassify(t *testing.T) {
	t.Parallel()

	c := New(Opts{Logger: logger.Nop()})

	tests := []struct {
		name string
		text string
		want domain.Sentiment
	}{
		{name: "empty", text: "", want: domain.SentimentNeutral},
		{name: "whitespace", text: " \n\t ", want: domain.SentimentNeutral},
		{name: "positive", text: "This is wonderful, I love it and I am so happy!", want: domain.SentimentPositive},
		{name: "negative", text: "This is terrible, awful and I hate it.", want: domain.SentimentNegative},
		{name: "flat", text: "The meeting is on Tuesday.", want: domain.SentimentNeutral},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := c.Classify(tc.text); got != tc.want {
				t.Fatalf("Classify(%q)=%s, want %s", tc.text, got, tc.want)
			}
		})
	}
}

func TestClassify_AlwaysValidAndRepeatable(t *testing.T) {
	t.Parallel()

	c := New(Opts{Logger: logger.Nop()})
	inputs := []string{"meh", "!!!", "not bad at all", "I'm furious about the wasted resources", "😀"}

	for _, in := range inputs {
		first := c.Classify(in)
		if !first.Valid() {
			t.Fatalf("Classify(%q)=%q is not a valid sentiment", in, first)
		}
		if again := c.Classify(in); again != first {
			t.Fatalf("Classify(%q) changed between calls: %s then %s", in, first, again)
		}
	}
}
