package normalizerimpl

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/aaaton/golem/v4"
	"github.com/aaaton/golem/v4/dicts/en"
	"github.com/orgball2608/sentiment-trend-analyzer/internal/normalizer"
	"github.com/orgball2608/sentiment-trend-analyzer/pkg/logger"
	"go.uber.org/fx"
)

const minTokenLen = 3

var urlRe = regexp.MustCompile(`http\S+|www\S+`)

type Opts struct {
	fx.In

	Logger logger.Logger
}

type NormalizerImpl struct {
	lemmatizer *golem.Lemmatizer
	logger     logger.Logger
}

var _ normalizer.Normalizer = (*NormalizerImpl)(nil)

// New loads the English lemma dictionary. A load failure is returned so the
// process fails at startup rather than on first use.
func New(opts Opts) (*NormalizerImpl, error) {
	lem, err := golem.New(en.New())
	if err != nil {
		return nil, fmt.Errorf("failed to load english lemmatizer: %w", err)
	}

	opts.Logger.Info("English lemmatizer loaded")

	return &NormalizerImpl{
		lemmatizer: lem,
		logger:     opts.Logger.WithComponent("Normalizer"),
	}, nil
}

func (n *NormalizerImpl) Normalize(text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}

	text = strings.ToLower(text)
	text = urlRe.ReplaceAllString(text, "")
	text = stripPunctuation(text)

	tokens := strings.Fields(text)
	kept := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if _, stop := englishStopwords[tok]; stop {
			continue
		}
		if utf8.RuneCountInString(tok) < minTokenLen {
			continue
		}
		kept = append(kept, n.lemma(tok))
	}

	return strings.Join(kept, " ")
}

func (n *NormalizerImpl) lemma(tok string) string {
	if l := n.lemmatizer.Lemma(tok); l != "" {
		return l
	}
	return tok
}

// stripPunctuation removes ASCII punctuation with no replacement character.
func stripPunctuation(s string) string {
	return strings.Map(func(r rune) rune {
		if r < utf8.RuneSelf && isASCIIPunct(byte(r)) {
			return -1
		}
		return r
	}, s)
}

func isASCIIPunct(c byte) bool {
	return (c >= '!' && c <= '/') || (c >= ':' && c <= '@') || (c >= '[' && c <= '`') || (c >= '{' && c <= '~')
}
