package sourceimpl

import (
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/orgball2608/sentiment-trend-analyzer/internal/domain"
)

type template struct {
	title     string
	body      string
	score     int
	subreddit string
	age       time.Duration
}

// Each template mentions {topic} at least once in title or body.
var templates = []template{
	{
		title:     "Why {topic} is changing everything for the better",
		body:      "I've been following {topic} closely and I'm genuinely excited about the positive impact it's having. The community response has been amazing and I think we're seeing real progress.",
		score:     1250,
		subreddit: "technology",
		age:       2 * time.Hour,
	},
	{
		title:     "Frustrated with how {topic} is being handled",
		body:      "This is absolutely ridiculous. The way {topic} is being managed shows complete lack of understanding. I'm really disappointed and angry about this situation.",
		score:     890,
		subreddit: "discussion",
		age:       5 * time.Hour,
	},
	{
		title:     "Just learned about {topic} - what should I know?",
		body:      "Hey everyone, I'm new to {topic} and looking for some neutral information. Can someone explain the basics? I want to understand both sides before forming an opinion.",
		score:     450,
		subreddit: "askreddit",
		age:       8 * time.Hour,
	},
	{
		title:     "{topic} exceeded all my expectations!",
		body:      "I was skeptical at first, but {topic} has completely blown me away. The results speak for themselves and I couldn't be happier. This is exactly what we needed!",
		score:     2100,
		subreddit: "technology",
		age:       1 * time.Hour,
	},
	{
		title:     "Concerned about the future of {topic}",
		body:      "I'm worried about where {topic} is heading. There are some serious issues that need to be addressed, and I fear we might be heading in the wrong direction.",
		score:     670,
		subreddit: "discussion",
		age:       12 * time.Hour,
	},
	{
		title:     "{topic} - A balanced perspective",
		body:      "Let's have a thoughtful discussion about {topic}. There are pros and cons, and I think we need to consider multiple viewpoints. What are your thoughts?",
		score:     320,
		subreddit: "discussion",
		age:       15 * time.Hour,
	},
	{
		title:     "This {topic} update is incredible!",
		body:      "I'm so thrilled about the latest developments in {topic}! Everything is working perfectly and the community is thriving. This is amazing news!",
		score:     1800,
		subreddit: "technology",
		age:       3 * time.Hour,
	},
	{
		title:     "Why {topic} is a complete disaster",
		body:      "I can't believe how poorly {topic} has been implemented. This is a mess and I'm furious about the wasted resources. Someone needs to be held accountable.",
		score:     950,
		subreddit: "discussion",
		age:       6 * time.Hour,
	},
	{
		title:     "Quick question about {topic}",
		body:      "Can someone explain {topic} in simple terms? I'm trying to understand what it means and how it affects things. Looking for factual information.",
		score:     280,
		subreddit: "askreddit",
		age:       20 * time.Hour,
	},
	{
		title:     "{topic} brings hope for the future",
		body:      "After years of uncertainty, {topic} finally gives me hope. The positive changes are visible and I believe we're on the right track. This is wonderful!",
		score:     1400,
		subreddit: "technology",
		age:       4 * time.Hour,
	},
	{
		title:     "I'm scared about what {topic} means",
		body:      "The implications of {topic} are really frightening. I don't know what to expect and I'm genuinely concerned about the consequences. This is worrying.",
		score:     520,
		subreddit: "discussion",
		age:       10 * time.Hour,
	},
	{
		title:     "{topic} - What a pleasant surprise!",
		body:      "I wasn't expecting much from {topic}, but wow! This is really impressive and I'm pleasantly surprised by how well it turned out. Great job!",
		score:     1100,
		subreddit: "technology",
		age:       7 * time.Hour,
	},
	{
		title:     "Neutral analysis of {topic}",
		body:      "Let me break down {topic} objectively. Here are the facts: it has certain characteristics, some people support it, others don't. Let's discuss the data.",
		score:     380,
		subreddit: "discussion",
		age:       18 * time.Hour,
	},
	{
		title:     "{topic} makes me so happy!",
		body:      "I'm absolutely delighted by {topic}! Everything about it brings me joy. This is exactly what I hoped for and I couldn't be more pleased.",
		score:     1650,
		subreddit: "technology",
		age:       2 * time.Hour,
	},
	{
		title:     "Disappointed and sad about {topic}",
		body:      "I had high hopes for {topic}, but I'm really disappointed. Things didn't work out as expected and I feel sad about the missed opportunities.",
		score:     740,
		subreddit: "discussion",
		age:       9 * time.Hour,
	},
}

// Synthetic serves the template bank in shuffled order. The random source and
// clock are injected so tests can pin the output.
type Synthetic struct {
	mu  sync.Mutex
	rng *rand.Rand
	now func() time.Time
}

func NewSynthetic(rng *rand.Rand, now func() time.Time) *Synthetic {
	if rng == nil {
		rng = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x5eed))
	}
	if now == nil {
		now = time.Now
	}
	return &Synthetic{rng: rng, now: now}
}

func (s *Synthetic) Posts(topic string, limit int) []domain.RawPost {
	if limit <= 0 {
		return []domain.RawPost{}
	}

	now := s.now().UTC()
	posts := make([]domain.RawPost, len(templates))
	for i, t := range templates {
		posts[i] = domain.RawPost{
			Title:     strings.ReplaceAll(t.title, "{topic}", topic),
			Body:      strings.ReplaceAll(t.body, "{topic}", topic),
			Score:     t.score,
			Subreddit: t.subreddit,
			CreatedAt: now.Add(-t.age),
		}
	}

	s.mu.Lock()
	s.rng.Shuffle(len(posts), func(i, j int) {
		posts[i], posts[j] = posts[j], posts[i]
	})
	s.mu.Unlock()

	if limit < len(posts) {
		posts = posts[:limit]
	}
	return posts
}
