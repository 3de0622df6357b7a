package normalizer

//go:generate go run go.uber.org/mock/mockgen -source=normalizer.go -destination=mocks/mock.go
type Normalizer interface {
	// Normalize lower-cases text and strips URLs and punctuation. It also drops
	// stopwords and short tokens, then lemmatizes what is left.
	// It never fails; empty input yields an empty string.
	Normalize(text string) string
}
