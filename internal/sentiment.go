package internal

import (
	"github.com/jonreiter/govader"
)

// SentimentService scores a bounded sample of headlines. Scores are the mean
// of per-headline VADER compound scores, so they stay in [-1, 1]. The scorer
// is lexicon-based and fully deterministic; no network, no model.
type SentimentService interface {
	Score(headlines []string) float64
}

func NewSentimentService() SentimentService {
	return &sentimentServiceHandler{
		analyzer: govader.NewSentimentIntensityAnalyzer(),
	}
}

type sentimentServiceHandler struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

// Score returns exactly 0 (neutral) for an empty sample. Empty headline
// strings score 0 through the analyzer and still count toward the mean.
func (h *sentimentServiceHandler) Score(headlines []string) float64 {
	if len(headlines) == 0 {
		return 0
	}
	total := 0.0
	for _, headline := range headlines {
		total += h.analyzer.PolarityScores(headline).Compound
	}
	return total / float64(len(headlines))
}
