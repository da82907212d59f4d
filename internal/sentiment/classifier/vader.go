package classifier

import (
	"context"
	"math"

	"github.com/jonreiter/govader"
)

// vaderThreshold is the compound score beyond which a text counts as positive or negative.
const vaderThreshold = 0.05

type vaderModel struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

// NewVADERLoader returns a Loader for the lexicon-based VADER model. It needs no model files.
func NewVADERLoader() Loader {
	return func(ctx context.Context) (Model, error) {
		return &vaderModel{analyzer: govader.NewSentimentIntensityAnalyzer()}, nil
	}
}

func (m *vaderModel) Predict(_ context.Context, text string) (Prediction, error) {
	scores := m.analyzer.PolarityScores(text)
	compound := scores.Compound

	switch {
	case compound >= vaderThreshold:
		return Prediction{Label: Positive, Confidence: math.Abs(compound)}, nil
	case compound <= -vaderThreshold:
		return Prediction{Label: Negative, Confidence: math.Abs(compound)}, nil
	default:
		return Prediction{Label: Neutral, Confidence: 1 - math.Abs(compound)}, nil
	}
}

func (m *vaderModel) Close() error {
	return nil
}
