package service

import "golang-stock-sentiment/internal/sentiment/classifier"

const (
	VerdictBullish = "Bullish"
	VerdictBearish = "Bearish"
	VerdictNeutral = "Neutral"
	VerdictNoNews  = "Neutral (no news found)"
)

type tally struct {
	bullish int
	bearish int
	neutral int
}

func (t *tally) add(label classifier.Label) {
	switch label {
	case classifier.Positive:
		t.bullish++
	case classifier.Negative:
		t.bearish++
	default:
		t.neutral++
	}
}

func (t tally) total() int {
	return t.bullish + t.bearish + t.neutral
}

// Verdict derives the aggregate judgment from the tallies. Ties are Neutral.
func Verdict(bullish, bearish int) string {
	switch {
	case bullish > bearish:
		return VerdictBullish
	case bearish > bullish:
		return VerdictBearish
	default:
		return VerdictNeutral
	}
}
