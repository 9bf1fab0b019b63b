package evaluator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePredictionConfidenceCascade(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		confidence float64
		found      bool
	}{
		{
			name:       "standard labeled percentage",
			text:       "Confidence: 75%\nAnswer: Paris",
			confidence: 0.75,
			found:      true,
		},
		{
			name:       "percent confident phrasing",
			text:       "I'd say I'm 80% confident here.\nAnswer: Mercury",
			confidence: 0.80,
			found:      true,
		},
		{
			name:       "decimal labeled",
			text:       "Confidence: 0.65\nAnswer: Canberra",
			confidence: 0.65,
			found:      true,
		},
		{
			name:       "natural language percent",
			text:       "I am 90 percent confident.\nThe answer is 206.",
			confidence: 0.90,
			found:      true,
		},
		{
			name:       "bare leading percentage",
			text:       "85%\nAu",
			confidence: 0.85,
			found:      true,
		},
		{
			name:       "no confidence defaults to half",
			text:       "The answer is Paris",
			confidence: 0.5,
			found:      false,
		},
		{
			name:       "over 100 clamps to 1",
			text:       "Confidence: 250%\nAnswer: x",
			confidence: 1.0,
			found:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := parsePrediction(tt.text)
			assert.InDelta(t, tt.confidence, p.confidence, 1e-9)
			assert.Equal(t, tt.found, p.confidenceFound)
		})
	}
}

func TestParsePredictionAnswerCascade(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		answer string
		found  bool
	}{
		{
			name:   "labeled answer",
			text:   "Confidence: 75%\nAnswer: Paris",
			answer: "Paris",
			found:  true,
		},
		{
			name:   "prediction label",
			text:   "Prediction: 1648",
			answer: "1648",
			found:  true,
		},
		{
			name:   "answer is phrasing",
			text:   "Confidence: 60%\nThe answer is Silicon",
			answer: "Silicon",
			found:  true,
		},
		{
			name:   "copular assertion",
			text:   "Hmm. It's Sweden, I believe.",
			answer: "Sweden, I believe",
			found:  true,
		},
		{
			name:   "quoted answer stripped",
			text:   `Answer: "Galileo".`,
			answer: "Galileo",
			found:  true,
		},
		{
			name:   "falls back to last non-empty line",
			text:   "Thinking about it...\n\nMercury\n",
			answer: "Mercury",
			found:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := parsePrediction(tt.text)
			assert.Equal(t, tt.answer, p.answer)
			assert.Equal(t, tt.found, p.answerFound)
		})
	}
}

func TestParsePredictionEmptyText(t *testing.T) {
	p := parsePrediction("")
	assert.Equal(t, 0.5, p.confidence)
	assert.False(t, p.confidenceFound)
	assert.Equal(t, "", p.answer)
	assert.False(t, p.answerFound)
}
