package evaluator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/predictive-selection/evoagent/pkg/tasks"
)

func TestCheckCorrectEstimation(t *testing.T) {
	tests := []struct {
		name   string
		actual string
		truth  string
		want   bool
	}{
		{"exact match", "5", "5", true},
		{"within ten percent", "5.3", "5", true},
		{"outside ten percent", "6", "5", false},
		{"thousands separator", "19,000", "19000", true},
		{"close large estimate", "10500", "11000", true},
		{"far large estimate", "20000", "11000", false},
		{"number embedded in prose", "Roughly 206 bones in total", "206", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CheckCorrect(tt.actual, tt.truth, tasks.TaskEstimation)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCheckCorrectNumericExtractionFallsThrough(t *testing.T) {
	// No numeric token on either side: string rules apply.
	assert.True(t, CheckCorrect("about half", "half", tasks.TaskEstimation))
	assert.False(t, CheckCorrect("no idea", "206", tasks.TaskEstimation))
}

func TestCheckCorrectShortGroundTruth(t *testing.T) {
	tests := []struct {
		name   string
		actual string
		truth  string
		want   bool
	}{
		{"exact", "1", "1", true},
		{"word boundary guard", "1", "210", false},
		{"digit inside larger number", "210", "1", false},
		{"boundary delimited", "the answer is 1, officially", "1", true},
		{"yes no exact", "No", "No", true},
		{"yes inside word rejected", "Nose", "No", false},
		{"short with punctuation", "Q.", "Q", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CheckCorrect(tt.actual, tt.truth, tasks.TaskReasoning)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCheckCorrectLongGroundTruth(t *testing.T) {
	assert.True(t, CheckCorrect("the answer is Paris", "Paris", tasks.TaskTrivia))
	assert.True(t, CheckCorrect("Canberra", "the city of Canberra", tasks.TaskTrivia))
	assert.True(t, CheckCorrect("SWEDEN", "Sweden", tasks.TaskTrivia))
	assert.False(t, CheckCorrect("Oslo", "Stockholm", tasks.TaskTrivia))
}

func TestCheckCorrectNormalization(t *testing.T) {
	assert.True(t, CheckCorrect(`"Mercury".`, "Mercury", tasks.TaskTrivia))
	assert.True(t, CheckCorrect("  tomato  ", "Tomato", tasks.TaskTrivia))
}
