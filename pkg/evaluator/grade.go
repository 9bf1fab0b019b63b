package evaluator

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/predictive-selection/evoagent/pkg/tasks"
)

var numericToken = regexp.MustCompile(`[\d,.]+`)

// CheckCorrect grades an answer against ground truth with
// type-appropriate tolerance.
//
// Estimation tasks compare the first numeric token of each side and
// require relative error below 10%; if either side yields no parseable
// number, grading falls through to the string rules. Short ground
// truths (three normalized characters or fewer) need an exact or
// word-boundary-delimited match so "1" cannot match inside "210";
// longer ground truths accept bidirectional substring containment.
func CheckCorrect(actual, groundTruth string, taskType tasks.TaskType) bool {
	actualClean := normalizeAnswer(actual)
	truthClean := normalizeAnswer(groundTruth)

	if taskType == tasks.TaskEstimation {
		actualNum, okA := firstNumber(actualClean)
		truthNum, okT := firstNumber(truthClean)
		if okA && okT {
			denom := math.Max(math.Abs(truthNum), 1)
			return math.Abs(actualNum-truthNum)/denom < 0.10
		}
	}

	if len(truthClean) <= 3 {
		if actualClean == truthClean {
			return true
		}
		boundary := `(?:^|[\s,;:.()\[\]{}])` + regexp.QuoteMeta(truthClean) + `(?:$|[\s,;:.()\[\]{}])`
		matched, err := regexp.MatchString(boundary, actualClean)
		return err == nil && matched
	}

	return strings.Contains(actualClean, truthClean) || strings.Contains(truthClean, actualClean)
}

func normalizeAnswer(s string) string {
	s = norm.NFKC.String(s)
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.TrimRight(s, ".")
	s = strings.Trim(s, `"'`)
	return strings.TrimSpace(s)
}

// firstNumber extracts the first numeric token, tolerating thousands
// separators.
func firstNumber(s string) (float64, bool) {
	token := numericToken.FindString(s)
	if token == "" {
		return 0, false
	}
	token = strings.ReplaceAll(token, ",", "")
	v, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
