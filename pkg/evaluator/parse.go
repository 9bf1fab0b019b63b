package evaluator

import (
	"regexp"
	"strconv"
	"strings"
)

// Confidence patterns, ordered by decreasing specificity. First match
// wins.
var confidencePatterns = []*regexp.Regexp{
	// Standard format: "Confidence: 75%"
	regexp.MustCompile(`(?im)confidence[:\s]*(\d+(?:\.\d+)?)\s*%`),
	// Alternative: "75% confident"
	regexp.MustCompile(`(?im)(\d+(?:\.\d+)?)\s*%\s*confiden`),
	// Fraction format: "Confidence: 0.75"
	regexp.MustCompile(`(?im)confidence[:\s]*(0\.\d+)`),
	// Natural language: "I'm 75 percent confident"
	regexp.MustCompile(`(?im)(?:i\s*(?:am|'m)\s*)?(\d+(?:\.\d+)?)\s*percent\s*confiden`),
	// Standalone percentage early in the text
	regexp.MustCompile(`(?im)^.*?(\d+(?:\.\d+)?)\s*%`),
}

// Answer patterns, same ordering rule.
var answerPatterns = []*regexp.Regexp{
	// Standard format: "Answer: xyz"
	regexp.MustCompile(`(?i)(?:answer|prediction):\s*(.+?)(?:\n|$)`),
	// After "is" format: "The answer is xyz"
	regexp.MustCompile(`(?i)(?:answer|prediction)\s+is:?\s+(.+?)(?:\n|$)`),
	// Direct assertion: "It's xyz" or "This is xyz"
	regexp.MustCompile(`(?i)(?:it\s*(?:is|'s)|this\s*is)\s+(.+?)(?:\n|$)`),
	// After colon without keyword: ": xyz" on answer line
	regexp.MustCompile(`(?i):\s*([A-Z][^\n]+?)(?:\n|$)`),
}

// prediction is the parsed shape of one oracle response. The found
// flags record whether a pattern matched or the defaults kicked in;
// both defaulting at once is a format failure.
type prediction struct {
	confidence      float64
	confidenceFound bool
	answer          string
	answerFound     bool
}

// parsePrediction extracts confidence (0-1) and the predicted answer
// from free-form oracle text via the ordered pattern cascades.
func parsePrediction(text string) prediction {
	p := prediction{confidence: 0.5}

	for _, re := range confidencePatterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		val, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			continue
		}
		// Convert to 0-1 range if given as a percentage
		if val > 1.0 {
			val /= 100.0
		}
		p.confidence = clamp01(val)
		p.confidenceFound = true
		break
	}

	for _, re := range answerPatterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		p.answer = cleanAnswer(m[1])
		p.answerFound = true
		break
	}

	// Fallback: last non-empty line if no structured answer found
	if p.answer == "" {
		p.answerFound = false
		lines := strings.Split(strings.TrimSpace(text), "\n")
		for i := len(lines) - 1; i >= 0; i-- {
			if line := strings.TrimSpace(lines[i]); line != "" {
				p.answer = cleanAnswer(line)
				break
			}
		}
	}

	return p
}

func cleanAnswer(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, `"'`)
	s = strings.TrimRight(s, ".")
	return strings.Trim(strings.TrimSpace(s), `"'`)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
