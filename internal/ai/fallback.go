package ai

import "strings"

// EvaluateByContainment is the deterministic degraded-mode evaluator: a
// key word counts as used when it appears case-insensitively in the raw
// description. Results are always marked Fallback so callers can discount
// their quality.
func EvaluateByContainment(description string, keyWords []string, answerWord string) *Evaluation {
	lowered := strings.ToLower(description)

	var used []string
	for _, kw := range keyWords {
		if kw == "" {
			continue
		}
		if strings.Contains(lowered, strings.ToLower(kw)) {
			used = append(used, kw)
		}
	}

	return &Evaluation{
		WordsUsed:       used,
		AnswerMentioned: answerWord != "" && strings.Contains(lowered, strings.ToLower(answerWord)),
		Quality:         "unknown",
		Fallback:        true,
	}
}
