package domain

type ChoiceResult struct {
	Choice
	Percentage float64 `json:"percentage"`
}

type QuestionResults struct {
	Question   Question       `json:"question"`
	Choices    []ChoiceResult `json:"choices"`
	TotalVotes int            `json:"total_votes"`
}

// NewQuestionResults tallies choices into per-choice percentages.
func NewQuestionResults(q Question, choices []*Choice) *QuestionResults {
	total := 0
	for _, c := range choices {
		total += c.Votes
	}

	results := &QuestionResults{
		Question:   q,
		Choices:    make([]ChoiceResult, 0, len(choices)),
		TotalVotes: total,
	}
	for _, c := range choices {
		percentage := 0.0
		if total > 0 {
			percentage = (float64(c.Votes) / float64(total)) * 100
		}
		results.Choices = append(results.Choices, ChoiceResult{Choice: *c, Percentage: percentage})
	}
	return results
}
