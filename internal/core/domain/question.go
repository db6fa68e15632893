package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// MaxQuestionTextLength bounds QuestionText, counted in runes.
const MaxQuestionTextLength = 200

// Question is a poll question. A zero ID means it has not been persisted
// yet; a zero PubDate on a create intent is filled in by the repository.
type Question struct {
	ID           int64     `json:"id"`
	QuestionText string    `json:"question_text"`
	PubDate      time.Time `json:"pub_date"`
}

// NewQuestion builds a create intent for a question.
func NewQuestion(text string, pubDate time.Time) (Question, error) {
	q := Question{QuestionText: text, PubDate: pubDate}
	if err := q.Validate(); err != nil {
		return Question{}, err
	}
	return q, nil
}

func (q Question) Validate() error {
	if strings.TrimSpace(q.QuestionText) == "" {
		return fmt.Errorf("%w: question text is required", ErrInvalidQuestion)
	}
	if utf8.RuneCountInString(q.QuestionText) > MaxQuestionTextLength {
		return fmt.Errorf("%w: question text exceeds %d characters", ErrInvalidQuestion, MaxQuestionTextLength)
	}
	return nil
}

// QuestionDetail is a question together with its choices.
type QuestionDetail struct {
	Question
	Choices []*Choice `json:"choices"`
}
