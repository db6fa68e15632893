package domain

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// MaxChoiceTextLength bounds Choice.Text, counted in runes.
const MaxChoiceTextLength = 200

type Choice struct {
	ID         int64  `json:"id"`
	QuestionID int64  `json:"question_id"`
	Text       string `json:"choice_text"`
	Votes      int    `json:"votes"`
}

// NewChoice builds a create intent. It fails with ErrChoiceData when the
// choice is not linked to a question.
func NewChoice(questionID int64, text string, votes int) (Choice, error) {
	c := Choice{QuestionID: questionID, Text: text, Votes: votes}
	if err := c.Validate(); err != nil {
		return Choice{}, err
	}
	return c, nil
}

func (c Choice) Validate() error {
	if c.ID == 0 && c.QuestionID == 0 {
		return fmt.Errorf("%w: question id is required", ErrChoiceData)
	}
	if err := ValidateChoiceText(c.Text); err != nil {
		return err
	}
	if c.Votes < 0 {
		return fmt.Errorf("%w: votes cannot be negative", ErrChoiceData)
	}
	return nil
}

// ValidateChoiceText checks text on its own, before the choice is linked
// to a question.
func ValidateChoiceText(text string) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("%w: choice text is required", ErrChoiceData)
	}
	if utf8.RuneCountInString(text) > MaxChoiceTextLength {
		return fmt.Errorf("%w: choice text exceeds %d characters", ErrChoiceData, MaxChoiceTextLength)
	}
	return nil
}

// ChoiceUpdate is a partial update. Nil fields are left untouched.
type ChoiceUpdate struct {
	ID    int64
	Text  *string
	Votes *int
}

func (u ChoiceUpdate) Validate() error {
	if u.Text != nil {
		if err := ValidateChoiceText(*u.Text); err != nil {
			return err
		}
	}
	if u.Votes != nil && *u.Votes < 0 {
		return fmt.Errorf("%w: votes cannot be negative", ErrChoiceData)
	}
	return nil
}

func (u ChoiceUpdate) Empty() bool {
	return u.Text == nil && u.Votes == nil
}
