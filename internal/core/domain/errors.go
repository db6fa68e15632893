package domain

import "errors"

var (
	ErrQuestionNotFound = errors.New("question not found")
	ErrChoiceNotFound   = errors.New("choice not found")
	ErrChoiceData       = errors.New("invalid choice data")
	ErrInvalidQuestion  = errors.New("invalid question data")
	ErrInvalidChoice    = errors.New("choice does not belong to this question")
)
