package entity

import "errors"

// Domain errors for word entries and quiz sessions.
var (
	ErrWordNotFound         = errors.New("word not found")
	ErrInvalidWordText      = errors.New("invalid word text")
	ErrInvalidWordID        = errors.New("invalid word ID")
	ErrInvalidOrder         = errors.New("order must be a positive number")
	ErrInvalidRange         = errors.New("startId must be less than or equal to endId")
	ErrEmptyKeyword         = errors.New("keyword is required")
	ErrNoUpdateFields       = errors.New("no fields to update")
	ErrInsufficientQuizData = errors.New("at least 2 words are required for a quiz")
	ErrQuizNotInProgress    = errors.New("quiz session is not in progress")
	ErrQuizAlreadyAnswered  = errors.New("question already answered")
)
