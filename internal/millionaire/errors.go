package millionaire

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound              = errors.New("not found")
	ErrNotOwner              = errors.New("game belongs to another user")
	ErrDuplicateActiveGame   = errors.New("user already has a game in progress")
	ErrInsufficientQuestions = errors.New("not enough questions in the bank")
	ErrGameNotActive         = errors.New("game is not in progress")
	ErrHelpAlreadyUsed       = errors.New("help already used")
	ErrNothingToCashOut      = errors.New("no answered questions to cash out")
	ErrUnknownHelp           = errors.New("unknown help type")
	ErrInvalidAnswer         = errors.New("invalid answer")
	ErrConflict              = errors.New("game was modified concurrently")
)

// InsufficientQuestionsError names the first level the bank cannot supply.
type InsufficientQuestionsError struct {
	Level int
}

func (e *InsufficientQuestionsError) Error() string {
	return fmt.Sprintf("no questions at level %d", e.Level)
}

func (e *InsufficientQuestionsError) Is(target error) bool {
	return target == ErrInsufficientQuestions
}
