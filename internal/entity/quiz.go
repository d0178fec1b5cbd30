package entity

// QuizQuestion is a single multiple-choice question. The prompt shows the
// entry's description when one exists, otherwise the word itself; the
// answer is always the word.
type QuizQuestion struct {
	Prompt     string
	Answer     string
	Options    []string
	UserAnswer string
	Answered   bool
}

// Correct reports whether the recorded answer matches.
func (q *QuizQuestion) Correct() bool {
	return q.Answered && q.UserAnswer == q.Answer
}

// QuizState tracks the lifecycle of a quiz session.
type QuizState int32

const (
	QuizNotStarted QuizState = iota
	QuizInProgress
	QuizCompleted
)

// QuizSession walks a fixed question list one question at a time. Answers
// are one-shot: once a question is answered it locks. Advancing past the
// last question while it is answered completes the session; a completed
// session cannot be re-entered.
type QuizSession struct {
	Questions []QuizQuestion
	Current   int
	State     QuizState
}

func NewQuizSession(questions []QuizQuestion) (*QuizSession, error) {
	if len(questions) < 2 {
		return nil, ErrInsufficientQuizData
	}
	return &QuizSession{Questions: questions, State: QuizNotStarted}, nil
}

// Start moves the session into progress at the first question.
func (s *QuizSession) Start() error {
	if s.State != QuizNotStarted {
		return ErrQuizNotInProgress
	}
	s.State = QuizInProgress
	s.Current = 0
	return nil
}

// Question returns the active question.
func (s *QuizSession) Question() *QuizQuestion {
	return &s.Questions[s.Current]
}

// Answer records the answer for the active question.
func (s *QuizSession) Answer(option string) error {
	if s.State != QuizInProgress {
		return ErrQuizNotInProgress
	}
	q := s.Question()
	if q.Answered {
		return ErrQuizAlreadyAnswered
	}
	q.UserAnswer = option
	q.Answered = true
	return nil
}

// Next advances to the following question. Moving past the last question
// is only possible once it has been answered and completes the session.
func (s *QuizSession) Next() error {
	if s.State != QuizInProgress {
		return ErrQuizNotInProgress
	}
	if s.Current < len(s.Questions)-1 {
		s.Current++
		return nil
	}
	if !s.Question().Answered {
		return nil
	}
	s.State = QuizCompleted
	return nil
}

// Prev steps back one question; answers already given stay locked.
func (s *QuizSession) Prev() error {
	if s.State != QuizInProgress {
		return ErrQuizNotInProgress
	}
	if s.Current > 0 {
		s.Current--
	}
	return nil
}

// Score counts correctly answered questions.
func (s *QuizSession) Score() int {
	score := 0
	for i := range s.Questions {
		if s.Questions[i].Correct() {
			score++
		}
	}
	return score
}
