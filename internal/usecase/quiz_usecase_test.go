package usecase

import (
	"math/rand"
	"testing"

	"github.com/eslsoft/wordbook/internal/entity"
)

func newSeededQuizUsecase(seed int64) QuizUsecase {
	uc := NewQuizUsecase()
	uc.(*quizUsecase).rnd = rand.New(rand.NewSource(seed))
	return uc
}

func quizWords(texts ...string) []*entity.Word {
	words := make([]*entity.Word, len(texts))
	for i, text := range texts {
		words[i] = &entity.Word{ID: int64(i + 1), UserID: 1, Word: text}
	}
	return words
}

func containsOption(options []string, want string) bool {
	for _, opt := range options {
		if opt == want {
			return true
		}
	}
	return false
}

func TestGenerateRequiresTwoWords(t *testing.T) {
	uc := newSeededQuizUsecase(1)

	if _, err := uc.Generate(nil); err != entity.ErrInsufficientQuizData {
		t.Fatalf("expected ErrInsufficientQuizData, got %v", err)
	}
	if _, err := uc.Generate(quizWords("apple")); err != entity.ErrInsufficientQuizData {
		t.Fatalf("expected ErrInsufficientQuizData for one word, got %v", err)
	}
}

func TestGenerateTwoWords(t *testing.T) {
	uc := newSeededQuizUsecase(1)

	questions, err := uc.Generate(quizWords("apple", "banana"))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(questions))
	}
	for i, q := range questions {
		if len(q.Options) != 2 {
			t.Fatalf("question %d: expected 2 options, got %d", i, len(q.Options))
		}
		if !containsOption(q.Options, q.Answer) {
			t.Fatalf("question %d: options %v missing answer %q", i, q.Options, q.Answer)
		}
	}
}

func TestGeneratePromptPrefersDescription(t *testing.T) {
	uc := newSeededQuizUsecase(1)

	words := []*entity.Word{
		{ID: 1, Word: "apple", Description: "quả táo"},
		{ID: 2, Word: "banana"},
	}
	questions, err := uc.Generate(words)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if questions[0].Prompt != "quả táo" {
		t.Fatalf("expected description prompt, got %q", questions[0].Prompt)
	}
	if questions[1].Prompt != "banana" {
		t.Fatalf("expected word fallback prompt, got %q", questions[1].Prompt)
	}
}

func TestGenerateCapsOptionsAtFour(t *testing.T) {
	uc := newSeededQuizUsecase(7)

	questions, err := uc.Generate(quizWords("a", "b", "c", "d", "e", "f"))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(questions) != 6 {
		t.Fatalf("expected 6 questions, got %d", len(questions))
	}
	for i, q := range questions {
		if len(q.Options) != 4 {
			t.Fatalf("question %d: expected 4 options, got %d", i, len(q.Options))
		}
		if !containsOption(q.Options, q.Answer) {
			t.Fatalf("question %d: options missing answer", i)
		}
		seen := map[string]bool{}
		for _, opt := range q.Options {
			if seen[opt] {
				t.Fatalf("question %d: duplicate option %q", i, opt)
			}
			seen[opt] = true
		}
	}
}

func TestGenerateExcludesDuplicateWordsFromDistractors(t *testing.T) {
	uc := newSeededQuizUsecase(3)

	// Two true duplicates of "apple": neither may distract the other.
	words := []*entity.Word{
		{ID: 1, Word: "apple"},
		{ID: 2, Word: "apple"},
		{ID: 3, Word: "banana"},
	}
	questions, err := uc.Generate(words)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	for i, q := range questions {
		if q.Answer != "apple" {
			continue
		}
		count := 0
		for _, opt := range q.Options {
			if opt == "apple" {
				count++
			}
		}
		if count != 1 {
			t.Fatalf("question %d: answer must appear exactly once, got %d", i, count)
		}
		if len(q.Options) != 2 {
			t.Fatalf("question %d: only banana can distract, expected 2 options, got %v", i, q.Options)
		}
	}
}

func TestNewSessionWalkthrough(t *testing.T) {
	uc := newSeededQuizUsecase(5)

	session, err := uc.NewSession(quizWords("apple", "banana", "cherry"))
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	if session.State != entity.QuizNotStarted {
		t.Fatalf("expected NotStarted, got %v", session.State)
	}

	if err := session.Answer("apple"); err != entity.ErrQuizNotInProgress {
		t.Fatalf("expected ErrQuizNotInProgress before start, got %v", err)
	}
	if err := session.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}

	// Answer everything correctly except the second question.
	for i := 0; i < len(session.Questions); i++ {
		answer := session.Question().Answer
		if i == 1 {
			answer = "wrong"
		}
		if err := session.Answer(answer); err != nil {
			t.Fatalf("Answer %d: %v", i, err)
		}
		if err := session.Next(); err != nil {
			t.Fatalf("Next %d: %v", i, err)
		}
	}

	if session.State != entity.QuizCompleted {
		t.Fatalf("expected Completed, got %v", session.State)
	}
	if got := session.Score(); got != 2 {
		t.Fatalf("expected score 2, got %d", got)
	}
	if err := session.Start(); err != entity.ErrQuizNotInProgress {
		t.Fatalf("expected no re-entry after completion, got %v", err)
	}
}

func TestSessionAnswersAreOneShot(t *testing.T) {
	uc := newSeededQuizUsecase(5)

	session, err := uc.NewSession(quizWords("apple", "banana"))
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	if err := session.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}

	if err := session.Answer("apple"); err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if err := session.Answer("banana"); err != entity.ErrQuizAlreadyAnswered {
		t.Fatalf("expected ErrQuizAlreadyAnswered, got %v", err)
	}

	// Back and forth: the locked answer stays.
	if err := session.Next(); err != nil {
		t.Fatalf("Next: %v", err)
	}
	if err := session.Prev(); err != nil {
		t.Fatalf("Prev: %v", err)
	}
	if !session.Question().Answered || session.Question().UserAnswer != "apple" {
		t.Fatalf("expected locked answer, got %+v", session.Question())
	}
}

func TestSessionNextWithoutAnswerDoesNotComplete(t *testing.T) {
	uc := newSeededQuizUsecase(5)

	session, _ := uc.NewSession(quizWords("apple", "banana"))
	_ = session.Start()
	_ = session.Next()

	// On the last question without an answer: Next must not complete.
	if err := session.Next(); err != nil {
		t.Fatalf("Next: %v", err)
	}
	if session.State != entity.QuizInProgress {
		t.Fatalf("expected InProgress, got %v", session.State)
	}
}
