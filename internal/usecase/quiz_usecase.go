package usecase

import (
	"math/rand"
	"time"

	"github.com/samber/lo"

	"github.com/eslsoft/wordbook/internal/entity"
)

// maxDistractors is the number of wrong options offered per question.
const maxDistractors = 3

// QuizUsecase turns a contiguous range of vocabulary entries into
// multiple-choice questions and runs quiz sessions over them.
type QuizUsecase interface {
	Generate(words []*entity.Word) ([]entity.QuizQuestion, error)
	NewSession(words []*entity.Word) (*entity.QuizSession, error)
}

// NewQuizUsecase builds a generator seeded from the wall clock. Tests
// replace the rand to make option membership deterministic.
func NewQuizUsecase() QuizUsecase {
	return &quizUsecase{
		rnd: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

type quizUsecase struct {
	rnd *rand.Rand
}

// Generate builds one question per entry. The prompt is the entry's
// description when present, otherwise the word itself; the answer is the
// word. Distractors are drawn from the other entries of the same range,
// excluding any entry that shares the question's literal word text, so a
// true duplicate never competes with its own answer.
func (u *quizUsecase) Generate(words []*entity.Word) ([]entity.QuizQuestion, error) {
	if len(words) < 2 {
		return nil, entity.ErrInsufficientQuizData
	}

	questions := make([]entity.QuizQuestion, 0, len(words))
	for _, word := range words {
		prompt := word.Description
		if prompt == "" {
			prompt = word.Word
		}

		pool := lo.Filter(words, func(other *entity.Word, _ int) bool {
			return other.ID != word.ID && other.Word != word.Word
		})
		u.rnd.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
		if len(pool) > maxDistractors {
			pool = pool[:maxDistractors]
		}

		options := append(
			lo.Map(pool, func(w *entity.Word, _ int) string { return w.Word }),
			word.Word,
		)
		u.rnd.Shuffle(len(options), func(i, j int) { options[i], options[j] = options[j], options[i] })

		questions = append(questions, entity.QuizQuestion{
			Prompt:  prompt,
			Answer:  word.Word,
			Options: options,
		})
	}
	return questions, nil
}

func (u *quizUsecase) NewSession(words []*entity.Word) (*entity.QuizSession, error) {
	questions, err := u.Generate(words)
	if err != nil {
		return nil, err
	}
	return entity.NewQuizSession(questions)
}
