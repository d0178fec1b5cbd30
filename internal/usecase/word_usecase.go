package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/eslsoft/wordbook/internal/entity"
	"github.com/eslsoft/wordbook/internal/repository"
)

// searchLimit caps substring search results.
const searchLimit = 50

// WordPage is one page of a user's vocabulary plus pagination totals.
type WordPage struct {
	Words     []*entity.Word
	CurPage   int32
	TotalPage int32
	Total     int64
}

// WordUsecase encapsulates business logic for managing vocabulary entries.
type WordUsecase interface {
	AddWord(ctx context.Context, userID int64, word *entity.Word) (*entity.Word, error)
	RemoveWord(ctx context.Context, userID, id int64) error
	UpdateWord(ctx context.Context, userID, id int64, update entity.WordUpdate) error
	UpdateAIContent(ctx context.Context, userID, id int64, aiContent string) error
	ListWords(ctx context.Context, userID int64, page repository.Pagination) (*WordPage, error)
	SearchWords(ctx context.Context, userID int64, keyword string) ([]*entity.Word, error)
	WordsInRange(ctx context.Context, userID, startID, endID int64) ([]*entity.Word, error)
	WordByOrder(ctx context.Context, userID, order int64) (*entity.Word, error)
	CheckWord(ctx context.Context, userID int64, word string) (*entity.ExistsResult, error)
}

// NewWordUsecase wires the repository with default behaviour.
func NewWordUsecase(repo repository.WordRepository) WordUsecase {
	return &wordUsecase{
		repo:  repo,
		clock: time.Now,
	}
}

type wordUsecase struct {
	repo  repository.WordRepository
	clock func() time.Time
}

func (u *wordUsecase) AddWord(ctx context.Context, userID int64, word *entity.Word) (*entity.Word, error) {
	if word == nil || strings.TrimSpace(word.Word) == "" {
		return nil, entity.ErrInvalidWordText
	}

	// Duplicates are allowed on purpose: the existence check endpoint is
	// how the client surfaces them.
	copy := *word
	copy.UserID = userID
	copy.Normalize(u.clock())
	return u.repo.Create(ctx, &copy)
}

func (u *wordUsecase) RemoveWord(ctx context.Context, userID, id int64) error {
	if id <= 0 {
		return entity.ErrWordNotFound
	}
	return u.repo.Delete(ctx, userID, id)
}

func (u *wordUsecase) UpdateWord(ctx context.Context, userID, id int64, update entity.WordUpdate) error {
	if update.Empty() {
		return entity.ErrNoUpdateFields
	}
	if id <= 0 {
		return entity.ErrWordNotFound
	}
	return u.repo.UpdateFields(ctx, userID, id, update)
}

func (u *wordUsecase) UpdateAIContent(ctx context.Context, userID, id int64, aiContent string) error {
	if id <= 0 {
		return entity.ErrWordNotFound
	}
	return u.repo.UpdateAIContent(ctx, userID, id, aiContent)
}

func (u *wordUsecase) ListWords(ctx context.Context, userID int64, page repository.Pagination) (*WordPage, error) {
	if page.PageNo <= 0 {
		page.PageNo = 1
	}
	if page.PageSize <= 0 {
		page.PageSize = 10
	}

	words, total, err := u.repo.List(ctx, userID, page)
	if err != nil {
		return nil, err
	}

	totalPage := int32((total + int64(page.PageSize) - 1) / int64(page.PageSize))
	return &WordPage{
		Words:     words,
		CurPage:   page.PageNo,
		TotalPage: totalPage,
		Total:     total,
	}, nil
}

func (u *wordUsecase) SearchWords(ctx context.Context, userID int64, keyword string) ([]*entity.Word, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, entity.ErrEmptyKeyword
	}
	return u.repo.Search(ctx, userID, keyword, searchLimit)
}

func (u *wordUsecase) WordsInRange(ctx context.Context, userID, startID, endID int64) ([]*entity.Word, error) {
	if startID > endID {
		return nil, entity.ErrInvalidRange
	}
	return u.repo.RangeByID(ctx, userID, startID, endID)
}

// WordByOrder resolves a 1-based position (1 = newest) to an entry. An
// order beyond the user's total clamps to the oldest entry instead of
// failing; the export and quiz flows rely on always getting a word back
// for any positive order.
func (u *wordUsecase) WordByOrder(ctx context.Context, userID, order int64) (*entity.Word, error) {
	if order <= 0 {
		return nil, entity.ErrInvalidOrder
	}

	total, err := u.repo.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if total == 0 {
		return nil, entity.ErrWordNotFound
	}

	if order > total {
		order = total
	}
	return u.repo.GetByOffset(ctx, userID, order-1)
}

func (u *wordUsecase) CheckWord(ctx context.Context, userID int64, word string) (*entity.ExistsResult, error) {
	if strings.TrimSpace(word) == "" {
		return nil, entity.ErrInvalidWordText
	}

	matches, err := u.repo.FindMatches(ctx, userID, word)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return &entity.ExistsResult{Words: []entity.WordWithOrder{}}, nil
	}
	return &entity.ExistsResult{
		Exists: true,
		Count:  int64(len(matches)),
		Words:  matches,
	}, nil
}
