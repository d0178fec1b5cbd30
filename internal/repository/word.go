package repository

import (
	"context"

	"github.com/eslsoft/wordbook/internal/entity"
)

// WordRepository defines data access for a user's vocabulary entries.
// Every method is scoped by the owning user id; an entry is never visible
// to, or mutated by, another user's calls.
type WordRepository interface {
	Create(ctx context.Context, word *entity.Word) (*entity.Word, error)
	// Delete removes the entry when it exists and belongs to the user.
	// A missing or foreign id yields entity.ErrWordNotFound.
	Delete(ctx context.Context, userID, id int64) error
	// UpdateFields applies only the non-nil fields of the update.
	UpdateFields(ctx context.Context, userID, id int64, update entity.WordUpdate) error
	UpdateAIContent(ctx context.Context, userID, id int64, aiContent string) error
	// List returns one page ordered by id descending plus the user's total.
	List(ctx context.Context, userID int64, page Pagination) ([]*entity.Word, int64, error)
	// Search returns up to limit case-insensitive substring matches on the
	// word text, ordered alphabetically.
	Search(ctx context.Context, userID int64, keyword string, limit int32) ([]*entity.Word, error)
	// RangeByID returns entries with startID <= id <= endID, id descending.
	RangeByID(ctx context.Context, userID, startID, endID int64) ([]*entity.Word, error)
	CountByUser(ctx context.Context, userID int64) (int64, error)
	// GetByOffset fetches the single entry at the given offset of the
	// id-descending ordering (offset 0 is the newest entry).
	GetByOffset(ctx context.Context, userID int64, offset int64) (*entity.Word, error)
	// FindMatches returns every entry whose text equals word
	// case-insensitively, newest first, each carrying its order position.
	FindMatches(ctx context.Context, userID int64, word string) ([]entity.WordWithOrder, error)
}
