package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/eslsoft/wordbook/internal/entity"
	"github.com/eslsoft/wordbook/internal/repository"
)

type fakeWordRepo struct {
	mu    sync.RWMutex
	seq   int64
	items map[int64]*entity.Word
}

func newFakeWordRepo() *fakeWordRepo {
	return &fakeWordRepo{items: make(map[int64]*entity.Word)}
}

// insert places an entry with a caller-chosen id, bypassing the sequence.
// Used to model id gaps left behind by deletes.
func (r *fakeWordRepo) insert(w entity.Word) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if w.ID > r.seq {
		r.seq = w.ID
	}
	copy := w
	r.items[copy.ID] = &copy
}

func (r *fakeWordRepo) Create(ctx context.Context, w *entity.Word) (*entity.Word, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	copy := *w
	copy.ID = r.seq
	r.items[copy.ID] = &copy
	result := copy
	return &result, nil
}

func (r *fakeWordRepo) Delete(ctx context.Context, userID, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[id]
	if !ok || item.UserID != userID {
		return entity.ErrWordNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *fakeWordRepo) UpdateFields(ctx context.Context, userID, id int64, update entity.WordUpdate) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[id]
	if !ok || item.UserID != userID {
		return entity.ErrWordNotFound
	}
	if update.Description != nil {
		item.Description = *update.Description
	}
	if update.Note != nil {
		item.Note = *update.Note
	}
	if update.AIContent != nil {
		item.AIContent = *update.AIContent
	}
	return nil
}

func (r *fakeWordRepo) UpdateAIContent(ctx context.Context, userID, id int64, aiContent string) error {
	return r.UpdateFields(ctx, userID, id, entity.WordUpdate{AIContent: &aiContent})
}

func (r *fakeWordRepo) List(ctx context.Context, userID int64, page repository.Pagination) ([]*entity.Word, int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	sorted := r.sortedDesc(userID)
	total := int64(len(sorted))

	start := int(page.Offset())
	if start >= len(sorted) {
		return []*entity.Word{}, total, nil
	}
	end := start + int(page.PageSize)
	if end > len(sorted) {
		end = len(sorted)
	}
	return sorted[start:end], total, nil
}

func (r *fakeWordRepo) Search(ctx context.Context, userID int64, keyword string, limit int32) ([]*entity.Word, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	needle := strings.ToLower(keyword)
	var matched []*entity.Word
	for _, item := range r.sortedDesc(userID) {
		if strings.Contains(strings.ToLower(item.Word), needle) {
			matched = append(matched, item)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return strings.ToLower(matched[i].Word) < strings.ToLower(matched[j].Word)
	})
	if int32(len(matched)) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

func (r *fakeWordRepo) RangeByID(ctx context.Context, userID, startID, endID int64) ([]*entity.Word, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	result := make([]*entity.Word, 0)
	for _, item := range r.sortedDesc(userID) {
		if item.ID >= startID && item.ID <= endID {
			result = append(result, item)
		}
	}
	return result, nil
}

func (r *fakeWordRepo) CountByUser(ctx context.Context, userID int64) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return int64(len(r.sortedDesc(userID))), nil
}

func (r *fakeWordRepo) GetByOffset(ctx context.Context, userID int64, offset int64) (*entity.Word, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	sorted := r.sortedDesc(userID)
	if offset < 0 || offset >= int64(len(sorted)) {
		return nil, entity.ErrWordNotFound
	}
	return sorted[offset], nil
}

func (r *fakeWordRepo) FindMatches(ctx context.Context, userID int64, word string) ([]entity.WordWithOrder, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	needle := strings.ToLower(word)
	var matches []entity.WordWithOrder
	for i, item := range r.sortedDesc(userID) {
		if strings.ToLower(item.Word) == needle {
			matches = append(matches, entity.WordWithOrder{Word: *item, Order: int64(i) + 1})
		}
	}
	return matches, nil
}

func (r *fakeWordRepo) sortedDesc(userID int64) []*entity.Word {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var sorted []*entity.Word
	for _, item := range r.items {
		if item.UserID == userID {
			copy := *item
			sorted = append(sorted, &copy)
		}
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID > sorted[j].ID })
	return sorted
}

func newTestUsecase(repo *fakeWordRepo) WordUsecase {
	uc := NewWordUsecase(repo)
	impl := uc.(*wordUsecase)
	impl.clock = func() time.Time { return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC) }
	return uc
}

func TestAddWordAssignsIDAndTrims(t *testing.T) {
	repo := newFakeWordRepo()
	uc := newTestUsecase(repo)

	created, err := uc.AddWord(context.Background(), 1, &entity.Word{Word: "  apple ", Description: "quả táo"})
	if err != nil {
		t.Fatalf("AddWord: %v", err)
	}
	if created.ID == 0 {
		t.Fatal("expected assigned id")
	}
	if created.Word != "apple" {
		t.Fatalf("expected trimmed word, got %q", created.Word)
	}
	if created.UserID != 1 {
		t.Fatalf("expected owner 1, got %d", created.UserID)
	}
	if created.CreatedAt.IsZero() {
		t.Fatal("expected creation timestamp")
	}
}

func TestAddWordRejectsEmptyText(t *testing.T) {
	uc := newTestUsecase(newFakeWordRepo())

	if _, err := uc.AddWord(context.Background(), 1, &entity.Word{Word: "   "}); err != entity.ErrInvalidWordText {
		t.Fatalf("expected ErrInvalidWordText, got %v", err)
	}
	if _, err := uc.AddWord(context.Background(), 1, nil); err != entity.ErrInvalidWordText {
		t.Fatalf("expected ErrInvalidWordText for nil, got %v", err)
	}
}

func TestAddWordAllowsDuplicates(t *testing.T) {
	repo := newFakeWordRepo()
	uc := newTestUsecase(repo)

	first, err := uc.AddWord(context.Background(), 1, &entity.Word{Word: "apple"})
	if err != nil {
		t.Fatalf("AddWord: %v", err)
	}
	second, err := uc.AddWord(context.Background(), 1, &entity.Word{Word: "apple"})
	if err != nil {
		t.Fatalf("AddWord duplicate: %v", err)
	}
	if first.ID == second.ID {
		t.Fatal("duplicates must be distinct entries")
	}
}

func TestRemoveWordForeignOwnerNotFound(t *testing.T) {
	repo := newFakeWordRepo()
	uc := newTestUsecase(repo)

	created, _ := uc.AddWord(context.Background(), 1, &entity.Word{Word: "apple"})

	if err := uc.RemoveWord(context.Background(), 2, created.ID); err != entity.ErrWordNotFound {
		t.Fatalf("expected ErrWordNotFound for foreign delete, got %v", err)
	}

	// The rightful owner still sees the entry.
	result, err := uc.CheckWord(context.Background(), 1, "apple")
	if err != nil {
		t.Fatalf("CheckWord: %v", err)
	}
	if !result.Exists || result.Count != 1 {
		t.Fatalf("expected entry to survive foreign delete, got %+v", result)
	}

	if err := uc.RemoveWord(context.Background(), 1, created.ID); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
}

func TestUpdateWordPartialLeavesOtherFields(t *testing.T) {
	repo := newFakeWordRepo()
	uc := newTestUsecase(repo)

	created, _ := uc.AddWord(context.Background(), 1, &entity.Word{Word: "apple", Description: "old", Note: "note", AIContent: "ai"})

	desc := "x"
	if err := uc.UpdateWord(context.Background(), 1, created.ID, entity.WordUpdate{Description: &desc}); err != nil {
		t.Fatalf("UpdateWord: %v", err)
	}

	fetched, err := uc.WordByOrder(context.Background(), 1, 1)
	if err != nil {
		t.Fatalf("WordByOrder: %v", err)
	}
	if fetched.Description != "x" {
		t.Fatalf("expected updated description, got %q", fetched.Description)
	}
	if fetched.Note != "note" || fetched.AIContent != "ai" {
		t.Fatalf("expected untouched note/ai content, got %q/%q", fetched.Note, fetched.AIContent)
	}
}

func TestUpdateWordRequiresFields(t *testing.T) {
	uc := newTestUsecase(newFakeWordRepo())

	if err := uc.UpdateWord(context.Background(), 1, 1, entity.WordUpdate{}); err != entity.ErrNoUpdateFields {
		t.Fatalf("expected ErrNoUpdateFields, got %v", err)
	}
}

func TestUpdateAIContentOnly(t *testing.T) {
	repo := newFakeWordRepo()
	uc := newTestUsecase(repo)

	created, _ := uc.AddWord(context.Background(), 1, &entity.Word{Word: "apple", Description: "desc"})

	if err := uc.UpdateAIContent(context.Background(), 1, created.ID, "generated"); err != nil {
		t.Fatalf("UpdateAIContent: %v", err)
	}
	if err := uc.UpdateAIContent(context.Background(), 2, created.ID, "other"); err != entity.ErrWordNotFound {
		t.Fatalf("expected ErrWordNotFound for foreign update, got %v", err)
	}

	fetched, _ := uc.WordByOrder(context.Background(), 1, 1)
	if fetched.AIContent != "generated" || fetched.Description != "desc" {
		t.Fatalf("unexpected state after ai update: %+v", fetched)
	}
}

func TestListWordsPagination(t *testing.T) {
	repo := newFakeWordRepo()
	uc := newTestUsecase(repo)

	for i := 0; i < 25; i++ {
		if _, err := uc.AddWord(context.Background(), 1, &entity.Word{Word: fmt.Sprintf("word-%02d", i)}); err != nil {
			t.Fatalf("AddWord: %v", err)
		}
	}

	page, err := uc.ListWords(context.Background(), 1, repository.Pagination{PageNo: 2, PageSize: 10})
	if err != nil {
		t.Fatalf("ListWords: %v", err)
	}
	if len(page.Words) != 10 {
		t.Fatalf("expected 10 words, got %d", len(page.Words))
	}
	if page.Total != 25 || page.TotalPage != 3 || page.CurPage != 2 {
		t.Fatalf("unexpected pagination: %+v", page)
	}
	// Newest first: page 2 starts at the 11th newest.
	if page.Words[0].Word != "word-14" {
		t.Fatalf("expected word-14 first on page 2, got %q", page.Words[0].Word)
	}

	last, err := uc.ListWords(context.Background(), 1, repository.Pagination{PageNo: 3, PageSize: 10})
	if err != nil {
		t.Fatalf("ListWords last page: %v", err)
	}
	if len(last.Words) != 5 {
		t.Fatalf("expected 5 words on last page, got %d", len(last.Words))
	}
}

func TestListWordsDefaults(t *testing.T) {
	repo := newFakeWordRepo()
	uc := newTestUsecase(repo)

	_, _ = uc.AddWord(context.Background(), 1, &entity.Word{Word: "apple"})

	page, err := uc.ListWords(context.Background(), 1, repository.Pagination{})
	if err != nil {
		t.Fatalf("ListWords: %v", err)
	}
	if page.CurPage != 1 || page.TotalPage != 1 || page.Total != 1 {
		t.Fatalf("unexpected defaults: %+v", page)
	}
}

func TestSearchWordsCaseInsensitiveAlphabetical(t *testing.T) {
	repo := newFakeWordRepo()
	uc := newTestUsecase(repo)

	for _, w := range []string{"apple", "Application", "banana"} {
		_, _ = uc.AddWord(context.Background(), 1, &entity.Word{Word: w})
	}

	words, err := uc.SearchWords(context.Background(), 1, "app")
	if err != nil {
		t.Fatalf("SearchWords: %v", err)
	}
	if len(words) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(words))
	}
	if words[0].Word != "apple" || words[1].Word != "Application" {
		t.Fatalf("unexpected order: %q, %q", words[0].Word, words[1].Word)
	}
}

func TestSearchWordsRejectsEmptyKeyword(t *testing.T) {
	uc := newTestUsecase(newFakeWordRepo())

	if _, err := uc.SearchWords(context.Background(), 1, "  "); err != entity.ErrEmptyKeyword {
		t.Fatalf("expected ErrEmptyKeyword, got %v", err)
	}
}

func TestSearchWordsCapped(t *testing.T) {
	repo := newFakeWordRepo()
	uc := newTestUsecase(repo)

	for i := 0; i < searchLimit+5; i++ {
		_, _ = uc.AddWord(context.Background(), 1, &entity.Word{Word: fmt.Sprintf("apple-%02d", i)})
	}

	words, err := uc.SearchWords(context.Background(), 1, "apple")
	if err != nil {
		t.Fatalf("SearchWords: %v", err)
	}
	if len(words) != searchLimit {
		t.Fatalf("expected cap of %d, got %d", searchLimit, len(words))
	}
}

func TestWordsInRangeSingleID(t *testing.T) {
	repo := newFakeWordRepo()
	uc := newTestUsecase(repo)

	created, _ := uc.AddWord(context.Background(), 1, &entity.Word{Word: "apple"})
	_, _ = uc.AddWord(context.Background(), 1, &entity.Word{Word: "banana"})

	words, err := uc.WordsInRange(context.Background(), 1, created.ID, created.ID)
	if err != nil {
		t.Fatalf("WordsInRange: %v", err)
	}
	if len(words) != 1 || words[0].ID != created.ID {
		t.Fatalf("expected exactly the single entry, got %+v", words)
	}

	empty, err := uc.WordsInRange(context.Background(), 1, created.ID+100, created.ID+100)
	if err != nil {
		t.Fatalf("WordsInRange empty: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("expected empty result, got %d", len(empty))
	}
}

func TestWordsInRangeInvalidBounds(t *testing.T) {
	uc := newTestUsecase(newFakeWordRepo())

	if _, err := uc.WordsInRange(context.Background(), 1, 10, 5); err != entity.ErrInvalidRange {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
}

func TestWordsInRangeNewestFirst(t *testing.T) {
	repo := newFakeWordRepo()
	uc := newTestUsecase(repo)

	first, _ := uc.AddWord(context.Background(), 1, &entity.Word{Word: "apple"})
	_, _ = uc.AddWord(context.Background(), 1, &entity.Word{Word: "banana"})
	last, _ := uc.AddWord(context.Background(), 1, &entity.Word{Word: "cherry"})

	words, err := uc.WordsInRange(context.Background(), 1, first.ID, last.ID)
	if err != nil {
		t.Fatalf("WordsInRange: %v", err)
	}
	if len(words) != 3 {
		t.Fatalf("expected 3 words, got %d", len(words))
	}
	if words[0].ID != last.ID || words[2].ID != first.ID {
		t.Fatalf("expected id-descending order, got %+v", words)
	}
}

func TestWordByOrderSkipsIDGaps(t *testing.T) {
	repo := newFakeWordRepo()
	uc := newTestUsecase(repo)

	// IDs as left behind after deletes: gaps must not shift the order.
	for _, id := range []int64{5, 6, 8, 9, 10} {
		repo.insert(entity.Word{ID: id, UserID: 1, Word: fmt.Sprintf("w%d", id)})
	}

	word, err := uc.WordByOrder(context.Background(), 1, 4)
	if err != nil {
		t.Fatalf("WordByOrder: %v", err)
	}
	if word.ID != 6 {
		t.Fatalf("expected 4th newest to be id 6, got %d", word.ID)
	}
}

func TestWordByOrderClampsToOldest(t *testing.T) {
	repo := newFakeWordRepo()
	uc := newTestUsecase(repo)

	oldest, _ := uc.AddWord(context.Background(), 1, &entity.Word{Word: "apple"})
	_, _ = uc.AddWord(context.Background(), 1, &entity.Word{Word: "banana"})

	clamped, err := uc.WordByOrder(context.Background(), 1, 99)
	if err != nil {
		t.Fatalf("WordByOrder clamp: %v", err)
	}
	exact, err := uc.WordByOrder(context.Background(), 1, 2)
	if err != nil {
		t.Fatalf("WordByOrder exact: %v", err)
	}
	if clamped.ID != exact.ID || clamped.ID != oldest.ID {
		t.Fatalf("expected clamp to oldest entry %d, got %d", oldest.ID, clamped.ID)
	}
}

func TestWordByOrderValidation(t *testing.T) {
	uc := newTestUsecase(newFakeWordRepo())

	if _, err := uc.WordByOrder(context.Background(), 1, 0); err != entity.ErrInvalidOrder {
		t.Fatalf("expected ErrInvalidOrder, got %v", err)
	}
	if _, err := uc.WordByOrder(context.Background(), 1, 1); err != entity.ErrWordNotFound {
		t.Fatalf("expected ErrWordNotFound for empty store, got %v", err)
	}
}

func TestCheckWordReportsAllDuplicates(t *testing.T) {
	repo := newFakeWordRepo()
	uc := newTestUsecase(repo)

	older, _ := uc.AddWord(context.Background(), 1, &entity.Word{Word: "Apple"})
	_, _ = uc.AddWord(context.Background(), 1, &entity.Word{Word: "banana"})
	newer, _ := uc.AddWord(context.Background(), 1, &entity.Word{Word: "apple"})

	result, err := uc.CheckWord(context.Background(), 1, "APPLE")
	if err != nil {
		t.Fatalf("CheckWord: %v", err)
	}
	if !result.Exists || result.Count != 2 {
		t.Fatalf("expected 2 case-insensitive matches, got %+v", result)
	}
	if result.Words[0].ID != newer.ID || result.Words[1].ID != older.ID {
		t.Fatalf("expected newest-first matches, got %+v", result.Words)
	}
	if result.Words[0].Order >= result.Words[1].Order {
		t.Fatalf("expected the more recent entry to have the smaller order, got %d/%d",
			result.Words[0].Order, result.Words[1].Order)
	}
	if result.Words[0].Order != 1 || result.Words[1].Order != 3 {
		t.Fatalf("unexpected orders: %d/%d", result.Words[0].Order, result.Words[1].Order)
	}
}

func TestCheckWordNoMatch(t *testing.T) {
	repo := newFakeWordRepo()
	uc := newTestUsecase(repo)

	_, _ = uc.AddWord(context.Background(), 1, &entity.Word{Word: "apple"})

	result, err := uc.CheckWord(context.Background(), 1, "pear")
	if err != nil {
		t.Fatalf("CheckWord: %v", err)
	}
	if result.Exists || result.Count != 0 || len(result.Words) != 0 {
		t.Fatalf("expected empty result, got %+v", result)
	}
	if result.Words == nil {
		t.Fatal("expected empty slice, not nil")
	}
}

func TestOperationsScopedByUser(t *testing.T) {
	repo := newFakeWordRepo()
	uc := newTestUsecase(repo)

	_, _ = uc.AddWord(context.Background(), 1, &entity.Word{Word: "apple"})
	_, _ = uc.AddWord(context.Background(), 2, &entity.Word{Word: "apple"})

	page, err := uc.ListWords(context.Background(), 1, repository.Pagination{PageNo: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("ListWords: %v", err)
	}
	if page.Total != 1 {
		t.Fatalf("expected only own entries, got total %d", page.Total)
	}

	result, _ := uc.CheckWord(context.Background(), 2, "apple")
	if result.Count != 1 {
		t.Fatalf("expected user 2 to see one entry, got %d", result.Count)
	}
}
