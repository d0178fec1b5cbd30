package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eslsoft/wordbook/internal/entity"
	"github.com/eslsoft/wordbook/internal/repository"
)

const wordColumns = "id, user_id, word, description, note, ai_content, created_at"

type wordRepository struct {
	pool *pgxpool.Pool
}

// NewWordRepository constructs a pgx-backed word repository.
func NewWordRepository(pool *pgxpool.Pool) repository.WordRepository {
	return &wordRepository{pool: pool}
}

func (r *wordRepository) Create(ctx context.Context, word *entity.Word) (*entity.Word, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO words (user_id, word, description, note, ai_content, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+wordColumns,
		word.UserID, word.Word, word.Description, word.Note, word.AIContent, word.CreatedAt,
	)
	created, err := scanWord(row)
	if err != nil {
		return nil, fmt.Errorf("create word: %w", err)
	}
	return created, nil
}

func (r *wordRepository) Delete(ctx context.Context, userID, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	tag, err := r.pool.Exec(ctx, `DELETE FROM words WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("delete word: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return entity.ErrWordNotFound
	}
	return nil
}

func (r *wordRepository) UpdateFields(ctx context.Context, userID, id int64, update entity.WordUpdate) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if update.Empty() {
		return entity.ErrNoUpdateFields
	}

	sets := make([]string, 0, 3)
	args := []any{id, userID}
	appendSet := func(column string, value *string) {
		if value == nil {
			return
		}
		args = append(args, *value)
		sets = append(sets, column+" = $"+strconv.Itoa(len(args)))
	}
	appendSet("description", update.Description)
	appendSet("note", update.Note)
	appendSet("ai_content", update.AIContent)

	query := "UPDATE words SET " + strings.Join(sets, ", ") + " WHERE id = $1 AND user_id = $2"
	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update word: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return entity.ErrWordNotFound
	}
	return nil
}

func (r *wordRepository) UpdateAIContent(ctx context.Context, userID, id int64, aiContent string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	tag, err := r.pool.Exec(ctx,
		`UPDATE words SET ai_content = $3 WHERE id = $1 AND user_id = $2`,
		id, userID, aiContent,
	)
	if err != nil {
		return fmt.Errorf("update ai content: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return entity.ErrWordNotFound
	}
	return nil
}

func (r *wordRepository) List(ctx context.Context, userID int64, page repository.Pagination) ([]*entity.Word, int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx, `
		SELECT `+wordColumns+`
		FROM words
		WHERE user_id = $1
		ORDER BY id DESC
		LIMIT $2 OFFSET $3`,
		userID, page.PageSize, page.Offset(),
	)
	if err != nil {
		return nil, 0, fmt.Errorf("list words: %w", err)
	}
	words, err := collectWords(rows)
	if err != nil {
		return nil, 0, fmt.Errorf("list words: %w", err)
	}

	total, err := r.CountByUser(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	return words, total, nil
}

func (r *wordRepository) Search(ctx context.Context, userID int64, keyword string, limit int32) ([]*entity.Word, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rows, err := r.pool.Query(ctx, `
		SELECT `+wordColumns+`
		FROM words
		WHERE user_id = $1 AND word ILIKE '%' || $2 || '%'
		ORDER BY lower(word), id
		LIMIT $3`,
		userID, keyword, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("search words: %w", err)
	}
	words, err := collectWords(rows)
	if err != nil {
		return nil, fmt.Errorf("search words: %w", err)
	}
	return words, nil
}

func (r *wordRepository) RangeByID(ctx context.Context, userID, startID, endID int64) ([]*entity.Word, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rows, err := r.pool.Query(ctx, `
		SELECT `+wordColumns+`
		FROM words
		WHERE user_id = $1 AND id BETWEEN $2 AND $3
		ORDER BY id DESC`,
		userID, startID, endID,
	)
	if err != nil {
		return nil, fmt.Errorf("range words: %w", err)
	}
	words, err := collectWords(rows)
	if err != nil {
		return nil, fmt.Errorf("range words: %w", err)
	}
	return words, nil
}

func (r *wordRepository) CountByUser(ctx context.Context, userID int64) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM words WHERE user_id = $1`, userID).Scan(&total); err != nil {
		return 0, fmt.Errorf("count words: %w", err)
	}
	return total, nil
}

func (r *wordRepository) GetByOffset(ctx context.Context, userID int64, offset int64) (*entity.Word, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	row := r.pool.QueryRow(ctx, `
		SELECT `+wordColumns+`
		FROM words
		WHERE user_id = $1
		ORDER BY id DESC
		OFFSET $2 LIMIT 1`,
		userID, offset,
	)
	word, err := scanWord(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrWordNotFound
		}
		return nil, fmt.Errorf("get word by offset: %w", err)
	}
	return word, nil
}

// FindMatches ranks all of the user's entries newest-first in one pass so
// every duplicate gets its order without a count query per match.
func (r *wordRepository) FindMatches(ctx context.Context, userID int64, word string) ([]entity.WordWithOrder, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, word, description, note, ai_content, created_at, ord
		FROM (
			SELECT `+wordColumns+`, row_number() OVER (ORDER BY id DESC) AS ord
			FROM words
			WHERE user_id = $1
		) ranked
		WHERE lower(word) = lower($2)
		ORDER BY id DESC`,
		userID, word,
	)
	if err != nil {
		return nil, fmt.Errorf("find matches: %w", err)
	}
	defer rows.Close()

	var matches []entity.WordWithOrder
	for rows.Next() {
		var m entity.WordWithOrder
		if err := rows.Scan(&m.ID, &m.UserID, &m.Word.Word, &m.Description, &m.Note, &m.AIContent, &m.CreatedAt, &m.Order); err != nil {
			return nil, fmt.Errorf("find matches: %w", err)
		}
		matches = append(matches, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("find matches: %w", err)
	}
	return matches, nil
}

func scanWord(row pgx.Row) (*entity.Word, error) {
	var w entity.Word
	if err := row.Scan(&w.ID, &w.UserID, &w.Word, &w.Description, &w.Note, &w.AIContent, &w.CreatedAt); err != nil {
		return nil, err
	}
	return &w, nil
}

func collectWords(rows pgx.Rows) ([]*entity.Word, error) {
	defer rows.Close()
	words := make([]*entity.Word, 0)
	for rows.Next() {
		word, err := scanWord(rows)
		if err != nil {
			return nil, err
		}
		words = append(words, word)
	}
	return words, rows.Err()
}
