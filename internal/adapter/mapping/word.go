package mapping

import (
	"time"

	"github.com/samber/lo"

	"github.com/eslsoft/wordbook/internal/entity"
	"github.com/eslsoft/wordbook/internal/usecase"
)

// Word is the API payload for one vocabulary entry.
type Word struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	Word        string    `json:"word"`
	Description string    `json:"description"`
	Note        string    `json:"note"`
	AIContent   string    `json:"ai_content"`
	CreatedAt   time.Time `json:"created_at"`
}

// WordWithOrder augments a word payload with its newest-first position.
type WordWithOrder struct {
	Word
	Order int64 `json:"order"`
}

// WordPage is the paginated listing payload.
type WordPage struct {
	Words     []Word `json:"words"`
	CurPage   int32  `json:"curPage"`
	TotalPage int32  `json:"totalPage"`
	Total     int64  `json:"total"`
}

// ExistsResult is the duplicate-check payload.
type ExistsResult struct {
	Exists bool            `json:"exists"`
	Count  int64           `json:"count"`
	Words  []WordWithOrder `json:"words"`
}

func ToAPIWord(w *entity.Word) Word {
	return Word{
		ID:          w.ID,
		UserID:      w.UserID,
		Word:        w.Word,
		Description: w.Description,
		Note:        w.Note,
		AIContent:   w.AIContent,
		CreatedAt:   w.CreatedAt,
	}
}

func ToAPIWords(words []*entity.Word) []Word {
	return lo.Map(words, func(w *entity.Word, _ int) Word { return ToAPIWord(w) })
}

func ToAPIWordPage(page *usecase.WordPage) WordPage {
	return WordPage{
		Words:     ToAPIWords(page.Words),
		CurPage:   page.CurPage,
		TotalPage: page.TotalPage,
		Total:     page.Total,
	}
}

func ToAPIExistsResult(result *entity.ExistsResult) ExistsResult {
	return ExistsResult{
		Exists: result.Exists,
		Count:  result.Count,
		Words: lo.Map(result.Words, func(m entity.WordWithOrder, _ int) WordWithOrder {
			return WordWithOrder{Word: ToAPIWord(&m.Word), Order: m.Order}
		}),
	}
}
