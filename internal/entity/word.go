package entity

import (
	"strings"
	"time"
)

// Word represents a single vocabulary entry saved by a user. The same
// spelling may be saved multiple times; each row is a distinct entry.
type Word struct {
	ID          int64
	UserID      int64
	Word        string
	Description string
	Note        string
	AIContent   string
	CreatedAt   time.Time
}

// WordWithOrder pairs an entry with its 1-based position among the owner's
// words, newest first. Position 1 is always the most recently added entry.
type WordWithOrder struct {
	Word
	Order int64
}

// WordUpdate carries the optional fields of a partial update. Nil means
// "leave unchanged". The word text itself is immutable after creation.
type WordUpdate struct {
	Description *string
	Note        *string
	AIContent   *string
}

// Empty reports whether the update would change nothing.
func (u WordUpdate) Empty() bool {
	return u.Description == nil && u.Note == nil && u.AIContent == nil
}

// ExistsResult is the outcome of a duplicate check: every saved entry whose
// text equals the probe case-insensitively, each with its own order.
type ExistsResult struct {
	Exists bool
	Count  int64
	Words  []WordWithOrder
}

// Normalize applies creation defaults before persistence.
func (w *Word) Normalize(now time.Time) {
	w.Word = strings.TrimSpace(w.Word)
	if w.CreatedAt.IsZero() {
		w.CreatedAt = now
	}
}
