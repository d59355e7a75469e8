package types

import (
	"context"
	"errors"
)

// Word is a single vocabulary term. Text is the identity of the word and is
// unique across the store; ID is assigned by the store and strictly
// increases with insertion order.
type Word struct {
	ID   int64  `json:"id"`
	Text string `json:"word"`
}

// Pattern is an example sentence that belongs to exactly one Word.
type Pattern struct {
	ID     int64  `json:"id"`
	WordID int64  `json:"word_id"`
	Text   string `json:"pattern"`
}

// WordEntry pairs a Word with its pattern texts in insertion order.
type WordEntry struct {
	Word     Word     `json:"word"`
	Patterns []string `json:"patterns"`
}

// WordWriter inserts words and patterns. Both the store and a transaction
// scope implement it.
type WordWriter interface {
	// EnsureWord looks up text exactly. If absent it inserts a new word and
	// returns its id with wasNew true; otherwise it returns the existing id
	// with wasNew false.
	EnsureWord(ctx context.Context, text string) (id int64, wasNew bool, err error)

	// AddPattern appends a pattern row referencing wordID.
	AddPattern(ctx context.Context, wordID int64, text string) error
}

// Vocabulary is the persistence boundary used by the lesson pipeline.
type Vocabulary interface {
	WordWriter

	// RecentWords returns up to limit words ordered by descending id, each
	// with all of its patterns in insertion order.
	RecentWords(ctx context.Context, limit int) ([]WordEntry, error)

	// InTx runs fn against a writer whose changes commit together when fn
	// returns nil and roll back otherwise.
	InTx(ctx context.Context, fn func(w WordWriter) error) error
}

// Store errors.
var (
	ErrStore           = errors.New("store error")
	ErrStoreDetached   = errors.New("store is detached")
	ErrAlreadyAttached = errors.New("store is already attached")
	ErrEmptyWord       = errors.New("word must be non-empty")
	ErrInvalidWordID   = errors.New("word id must be positive")
)
