package store

import "errors"

var (
	ErrNotFound     = errors.New("unknown word not found")
	ErrNoSuggestion = errors.New("unknown word has no suggested mapping")
	ErrPromoted     = errors.New("unknown word already promoted")
)
