// Package blog holds the business rules of the blogging backend: post
// authoring with tag reconciliation, the vote ledger, comment threads and
// the report review workflow.
package blog

import (
	"unicode/utf8"

	"blog/internal/store"
)

const (
	maxTitleLen   = 100
	maxCommentLen = 50000
)

type Service struct {
	store *store.Store
}

func New(st *store.Store) *Service {
	return &Service{store: st}
}

func countRunes(s string) int { return utf8.RuneCountInString(s) }
