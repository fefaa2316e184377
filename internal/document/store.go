// Package document caches the latest token stream per open document and
// answers position queries over it.
package document

import (
	"fmt"

	"github.com/Brendon-Hablutzel/crontab-ls/internal/tokenizer"
)

// NotOpenError reports a query against a document that was never opened
// (or was already closed). It signals a protocol-sequencing fault by the
// caller, not a recoverable condition.
type NotOpenError struct {
	ID string
}

func (e *NotOpenError) Error() string {
	return fmt.Sprintf("document %q is not open", e.ID)
}

var _ error = (*NotOpenError)(nil)

// Store holds the current token stream for every open document, keyed by
// document identity (a URI in practice). It is an explicit object rather
// than package state so tests can use isolated instances. It performs no
// locking: the transport is responsible for serializing events per
// document.
type Store struct {
	docs map[string][]tokenizer.Token
}

func NewStore() *Store {
	return &Store{docs: make(map[string][]tokenizer.Token)}
}

// Open tokenizes text and creates (or replaces) the entry for id.
func (s *Store) Open(id, text string) {
	s.docs[id] = tokenizer.Tokenize(text)
}

// Change fully retokenizes text and replaces the entry for id. There is
// no diffing; the last write wins.
func (s *Store) Change(id, text string) {
	s.docs[id] = tokenizer.Tokenize(text)
}

// Close evicts the entry for id.
func (s *Store) Close(id string) {
	delete(s.docs, id)
}

// Tokens returns the cached token stream for id, or a NotOpenError if the
// document has no entry.
func (s *Store) Tokens(id string) ([]tokenizer.Token, error) {
	tokens, ok := s.docs[id]
	if !ok {
		return nil, &NotOpenError{ID: id}
	}
	return tokens, nil
}

// TokenAt returns the first cached token on the given line whose
// [start, start+len) span contains char. The second return is false when
// no token covers the position.
func (s *Store) TokenAt(id string, line, char int) (tokenizer.Token, bool, error) {
	tokens, err := s.Tokens(id)
	if err != nil {
		return nil, false, err
	}
	for _, tok := range tokens {
		tokLine, tokChar := tok.Pos()
		if tokLine != line {
			continue
		}
		if char >= tokChar && char < tokChar+tok.Len() {
			return tok, true, nil
		}
	}
	return nil, false, nil
}
