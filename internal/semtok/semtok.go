// Package semtok encodes token streams into the flat integer form the
// LSP semantic-token protocol expects: one (deltaLine, deltaChar, length,
// typeIndex, modifiers) quintuple per token, positions relative to the
// previously emitted token.
package semtok

import (
	"fmt"

	"github.com/Brendon-Hablutzel/crontab-ls/internal/tokenizer"
)

// TokenTypes is the legend advertised to the client. The encoded type
// index is a position in this slice, so its order is load-bearing.
var TokenTypes = []string{"variable", "function", "comment"}

const (
	typeVariable uint32 = 0 // schedule terms
	typeFunction uint32 = 1 // commands
	typeComment  uint32 = 2 // comment lines
)

// Encode converts tokens into the flattened quintuple stream. The delta
// cursor starts at (0,0) and is local to one call: deltaLine is the line
// distance from the previous token, and deltaChar is relative to the
// previous token's start on the same line but absolute when the line
// changed. The modifier bitmask is always 0.
//
// An unrecognized token kind is an internal invariant violation and fails
// the whole encoding; it cannot happen with tokens produced by the
// tokenizer.
func Encode(tokens []tokenizer.Token) ([]uint32, error) {
	data := make([]uint32, 0, len(tokens)*5)

	lastLine, lastChar := 0, 0
	for _, tok := range tokens {
		var typeIndex uint32
		switch tok.(type) {
		case tokenizer.Term:
			typeIndex = typeVariable
		case tokenizer.Command:
			typeIndex = typeFunction
		case tokenizer.Comment:
			typeIndex = typeComment
		default:
			return nil, fmt.Errorf("semtok: unsupported token kind %T", tok)
		}

		line, char := tok.Pos()
		deltaLine := line - lastLine
		deltaChar := char
		if deltaLine == 0 {
			deltaChar = char - lastChar
		}
		lastLine, lastChar = line, char

		data = append(data,
			uint32(deltaLine),
			uint32(deltaChar),
			uint32(tok.Len()),
			typeIndex,
			0,
		)
	}

	return data, nil
}
