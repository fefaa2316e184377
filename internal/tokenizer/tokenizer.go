// Package tokenizer splits crontab document text into a flat stream of
// positioned tokens: full-line comments, the five schedule terms of an
// entry line, and the trailing command.
package tokenizer

import (
	"strings"

	"github.com/Brendon-Hablutzel/crontab-ls/internal/field"
)

// Token is one positioned element of a crontab document. The concrete
// types are Comment, Term, and Command; consumers switch over them
// exhaustively.
type Token interface {
	// Pos returns the token's absolute 0-based line and starting
	// character index. Comments always start at character 0.
	Pos() (line, char int)
	// Len returns the token's length in characters.
	Len() int
}

// Comment is a full line beginning with '#'. Text includes the '#'.
type Comment struct {
	Line int
	Text string
}

func (c Comment) Pos() (int, int) { return c.Line, 0 }
func (c Comment) Len() int        { return len(c.Text) }

// Term is one time field of an entry line. Exactly one of Value and
// Errors is set: Value when the text classified cleanly, Errors (non-empty)
// when it did not.
type Term struct {
	Line      int
	StartChar int
	Kind      field.Kind
	Value     field.Value
	Errors    []field.ValidationError
	Text      string
}

func (t Term) Pos() (int, int) { return t.Line, t.StartChar }
func (t Term) Len() int        { return len(t.Text) }

// Command is the remainder of an entry line after the five fields.
// Text may be empty.
type Command struct {
	Line      int
	StartChar int
	Text      string
}

func (c Command) Pos() (int, int) { return c.Line, c.StartChar }
func (c Command) Len() int        { return len(c.Text) }

const maxFields = 5

// Tokenize splits document text into tokens. Empty lines produce nothing.
// A line starting with '#' produces one Comment. Any other line is an
// entry: it is split on single spaces, the first five pieces become Term
// tokens classified left to right as minute, hour, day of month, month,
// day of week, and the remaining pieces are rejoined into one Command
// token. Entries with fewer than five pieces produce fewer Term tokens
// and no error. Tokens are ordered by line, then by position within the
// line.
func Tokenize(text string) []Token {
	var tokens []Token

	for lineIdx, line := range strings.Split(text, "\n") {
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "#") {
			tokens = append(tokens, Comment{Line: lineIdx, Text: line})
			continue
		}

		pieces := strings.Split(line, " ")
		fieldCount := min(len(pieces), maxFields)

		char := 0
		for i := 0; i < fieldCount; i++ {
			kind := field.Kinds[i]
			value, errs := field.Classify(pieces[i], kind)
			tokens = append(tokens, Term{
				Line:      lineIdx,
				StartChar: char,
				Kind:      kind,
				Value:     value,
				Errors:    errs,
				Text:      pieces[i],
			})
			// Advance past the field and its trailing separator.
			char += len(pieces[i]) + 1
		}

		command := strings.Join(pieces[fieldCount:], " ")
		tokens = append(tokens, Command{
			Line:      lineIdx,
			StartChar: char,
			Text:      command,
		})
	}

	return tokens
}
