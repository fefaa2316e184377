// Package diagnostic flattens per-field validation errors into
// document-absolute records ready for publication to an editor.
package diagnostic

import (
	"github.com/Brendon-Hablutzel/crontab-ls/internal/tokenizer"
)

// Source is the label attached to every record this engine produces.
const Source = "crontab-ls"

// Severity follows the LSP numbering; only Error is produced today.
type Severity int

const (
	SeverityError Severity = 1
)

// Record is one positioned diagnostic. StartChar and EndChar are absolute
// character indices on Line, with EndChar exclusive.
type Record struct {
	Line      int
	StartChar int
	EndChar   int
	Severity  Severity
	Message   string
	Source    string
}

// FromTokens computes the complete diagnostic set for a token stream.
// Each validation error on a Term token becomes one Record whose range is
// the error's field-relative offsets shifted by the term's start. Output
// order follows token order, then error order within a token. The result
// fully replaces any previously published set; nothing is incremental.
func FromTokens(tokens []tokenizer.Token) []Record {
	var records []Record
	for _, tok := range tokens {
		term, ok := tok.(tokenizer.Term)
		if !ok {
			continue
		}
		for _, e := range term.Errors {
			records = append(records, Record{
				Line:      term.Line,
				StartChar: term.StartChar + e.Start,
				EndChar:   term.StartChar + e.End,
				Severity:  SeverityError,
				Message:   e.Message,
				Source:    Source,
			})
		}
	}
	return records
}
