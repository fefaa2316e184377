package document

import (
	"fmt"

	"github.com/Brendon-Hablutzel/crontab-ls/internal/tokenizer"
)

// commandHoverText is a fixed placeholder: summarizing what a schedule
// actually does is out of scope for this engine.
const commandHoverText = "the command to run on this schedule"

// HoverResult is the text to show for a token plus the token's own span.
type HoverResult struct {
	Line      int
	StartChar int
	EndChar   int
	Text      string
}

// Hover answers a hover query at a document position. It returns nil
// (with no error) when nothing should be shown: no token at the position,
// a comment line, or a term that failed classification. For a classified
// term the text combines the field name with the value's description,
// e.g. "minute term: from 1 to 5 (inclusive)".
func (s *Store) Hover(id string, line, char int) (*HoverResult, error) {
	tok, ok, err := s.TokenAt(id, line, char)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	var text string
	switch t := tok.(type) {
	case tokenizer.Comment:
		return nil, nil
	case tokenizer.Term:
		if t.Value == nil {
			return nil, nil
		}
		text = fmt.Sprintf("%s term: %s", t.Kind.Name(), t.Value.Describe())
	case tokenizer.Command:
		text = commandHoverText
	default:
		return nil, nil
	}

	tokLine, tokChar := tok.Pos()
	return &HoverResult{
		Line:      tokLine,
		StartChar: tokChar,
		EndChar:   tokChar + tok.Len(),
		Text:      text,
	}, nil
}
