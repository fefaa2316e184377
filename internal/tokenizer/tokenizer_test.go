package tokenizer_test

import (
	"strings"
	"testing"

	"github.com/Brendon-Hablutzel/crontab-ls/internal/field"
	"github.com/Brendon-Hablutzel/crontab-ls/internal/schedule"
	"github.com/Brendon-Hablutzel/crontab-ls/internal/tokenizer"
	"github.com/google/go-cmp/cmp"
)

func TestTokenizeEntry(t *testing.T) {
	tokens := tokenizer.Tokenize("0 0 * * * /bin/backup.sh")

	want := []tokenizer.Token{
		tokenizer.Term{Line: 0, StartChar: 0, Kind: field.Minute, Value: field.Single{N: 0}, Text: "0"},
		tokenizer.Term{Line: 0, StartChar: 2, Kind: field.Hour, Value: field.Single{N: 0}, Text: "0"},
		tokenizer.Term{Line: 0, StartChar: 4, Kind: field.DayOfMonth, Value: field.Wildcard{}, Text: "*"},
		tokenizer.Term{Line: 0, StartChar: 6, Kind: field.Month, Value: field.Wildcard{}, Text: "*"},
		tokenizer.Term{Line: 0, StartChar: 8, Kind: field.DayOfWeek, Value: field.Wildcard{}, Text: "*"},
		tokenizer.Command{Line: 0, StartChar: 10, Text: "/bin/backup.sh"},
	}
	if diff := cmp.Diff(want, tokens); diff != "" {
		t.Errorf("Tokenize() mismatch (-want +got):\n%s", diff)
	}
}

func TestTokenizeComment(t *testing.T) {
	tokens := tokenizer.Tokenize("# nightly backup")

	want := []tokenizer.Token{
		tokenizer.Comment{Line: 0, Text: "# nightly backup"},
	}
	if diff := cmp.Diff(want, tokens); diff != "" {
		t.Errorf("Tokenize() mismatch (-want +got):\n%s", diff)
	}
}

func TestTokenizeMultiLine(t *testing.T) {
	text := "# backups\n\n0 0 * * * /bin/backup.sh\n*/5 * * * * /bin/poll.sh"
	tokens := tokenizer.Tokenize(text)

	// Blank line produces nothing; lines keep their absolute indices.
	wantLines := []int{0, 2, 2, 2, 2, 2, 2, 3, 3, 3, 3, 3, 3}
	if len(tokens) != len(wantLines) {
		t.Fatalf("Tokenize() produced %d tokens, want %d", len(tokens), len(wantLines))
	}
	for i, tok := range tokens {
		line, _ := tok.Pos()
		if line != wantLines[i] {
			t.Errorf("token %d on line %d, want %d", i, line, wantLines[i])
		}
	}
}

func TestTokenizeCommandWithSpaces(t *testing.T) {
	tokens := tokenizer.Tokenize("0 0 * * * echo hello world")

	last := tokens[len(tokens)-1]
	command, ok := last.(tokenizer.Command)
	if !ok {
		t.Fatalf("last token is %T, want Command", last)
	}
	if command.Text != "echo hello world" {
		t.Errorf("command text = %q, want %q", command.Text, "echo hello world")
	}
	if command.StartChar != 10 {
		t.Errorf("command start = %d, want 10", command.StartChar)
	}
}

func TestTokenizeMissingFields(t *testing.T) {
	tokens := tokenizer.Tokenize("0 0 *")

	// Fewer than five pieces: later field kinds simply get no token, and
	// the command token is emitted empty.
	var kinds []field.Kind
	for _, tok := range tokens {
		if term, ok := tok.(tokenizer.Term); ok {
			kinds = append(kinds, term.Kind)
		}
	}
	wantKinds := []field.Kind{field.Minute, field.Hour, field.DayOfMonth}
	if diff := cmp.Diff(wantKinds, kinds); diff != "" {
		t.Errorf("field kinds mismatch (-want +got):\n%s", diff)
	}

	last := tokens[len(tokens)-1]
	command, ok := last.(tokenizer.Command)
	if !ok {
		t.Fatalf("last token is %T, want Command", last)
	}
	if command.Text != "" {
		t.Errorf("command text = %q, want empty", command.Text)
	}
}

func TestTokenizeInvalidFieldDoesNotAbort(t *testing.T) {
	tokens := tokenizer.Tokenize("60 0 * * * cmd")

	if len(tokens) != 6 {
		t.Fatalf("Tokenize() produced %d tokens, want 6", len(tokens))
	}
	first, ok := tokens[0].(tokenizer.Term)
	if !ok {
		t.Fatalf("first token is %T, want Term", tokens[0])
	}
	if first.Value != nil {
		t.Errorf("first term value = %v, want nil", first.Value)
	}
	if len(first.Errors) != 1 {
		t.Fatalf("first term has %d errors, want 1", len(first.Errors))
	}
	want := "minute term value must be between 0 and 59"
	if first.Errors[0].Message != want {
		t.Errorf("error message = %q, want %q", first.Errors[0].Message, want)
	}
}

func TestTokenizeIdempotent(t *testing.T) {
	text := "# header\n0 12 1-5 * 1,2 /usr/bin/report\n*/0 * * * * broken"
	first := tokenizer.Tokenize(text)
	second := tokenizer.Tokenize(text)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("repeated Tokenize() differs (-first +second):\n%s", diff)
	}
}

func TestTokenizeRoundTripFieldOrder(t *testing.T) {
	lines := []string{
		"0 0 * * * /bin/backup.sh",
		"*/15 0-6 1,15 * 1-5 /usr/bin/poll --verbose",
		"30 3 * * 0 ",
	}
	for _, line := range lines {
		t.Run(line, func(t *testing.T) {
			tokens := tokenizer.Tokenize(line)

			var rebuilt strings.Builder
			for _, tok := range tokens {
				switch tk := tok.(type) {
				case tokenizer.Term:
					rebuilt.WriteString(tk.Text)
					rebuilt.WriteString(" ")
				case tokenizer.Command:
					rebuilt.WriteString(tk.Text)
				}
			}

			wantPieces := strings.Split(line, " ")[:5]
			gotPieces := strings.Split(rebuilt.String(), " ")[:5]
			if diff := cmp.Diff(wantPieces, gotPieces); diff != "" {
				t.Errorf("field order mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// Entries the grammar accepts cleanly should also parse under an
// independent cron parser.
func TestCleanEntriesParseUnderCronexpr(t *testing.T) {
	entries := []string{
		"0 0 * * * /bin/backup.sh",
		"*/5 * * * * /bin/poll.sh",
		"30 3 1,15 * 0 /usr/bin/report",
		"0-30 9 * 1-6 1-5 /usr/bin/sync",
	}
	for _, entry := range entries {
		t.Run(entry, func(t *testing.T) {
			tokens := tokenizer.Tokenize(entry)

			var fields []string
			for _, tok := range tokens {
				term, ok := tok.(tokenizer.Term)
				if !ok {
					continue
				}
				if len(term.Errors) > 0 {
					t.Fatalf("term %q unexpectedly has errors: %v", term.Text, term.Errors)
				}
				fields = append(fields, term.Text)
			}

			expr := strings.Join(fields, " ")
			if err := schedule.ValidateExpression(expr); err != nil {
				t.Errorf("cronexpr rejected %q: %v", expr, err)
			}
		})
	}
}
