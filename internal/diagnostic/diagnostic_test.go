package diagnostic_test

import (
	"testing"

	"github.com/Brendon-Hablutzel/crontab-ls/internal/diagnostic"
	"github.com/Brendon-Hablutzel/crontab-ls/internal/tokenizer"
	"github.com/google/go-cmp/cmp"
)

func TestFromTokens(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []diagnostic.Record
	}{
		{
			name: "clean entry",
			text: "0 0 * * * /bin/backup.sh",
			want: nil,
		},
		{
			name: "comment only",
			text: "# nightly backup",
			want: nil,
		},
		{
			name: "minute out of range",
			text: "60 0 * * * cmd",
			want: []diagnostic.Record{
				{
					Line:      0,
					StartChar: 0,
					EndChar:   2,
					Severity:  diagnostic.SeverityError,
					Message:   "minute term value must be between 0 and 59",
					Source:    diagnostic.Source,
				},
			},
		},
		{
			name: "zero step flags the digit only",
			text: "*/0 * * * * cmd",
			want: []diagnostic.Record{
				{
					Line:      0,
					StartChar: 2,
					EndChar:   3,
					Severity:  diagnostic.SeverityError,
					Message:   "minute term step cannot be 0",
					Source:    diagnostic.Source,
				},
			},
		},
		{
			name: "field offsets shift by term start",
			text: "0 1,99 * * * cmd",
			want: []diagnostic.Record{
				{
					Line:      0,
					StartChar: 4, // term starts at 2, heuristic offset 2 within it
					EndChar:   6,
					Severity:  diagnostic.SeverityError,
					Message:   "hour term value must be between 0 and 23",
					Source:    diagnostic.Source,
				},
			},
		},
		{
			name: "errors across lines keep token order",
			text: "60 * * * * a\n* 24 * * * b",
			want: []diagnostic.Record{
				{
					Line:      0,
					StartChar: 0,
					EndChar:   2,
					Severity:  diagnostic.SeverityError,
					Message:   "minute term value must be between 0 and 59",
					Source:    diagnostic.Source,
				},
				{
					Line:      1,
					StartChar: 2,
					EndChar:   4,
					Severity:  diagnostic.SeverityError,
					Message:   "hour term value must be between 0 and 23",
					Source:    diagnostic.Source,
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := diagnostic.FromTokens(tokenizer.Tokenize(tt.text))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("FromTokens() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFromTokensReportsEveryListError(t *testing.T) {
	got := diagnostic.FromTokens(tokenizer.Tokenize("60,61 * * * * cmd"))
	if len(got) != 2 {
		t.Fatalf("FromTokens() produced %d records, want 2", len(got))
	}
	for i, rec := range got {
		if rec.Severity != diagnostic.SeverityError {
			t.Errorf("record %d severity = %d, want error", i, rec.Severity)
		}
		if rec.Source != diagnostic.Source {
			t.Errorf("record %d source = %q, want %q", i, rec.Source, diagnostic.Source)
		}
	}
}
