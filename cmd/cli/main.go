package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/Brendon-Hablutzel/crontab-ls/internal/diagnostic"
	"github.com/Brendon-Hablutzel/crontab-ls/internal/schedule"
	"github.com/Brendon-Hablutzel/crontab-ls/internal/semtok"
	"github.com/Brendon-Hablutzel/crontab-ls/internal/tokenizer"
	"github.com/urfave/cli/v2"
)

func readCrontab(c *cli.Context) (path string, text string, err error) {
	path = c.Args().First()
	if path == "" {
		return "", "", cli.Exit("Please provide a crontab file path", 1)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", cli.Exit("Failed to read file: "+err.Error(), 1)
	}
	return path, string(data), nil
}

// entryExpression rebuilds the five-field expression of an entry line
// from its term tokens, for cross-checking with a second parser.
func entryExpression(terms []tokenizer.Term) string {
	fields := make([]string, len(terms))
	for i, term := range terms {
		fields[i] = term.Text
	}
	return strings.Join(fields, " ")
}

func lint(c *cli.Context) error {
	path, text, err := readCrontab(c)
	if err != nil {
		return err
	}

	tokens := tokenizer.Tokenize(text)
	records := diagnostic.FromTokens(tokens)
	for _, rec := range records {
		fmt.Printf("%s:%d:%d-%d: %s\n", path, rec.Line, rec.StartChar, rec.EndChar, rec.Message)
	}

	failed := len(records) > 0

	if c.Bool("strict") {
		// Group term tokens by line; lines the grammar accepted cleanly
		// get a second opinion from an independent cron parser.
		termsByLine := make(map[int][]tokenizer.Term)
		cleanLines := make(map[int]bool)
		for _, tok := range tokens {
			term, ok := tok.(tokenizer.Term)
			if !ok {
				continue
			}
			termsByLine[term.Line] = append(termsByLine[term.Line], term)
			if _, seen := cleanLines[term.Line]; !seen {
				cleanLines[term.Line] = true
			}
			if len(term.Errors) > 0 {
				cleanLines[term.Line] = false
			}
		}
		for line, terms := range termsByLine {
			if !cleanLines[line] || len(terms) != 5 {
				continue
			}
			expr := entryExpression(terms)
			if err := schedule.ValidateExpression(expr); err != nil {
				fmt.Printf("%s:%d: strict: %v\n", path, line, err)
				failed = true
			}
		}
	}

	if failed {
		return cli.Exit("", 1)
	}
	log.Println("No problems found.")
	return nil
}

func dumpTokens(c *cli.Context) error {
	_, text, err := readCrontab(c)
	if err != nil {
		return err
	}

	tokens := tokenizer.Tokenize(text)
	for _, tok := range tokens {
		line, char := tok.Pos()
		switch t := tok.(type) {
		case tokenizer.Comment:
			fmt.Printf("%d:%d comment %q\n", line, char, t.Text)
		case tokenizer.Term:
			status := "ok"
			if len(t.Errors) > 0 {
				status = fmt.Sprintf("%d error(s)", len(t.Errors))
			}
			fmt.Printf("%d:%d term(%s) %q %s\n", line, char, t.Kind.Name(), t.Text, status)
		case tokenizer.Command:
			fmt.Printf("%d:%d command %q\n", line, char, t.Text)
		}
	}

	data, err := semtok.Encode(tokens)
	if err != nil {
		return cli.Exit("Failed to encode semantic tokens: "+err.Error(), 1)
	}
	fmt.Printf("semantic tokens: %v\n", data)
	return nil
}

func main() {
	app := &cli.App{
		Name:        "crontab-ls-cli",
		Description: "A development CLI for the crontab language server",
		Commands: []*cli.Command{
			{
				Name:      "lint",
				Usage:     "Report diagnostics for a crontab file",
				ArgsUsage: "<file>",
				Action:    lint,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "strict",
						Usage: "Also cross-check clean entries with an independent cron parser",
					},
				},
			},
			{
				Name:      "tokens",
				Usage:     "Dump the token stream and semantic token encoding for a crontab file",
				ArgsUsage: "<file>",
				Action:    dumpTokens,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatalf("Error running CLI: %v", err)
	}
}
