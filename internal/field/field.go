package field

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Kind identifies one of the five time fields of a crontab entry.
// The zero value is Minute.
type Kind int

const (
	Minute Kind = iota
	Hour
	DayOfMonth
	Month
	DayOfWeek
)

// Kinds lists all field kinds in their entry-line order.
var Kinds = [5]Kind{Minute, Hour, DayOfMonth, Month, DayOfWeek}

var kindNames = [5]string{"minute", "hour", "day of month", "month", "day of week"}

var kindBounds = [5]struct{ min, max int }{
	{0, 59},
	{0, 23},
	{1, 31},
	{1, 12},
	{0, 6},
}

// Name returns the human-readable field name, e.g. "day of month".
func (k Kind) Name() string {
	return kindNames[k]
}

// Bounds returns the inclusive range of integers valid for this field.
func (k Kind) Bounds() (min, max int) {
	b := kindBounds[k]
	return b.min, b.max
}

func (k Kind) contains(n int) bool {
	b := kindBounds[k]
	return n >= b.min && n <= b.max
}

// ValidationError describes one invalid portion of a field's text.
// Start and End are character offsets relative to the field text itself,
// with End exclusive.
type ValidationError struct {
	Start   int
	End     int
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%d,%d): %s", e.Start, e.End, e.Message)
}

var _ error = ValidationError{}

// Value is a classified field value. Exactly one of the concrete types
// below is produced per field; consumers switch over them exhaustively.
type Value interface {
	// Describe returns a human-readable summary of the value, used for
	// hover text.
	Describe() string
}

// Wildcard matches every value the field admits.
type Wildcard struct{}

func (Wildcard) Describe() string { return "every value" }

// Single matches exactly one value.
type Single struct {
	N int
}

func (s Single) Describe() string { return fmt.Sprintf("exactly %d", s.N) }

// List matches any of an ordered, non-empty set of values.
type List struct {
	Values []int
}

func (l List) Describe() string {
	parts := make([]string, len(l.Values))
	for i, v := range l.Values {
		parts[i] = strconv.Itoa(v)
	}
	return "one of " + strings.Join(parts, ", ")
}

// Range matches every value from Lo through Hi.
type Range struct {
	Lo int
	Hi int
}

func (r Range) Describe() string {
	return fmt.Sprintf("from %d to %d (inclusive)", r.Lo, r.Hi)
}

// Step matches every Nth value, written "*/N". N is at least 1.
type Step struct {
	N int
}

func (s Step) Describe() string { return fmt.Sprintf("every %d", s.N) }

var (
	singlePattern = regexp.MustCompile(`^\d+$`)
	rangePattern  = regexp.MustCompile(`^(\d+)-(\d+)$`)
	stepPattern   = regexp.MustCompile(`^\*/(\d+)$`)
)

// Classify parses one field's raw text against a field kind. It returns
// either a Value and no errors, or a nil Value and at least one
// ValidationError; never both, never neither. Patterns are tried in a
// fixed order and only the first match is evaluated: wildcard, plain
// integer, comma list, dash range, step interval, then a catch-all
// malformed error spanning the whole text.
func Classify(text string, kind Kind) (Value, []ValidationError) {
	switch {
	case text == "*":
		return Wildcard{}, nil

	case singlePattern.MatchString(text):
		n, err := strconv.Atoi(text)
		if err != nil || !kind.contains(n) {
			return nil, []ValidationError{outOfRange(kind, 0, len(text))}
		}
		return Single{N: n}, nil

	case strings.Contains(text, ","):
		return classifyList(text, kind)

	case rangePattern.MatchString(text):
		return classifyRange(text, kind)

	case stepPattern.MatchString(text):
		return classifyStep(text, kind)

	default:
		return nil, []ValidationError{{
			Start:   0,
			End:     len(text),
			Message: fmt.Sprintf("malformed %s term", kind.Name()),
		}}
	}
}

func outOfRange(kind Kind, start, end int) ValidationError {
	min, max := kind.Bounds()
	return ValidationError{
		Start:   start,
		End:     end,
		Message: fmt.Sprintf("%s term value must be between %d and %d", kind.Name(), min, max),
	}
}

// classifyList handles comma-separated values. Error offsets use the
// historical fixed-width heuristic of index*2 per preceding piece, which
// assumes single-character values; multi-digit pieces will misalign.
// Preserved deliberately, see DESIGN.md.
func classifyList(text string, kind Kind) (Value, []ValidationError) {
	pieces := strings.Split(text, ",")
	values := make([]int, 0, len(pieces))
	var errs []ValidationError

	for i, piece := range pieces {
		start := i * 2
		end := start + len(piece)
		n, err := strconv.Atoi(piece)
		if err != nil {
			errs = append(errs, ValidationError{
				Start:   start,
				End:     end,
				Message: fmt.Sprintf("%s term value must be a number", kind.Name()),
			})
			continue
		}
		if !kind.contains(n) {
			errs = append(errs, outOfRange(kind, start, end))
			continue
		}
		values = append(values, n)
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return List{Values: values}, nil
}

func classifyRange(text string, kind Kind) (Value, []ValidationError) {
	sep := strings.Index(text, "-")
	lo, _ := strconv.Atoi(text[:sep])
	hi, _ := strconv.Atoi(text[sep+1:])

	var errs []ValidationError
	if !kind.contains(lo) {
		errs = append(errs, outOfRange(kind, 0, sep))
	}
	if !kind.contains(hi) {
		errs = append(errs, outOfRange(kind, sep+1, len(text)))
	}
	if len(errs) > 0 {
		return nil, errs
	}
	return Range{Lo: lo, Hi: hi}, nil
}

func classifyStep(text string, kind Kind) (Value, []ValidationError) {
	digits := text[2:]
	n, _ := strconv.Atoi(digits)
	if n == 0 {
		return nil, []ValidationError{{
			Start:   2,
			End:     len(text),
			Message: fmt.Sprintf("%s term step cannot be 0", kind.Name()),
		}}
	}
	// No upper bound: "*/120" on a minute field is pointless but legal.
	return Step{N: n}, nil
}
