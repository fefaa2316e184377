package generator_test

import (
	"regexp"
	"testing"

	"github.com/Brendon-Hablutzel/crontab-ls/internal/generator"
)

func TestUUIDV4GeneratorNext(t *testing.T) {
	regex := regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)
	gen := generator.UUIDV4Generator{}

	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		id, err := gen.Next()
		if err != nil {
			t.Fatalf("Next() returned error: %v", err)
		}
		if !regex.MatchString(id) {
			t.Fatalf("Next() = %q, want UUIDv4 format", id)
		}
		if _, ok := seen[id]; ok {
			t.Fatalf("Next() returned duplicate id %q", id)
		}
		seen[id] = struct{}{}
	}
}
