package ignorefile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// TestParseProperties pins the two laws of the reader: only trimmed lines
// with the CVE prefix become entries, and duplicates never survive.
func TestParseProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("every produced entry has the CVE prefix", prop.ForAll(
		func(lines []string) bool {
			set, err := parseLines(t, lines)
			if err != nil {
				return false
			}
			for _, id := range set.IDs() {
				if !strings.HasPrefix(id, "CVE") {
					return false
				}
			}
			return true
		},
		genLines(),
	))

	properties.Property("entries are unique regardless of input repetition", prop.ForAll(
		func(lines []string) bool {
			doubled := append(append([]string{}, lines...), lines...)
			set, err := parseLines(t, doubled)
			if err != nil {
				return false
			}
			seen := make(map[string]bool)
			for _, id := range set.IDs() {
				if seen[id] {
					return false
				}
				seen[id] = true
			}
			return true
		},
		genLines(),
	))

	properties.Property("parsing twice yields the same set", prop.ForAll(
		func(lines []string) bool {
			first, err := parseLines(t, lines)
			if err != nil {
				return false
			}
			second, err := parseLines(t, lines)
			if err != nil {
				return false
			}
			a, b := first.IDs(), second.IDs()
			if len(a) != len(b) {
				return false
			}
			for i := range a {
				if a[i] != b[i] {
					return false
				}
			}
			return true
		},
		genLines(),
	))

	properties.TestingRun(t)
}

func parseLines(t *testing.T, lines []string) (*Set, error) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ignore")
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0o644); err != nil {
		t.Fatal(err)
	}
	return Parse(path)
}

func genLines() gopter.Gen {
	line := gen.OneGenOf(
		gen.RegexMatch(`CVE-20[0-9]{2}-[0-9]{4}`),
		gen.RegexMatch(`  CVE-20[0-9]{2}-[0-9]{4}  `),
		gen.RegexMatch(`GHSA-[a-z0-9]{4}`),
		gen.RegexMatch(`# [a-z ]{0,10}`),
		gen.Const(""),
	)
	return gen.SliceOf(line)
}
