package ignorefile

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// entryPrefix selects which lines of the ignore file are tracked identifiers.
const entryPrefix = "CVE"

// Set holds the working set of ignored identifiers. Entries are removed as
// the checker matches them; whatever remains afterwards was never confirmed.
// Order is first-seen, so reports stay stable across runs.
type Set struct {
	order   []string
	members map[string]struct{}
}

func NewSet() *Set {
	return &Set{members: make(map[string]struct{})}
}

// Add inserts id and reports whether it was newly added.
func (s *Set) Add(id string) bool {
	if _, ok := s.members[id]; ok {
		return false
	}
	s.members[id] = struct{}{}
	s.order = append(s.order, id)
	return true
}

func (s *Set) Contains(id string) bool {
	_, ok := s.members[id]
	return ok
}

func (s *Set) Remove(id string) {
	if _, ok := s.members[id]; !ok {
		return
	}
	delete(s.members, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

func (s *Set) Len() int { return len(s.members) }

// IDs returns the remaining entries in first-seen order.
func (s *Set) IDs() []string {
	ids := make([]string, len(s.order))
	copy(ids, s.order)
	return ids
}

// Parse reads an ignore file into a Set. A line counts as an entry when,
// after trimming surrounding whitespace, it starts with "CVE". Duplicates
// collapse to the first occurrence. Anything else (comments, blank lines,
// non-CVE suppressions) is skipped without validation.
func Parse(path string) (*Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read ignore file: %w", err)
	}
	defer f.Close()

	set := NewSet()
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, entryPrefix) {
			continue
		}
		set.Add(line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read ignore file: %w", err)
	}
	return set, nil
}
