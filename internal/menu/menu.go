package menu

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// NotFound is the sentinel index Select returns when input resolves to no
// item, an out-of-range number, or more than one item.
const NotFound = -1

// ErrDuplicateSelector is returned when two items in one menu share a
// selector after normalization.
var ErrDuplicateSelector = errors.New("menu already contains this selector")

// Menu is an ordered collection of items. Insertion order is display order;
// indexes are 1-based to match what the user types.
type Menu struct {
	items []Item
	index map[string]int
}

// New creates an empty menu.
func New() *Menu {
	return &Menu{index: make(map[string]int)}
}

// NewWithItems creates a menu pre-populated with items, rejecting duplicate
// selectors the same way Add does.
func NewWithItems(items ...Item) (*Menu, error) {
	m := New()
	for _, item := range items {
		if err := m.Add(item); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Add appends an item, assigning it the next 1-based index.
func (m *Menu) Add(item Item) error {
	if _, ok := m.index[item.Selector()]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateSelector, item.Selector())
	}
	m.items = append(m.items, item)
	m.index[item.Selector()] = len(m.items)
	return nil
}

// Len returns the number of items.
func (m *Menu) Len() int {
	return len(m.items)
}

// Select resolves user input to a 1-based item index, or NotFound.
//
// Integer input selects by position when within [1, Len]. Anything else is
// upper-cased, stripped of backslashes, and matched against every selector
// using a leading word-boundary anchored search: the input must occur in the
// selector starting at the beginning of a word. There is deliberately no
// trailing boundary, so any unambiguous word prefix selects its item.
// Input matching more than one selector resolves to NotFound; the whole
// menu is scanned before deciding.
func (m *Menu) Select(input string) int {
	if n, err := strconv.Atoi(input); err == nil {
		if n >= 1 && n <= len(m.items) {
			return n
		}
		return NotFound
	}

	norm := strings.ReplaceAll(strings.ToUpper(input), `\`, "")
	if norm == "" {
		return NotFound
	}

	selected := NotFound
	for i, item := range m.items {
		if !matchesLeadingBoundary(item.Selector(), norm) {
			continue
		}
		if selected != NotFound {
			return NotFound
		}
		selected = i + 1
	}
	return selected
}

// String renders the numbered listing, one item per line.
func (m *Menu) String() string {
	var b strings.Builder
	for i, item := range m.items {
		fmt.Fprintf(&b, "%d. %s\n", i+1, item.Display())
	}
	return b.String()
}

// matchesLeadingBoundary reports whether input occurs in selector at a
// position preceded by a word boundary. The end of the match is not
// checked.
func matchesLeadingBoundary(selector, input string) bool {
	for from := 0; ; {
		rel := strings.Index(selector[from:], input)
		if rel < 0 {
			return false
		}
		start := from + rel
		if boundaryBefore(selector, start) {
			return true
		}
		from = start + 1
	}
}
