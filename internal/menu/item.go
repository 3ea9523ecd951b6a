// Package menu implements the interactive menu engine: items bound to
// selector tokens, and resolution of free-text or numeric input to a
// 1-based menu index.
package menu

import (
	"errors"
	"fmt"
	"strings"
)

// ErrSelectorNotInLabel is returned when a selector token does not occur as
// a whole word in its item's label.
var ErrSelectorNotInLabel = errors.New("selector does not occur in label")

// Item binds a display label to the selector token that chooses it.
// Immutable after construction.
type Item struct {
	display  string
	selector string
}

// NewItem validates a (label, selector) pair. The selector is upper-cased
// and stripped of backslash escapes, then must occur as a delimited whole
// word in the upper-cased label. The returned display label has the
// normalized token spliced back in at the matched position, preserving the
// label's casing everywhere else.
func NewItem(label, selector string) (Item, error) {
	sel := strings.ReplaceAll(strings.ToUpper(selector), `\`, "")
	if sel == "" {
		return Item{}, fmt.Errorf("%w: empty selector for label %q", ErrSelectorNotInLabel, label)
	}

	start := indexWholeWord(strings.ToUpper(label), sel)
	if start < 0 {
		return Item{}, fmt.Errorf("%w: %q not in %q", ErrSelectorNotInLabel, sel, label)
	}

	display := label[:start] + sel + label[start+len(sel):]
	return Item{display: display, selector: sel}, nil
}

// Display returns the label as the menu prints it.
func (i Item) Display() string {
	return i.display
}

// Selector returns the normalized selector token.
func (i Item) Selector() string {
	return i.selector
}

func (i Item) String() string {
	return i.display
}

// indexWholeWord returns the first index of token in s where the match is
// bounded by non-word characters (or the ends of s) on both sides, or -1.
func indexWholeWord(s, token string) int {
	for from := 0; ; {
		rel := strings.Index(s[from:], token)
		if rel < 0 {
			return -1
		}
		start := from + rel
		end := start + len(token)
		if boundaryBefore(s, start) && boundaryAfter(s, end) {
			return start
		}
		from = start + 1
	}
}

// boundaryBefore reports whether position start sits on a leading word
// boundary: the start of the string or preceded by a non-word character.
func boundaryBefore(s string, start int) bool {
	return start == 0 || !isWordChar(s[start-1])
}

func boundaryAfter(s string, end int) bool {
	return end == len(s) || !isWordChar(s[end])
}

func isWordChar(c byte) bool {
	return c == '_' ||
		(c >= '0' && c <= '9') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= 'a' && c <= 'z')
}
