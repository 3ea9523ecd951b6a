package menu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testMenu(t *testing.T) *Menu {
	t.Helper()
	m := New()
	for _, def := range []struct{ label, selector string }{
		{"Test Item", "Test"},
		{"Next Item", "Next"},
	} {
		item, err := NewItem(def.label, def.selector)
		require.NoError(t, err)
		require.NoError(t, m.Add(item))
	}
	return m
}

func TestAddAndRender(t *testing.T) {
	m := testMenu(t)
	assert.Equal(t, 2, m.Len())
	assert.Equal(t, "1. TEST Item\n2. NEXT Item\n", m.String())
}

func TestAdd_DuplicateSelector(t *testing.T) {
	m := New()
	first, err := NewItem("Test Item", "Item")
	require.NoError(t, err)
	require.NoError(t, m.Add(first))

	second, err := NewItem("Next Item", "Item")
	require.NoError(t, err)
	require.ErrorIs(t, m.Add(second), ErrDuplicateSelector)
}

func TestNewWithItems(t *testing.T) {
	a, err := NewItem("Test Item", "Test")
	require.NoError(t, err)
	b, err := NewItem("Next Item", "Next")
	require.NoError(t, err)

	m, err := NewWithItems(a, b)
	require.NoError(t, err)
	assert.Equal(t, 2, m.Len())
}

func TestNewWithItems_DuplicateSelector(t *testing.T) {
	a, err := NewItem("Test Item", "Item")
	require.NoError(t, err)
	b, err := NewItem("Next Item", "Item")
	require.NoError(t, err)

	_, err = NewWithItems(a, b)
	require.ErrorIs(t, err, ErrDuplicateSelector)
}

func TestSelect_Numeric(t *testing.T) {
	m := testMenu(t)

	tests := []struct {
		input string
		want  int
	}{
		{"1", 1},
		{"2", 2},
		{"000", NotFound},
		{"0", NotFound},
		{"-1", NotFound},
		{"3", NotFound},
		{"1.0", NotFound},
		{"209fssef09se", NotFound},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, m.Select(tt.input), "input %q", tt.input)
	}
}

func TestSelect_FullWord(t *testing.T) {
	m := testMenu(t)

	for _, input := range []string{"Test", "TeSt", "test", "TEST"} {
		assert.Equal(t, 1, m.Select(input), "input %q", input)
	}
	assert.Equal(t, 2, m.Select("next"))
}

func TestSelect_Prefix(t *testing.T) {
	m := testMenu(t)

	for _, input := range []string{"Tes", "TeS", "tes", "TES"} {
		assert.Equal(t, 1, m.Select(input), "input %q", input)
	}
}

func TestSelect_BackslashesStripped(t *testing.T) {
	m := testMenu(t)
	assert.Equal(t, 1, m.Select(`T\e\s\t`))
}

func TestSelect_Misspelled(t *testing.T) {
	m := testMenu(t)
	assert.Equal(t, NotFound, m.Select("Tset"))
}

func TestSelect_AmbiguousPrefix(t *testing.T) {
	m := New()
	deposit, err := NewItem("Deposit amount", "Deposit")
	require.NoError(t, err)
	del, err := NewItem("Delete account", "Delete")
	require.NoError(t, err)
	require.NoError(t, m.Add(deposit))
	require.NoError(t, m.Add(del))

	// "De" prefixes both selectors; ambiguity resolves to NotFound even
	// though the first item matched.
	assert.Equal(t, NotFound, m.Select("De"))
	assert.Equal(t, 1, m.Select("Dep"))
	assert.Equal(t, 2, m.Select("Del"))
}

func TestSelect_Idempotent(t *testing.T) {
	m := testMenu(t)
	for _, input := range []string{"1", "test", "De", "nope", ""} {
		assert.Equal(t, m.Select(input), m.Select(input), "input %q", input)
	}
}

func TestSelect_EmptyInput(t *testing.T) {
	m := testMenu(t)
	assert.Equal(t, NotFound, m.Select(""))
	assert.Equal(t, NotFound, m.Select(`\\`))
}
