package auditlog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(action string) Entry {
	return Entry{
		Time:    time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		Actor:   "alice",
		Action:  action,
		Details: "account_id=1",
		Outcome: "ok",
	}
}

func TestAppendRead(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, Append(dir, []Entry{entry("deposit")}))
	require.NoError(t, Append(dir, []Entry{entry("withdraw")}))

	entries, err := Read(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "deposit", entries[0].Action)
	assert.Equal(t, "withdraw", entries[1].Action)
	assert.Equal(t, "alice", entries[0].Actor)
	assert.True(t, entries[0].Time.Equal(entry("").Time))
}

func TestRead_NoFile(t *testing.T) {
	entries, err := Read(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestMarshalRoundTrip(t *testing.T) {
	e := entry("create-account")
	got, err := UnmarshalEntry(MarshalEntry(e))
	require.NoError(t, err)
	assert.Equal(t, e, got)
}

func TestUnmarshal_WrongFieldCount(t *testing.T) {
	_, err := UnmarshalEntry([]string{"just-one"})
	require.Error(t, err)
}
