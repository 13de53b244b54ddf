package todo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDirectoryEntry_AddPreservesOrder(t *testing.T) {
	entry := NewDirectoryEntry("user1")

	entry.Add("id-a")
	entry.Add("id-b")
	entry.Add("id-c")

	assert.Equal(t, []string{"id-a", "id-b", "id-c"}, entry.TodoIDs)
}

func TestDirectoryEntry_RemoveSplicesInPlace(t *testing.T) {
	entry := &DirectoryEntry{UserID: "user1", TodoIDs: []string{"id-a", "id-b", "id-c"}}

	removed := entry.Remove("id-b")

	assert.True(t, removed)
	assert.Equal(t, []string{"id-a", "id-c"}, entry.TodoIDs)
}

func TestDirectoryEntry_RemoveMissingReportsFalse(t *testing.T) {
	entry := &DirectoryEntry{UserID: "user1", TodoIDs: []string{"id-a"}}

	removed := entry.Remove("id-x")

	assert.False(t, removed)
	assert.Equal(t, []string{"id-a"}, entry.TodoIDs)
}

func TestDirectoryEntry_Toggle(t *testing.T) {
	entry := NewDirectoryEntry("user1")

	assert.True(t, entry.Toggle("id-a"))
	assert.True(t, entry.Contains("id-a"))

	assert.False(t, entry.Toggle("id-a"))
	assert.False(t, entry.Contains("id-a"))
}
