package todo

// DirectoryEntry is the per-user record of owned item identifiers. The
// stored order of TodoIDs drives list ordering, so Add appends and Remove
// splices in place.
type DirectoryEntry struct {
	UserID  string   `json:"userId"`
	TodoIDs []string `json:"todoIds"`
}

// NewDirectoryEntry creates an empty directory entry for a user. Entries
// are created lazily on first item creation or first share naming the user.
func NewDirectoryEntry(userID string) *DirectoryEntry {
	return &DirectoryEntry{
		UserID:  userID,
		TodoIDs: []string{},
	}
}

// Contains reports whether todoID is listed in the entry.
func (e *DirectoryEntry) Contains(todoID string) bool {
	for _, id := range e.TodoIDs {
		if id == todoID {
			return true
		}
	}
	return false
}

// Add appends todoID to the entry.
func (e *DirectoryEntry) Add(todoID string) {
	e.TodoIDs = append(e.TodoIDs, todoID)
}

// Remove deletes todoID from the entry, preserving the order of the
// remaining ids, and reports whether it was present.
func (e *DirectoryEntry) Remove(todoID string) bool {
	for idx, id := range e.TodoIDs {
		if id == todoID {
			e.TodoIDs = append(e.TodoIDs[:idx], e.TodoIDs[idx+1:]...)
			return true
		}
	}
	return false
}

// Toggle flips todoID's membership and reports whether it is listed
// afterwards.
func (e *DirectoryEntry) Toggle(todoID string) bool {
	if e.Remove(todoID) {
		return false
	}
	e.Add(todoID)
	return true
}

// UserEntry is one row of the per-item user listing: every known user,
// with TodoIDs holding the queried item id when the user owns it.
type UserEntry struct {
	UserID  string   `json:"userId"`
	TodoIDs []string `json:"todoIds"`
}
