package todo

// Item is a single to-do entry. TodoID is assigned at creation and never
// reused; TodoID and CreatedAt together form the storage key.
type Item struct {
	TodoID        string   `json:"todoId"`
	CreatedAt     string   `json:"createdAt"`
	Title         string   `json:"title"`
	DueDate       string   `json:"dueDate"`
	Done          bool     `json:"done"`
	Owners        []string `json:"owners"`
	AttachmentURL string   `json:"attachmentUrl,omitempty"`
}

// OwnedBy reports whether userID is a member of the item's owner set.
func (i *Item) OwnedBy(userID string) bool {
	for _, owner := range i.Owners {
		if owner == userID {
			return true
		}
	}
	return false
}

// ToggleOwner flips userID's membership in the owner set and reports
// whether the user is a member afterwards.
func (i *Item) ToggleOwner(userID string) bool {
	for idx, owner := range i.Owners {
		if owner == userID {
			i.Owners = append(i.Owners[:idx], i.Owners[idx+1:]...)
			return false
		}
	}
	i.Owners = append(i.Owners, userID)
	return true
}

// Update carries the mutable fields of an item. Owners, TodoID, CreatedAt
// and AttachmentURL are never touched by a field update.
type Update struct {
	Title   string `json:"title"`
	DueDate string `json:"dueDate"`
	Done    bool   `json:"done"`
}
