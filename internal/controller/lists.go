package controller

import (
	"context"
	"strings"

	"github.com/jdupreez/trolley/internal/models"
	"github.com/jdupreez/trolley/internal/store"
)

// RenameDraft tracks the single in-progress list rename.
type RenameDraft struct {
	ListID   int64
	Original string
	Name     string
}

// DeleteKind tags what a pending delete confirmation points at.
type DeleteKind string

const (
	DeleteKindList DeleteKind = "list"
	DeleteKindItem DeleteKind = "item"
)

// DeleteTarget is the single pending delete the confirmation dialog
// consumes. Name is the display name shown to the user.
type DeleteTarget struct {
	Kind   DeleteKind
	ListID int64
	ItemID int64
	Name   string
}

// CreateList creates a new list for the user and appends the server's
// response, with an empty item collection, to the store. A blank name is a
// no-op and returns (nil, nil).
func (c *Controller) CreateList(ctx context.Context, name string) (*models.ShoppingList, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, nil
	}

	c.mu.Lock()
	userID := c.user.ID
	c.mu.Unlock()

	list, err := c.lists.Create(ctx, userID, trimmed)
	if err != nil {
		c.logger.Errorf("Failed to create shopping list %q: %v", trimmed, err)
		return nil, err
	}
	list.Items = []models.ShoppingListItem{}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.store.Apply(store.AddList{List: *list})
	return list, nil
}

// BeginRename enters the in-place rename for one list, replacing any
// rename already in progress. Unknown ids are ignored.
func (c *Controller) BeginRename(listID int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	list, ok := c.store.List(listID)
	if !ok {
		return false
	}
	c.renaming = &RenameDraft{ListID: listID, Original: list.Name, Name: list.Name}
	return true
}

// Renaming returns the in-progress rename, if any.
func (c *Controller) Renaming() (RenameDraft, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.renaming == nil {
		return RenameDraft{}, false
	}
	return *c.renaming, true
}

// SetRenameDraft updates the rename field's current value.
func (c *Controller) SetRenameDraft(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.renaming != nil {
		c.renaming.Name = name
	}
}

// CancelRename abandons the in-progress rename.
func (c *Controller) CancelRename() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.renaming = nil
}

// SubmitRename submits the in-progress rename. An empty or unchanged name
// is a no-op; either way the rename state is cleared.
func (c *Controller) SubmitRename(ctx context.Context) error {
	c.mu.Lock()
	draft := c.renaming
	c.renaming = nil
	c.mu.Unlock()
	if draft == nil {
		return nil
	}

	trimmed := strings.TrimSpace(draft.Name)
	if trimmed == "" || trimmed == draft.Original {
		return nil
	}

	list, err := c.lists.Rename(ctx, draft.ListID, trimmed)
	if err != nil {
		c.logger.Errorf("Failed to rename shopping list %d: %v", draft.ListID, err)
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.store.Apply(store.RenameList{ListID: list.ID, Name: list.Name})
	return nil
}

// RequestDeleteList marks one list as the pending delete target. Nothing
// is deleted until ConfirmDelete runs; a previously pending target is
// replaced.
func (c *Controller) RequestDeleteList(listID int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	list, ok := c.store.List(listID)
	if !ok {
		return false
	}
	c.pendingDelete = &DeleteTarget{Kind: DeleteKindList, ListID: listID, Name: list.Name}
	return true
}

// RequestDeleteItem marks one item as the pending delete target.
func (c *Controller) RequestDeleteItem(listID, itemID int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	list, ok := c.store.List(listID)
	if !ok {
		return false
	}
	for _, item := range list.Items {
		if item.ID == itemID {
			c.pendingDelete = &DeleteTarget{Kind: DeleteKindItem, ListID: listID, ItemID: itemID, Name: item.Name}
			return true
		}
	}
	return false
}

// PendingDelete returns the pending delete target, if any.
func (c *Controller) PendingDelete() (DeleteTarget, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pendingDelete == nil {
		return DeleteTarget{}, false
	}
	return *c.pendingDelete, true
}

// CancelDelete clears the pending delete target without issuing any call.
func (c *Controller) CancelDelete() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pendingDelete = nil
}

// ConfirmDelete performs the pending delete: the API call first, then the
// store mutation. The pending target is consumed whether or not the call
// succeeds, matching the dialog closing in both cases.
func (c *Controller) ConfirmDelete(ctx context.Context) error {
	c.mu.Lock()
	target := c.pendingDelete
	c.pendingDelete = nil
	c.mu.Unlock()
	if target == nil {
		return nil
	}

	switch target.Kind {
	case DeleteKindList:
		if err := c.lists.Delete(ctx, target.ListID); err != nil {
			c.logger.Errorf("Failed to delete shopping list %d: %v", target.ListID, err)
			return err
		}
		c.mu.Lock()
		defer c.mu.Unlock()
		c.store.Apply(store.RemoveList{ListID: target.ListID})
		delete(c.drafts, target.ListID)
		if c.editing != nil && c.editing.ListID == target.ListID {
			c.editing = nil
		}
		c.dropSearchResults(func(item models.ShoppingListItem) bool {
			return item.ShoppingListID == target.ListID
		})

	case DeleteKindItem:
		if err := c.items.Delete(ctx, target.ItemID); err != nil {
			c.logger.Errorf("Failed to delete item %d: %v", target.ItemID, err)
			return err
		}
		c.mu.Lock()
		defer c.mu.Unlock()
		c.store.Apply(store.RemoveItem{ListID: target.ListID, ItemID: target.ItemID})
		if c.editing != nil && c.editing.ItemID == target.ItemID {
			c.editing = nil
		}
		c.dropSearchResults(func(item models.ShoppingListItem) bool {
			return item.ID == target.ItemID
		})
	}
	return nil
}

// dropSearchResults removes matching entries from the active search
// results, if a search is active. Caller must hold the lock.
func (c *Controller) dropSearchResults(match func(models.ShoppingListItem) bool) {
	if c.searchResults == nil {
		return
	}
	kept := c.searchResults[:0]
	for _, item := range c.searchResults {
		if !match(item) {
			kept = append(kept, item)
		}
	}
	c.searchResults = kept
}
