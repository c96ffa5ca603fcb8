package controller

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jdupreez/trolley/internal/models"
	"github.com/jdupreez/trolley/internal/repository"
	"github.com/jdupreez/trolley/internal/store"
	"github.com/jdupreez/trolley/internal/validation"
)

// ErrInvalidImageURL rejects a draft whose image is not an absolute
// http/https URL with a recognized image extension.
var ErrInvalidImageURL = errors.New("please enter a valid image URL (must be http/https and end with jpg, png, gif, etc.)")

// ItemDraft holds the fields of the per-list add form, or of the single
// in-place edit.
type ItemDraft struct {
	Name     string
	Quantity int
	Category string
	Notes    string
	Image    string
}

// ItemEdit is the single in-place edit. Starting another edit replaces it,
// abandoning the unsaved draft.
type ItemEdit struct {
	ListID int64
	ItemID int64
	Draft  ItemDraft
}

// Draft returns a list's current add-item draft, defaulting quantity to 1.
func (c *Controller) Draft(listID int64) ItemDraft {
	c.mu.Lock()
	defer c.mu.Unlock()
	if draft, ok := c.drafts[listID]; ok {
		return draft
	}
	return ItemDraft{Quantity: 1}
}

// SetDraft replaces a list's add-item draft.
func (c *Controller) SetDraft(listID int64, draft ItemDraft) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.drafts[listID] = draft
}

// CanSubmitDraft mirrors the add form's submit gating: a non-blank name
// and a valid (or empty) image URL.
func (c *Controller) CanSubmitDraft(listID int64) bool {
	draft := c.Draft(listID)
	return strings.TrimSpace(draft.Name) != "" && validation.ValidImageURL(draft.Image)
}

// SubmitDraft creates an item from a list's draft. A blank name is a
// no-op; an invalid image URL fails before any request. On success the
// server's item is appended to the store and the draft is reset.
func (c *Controller) SubmitDraft(ctx context.Context, listID int64) (*models.ShoppingListItem, error) {
	draft := c.Draft(listID)
	if strings.TrimSpace(draft.Name) == "" {
		return nil, nil
	}
	if !validation.ValidImageURL(draft.Image) {
		return nil, ErrInvalidImageURL
	}

	quantity := draft.Quantity
	if quantity < 1 {
		quantity = 1
	}
	item := &models.ShoppingListItem{
		Name:           draft.Name,
		Quantity:       quantity,
		Category:       draft.Category,
		Notes:          draft.Notes,
		Image:          draft.Image,
		ShoppingListID: listID,
		DateAdded:      time.Now().UTC(),
	}

	created, err := c.items.Create(ctx, item)
	if err != nil {
		c.logger.Errorf("Failed to add item %q to list %d: %v", draft.Name, listID, err)
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.store.Apply(store.AddItem{ListID: listID, Item: *created})
	delete(c.drafts, listID)
	return created, nil
}

// StartEdit enters the in-place edit for one item, seeding the draft from
// its current fields. Any other unsaved edit is abandoned without warning.
func (c *Controller) StartEdit(listID, itemID int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	list, ok := c.store.List(listID)
	if !ok {
		return false
	}
	for _, item := range list.Items {
		if item.ID == itemID {
			c.editing = &ItemEdit{
				ListID: listID,
				ItemID: itemID,
				Draft: ItemDraft{
					Name:     item.Name,
					Quantity: item.Quantity,
					Category: item.Category,
					Notes:    item.Notes,
					Image:    item.Image,
				},
			}
			return true
		}
	}
	return false
}

// Editing returns the in-progress edit, if any.
func (c *Controller) Editing() (ItemEdit, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.editing == nil {
		return ItemEdit{}, false
	}
	return *c.editing, true
}

// SetEditDraft updates the edit form's current values.
func (c *Controller) SetEditDraft(draft ItemDraft) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.editing != nil {
		c.editing.Draft = draft
	}
}

// CancelEdit discards the edit draft, leaving the item untouched.
func (c *Controller) CancelEdit() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.editing = nil
}

// SaveEdit submits the in-progress edit and patches the store with the
// server's response. A blank name or invalid image URL fails before any
// request, keeping the edit open; so does a failed request.
func (c *Controller) SaveEdit(ctx context.Context) (*models.ShoppingListItem, error) {
	c.mu.Lock()
	edit := c.editing
	c.mu.Unlock()
	if edit == nil {
		return nil, nil
	}

	name := strings.TrimSpace(edit.Draft.Name)
	if name == "" {
		return nil, nil
	}
	if !validation.ValidImageURL(edit.Draft.Image) {
		return nil, ErrInvalidImageURL
	}

	quantity := edit.Draft.Quantity
	if quantity < 1 {
		quantity = 1
	}
	patch := repository.ItemPatch{
		Name:     &name,
		Quantity: &quantity,
		Category: &edit.Draft.Category,
		Notes:    &edit.Draft.Notes,
		Image:    &edit.Draft.Image,
	}

	updated, err := c.items.Update(ctx, edit.ItemID, patch)
	if err != nil {
		c.logger.Errorf("Failed to update item %d: %v", edit.ItemID, err)
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.store.Apply(store.UpdateItem{ListID: edit.ListID, Item: *updated})
	if c.searchResults != nil {
		for i := range c.searchResults {
			if c.searchResults[i].ID == updated.ID {
				c.searchResults[i] = *updated
			}
		}
	}
	if c.editing != nil && c.editing.ItemID == edit.ItemID {
		c.editing = nil
	}
	return updated, nil
}
