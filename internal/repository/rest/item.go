package rest

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/jdupreez/trolley/internal/models"
	"github.com/jdupreez/trolley/internal/repository"
)

type itemRepository struct {
	client *Client
}

// NewItemRepository creates an item repository backed by the remote store
func NewItemRepository(client *Client) repository.ItemRepository {
	return &itemRepository{client: client}
}

func (r *itemRepository) Create(ctx context.Context, item *models.ShoppingListItem) (*models.ShoppingListItem, error) {
	payload := struct {
		Name           string    `json:"name"`
		Quantity       int       `json:"quantity"`
		Category       string    `json:"category"`
		Notes          string    `json:"notes,omitempty"`
		Image          string    `json:"image,omitempty"`
		ShoppingListID int64     `json:"shoppingListId"`
		DateAdded      time.Time `json:"dateAdded"`
	}{
		Name:           item.Name,
		Quantity:       item.Quantity,
		Category:       item.Category,
		Notes:          item.Notes,
		Image:          item.Image,
		ShoppingListID: item.ShoppingListID,
		DateAdded:      item.DateAdded,
	}

	created := &models.ShoppingListItem{}
	if err := r.client.do(ctx, http.MethodPost, "/items", nil, payload, created); err != nil {
		return nil, fmt.Errorf("failed to create item: %w", err)
	}
	return created, nil
}

func (r *itemRepository) Update(ctx context.Context, id int64, patch repository.ItemPatch) (*models.ShoppingListItem, error) {
	item := &models.ShoppingListItem{}
	path := fmt.Sprintf("/items/%d", id)
	if err := r.client.do(ctx, http.MethodPatch, path, nil, patch, item); err != nil {
		return nil, fmt.Errorf("failed to update item %d: %w", id, err)
	}
	return item, nil
}

func (r *itemRepository) Delete(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/items/%d", id)
	if err := r.client.do(ctx, http.MethodDelete, path, nil, nil, nil); err != nil {
		return fmt.Errorf("failed to delete item %d: %w", id, err)
	}
	return nil
}

// Search issues the single combined-filter query: an ownership join filter
// on the parent list plus a name substring filter, resolved store-side.
func (r *itemRepository) Search(ctx context.Context, userID int64, query string) ([]models.ShoppingListItem, error) {
	q := url.Values{}
	q.Set("shoppingList.userId", strconv.FormatInt(userID, 10))
	q.Set("name_like", query)

	var items []models.ShoppingListItem
	if err := r.client.do(ctx, http.MethodGet, "/items", q, nil, &items); err != nil {
		return nil, fmt.Errorf("failed to search items for user %d: %w", userID, err)
	}
	return items, nil
}
