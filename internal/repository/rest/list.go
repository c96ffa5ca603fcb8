package rest

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/jdupreez/trolley/internal/models"
	"github.com/jdupreez/trolley/internal/repository"
)

type shoppingListRepository struct {
	client *Client
}

// NewShoppingListRepository creates a shopping list repository backed by
// the remote store.
func NewShoppingListRepository(client *Client) repository.ShoppingListRepository {
	return &shoppingListRepository{client: client}
}

func (r *shoppingListRepository) Create(ctx context.Context, userID int64, name string) (*models.ShoppingList, error) {
	payload := struct {
		UserID int64  `json:"userId"`
		Name   string `json:"name"`
	}{UserID: userID, Name: name}

	list := &models.ShoppingList{}
	if err := r.client.do(ctx, http.MethodPost, "/shoppingLists", nil, payload, list); err != nil {
		return nil, fmt.Errorf("failed to create shopping list: %w", err)
	}
	return list, nil
}

// GetByUserID fetches all of a user's lists with their items embedded
// inline, one request for the whole collection.
func (r *shoppingListRepository) GetByUserID(ctx context.Context, userID int64) ([]models.ShoppingList, error) {
	query := url.Values{}
	query.Set("userId", strconv.FormatInt(userID, 10))
	query.Set("_embed", "items")

	var lists []models.ShoppingList
	if err := r.client.do(ctx, http.MethodGet, "/shoppingLists", query, nil, &lists); err != nil {
		return nil, fmt.Errorf("failed to get shopping lists for user %d: %w", userID, err)
	}
	return lists, nil
}

func (r *shoppingListRepository) Rename(ctx context.Context, id int64, name string) (*models.ShoppingList, error) {
	payload := struct {
		Name string `json:"name"`
	}{Name: name}

	list := &models.ShoppingList{}
	path := fmt.Sprintf("/shoppingLists/%d", id)
	if err := r.client.do(ctx, http.MethodPatch, path, nil, payload, list); err != nil {
		return nil, fmt.Errorf("failed to rename shopping list %d: %w", id, err)
	}
	return list, nil
}

func (r *shoppingListRepository) Delete(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/shoppingLists/%d", id)
	if err := r.client.do(ctx, http.MethodDelete, path, nil, nil, nil); err != nil {
		return fmt.Errorf("failed to delete shopping list %d: %w", id, err)
	}
	return nil
}
