package repository

import (
	"context"

	"github.com/jdupreez/trolley/internal/models"
)

// UserRepository defines the interface for user record operations in the
// remote store.
type UserRepository interface {
	Register(ctx context.Context, data *models.RegisterData) (*models.User, error)
	// GetByEmail returns (nil, nil) when no user carries the given email.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, id int64, patch UserPatch) (*models.User, error)
}

// ShoppingListRepository defines the interface for shopping list operations.
// Lists are always fetched with their items embedded inline.
type ShoppingListRepository interface {
	Create(ctx context.Context, userID int64, name string) (*models.ShoppingList, error)
	GetByUserID(ctx context.Context, userID int64) ([]models.ShoppingList, error)
	Rename(ctx context.Context, id int64, name string) (*models.ShoppingList, error)
	Delete(ctx context.Context, id int64) error
}

// ItemRepository defines the interface for shopping list item operations.
type ItemRepository interface {
	Create(ctx context.Context, item *models.ShoppingListItem) (*models.ShoppingListItem, error)
	Update(ctx context.Context, id int64, patch ItemPatch) (*models.ShoppingListItem, error)
	Delete(ctx context.Context, id int64) error
	// Search returns all of the user's items whose name contains the query,
	// across every list the user owns.
	Search(ctx context.Context, userID int64, query string) ([]models.ShoppingListItem, error)
}

// UserPatch lists the user fields a partial update may change. Nil fields
// are left untouched by the store.
type UserPatch struct {
	Name       *string `json:"name,omitempty"`
	Surname    *string `json:"surname,omitempty"`
	Email      *string `json:"email,omitempty"`
	CellNumber *string `json:"cellNumber,omitempty"`
	Password   *string `json:"password,omitempty"`
}

// ItemPatch lists the item fields a partial update may change.
type ItemPatch struct {
	Name     *string `json:"name,omitempty"`
	Quantity *int    `json:"quantity,omitempty"`
	Category *string `json:"category,omitempty"`
	Notes    *string `json:"notes,omitempty"`
	Image    *string `json:"image,omitempty"`
}
