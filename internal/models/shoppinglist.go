package models

import "time"

// ShoppingList represents a named, user-owned collection of items
type ShoppingList struct {
	ID     int64              `json:"id"`
	UserID int64              `json:"userId"`
	Name   string             `json:"name"`
	Items  []ShoppingListItem `json:"items,omitempty"`
}

// ShoppingListItem represents a single entry in a shopping list. Notes and
// Image are optional; Image, when set, must be an absolute http/https URL
// pointing at a recognized image format.
type ShoppingListItem struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	Quantity       int       `json:"quantity"`
	Category       string    `json:"category"`
	Notes          string    `json:"notes,omitempty"`
	Image          string    `json:"image,omitempty"`
	ShoppingListID int64     `json:"shoppingListId"`
	DateAdded      time.Time `json:"dateAdded"`
}
