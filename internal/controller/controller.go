// Package controller glues the rendered view to the record store API and
// the in-memory store. It owns every piece of interaction state a signed-in
// chat carries: per-list item drafts, the single in-place edit, the single
// pending delete confirmation, the search query, and the sort key. Store
// mutations are applied only here, and only after a confirmed server
// response.
package controller

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/jdupreez/trolley/internal/models"
	"github.com/jdupreez/trolley/internal/repository"
	"github.com/jdupreez/trolley/internal/sorting"
	"github.com/jdupreez/trolley/internal/store"
)

// defaultSearchDebounce is how long input must stay quiet before a search
// request fires.
const defaultSearchDebounce = 500 * time.Millisecond

// Controller drives one authenticated user's shopping list view.
type Controller struct {
	mu     sync.Mutex
	logger *logrus.Logger
	store  *store.Store
	lists  repository.ShoppingListRepository
	items  repository.ItemRepository
	user   models.User

	sortKey       sorting.Key
	searchQuery   string
	searchResults []models.ShoppingListItem // nil means no active search
	searchSeq     uint64
	debounce      *time.Timer
	debounceDelay time.Duration

	drafts        map[int64]ItemDraft
	renaming      *RenameDraft
	editing       *ItemEdit
	pendingDelete *DeleteTarget
}

// Option configures a Controller.
type Option func(*Controller)

// WithDebounce overrides the search debounce interval.
func WithDebounce(d time.Duration) Option {
	return func(c *Controller) { c.debounceDelay = d }
}

// New creates a controller for the given user.
func New(user models.User, lists repository.ShoppingListRepository, items repository.ItemRepository, logger *logrus.Logger, opts ...Option) *Controller {
	c := &Controller{
		logger:        logger,
		store:         store.New(),
		lists:         lists,
		items:         items,
		user:          user,
		sortKey:       sorting.KeyDate,
		debounceDelay: defaultSearchDebounce,
		drafts:        make(map[int64]ItemDraft),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// User returns the authenticated user this controller belongs to.
func (c *Controller) User() models.User {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.user
}

// SetUser replaces the cached user record after a profile update.
func (c *Controller) SetUser(user models.User) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.user = user
}

// LoadLists fetches all of the user's lists, items embedded, and replaces
// the store's collection with the server's response. A failure sets the
// store's global error.
func (c *Controller) LoadLists(ctx context.Context) error {
	c.mu.Lock()
	c.store.Apply(store.SetLoading{Loading: true})
	userID := c.user.ID
	c.mu.Unlock()

	lists, err := c.lists.GetByUserID(ctx, userID)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.logger.Errorf("Failed to fetch shopping lists for user %d: %v", userID, err)
		c.store.Apply(store.SetError{Err: "Failed to fetch shopping lists."})
		return err
	}
	c.store.Apply(store.SetLists{Lists: lists})
	return nil
}

// Lists returns a copy of the current list collection.
func (c *Controller) Lists() []models.ShoppingList {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store.Lists()
}

// ListByID returns a copy of one list.
func (c *Controller) ListByID(listID int64) (models.ShoppingList, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store.List(listID)
}

// ListItems returns one list's items ordered by the current sort key.
func (c *Controller) ListItems(listID int64) []models.ShoppingListItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	list, ok := c.store.List(listID)
	if !ok {
		return nil
	}
	return sorting.Items(list.Items, c.sortKey)
}

// FindItem locates the list currently holding the given item, checking
// the store first and the active search results second.
func (c *Controller) FindItem(itemID int64) (models.ShoppingListItem, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, list := range c.store.Lists() {
		for _, item := range list.Items {
			if item.ID == itemID {
				return item, true
			}
		}
	}
	for _, item := range c.searchResults {
		if item.ID == itemID {
			return item, true
		}
	}
	return models.ShoppingListItem{}, false
}

// Loading reports the store's global loading flag.
func (c *Controller) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store.Loading()
}

// Err returns the store's global error string.
func (c *Controller) Err() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store.Err()
}
