package store

import (
	"github.com/jdupreez/trolley/internal/models"
)

// Store is the normalized in-memory copy of the user's shopping lists. The
// remote record store is the system of record: every mutation is applied
// strictly after a confirmed server response, and only by the interaction
// controller (single writer). Loading and error state are coarse, global
// flags, not per-operation.
type Store struct {
	lists   []models.ShoppingList
	loading bool
	err     string
}

// New creates an empty store.
func New() *Store {
	return &Store{}
}

// Mutation is one of the fixed set of store commands. Mutations targeting
// an id that is not present are silent no-ops.
type Mutation interface {
	isMutation()
}

// SetLists replaces the entire list collection and clears the loading flag.
type SetLists struct {
	Lists []models.ShoppingList
}

// AddList appends one list to the collection.
type AddList struct {
	List models.ShoppingList
}

// RemoveList removes one list by id.
type RemoveList struct {
	ListID int64
}

// RenameList changes one list's name by id.
type RenameList struct {
	ListID int64
	Name   string
}

// AddItem appends one item to a list.
type AddItem struct {
	ListID int64
	Item   models.ShoppingListItem
}

// RemoveItem removes one item from a list by (listID, itemID).
type RemoveItem struct {
	ListID int64
	ItemID int64
}

// UpdateItem replaces one item's fields by (listID, item.ID).
type UpdateItem struct {
	ListID int64
	Item   models.ShoppingListItem
}

// SetLoading sets the global loading flag.
type SetLoading struct {
	Loading bool
}

// SetError sets the global error string and clears the loading flag. An
// empty string clears the error.
type SetError struct {
	Err string
}

func (SetLists) isMutation()   {}
func (AddList) isMutation()    {}
func (RemoveList) isMutation() {}
func (RenameList) isMutation() {}
func (AddItem) isMutation()    {}
func (RemoveItem) isMutation() {}
func (UpdateItem) isMutation() {}
func (SetLoading) isMutation() {}
func (SetError) isMutation()   {}

// Apply executes one mutation against the store.
func (s *Store) Apply(m Mutation) {
	switch m := m.(type) {
	case SetLists:
		s.lists = m.Lists
		s.loading = false
	case AddList:
		s.lists = append(s.lists, m.List)
	case RemoveList:
		for i := range s.lists {
			if s.lists[i].ID == m.ListID {
				s.lists = append(s.lists[:i], s.lists[i+1:]...)
				break
			}
		}
	case RenameList:
		if list := s.find(m.ListID); list != nil {
			list.Name = m.Name
		}
	case AddItem:
		if list := s.find(m.ListID); list != nil {
			list.Items = append(list.Items, m.Item)
		}
	case RemoveItem:
		if list := s.find(m.ListID); list != nil {
			for i := range list.Items {
				if list.Items[i].ID == m.ItemID {
					list.Items = append(list.Items[:i], list.Items[i+1:]...)
					break
				}
			}
		}
	case UpdateItem:
		if list := s.find(m.ListID); list != nil {
			for i := range list.Items {
				if list.Items[i].ID == m.Item.ID {
					list.Items[i] = m.Item
					break
				}
			}
		}
	case SetLoading:
		s.loading = m.Loading
	case SetError:
		s.err = m.Err
		s.loading = false
	}
}

func (s *Store) find(listID int64) *models.ShoppingList {
	for i := range s.lists {
		if s.lists[i].ID == listID {
			return &s.lists[i]
		}
	}
	return nil
}

// Lists returns a copy of the list collection so callers cannot alias the
// store's internal state.
func (s *Store) Lists() []models.ShoppingList {
	lists := make([]models.ShoppingList, len(s.lists))
	copy(lists, s.lists)
	for i := range lists {
		if lists[i].Items != nil {
			items := make([]models.ShoppingListItem, len(lists[i].Items))
			copy(items, lists[i].Items)
			lists[i].Items = items
		}
	}
	return lists
}

// List returns a copy of one list by id.
func (s *Store) List(id int64) (models.ShoppingList, bool) {
	list := s.find(id)
	if list == nil {
		return models.ShoppingList{}, false
	}
	out := *list
	if list.Items != nil {
		out.Items = make([]models.ShoppingListItem, len(list.Items))
		copy(out.Items, list.Items)
	}
	return out, true
}

// Loading reports the global loading flag.
func (s *Store) Loading() bool {
	return s.loading
}

// Err returns the global error string, empty when none is set.
func (s *Store) Err() string {
	return s.err
}
