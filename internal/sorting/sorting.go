package sorting

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/jdupreez/trolley/internal/models"
)

// Key selects how a set of items is ordered for display.
type Key string

const (
	// KeyDate orders items newest first. This is the default view.
	KeyDate Key = "date"
	// KeyName orders items by name, ascending, locale aware.
	KeyName Key = "name"
	// KeyCategory orders items by category, ascending, locale aware.
	KeyCategory Key = "category"
)

// ParseKey maps a raw string onto a sort key, falling back to KeyDate.
func ParseKey(s string) Key {
	switch Key(s) {
	case KeyName:
		return KeyName
	case KeyCategory:
		return KeyCategory
	default:
		return KeyDate
	}
}

// Items returns a new slice holding the given items in the order selected
// by key. The input is never modified. Name and category use a locale
// aware, case-insensitive collation ("apple" sorts before "Banana"); date
// orders strictly descending by DateAdded. The sort is stable.
func Items(items []models.ShoppingListItem, key Key) []models.ShoppingListItem {
	out := make([]models.ShoppingListItem, len(items))
	copy(out, items)

	switch key {
	case KeyName:
		c := collate.New(language.English, collate.Loose)
		sort.SliceStable(out, func(i, j int) bool {
			return c.CompareString(out[i].Name, out[j].Name) < 0
		})
	case KeyCategory:
		c := collate.New(language.English, collate.Loose)
		sort.SliceStable(out, func(i, j int) bool {
			return c.CompareString(out[i].Category, out[j].Category) < 0
		})
	default:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].DateAdded.After(out[j].DateAdded)
		})
	}
	return out
}
