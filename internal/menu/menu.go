package menu

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/noah-isme/backend-kantin/internal/pricing"
)

// ErrNoSuchItem indicates the requested name is not on the menu for the category.
var ErrNoSuchItem = errors.New("no such menu item")

// ErrUnknownCategory is returned when a category string cannot be parsed.
var ErrUnknownCategory = errors.New("unknown menu category")

// Category tags a menu item with the order slot it belongs to.
type Category string

const (
	CategoryEntree        Category = "entree"
	CategorySide          Category = "side"
	CategoryAccompaniment Category = "accompaniment"
)

// Categories returns the canonical category order used for listings.
func Categories() []Category {
	return []Category{CategoryEntree, CategorySide, CategoryAccompaniment}
}

// ParseCategory normalises a category string from an external caller.
func ParseCategory(value string) (Category, error) {
	switch Category(strings.ToLower(strings.TrimSpace(value))) {
	case CategoryEntree:
		return CategoryEntree, nil
	case CategorySide:
		return CategorySide, nil
	case CategoryAccompaniment:
		return CategoryAccompaniment, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownCategory, value)
	}
}

// Item is an immutable menu entry. Price is stored in minor units.
type Item struct {
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	Price       pricing.Money `json:"price"`
	Category    Category      `json:"category"`
}

// Menu is a read-only lookup from category and display name to items. It is
// injected into order state rather than accessed as a global so the state
// stays testable in isolation.
type Menu struct {
	items map[Category]map[string]Item
}

// New validates the provided items and builds a lookup table.
func New(items []Item) (*Menu, error) {
	m := &Menu{items: make(map[Category]map[string]Item, 3)}
	for _, it := range items {
		name := strings.TrimSpace(it.Name)
		if name == "" {
			return nil, errors.New("menu item name is required")
		}
		if _, err := ParseCategory(string(it.Category)); err != nil {
			return nil, fmt.Errorf("item %q: %w", name, err)
		}
		if it.Price < 0 {
			return nil, fmt.Errorf("item %q: price must be non-negative", name)
		}
		byName := m.items[it.Category]
		if byName == nil {
			byName = make(map[string]Item)
			m.items[it.Category] = byName
		}
		if _, exists := byName[name]; exists {
			return nil, fmt.Errorf("item %q: duplicate name in category %s", name, it.Category)
		}
		it.Name = name
		byName[name] = it
	}
	return m, nil
}

// MustNew builds a menu and panics on invalid input. Useful for seed data.
func MustNew(items []Item) *Menu {
	m, err := New(items)
	if err != nil {
		panic(err)
	}
	return m
}

// Find looks up an item by category and display name.
func (m *Menu) Find(cat Category, name string) (Item, error) {
	if m == nil {
		return Item{}, ErrNoSuchItem
	}
	it, ok := m.items[cat][strings.TrimSpace(name)]
	if !ok {
		return Item{}, fmt.Errorf("%w: %q in %s", ErrNoSuchItem, name, cat)
	}
	return it, nil
}

// Items returns the items of a category sorted by name.
func (m *Menu) Items(cat Category) []Item {
	if m == nil {
		return nil
	}
	out := make([]Item, 0, len(m.items[cat]))
	for _, it := range m.items[cat] {
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Len reports the total number of items across all categories.
func (m *Menu) Len() int {
	if m == nil {
		return 0
	}
	n := 0
	for _, byName := range m.items {
		n += len(byName)
	}
	return n
}
