package order

import (
	"errors"
	"sync"

	"github.com/noah-isme/backend-kantin/internal/events"
	"github.com/noah-isme/backend-kantin/internal/menu"
	"github.com/noah-isme/backend-kantin/internal/pricing"
)

// ErrNotConfigured indicates the state was built without a menu.
var ErrNotConfigured = errors.New("order state not configured")

// Selection is a sum type over {unselected, selected item}. The zero value is
// unselected.
type Selection struct {
	Item  menu.Item
	Valid bool
}

// Snapshot is an immutable view of the state after a completed operation.
type Snapshot struct {
	Entree        Selection
	Side          Selection
	Accompaniment Selection
	Subtotal      pricing.Money
	Tax           pricing.Money
	Total         pricing.Money
}

// State holds the current meal selections and their derived totals. Every
// mutating operation is a single atomic transaction over all four fields, so
// observers never see a subtotal without its matching tax and total.
type State struct {
	mu            sync.Mutex
	menu          *menu.Menu
	taxBps        int
	entree        Selection
	side          Selection
	accompaniment Selection
	subtotal      pricing.Money
	tax           pricing.Money
	total         pricing.Money
	observable    *events.Value[Snapshot]
}

// NewState builds a state with all slots unselected and zero totals.
func NewState(m *menu.Menu, taxBps int) (*State, error) {
	if m == nil {
		return nil, ErrNotConfigured
	}
	if taxBps < 0 || taxBps > 10000 {
		return nil, errors.New("tax rate must be between 0 and 10000 bps")
	}
	s := &State{menu: m, taxBps: taxBps, observable: events.NewValue[Snapshot]()}
	s.observable.Set(s.snapshotLocked())
	return s, nil
}

// SelectEntree replaces the entree selection with the named menu item.
func (s *State) SelectEntree(name string) (Snapshot, error) {
	return s.selectItem(menu.CategoryEntree, name)
}

// SelectSide replaces the side selection with the named menu item.
func (s *State) SelectSide(name string) (Snapshot, error) {
	return s.selectItem(menu.CategorySide, name)
}

// SelectAccompaniment replaces the accompaniment selection with the named menu item.
func (s *State) SelectAccompaniment(name string) (Snapshot, error) {
	return s.selectItem(menu.CategoryAccompaniment, name)
}

// Select dispatches to the slot matching the category.
func (s *State) Select(cat menu.Category, name string) (Snapshot, error) {
	return s.selectItem(cat, name)
}

func (s *State) selectItem(cat menu.Category, name string) (Snapshot, error) {
	if s == nil || s.menu == nil {
		return Snapshot{}, ErrNotConfigured
	}
	// Resolve the item before touching any state: a lookup miss rejects the
	// operation and leaves the state untouched.
	item, err := s.menu.Find(cat, name)
	if err != nil {
		return Snapshot{}, err
	}

	s.mu.Lock()
	slot := s.slot(cat)
	if slot == nil {
		s.mu.Unlock()
		return Snapshot{}, menu.ErrUnknownCategory
	}
	if slot.Valid {
		s.subtotal -= slot.Item.Price
	}
	*slot = Selection{Item: item, Valid: true}
	s.subtotal += item.Price
	s.recomputeLocked()
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.observable.Set(snap)
	return snap, nil
}

// RecomputeTaxAndTotal rederives tax and total from the current subtotal.
// Selections already keep these consistent; this is the public escape hatch
// for callers that adjust the subtotal by other means.
func (s *State) RecomputeTaxAndTotal() Snapshot {
	s.mu.Lock()
	s.recomputeLocked()
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.observable.Set(snap)
	return snap
}

// Reset clears all selections and zeroes the totals. The state remains ready
// for a new order.
func (s *State) Reset() Snapshot {
	s.mu.Lock()
	s.entree = Selection{}
	s.side = Selection{}
	s.accompaniment = Selection{}
	s.subtotal = 0
	s.recomputeLocked()
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.observable.Set(snap)
	return snap
}

// Snapshot returns the current view of the state.
func (s *State) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Observe exposes the snapshot stream. Subscribers receive the current
// snapshot immediately and every subsequent change synchronously.
func (s *State) Observe() *events.Value[Snapshot] {
	return s.observable
}

func (s *State) slot(cat menu.Category) *Selection {
	switch cat {
	case menu.CategoryEntree:
		return &s.entree
	case menu.CategorySide:
		return &s.side
	case menu.CategoryAccompaniment:
		return &s.accompaniment
	default:
		return nil
	}
}

func (s *State) recomputeLocked() {
	summary := pricing.Compute(s.subtotal, s.taxBps)
	s.subtotal = summary.Subtotal
	s.tax = summary.Tax
	s.total = summary.Total
}

func (s *State) snapshotLocked() Snapshot {
	return Snapshot{
		Entree:        s.entree,
		Side:          s.side,
		Accompaniment: s.accompaniment,
		Subtotal:      s.subtotal,
		Tax:           s.tax,
		Total:         s.total,
	}
}
