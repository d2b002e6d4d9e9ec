package cart

import (
	"fmt"
	"sort"

	pkgerrors "github.com/angelmondragon/shoppingcart/pkg/errors"
	"github.com/shopspring/decimal"
)

// Store owns the items of a single cart. Item numbers are dense (1..Len) after
// every structural change and names are unique. A Store is meant to be driven by
// one actor at a time and does no locking.
type Store struct {
	items map[int]Item
	next  int
}

// NewStore returns an empty cart whose first item will be number 1.
func NewStore() *Store {
	return &Store{
		items: make(map[int]Item),
		next:  1,
	}
}

// Add validates the raw input and appends a new item with the next number.
func (s *Store) Add(in ItemInput) (Item, error) {
	in = in.sanitized()
	if err := in.validate(); err != nil {
		return Item{}, err
	}
	if s.HasName(in.Name) {
		return Item{}, duplicateName(in.Name)
	}
	parsed, err := in.parse()
	if err != nil {
		return Item{}, err
	}

	item := Item{
		Number:    s.next,
		Name:      parsed.name,
		UnitPrice: parsed.unitPrice,
		Quantity:  parsed.quantity,
	}
	s.items[item.Number] = item
	s.next++
	return item, nil
}

// Update replaces name, price and quantity of an existing item in place.
func (s *Store) Update(number int, in ItemInput) (Item, error) {
	existing, ok := s.items[number]
	if !ok {
		return Item{}, notFound(number)
	}
	in = in.sanitized()
	if err := in.validate(); err != nil {
		return Item{}, err
	}
	if existing.Name != in.Name && s.HasName(in.Name) {
		return Item{}, duplicateName(in.Name)
	}
	parsed, err := in.parse()
	if err != nil {
		return Item{}, err
	}

	item := Item{
		Number:    number,
		Name:      parsed.name,
		UnitPrice: parsed.unitPrice,
		Quantity:  parsed.quantity,
	}
	s.items[number] = item
	return item, nil
}

// Delete removes an item and renumbers the rest. Other items may change number,
// so callers must re-read anything they hold.
func (s *Store) Delete(number int) error {
	if _, ok := s.items[number]; !ok {
		return notFound(number)
	}
	delete(s.items, number)
	s.renumber()
	return nil
}

// Total is the sum of every line total.
func (s *Store) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range s.items {
		total = total.Add(item.LineTotal())
	}
	return total
}

// Clear drops every item and resets numbering.
func (s *Store) Clear() {
	s.items = make(map[int]Item)
	s.next = 1
}

func (s *Store) Get(number int) (Item, bool) {
	item, ok := s.items[number]
	return item, ok
}

func (s *Store) Len() int {
	return len(s.items)
}

// HasName reports an exact, case-sensitive name match.
func (s *Store) HasName(name string) bool {
	for _, item := range s.items {
		if item.Name == name {
			return true
		}
	}
	return false
}

// Items returns a copy of the cart ordered by number.
func (s *Store) Items() []Item {
	out := make([]Item, 0, len(s.items))
	for _, item := range s.items {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out
}

// Replace swaps the whole cart for items, keeping their slice order and
// renumbering them 1..N. Persisted numbers are ignored. An item whose name
// repeats an earlier one is dropped; the count of dropped items is returned.
func (s *Store) Replace(items []Item) int {
	s.Clear()
	dropped := 0
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		if _, dup := seen[item.Name]; dup {
			dropped++
			continue
		}
		seen[item.Name] = struct{}{}
		item.Number = s.next
		s.items[item.Number] = item
		s.next++
	}
	return dropped
}

// Snapshot copies the current items so a caller can Restore them after a failed load.
func (s *Store) Snapshot() []Item {
	return s.Items()
}

func (s *Store) Restore(snapshot []Item) {
	s.Replace(snapshot)
}

func (s *Store) renumber() {
	ordered := s.Items()
	s.items = make(map[int]Item, len(ordered))
	for i, item := range ordered {
		item.Number = i + 1
		s.items[item.Number] = item
	}
	s.next = len(ordered) + 1
}

func duplicateName(name string) error {
	return pkgerrors.New(pkgerrors.CodeDuplicateName, fmt.Sprintf("product %q already exists", name)).
		WithDetails(map[string]any{"name": name})
}

func notFound(number int) error {
	return pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("item %d not found", number)).
		WithDetails(map[string]any{"number": number})
}
