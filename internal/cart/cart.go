// Package cart holds the operator's unsubmitted selection for one table.
package cart

import (
	"sync"

	"github.com/Axalon174/coffee-shop-manager/internal/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LineItem is one entry of the cart. LocalID only identifies the entry for
// removal and is never written to storage.
type LineItem struct {
	LocalID    string          `json:"local_id"`
	MenuItemID uint64          `json:"menu_item_id"`
	Name       string          `json:"name"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	Note       string          `json:"note,omitempty"`
}

// Snapshot is the cart's content frozen at one instant.
type Snapshot struct {
	Items []LineItem
	Total decimal.Decimal
}

func (s Snapshot) IsEmpty() bool { return len(s.Items) == 0 }

// Cart is an ordered list of line items; insertion order is display order.
type Cart struct {
	mu    sync.Mutex
	items []LineItem
	newID func() string
}

func New() *Cart {
	return &Cart{newID: uuid.NewString}
}

// Add appends an entry for item. Adding the same product twice yields two entries.
func (c *Cart) Add(item domain.MenuItem, note string) LineItem {
	li := LineItem{
		LocalID:    c.newID(),
		MenuItemID: item.ID,
		Name:       item.Name,
		UnitPrice:  item.Price,
		Note:       note,
	}

	c.mu.Lock()
	c.items = append(c.items, li)
	c.mu.Unlock()

	return li
}

// Remove drops the entry with localID. Unknown ids are ignored.
func (c *Cart) Remove(localID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, li := range c.items {
		if li.LocalID == localID {
			c.items = append(c.items[:i:i], c.items[i+1:]...)
			return
		}
	}
}

func (c *Cart) Total() decimal.Decimal {
	c.mu.Lock()
	defer c.mu.Unlock()
	return sum(c.items)
}

func (c *Cart) Items() []LineItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]LineItem(nil), c.items...)
}

func (c *Cart) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

func (c *Cart) IsEmpty() bool { return c.Len() == 0 }

func (c *Cart) Clear() {
	c.mu.Lock()
	c.items = nil
	c.mu.Unlock()
}

func (c *Cart) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	items := append([]LineItem(nil), c.items...)
	return Snapshot{Items: items, Total: sum(items)}
}

// Discard removes every entry of s in one step. Entries added after s was
// taken are kept.
func (c *Cart) Discard(s Snapshot) {
	if s.IsEmpty() {
		return
	}

	drop := make(map[string]struct{}, len(s.Items))
	for _, li := range s.Items {
		drop[li.LocalID] = struct{}{}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	kept := c.items[:0:0]
	for _, li := range c.items {
		if _, ok := drop[li.LocalID]; !ok {
			kept = append(kept, li)
		}
	}
	c.items = kept
}

func sum(items []LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, li := range items {
		total = total.Add(li.UnitPrice)
	}
	return total
}
