package cart

import (
	"sync"
	"testing"

	"github.com/Axalon174/coffee-shop-manager/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func menuItem(id uint64, name string, price int64) domain.MenuItem {
	return domain.MenuItem{ID: id, Name: name, Price: decimal.NewFromInt(price), IsActive: true}
}

func TestCart_AddKeepsInsertionOrderAndDuplicates(t *testing.T) {
	c := New()

	first := c.Add(menuItem(1, "Espresso", 10), "")
	second := c.Add(menuItem(1, "Espresso", 10), "no sugar")
	third := c.Add(menuItem(2, "Croissant", 15), "")

	items := c.Items()
	require.Len(t, items, 3)
	assert.Equal(t, []string{first.LocalID, second.LocalID, third.LocalID},
		[]string{items[0].LocalID, items[1].LocalID, items[2].LocalID})
	assert.NotEqual(t, first.LocalID, second.LocalID)
	assert.Equal(t, "no sugar", items[1].Note)
	assert.Equal(t, uint64(1), items[1].MenuItemID)
}

func TestCart_Total(t *testing.T) {
	c := New()
	assert.True(t, c.Total().Equal(decimal.Zero))

	c.Add(menuItem(1, "Espresso", 10), "")
	c.Add(menuItem(2, "Croissant", 15), "")
	assert.True(t, c.Total().Equal(decimal.NewFromInt(25)), "got %s", c.Total())

	price, _ := decimal.NewFromString("0.10")
	c.Add(domain.MenuItem{ID: 3, Name: "Sugar", Price: price}, "")
	c.Add(domain.MenuItem{ID: 3, Name: "Sugar", Price: price}, "")
	c.Add(domain.MenuItem{ID: 3, Name: "Sugar", Price: price}, "")
	want, _ := decimal.NewFromString("25.30")
	assert.True(t, c.Total().Equal(want), "got %s", c.Total())
}

func TestCart_Remove(t *testing.T) {
	c := New()
	a := c.Add(menuItem(1, "Espresso", 10), "")
	b := c.Add(menuItem(2, "Croissant", 15), "")

	c.Remove(a.LocalID)

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, b.LocalID, items[0].LocalID)
	assert.True(t, c.Total().Equal(decimal.NewFromInt(15)))
}

func TestCart_RemoveUnknownIsNoop(t *testing.T) {
	c := New()
	c.Add(menuItem(1, "Espresso", 10), "")
	before := c.Items()

	assert.NotPanics(t, func() { c.Remove("does-not-exist") })
	assert.Equal(t, before, c.Items())
}

func TestCart_Clear(t *testing.T) {
	c := New()
	c.Add(menuItem(1, "Espresso", 10), "")
	c.Add(menuItem(2, "Croissant", 15), "")

	c.Clear()

	assert.True(t, c.IsEmpty())
	assert.True(t, c.Total().IsZero())
}

func TestCart_SnapshotIsIsolatedFromLaterChanges(t *testing.T) {
	c := New()
	c.Add(menuItem(1, "Espresso", 10), "")
	c.Add(menuItem(2, "Croissant", 15), "")

	snap := c.Snapshot()
	c.Add(menuItem(3, "Muffin", 7), "")

	assert.Len(t, snap.Items, 2)
	assert.True(t, snap.Total.Equal(decimal.NewFromInt(25)))
	assert.True(t, c.Total().Equal(decimal.NewFromInt(32)))
}

func TestCart_DiscardKeepsItemsAddedAfterSnapshot(t *testing.T) {
	c := New()
	c.Add(menuItem(1, "Espresso", 10), "")
	snap := c.Snapshot()
	late := c.Add(menuItem(3, "Muffin", 7), "")

	c.Discard(snap)

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, late.LocalID, items[0].LocalID)
}

func TestCart_ConcurrentAdds(t *testing.T) {
	c := New()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Add(menuItem(1, "Espresso", 2), "")
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, c.Len())
	assert.True(t, c.Total().Equal(decimal.NewFromInt(100)))
}
