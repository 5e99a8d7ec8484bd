package supabase

import (
	"context"
	"net/http"
	"net/url"

	"github.com/Axalon174/coffee-shop-manager/internal/domain"
	"github.com/Axalon174/coffee-shop-manager/internal/repository"
)

func (c *Client) ListActiveMenu(ctx context.Context) ([]domain.MenuItem, error) {
	var out []domain.MenuItem
	err := c.do(ctx, request{
		method: http.MethodGet,
		path:   "menu_items",
		query:  url.Values{"select": {"*"}, "is_active": {eq(true)}, "order": {"name"}},
	}, &out)
	return out, err
}

func (c *Client) ListStaff(ctx context.Context) ([]domain.Staff, error) {
	var out []domain.Staff
	err := c.do(ctx, request{
		method: http.MethodGet,
		path:   "staff",
		query:  url.Values{"select": {"*"}, "order": {"name"}},
	}, &out)
	return out, err
}

func (c *Client) ListTables(ctx context.Context) ([]domain.Table, error) {
	var out []domain.Table
	err := c.do(ctx, request{
		method: http.MethodGet,
		path:   "restaurant_tables",
		query:  url.Values{"select": {"*"}, "order": {"label"}},
	}, &out)
	return out, err
}

func (c *Client) UpdateTableStatus(ctx context.Context, id uint64, status domain.TableStatus) error {
	var updated []domain.Table
	err := c.do(ctx, request{
		method: http.MethodPatch,
		path:   "restaurant_tables",
		query:  url.Values{"id": {eq(id)}},
		body:   map[string]any{"status": status},
		prefer: "return=representation",
	}, &updated)
	if err != nil {
		return err
	}
	if len(updated) == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var (
	_ repository.CatalogRepository = (*Client)(nil)
	_ repository.TableRepository   = (*Client)(nil)
)
