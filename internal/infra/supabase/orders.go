package supabase

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"github.com/Axalon174/coffee-shop-manager/internal/domain"
	"github.com/Axalon174/coffee-shop-manager/internal/repository"
)

const (
	ordersTable     = "orders"
	orderItemsTable = "order_items"
	// createOrderRPC is a SQL function inserting header and items in one
	// transaction and returning the header row.
	createOrderRPC = "rpc/create_order_with_items"
	orderSelect    = "*,items:order_items(*)"
)

var errNoOrderID = errors.New("supabase: order created without id")

type orderRow struct {
	TableID     uint64             `json:"table_id"`
	StaffID     uint64             `json:"staff_id"`
	Status      domain.OrderStatus `json:"status"`
	TotalAmount json.Number        `json:"total_amount"`
}

type itemRow struct {
	OrderID    uint64            `json:"order_id"`
	MenuItemID uint64            `json:"menu_item_id"`
	Quantity   int               `json:"quantity"`
	Notes      *string           `json:"notes"`
	Status     domain.ItemStatus `json:"status"`
}

func toOrderRow(o *domain.Order) orderRow {
	return orderRow{
		TableID:     o.TableID,
		StaffID:     o.StaffID,
		Status:      o.Status,
		TotalAmount: json.Number(o.TotalAmount.String()),
	}
}

func toItemRows(items []domain.OrderItem) []itemRow {
	rows := make([]itemRow, len(items))
	for i, it := range items {
		rows[i] = itemRow{
			OrderID:    it.OrderID,
			MenuItemID: it.MenuItemID,
			Quantity:   it.Quantity,
			Notes:      it.Notes,
			Status:     it.Status,
		}
	}
	return rows
}

func (c *Client) CreateOrder(ctx context.Context, order *domain.Order) error {
	var created []domain.Order
	err := c.do(ctx, request{
		method: http.MethodPost,
		path:   ordersTable,
		body:   toOrderRow(order),
		prefer: "return=representation",
	}, &created)
	if err != nil {
		return err
	}
	if len(created) == 0 || created[0].ID == 0 {
		return errNoOrderID
	}

	order.ID = created[0].ID
	order.CreatedAt = created[0].CreatedAt
	return nil
}

// CreateOrderItems posts the whole batch in one request; PostgREST runs a
// bulk insert as a single statement.
func (c *Client) CreateOrderItems(ctx context.Context, items []domain.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	return c.do(ctx, request{
		method: http.MethodPost,
		path:   orderItemsTable,
		body:   toItemRows(items),
		prefer: "return=minimal",
	}, nil)
}

func (c *Client) CreateOrderWithItems(ctx context.Context, order *domain.Order, items []domain.OrderItem) error {
	var created domain.Order
	err := c.do(ctx, request{
		method: http.MethodPost,
		path:   createOrderRPC,
		body: map[string]any{
			"p_order": toOrderRow(order),
			"p_items": toItemRows(items),
		},
	}, &created)
	if err != nil {
		return err
	}
	if created.ID == 0 {
		return errNoOrderID
	}

	order.ID = created.ID
	order.CreatedAt = created.CreatedAt
	for i := range items {
		items[i].OrderID = created.ID
	}
	return nil
}

func (c *Client) DeleteOrder(ctx context.Context, id uint64) error {
	err := c.do(ctx, request{
		method: http.MethodDelete,
		path:   orderItemsTable,
		query:  url.Values{"order_id": {eq(id)}},
	}, nil)
	if err != nil {
		return err
	}

	var deleted []domain.Order
	err = c.do(ctx, request{
		method: http.MethodDelete,
		path:   ordersTable,
		query:  url.Values{"id": {eq(id)}},
		prefer: "return=representation",
	}, &deleted)
	if err != nil {
		return err
	}
	if len(deleted) == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (c *Client) FindByID(ctx context.Context, id uint64) (*domain.Order, error) {
	var out []domain.Order
	err := c.do(ctx, request{
		method: http.MethodGet,
		path:   ordersTable,
		query:  url.Values{"select": {orderSelect}, "id": {eq(id)}},
	}, &out)
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return &out[0], nil
}

func (c *Client) FindByTable(ctx context.Context, tableID uint64) ([]domain.Order, error) {
	var out []domain.Order
	err := c.do(ctx, request{
		method: http.MethodGet,
		path:   ordersTable,
		query: url.Values{
			"select":   {orderSelect},
			"table_id": {eq(tableID)},
			"order":    {"created_at.desc"},
		},
	}, &out)
	return out, err
}

var _ repository.OrderRepository = (*Client)(nil)
