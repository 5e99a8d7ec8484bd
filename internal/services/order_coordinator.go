package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Axalon174/coffee-shop-manager/internal/cart"
	"github.com/Axalon174/coffee-shop-manager/internal/domain"
	rabbit "github.com/Axalon174/coffee-shop-manager/internal/infra/rabbitmq"
	"github.com/Axalon174/coffee-shop-manager/internal/logger"
	"github.com/Axalon174/coffee-shop-manager/internal/notify"
	"github.com/Axalon174/coffee-shop-manager/internal/repository"
)

const (
	RoutingKeyOrderCreated = "order.created"
	DefaultTakeawayLabel   = "Takeaway"

	msgSelectTable     = "Select a table before sending the order"
	msgOrderFailed     = "The order could not be sent. Please try again."
	msgItemsFailed     = "The order items could not be saved. The order was cancelled, please try again."
	msgItemsOrphaned   = "The order items could not be saved. Order #%d was left without items and needs manual review."
	msgTableNotUpdated = "Order #%d was sent but table %s could not be marked as occupied."
	msgOrderSent       = "Order #%d sent for table %s."
)

var (
	ErrNoTableSelected      = errors.New("no table selected")
	ErrOrderNotCreated      = errors.New("order was not created")
	ErrOrderItemsNotCreated = errors.New("order items were not created")
)

type WriteMode string

const (
	WriteSequential WriteMode = "sequential"
	WriteAtomic     WriteMode = "atomic"
)

type Outcome string

const (
	OutcomeEmptyCart           Outcome = "empty_cart"
	OutcomeInFlight            Outcome = "in_flight"
	OutcomeNoTable             Outcome = "no_table"
	OutcomeOrderFailed         Outcome = "order_failed"
	OutcomeItemsFailed         Outcome = "items_failed"
	OutcomeSubmitted           Outcome = "submitted"
	OutcomeSubmittedTableStale Outcome = "submitted_table_stale"
)

// Accepted reports whether the call started a submission workflow.
func (o Outcome) Accepted() bool {
	switch o {
	case OutcomeEmptyCart, OutcomeInFlight, OutcomeNoTable:
		return false
	default:
		return true
	}
}

// TableRegistry is the part of the table registry the coordinator needs.
type TableRegistry interface {
	Current() (domain.Table, bool)
	UpdateStatus(ctx context.Context, tableID uint64, status domain.TableStatus) error
}

type CoordinatorOptions struct {
	TakeawayLabel string
	WriteMode     WriteMode
}

// CoordinatorDeps are shared by every session's coordinator.
type CoordinatorDeps struct {
	Orders    repository.OrderRepository
	Publisher rabbit.PublisherInterface
	Logger    *logger.Logger
	Options   CoordinatorOptions
}

type SubmitResult struct {
	Outcome    Outcome       `json:"outcome"`
	Order      *domain.Order `json:"order,omitempty"`
	TableLabel string        `json:"table_label,omitempty"`
	ItemCount  int           `json:"item_count"`

	// TableStatusErr is set when the order was stored but the table could
	// not be marked occupied.
	TableStatusErr error `json:"-"`
}

// OrderCoordinator turns one session's cart into a persisted order for the
// currently selected table. At most one submission runs at a time.
type OrderCoordinator struct {
	orders    repository.OrderRepository
	publisher rabbit.PublisherInterface
	log       *logger.Logger
	opts      CoordinatorOptions

	cart   *cart.Cart
	tables TableRegistry
	sink   notify.Sink

	state stateMachine
}

func NewOrderCoordinator(deps CoordinatorDeps, c *cart.Cart, tables TableRegistry, sink notify.Sink) *OrderCoordinator {
	opts := deps.Options
	if strings.TrimSpace(opts.TakeawayLabel) == "" {
		opts.TakeawayLabel = DefaultTakeawayLabel
	}
	if opts.WriteMode == "" {
		opts.WriteMode = WriteSequential
	}

	pub := deps.Publisher
	if pub == nil {
		pub = rabbit.Discard{}
	}
	log := deps.Logger
	if log == nil {
		log = logger.Discard()
	}

	return &OrderCoordinator{
		orders:    deps.Orders,
		publisher: pub,
		log:       log,
		opts:      opts,
		cart:      c,
		tables:    tables,
		sink:      sink,
	}
}

func (s *OrderCoordinator) State() SubmissionState { return s.state.load() }

func (s *OrderCoordinator) InFlight() bool { return s.state.load() == StateSubmitting }

// Submit sends the cart as a new order for the selected table. Once the
// workflow has started it runs to completion even if ctx is cancelled.
func (s *OrderCoordinator) Submit(ctx context.Context, staffID uint64) (*SubmitResult, error) {
	if s.cart.IsEmpty() {
		return &SubmitResult{Outcome: OutcomeEmptyCart}, nil
	}

	table, ok := s.tables.Current()
	if !ok {
		s.sink.Notify(msgSelectTable, notify.Warning)
		return &SubmitResult{Outcome: OutcomeNoTable}, ErrNoTableSelected
	}

	if !s.state.transition(StateSubmitting) {
		s.log.Debug("order_submit_ignored", "submission already in flight", "table_id", table.ID)
		return &SubmitResult{Outcome: OutcomeInFlight}, nil
	}
	defer s.state.transition(StateDone)

	snap := s.cart.Snapshot()
	if snap.IsEmpty() {
		return &SubmitResult{Outcome: OutcomeEmptyCart}, nil
	}

	ctx = context.WithoutCancel(ctx)

	order := &domain.Order{
		TableID:     table.ID,
		StaffID:     staffID,
		Status:      domain.OrderOpen,
		TotalAmount: snap.Total,
	}
	items := buildOrderItems(snap)
	result := &SubmitResult{TableLabel: table.Label, ItemCount: len(items)}

	s.log.Info("order_submit_started", "submitting order",
		"table_id", table.ID, "staff_id", staffID, "items", len(items), "total", snap.Total.String())

	var err error
	if s.opts.WriteMode == WriteAtomic {
		err = s.writeAtomic(ctx, order, items, result)
	} else {
		err = s.writeSequential(ctx, order, items, result)
	}
	if err != nil {
		return result, err
	}

	order.Items = items
	result.Order = order
	result.Outcome = OutcomeSubmitted

	if !s.isTakeaway(table.Label) {
		if err := s.tables.UpdateStatus(ctx, table.ID, domain.TableOccupied); err != nil {
			s.log.Warn("table_status_update_failed", "order stored but table not marked occupied",
				"order_id", order.ID, "table_id", table.ID, "error", err.Error())
			s.sink.Notify(fmt.Sprintf(msgTableNotUpdated, order.ID, table.Label), notify.Warning)
			result.Outcome = OutcomeSubmittedTableStale
			result.TableStatusErr = err
		}
	}

	s.sink.Notify(fmt.Sprintf(msgOrderSent, order.ID, table.Label), notify.Success)
	s.cart.Discard(snap)

	s.log.Info("order_submitted", "order sent",
		"order_id", order.ID, "table_id", table.ID, "outcome", string(result.Outcome))

	go s.publishOrderCreated(order, table)

	return result, nil
}

func (s *OrderCoordinator) writeSequential(ctx context.Context, order *domain.Order, items []domain.OrderItem, result *SubmitResult) error {
	if err := s.orders.CreateOrder(ctx, order); err != nil {
		return s.orderFailed(order, result, err)
	}
	if order.ID == 0 {
		return s.orderFailed(order, result, errors.New("store returned no order id"))
	}

	for i := range items {
		items[i].OrderID = order.ID
	}

	if err := s.orders.CreateOrderItems(ctx, items); err != nil {
		s.log.Error("order_items_create_failed", "order items not stored, removing header", err,
			"order_id", order.ID, "items", len(items))

		msg := msgItemsFailed
		if derr := s.orders.DeleteOrder(ctx, order.ID); derr != nil {
			s.log.Error("order_compensation_failed", "order header left without items", derr, "order_id", order.ID)
			msg = fmt.Sprintf(msgItemsOrphaned, order.ID)
		}

		s.sink.Notify(msg, notify.Error)
		result.Outcome = OutcomeItemsFailed
		return fmt.Errorf("%w: %w", ErrOrderItemsNotCreated, err)
	}

	return nil
}

func (s *OrderCoordinator) writeAtomic(ctx context.Context, order *domain.Order, items []domain.OrderItem, result *SubmitResult) error {
	if err := s.orders.CreateOrderWithItems(ctx, order, items); err != nil {
		return s.orderFailed(order, result, err)
	}
	if order.ID == 0 {
		return s.orderFailed(order, result, errors.New("store returned no order id"))
	}
	return nil
}

func (s *OrderCoordinator) orderFailed(order *domain.Order, result *SubmitResult, err error) error {
	s.log.Error("order_create_failed", "order header not stored", err, "table_id", order.TableID)
	s.sink.Notify(msgOrderFailed, notify.Error)
	result.Outcome = OutcomeOrderFailed
	return fmt.Errorf("%w: %w", ErrOrderNotCreated, err)
}

func (s *OrderCoordinator) isTakeaway(label string) bool {
	return strings.EqualFold(strings.TrimSpace(label), strings.TrimSpace(s.opts.TakeawayLabel))
}

func (s *OrderCoordinator) publishOrderCreated(order *domain.Order, table domain.Table) {
	evt := domain.OrderCreatedEvent{
		OrderID:     order.ID,
		TableID:     table.ID,
		TableLabel:  table.Label,
		StaffID:     order.StaffID,
		TotalAmount: order.TotalAmount,
		ItemCount:   len(order.Items),
		CreatedAt:   time.Now(),
	}

	if err := s.publisher.Publish(context.Background(), RoutingKeyOrderCreated, evt); err != nil {
		s.log.Error("order_event_publish_failed", "failed to publish order.created", err, "order_id", order.ID)
		return
	}
	s.log.Debug("order_event_published", "order.created published", "order_id", order.ID)
}

// buildOrderItems maps every cart line to one pending item of quantity 1.
// Blank notes become NULL.
func buildOrderItems(snap cart.Snapshot) []domain.OrderItem {
	items := make([]domain.OrderItem, 0, len(snap.Items))
	for _, line := range snap.Items {
		item := domain.OrderItem{
			MenuItemID: line.MenuItemID,
			Quantity:   1,
			Status:     domain.ItemPending,
		}
		if strings.TrimSpace(line.Note) != "" {
			note := line.Note
			item.Notes = &note
		}
		items = append(items, item)
	}
	return items
}
