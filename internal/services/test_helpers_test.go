package services

import (
	"sync"

	"github.com/Axalon174/coffee-shop-manager/internal/cart"
	"github.com/Axalon174/coffee-shop-manager/internal/domain"
	"github.com/Axalon174/coffee-shop-manager/internal/logger"
	"github.com/Axalon174/coffee-shop-manager/internal/mocks"
	"github.com/Axalon174/coffee-shop-manager/internal/notify"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

var (
	espresso = domain.MenuItem{ID: 1, Name: "Espresso", Category: "coffee", Price: decimal.NewFromInt(10), IsActive: true}
	latte    = domain.MenuItem{ID: 2, Name: "Latte", Category: "coffee", Price: decimal.NewFromInt(15), IsActive: true}
	muffin   = domain.MenuItem{ID: 3, Name: "Muffin", Category: "bakery", Price: decimal.NewFromInt(8), IsActive: true}

	table3   = domain.Table{ID: 3, Label: "T3", Capacity: 4, Status: domain.TableAvailable}
	takeaway = domain.Table{ID: 9, Label: "  takeaway ", Status: domain.TableAvailable}
)

// recordingSink keeps every notice in order.
type recordingSink struct {
	mu      sync.Mutex
	notices []notify.Notification
}

func (s *recordingSink) Notify(message string, severity notify.Severity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notices = append(s.notices, notify.Notification{Message: message, Severity: severity})
}

func (s *recordingSink) all() []notify.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]notify.Notification(nil), s.notices...)
}

type coordinatorFixture struct {
	repo      *mocks.MockOrderRepository
	registry  *mocks.MockTableRegistry
	publisher *mocks.MockPublisher
	sink      *recordingSink
	cart      *cart.Cart
	coord     *OrderCoordinator
}

func newCoordinatorFixture(opts CoordinatorOptions) *coordinatorFixture {
	f := &coordinatorFixture{
		repo:      new(mocks.MockOrderRepository),
		registry:  new(mocks.MockTableRegistry),
		publisher: new(mocks.MockPublisher),
		sink:      &recordingSink{},
		cart:      cart.New(),
	}
	f.publisher.On("Publish", mock.Anything, RoutingKeyOrderCreated, mock.Anything).Return(nil).Maybe()

	f.coord = NewOrderCoordinator(CoordinatorDeps{
		Orders:    f.repo,
		Publisher: f.publisher,
		Logger:    logger.Discard(),
		Options:   opts,
	}, f.cart, f.registry, f.sink)
	return f
}

// assignID simulates the store filling in the generated id.
func assignID(id uint64) func(mock.Arguments) {
	return func(args mock.Arguments) {
		args.Get(1).(*domain.Order).ID = id
	}
}
