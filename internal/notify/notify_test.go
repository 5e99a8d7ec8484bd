package notify_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/Axalon174/coffee-shop-manager/internal/logger"
	"github.com/Axalon174/coffee-shop-manager/internal/mocks"
	"github.com/Axalon174/coffee-shop-manager/internal/notify"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestFeed_CurrentAndDismiss(t *testing.T) {
	f := notify.NewFeed(10)

	_, ok := f.Current()
	assert.False(t, ok)

	f.Notify("Select a table", notify.Warning)
	f.Notify("Order #1 created", notify.Success)

	cur, ok := f.Current()
	require.True(t, ok)
	assert.Equal(t, "Order #1 created", cur.Message)
	assert.Equal(t, notify.Success, cur.Severity)
	assert.Equal(t, uint64(2), cur.ID)

	f.Dismiss()
	_, ok = f.Current()
	assert.False(t, ok)
	assert.Len(t, f.List(), 2)
}

func TestFeed_HistoryIsBounded(t *testing.T) {
	f := notify.NewFeed(3)
	for i := 1; i <= 5; i++ {
		f.Notify(fmt.Sprintf("notice %d", i), notify.Info)
	}

	list := f.List()
	require.Len(t, list, 3)
	assert.Equal(t, "notice 3", list[0].Message)
	assert.Equal(t, "notice 5", list[2].Message)
}

func TestFanout_SkipsNilAndDeliversToAll(t *testing.T) {
	a := notify.NewFeed(5)
	b := new(mocks.MockSink)
	b.On("Notify", "hello", notify.Info).Return().Once()

	notify.Fanout(a, nil, b).Notify("hello", notify.Info)

	assert.Len(t, a.List(), 1)
	b.AssertExpectations(t)
}

func TestBrokerSink_PublishesAsynchronously(t *testing.T) {
	pub := new(mocks.MockPublisher)
	done := make(chan map[string]any, 1)
	pub.On("Publish", mock.Anything, notify.RoutingKeyNotification, mock.Anything).
		Return(nil).
		Run(func(args mock.Arguments) { done <- args.Get(2).(map[string]any) }).
		Once()

	notify.NewBrokerSink(pub, logger.Discard(), "s-1").Notify("Order #9 created", notify.Success)

	select {
	case evt := <-done:
		assert.Equal(t, "s-1", evt["sessionId"])
		assert.Equal(t, "Order #9 created", evt["message"])
		assert.Equal(t, notify.Success, evt["severity"])
	case <-time.After(time.Second):
		t.Fatal("notification was not published")
	}
	pub.AssertExpectations(t)
}

func TestBrokerSink_PublishErrorIsSwallowed(t *testing.T) {
	pub := new(mocks.MockPublisher)
	done := make(chan struct{})
	pub.On("Publish", mock.Anything, notify.RoutingKeyNotification, mock.Anything).
		Return(errors.New("channel closed")).
		Run(func(mock.Arguments) { close(done) })

	assert.NotPanics(t, func() {
		notify.NewBrokerSink(pub, logger.Discard(), "s-1").Notify("x", notify.Error)
	})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish not attempted")
	}
}
