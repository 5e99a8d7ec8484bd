package notify

import (
	"context"
	"time"

	rabbit "github.com/Axalon174/coffee-shop-manager/internal/infra/rabbitmq"
	"github.com/Axalon174/coffee-shop-manager/internal/logger"
)

const RoutingKeyNotification = "pos.notification"

// BrokerSink mirrors notices to the message broker so other terminals
// (kitchen display, manager dashboard) can follow them.
type BrokerSink struct {
	pub       rabbit.PublisherInterface
	log       *logger.Logger
	sessionID string
	timeout   time.Duration
}

func NewBrokerSink(pub rabbit.PublisherInterface, log *logger.Logger, sessionID string) *BrokerSink {
	return &BrokerSink{pub: pub, log: log, sessionID: sessionID, timeout: 5 * time.Second}
}

func (s *BrokerSink) Notify(message string, severity Severity) {
	evt := map[string]any{
		"sessionId": s.sessionID,
		"message":   message,
		"severity":  severity,
		"createdAt": time.Now().UTC(),
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()
		if err := s.pub.Publish(ctx, RoutingKeyNotification, evt); err != nil {
			s.log.Error("notification_publish_failed", "failed to publish notification", err, "session_id", s.sessionID)
		}
	}()
}
