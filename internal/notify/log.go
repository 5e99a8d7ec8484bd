package notify

import "github.com/Axalon174/coffee-shop-manager/internal/logger"

type LogSink struct {
	log       *logger.Logger
	sessionID string
}

func NewLogSink(log *logger.Logger, sessionID string) *LogSink {
	return &LogSink{log: log, sessionID: sessionID}
}

func (s *LogSink) Notify(message string, severity Severity) {
	args := []any{"session_id", s.sessionID, "severity", string(severity)}
	switch severity {
	case Error:
		s.log.Warn("operator_notified", message, args...)
	default:
		s.log.Info("operator_notified", message, args...)
	}
}
