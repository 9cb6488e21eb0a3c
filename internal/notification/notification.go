package notification

import (
	"context"
	"log/slog"
)

const (
	// KindFeeFineAction notifies a patron about a monetary action applied to
	// one of their fee/fine accounts.
	KindFeeFineAction = "fee_fine_action"
	// KindFeeFineCharge notifies a patron about a newly created charge.
	KindFeeFineCharge = "fee_fine_charge"
)

// Message describes a patron notice payload.
type Message struct {
	Kind        string
	Destination string
	Body        string
}

// Notifier delivers patron notices to downstream systems. Delivery is a
// side effect decoupled from the financial outcome: callers log failures
// and never propagate them.
type Notifier interface {
	Send(ctx context.Context, message Message) error
}

// LoggerNotifier is a stub implementation that writes notices to the logger.
type LoggerNotifier struct {
	logger *slog.Logger
}

// NewLoggerNotifier constructs a logging notifier stub.
func NewLoggerNotifier(logger *slog.Logger) *LoggerNotifier {
	return &LoggerNotifier{logger: logger}
}

// Send writes the message to the structured logger.
func (n *LoggerNotifier) Send(_ context.Context, message Message) error {
	if n == nil || n.logger == nil {
		return nil
	}
	n.logger.Info("patron notice", "kind", message.Kind, "destination", message.Destination, "body", message.Body)
	return nil
}
