package order

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/procurehub/backend/internal/domain/identity"
	"github.com/procurehub/backend/internal/domain/order"
	"github.com/procurehub/backend/internal/domain/shared"
	"github.com/procurehub/backend/internal/infrastructure/notify"
)

const notificationSubject = "Order status update"

// OrderNotificationHandler turns order lifecycle events into customer
// notifications. It runs on the outbox processor's dispatch path, after the
// originating transaction committed; returning an error makes the processor
// retry the whole entry.
type OrderNotificationHandler struct {
	notifier notify.Notifier
	userRepo identity.UserRepository
	logger   *zap.Logger
}

// NewOrderNotificationHandler creates a new OrderNotificationHandler
func NewOrderNotificationHandler(notifier notify.Notifier, userRepo identity.UserRepository, logger *zap.Logger) *OrderNotificationHandler {
	return &OrderNotificationHandler{notifier: notifier, userRepo: userRepo, logger: logger}
}

// EventTypes returns the event types this handler is interested in
func (h *OrderNotificationHandler) EventTypes() []string {
	return []string{order.EventTypeOrderPlaced, order.EventTypeOrderStatusChanged}
}

// Handle processes an order lifecycle event
func (h *OrderNotificationHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	switch e := event.(type) {
	case *order.OrderPlacedEvent:
		body := fmt.Sprintf("Your order %s has been placed.", e.OrderID)
		return h.notify(ctx, e.UserID, body)

	case *order.OrderStatusChangedEvent:
		body := fmt.Sprintf("Your order %s is now %s.", e.OrderID, e.NewStatus)
		return h.notify(ctx, e.UserID, body)

	default:
		h.logger.Error("unexpected event type",
			zap.String("event_type", event.EventType()),
		)
		return fmt.Errorf("unexpected event type: %s", event.EventType())
	}
}

func (h *OrderNotificationHandler) notify(ctx context.Context, userID uuid.UUID, body string) error {
	user, err := h.userRepo.FindByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("resolve notification recipient: %w", err)
	}
	return h.notifier.Notify(ctx, user.Email, notificationSubject, body)
}

// Ensure OrderNotificationHandler implements EventHandler
var _ shared.EventHandler = (*OrderNotificationHandler)(nil)
