package events

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

const (
	EventTransactionCreated = "transaction.created"
	EventCategoryDeleted    = "category.deleted"
)

// NewTransactionCreatedEvent is published after a transaction is persisted,
// whether it came through the REST API or the chatbot writer.
func NewTransactionCreatedEvent(transactionID, userID int64, txType, categoryName, source string, amountMinor int64) Event {
	return BaseEvent{
		ID:        uuid.New().String(),
		Type:      EventTransactionCreated,
		Timestamp: time.Now(),
		Data: map[string]interface{}{
			"transaction_id": transactionID,
			"user_id":        userID,
			"type":           txType,
			"category_name":  categoryName,
			"amount_minor":   amountMinor,
			"source":         source,
		},
	}
}

// NewCategoryDeletedEvent records a category removal and how many owned
// transactions were reassigned to the fallback category.
func NewCategoryDeletedEvent(categoryID, userID int64, name string, reassigned int64) Event {
	return BaseEvent{
		ID:        uuid.New().String(),
		Type:      EventCategoryDeleted,
		Timestamp: time.Now(),
		Data: map[string]interface{}{
			"category_id": categoryID,
			"user_id":     userID,
			"name":        name,
			"reassigned":  reassigned,
		},
	}
}

// RegisterAuditHandlers wires the default subscribers: structured audit
// logging for every domain event the service emits.
func RegisterAuditHandlers(bus *EventBus, logger *slog.Logger) {
	bus.Subscribe(EventTransactionCreated, func(ctx context.Context, event Event) error {
		logger.Info("transaction recorded",
			"event_id", event.EventID(),
			"payload", event.Payload())
		return nil
	})

	bus.Subscribe(EventCategoryDeleted, func(ctx context.Context, event Event) error {
		logger.Info("category removed",
			"event_id", event.EventID(),
			"payload", event.Payload())
		return nil
	})
}
