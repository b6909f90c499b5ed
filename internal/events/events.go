package events

import (
	"context"
	"time"

	transactionsdomain "budgeteer-go/internal/domain/transactions"
	"github.com/shopspring/decimal"
)

const (
	TypeTransactionCreated = "transaction.created"
	TypeTransactionDeleted = "transaction.deleted"
)

type Event struct {
	Type            string          `json:"type"`
	UserID          string          `json:"userId"`
	TransactionID   string          `json:"transactionId"`
	Amount          decimal.Decimal `json:"amount"`
	TransactionType string          `json:"transactionType"`
	Category        string          `json:"category"`
	Date            string          `json:"date"`
	OccurredAt      time.Time       `json:"occurredAt"`
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

func TransactionEvent(eventType string, t transactionsdomain.Transaction, occurredAt time.Time) Event {
	return Event{
		Type:            eventType,
		UserID:          t.UserID,
		TransactionID:   t.ID,
		Amount:          t.Amount,
		TransactionType: string(t.Type),
		Category:        t.Category,
		Date:            t.Date.Format("2006-01-02"),
		OccurredAt:      occurredAt.UTC(),
	}
}

// NoopPublisher is used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, Event) error {
	return nil
}

func (NoopPublisher) Close() error {
	return nil
}
