package transactions

import (
	"context"
	"time"
)

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error
	CreateTransaction(ctx context.Context, transaction *Transaction) error
	GetTransaction(ctx context.Context, userID, transactionID string) (*Transaction, error)
	DeleteTransaction(ctx context.Context, userID, transactionID string) (bool, error)
	ListTransactions(ctx context.Context, userID string, filter ListFilter) ([]Transaction, error)
	// ApplyRollupDelta adds delta to the day row and the month row that date
	// falls in, creating them when missing.
	ApplyRollupDelta(ctx context.Context, userID string, date time.Time, delta Delta) error
}
