package transactions

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"budgeteer-go/internal/domain/categories"
	"budgeteer-go/internal/domain/validation"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	maxDescriptionLength = 200
	minYear              = 1947
	maxYear              = 3000
)

var maxAmount = decimal.RequireFromString("9999999999.99")

type CategoryFinder interface {
	Find(ctx context.Context, userID, name string, categoryType categories.Type) (*categories.Category, error)
}

// ChangeListener is told about a user's committed mutations so read caches
// can drop what they hold for that user.
type ChangeListener interface {
	TransactionsChanged(userID string)
}

type Service struct {
	repo       Repository
	categories CategoryFinder
	listeners  []ChangeListener
	newID      func() string
}

func NewService(repo Repository, finder CategoryFinder, listeners ...ChangeListener) *Service {
	return &Service{
		repo:       repo,
		categories: finder,
		listeners:  listeners,
		newID:      uuid.NewString,
	}
}

func (s *Service) Create(ctx context.Context, input CreateTransactionInput) (*Transaction, error) {
	description := strings.TrimSpace(input.Description)
	categoryName := strings.TrimSpace(input.Category)

	errs := validation.Errors{}
	switch {
	case !input.Amount.IsPositive():
		errs.Add("amount", "must be greater than 0")
	case !input.Amount.Equal(input.Amount.Round(2)):
		errs.Add("amount", "must have at most 2 decimal places")
	case input.Amount.GreaterThan(maxAmount):
		errs.Add("amount", "is too large")
	}
	if utf8.RuneCountInString(description) > maxDescriptionLength {
		errs.Add("description", "must be at most 200 characters")
	}
	switch {
	case input.Date.IsZero():
		errs.Add("date", "is required")
	case input.Date.Year() < minYear || input.Date.Year() > maxYear:
		errs.Add("date", "is out of range")
	}
	if !input.Type.Valid() {
		errs.Add("type", "must be income or expense")
	}
	if categoryName == "" {
		errs.Add("category", "is required")
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}

	category, err := s.categories.Find(ctx, input.UserID, categoryName, input.Type)
	if err != nil {
		if errors.Is(err, categories.ErrCategoryNotFound) {
			return nil, validation.Errors{"category": "unknown category"}
		}
		return nil, err
	}

	transaction := Transaction{
		ID:           s.newID(),
		UserID:       input.UserID,
		Amount:       input.Amount.Round(2),
		Description:  description,
		Date:         calendarDay(input.Date),
		Type:         input.Type,
		Category:     category.Name,
		CategoryIcon: category.Icon,
	}

	err = s.repo.Transaction(ctx, func(tx Repository) error {
		if err := tx.CreateTransaction(ctx, &transaction); err != nil {
			return err
		}
		return tx.ApplyRollupDelta(ctx, transaction.UserID, transaction.Date, DeltaOf(transaction))
	})
	if err != nil {
		return nil, err
	}

	s.notify(input.UserID)
	return &transaction, nil
}

// Delete removes the transaction and reverses its rollup contribution. The
// deleted row is returned for event publication.
func (s *Service) Delete(ctx context.Context, userID, transactionID string) (*Transaction, error) {
	if _, err := uuid.Parse(transactionID); err != nil {
		return nil, ErrTransactionNotFound
	}

	var deleted Transaction
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		transaction, err := tx.GetTransaction(ctx, userID, transactionID)
		if err != nil {
			return err
		}

		ok, err := tx.DeleteTransaction(ctx, userID, transactionID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrTransactionNotFound
		}

		if err := tx.ApplyRollupDelta(ctx, userID, transaction.Date, DeltaOf(*transaction).Negate()); err != nil {
			return err
		}

		deleted = *transaction
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notify(userID)
	return &deleted, nil
}

// List returns the user's transactions in the range, newest day first.
func (s *Service) List(ctx context.Context, userID string, filter ListFilter) ([]Transaction, error) {
	filter.From = calendarDay(filter.From)
	filter.To = calendarDay(filter.To)
	filter.Category = strings.TrimSpace(filter.Category)

	items, err := s.repo.ListTransactions(ctx, userID, filter)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []Transaction{}
	}
	return items, nil
}

func (s *Service) notify(userID string) {
	for _, listener := range s.listeners {
		listener.TransactionsChanged(userID)
	}
}

func calendarDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
