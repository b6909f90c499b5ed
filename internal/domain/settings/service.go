package settings

import (
	"context"
	"errors"
	"fmt"

	"budgeteer-go/internal/domain/currency"
	"budgeteer-go/internal/domain/validation"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Get(ctx context.Context, userID string) (*UserSettings, error) {
	return s.repo.GetSettings(ctx, userID)
}

// Update records the user's display currency. It is also the final step of
// onboarding, so it creates the row when missing.
func (s *Service) Update(ctx context.Context, userID, currencyCode string) (*UserSettings, error) {
	c, err := currency.Lookup(currencyCode)
	if err != nil {
		if errors.Is(err, currency.ErrUnsupportedCurrency) {
			return nil, validation.Errors{"currency": "unsupported currency"}
		}
		return nil, err
	}

	settings := UserSettings{UserID: userID, Currency: c.Code}
	if err := s.repo.UpsertSettings(ctx, &settings); err != nil {
		return nil, err
	}
	return &settings, nil
}

// Formatter returns the money formatter for the user's chosen currency.
func (s *Service) Formatter(ctx context.Context, userID string) (*currency.Formatter, error) {
	settings, err := s.repo.GetSettings(ctx, userID)
	if err != nil {
		return nil, err
	}

	formatter, err := currency.NewFormatter(settings.Currency)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCurrencyNotConfigured, err)
	}
	return formatter, nil
}
