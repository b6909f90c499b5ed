package settings

import (
	"context"
	"errors"
	"testing"

	"budgeteer-go/internal/domain/currency"
	"budgeteer-go/internal/domain/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSettingsRepo struct {
	items map[string]UserSettings
}

func newFakeSettingsRepo() *fakeSettingsRepo {
	return &fakeSettingsRepo{items: make(map[string]UserSettings)}
}

func (r *fakeSettingsRepo) GetSettings(ctx context.Context, userID string) (*UserSettings, error) {
	item, ok := r.items[userID]
	if !ok {
		return nil, ErrSettingsNotFound
	}
	return &item, nil
}

func (r *fakeSettingsRepo) UpsertSettings(ctx context.Context, settings *UserSettings) error {
	r.items[settings.UserID] = *settings
	return nil
}

func TestUpdateNormalizesCurrency(t *testing.T) {
	repo := newFakeSettingsRepo()
	service := NewService(repo)

	updated, err := service.Update(context.Background(), "user-1", "eur")
	require.NoError(t, err)
	assert.Equal(t, "EUR", updated.Currency)
	assert.Equal(t, "EUR", repo.items["user-1"].Currency)

	_, err = service.Update(context.Background(), "user-1", "usd")
	require.NoError(t, err)
	assert.Equal(t, "USD", repo.items["user-1"].Currency)
}

func TestUpdateRejectsUnsupportedCurrency(t *testing.T) {
	service := NewService(newFakeSettingsRepo())

	_, err := service.Update(context.Background(), "user-1", "BTC")

	var errs validation.Errors
	require.True(t, errors.As(err, &errs))
	assert.Contains(t, errs, "currency")
}

func TestFormatterRequiresSettings(t *testing.T) {
	repo := newFakeSettingsRepo()
	service := NewService(repo)

	_, err := service.Formatter(context.Background(), "user-1")
	assert.ErrorIs(t, err, ErrSettingsNotFound)

	repo.items["user-1"] = UserSettings{UserID: "user-1", Currency: "GBP"}
	formatter, err := service.Formatter(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, "GBP", formatter.Currency().Code)
}

func TestFormatterRejectsStoredUnsupportedCurrency(t *testing.T) {
	repo := newFakeSettingsRepo()
	repo.items["user-1"] = UserSettings{UserID: "user-1", Currency: "XYZ"}
	service := NewService(repo)

	_, err := service.Formatter(context.Background(), "user-1")
	assert.ErrorIs(t, err, ErrCurrencyNotConfigured)
	assert.ErrorIs(t, err, currency.ErrUnsupportedCurrency)
}
