package settings

import "errors"

var (
	ErrSettingsNotFound = errors.New("settings not found")
	// ErrCurrencyNotConfigured means the stored currency can no longer be
	// formatted and the user has to pick one again.
	ErrCurrencyNotConfigured = errors.New("currency not configured")
)
