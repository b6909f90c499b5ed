package settings

import "context"

type Repository interface {
	GetSettings(ctx context.Context, userID string) (*UserSettings, error)
	UpsertSettings(ctx context.Context, settings *UserSettings) error
}
