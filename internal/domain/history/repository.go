package history

import (
	"context"
	"time"
)

type Repository interface {
	MonthRows(ctx context.Context, userID string, year, month int) ([]MonthHistory, error)
	YearRows(ctx context.Context, userID string, year int) ([]YearHistory, error)
	Years(ctx context.Context, userID string) ([]int, error)
	Balance(ctx context.Context, userID string, from, to time.Time) (Balance, error)
	CategoryStats(ctx context.Context, userID string, from, to time.Time) ([]CategoryStat, error)
}
