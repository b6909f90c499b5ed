package history

import (
	"context"
	"sort"
	"time"

	"budgeteer-go/internal/domain/categories"
	"budgeteer-go/internal/domain/validation"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

const (
	MinYear = 1947
	MaxYear = 3000
)

var hundred = decimal.NewFromInt(100)

type Service struct {
	repo     Repository
	periods  PeriodsCache
	cacheTTL time.Duration
	now      func() time.Time
}

func NewService(repo Repository) *Service {
	return NewServiceWithCache(repo, nil, 0)
}

func NewServiceWithCache(repo Repository, periods PeriodsCache, ttl time.Duration) *Service {
	if periods == nil || ttl <= 0 {
		periods = noopPeriodsCache{}
	}
	return &Service{
		repo:     repo,
		periods:  periods,
		cacheTTL: ttl,
		now:      time.Now,
	}
}

func (s *Service) History(ctx context.Context, userID string, q Query) ([]Point, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	if q.TimeFrame == TimeFrameMonth {
		return s.MonthHistory(ctx, userID, q.Year, q.Month)
	}
	return s.YearHistory(ctx, userID, q.Year)
}

func (q Query) Validate() error {
	errs := validation.Errors{}
	if q.TimeFrame != TimeFrameMonth && q.TimeFrame != TimeFrameYear {
		errs.Add("timeFrame", "must be month or year")
	}
	if q.Month < 0 || q.Month > 11 {
		errs.Add("month", "must be between 0 and 11")
	}
	if q.Year < MinYear || q.Year > MaxYear {
		errs.Add("year", "must be between 1947 and 3000")
	}
	return errs.Err()
}

// YearHistory returns twelve points, one per month, zero-filled.
func (s *Service) YearHistory(ctx context.Context, userID string, year int) ([]Point, error) {
	rows, err := s.repo.YearRows(ctx, userID, year)
	if err != nil {
		return nil, err
	}

	byMonth := make(map[int]YearHistory, len(rows))
	for _, row := range rows {
		byMonth[row.Month] = row
	}

	points := make([]Point, 0, 12)
	for month := 0; month < 12; month++ {
		point := Point{Year: year, Month: month, Income: decimal.Zero, Expense: decimal.Zero}
		if row, ok := byMonth[month]; ok {
			point.Income = row.Income
			point.Expense = row.Expense
		}
		points = append(points, point)
	}
	return points, nil
}

// MonthHistory returns one point per calendar day of the month, zero-filled.
func (s *Service) MonthHistory(ctx context.Context, userID string, year, month int) ([]Point, error) {
	rows, err := s.repo.MonthRows(ctx, userID, year, month)
	if err != nil {
		return nil, err
	}

	byDay := make(map[int]MonthHistory, len(rows))
	for _, row := range rows {
		byDay[row.Day] = row
	}

	days := DaysInMonth(year, month)
	points := make([]Point, 0, days)
	for day := 1; day <= days; day++ {
		point := Point{Year: year, Month: month, Day: day, Income: decimal.Zero, Expense: decimal.Zero}
		if row, ok := byDay[day]; ok {
			point.Income = row.Income
			point.Expense = row.Expense
		}
		points = append(points, point)
	}
	return points, nil
}

// DaysInMonth takes a zero-based month.
func DaysInMonth(year, month int) int {
	return time.Date(year, time.Month(month+2), 0, 0, 0, 0, 0, time.UTC).Day()
}

// Years lists the years with rollup data, ascending. A user without data
// gets the current year so the selector is never empty.
func (s *Service) Years(ctx context.Context, userID string) ([]int, error) {
	if cached, ok := s.periods.Get(userID); ok {
		return cached, nil
	}
	generation := s.periods.Generation(userID)

	years, err := s.repo.Years(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(years) == 0 {
		years = []int{s.now().Year()}
	}
	sort.Ints(years)

	s.periods.Set(userID, years, s.cacheTTL, generation)
	return years, nil
}

// TransactionsChanged drops the cached years for the user.
func (s *Service) TransactionsChanged(userID string) {
	s.periods.Delete(userID)
}

func (s *Service) Balance(ctx context.Context, userID string, from, to time.Time) (Balance, error) {
	return s.repo.Balance(ctx, userID, from, to)
}

// CategoryStats returns per-category totals in the range, largest first.
func (s *Service) CategoryStats(ctx context.Context, userID string, from, to time.Time) ([]CategoryStat, error) {
	stats, err := s.repo.CategoryStats(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}
	if stats == nil {
		stats = []CategoryStat{}
	}

	sort.SliceStable(stats, func(i, j int) bool {
		if cmp := stats[i].Total.Cmp(stats[j].Total); cmp != 0 {
			return cmp > 0
		}
		if stats[i].Type != stats[j].Type {
			return stats[i].Type < stats[j].Type
		}
		return stats[i].Category < stats[j].Category
	})
	return stats, nil
}

// Overview loads the balance and the category breakdown concurrently and
// computes each category's share of its type's total.
func (s *Service) Overview(ctx context.Context, userID string, from, to time.Time) (Overview, error) {
	var (
		balance Balance
		stats   []CategoryStat
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		balance, err = s.Balance(gctx, userID, from, to)
		return err
	})
	g.Go(func() error {
		var err error
		stats, err = s.CategoryStats(gctx, userID, from, to)
		return err
	})
	if err := g.Wait(); err != nil {
		return Overview{}, err
	}

	return Overview{
		From:    from,
		To:      to,
		Balance: balance,
		Income:  shares(stats, categories.TypeIncome),
		Expense: shares(stats, categories.TypeExpense),
	}, nil
}

func shares(stats []CategoryStat, categoryType categories.Type) []CategoryShare {
	total := decimal.Zero
	for _, stat := range stats {
		if stat.Type == categoryType {
			total = total.Add(stat.Total)
		}
	}

	out := make([]CategoryShare, 0)
	for _, stat := range stats {
		if stat.Type != categoryType {
			continue
		}
		percentage := decimal.Zero
		if total.IsPositive() {
			percentage = stat.Total.Div(total).Mul(hundred).Round(2)
		}
		out = append(out, CategoryShare{CategoryStat: stat, Percentage: percentage})
	}
	return out
}
