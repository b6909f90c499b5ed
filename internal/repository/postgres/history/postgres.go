package history

import (
	"context"
	"time"

	historydomain "budgeteer-go/internal/domain/history"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) MonthRows(ctx context.Context, userID string, year, month int) ([]historydomain.MonthHistory, error) {
	var rows []historydomain.MonthHistory
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND year = ? AND month = ?", userID, year, month).
		Order("day asc").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *PostgresRepository) YearRows(ctx context.Context, userID string, year int) ([]historydomain.YearHistory, error) {
	var rows []historydomain.YearHistory
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND year = ?", userID, year).
		Order("month asc").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *PostgresRepository) Years(ctx context.Context, userID string) ([]int, error) {
	var years []int
	if err := r.db.WithContext(ctx).
		Model(&historydomain.YearHistory{}).
		Where("user_id = ?", userID).
		Distinct().
		Order("year asc").
		Pluck("year", &years).Error; err != nil {
		return nil, err
	}
	return years, nil
}

func (r *PostgresRepository) Balance(ctx context.Context, userID string, from, to time.Time) (historydomain.Balance, error) {
	query := "SELECT " +
		"COALESCE(SUM(CASE WHEN t.type = 'income' THEN t.amount ELSE 0 END), 0) AS income, " +
		"COALESCE(SUM(CASE WHEN t.type = 'expense' THEN t.amount ELSE 0 END), 0) AS expense " +
		"FROM transactions t WHERE t.user_id = ? AND t.date >= ? AND t.date <= ?"

	var row struct {
		Income  decimal.Decimal `gorm:"column:income"`
		Expense decimal.Decimal `gorm:"column:expense"`
	}
	if err := r.db.WithContext(ctx).Raw(query, userID, from, to).Scan(&row).Error; err != nil {
		return historydomain.Balance{}, err
	}

	return historydomain.Balance{Income: row.Income, Expense: row.Expense}, nil
}

func (r *PostgresRepository) CategoryStats(ctx context.Context, userID string, from, to time.Time) ([]historydomain.CategoryStat, error) {
	query := "SELECT t.type AS type, t.category AS category, t.category_icon AS category_icon, " +
		"COALESCE(SUM(t.amount), 0) AS total " +
		"FROM transactions t WHERE t.user_id = ? AND t.date >= ? AND t.date <= ? " +
		"GROUP BY t.type, t.category, t.category_icon"

	var rows []historydomain.CategoryStat
	if err := r.db.WithContext(ctx).Raw(query, userID, from, to).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
