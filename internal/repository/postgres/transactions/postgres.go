package transactions

import (
	"context"
	"errors"
	"time"

	historydomain "budgeteer-go/internal/domain/history"
	transactionsdomain "budgeteer-go/internal/domain/transactions"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(transactionsdomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) CreateTransaction(ctx context.Context, transaction *transactionsdomain.Transaction) error {
	return r.db.WithContext(ctx).Create(transaction).Error
}

func (r *PostgresRepository) GetTransaction(ctx context.Context, userID, transactionID string) (*transactionsdomain.Transaction, error) {
	var transaction transactionsdomain.Transaction
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, transactionID).
		First(&transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, transactionsdomain.ErrTransactionNotFound
		}
		return nil, err
	}
	return &transaction, nil
}

func (r *PostgresRepository) DeleteTransaction(ctx context.Context, userID, transactionID string) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&transactionsdomain.Transaction{}, "user_id = ? AND id = ?", userID, transactionID)
	return result.RowsAffected > 0, result.Error
}

func (r *PostgresRepository) ListTransactions(ctx context.Context, userID string, filter transactionsdomain.ListFilter) ([]transactionsdomain.Transaction, error) {
	query := r.db.WithContext(ctx).
		Where("user_id = ? AND date >= ? AND date <= ?", userID, filter.From, filter.To)
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}

	var items []transactionsdomain.Transaction
	if err := query.Order("date desc, created_at desc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// ApplyRollupDelta increments both rollup rows in place. Each table gets one
// INSERT ... ON CONFLICT DO UPDATE so concurrent writers to the same bucket
// cannot lose updates.
func (r *PostgresRepository) ApplyRollupDelta(ctx context.Context, userID string, date time.Time, delta transactionsdomain.Delta) error {
	year, month, day := date.Year(), int(date.Month())-1, date.Day()

	dayRow := historydomain.MonthHistory{
		UserID:  userID,
		Year:    year,
		Month:   month,
		Day:     day,
		Income:  delta.Income,
		Expense: delta.Expense,
	}
	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "year"}, {Name: "month"}, {Name: "day"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"income":  gorm.Expr("month_histories.income + excluded.income"),
			"expense": gorm.Expr("month_histories.expense + excluded.expense"),
		}),
	}).Create(&dayRow).Error; err != nil {
		return err
	}

	monthRow := historydomain.YearHistory{
		UserID:  userID,
		Year:    year,
		Month:   month,
		Income:  delta.Income,
		Expense: delta.Expense,
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "year"}, {Name: "month"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"income":  gorm.Expr("year_histories.income + excluded.income"),
			"expense": gorm.Expr("year_histories.expense + excluded.expense"),
		}),
	}).Create(&monthRow).Error
}
