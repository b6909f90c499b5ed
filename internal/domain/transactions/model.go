package transactions

import (
	"time"

	"budgeteer-go/internal/domain/categories"
	"github.com/shopspring/decimal"
)

type Transaction struct {
	ID           string          `gorm:"type:uuid;primaryKey"`
	UserID       string          `gorm:"index:idx_transactions_user_date,priority:1;not null"`
	Amount       decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Description  string          `gorm:"not null"`
	Date         time.Time       `gorm:"type:date;index:idx_transactions_user_date,priority:2;not null"`
	Type         categories.Type `gorm:"size:7;not null"`
	Category     string          `gorm:"not null"`
	CategoryIcon string          `gorm:"not null"`
	CreatedAt    time.Time       `gorm:"autoCreateTime"`
	UpdatedAt    time.Time       `gorm:"autoUpdateTime"`
}

func (Transaction) TableName() string {
	return "transactions"
}

// Delta is the signed change a transaction applies to the day and month rollups.
type Delta struct {
	Income  decimal.Decimal
	Expense decimal.Decimal
}

func DeltaOf(t Transaction) Delta {
	delta := Delta{Income: decimal.Zero, Expense: decimal.Zero}
	switch t.Type {
	case categories.TypeIncome:
		delta.Income = t.Amount
	case categories.TypeExpense:
		delta.Expense = t.Amount
	}
	return delta
}

func (d Delta) Negate() Delta {
	return Delta{Income: d.Income.Neg(), Expense: d.Expense.Neg()}
}

type CreateTransactionInput struct {
	UserID      string
	Amount      decimal.Decimal
	Description string
	Date        time.Time
	Type        categories.Type
	Category    string
}

// ListFilter selects rows for the history table and CSV export. From and To
// are inclusive calendar days.
type ListFilter struct {
	From     time.Time
	To       time.Time
	Type     categories.Type
	Category string
}
