package history

import (
	"time"

	"budgeteer-go/internal/domain/categories"
	"github.com/shopspring/decimal"
)

// MonthHistory is the per-day rollup. Month is zero-based.
type MonthHistory struct {
	UserID  string          `gorm:"primaryKey"`
	Year    int             `gorm:"primaryKey;autoIncrement:false"`
	Month   int             `gorm:"primaryKey;autoIncrement:false"`
	Day     int             `gorm:"primaryKey;autoIncrement:false"`
	Income  decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Expense decimal.Decimal `gorm:"type:numeric(14,2);not null"`
}

func (MonthHistory) TableName() string {
	return "month_histories"
}

// YearHistory is the per-month rollup. Month is zero-based.
type YearHistory struct {
	UserID  string          `gorm:"primaryKey"`
	Year    int             `gorm:"primaryKey;autoIncrement:false"`
	Month   int             `gorm:"primaryKey;autoIncrement:false"`
	Income  decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Expense decimal.Decimal `gorm:"type:numeric(14,2);not null"`
}

func (YearHistory) TableName() string {
	return "year_histories"
}

type TimeFrame string

const (
	TimeFrameMonth TimeFrame = "month"
	TimeFrameYear  TimeFrame = "year"
)

type Query struct {
	TimeFrame TimeFrame
	Year      int
	Month     int
}

// Point is one bucket of a history chart. Day is zero for year points.
type Point struct {
	Year    int
	Month   int
	Day     int
	Income  decimal.Decimal
	Expense decimal.Decimal
}

type Balance struct {
	Income  decimal.Decimal
	Expense decimal.Decimal
}

type CategoryStat struct {
	Type         categories.Type
	Category     string
	CategoryIcon string
	Total        decimal.Decimal
}

type CategoryShare struct {
	CategoryStat
	Percentage decimal.Decimal
}

type Overview struct {
	From    time.Time
	To      time.Time
	Balance Balance
	Income  []CategoryShare
	Expense []CategoryShare
}
