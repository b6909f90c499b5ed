package categories

import (
	"strings"
	"time"
)

type Type string

const (
	TypeIncome  Type = "income"
	TypeExpense Type = "expense"
)

func ParseType(value string) (Type, bool) {
	switch Type(strings.ToLower(strings.TrimSpace(value))) {
	case TypeIncome:
		return TypeIncome, true
	case TypeExpense:
		return TypeExpense, true
	default:
		return "", false
	}
}

func (t Type) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

type Category struct {
	UserID    string    `gorm:"primaryKey"`
	Name      string    `gorm:"primaryKey"`
	Type      Type      `gorm:"primaryKey;size:7"`
	Icon      string    `gorm:"not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (Category) TableName() string {
	return "categories"
}

type CreateCategoryInput struct {
	UserID string
	Name   string
	Icon   string
	Type   Type
}
