package settings

import "time"

type UserSettings struct {
	UserID    string    `gorm:"primaryKey"`
	Currency  string    `gorm:"size:3;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (UserSettings) TableName() string {
	return "user_settings"
}
