package models

import "time"

// ShortCode запись реестра выданных кодов.
type ShortCode struct {
	Code      string    `gorm:"primaryKey;type:varchar(16)"`
	CreatedAt time.Time `gorm:"not null"`
}
