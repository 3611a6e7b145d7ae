package models

import "time"

// User пользователь, вошедший через внешнего OAuth провайдера.
type User struct {
	ID         string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	CreatedAt  time.Time `json:"createdAt"`
	Provider   string    `json:"provider" gorm:"uniqueIndex:idx_users_provider_external;type:varchar(32);not null"`
	ExternalID string    `json:"externalID" gorm:"uniqueIndex:idx_users_provider_external;type:varchar(128);not null"`
	Name       string    `json:"name" gorm:"type:varchar(256);not null"`
}
