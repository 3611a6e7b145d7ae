package models

import "time"

// CodeLength длина короткого кода ссылки.
const CodeLength = 7

// Link структура модели хранения ссылки.
type Link struct {
	ID        string     `json:"id" gorm:"primaryKey;type:varchar(36)"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	Code      string     `json:"code" gorm:"uniqueIndex;type:varchar(16);not null"`
	TargetURL string     `json:"targetURL" gorm:"type:varchar(2048);not null"`
	OwnerID   *string    `json:"ownerID" gorm:"index;type:varchar(36)"`
	ExpiresAt *time.Time `json:"expiresAt"`
	MaxClicks *int       `json:"maxClicks"`
	// Expired закешированный флаг истечения. Выставляется при первом обращении к истекшей ссылке
	// и снимается только явным обновлением владельцем.
	Expired bool `json:"expired" gorm:"not null;default:false"`
	// ClickIDs упорядоченные идентификаторы кликов.
	ClickIDs []string `json:"clickIDs" gorm:"serializer:json;type:text"`
}

// IsExpired вычисляет истечение ссылки по её условиям на момент now. Закешированный флаг Expired не учитывается.
func (l *Link) IsExpired(now time.Time) bool {
	if l.MaxClicks != nil && l.ClickCount() >= *l.MaxClicks {
		return true
	}
	if l.ExpiresAt != nil && l.ExpiresAt.Before(now) {
		return true
	}
	return false
}

// ClickCount количество записанных переходов.
func (l *Link) ClickCount() int {
	return len(l.ClickIDs)
}

// IsOwnedBy проверяет принадлежность ссылки пользователю.
func (l *Link) IsOwnedBy(ownerID string) bool {
	return ownerID != "" && l.OwnerID != nil && *l.OwnerID == ownerID
}
