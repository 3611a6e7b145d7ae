package models

import "time"

// Click запись об одном переходе по ссылке. После создания не изменяется.
type Click struct {
	ID      string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	LinkID  string    `json:"linkID" gorm:"index;type:varchar(36)"`
	Time    time.Time `json:"time" gorm:"not null"`
	Referer *string   `json:"referer" gorm:"type:varchar(2048)"`
	IP      string    `json:"ip" gorm:"type:varchar(64)"`
}
