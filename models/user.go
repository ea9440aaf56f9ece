package models

import "time"

type User struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Email          string    `gorm:"uniqueIndex;not null" json:"email"`
	HashedPassword string    `gorm:"not null" json:"-"`
	IsActive       bool      `gorm:"not null" json:"is_active"`
	IsSuperuser    bool      `gorm:"not null" json:"is_superuser"`
	FullName       *string   `json:"full_name"`
	Orders         []Order   `gorm:"foreignKey:UserID" json:"-"`
	CreatedAt      time.Time `json:"-"`
}
