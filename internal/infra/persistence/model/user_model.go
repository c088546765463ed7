package model

import (
	"time"
)

// UserModel mirrors the 'users' table. PostgreSQL assigns ids from a bigserial sequence.
type UserModel struct {
	ID             int64   `gorm:"primaryKey;autoIncrement"`
	Email          string  `gorm:"type:varchar(255);uniqueIndex:users_email_key;not null"`
	Username       string  `gorm:"type:varchar(100);uniqueIndex:users_username_key;not null"`
	FirstName      *string `gorm:"type:varchar(100)"`
	LastName       *string `gorm:"type:varchar(100)"`
	Role           string  `gorm:"type:varchar(20);not null"`
	IsActive       bool    `gorm:"not null"`
	IsVerified     bool    `gorm:"not null"`
	HashedPassword string  `gorm:"type:varchar(255);not null"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
	LastLogin      *time.Time
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}
