package domain

import "time"

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

type User struct {
	ID           int64     `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" validate:"required"`
	Email        string    `json:"email" validate:"required,email" gorm:"uniqueIndex"`
	Phone        string    `json:"phone,omitempty"`
	PasswordHash string    `json:"-" gorm:"column:password_hash"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
