package models

import "time"

// User owns documents. Email is unique across users.
type User struct {
	ID           string    `json:"user_id"`
	Name         string    `json:"name"`
	MobileNumber string    `json:"mobile_number"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
