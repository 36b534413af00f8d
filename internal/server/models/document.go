package models

import "time"

// Document is a tracked item with an expiry date. ExpiryDate carries a
// calendar date only; its time of day is always midnight.
type Document struct {
	ID           string    `json:"doc_id"`
	UserID       string    `json:"user_id"`
	DocumentType string    `json:"document_type"`
	ExpiryDate   time.Time `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// ExpiringDocument pairs a document inside the reminder window with its owner.
type ExpiringDocument struct {
	Document Document
	User     User
}
