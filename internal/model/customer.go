package model

import (
	"time"

	"github.com/google/uuid"
)

// Customer represents a CRM contact.
type Customer struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	Phone     *string   `json:"phone,omitempty" db:"phone"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// CustomerInput is the payload accepted by the customer mutations.
type CustomerInput struct {
	Name  string  `json:"name" validate:"required,max=100"`
	Email string  `json:"email" validate:"required,max=254,email"`
	Phone *string `json:"phone,omitempty" validate:"omitempty,phone"`
}

// BulkCreateResult aggregates the outcome of a partial-success bulk import.
type BulkCreateResult struct {
	Customers    []Customer `json:"customers"`
	Errors       []string   `json:"errors"`
	SuccessCount int        `json:"successCount"`
	ErrorCount   int        `json:"errorCount"`
}
