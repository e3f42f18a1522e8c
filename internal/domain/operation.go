// internal/domain/operation.go
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OperationType mirrors CategoryType on the operation itself.
type OperationType string

const (
	OperationTypeIncome  OperationType = "income"
	OperationTypeExpense OperationType = "expense"
)

// Operation is a financial transaction record owned by a user and classified
// under a category. Amount is stored in minor currency units (cents).
type Operation struct {
	ID         int64         `db:"id" json:"id"` // Primary key, BIGSERIAL in DB
	UserID     int64         `db:"user_id" json:"user_id"`
	CategoryID int64         `db:"category_id" json:"category_id"`
	Amount     int64         `db:"amount" json:"amount"` // Minor currency units
	Currency   string        `db:"currency" json:"currency"`
	Name       string        `db:"name" json:"name"`
	Comment    *string       `db:"comment" json:"comment"` // Optional free-form note
	Type       OperationType `db:"type" json:"type"`
	CreatedAt  time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time     `db:"updated_at" json:"updated_at"`
}

// NewOperation creates a new Operation instance.
func NewOperation(userID, categoryID, amount int64, currency, name string, comment *string, opType OperationType) *Operation {
	now := time.Now().UTC()
	return &Operation{
		UserID:     userID,
		CategoryID: categoryID,
		Amount:     amount,
		Currency:   currency,
		Name:       name,
		Comment:    comment,
		Type:       opType,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// minorUnitsPerMajor converts between cents and whole currency units.
// Every currency the tracker handles today uses two decimal places.
var minorUnitsPerMajor = decimal.NewFromInt(100)

// CategoryTotal is an aggregated per-category amount for a user.
type CategoryTotal struct {
	CategoryID   int64         `db:"category_id" json:"category_id"`
	CategoryName string        `db:"category_name" json:"category_name"`
	Type         OperationType `db:"type" json:"type"`
	Currency     string        `db:"currency" json:"currency"`
	TotalMinor   int64         `db:"total_minor" json:"-"`
	Count        int64         `db:"count" json:"count"`
}

// Total returns the aggregated amount in major currency units.
func (t *CategoryTotal) Total() decimal.Decimal {
	return decimal.NewFromInt(t.TotalMinor).Div(minorUnitsPerMajor)
}
