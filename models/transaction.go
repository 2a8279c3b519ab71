package models

import (
	"time"
)

// TransactionType represents the origin of a balance change
type TransactionType string

const (
	TransactionTypeStore    TransactionType = "store"
	TransactionTypeDaily    TransactionType = "daily"
	TransactionTypeRoulette TransactionType = "roulette"
)

// Transaction is an entry in a user's append-only transaction log
type Transaction struct {
	To       string          `json:"to" validate:"required"`
	From     string          `json:"from" validate:"required"`
	Quantity int64           `json:"quantity" validate:"gte=0"`
	Date     time.Time       `json:"date"`
	Received bool            `json:"received"`
	Type     TransactionType `json:"type" validate:"oneof=store daily roulette"`
}

// ChangeAmount returns the signed balance change the transaction represents
func (t *Transaction) ChangeAmount() int64 {
	if t.Received {
		return t.Quantity
	}
	return -t.Quantity
}

// String returns the string representation of the transaction type
func (tt TransactionType) String() string {
	return string(tt)
}
