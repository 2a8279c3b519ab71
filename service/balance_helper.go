package service

import (
	"time"

	"foxyweb/events"
	"foxyweb/models"
)

// RecordBalanceChange applies amount to the user's balance, appends the
// matching transaction and publishes a balance change event. A negative
// amount is a debit; callers must have checked CanAfford beforehand.
// This is the single entry point for balance changes.
func RecordBalanceChange(uow UnitOfWork, user *models.User, amount int64, counterparty string, txType models.TransactionType, now time.Time) {
	oldBalance := user.Cakes.Balance
	user.Cakes.Balance += amount

	tx := &models.Transaction{
		Date: now,
		Type: txType,
	}
	if amount >= 0 {
		tx.To = user.ID
		tx.From = counterparty
		tx.Quantity = amount
		tx.Received = true
	} else {
		tx.To = counterparty
		tx.From = user.ID
		tx.Quantity = -amount
		tx.Received = false
	}
	user.AppendTransaction(tx)

	uow.EventBus().Publish(events.BalanceChangeEvent{
		UserID:          user.ID,
		OldBalance:      oldBalance,
		NewBalance:      user.Cakes.Balance,
		ChangeAmount:    tx.ChangeAmount(),
		TransactionType: txType,
	})
}
