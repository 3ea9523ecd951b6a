// Package transactions exposes read-only reporting over the transaction
// log. Transactions are created by the store as a side effect of deposits
// and withdrawals; nothing here mutates them.
package transactions

import (
	"go.uber.org/zap"

	"github.com/tellerdesk-dev/tellerdesk/internal/model"
	"github.com/tellerdesk-dev/tellerdesk/internal/store"
)

// Service reads the transaction log through a TransactionStore.
type Service struct {
	txns store.TransactionStore
	log  *zap.Logger
}

// NewService creates a transaction Service.
func NewService(txns store.TransactionStore, log *zap.Logger) *Service {
	return &Service{txns: txns, log: log}
}

// All returns the full transaction log.
func (s *Service) All() ([]model.Transaction, error) {
	s.log.Debug("listing all transactions")
	return s.txns.Transactions()
}

// AllByUser returns the transactions against accounts owned by a user.
func (s *Service) AllByUser(userID int) ([]model.Transaction, error) {
	s.log.Debug("listing transactions by user", zap.Int("user_id", userID))
	return s.txns.TransactionsByUser(userID)
}
