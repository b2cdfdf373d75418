// Package wallet holds the player's balance and its transaction log for one session
package wallet

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/alexbotov/slots/internal/audit"
	"github.com/alexbotov/slots/internal/domain"
	"github.com/google/uuid"
)

var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrAlreadyFunded     = errors.New("wallet already funded")
	ErrBalanceOverflow   = errors.New("balance overflow")
)

// Service provides wallet functionality.
type Service struct {
	audit    *audit.Service
	currency string

	mu           sync.Mutex
	balance      int64
	funded       bool
	transactions []*domain.Transaction
}

// New creates a new wallet service
func New(auditSvc *audit.Service, currency string) *Service {
	return &Service{
		audit:    auditSvc,
		currency: currency,
	}
}

// GetBalance returns the current balance
func (s *Service) GetBalance() domain.Money {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.NewMoney(s.balance, s.currency)
}

// Funded reports whether the initial deposit has been made
func (s *Service) Funded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.funded
}

// Deposit funds the wallet. Only one deposit is accepted per session.
func (s *Service) Deposit(ctx context.Context, amount int64, reference string) (*domain.Transaction, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	s.mu.Lock()
	if s.funded {
		s.mu.Unlock()
		return nil, ErrAlreadyFunded
	}
	tx, err := s.apply(domain.TxTypeDeposit, amount, reference)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	s.funded = true
	s.mu.Unlock()

	s.audit.Log(ctx, audit.EventDeposit, domain.SeverityInfo,
		fmt.Sprintf("Deposit of %s", tx.Amount),
		map[string]interface{}{
			"transaction_id": tx.ID,
			"amount":         amount,
		},
		audit.WithComponent("wallet"))

	return tx, nil
}

// PlaceWager debits a bet. The wager must not exceed the balance.
func (s *Service) PlaceWager(ctx context.Context, amount int64, roundID string) (*domain.Transaction, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if amount > s.balance {
		return nil, ErrInsufficientFunds
	}
	return s.apply(domain.TxTypeWager, -amount, roundID)
}

// CreditWin credits round winnings
func (s *Service) CreditWin(ctx context.Context, amount int64, roundID string) (*domain.Transaction, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.apply(domain.TxTypeWin, amount, roundID)
}

// Refund returns a wager whose round could not complete
func (s *Service) Refund(ctx context.Context, amount int64, roundID string) (*domain.Transaction, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.apply(domain.TxTypeRefund, amount, roundID)
}

// GetTransactions returns up to limit transactions, newest first
func (s *Service) GetTransactions(limit int) []*domain.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.transactions)
	if limit <= 0 || limit > n {
		limit = n
	}

	out := make([]*domain.Transaction, 0, limit)
	for i := n - 1; i >= n-limit; i-- {
		out = append(out, s.transactions[i])
	}
	return out
}

// apply moves the balance by delta and records it. Caller holds s.mu.
// A move that would wrap the balance is refused and leaves it unchanged.
func (s *Service) apply(txType domain.TransactionType, delta int64, reference string) (*domain.Transaction, error) {
	if (delta > 0 && s.balance > math.MaxInt64-delta) || (delta < 0 && s.balance < math.MinInt64-delta) {
		return nil, fmt.Errorf("%w: %s of %d on balance %d", ErrBalanceOverflow, txType, delta, s.balance)
	}

	before := s.balance
	s.balance += delta

	amount := delta
	if amount < 0 {
		amount = -amount
	}

	tx := &domain.Transaction{
		ID:            uuid.New().String(),
		Type:          txType,
		Amount:        domain.NewMoney(amount, s.currency),
		BalanceBefore: domain.NewMoney(before, s.currency),
		BalanceAfter:  domain.NewMoney(s.balance, s.currency),
		Reference:     reference,
		CreatedAt:     time.Now().UTC(),
	}
	s.transactions = append(s.transactions, tx)
	return tx, nil
}
