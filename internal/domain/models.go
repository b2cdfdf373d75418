// Package domain contains the core models shared by the slot machine packages
package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// Money is a whole-unit amount tagged with a display currency label
type Money struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// NewMoney creates a Money value
func NewMoney(amount int64, currency string) Money {
	return Money{Amount: amount, Currency: currency}
}

// Add adds two money values
func (m Money) Add(other Money) Money {
	return Money{Amount: m.Amount + other.Amount, Currency: m.Currency}
}

// Sub subtracts money value
func (m Money) Sub(other Money) Money {
	return Money{Amount: m.Amount - other.Amount, Currency: m.Currency}
}

// String renders the amount with its label, e.g. "Rs.500"
func (m Money) String() string {
	return fmt.Sprintf("%s%d", m.Currency, m.Amount)
}

// TransactionType represents wallet transaction types
type TransactionType string

const (
	TxTypeDeposit TransactionType = "deposit"
	TxTypeWager   TransactionType = "wager"
	TxTypeWin     TransactionType = "win"
	TxTypeRefund  TransactionType = "refund"
)

// Transaction is a single balance movement
type Transaction struct {
	ID            string          `json:"id"`
	Type          TransactionType `json:"type"`
	Amount        Money           `json:"amount"`
	BalanceBefore Money           `json:"balance_before"`
	BalanceAfter  Money           `json:"balance_after"`
	Reference     string          `json:"reference"`
	CreatedAt     time.Time       `json:"created_at"`
}

// RoundRecord is the recall entry for one completed round
type RoundRecord struct {
	RoundID       string          `json:"round_id"`
	SessionID     string          `json:"session_id"`
	PlayedAt      time.Time       `json:"played_at"`
	Lines         int             `json:"lines"`
	Bet           Money           `json:"bet"`
	TotalBet      Money           `json:"total_bet"`
	Winnings      Money           `json:"winnings"`
	WinningLines  []int           `json:"winning_lines"`
	BalanceBefore Money           `json:"balance_before"`
	BalanceAfter  Money           `json:"balance_after"`
	Grid          json.RawMessage `json:"grid"`
}

// Net returns winnings minus the total bet
func (r *RoundRecord) Net() Money {
	return r.Winnings.Sub(r.TotalBet)
}

// SessionSummary aggregates the rounds of one session
type SessionSummary struct {
	SessionID      string    `json:"session_id"`
	StartedAt      time.Time `json:"started_at"`
	RoundsPlayed   int       `json:"rounds_played"`
	OpeningBalance Money     `json:"opening_balance"`
	ClosingBalance Money     `json:"closing_balance"`
	TotalWagered   Money     `json:"total_wagered"`
	TotalWon       Money     `json:"total_won"`
}

// EventSeverity represents audit event severity
type EventSeverity string

const (
	SeverityInfo     EventSeverity = "info"
	SeverityWarning  EventSeverity = "warning"
	SeverityError    EventSeverity = "error"
	SeverityCritical EventSeverity = "critical"
)

// AuditEvent represents a significant event
type AuditEvent struct {
	ID          string          `json:"id"`
	Type        string          `json:"type"`
	Severity    EventSeverity   `json:"severity"`
	Timestamp   time.Time       `json:"timestamp"`
	SessionID   *string         `json:"session_id,omitempty"`
	RoundID     *string         `json:"round_id,omitempty"`
	Description string          `json:"description"`
	Data        json.RawMessage `json:"data,omitempty"`
	Component   string          `json:"component"`
}
