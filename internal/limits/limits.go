// Package limits validates player input against the machine's betting rules
//
// Key Requirements:
//   - Deposits must be positive whole numbers no larger than MaxDeposit
//   - Lines must fall within 1..MaxLines
//   - Per-line bets must fall within MinBet..MaxBet
//   - The total bet (lines x bet) must not exceed the balance
package limits

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/alexbotov/slots/internal/config"
)

var (
	ErrNotANumber          = errors.New("not a number")
	ErrNonPositive         = errors.New("amount must be greater than 0")
	ErrOutOfRange          = errors.New("value out of range")
	ErrInsufficientBalance = errors.New("insufficient balance")
)

// RangeError reports a number outside an inclusive range
type RangeError struct {
	Field string
	Value int64
	Min   int64
	Max   int64
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s %d out of range %d - %d", e.Field, e.Value, e.Min, e.Max)
}

// Is makes errors.Is(err, ErrOutOfRange) match any RangeError
func (e *RangeError) Is(target error) bool {
	return target == ErrOutOfRange
}

// Policy holds the betting rules of a machine
type Policy struct {
	MaxLines   int
	MinBet     int64
	MaxBet     int64
	MaxDeposit int64
}

// NewPolicy creates a policy from the game configuration
func NewPolicy(cfg config.GameConfig) *Policy {
	return &Policy{
		MaxLines:   cfg.MaxLines,
		MinBet:     cfg.MinBet,
		MaxBet:     cfg.MaxBet,
		MaxDeposit: cfg.MaxDeposit,
	}
}

// Deposit parses a deposit amount
func (p *Policy) Deposit(input string) (int64, error) {
	n, err := parse(input)
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, ErrNonPositive
	}
	if n > p.MaxDeposit {
		return 0, &RangeError{Field: "deposit", Value: n, Min: 1, Max: p.MaxDeposit}
	}
	return n, nil
}

// Lines parses the number of lines to bet on
func (p *Policy) Lines(input string) (int, error) {
	n, err := parse(input)
	if err != nil {
		return 0, err
	}
	if n < 1 || n > int64(p.MaxLines) {
		return 0, &RangeError{Field: "lines", Value: n, Min: 1, Max: int64(p.MaxLines)}
	}
	return int(n), nil
}

// Bet parses the per-line bet
func (p *Policy) Bet(input string) (int64, error) {
	n, err := parse(input)
	if err != nil {
		return 0, err
	}
	if n < p.MinBet || n > p.MaxBet {
		return 0, &RangeError{Field: "bet", Value: n, Min: p.MinBet, Max: p.MaxBet}
	}
	return n, nil
}

// Affordable returns the total bet, or ErrInsufficientBalance when it exceeds balance
func (p *Policy) Affordable(lines int, bet, balance int64) (int64, error) {
	total := int64(lines) * bet
	if total > balance {
		return 0, fmt.Errorf("%w: total bet %d, balance %d", ErrInsufficientBalance, total, balance)
	}
	return total, nil
}

// parse accepts only ASCII digits after trimming surrounding whitespace.
// Signs are rejected so "-5" and "+5" are both treated as non-numbers.
// Digit strings too long for int64 saturate so the range checks reject them.
func parse(input string) (int64, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return 0, ErrNotANumber
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, ErrNotANumber
		}
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if errors.Is(err, strconv.ErrRange) {
		return math.MaxInt64, nil
	}
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrNotANumber, err)
	}
	return n, nil
}
