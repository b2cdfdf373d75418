// Package game provides the slot machine: spin generation, payout evaluation
// and the engine that plays one round against the wallet.
package game

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexbotov/slots/internal/audit"
	"github.com/alexbotov/slots/internal/config"
	"github.com/alexbotov/slots/internal/domain"
	"github.com/alexbotov/slots/internal/wallet"
	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"
)

var (
	ErrInvalidTable        = errors.New("invalid symbol table")
	ErrInvalidDimensions   = errors.New("invalid grid dimensions")
	ErrPoolExhausted       = errors.New("symbol pool exhausted")
	ErrInvalidLines        = errors.New("invalid number of lines")
	ErrInvalidWager        = errors.New("invalid wager amount")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrSpinFailed          = errors.New("spin failed")
	ErrRefundFailed        = errors.New("wager refund failed")
)

// Engine plays rounds for a single session
type Engine struct {
	cfg      config.GameConfig
	largeWin int64
	symbols  SymbolTable
	values   ValueTable
	spinner  *Spinner
	wallet   *wallet.Service
	audit    *audit.Service

	sessionID    string
	startedAt    time.Time
	history      []*domain.RoundRecord
	totalWagered int64
	totalWon     int64
}

// New creates a new game engine with the built-in symbol and value tables
func New(cfg *config.Config, rngSvc RandomSource, walletSvc *wallet.Service, auditSvc *audit.Service) (*Engine, error) {
	policy, err := ParseDrawPolicy(cfg.Game.DrawPolicy)
	if err != nil {
		return nil, err
	}

	symbols, values := DefaultSymbols(), DefaultValues()
	if err := symbols.Validate(values); err != nil {
		return nil, err
	}

	return &Engine{
		cfg:       cfg.Game,
		largeWin:  cfg.Audit.LargeWin,
		symbols:   symbols,
		values:    values,
		spinner:   NewSpinner(rngSvc, policy),
		wallet:    walletSvc,
		audit:     auditSvc,
		sessionID: uuid.New().String(),
		startedAt: time.Now().UTC(),
	}, nil
}

// SessionID returns the identifier shared by every round of this engine
func (e *Engine) SessionID() string {
	return e.sessionID
}

// Config returns the machine layout and bet bounds
func (e *Engine) Config() config.GameConfig {
	return e.cfg
}

// Values returns the payout multipliers
func (e *Engine) Values() ValueTable {
	return e.values
}

// PlayRequest contains the bet for one round
type PlayRequest struct {
	Lines int   `json:"lines"`
	Bet   int64 `json:"bet"` // per line
}

// PlayResult contains the result of one round
type PlayResult struct {
	RoundID  string       `json:"round_id"`
	Grid     Grid         `json:"grid"`
	Win      WinResult    `json:"win"`
	Bet      domain.Money `json:"bet"`
	TotalBet domain.Money `json:"total_bet"`
	Net      domain.Money `json:"net"`
	Balance  domain.Money `json:"balance"`
}

// Play validates the bet, debits it, spins, pays winning lines and records
// the round. The balance moves by winnings minus the total bet.
func (e *Engine) Play(ctx context.Context, req *PlayRequest) (*PlayResult, error) {
	if req.Lines < 1 || req.Lines > e.cfg.MaxLines {
		return nil, ErrInvalidLines
	}
	if req.Bet < e.cfg.MinBet || req.Bet > e.cfg.MaxBet {
		return nil, ErrInvalidWager
	}

	totalBet := int64(req.Lines) * req.Bet
	balance := e.wallet.GetBalance()
	if totalBet > balance.Amount {
		return nil, ErrInsufficientBalance
	}

	now := time.Now().UTC()
	roundID := uuid.New().String()

	if _, err := e.wallet.PlaceWager(ctx, totalBet, roundID); err != nil {
		if errors.Is(err, wallet.ErrInsufficientFunds) {
			return nil, ErrInsufficientBalance
		}
		return nil, err
	}

	grid, err := e.spinner.Spin(e.cfg.Rows, e.cfg.Columns, BuildPool(e.symbols))
	if err != nil {
		spinErr := fmt.Errorf("%w: %w", ErrSpinFailed, err)
		if _, refundErr := e.wallet.Refund(ctx, totalBet, roundID); refundErr != nil {
			e.audit.Log(ctx, audit.EventSystemError, domain.SeverityCritical,
				"Spin failed and wager could not be refunded",
				map[string]interface{}{"error": err.Error(), "refund_error": refundErr.Error(), "total_bet": totalBet},
				audit.WithSession(e.sessionID), audit.WithRound(roundID))
			return nil, fmt.Errorf("%w: %w: %v", ErrRefundFailed, spinErr, refundErr)
		}
		e.audit.Log(ctx, audit.EventSystemError, domain.SeverityError,
			"Spin failed, wager refunded",
			map[string]interface{}{"error": err.Error(), "total_bet": totalBet},
			audit.WithSession(e.sessionID), audit.WithRound(roundID))
		return nil, spinErr
	}

	win := CheckWinnings(grid, req.Bet, req.Lines, e.values)

	if win.Winnings > 0 {
		if _, err := e.wallet.CreditWin(ctx, win.Winnings, roundID); err != nil {
			e.audit.Log(ctx, audit.EventSystemError, domain.SeverityCritical,
				"Winnings could not be credited",
				map[string]interface{}{"error": err.Error(), "winnings": win.Winnings, "total_bet": totalBet},
				audit.WithSession(e.sessionID), audit.WithRound(roundID))
			e.totalWagered += totalBet
			return nil, fmt.Errorf("failed to credit winnings: %w", err)
		}
	}

	newBalance := e.wallet.GetBalance()
	gridJSON, _ := jsoniter.Marshal(grid)

	currency := e.cfg.Currency
	record := &domain.RoundRecord{
		RoundID:       roundID,
		SessionID:     e.sessionID,
		PlayedAt:      now,
		Lines:         req.Lines,
		Bet:           domain.NewMoney(req.Bet, currency),
		TotalBet:      domain.NewMoney(totalBet, currency),
		Winnings:      domain.NewMoney(win.Winnings, currency),
		WinningLines:  win.Lines,
		BalanceBefore: balance,
		BalanceAfter:  newBalance,
		Grid:          gridJSON,
	}
	e.history = append(e.history, record)
	e.totalWagered += totalBet
	e.totalWon += win.Winnings

	e.audit.Log(ctx, audit.EventRoundComplete, domain.SeverityInfo,
		fmt.Sprintf("Round complete: bet %s, won %s", record.TotalBet, record.Winnings),
		map[string]interface{}{
			"lines":         req.Lines,
			"bet":           req.Bet,
			"total_bet":     totalBet,
			"winnings":      win.Winnings,
			"winning_lines": win.Lines,
			"balance":       newBalance.Amount,
		},
		audit.WithSession(e.sessionID), audit.WithRound(roundID))

	if e.largeWin > 0 && win.Winnings >= e.largeWin {
		e.audit.Log(ctx, audit.EventLargeWin, domain.SeverityWarning,
			fmt.Sprintf("Large win: %s", record.Winnings),
			map[string]interface{}{
				"winnings":  win.Winnings,
				"total_bet": totalBet,
				"grid":      FormatGrid(grid),
			},
			audit.WithSession(e.sessionID), audit.WithRound(roundID))
	}

	return &PlayResult{
		RoundID:  roundID,
		Grid:     grid,
		Win:      win,
		Bet:      record.Bet,
		TotalBet: record.TotalBet,
		Net:      record.Net(),
		Balance:  newBalance,
	}, nil
}

// History returns up to limit rounds, newest first. A limit of zero or less
// returns every round.
func (e *Engine) History(limit int) []*domain.RoundRecord {
	n := len(e.history)
	if limit <= 0 || limit > n {
		limit = n
	}

	out := make([]*domain.RoundRecord, 0, limit)
	for i := n - 1; i >= n-limit; i-- {
		out = append(out, e.history[i])
	}
	return out
}

// Summary aggregates the session so far
func (e *Engine) Summary() domain.SessionSummary {
	closing := e.wallet.GetBalance()
	currency := e.cfg.Currency
	wagered := domain.NewMoney(e.totalWagered, currency)
	won := domain.NewMoney(e.totalWon, currency)

	return domain.SessionSummary{
		SessionID:      e.sessionID,
		StartedAt:      e.startedAt,
		RoundsPlayed:   len(e.history),
		OpeningBalance: closing.Sub(won).Add(wagered),
		ClosingBalance: closing,
		TotalWagered:   wagered,
		TotalWon:       won,
	}
}

// Fields describes the engine for structured log lines
func (e *Engine) Fields() []zap.Field {
	return []zap.Field{
		zap.String("session_id", e.sessionID),
		zap.Int("rows", e.cfg.Rows),
		zap.Int("columns", e.cfg.Columns),
		zap.String("draw_policy", e.spinner.Policy().String()),
	}
}
