package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/alexbotov/slots/internal/audit"
	"github.com/alexbotov/slots/internal/domain"
	"github.com/alexbotov/slots/internal/game"
	"github.com/alexbotov/slots/internal/limits"
	"github.com/alexbotov/slots/internal/wallet"
	"go.uber.org/zap"
)

const quitCommand = "q"

// State is a step of the session loop
type State int

const (
	StateAwaitDeposit State = iota
	StateAwaitPlayDecision
	StatePlaceBet
	StateSpin
	StateReportResult
	StateQuit
)

func (s State) String() string {
	switch s {
	case StateAwaitDeposit:
		return "await_deposit"
	case StateAwaitPlayDecision:
		return "await_play_decision"
	case StatePlaceBet:
		return "place_bet"
	case StateSpin:
		return "spin"
	case StateReportResult:
		return "report_result"
	case StateQuit:
		return "quit"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Session drives one player from deposit to quit
type Session struct {
	engine   *game.Engine
	wallet   *wallet.Service
	audit    *audit.Service
	policy   *limits.Policy
	prompt   *Prompter
	logger   *zap.Logger
	currency string

	state   State
	pending *game.PlayRequest
	result  *game.PlayResult
}

// NewSession creates a session for engine, reading and writing through prompt
func NewSession(engine *game.Engine, walletSvc *wallet.Service, auditSvc *audit.Service, prompt *Prompter, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	cfg := engine.Config()
	return &Session{
		engine:   engine,
		wallet:   walletSvc,
		audit:    auditSvc,
		policy:   limits.NewPolicy(cfg),
		prompt:   prompt,
		logger:   logger.With(zap.String("session_id", engine.SessionID())),
		currency: cfg.Currency,
		state:    StateAwaitDeposit,
	}
}

// State returns the current step
func (s *Session) State() State {
	return s.state
}

// Run plays until the player quits, input ends or ctx is cancelled. Those
// three endings return nil; any other failure is returned after the session
// summary is printed.
func (s *Session) Run(ctx context.Context) error {
	s.audit.Log(ctx, audit.EventSessionStart, domain.SeverityInfo, "Session started",
		nil, audit.WithSession(s.engine.SessionID()), audit.WithComponent("console"))

	var runErr error
	for s.state != StateQuit {
		if err := ctx.Err(); err != nil {
			runErr = err
			break
		}

		next, err := s.step(ctx)
		if err != nil {
			runErr = err
			break
		}
		s.logger.Debug("state transition",
			zap.Stringer("from", s.state),
			zap.Stringer("to", next))
		s.state = next
	}
	s.state = StateQuit

	s.finish(ctx)

	if runErr == nil || errors.Is(runErr, io.EOF) || errors.Is(runErr, context.Canceled) {
		return nil
	}
	return runErr
}

func (s *Session) step(ctx context.Context) (State, error) {
	switch s.state {
	case StateAwaitDeposit:
		return s.awaitDeposit(ctx)
	case StateAwaitPlayDecision:
		return s.awaitPlayDecision(ctx)
	case StatePlaceBet:
		return s.placeBet(ctx)
	case StateSpin:
		return s.spin(ctx)
	case StateReportResult:
		return s.reportResult()
	default:
		return StateQuit, nil
	}
}

func (s *Session) awaitDeposit(ctx context.Context) (State, error) {
	if s.wallet.Funded() {
		return StateAwaitPlayDecision, nil
	}

	amount, err := AskDeposit(ctx, s.prompt, s.policy, s.currency)
	if err != nil {
		return StateQuit, err
	}
	if _, err := s.wallet.Deposit(ctx, amount, s.engine.SessionID()); err != nil {
		return StateQuit, fmt.Errorf("failed to deposit: %w", err)
	}
	return StateAwaitPlayDecision, nil
}

func (s *Session) awaitPlayDecision(ctx context.Context) (State, error) {
	s.prompt.Printf("Your current balance: %s\n", s.wallet.GetBalance())

	input, err := s.prompt.Ask(ctx, "Press Enter to play (or 'q' to quit) ")
	if err != nil {
		return StateQuit, err
	}
	if strings.TrimSpace(input) == quitCommand {
		return StateQuit, nil
	}
	return StatePlaceBet, nil
}

func (s *Session) placeBet(ctx context.Context) (State, error) {
	lines, err := AskLines(ctx, s.prompt, s.policy)
	if err != nil {
		return StateQuit, err
	}

	balance := s.wallet.GetBalance().Amount
	bet, total, err := AskBet(ctx, s.prompt, s.policy, s.currency, lines, balance, func(bet, total int64) {
		s.audit.Log(ctx, audit.EventBetRejected, domain.SeverityInfo,
			fmt.Sprintf("Bet of %s rejected, balance %s", domain.NewMoney(total, s.currency), domain.NewMoney(balance, s.currency)),
			map[string]interface{}{"lines": lines, "bet": bet, "total_bet": total, "balance": balance},
			audit.WithSession(s.engine.SessionID()), audit.WithComponent("console"))
	})
	if err != nil {
		return StateQuit, err
	}

	s.prompt.Printf("You are betting %s on each line. Total bet amount is %s\n",
		domain.NewMoney(bet, s.currency), domain.NewMoney(total, s.currency))
	s.pending = &game.PlayRequest{Lines: lines, Bet: bet}
	return StateSpin, nil
}

func (s *Session) spin(ctx context.Context) (State, error) {
	req := s.pending
	s.pending = nil

	result, err := s.engine.Play(ctx, req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return StateQuit, err
		}
		s.logger.Error("round failed", zap.Error(err), zap.Int("lines", req.Lines), zap.Int64("bet", req.Bet))
		if errors.Is(err, game.ErrSpinFailed) && !errors.Is(err, game.ErrRefundFailed) {
			s.prompt.Println("The round could not be played and your bet was returned.")
		} else {
			s.prompt.Println("The round could not be completed.")
		}
		return StateAwaitPlayDecision, nil
	}

	s.result = result
	return StateReportResult, nil
}

func (s *Session) reportResult() (State, error) {
	result := s.result
	s.result = nil

	s.prompt.Printf("%s", game.FormatGrid(result.Grid))
	s.prompt.Printf("You have won %s\n", domain.NewMoney(result.Win.Winnings, s.currency))
	if len(result.Win.Lines) > 0 {
		s.prompt.Println("You won on lines:", game.FormatLines(result.Win.Lines))
	} else {
		s.prompt.Println("You won on lines:")
	}
	return StateAwaitPlayDecision, nil
}

func (s *Session) finish(ctx context.Context) {
	summary := s.engine.Summary()

	if s.wallet.Funded() {
		s.prompt.Printf("\nRounds played: %d, total wagered %s, total won %s, final balance %s\n",
			summary.RoundsPlayed, summary.TotalWagered, summary.TotalWon, summary.ClosingBalance)
	}

	s.audit.Log(ctx, audit.EventSessionEnd, domain.SeverityInfo, "Session ended", summary,
		audit.WithSession(s.engine.SessionID()), audit.WithComponent("console"))
	s.logger.Info("session ended",
		zap.Int("rounds", summary.RoundsPlayed),
		zap.Int64("wagered", summary.TotalWagered.Amount),
		zap.Int64("won", summary.TotalWon.Amount),
		zap.Int64("balance", summary.ClosingBalance.Amount))
}
