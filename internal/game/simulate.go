package game

import (
	"context"
	"fmt"

	"github.com/alexbotov/slots/internal/config"
	"github.com/shopspring/decimal"
)

const ratioPlaces = 4

// SimulationConfig fixes the bet placed on every simulated round
type SimulationConfig struct {
	Rounds int64
	Lines  int
	Bet    int64
}

// SimulationReport summarizes a simulation run.
// RTP is total win over total bet; HitRate is the share of rounds that paid.
type SimulationReport struct {
	Rounds     int64            `json:"rounds"`
	Lines      int              `json:"lines"`
	Bet        int64            `json:"bet"`
	DrawPolicy string           `json:"draw_policy"`
	TotalBet   int64            `json:"total_bet"`
	TotalWin   int64            `json:"total_win"`
	WinRounds  int64            `json:"win_rounds"`
	LineHits   map[int]int64    `json:"line_hits"`
	SymbolHits map[Symbol]int64 `json:"symbol_hits"`
	RTP        decimal.Decimal  `json:"rtp"`
	HitRate    decimal.Decimal  `json:"hit_rate"`
}

// Simulate plays cfg.Rounds rounds without a wallet and reports the return.
// The context is checked between rounds.
func Simulate(ctx context.Context, machine config.GameConfig, cfg SimulationConfig, rng RandomSource) (*SimulationReport, error) {
	if cfg.Rounds < 1 {
		return nil, fmt.Errorf("rounds must be positive, got %d", cfg.Rounds)
	}
	if cfg.Lines < 1 || cfg.Lines > machine.MaxLines {
		return nil, ErrInvalidLines
	}
	if cfg.Bet < machine.MinBet || cfg.Bet > machine.MaxBet {
		return nil, ErrInvalidWager
	}

	policy, err := ParseDrawPolicy(machine.DrawPolicy)
	if err != nil {
		return nil, err
	}

	symbols, values := DefaultSymbols(), DefaultValues()
	pool := BuildPool(symbols)
	spinner := NewSpinner(rng, policy)

	report := &SimulationReport{
		Rounds:     cfg.Rounds,
		Lines:      cfg.Lines,
		Bet:        cfg.Bet,
		DrawPolicy: policy.String(),
		LineHits:   make(map[int]int64, cfg.Lines),
		SymbolHits: make(map[Symbol]int64, len(symbols)),
	}
	totalBet := int64(cfg.Lines) * cfg.Bet

	for i := int64(0); i < cfg.Rounds; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		grid, err := spinner.Spin(machine.Rows, machine.Columns, pool)
		if err != nil {
			return nil, fmt.Errorf("round %d: %w", i, err)
		}

		win := CheckWinnings(grid, cfg.Bet, cfg.Lines, values)
		report.TotalBet += totalBet
		report.TotalWin += win.Winnings
		if win.Winnings > 0 {
			report.WinRounds++
		}
		for _, line := range win.Lines {
			report.LineHits[line]++
			report.SymbolHits[grid[0][line-1]]++
		}
	}

	report.RTP = decimal.NewFromInt(report.TotalWin).
		Div(decimal.NewFromInt(report.TotalBet)).
		Round(ratioPlaces)
	report.HitRate = decimal.NewFromInt(report.WinRounds).
		Div(decimal.NewFromInt(report.Rounds)).
		Round(ratioPlaces)

	return report, nil
}
