package game

import (
	"fmt"

	"github.com/alexbotov/slots/internal/config"
)

// RandomSource draws uniform integers in [0, max)
type RandomSource interface {
	GenerateInt(max int64) (int64, error)
}

// Grid is a spin result stored column-major: grid[column][row]
type Grid [][]Symbol

// Columns returns the number of columns
func (g Grid) Columns() int {
	return len(g)
}

// Rows returns the number of rows
func (g Grid) Rows() int {
	if len(g) == 0 {
		return 0
	}
	return len(g[0])
}

// Row returns the symbols shown on row r, left to right
func (g Grid) Row(r int) []Symbol {
	row := make([]Symbol, len(g))
	for c, column := range g {
		row[c] = column[r]
	}
	return row
}

// DrawPolicy selects how cells are drawn from the pool
type DrawPolicy int

const (
	// DrawWithRemoval gives each column a fresh copy of the pool and removes
	// every drawn instance, so no column holds more of a symbol than its weight.
	DrawWithRemoval DrawPolicy = iota
	// DrawWithReplacement draws every cell independently from the full pool.
	DrawWithReplacement
)

func (p DrawPolicy) String() string {
	switch p {
	case DrawWithRemoval:
		return config.DrawPolicyRemoval
	case DrawWithReplacement:
		return config.DrawPolicyReplacement
	default:
		return fmt.Sprintf("DrawPolicy(%d)", int(p))
	}
}

// ParseDrawPolicy maps a config value to a DrawPolicy
func ParseDrawPolicy(s string) (DrawPolicy, error) {
	switch s {
	case config.DrawPolicyRemoval, "":
		return DrawWithRemoval, nil
	case config.DrawPolicyReplacement:
		return DrawWithReplacement, nil
	default:
		return 0, fmt.Errorf("unknown draw policy %q", s)
	}
}

// Spinner generates grids from a symbol pool
type Spinner struct {
	rng    RandomSource
	policy DrawPolicy
}

// NewSpinner creates a spinner drawing from rng with the given policy
func NewSpinner(rng RandomSource, policy DrawPolicy) *Spinner {
	return &Spinner{rng: rng, policy: policy}
}

// Policy returns the spinner's draw policy
func (s *Spinner) Policy() DrawPolicy {
	return s.policy
}

// Spin draws a rows x columns grid from pool, one column at a time
func (s *Spinner) Spin(rows, columns int, pool []Symbol) (Grid, error) {
	if rows < 1 || columns < 1 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, rows, columns)
	}
	if len(pool) == 0 {
		return nil, ErrPoolExhausted
	}
	if s.policy == DrawWithRemoval && rows > len(pool) {
		return nil, fmt.Errorf("%w: %d rows from %d symbols", ErrPoolExhausted, rows, len(pool))
	}

	grid := make(Grid, columns)
	for c := range grid {
		var (
			column []Symbol
			err    error
		)
		if s.policy == DrawWithReplacement {
			column, err = s.drawWithReplacement(rows, pool)
		} else {
			column, err = s.drawWithRemoval(rows, pool)
		}
		if err != nil {
			return nil, fmt.Errorf("column %d: %w", c, err)
		}
		grid[c] = column
	}
	return grid, nil
}

func (s *Spinner) drawWithRemoval(rows int, pool []Symbol) ([]Symbol, error) {
	remaining := make([]Symbol, len(pool))
	copy(remaining, pool)

	column := make([]Symbol, 0, rows)
	for len(column) < rows {
		idx, err := s.rng.GenerateInt(int64(len(remaining)))
		if err != nil {
			return nil, err
		}
		column = append(column, remaining[idx])

		last := len(remaining) - 1
		remaining[idx] = remaining[last]
		remaining = remaining[:last]
	}
	return column, nil
}

func (s *Spinner) drawWithReplacement(rows int, pool []Symbol) ([]Symbol, error) {
	column := make([]Symbol, rows)
	for r := range column {
		idx, err := s.rng.GenerateInt(int64(len(pool)))
		if err != nil {
			return nil, err
		}
		column[r] = pool[idx]
	}
	return column, nil
}
