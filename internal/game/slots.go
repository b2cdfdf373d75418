// Package game - symbol tables, pool building and line payouts
package game

import (
	"fmt"
	"sort"
)

// Symbol represents a reel symbol
type Symbol string

const (
	SymbolA Symbol = "A"
	SymbolB Symbol = "B"
	SymbolC Symbol = "C"
	SymbolD Symbol = "D"
)

// SymbolTable maps each symbol to its count in the draw pool
type SymbolTable map[Symbol]int

// ValueTable maps each symbol to its payout multiplier per line
type ValueTable map[Symbol]int64

// DefaultSymbols returns the draw weights of the machine.
// Rarer symbols pay more.
func DefaultSymbols() SymbolTable {
	return SymbolTable{
		SymbolA: 4,
		SymbolB: 6,
		SymbolC: 7,
		SymbolD: 9,
	}
}

// DefaultValues returns the payout multipliers of the machine
func DefaultValues() ValueTable {
	return ValueTable{
		SymbolA: 6,
		SymbolB: 5,
		SymbolC: 4,
		SymbolD: 3,
	}
}

// Symbols returns the table's symbols in sorted order
func (t SymbolTable) Symbols() []Symbol {
	symbols := make([]Symbol, 0, len(t))
	for s := range t {
		symbols = append(symbols, s)
	}
	sort.Slice(symbols, func(i, j int) bool { return symbols[i] < symbols[j] })
	return symbols
}

// Size returns the pool length, the sum of all weights
func (t SymbolTable) Size() int {
	var n int
	for _, w := range t {
		n += w
	}
	return n
}

// Validate checks weights are positive and every symbol has a value
func (t SymbolTable) Validate(values ValueTable) error {
	if len(t) == 0 {
		return fmt.Errorf("%w: symbol table is empty", ErrInvalidTable)
	}
	for _, s := range t.Symbols() {
		if t[s] < 1 {
			return fmt.Errorf("%w: symbol %s has weight %d", ErrInvalidTable, s, t[s])
		}
		v, ok := values[s]
		if !ok {
			return fmt.Errorf("%w: symbol %s has no value", ErrInvalidTable, s)
		}
		if v < 1 {
			return fmt.Errorf("%w: symbol %s has value %d", ErrInvalidTable, s, v)
		}
	}
	return nil
}

// BuildPool expands the table into a flat list where each symbol appears
// exactly weight times, grouped by symbol in sorted order.
func BuildPool(table SymbolTable) []Symbol {
	pool := make([]Symbol, 0, table.Size())
	for _, s := range table.Symbols() {
		for i := 0; i < table[s]; i++ {
			pool = append(pool, s)
		}
	}
	return pool
}

// WinResult is the payout of one evaluated grid
type WinResult struct {
	Winnings int64 `json:"winnings"`
	Lines    []int `json:"lines"` // 1-based, ascending
}

// CheckWinnings pays every line in [0, lines) whose row shows one symbol in
// all columns. Rows at or beyond lines are never evaluated.
func CheckWinnings(grid Grid, bet int64, lines int, values ValueTable) WinResult {
	result := WinResult{Lines: []int{}}

	if len(grid) == 0 {
		return result
	}
	if rows := grid.Rows(); lines > rows {
		lines = rows
	}

	for line := 0; line < lines; line++ {
		symbol := grid[0][line]
		matched := true
		for _, column := range grid[1:] {
			if column[line] != symbol {
				matched = false
				break
			}
		}
		if !matched {
			continue
		}
		result.Winnings += values[symbol] * bet
		result.Lines = append(result.Lines, line+1)
	}

	return result
}
