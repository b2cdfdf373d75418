package game

import (
	"errors"
	"reflect"
	"testing"
)

func TestBuildPool(t *testing.T) {
	table := DefaultSymbols()
	pool := BuildPool(table)

	if len(pool) != 26 {
		t.Fatalf("Expected pool of 26, got %d", len(pool))
	}
	if len(pool) != table.Size() {
		t.Errorf("Expected pool length to equal table size %d, got %d", table.Size(), len(pool))
	}

	counts := make(map[Symbol]int)
	for _, s := range pool {
		counts[s]++
	}
	for s, weight := range table {
		if counts[s] != weight {
			t.Errorf("Symbol %s: expected %d copies, got %d", s, weight, counts[s])
		}
	}

	t.Run("GroupedAndSorted", func(t *testing.T) {
		for i := 1; i < len(pool); i++ {
			if pool[i] < pool[i-1] {
				t.Fatalf("Pool not sorted at %d: %s after %s", i, pool[i], pool[i-1])
			}
		}
	})

	t.Run("Empty", func(t *testing.T) {
		if pool := BuildPool(SymbolTable{}); len(pool) != 0 {
			t.Errorf("Expected empty pool, got %d", len(pool))
		}
	})
}

func TestSymbolTableValidate(t *testing.T) {
	testCases := []struct {
		name    string
		table   SymbolTable
		values  ValueTable
		wantErr bool
	}{
		{"Default", DefaultSymbols(), DefaultValues(), false},
		{"Empty", SymbolTable{}, DefaultValues(), true},
		{"ZeroWeight", SymbolTable{SymbolA: 0}, DefaultValues(), true},
		{"MissingValue", SymbolTable{SymbolA: 1, Symbol("E"): 1}, DefaultValues(), true},
		{"ZeroValue", SymbolTable{SymbolA: 1}, ValueTable{SymbolA: 0}, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.table.Validate(tc.values)
			if tc.wantErr {
				if !errors.Is(err, ErrInvalidTable) {
					t.Errorf("Expected ErrInvalidTable, got %v", err)
				}
				return
			}
			if err != nil {
				t.Errorf("Unexpected error: %v", err)
			}
		})
	}
}

func TestCheckWinnings(t *testing.T) {
	values := DefaultValues()

	t.Run("TwoMatchingRows", func(t *testing.T) {
		// Rows: A A A / B B B / C D C
		grid := Grid{
			{SymbolA, SymbolB, SymbolC},
			{SymbolA, SymbolB, SymbolD},
			{SymbolA, SymbolB, SymbolC},
		}

		result := CheckWinnings(grid, 10, 3, values)
		if result.Winnings != 110 {
			t.Errorf("Expected winnings 110, got %d", result.Winnings)
		}
		if !reflect.DeepEqual(result.Lines, []int{1, 2}) {
			t.Errorf("Expected lines [1 2], got %v", result.Lines)
		}
	})

	t.Run("AllIdenticalColumns", func(t *testing.T) {
		column := []Symbol{SymbolD, SymbolC, SymbolA}
		grid := Grid{column, column, column}

		result := CheckWinnings(grid, 5, 3, values)
		want := (values[SymbolD] + values[SymbolC] + values[SymbolA]) * 5
		if result.Winnings != want {
			t.Errorf("Expected winnings %d, got %d", want, result.Winnings)
		}
		if !reflect.DeepEqual(result.Lines, []int{1, 2, 3}) {
			t.Errorf("Expected lines [1 2 3], got %v", result.Lines)
		}
	})

	t.Run("RowsBeyondLinesIgnored", func(t *testing.T) {
		// Only row 2 matches.
		grid := Grid{
			{SymbolA, SymbolB, SymbolC},
			{SymbolB, SymbolA, SymbolC},
			{SymbolD, SymbolD, SymbolC},
		}

		for lines := 1; lines <= 2; lines++ {
			result := CheckWinnings(grid, 10, lines, values)
			if result.Winnings != 0 || len(result.Lines) != 0 {
				t.Errorf("lines=%d: expected no win, got %d on %v", lines, result.Winnings, result.Lines)
			}
		}

		result := CheckWinnings(grid, 10, 3, values)
		if result.Winnings != 40 || !reflect.DeepEqual(result.Lines, []int{3}) {
			t.Errorf("Expected 40 on line 3, got %d on %v", result.Winnings, result.Lines)
		}
	})

	t.Run("NoWinIsEmptyNotNil", func(t *testing.T) {
		grid := Grid{
			{SymbolA, SymbolB, SymbolC},
			{SymbolB, SymbolC, SymbolD},
			{SymbolC, SymbolD, SymbolA},
		}

		result := CheckWinnings(grid, 10, 3, values)
		if result.Lines == nil {
			t.Error("Expected non-nil empty lines")
		}
		if result.Winnings != 0 {
			t.Errorf("Expected no winnings, got %d", result.Winnings)
		}
	})

	t.Run("LinesClampedToRows", func(t *testing.T) {
		grid := Grid{{SymbolA}, {SymbolA}}

		result := CheckWinnings(grid, 1, 3, values)
		if !reflect.DeepEqual(result.Lines, []int{1}) {
			t.Errorf("Expected lines [1], got %v", result.Lines)
		}
	})

	t.Run("EmptyGrid", func(t *testing.T) {
		if result := CheckWinnings(nil, 10, 3, values); result.Winnings != 0 {
			t.Errorf("Expected no winnings, got %d", result.Winnings)
		}
	})
}

func TestFormat(t *testing.T) {
	grid := Grid{
		{SymbolA, SymbolB, SymbolC},
		{SymbolA, SymbolB, SymbolD},
		{SymbolA, SymbolB, SymbolC},
	}

	want := "A | A | A\nB | B | B\nC | D | C\n"
	if got := FormatGrid(grid); got != want {
		t.Errorf("Expected:\n%s\ngot:\n%s", want, got)
	}

	if got := FormatLines([]int{1, 3}); got != "1 3" {
		t.Errorf("Expected \"1 3\", got %q", got)
	}
	if got := FormatLines([]int{}); got != "" {
		t.Errorf("Expected empty string, got %q", got)
	}

	if row := grid.Row(2); !reflect.DeepEqual(row, []Symbol{SymbolC, SymbolD, SymbolC}) {
		t.Errorf("Expected row C D C, got %v", row)
	}
}
