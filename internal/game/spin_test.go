package game

import (
	"errors"
	"testing"

	"github.com/alexbotov/slots/internal/config"
	"github.com/alexbotov/slots/internal/rng"
)

// scriptedSource replays fixed draws and then fails
type scriptedSource struct {
	draws []int64
	err   error
}

func (s *scriptedSource) GenerateInt(max int64) (int64, error) {
	if len(s.draws) == 0 {
		if s.err != nil {
			return 0, s.err
		}
		return 0, nil
	}
	v := s.draws[0]
	s.draws = s.draws[1:]
	return v % max, nil
}

var errSourceDown = errors.New("entropy source unavailable")

func TestSpin(t *testing.T) {
	pool := BuildPool(DefaultSymbols())

	for _, policy := range []DrawPolicy{DrawWithRemoval, DrawWithReplacement} {
		t.Run(policy.String(), func(t *testing.T) {
			spinner := NewSpinner(rng.NewSeeded(1), policy)

			for i := 0; i < 200; i++ {
				grid, err := spinner.Spin(3, 5, pool)
				if err != nil {
					t.Fatalf("Spin failed: %v", err)
				}
				if grid.Columns() != 5 || grid.Rows() != 3 {
					t.Fatalf("Expected 5x3 grid, got %dx%d", grid.Columns(), grid.Rows())
				}
				for _, column := range grid {
					if len(column) != 3 {
						t.Fatalf("Expected column of 3, got %d", len(column))
					}
					for _, s := range column {
						if _, ok := DefaultSymbols()[s]; !ok {
							t.Fatalf("Unexpected symbol %q", s)
						}
					}
				}
			}
		})
	}

	t.Run("RemovalRespectsWeights", func(t *testing.T) {
		table := SymbolTable{SymbolA: 1, SymbolB: 2}
		spinner := NewSpinner(rng.NewSeeded(9), DrawWithRemoval)

		for i := 0; i < 100; i++ {
			grid, err := spinner.Spin(3, 4, BuildPool(table))
			if err != nil {
				t.Fatalf("Spin failed: %v", err)
			}
			for _, column := range grid {
				counts := make(map[Symbol]int)
				for _, s := range column {
					counts[s]++
				}
				if counts[SymbolA] != 1 || counts[SymbolB] != 2 {
					t.Fatalf("Expected one A and two B, got %v", column)
				}
			}
		}
	})

	t.Run("RemovalDoesNotMutatePool", func(t *testing.T) {
		spinner := NewSpinner(rng.NewSeeded(3), DrawWithRemoval)
		before := append([]Symbol(nil), pool...)

		if _, err := spinner.Spin(3, 3, pool); err != nil {
			t.Fatalf("Spin failed: %v", err)
		}
		for i := range pool {
			if pool[i] != before[i] {
				t.Fatalf("Pool modified at %d", i)
			}
		}
	})

	t.Run("ScriptedDraws", func(t *testing.T) {
		// Removal swaps the last symbol into the drawn slot: pool[0] is A,
		// then D moves to the front.
		spinner := NewSpinner(&scriptedSource{}, DrawWithRemoval)

		grid, err := spinner.Spin(3, 3, pool)
		if err != nil {
			t.Fatalf("Spin failed: %v", err)
		}
		if got := FormatGrid(grid); got != "A | A | A\nD | D | D\nD | D | D\n" {
			t.Errorf("Unexpected grid:\n%s", got)
		}
	})

	t.Run("SameSeedSameGrid", func(t *testing.T) {
		a, _ := NewSpinner(rng.NewSeeded(42), DrawWithRemoval).Spin(3, 3, pool)
		b, _ := NewSpinner(rng.NewSeeded(42), DrawWithRemoval).Spin(3, 3, pool)
		if FormatGrid(a) != FormatGrid(b) {
			t.Errorf("Expected identical grids for identical seeds")
		}
	})
}

func TestSpinErrors(t *testing.T) {
	pool := BuildPool(DefaultSymbols())

	t.Run("InvalidDimensions", func(t *testing.T) {
		spinner := NewSpinner(rng.NewSeeded(1), DrawWithRemoval)
		if _, err := spinner.Spin(0, 3, pool); !errors.Is(err, ErrInvalidDimensions) {
			t.Errorf("Expected ErrInvalidDimensions, got %v", err)
		}
		if _, err := spinner.Spin(3, 0, pool); !errors.Is(err, ErrInvalidDimensions) {
			t.Errorf("Expected ErrInvalidDimensions, got %v", err)
		}
	})

	t.Run("EmptyPool", func(t *testing.T) {
		spinner := NewSpinner(rng.NewSeeded(1), DrawWithReplacement)
		if _, err := spinner.Spin(3, 3, nil); !errors.Is(err, ErrPoolExhausted) {
			t.Errorf("Expected ErrPoolExhausted, got %v", err)
		}
	})

	t.Run("RowsExceedPool", func(t *testing.T) {
		small := BuildPool(SymbolTable{SymbolA: 1, SymbolB: 1})

		if _, err := NewSpinner(rng.NewSeeded(1), DrawWithRemoval).Spin(3, 1, small); !errors.Is(err, ErrPoolExhausted) {
			t.Errorf("Expected ErrPoolExhausted under removal, got %v", err)
		}
		if _, err := NewSpinner(rng.NewSeeded(1), DrawWithReplacement).Spin(3, 1, small); err != nil {
			t.Errorf("Expected replacement draws to allow more rows than symbols, got %v", err)
		}
	})

	t.Run("SourceFailure", func(t *testing.T) {
		spinner := NewSpinner(&scriptedSource{draws: []int64{0, 0, 0}, err: errSourceDown}, DrawWithRemoval)
		if _, err := spinner.Spin(3, 3, pool); !errors.Is(err, errSourceDown) {
			t.Errorf("Expected wrapped source error, got %v", err)
		}
	})
}

func TestParseDrawPolicy(t *testing.T) {
	testCases := []struct {
		input   string
		want    DrawPolicy
		wantErr bool
	}{
		{"", DrawWithRemoval, false},
		{config.DrawPolicyRemoval, DrawWithRemoval, false},
		{config.DrawPolicyReplacement, DrawWithReplacement, false},
		{"shuffle", 0, true},
	}

	for _, tc := range testCases {
		got, err := ParseDrawPolicy(tc.input)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseDrawPolicy(%q): unexpected error state %v", tc.input, err)
			continue
		}
		if !tc.wantErr && got != tc.want {
			t.Errorf("ParseDrawPolicy(%q): expected %s, got %s", tc.input, tc.want, got)
		}
	}
}
