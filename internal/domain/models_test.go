package domain

import "testing"

func TestMoney(t *testing.T) {
	t.Run("Arithmetic", func(t *testing.T) {
		balance := NewMoney(500, "Rs.")

		won := balance.Sub(NewMoney(30, "Rs.")).Add(NewMoney(60, "Rs."))
		if won.Amount != 530 {
			t.Errorf("Expected 530, got %d", won.Amount)
		}

		lost := balance.Sub(NewMoney(30, "Rs."))
		if lost.Amount != 470 {
			t.Errorf("Expected 470, got %d", lost.Amount)
		}

		if lost.Currency != "Rs." {
			t.Errorf("Expected currency to carry over, got %q", lost.Currency)
		}
	})

	t.Run("CanGoNegative", func(t *testing.T) {
		m := NewMoney(10, "Rs.").Sub(NewMoney(25, "Rs."))
		if m.Amount != -15 {
			t.Errorf("Expected -15, got %d", m.Amount)
		}
	})

	t.Run("String", func(t *testing.T) {
		if s := NewMoney(500, "Rs.").String(); s != "Rs.500" {
			t.Errorf("Expected Rs.500, got %q", s)
		}
		if s := NewMoney(-5, "$").String(); s != "$-5" {
			t.Errorf("Expected $-5, got %q", s)
		}
	})
}

func TestRoundRecordNet(t *testing.T) {
	testCases := []struct {
		name     string
		totalBet int64
		winnings int64
		want     int64
	}{
		{"Win", 30, 60, 30},
		{"Loss", 30, 0, -30},
		{"BreakEven", 30, 30, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r := &RoundRecord{
				TotalBet: NewMoney(tc.totalBet, "Rs."),
				Winnings: NewMoney(tc.winnings, "Rs."),
			}
			if got := r.Net().Amount; got != tc.want {
				t.Errorf("Expected net %d, got %d", tc.want, got)
			}
		})
	}
}
