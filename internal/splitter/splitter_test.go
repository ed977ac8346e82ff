package splitter

import (
	"testing"

	"github.com/splitledger/splitledger/internal/apperr"
	"github.com/splitledger/splitledger/internal/models"
)

func sumOf(m map[string]models.Money) models.Money {
	var s models.Money
	for _, v := range m {
		s += v
	}
	return s
}

func TestEqualSplit(t *testing.T) {
	tests := []struct {
		name         string
		total        models.Money
		participants []string
		wantErrKind  apperr.ValidationKind
		want         map[string]models.Money
	}{
		{
			name:         "divides evenly",
			total:        9000,
			participants: []string{"b", "c"},
			want:         map[string]models.Money{"b": 4500, "c": 4500},
		},
		{
			name:         "remainder goes to first participants by id",
			total:        10000,
			participants: []string{"c", "a", "b"}, // 100.00 / 3
			want:         map[string]models.Money{"a": 3334, "b": 3333, "c": 3333},
		},
		{
			name:         "two remainder units",
			total:        502,
			participants: []string{"p3", "p1", "p2", "p4", "p5"},
			want:         map[string]models.Money{"p1": 101, "p2": 101, "p3": 100, "p4": 100, "p5": 100},
		},
		{
			name:         "single participant takes everything",
			total:        1234,
			participants: []string{"only"},
			want:         map[string]models.Money{"only": 1234},
		},
		{
			name:         "empty participants",
			total:        1000,
			participants: nil,
			wantErrKind:  apperr.EmptyParticipants,
		},
		{
			name:         "duplicate participant",
			total:        1000,
			participants: []string{"a", "b", "a"},
			wantErrKind:  apperr.DuplicateParticipant,
		},
		{
			name:         "zero total",
			total:        0,
			participants: []string{"a"},
			wantErrKind:  apperr.InvalidAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Equal{}.Split(tt.total, tt.participants)
			if tt.wantErrKind != "" {
				if !apperr.IsValidation(err, tt.wantErrKind) {
					t.Fatalf("Split() error = %v, want kind %s", err, tt.wantErrKind)
				}
				return
			}
			if err != nil {
				t.Fatalf("Split() unexpected error: %v", err)
			}
			if sumOf(got) != tt.total {
				t.Errorf("splits sum to %s, want %s", sumOf(got), tt.total)
			}
			for p, amt := range tt.want {
				if got[p] != amt {
					t.Errorf("participant %s = %s, want %s", p, got[p], amt)
				}
			}
		})
	}
}

func TestEqualSplitDeterministic(t *testing.T) {
	// Same input, shuffled order: the remainder must land on the same
	// participants every time.
	first, err := Equal{}.Split(1001, []string{"x", "m", "a"})
	if err != nil {
		t.Fatal(err)
	}
	second, err := Equal{}.Split(1001, []string{"m", "a", "x"})
	if err != nil {
		t.Fatal(err)
	}
	for p, amt := range first {
		if second[p] != amt {
			t.Errorf("participant %s: %s vs %s across orderings", p, amt, second[p])
		}
	}
	if first["a"] != 334 {
		t.Errorf("remainder should go to lowest id, a = %s", first["a"])
	}
}

func TestPercentageSplit(t *testing.T) {
	tests := []struct {
		name         string
		total        models.Money
		participants []string
		percents     map[string]int
		wantErrKind  apperr.ValidationKind
		want         map[string]models.Money
	}{
		{
			name:         "clean percentages",
			total:        20000,
			participants: []string{"a", "b"},
			percents:     map[string]int{"a": 60, "b": 40},
			want:         map[string]models.Money{"a": 12000, "b": 8000},
		},
		{
			name:         "rounding drift corrected",
			total:        1000, // 10.00 at 33/33/34
			participants: []string{"a", "b", "c"},
			percents:     map[string]int{"a": 33, "b": 33, "c": 34},
			want:         map[string]models.Money{"a": 330, "b": 330, "c": 340},
		},
		{
			name:         "zero percent participant owes nothing",
			total:        5000,
			participants: []string{"a", "b", "c"},
			percents:     map[string]int{"a": 100, "b": 0, "c": 0},
			want:         map[string]models.Money{"a": 5000, "b": 0, "c": 0},
		},
		{
			name:         "sum below 100 rejected",
			total:        1000,
			participants: []string{"a", "b"},
			percents:     map[string]int{"a": 50, "b": 49},
			wantErrKind:  apperr.PercentageMismatch,
		},
		{
			name:         "sum above 100 rejected",
			total:        1000,
			participants: []string{"a", "b"},
			percents:     map[string]int{"a": 50, "b": 51},
			wantErrKind:  apperr.PercentageMismatch,
		},
		{
			name:         "negative percentage rejected",
			total:        1000,
			participants: []string{"a", "b"},
			percents:     map[string]int{"a": 110, "b": -10},
			wantErrKind:  apperr.PercentageMismatch,
		},
		{
			name:         "missing participant input",
			total:        1000,
			participants: []string{"a", "b"},
			percents:     map[string]int{"a": 100},
			wantErrKind:  apperr.ParticipantMismatch,
		},
		{
			name:         "input for unknown participant",
			total:        1000,
			participants: []string{"a"},
			percents:     map[string]int{"a": 100, "ghost": 0},
			wantErrKind:  apperr.ParticipantMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Percentage{Percents: tt.percents}.Split(tt.total, tt.participants)
			if tt.wantErrKind != "" {
				if !apperr.IsValidation(err, tt.wantErrKind) {
					t.Fatalf("Split() error = %v, want kind %s", err, tt.wantErrKind)
				}
				return
			}
			if err != nil {
				t.Fatalf("Split() unexpected error: %v", err)
			}
			if sumOf(got) != tt.total {
				t.Errorf("splits sum to %s, want %s", sumOf(got), tt.total)
			}
			for p, amt := range tt.want {
				if got[p] != amt {
					t.Errorf("participant %s = %s, want %s", p, got[p], amt)
				}
			}
		})
	}
}

func TestPercentageRemainderSkipsZeroWeight(t *testing.T) {
	// 10.01 at 50/50/0: the leftover cent must not land on the 0%
	// participant even when it sorts first.
	got, err := Percentage{Percents: map[string]int{"a": 0, "b": 50, "c": 50}}.Split(1001, []string{"a", "b", "c"})
	if err != nil {
		t.Fatal(err)
	}
	if got["a"] != 0 {
		t.Errorf("zero-percent participant got %s", got["a"])
	}
	if got["b"]+got["c"] != 1001 {
		t.Errorf("b+c = %s, want 10.01", got["b"]+got["c"])
	}
	if got["b"] != 501 {
		t.Errorf("remainder should go to b (lowest weighted id), b = %s", got["b"])
	}
}

func TestExactSplit(t *testing.T) {
	tests := []struct {
		name         string
		total        models.Money
		participants []string
		amounts      map[string]models.Money
		wantErrKind  apperr.ValidationKind
	}{
		{
			name:         "amounts match total",
			total:        30000,
			participants: []string{"a", "b", "c"},
			amounts:      map[string]models.Money{"a": 10000, "b": 10000, "c": 10000},
		},
		{
			name:         "one unit drift tolerated",
			total:        1000,
			participants: []string{"a", "b"},
			amounts:      map[string]models.Money{"a": 500, "b": 501},
		},
		{
			name:         "short by a full unit rejected",
			total:        30000,
			participants: []string{"a", "b", "c"},
			amounts:      map[string]models.Money{"a": 10000, "b": 10000, "c": 9900},
			wantErrKind:  apperr.ExactAmountMismatch,
		},
		{
			name:         "negative amount rejected",
			total:        1000,
			participants: []string{"a", "b"},
			amounts:      map[string]models.Money{"a": 1100, "b": -100},
			wantErrKind:  apperr.InvalidAmount,
		},
		{
			name:         "missing participant input",
			total:        1000,
			participants: []string{"a", "b"},
			amounts:      map[string]models.Money{"a": 1000},
			wantErrKind:  apperr.ParticipantMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Exact{Amounts: tt.amounts}.Split(tt.total, tt.participants)
			if tt.wantErrKind != "" {
				if !apperr.IsValidation(err, tt.wantErrKind) {
					t.Fatalf("Split() error = %v, want kind %s", err, tt.wantErrKind)
				}
				return
			}
			if err != nil {
				t.Fatalf("Split() unexpected error: %v", err)
			}
			for p, amt := range tt.amounts {
				if got[p] != amt {
					t.Errorf("participant %s = %s, want %s (exact amounts pass through)", p, got[p], amt)
				}
			}
		})
	}
}

func TestSharesSplit(t *testing.T) {
	tests := []struct {
		name         string
		total        models.Money
		participants []string
		shares       map[string]int
		wantErrKind  apperr.ValidationKind
		want         map[string]models.Money
	}{
		{
			name:         "proportional to shares",
			total:        9000,
			participants: []string{"a", "b", "c"},
			shares:       map[string]int{"a": 1, "b": 1, "c": 1},
			want:         map[string]models.Money{"a": 3000, "b": 3000, "c": 3000},
		},
		{
			name:         "uneven shares with remainder",
			total:        1000,
			participants: []string{"a", "b", "c"},
			shares:       map[string]int{"a": 1, "b": 1, "c": 1},
			want:         map[string]models.Money{"a": 334, "b": 333, "c": 333},
		},
		{
			name:         "weighted shares",
			total:        10000,
			participants: []string{"a", "b"},
			shares:       map[string]int{"a": 3, "b": 1},
			want:         map[string]models.Money{"a": 7500, "b": 2500},
		},
		{
			name:         "zero share rejected",
			total:        1000,
			participants: []string{"a", "b"},
			shares:       map[string]int{"a": 1, "b": 0},
			wantErrKind:  apperr.InvalidShares,
		},
		{
			name:         "negative share rejected",
			total:        1000,
			participants: []string{"a", "b"},
			shares:       map[string]int{"a": 2, "b": -1},
			wantErrKind:  apperr.InvalidShares,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Shares{Shares: tt.shares}.Split(tt.total, tt.participants)
			if tt.wantErrKind != "" {
				if !apperr.IsValidation(err, tt.wantErrKind) {
					t.Fatalf("Split() error = %v, want kind %s", err, tt.wantErrKind)
				}
				return
			}
			if err != nil {
				t.Fatalf("Split() unexpected error: %v", err)
			}
			if sumOf(got) != tt.total {
				t.Errorf("splits sum to %s, want %s", sumOf(got), tt.total)
			}
			for p, amt := range tt.want {
				if got[p] != amt {
					t.Errorf("participant %s = %s, want %s", p, got[p], amt)
				}
			}
		})
	}
}
