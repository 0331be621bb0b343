package percentile_test

import (
	"testing"

	"github.com/wanglun/leetcode.vim/internal/judge/percentile"
)

func TestCalc(t *testing.T) {
	distribution := []percentile.Tier{
		{Runtime: 10, Share: 20},
		{Runtime: 20, Share: 30},
		{Runtime: 30, Share: 50},
	}

	tests := []struct {
		name    string
		runtime int
		want    float64
	}{
		{"between tiers", 25, 80},
		{"faster than all", 5, 100},
		{"slowest tier", 30, 50},
		{"slower than all", 99, 50},
		{"exact lower tier", 10, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := percentile.Calc(distribution, tt.runtime); got != tt.want {
				t.Errorf("Calc(%d) = %v, want %v", tt.runtime, got, tt.want)
			}
		})
	}
}

func TestCalc_Empty(t *testing.T) {
	if got := percentile.Calc(nil, 25); got != 0 {
		t.Errorf("Calc(nil) = %v, want 0", got)
	}
}

func TestParse(t *testing.T) {
	tiers, err := percentile.Parse(`{"lang": "cpp", "distribution": [["4", 1.5], [8, 2.5], ["12", 96]]}`)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(tiers) != 3 {
		t.Fatalf("expected 3 tiers, got %d", len(tiers))
	}
	if tiers[0].Runtime != 4 || tiers[0].Share != 1.5 {
		t.Errorf("tier 0 = %+v", tiers[0])
	}
	if tiers[1].Runtime != 8 {
		t.Errorf("tier 1 = %+v", tiers[1])
	}
	if got := percentile.Calc(tiers, 8); got != 98.5 {
		t.Errorf("Calc() = %v, want 98.5", got)
	}
}

func TestParse_Empty(t *testing.T) {
	tiers, err := percentile.Parse(percentile.EmptyDistribution)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(tiers) != 0 {
		t.Fatalf("expected no tiers, got %d", len(tiers))
	}
}

func TestParse_Invalid(t *testing.T) {
	inputs := []string{
		`not json`,
		`{"distribution": [["fast", 1.0]]}`,
		`{"distribution": [["4"]]}`,
	}
	for _, in := range inputs {
		if _, err := percentile.Parse(in); err == nil {
			t.Errorf("Parse(%q) expected error", in)
		}
	}
}
