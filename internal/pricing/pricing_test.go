package pricing

import (
	"errors"
	"math"
	"testing"
)

func TestComputeTotal(t *testing.T) {
	tests := []struct {
		name        string
		rate        float64
		length      float64
		width       float64
		holes       int
		bigHoles    int
		addCharges  float64
		want        float64
		wantErr     bool
	}{
		{
			// base=600, holes=20, big=25, add=50 -> subtotal=695 -> 695*1.18=820.10
			name:       "reference job",
			rate:       100,
			length:     2,
			width:      3,
			holes:      2,
			bigHoles:   1,
			addCharges: 50,
			want:       820.10,
		},
		{
			name:   "base only",
			rate:   250,
			length: 1.5,
			width:  0.8,
			want:   354.00, // 300 * 1.18
		},
		{
			name:       "surcharges only on tiny pane",
			rate:       10,
			length:     0.1,
			width:      0.1,
			holes:      1,
			bigHoles:   1,
			addCharges: 5,
			want:       47.32, // (0.1 + 10 + 25 + 5) * 1.18 = 47.318
		},
		{name: "zero rate", rate: 0, length: 2, width: 3, wantErr: true},
		{name: "negative rate", rate: -10, length: 2, width: 3, wantErr: true},
		{name: "zero length", rate: 100, length: 0, width: 3, wantErr: true},
		{name: "negative width", rate: 100, length: 2, width: -3, wantErr: true},
		{name: "negative holes", rate: 100, length: 2, width: 3, holes: -1, wantErr: true},
		{name: "negative big holes", rate: 100, length: 2, width: 3, bigHoles: -2, wantErr: true},
		{name: "negative add charges", rate: 100, length: 2, width: 3, addCharges: -0.01, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeTotal(tt.rate, tt.length, tt.width, tt.holes, tt.bigHoles, tt.addCharges)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got total %v", got)
				}
				if !errors.Is(err, ErrInvalidInput) {
					t.Fatalf("expected ErrInvalidInput, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("compute total: %v", err)
			}
			if got != tt.want {
				t.Fatalf("total = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestComputeTotalRoundsToTwoDecimals(t *testing.T) {
	// subtotal = 0.1*0.5*1 = 0.05, total = 0.059 -> 0.06
	got, err := ComputeTotal(1, 0.1, 0.5, 0, 0, 0)
	if err != nil {
		t.Fatalf("compute total: %v", err)
	}
	if got != 0.06 {
		t.Fatalf("total = %v, want 0.06", got)
	}
}

func TestComputeTotalMatchesGSTFormula(t *testing.T) {
	cases := []struct {
		rate, length, width float64
		holes, bigHoles     int
		addCharges          float64
	}{
		{100, 2, 3, 2, 1, 50},
		{75.5, 1.2, 0.9, 0, 0, 0},
		{320, 2.44, 1.22, 4, 2, 125.75},
		{18.9, 10, 10, 100, 0, 0.01},
	}
	for _, c := range cases {
		got, err := ComputeTotal(c.rate, c.length, c.width, c.holes, c.bigHoles, c.addCharges)
		if err != nil {
			t.Fatalf("compute total: %v", err)
		}
		subtotal := c.length*c.width*c.rate + float64(c.holes)*HoleCharge + float64(c.bigHoles)*BigHoleCharge + c.addCharges
		want := math.Round(subtotal*1.18*100) / 100
		if got != want {
			t.Fatalf("total = %v, want round2(subtotal*1.18) = %v", got, want)
		}
	}
}

func TestComputeTotalMonotonic(t *testing.T) {
	base := func() (float64, float64, float64, int, int, float64) {
		return 100.0, 2.0, 3.0, 2, 1, 50.0
	}
	rate, length, width, holes, bigHoles, add := base()
	ref, err := ComputeTotal(rate, length, width, holes, bigHoles, add)
	if err != nil {
		t.Fatalf("compute total: %v", err)
	}

	bumps := []struct {
		name string
		eval func() (float64, error)
	}{
		{"rate", func() (float64, error) { return ComputeTotal(rate+1, length, width, holes, bigHoles, add) }},
		{"length", func() (float64, error) { return ComputeTotal(rate, length+0.5, width, holes, bigHoles, add) }},
		{"width", func() (float64, error) { return ComputeTotal(rate, length, width+0.5, holes, bigHoles, add) }},
		{"holes", func() (float64, error) { return ComputeTotal(rate, length, width, holes+1, bigHoles, add) }},
		{"big holes", func() (float64, error) { return ComputeTotal(rate, length, width, holes, bigHoles+1, add) }},
		{"add charges", func() (float64, error) { return ComputeTotal(rate, length, width, holes, bigHoles, add+10) }},
	}
	for _, b := range bumps {
		got, err := b.eval()
		if err != nil {
			t.Fatalf("%s bump: %v", b.name, err)
		}
		if got < ref {
			t.Fatalf("total decreased when increasing %s: %v < %v", b.name, got, ref)
		}
	}
}
