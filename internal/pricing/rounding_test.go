package pricing

import (
	"math"
	"testing"
)

func TestToTwoDecimals(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{1.005, 1}, // 1.005 is 1.00499... in binary
		{1.006, 1.01},
		{2.5, 2.5},
		{0.125, 0.13},
		{-0.125, -0.13},
		{182.70000000000002, 182.7},
		{-0.001, 0},
		{1e9 + 0.456, 1e9 + 0.46},
	}
	for _, tt := range tests {
		if got := ToTwoDecimals(tt.in); got != tt.want {
			t.Errorf("ToTwoDecimals(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestToTwoDecimals_NoNegativeZero(t *testing.T) {
	if got := ToTwoDecimals(-0.004); math.Signbit(got) {
		t.Fatalf("ToTwoDecimals(-0.004) = %v, want positive zero", got)
	}
}

func TestToTwoDecimals_NonFinitePropagates(t *testing.T) {
	if got := ToTwoDecimals(math.NaN()); !math.IsNaN(got) {
		t.Fatalf("NaN in, %v out", got)
	}
	if got := ToTwoDecimals(math.Inf(1)); !math.IsInf(got, 1) {
		t.Fatalf("+Inf in, %v out", got)
	}
	if got := ToTwoDecimals(math.Inf(-1)); !math.IsInf(got, -1) {
		t.Fatalf("-Inf in, %v out", got)
	}
}

func TestToTwoDecimals_Idempotent(t *testing.T) {
	values := []float64{0, 0.1, 0.005, 1.015, 2.675, 99.995, 1234.5678, -45.555, 1e6 / 3, 8591.700000001}
	for i := 0; i < 2000; i++ {
		values = append(values, float64(i)*0.0137-7.3)
	}
	for _, v := range values {
		once := ToTwoDecimals(v)
		if twice := ToTwoDecimals(once); twice != once {
			t.Fatalf("not idempotent for %v: %v then %v", v, once, twice)
		}
	}
}
