package attribution

import "testing"

func TestPercentString(t *testing.T) {
	tests := []struct {
		in   Percent
		want string
	}{
		{in: 0.05, want: "5.00%"},
		{in: -0.0123, want: "-1.23%"},
		{in: 0, want: "0.00%"},
		{in: 1, want: "100.00%"},
	}
	for _, tt := range tests {
		if got := tt.in.String(); got != tt.want {
			t.Errorf("Percent(%v).String() = %q want %q", float64(tt.in), got, tt.want)
		}
	}
}

func TestPercentSignedString(t *testing.T) {
	tests := []struct {
		in   Percent
		want string
	}{
		{in: 0.05, want: "+5.00%"},
		{in: -0.0123, want: "-1.23%"},
		{in: 0, want: "-"},
	}
	for _, tt := range tests {
		if got := tt.in.SignedString(); got != tt.want {
			t.Errorf("Percent(%v).SignedString() = %q want %q", float64(tt.in), got, tt.want)
		}
	}
}

func TestPercentEqual(t *testing.T) {
	if !Percent(0.05).Equal(0.05 + 1e-9) {
		t.Error("near-equal percents should compare equal")
	}
	if Percent(0.05).Equal(0.051) {
		t.Error("distinct percents should not compare equal")
	}
}
