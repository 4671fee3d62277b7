package core

import "testing"

func TestParseMoney(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"12.34", "12.34", true},
		{"12,34", "12.34", true},
		{" 100 ", "100", true},
		{"0", "0", true},
		{"-5.50", "-5.5", true},
		{"", "", false},
		{"abc", "", false},
		{"1.2.3", "", false},
	}
	for _, tc := range cases {
		m, err := ParseMoney(tc.in)
		if tc.ok && err != nil {
			t.Fatalf("ParseMoney(%q) unexpected error: %v", tc.in, err)
		}
		if !tc.ok {
			if err == nil {
				t.Fatalf("ParseMoney(%q) expected error", tc.in)
			}
			if !IsValidation(err) {
				t.Fatalf("ParseMoney(%q) expected validation error, got %v", tc.in, err)
			}
			continue
		}
		if m.String() != tc.want {
			t.Fatalf("ParseMoney(%q) = %s, want %s", tc.in, m, tc.want)
		}
	}
}

func TestMoneyArithmeticIsExact(t *testing.T) {
	// 0.1 + 0.2 famously fails under float64.
	sum := MustMoney("0.1").Add(MustMoney("0.2"))
	if !sum.Equal(MustMoney("0.3")) {
		t.Fatalf("0.1 + 0.2 = %s, want 0.3", sum)
	}

	rem := MustMoney("200").Sub(MustMoney("80"))
	if !rem.Equal(MustMoney("120")) {
		t.Fatalf("200 - 80 = %s, want 120", rem)
	}
}

func TestZeroMoney(t *testing.T) {
	z := ZeroMoney()
	if z.Positive() || z.Negative() {
		t.Fatalf("zero money must have no sign")
	}
	if !z.Equal(MustMoney("0")) {
		t.Fatalf("zero money must equal parsed 0")
	}
}
