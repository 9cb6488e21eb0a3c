package money

import "testing"

func TestFromStringNormalizesToTwoDecimals(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"1.235987654321", "1.24"},
		{"1.004987654321", "1.00"},
		{"4.55", "4.55"},
		{"0.005", "0.01"},
		{"1", "1.00"},
		{"0", "0.00"},
	}

	for _, tc := range cases {
		v, err := FromString(tc.in)
		if err != nil {
			t.Fatalf("FromString(%q): %v", tc.in, err)
		}
		if v.String() != tc.want {
			t.Fatalf("FromString(%q) = %s, want %s", tc.in, v.String(), tc.want)
		}
	}
}

func TestFromStringRejectsGarbage(t *testing.T) {
	if _, err := FromString("abc"); err == nil {
		t.Fatalf("expected error for non-numeric input")
	}
	if _, err := FromString(""); err == nil {
		t.Fatalf("expected error for empty input")
	}
}

func TestEqualityOnNormalizedValue(t *testing.T) {
	a, _ := FromString("1.235987654321")
	b, _ := FromString("1.24")
	if !a.Equals(b) {
		t.Fatalf("expected %s to equal %s after normalization", a, b)
	}
}

func TestArithmetic(t *testing.T) {
	remaining, _ := FromString("4.55")
	paid, _ := FromString("1.23")

	after := remaining.Subtract(paid)
	if after.String() != "3.32" {
		t.Fatalf("4.55 - 1.23 = %s, want 3.32", after)
	}

	back := after.Add(paid)
	if !back.Equals(remaining) {
		t.Fatalf("expected addition to invert subtraction, got %s", back)
	}
}

func TestSubtractionMayGoNegative(t *testing.T) {
	a, _ := FromString("1.00")
	b, _ := FromString("2.50")

	diff := a.Subtract(b)
	if !diff.IsNegative() {
		t.Fatalf("expected negative result, got %s", diff)
	}
}

func TestDivideByRoundsHalfUp(t *testing.T) {
	total, _ := FromString("1.00")
	share := total.DivideBy(3)
	if share.String() != "0.33" {
		t.Fatalf("1.00 / 3 = %s, want 0.33", share)
	}

	total, _ = FromString("0.05")
	share = total.DivideBy(2)
	if share.String() != "0.03" {
		t.Fatalf("0.05 / 2 = %s, want 0.03", share)
	}
}

func TestPredicates(t *testing.T) {
	zero := Zero()
	if !zero.IsZero() {
		t.Fatalf("Zero() should be zero")
	}

	one, _ := FromString("1.00")
	if !one.IsGreaterThan(zero) {
		t.Fatalf("1.00 should be greater than zero")
	}
	if zero.IsGreaterThan(one) {
		t.Fatalf("zero should not be greater than 1.00")
	}
}

func TestJSONRoundTrip(t *testing.T) {
	v, _ := FromString("3.30")
	data, err := v.MarshalJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != "3.30" {
		t.Fatalf("marshal = %s, want 3.30", data)
	}

	var parsed Value
	if err := parsed.UnmarshalJSON([]byte(`"4.556"`)); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if parsed.String() != "4.56" {
		t.Fatalf("unmarshal quoted = %s, want 4.56", parsed)
	}
}
