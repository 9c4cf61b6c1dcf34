package coin

import (
	"testing"

	"github.com/iov-one/covenant/errors"
)

func TestCompareCoin(t *testing.T) {
	cases := map[string]struct {
		a       Coin
		b       Coin
		wantRes int
	}{
		"a greater than b": {
			a:       NewCoin(20, 1234, "ABC"),
			b:       NewCoin(19, 999999999, "ABC"),
			wantRes: 1,
		},
		"a smaller than b": {
			a:       NewCoin(0, -2, "FOO"),
			b:       NewCoin(0, 1, "FOO"),
			wantRes: -1,
		},
		"a greater than b and both negative": {
			a:       NewCoin(-4, -2456, "BAR"),
			b:       NewCoin(-4, -4567, "BAR"),
			wantRes: 1,
		},
		"zero value coins": {
			a:       Coin{},
			b:       Coin{},
			wantRes: 0,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if res := tc.a.Compare(tc.b); res != tc.wantRes {
				t.Fatalf("want %d, got %d", tc.wantRes, res)
			}
		})
	}
}

func TestCoinNegative(t *testing.T) {
	a := NewCoin(456, 985, "ABC")

	n := a.Negative()

	if a.Ticker != n.Ticker {
		t.Fatal("negation must not change the ticker")
	}
	if a.Whole != -n.Whole || a.Fractional != -n.Fractional {
		t.Fatalf("malformed negation: %v", n)
	}
	if nn := a.Negative().Negative(); !a.Equals(nn) {
		t.Fatal("double negation malformed the coin")
	}
}

func TestCoinAdd(t *testing.T) {
	cases := map[string]struct {
		a       Coin
		b       Coin
		want    Coin
		wantErr *errors.Error
	}{
		"plain addition": {
			a:    NewCoin(1, 2, "IOV"),
			b:    NewCoin(3, 4, "IOV"),
			want: NewCoin(4, 6, "IOV"),
		},
		"fractional carry": {
			a:    NewCoin(1, 900000000, "IOV"),
			b:    NewCoin(0, 200000000, "IOV"),
			want: NewCoin(2, 100000000, "IOV"),
		},
		"negative result": {
			a:    NewCoin(2, 0, "IOV"),
			b:    NewCoin(-3, 0, "IOV"),
			want: NewCoin(-1, 0, "IOV"),
		},
		"zero coin without ticker adopts other": {
			a:    Coin{},
			b:    NewCoin(5, 0, "IOV"),
			want: NewCoin(5, 0, "IOV"),
		},
		"currency mismatch": {
			a:       NewCoin(1, 0, "IOV"),
			b:       NewCoin(1, 0, "ETH"),
			wantErr: errors.ErrCurrency,
		},
		"whole overflow": {
			a:       NewCoin(MaxInt, 0, "IOV"),
			b:       NewCoin(1, 0, "IOV"),
			wantErr: errors.ErrOverflow,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got, err := tc.a.Add(tc.b)
			if tc.wantErr != nil {
				if !tc.wantErr.Is(err) {
					t.Fatalf("want %q error, got %+v", tc.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %+v", err)
			}
			if !got.Equals(tc.want) {
				t.Fatalf("want %v, got %v", tc.want, got)
			}
		})
	}
}

func TestCoinSubtract(t *testing.T) {
	a := NewCoin(5, 0, "IOV")
	b := NewCoin(2, 500000000, "IOV")

	got, err := a.Subtract(b)
	if err != nil {
		t.Fatalf("unexpected error: %+v", err)
	}
	if want := NewCoin(2, 500000000, "IOV"); !got.Equals(want) {
		t.Fatalf("want %v, got %v", want, got)
	}

	// subtracting below zero is legal, the sign is carried
	got, err = b.Subtract(a)
	if err != nil {
		t.Fatalf("unexpected error: %+v", err)
	}
	if got.IsNonNegative() {
		t.Fatalf("want a negative result, got %v", got)
	}
}

func TestCoinIsGTE(t *testing.T) {
	cases := map[string]struct {
		a    Coin
		b    Coin
		want bool
	}{
		"greater whole":           {NewCoin(2, 0, "IOV"), NewCoin(1, 999999999, "IOV"), true},
		"equal":                   {NewCoin(1, 5, "IOV"), NewCoin(1, 5, "IOV"), true},
		"smaller fractional":      {NewCoin(1, 4, "IOV"), NewCoin(1, 5, "IOV"), false},
		"different currency":      {NewCoin(9, 0, "IOV"), NewCoin(1, 0, "ETH"), false},
		"negative versus smaller": {NewCoin(-1, 0, "IOV"), NewCoin(-2, 0, "IOV"), true},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if got := tc.a.IsGTE(tc.b); got != tc.want {
				t.Fatalf("want %v, got %v", tc.want, got)
			}
		})
	}
}

func TestCoinValidate(t *testing.T) {
	cases := map[string]struct {
		coin    Coin
		wantErr *errors.Error
	}{
		"valid coin": {
			coin: NewCoin(42, 0, "IOV"),
		},
		"negative valid coin": {
			coin: NewCoin(-42, -5, "IOV"),
		},
		"missing ticker": {
			coin:    NewCoin(1, 0, ""),
			wantErr: errors.ErrCurrency,
		},
		"lowercase ticker": {
			coin:    NewCoin(1, 0, "iov"),
			wantErr: errors.ErrCurrency,
		},
		"whole out of range": {
			coin:    NewCoin(MaxInt+1, 0, "IOV"),
			wantErr: errors.ErrOverflow,
		},
		"fractional out of range": {
			coin:    NewCoin(0, FracUnit, "IOV"),
			wantErr: errors.ErrOverflow,
		},
		"mismatched sign": {
			coin:    NewCoin(1, -1, "IOV"),
			wantErr: errors.ErrState,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := tc.coin.Validate()
			if tc.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %+v", err)
				}
				return
			}
			if !tc.wantErr.Is(err) {
				t.Fatalf("want %q error, got %+v", tc.wantErr, err)
			}
		})
	}
}

func TestCoinString(t *testing.T) {
	if got, want := NewCoin(12, 345, "IOV").String(), "12.000000345 IOV"; got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
	if got, want := NewCoin(-1, -5, "IOV").String(), "-1.000000005 IOV"; got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
}
