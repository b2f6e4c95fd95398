package types

import "testing"

func TestParseCurrencyMode(t *testing.T) {
	tests := []struct {
		in      string
		want    CurrencyMode
		wantErr bool
	}{
		{"USD", CurrencyUSD, false},
		{"usd", CurrencyUSD, false},
		{" Local ", CurrencyLocal, false},
		{"LOCAL", CurrencyLocal, false},
		{"EUR", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := ParseCurrencyMode(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseCurrencyMode(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseCurrencyMode(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFallbackString(t *testing.T) {
	f := Fallback{Field: "exchange_rate", Key: "Chile", Substitute: "1"}
	if got := f.String(); got != `exchange_rate "Chile" unresolved, using 1` {
		t.Errorf("String() = %q", got)
	}
}
