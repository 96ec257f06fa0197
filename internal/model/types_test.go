package model

import "testing"

func TestQuote_Change(t *testing.T) {
	q := Quote{Last: 1894300, PrevClose: 1880000}
	if got := q.Change(); got != 14300 {
		t.Errorf("Change() = %d, want 14300", got)
	}

	q = Quote{Last: 1880000, PrevClose: 1894300}
	if got := q.Change(); got != -14300 {
		t.Errorf("Change() = %d, want -14300", got)
	}
}

func TestQuote_Spread(t *testing.T) {
	tests := []struct {
		name string
		q    Quote
		want int64
	}{
		{"both sides", Quote{Bid: 1894200, Ask: 1894500}, 300},
		{"missing bid", Quote{Ask: 1894500}, 0},
		{"missing ask", Quote{Bid: 1894200}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.q.Spread(); got != tt.want {
				t.Errorf("Spread() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestPosition_MarketValue(t *testing.T) {
	p := Position{Symbol: "AAPL", Quantity: 10, AvgCost: 1800000}
	if got := p.MarketValue(1894300); got != 18943000 {
		t.Errorf("MarketValue = %d, want 18943000", got)
	}
}

func TestPosition_UnrealizedPL(t *testing.T) {
	p := Position{Symbol: "AAPL", Quantity: 10, AvgCost: 1800000}
	if got := p.UnrealizedPL(1894300); got != 943000 {
		t.Errorf("UnrealizedPL = %d, want 943000", got)
	}

	short := Position{Symbol: "AAPL", Quantity: -10, AvgCost: 1800000}
	if got := short.UnrealizedPL(1894300); got != -943000 {
		t.Errorf("short UnrealizedPL = %d, want -943000", got)
	}
}
