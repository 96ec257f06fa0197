package record

import (
	"testing"

	"github.com/google/uuid"

	"github.com/rmoran/folio-data/internal/config"
	"github.com/rmoran/folio-data/internal/model"
)

func TestDecodeTick(t *testing.T) {
	tests := []struct {
		name    string
		payload any
		want    model.Tick
		wantOK  bool
	}{
		{
			name: "valid tick",
			payload: map[string]any{
				"type":          "tick",
				"id":            "b3c8f9a0-1234-4cde-8f00-aabbccddeeff",
				"symbol":        "AAPL",
				"price_dollars": "189.43",
				"size":          float64(100),
				"ts":            float64(1705320000000000),
			},
			want: model.Tick{
				ID:         uuid.MustParse("b3c8f9a0-1234-4cde-8f00-aabbccddeeff"),
				Symbol:     "AAPL",
				Price:      1894300,
				Size:       100,
				ExchangeTS: 1705320000000000,
				ReceivedAt: 42,
			},
			wantOK: true,
		},
		{
			name: "missing id falls back to nil uuid",
			payload: map[string]any{
				"type":          "tick",
				"symbol":        "MSFT",
				"price_dollars": "402.10",
				"size":          float64(5),
				"ts":            float64(1705320001000000),
			},
			want: model.Tick{
				ID:         uuid.Nil,
				Symbol:     "MSFT",
				Price:      4021000,
				Size:       5,
				ExchangeTS: 1705320001000000,
				ReceivedAt: 42,
			},
			wantOK: true,
		},
		{
			name:    "non-tick event",
			payload: map[string]any{"type": "heartbeat"},
			wantOK:  false,
		},
		{
			name:    "missing symbol",
			payload: map[string]any{"type": "tick", "price_dollars": "1.00"},
			wantOK:  false,
		},
		{
			name:    "raw string payload",
			payload: "not json",
			wantOK:  false,
		},
		{
			name:    "nil payload",
			payload: nil,
			wantOK:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := DecodeTick(tt.payload, 42)
			if ok != tt.wantOK {
				t.Fatalf("DecodeTick() ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if got != tt.want {
				t.Errorf("DecodeTick() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestTickRecorder_Transform(t *testing.T) {
	r := NewTickRecorder(config.RecorderConfig{
		BatchSize:     100,
		FlushInterval: 1,
		BufferSize:    10,
	}, nil, nil)

	tick := model.Tick{
		ID:         uuid.MustParse("b3c8f9a0-1234-4cde-8f00-aabbccddeeff"),
		Symbol:     "AAPL",
		Price:      1894300,
		Size:       100,
		ExchangeTS: 1705320000000000,
		ReceivedAt: 1705320000123456,
	}

	row := r.transform(tick)

	if row.ID != "b3c8f9a0-1234-4cde-8f00-aabbccddeeff" {
		t.Errorf("ID = %q", row.ID)
	}
	if row.Symbol != "AAPL" {
		t.Errorf("Symbol = %q, want AAPL", row.Symbol)
	}
	if row.Price != 1894300 {
		t.Errorf("Price = %d, want 1894300", row.Price)
	}
	if row.Size != 100 {
		t.Errorf("Size = %d, want 100", row.Size)
	}
	if row.ExchangeTS != 1705320000000000 {
		t.Errorf("ExchangeTS = %d", row.ExchangeTS)
	}
	if row.ReceivedAt != 1705320000123456 {
		t.Errorf("ReceivedAt = %d", row.ReceivedAt)
	}
}

func TestTickRecorder_EnqueueAfterClose(t *testing.T) {
	r := NewTickRecorder(config.RecorderConfig{
		BatchSize:     100,
		FlushInterval: 1,
		BufferSize:    10,
	}, nil, nil)

	r.input.Close()
	r.Enqueue(model.Tick{Symbol: "AAPL"})

	if got := r.Stats().Dropped; got != 1 {
		t.Errorf("Dropped = %d, want 1", got)
	}
}
