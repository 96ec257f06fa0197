package record

import (
	"github.com/google/uuid"

	"github.com/rmoran/folio-data/internal/api"
	"github.com/rmoran/folio-data/internal/model"
)

// DecodeTick extracts a tick from a decoded stream payload. Payloads
// that are not tick events (or not JSON objects at all) return false.
func DecodeTick(payload any, receivedAt int64) (model.Tick, bool) {
	m, ok := payload.(map[string]any)
	if !ok {
		return model.Tick{}, false
	}

	if t, _ := m["type"].(string); t != "tick" {
		return model.Tick{}, false
	}

	symbol, _ := m["symbol"].(string)
	if symbol == "" {
		return model.Tick{}, false
	}

	// Feed IDs are optional; ticks without one get uuid.Nil.
	id, _ := uuid.Parse(asString(m["id"]))

	return model.Tick{
		ID:         id,
		Symbol:     symbol,
		Price:      api.DollarsToPrice(asString(m["price_dollars"])),
		Size:       asInt64(m["size"]),
		ExchangeTS: asInt64(m["ts"]),
		ReceivedAt: receivedAt,
	}, true
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asInt64(v any) int64 {
	// JSON numbers decode as float64
	f, _ := v.(float64)
	return int64(f)
}
