package webhook

import "encoding/json"

// Event is a verified, parsed payment notification.
// It is only ever materialized after signature verification succeeds.
type Event struct {
	ID        string          `json:"id"`
	Type      string          `json:"type"`
	CreatedAt int64           `json:"created_at"`
	Data      json.RawMessage `json:"data"`

	// Raw holds the exact payload bytes that were signed and verified.
	Raw []byte `json:"-"`
}
