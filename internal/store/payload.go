package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/theirongolddev/julmat/internal/model"
)

// PayloadVersion is written to every export.
const PayloadVersion = 1

// isoMillis matches JavaScript's Date.prototype.toISOString.
const isoMillis = "2006-01-02T15:04:05.000Z07:00"

// ErrFormat is returned when an import payload lacks an object-valued status field.
var ErrFormat = errors.New("store: invalid payload format")

// Payload is the export/import document.
type Payload struct {
	Version   int
	CreatedAt time.Time
	Status    model.Status
}

type wirePayload struct {
	Version   int             `json:"version"`
	CreatedAt string          `json:"createdAt"`
	Status    json.RawMessage `json:"status"`
}

// ExportPayload wraps status for export. The mapping is copied.
func ExportPayload(status model.Status, now time.Time) Payload {
	return Payload{
		Version:   PayloadVersion,
		CreatedAt: now.UTC(),
		Status:    status.Clone(),
	}
}

// MarshalJSON writes {version, createdAt, status}.
func (p Payload) MarshalJSON() ([]byte, error) {
	status := p.Status
	if status == nil {
		status = model.Status{}
	}
	raw, err := json.Marshal(status)
	if err != nil {
		return nil, err
	}
	return json.Marshal(wirePayload{
		Version:   p.Version,
		CreatedAt: p.CreatedAt.UTC().Format(isoMillis),
		Status:    raw,
	})
}

// Marshal returns indented JSON, suited for a downloadable file.
func (p Payload) Marshal() ([]byte, error) {
	return json.MarshalIndent(p, "", "  ")
}

// MarshalCompact returns single-line JSON, suited for the clipboard.
func (p Payload) MarshalCompact() ([]byte, error) {
	return json.Marshal(p)
}

// ParsePayload decodes an exported document. The status field must be a JSON
// object of item ID to {bought, cooked}; anything else is ErrFormat. Version
// and createdAt are informational and tolerated when missing or malformed.
func ParsePayload(data []byte) (*Payload, error) {
	// Keys are matched exactly; struct decoding would also accept "Status".
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}

	raw := bytes.TrimSpace(fields["status"])
	if len(raw) == 0 || raw[0] != '{' {
		return nil, fmt.Errorf("%w: status must be an object", ErrFormat)
	}

	status := model.Status{}
	if err := json.Unmarshal(raw, &status); err != nil {
		return nil, fmt.Errorf("%w: status: %v", ErrFormat, err)
	}

	p := &Payload{Status: status}
	_ = json.Unmarshal(fields["version"], &p.Version)
	var created string
	if json.Unmarshal(fields["createdAt"], &created) == nil {
		if t, err := time.Parse(time.RFC3339Nano, created); err == nil {
			p.CreatedAt = t
		}
	}
	return p, nil
}
