// Package bootstrap holds the raw FPL bootstrap-static shapes as they arrive
// from upstream, before the roster index derives player records from them.
package bootstrap

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"

	"github.com/preston-bernstein/fpl-squad-service/internal/domain/players"
)

// Bootstrap is the subset of bootstrap-static the roster needs.
// Collections that are missing upstream decode as empty.
type Bootstrap struct {
	Teams        []Team        `json:"teams"`
	ElementTypes []ElementType `json:"element_types"`
	Elements     []Element     `json:"elements"`
	Skipped      Skipped       `json:"-"`
}

// Skipped counts entries dropped because they did not decode.
type Skipped struct {
	Teams        int `json:"teams"`
	ElementTypes int `json:"element_types"`
	Elements     int `json:"elements"`
}

// Total sums the dropped entries across collections.
func (s Skipped) Total() int {
	return s.Teams + s.ElementTypes + s.Elements
}

// UnmarshalJSON decodes each collection entry on its own so one malformed
// entry costs only itself.
func (b *Bootstrap) UnmarshalJSON(data []byte) error {
	var raw struct {
		Teams        []json.RawMessage `json:"teams"`
		ElementTypes []json.RawMessage `json:"element_types"`
		Elements     []json.RawMessage `json:"elements"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*b = Bootstrap{}
	b.Teams, b.Skipped.Teams = decodeEach[Team](raw.Teams)
	b.ElementTypes, b.Skipped.ElementTypes = decodeEach[ElementType](raw.ElementTypes)
	b.Elements, b.Skipped.Elements = decodeEach[Element](raw.Elements)
	return nil
}

// decodeEach returns nil for an empty collection.
func decodeEach[T any](raw []json.RawMessage) ([]T, int) {
	var (
		out     []T
		skipped int
	)
	for _, entry := range raw {
		var v T
		if err := json.Unmarshal(entry, &v); err != nil {
			skipped++
			continue
		}
		out = append(out, v)
	}
	return out, skipped
}

// Team is a raw club entry.
type Team struct {
	ID        *int   `json:"id"`
	Name      string `json:"name"`
	ShortName string `json:"short_name"`
	Code      Code   `json:"code"`
}

// ElementType is a raw position entry.
type ElementType struct {
	ID                *int   `json:"id"`
	SingularName      string `json:"singular_name"`
	SingularNameShort string `json:"singular_name_short"`
}

// Element is a raw player entry.
type Element struct {
	ID          *int   `json:"id"`
	FirstName   string `json:"first_name"`
	SecondName  string `json:"second_name"`
	WebName     string `json:"web_name"`
	ElementType int    `json:"element_type"`
	NowCost     Price  `json:"now_cost"`
	Team        *int   `json:"team"`
	TotalPoints int    `json:"total_points"`
	Status      string `json:"status"`
	players.Stats
}

// Decode reads a bootstrap document from r.
func Decode(r io.Reader) (Bootstrap, error) {
	var b Bootstrap
	if err := json.NewDecoder(r).Decode(&b); err != nil {
		return Bootstrap{}, fmt.Errorf("decode bootstrap: %w", err)
	}
	return b, nil
}

// IntPtr is a convenience for building fixtures with optional ids.
func IntPtr(v int) *int {
	return &v
}

// Price is an FPL now_cost value in tenths of a million. Non-numeric
// values decode without error and leave the price invalid.
type Price struct {
	Tenths decimal.Decimal
	Valid  bool
}

// NewPrice builds a valid price from integer tenths.
func NewPrice(tenths int64) Price {
	return Price{Tenths: decimal.NewFromInt(tenths), Valid: true}
}

// Millions converts tenths to millions.
func (p Price) Millions() decimal.NullDecimal {
	if !p.Valid {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(p.Tenths.Shift(-1))
}

func (p *Price) UnmarshalJSON(data []byte) error {
	*p = Price{}
	raw := bytes.TrimSpace(data)
	if len(raw) == 0 || !isNumberStart(raw[0]) {
		return nil
	}
	d, err := decimal.NewFromString(string(raw))
	if err != nil {
		return nil
	}
	*p = Price{Tenths: d, Valid: true}
	return nil
}

func (p Price) MarshalJSON() ([]byte, error) {
	if !p.Valid {
		return []byte("null"), nil
	}
	return []byte(p.Tenths.String()), nil
}

func isNumberStart(c byte) bool {
	return c == '-' || (c >= '0' && c <= '9')
}

// Code is a team identifier that upstream sends as a number but that is
// compared as text.
type Code string

func (c *Code) UnmarshalJSON(data []byte) error {
	raw := bytes.TrimSpace(data)
	switch {
	case len(raw) == 0 || bytes.Equal(raw, []byte("null")):
		*c = ""
	case raw[0] == '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return err
		}
		*c = Code(s)
	default:
		*c = Code(raw)
	}
	return nil
}
