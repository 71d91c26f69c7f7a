package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// ErrSchemaMismatch is returned when a history payload is valid JSON but
// a field has the wrong shape.
var ErrSchemaMismatch = errors.New("schema mismatch")

type HistoryPoint struct {
	Date  string          `json:"date"`
	Value decimal.Decimal `json:"value"`
}

// value goes out as a json number, decimal would quote it
func (p HistoryPoint) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Date  string      `json:"date"`
		Value json.Number `json:"value"`
	}{
		Date:  p.Date,
		Value: json.Number(p.Value.String()),
	})
}

// Metrics is the account summary sent next to the equity series. Only
// Equity is understood, everything else rides along in Extra.
type Metrics struct {
	Equity *decimal.Decimal
	Extra  map[string]json.RawMessage
}

func NewMetrics() *Metrics {
	return &Metrics{
		Extra: map[string]json.RawMessage{},
	}
}

func (m *Metrics) SetEquity(d decimal.Decimal) {
	m.Equity = &d
}

// Clone copies equity and the extra bag so the copy can be changed freely.
func (m *Metrics) Clone() *Metrics {
	if m == nil {
		return nil
	}
	out := &Metrics{
		Extra: make(map[string]json.RawMessage, len(m.Extra)),
	}
	if m.Equity != nil {
		equity := *m.Equity
		out.Equity = &equity
	}
	for k, v := range m.Extra {
		out.Extra[k] = append(json.RawMessage{}, v...)
	}
	return out
}

func (m *Metrics) SetExtra(key string, v any) error {
	if key == "equity" {
		return fmt.Errorf("equity is not an extra field")
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode metric %s: %w", key, err)
	}
	if m.Extra == nil {
		m.Extra = map[string]json.RawMessage{}
	}
	m.Extra[key] = b
	return nil
}

func (m Metrics) MarshalJSON() ([]byte, error) {
	keys := make([]string, 0, len(m.Extra))
	for k := range m.Extra {
		if k == "equity" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	buf := bytes.Buffer{}
	buf.WriteByte('{')
	buf.WriteString(`"equity":`)
	if m.Equity != nil {
		buf.WriteString(m.Equity.String())
	} else {
		buf.WriteString("null")
	}
	for _, k := range keys {
		name, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.WriteByte(',')
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(m.Extra[k])
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON keeps unknown keys verbatim. An equity that is null or
// not numeric leaves Equity nil rather than failing the payload.
func (m *Metrics) UnmarshalJSON(b []byte) error {
	raw := map[string]json.RawMessage{}
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("%w: metrics must be an object: %v", ErrSchemaMismatch, err)
	}

	out := Metrics{
		Extra: map[string]json.RawMessage{},
	}
	for k, v := range raw {
		if k != "equity" {
			out.Extra[k] = v
			continue
		}
		if isNull(v) {
			continue
		}
		d := decimal.Decimal{}
		if err := d.UnmarshalJSON(v); err == nil {
			out.Equity = &d
		}
	}

	*m = out
	return nil
}

// PortfolioHistory is the body of GET /api/v1/portfolio/alpaca/history.
type PortfolioHistory struct {
	Equity  []HistoryPoint `json:"equity"`
	Metrics *Metrics       `json:"metrics"`
}

// UnmarshalJSON treats falsy fields (missing, null, false, any zero, "")
// as their defaults: an empty series and an empty, present Metrics. Keys
// match exactly, "Equity" is not "equity".
func (h *PortfolioHistory) UnmarshalJSON(b []byte) error {
	raw := map[string]json.RawMessage{}
	if err := json.Unmarshal(b, &raw); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return fmt.Errorf("%w: history body must be an object", ErrSchemaMismatch)
		}
		return err
	}

	out := PortfolioHistory{
		Equity:  []HistoryPoint{},
		Metrics: NewMetrics(),
	}

	if equity := raw["equity"]; !isFalsy(equity) {
		points := []HistoryPoint{}
		if err := json.Unmarshal(equity, &points); err != nil {
			return fmt.Errorf("%w: equity must be a list of {date, value}: %v", ErrSchemaMismatch, err)
		}
		out.Equity = points
	}

	if metrics := raw["metrics"]; !isFalsy(metrics) {
		if err := out.Metrics.UnmarshalJSON(metrics); err != nil {
			return err
		}
	}

	*h = out
	return nil
}

func isNull(v json.RawMessage) bool {
	s := bytes.TrimSpace(v)
	return len(s) == 0 || string(s) == "null"
}

func isFalsy(v json.RawMessage) bool {
	if isNull(v) {
		return true
	}
	s := string(bytes.TrimSpace(v))
	switch {
	case s == "false", s == `""`:
		return true
	case s[0] == '-' || (s[0] >= '0' && s[0] <= '9'):
		// any spelling of zero: 0.00, -0.0, 0e0
		d, err := decimal.NewFromString(s)
		return err == nil && d.IsZero()
	}
	return false
}
