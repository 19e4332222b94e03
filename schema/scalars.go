package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// UUID is the UUID scalar.
type UUID = uuid.UUID

// DateTime is the DateTime scalar: an RFC 3339 timestamp. JSON null and
// the empty string decode to the zero time.
type DateTime struct {
	time.Time
}

// NewDateTime returns a DateTime for t, for optional DateTime variables.
func NewDateTime(t time.Time) *DateTime {
	return &DateTime{Time: t}
}

// MarshalJSON implements json.Marshaler.
func (d DateTime) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.UTC().Format(time.RFC3339Nano))
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *DateTime) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		d.Time = time.Time{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("DateTime: %w", err)
	}
	if s == "" {
		d.Time = time.Time{}
		return nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return fmt.Errorf("DateTime: %w", err)
	}
	d.Time = t
	return nil
}

const dateLayout = "2006-01-02"

// Date is the Date scalar, a calendar day without time zone.
type Date struct {
	time.Time
}

// NewDate returns the Date of t in t's location.
func NewDate(t time.Time) Date {
	y, m, day := t.Date()
	return Date{Time: time.Date(y, m, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a "YYYY-MM-DD" date.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("Date: %w", err)
	}
	return Date{Time: t}, nil
}

// String returns the date as "YYYY-MM-DD".
func (d Date) String() string {
	return d.Format(dateLayout)
}

// MarshalJSON implements json.Marshaler.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Date) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		d.Time = time.Time{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("Date: %w", err)
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// JSONString is the JSONString scalar: serialized JSON carried as a string.
type JSONString string

// NewJSONString serializes v.
func NewJSONString(v any) (JSONString, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("JSONString: %w", err)
	}
	return JSONString(b), nil
}

// Decode unmarshals the carried JSON into v.
func (s JSONString) Decode(v any) error {
	if s == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(s), v); err != nil {
		return fmt.Errorf("JSONString: %w", err)
	}
	return nil
}

// GenericScalar is the GenericScalar scalar, any JSON value kept as is.
type GenericScalar json.RawMessage

// MarshalJSON implements json.Marshaler.
func (g GenericScalar) MarshalJSON() ([]byte, error) {
	if len(g) == 0 {
		return []byte("null"), nil
	}
	return g, nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (g *GenericScalar) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*g = nil
		return nil
	}
	*g = append((*g)[0:0], b...)
	return nil
}

// Decode unmarshals the value into v.
func (g GenericScalar) Decode(v any) error {
	if len(g) == 0 {
		return nil
	}
	return json.Unmarshal(g, v)
}

// BigInt is the BigInt scalar. The server may send it as a number or as a
// numeric string.
type BigInt int64

// GetGraphQLType names the scalar in variable declarations, which would
// otherwise read Int.
func (BigInt) GetGraphQLType() string { return "BigInt" }

// MarshalJSON implements json.Marshaler.
func (b BigInt) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatInt(int64(b), 10)), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (b *BigInt) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*b = 0
		return nil
	}
	s := string(data)
	if unquoted, err := strconv.Unquote(s); err == nil {
		s = unquoted
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("BigInt: %w", err)
	}
	*b = BigInt(n)
	return nil
}
