package entity

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Record one customer or product entry: field name -> value, insertion order kept.
// Values are string, int64, float64, bool or nil (empty cell).
type Record struct {
	keys   []string
	values map[string]any
}

// NewRecord empty record
func NewRecord() Record {
	return Record{values: make(map[string]any)}
}

// RecordFrom builds a record from alternating name/value pairs.
func RecordFrom(pairs ...any) Record {
	r := NewRecord()
	for i := 0; i+1 < len(pairs); i += 2 {
		name, ok := pairs[i].(string)
		if !ok {
			continue
		}
		r.Set(name, pairs[i+1])
	}
	return r
}

// Set assigns a field; new names are appended to the field order.
func (r *Record) Set(name string, value any) {
	if r.values == nil {
		r.values = make(map[string]any)
	}
	if _, exists := r.values[name]; !exists {
		r.keys = append(r.keys, name)
	}
	r.values[name] = value
}

// Get returns the raw value and whether the field exists.
func (r Record) Get(name string) (any, bool) {
	v, ok := r.values[name]
	return v, ok
}

// Has reports whether the field is present (even when its value is empty).
func (r Record) Has(name string) bool {
	_, ok := r.values[name]
	return ok
}

// String stringified field value, "" for absent or empty.
func (r Record) String(name string) string {
	return FormatValue(r.values[name])
}

// Keys field names in insertion order.
func (r Record) Keys() []string {
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

// Len number of fields
func (r Record) Len() int {
	return len(r.keys)
}

// Clone deep enough copy: values are scalars.
func (r Record) Clone() Record {
	c := Record{
		keys:   make([]string, len(r.keys)),
		values: make(map[string]any, len(r.values)),
	}
	copy(c.keys, r.keys)
	for k, v := range r.values {
		c.values[k] = v
	}
	return c
}

// Equal field-for-field comparison, order included.
func (r Record) Equal(other Record) bool {
	if len(r.keys) != len(other.keys) {
		return false
	}
	for i, k := range r.keys {
		if other.keys[i] != k {
			return false
		}
		if r.values[k] != other.values[k] {
			return false
		}
	}
	return true
}

// MarshalJSON writes the fields as an object in insertion order.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := marshalNoEscape(k)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := marshalValue(r.values[k])
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", k, err)
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a flat object keeping key order. Nested values are rejected.
func (r *Record) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("record must be a JSON object")
	}

	out := NewRecord()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("unexpected key token %v", tok)
		}

		tok, err = dec.Token()
		if err != nil {
			return err
		}
		switch v := tok.(type) {
		case json.Delim:
			return fmt.Errorf("field %q: nested values are not supported", key)
		case json.Number:
			out.Set(key, numberValue(v))
		default:
			out.Set(key, v)
		}
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	if _, err := dec.Token(); err != io.EOF {
		return fmt.Errorf("trailing data after record")
	}

	*r = out
	return nil
}

// FormatValue stringify a cell the way it is rendered and exported.
func FormatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case int64:
		return strconv.FormatInt(t, 10)
	case int:
		return strconv.Itoa(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprint(t)
	}
}

// ParseValue types raw spreadsheet text: integers and decimals become numbers,
// blank cells become nil, everything else stays text.
func ParseValue(raw string) any {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}
	if strings.HasPrefix(trimmed, "+") {
		return raw
	}
	if i, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
		// leading zeros (codes, local phone numbers) keep their text form
		if hasLeadingZero(trimmed) {
			return raw
		}
		return i
	}
	if f, err := strconv.ParseFloat(trimmed, 64); err == nil && !hasLeadingZero(trimmed) && !strings.ContainsAny(trimmed, "xXpPnN") {
		return f
	}
	return raw
}

func hasLeadingZero(s string) bool {
	s = strings.TrimPrefix(s, "-")
	return len(s) > 1 && s[0] == '0' && s[1] != '.'
}

// numberValue literals with a fraction or exponent stay float64.
func numberValue(n json.Number) any {
	if !strings.ContainsAny(n.String(), ".eE") {
		if i, err := n.Int64(); err == nil {
			return i
		}
	}
	if f, err := n.Float64(); err == nil {
		return f
	}
	return n.String()
}

// marshalValue writes whole floats as "100.0" so they reload as float64.
func marshalValue(v any) ([]byte, error) {
	b, err := marshalNoEscape(v)
	if err != nil {
		return nil, err
	}
	if _, ok := v.(float64); ok && !bytes.ContainsAny(b, ".eE") {
		b = append(b, '.', '0')
	}
	return b, nil
}

func marshalNoEscape(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
