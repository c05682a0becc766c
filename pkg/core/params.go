package core

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/apd/v3"
)

// Param is a single query parameter. Values are sent exactly as given.
type Param struct {
	Key   string
	Value string
}

// Params is an ordered parameter list. Order is preserved on the wire because
// the signature covers the exact byte sequence of the query string.
type Params []Param

// Add appends a string parameter.
func (p Params) Add(key, value string) Params {
	return append(p, Param{Key: key, Value: value})
}

// AddOptional appends the parameter only when value is non-empty.
func (p Params) AddOptional(key, value string) Params {
	if value == "" {
		return p
	}
	return p.Add(key, value)
}

// AddInt appends an integer parameter.
func (p Params) AddInt(key string, value int64) Params {
	return p.Add(key, strconv.FormatInt(value, 10))
}

// AddUint appends an unsigned integer parameter.
func (p Params) AddUint(key string, value uint64) Params {
	return p.Add(key, strconv.FormatUint(value, 10))
}

// AddFloat appends a float parameter using the shortest representation that
// round-trips, so the same value always renders identically.
func (p Params) AddFloat(key string, value float64) Params {
	return p.Add(key, strconv.FormatFloat(value, 'f', -1, 64))
}

// AddDecimal appends a decimal in plain notation. A nil decimal is skipped.
func (p Params) AddDecimal(key string, value *apd.Decimal) Params {
	if value == nil {
		return p
	}
	return p.Add(key, value.Text('f'))
}

// AddBool appends "true" or "false".
func (p Params) AddBool(key string, value bool) Params {
	return p.Add(key, strconv.FormatBool(value))
}

// Get returns the first value stored under key.
func (p Params) Get(key string) (string, bool) {
	for _, kv := range p {
		if kv.Key == key {
			return kv.Value, true
		}
	}
	return "", false
}

// Encode joins the parameters as k=v pairs separated by '&'. Entries with an
// empty key are dropped. No percent-encoding is applied.
func (p Params) Encode() string {
	var b strings.Builder
	for _, kv := range p {
		if kv.Key == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('&')
		}
		b.WriteString(kv.Key)
		b.WriteByte('=')
		b.WriteString(kv.Value)
	}
	return b.String()
}
