package threecommas

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Param is one query parameter. Value must be a scalar, a slice of scalars, or nil.
type Param struct {
	Key   string
	Value any
}

// Params is an ordered parameter set. It is both the query string and the signed payload,
// so order is significant: keys serialize in insertion order.
type Params []Param

// NewParams builds Params from alternating key/value arguments.
// A trailing key without a value is kept with a nil value.
func NewParams(kv ...any) Params {
	p := make(Params, 0, (len(kv)+1)/2)
	for i := 0; i < len(kv); i += 2 {
		key := fmt.Sprint(kv[i])
		var v any
		if i+1 < len(kv) {
			v = kv[i+1]
		}
		p = p.Set(key, v)
	}
	return p
}

// ParamsFromMap converts a map into Params with keys in lexical order.
func ParamsFromMap(m map[string]any) Params {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	p := make(Params, 0, len(keys))
	for _, k := range keys {
		p = append(p, Param{Key: k, Value: m[k]})
	}
	return p
}

// ParseParams parses "key=value" arguments. Repeating a key produces a list value.
func ParseParams(args []string) (Params, error) {
	var p Params
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid parameter %q: want key=value", arg)
		}
		if prev, exists := p.Get(key); exists {
			switch pv := prev.(type) {
			case []string:
				p = p.Set(key, append(pv, value))
			default:
				p = p.Set(key, []string{fmt.Sprint(pv), value})
			}
			continue
		}
		p = p.Set(key, value)
	}
	return p, nil
}

// Set replaces the value of an existing key in place, or appends a new pair.
func (p Params) Set(key string, value any) Params {
	for i := range p {
		if p[i].Key == key {
			p[i].Value = value
			return p
		}
	}
	return append(p, Param{Key: key, Value: value})
}

// Get returns the raw value stored for key.
func (p Params) Get(key string) (any, bool) {
	for _, kv := range p {
		if kv.Key == key {
			return kv.Value, true
		}
	}
	return nil, false
}

// Len returns the number of pairs.
func (p Params) Len() int { return len(p) }

// Encode serializes the pairs the way Node's querystring.stringify does:
// key=value joined by '&', nil as "key=", lists as repeated keys, empty lists omitted.
func (p Params) Encode() string {
	if len(p) == 0 {
		return ""
	}
	var b strings.Builder
	for _, kv := range p {
		ks := escape(kv.Key) + "="
		values, isList := formatValue(kv.Value)
		if isList && len(values) == 0 {
			continue
		}
		for _, v := range values {
			if b.Len() > 0 {
				b.WriteByte('&')
			}
			b.WriteString(ks)
			b.WriteString(escape(v))
		}
	}
	return b.String()
}

// pathValue renders a value for interpolation into a URL path (unescaped).
func (p Params) pathValue(key string) (string, bool) {
	raw, ok := p.Get(key)
	if !ok || raw == nil {
		return "", false
	}
	values, _ := formatValue(raw)
	return strings.Join(values, ","), true
}

func formatValue(v any) (values []string, isList bool) {
	switch tv := v.(type) {
	case []string:
		return tv, true
	case []int:
		out := make([]string, len(tv))
		for i, n := range tv {
			out[i] = strconv.Itoa(n)
		}
		return out, true
	case []int64:
		out := make([]string, len(tv))
		for i, n := range tv {
			out[i] = strconv.FormatInt(n, 10)
		}
		return out, true
	case []any:
		out := make([]string, len(tv))
		for i, e := range tv {
			out[i] = formatScalar(e)
		}
		return out, true
	default:
		return []string{formatScalar(v)}, false
	}
}

func formatScalar(v any) string {
	switch tv := v.(type) {
	case nil:
		return ""
	case string:
		return tv
	case bool:
		return strconv.FormatBool(tv)
	case int:
		return strconv.Itoa(tv)
	case int8:
		return strconv.FormatInt(int64(tv), 10)
	case int16:
		return strconv.FormatInt(int64(tv), 10)
	case int32:
		return strconv.FormatInt(int64(tv), 10)
	case int64:
		return strconv.FormatInt(tv, 10)
	case uint:
		return strconv.FormatUint(uint64(tv), 10)
	case uint8:
		return strconv.FormatUint(uint64(tv), 10)
	case uint16:
		return strconv.FormatUint(uint64(tv), 10)
	case uint32:
		return strconv.FormatUint(uint64(tv), 10)
	case uint64:
		return strconv.FormatUint(tv, 10)
	case float32:
		return formatFloat(float64(tv), 32)
	case float64:
		return formatFloat(tv, 64)
	case decimal.Decimal:
		return tv.String()
	case fmt.Stringer:
		return tv.String()
	default:
		// objects serialize to an empty value, as querystring does
		return ""
	}
}

func formatFloat(f float64, bits int) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return ""
	}
	return strconv.FormatFloat(f, 'f', -1, bits)
}

const upperhex = "0123456789ABCDEF"

// escape percent-encodes everything outside A-Z a-z 0-9 - _ . ! ~ * ' ( ).
// url.QueryEscape differs (space as '+', escapes !*'()), which would break signatures.
func escape(s string) string {
	n := 0
	for i := 0; i < len(s); i++ {
		if !unreserved(s[i]) {
			n++
		}
	}
	if n == 0 {
		return s
	}
	buf := make([]byte, 0, len(s)+2*n)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if unreserved(c) {
			buf = append(buf, c)
			continue
		}
		buf = append(buf, '%', upperhex[c>>4], upperhex[c&15])
	}
	return string(buf)
}

func unreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	switch c {
	case '-', '_', '.', '!', '~', '*', '\'', '(', ')':
		return true
	}
	return false
}
