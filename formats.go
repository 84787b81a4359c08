package modelkit

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Scalar format checkers. Each appends at most one violation describing the
// offending value and returns; none of them raises. The acceptance rules are
// fixed by the wire contract of the generated SDKs and deliberately differ
// from RFC parsers (no zone IDs, no ipv4-embedded ipv6, colon-separated MAC
// octets only), so they are implemented directly rather than on top of
// net/netip.

func checkMAC(path string, v any, vs *[]Violation) {
	s, ok := v.(string)
	if !ok || strings.Contains(s, " ") || len(s) != 17 {
		appendFormatViolation(vs, path, "mac", v)
		return
	}
	parts := strings.Split(s, ":")
	if len(parts) != 6 {
		appendFormatViolation(vs, path, "mac", v)
		return
	}
	for _, p := range parts {
		n, err := strconv.ParseUint(p, 16, 64)
		if err != nil || n > 255 {
			appendFormatViolation(vs, path, "mac", v)
			return
		}
	}
}

func checkIPv4(path string, v any, vs *[]Violation) {
	s, ok := v.(string)
	if !ok || strings.Contains(s, " ") {
		appendFormatViolation(vs, path, "ipv4", v)
		return
	}
	parts := strings.Split(s, ".")
	if len(parts) != 4 {
		appendFormatViolation(vs, path, "ipv4", v)
		return
	}
	for _, p := range parts {
		if len(p) == 0 {
			appendFormatViolation(vs, path, "ipv4", v)
			return
		}
		// Octets may carry leading zeros; only the decimal value is bounded.
		n := 0
		for _, c := range p {
			if c < '0' || c > '9' {
				appendFormatViolation(vs, path, "ipv4", v)
				return
			}
			n = n*10 + int(c-'0')
			if n > 255 {
				appendFormatViolation(vs, path, "ipv4", v)
				return
			}
		}
	}
}

// checkIPv6 accepts a textual ipv6 address. A single "::" is expanded by
// substituting an implied zero group (leading -> "0:", trailing -> ":0",
// interior -> ":0:"), after which every group must be 1-4 hex digits in
// [0, 65535]. The literal "::" alone is valid.
func checkIPv6(path string, v any, vs *[]Violation) {
	raw, ok := v.(string)
	if !ok {
		appendFormatViolation(vs, path, "ipv6", v)
		return
	}
	s := strings.TrimSpace(raw)
	if strings.Contains(s, " ") ||
		strings.Count(s, ":") > 7 ||
		strings.Count(s, "::") > 1 ||
		strings.Contains(s, ":::") {
		appendFormatViolation(vs, path, "ipv6", v)
		return
	}
	if s == "" ||
		(s[0] == ':' && !strings.HasPrefix(s, "::")) ||
		(s[len(s)-1] == ':' && !strings.HasSuffix(s, "::")) {
		appendFormatViolation(vs, path, "ipv6", v)
		return
	}
	if !strings.Contains(s, "::") && strings.Count(s, ":") != 7 {
		appendFormatViolation(vs, path, "ipv6", v)
		return
	}
	if s == "::" {
		return
	}
	switch {
	case strings.HasPrefix(s, "::"):
		s = strings.Replace(s, "::", "0:", 1)
	case strings.HasSuffix(s, "::"):
		s = strings.Replace(s, "::", ":0", 1)
	default:
		s = strings.Replace(s, "::", ":0:", 1)
	}
	for _, g := range strings.Split(s, ":") {
		if len(g) < 1 || len(g) > 4 {
			appendFormatViolation(vs, path, "ipv6", v)
			return
		}
		if _, err := strconv.ParseUint(g, 16, 64); err != nil {
			appendFormatViolation(vs, path, "ipv6", v)
			return
		}
	}
}

// checkHex accepts base-16 integer strings of any length, with an optional
// 0x prefix. The format carries no width bound, so digits are validated
// character-wise rather than parsed into a fixed-size integer.
func checkHex(path string, v any, vs *[]Violation) {
	s, ok := v.(string)
	if !ok {
		appendFormatViolation(vs, path, "hex", v)
		return
	}
	t := strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if t == "" {
		appendFormatViolation(vs, path, "hex", v)
		return
	}
	for _, c := range t {
		if !isHexDigit(c) {
			appendFormatViolation(vs, path, "hex", v)
			return
		}
	}
}

func isHexDigit(c rune) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

// checkBinary accepts strings whose every character is '0' or '1'. The empty
// string is vacuously valid.
func checkBinary(path string, v any, vs *[]Violation) {
	s, ok := v.(string)
	if !ok {
		appendFormatViolation(vs, path, "binary", v)
		return
	}
	for _, c := range s {
		if c != '0' && c != '1' {
			appendFormatViolation(vs, path, "binary", v)
			return
		}
	}
}

func checkInteger(path string, v any, vs *[]Violation) {
	if _, ok := numericAsInt64(v); !ok {
		appendTypeViolation(vs, path, "int", v)
	}
}

func checkFloat(path string, v any, vs *[]Violation) {
	if _, ok := numericAsFloat64(v); !ok {
		appendTypeViolation(vs, path, "float", v)
	}
}

func checkString(path string, v any, vs *[]Violation) {
	if _, ok := v.(string); !ok {
		appendTypeViolation(vs, path, "string", v)
	}
}

func checkBool(path string, v any, vs *[]Violation) {
	if _, ok := v.(bool); !ok {
		appendTypeViolation(vs, path, "bool", v)
	}
}

// checkBounds applies the declared min/max after the type check: to the
// length for strings and to the value for numbers. Non-scalar values are
// ignored here; the kind checkers already reported them.
func checkBounds(path string, v any, min, max *float64, vs *[]Violation) {
	if min == nil && max == nil {
		return
	}
	var n float64
	if s, ok := v.(string); ok {
		n = float64(len(s))
	} else if f, ok := numericAsFloat64(v); ok {
		n = f
	} else {
		return
	}
	if (min != nil && n < *min) || (max != nil && n > *max) {
		*vs = append(*vs, Violation{
			Path: path,
			Message: fmt.Sprintf("value of `%s` must be in the range [%s, %s], instead of `%v`",
				path, boundString(min), boundString(max), v),
		})
	}
}

func boundString(b *float64) string {
	if b == nil {
		return ""
	}
	return strconv.FormatFloat(*b, 'f', -1, 64)
}

func appendFormatViolation(vs *[]Violation, path, format string, v any) {
	*vs = append(*vs, Violation{
		Path:    path,
		Message: fmt.Sprintf("value of `%s` must be a valid %s string, instead of `%v`", path, format, v),
	})
}

func appendTypeViolation(vs *[]Violation, path, kind string, v any) {
	*vs = append(*vs, Violation{
		Path:    path,
		Message: fmt.Sprintf("value of `%s` must be a valid %s type, instead of `%v`", path, kind, v),
	})
}

// numericAsInt64 widens any integral Go numeric to int64. Floats qualify only
// when they carry an integral value, which is how JSON-decoded integers
// arrive.
func numericAsInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint:
		return int64(n), true
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		if n > math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	case float32:
		if float32(int64(n)) == n {
			return int64(n), true
		}
		return 0, false
	case float64:
		if n == math.Trunc(n) && n >= math.MinInt64 && n <= math.MaxInt64 {
			return int64(n), true
		}
		return 0, false
	default:
		return 0, false
	}
}

// numericAsFloat64 widens any Go numeric to float64. Bools and strings do
// not qualify.
func numericAsFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}
