package domain

import (
	"net/url"
	"regexp"
	"strings"
)

var defaultCorrelationPattern = compileCorrelationPattern(DefaultCorrelationParam)

func compileCorrelationPattern(param string) *regexp.Regexp {
	return regexp.MustCompile(`(?:^|[?&;\s])` + regexp.QuoteMeta(param) + `=([^&;#\s]+)`)
}

func correlationPattern(param string) *regexp.Regexp {
	if param == DefaultCorrelationParam {
		return defaultCorrelationPattern
	}
	return compileCorrelationPattern(param)
}

// ParseCorrelation extracts the campaign identifier carried in raw under
// param. raw is usually a landing page URL, absolute or relative, but any
// free text containing "param=value" is accepted as a fallback. When param
// occurs more than once the last non-empty value wins, since redirects
// append the campaign's own id after any value the target already had.
// Text after '#' is never searched. The second result is false when no
// non-empty token is present.
func ParseCorrelation(raw, param string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" || param == "" {
		return "", false
	}

	if u, err := url.Parse(raw); err == nil && u.RawQuery != "" {
		if q, err := url.ParseQuery(u.RawQuery); err == nil {
			return lastNonEmpty(q[param])
		}
	}

	raw, _, _ = strings.Cut(raw, "#")
	matches := correlationPattern(param).FindAllStringSubmatch(raw, -1)
	values := make([]string, 0, len(matches))
	for _, m := range matches {
		v, err := url.QueryUnescape(m[1])
		if err != nil {
			v = m[1]
		}
		values = append(values, v)
	}
	return lastNonEmpty(values)
}

func lastNonEmpty(values []string) (string, bool) {
	for i := len(values) - 1; i >= 0; i-- {
		if v := strings.TrimSpace(values[i]); v != "" {
			return v, true
		}
	}
	return "", false
}

// CorrelateOrder returns the first correlation token found in the order's
// candidate fields.
func CorrelateOrder(o OrderNotification, param string) (string, bool) {
	for _, f := range o.CorrelationFields() {
		if id, ok := ParseCorrelation(f, param); ok {
			return id, true
		}
	}
	return "", false
}
