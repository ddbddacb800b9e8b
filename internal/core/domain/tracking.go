package domain

import (
	"errors"
	"net/url"
	"strings"
)

// DefaultCorrelationParam is the query parameter appended to the target URL
// on redirect and looked for in order payloads.
const DefaultCorrelationParam = "cid"

// ErrInvalidTargetURL is returned by ValidateTargetURL.
var ErrInvalidTargetURL = errors.New("valid target URL required")

// ValidateTargetURL trims raw and checks that it is an absolute http(s) URL
// with a host. The trimmed value is returned on success.
func ValidateTargetURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrInvalidTargetURL
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", ErrInvalidTargetURL
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
	default:
		return "", ErrInvalidTargetURL
	}
	if u.Host == "" {
		return "", ErrInvalidTargetURL
	}
	return raw, nil
}

// TrackingLink builds the public redirect link of a campaign. A non-empty
// src annotates the link with the channel it is shared on; it does not
// change the identifier.
func TrackingLink(baseURL, campaignID, src string) string {
	link := strings.TrimRight(baseURL, "/") + "/" + url.PathEscape(campaignID)
	if src != "" {
		link += "?src=" + url.QueryEscape(src)
	}
	return link
}

// RedirectURL appends param=campaignID to target, keeping the existing
// query string and placing the parameter before any fragment.
func RedirectURL(target, param, campaignID string) string {
	base, fragment, hasFragment := strings.Cut(target, "#")

	sep := "?"
	if strings.Contains(base, "?") {
		sep = "&"
		if strings.HasSuffix(base, "?") || strings.HasSuffix(base, "&") {
			sep = ""
		}
	}
	out := base + sep + url.QueryEscape(param) + "=" + url.QueryEscape(campaignID)
	if hasFragment {
		out += "#" + fragment
	}
	return out
}
