package overviewer

import (
	"net/url"
	"strings"
)

// NormalizeURL turns user input into an absolute URL.
// Input without an http or https scheme gets "https://" prepended.
// Returns EINVALID if the result has no scheme or host.
func NormalizeURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", Errorf(EINVALID, "A valid 'url' string is required.")
	}

	lower := strings.ToLower(raw)
	if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "", Errorf(EINVALID, "Provided URL '%s' is not valid.", raw)
	}
	return raw, nil
}
