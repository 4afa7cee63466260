package app

import (
	"net/url"
	"strings"
)

// normalizeDBURL appends disable_prepared_binary_result=yes when the
// deployment asks for it; some pgbouncer setups need it.
func normalizeDBURL(raw string, disablePreparedBinaryResult bool) string {
	if !disablePreparedBinaryResult {
		return raw
	}

	parsed, err := url.Parse(raw)
	if err != nil || parsed == nil {
		return raw
	}

	q := parsed.Query()
	if q.Get("disable_prepared_binary_result") != "" {
		return raw
	}
	q.Set("disable_prepared_binary_result", "yes")
	parsed.RawQuery = q.Encode()
	return parsed.String()
}

// dbNameFromURL extracts the database name from a postgres URL or a
// key=value DSN, for the db.name trace attribute.
func dbNameFromURL(raw string) string {
	trimmed := strings.TrimSpace(raw)

	if parsed, err := url.Parse(trimmed); err == nil && parsed != nil && parsed.Scheme != "" {
		if name := strings.TrimSpace(strings.TrimPrefix(parsed.Path, "/")); name != "" {
			return name
		}
	}

	for _, token := range strings.Fields(trimmed) {
		value, found := strings.CutPrefix(token, "dbname=")
		if !found {
			continue
		}
		if name := strings.Trim(strings.TrimSpace(value), `"'`); name != "" {
			return name
		}
	}

	return ""
}
