package adapter

import "strings"

const authBase = "auth/"

// redundantPrefixes are stripped repeatedly from request paths so that callers
// passing "/api/v1/auth/check_handle" or "auth/auth/check_handle" all end up
// at "auth/check_handle" relative to the configured base URL.
var redundantPrefixes = []string{"api/v1/auth/", "auth/"}

// normalizePath resolves endpoint under auth/, keeping its query string.
// Absolute URLs are returned unchanged.
func normalizePath(endpoint string) string {
	if strings.Contains(endpoint, "://") {
		return endpoint
	}

	path, query, hasQuery := strings.Cut(endpoint, "?")
	path = strings.TrimLeft(path, "/")

	for stripped := true; stripped; {
		stripped = false
		for _, prefix := range redundantPrefixes {
			if strings.HasPrefix(path, prefix) {
				path = strings.TrimLeft(strings.TrimPrefix(path, prefix), "/")
				stripped = true
			}
		}
	}

	path = authBase + path
	if hasQuery {
		path += "?" + query
	}
	return path
}
