package helpers

import (
	"net/http"
	"strconv"
)

// Limit query parameter defaults and bounds for list endpoints.
const (
	DefaultLimit = 50
	MaxLimit     = 500
)

// ParseLimit reads limit from the request query string and clamps it to [1, MaxLimit].
// Invalid or missing values fall back to DefaultLimit.
func ParseLimit(r *http.Request) int {
	limit := DefaultLimit
	if s := r.URL.Query().Get("limit"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v >= 1 {
			limit = min(v, MaxLimit)
		}
	}
	return limit
}

// ParseBool reports whether the named query parameter is set to a true value
// ("1", "t", "true", ...). Invalid values read as false.
func ParseBool(r *http.Request, name string) bool {
	v, err := strconv.ParseBool(r.URL.Query().Get(name))
	return err == nil && v
}
