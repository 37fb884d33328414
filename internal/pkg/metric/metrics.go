// Package metric exposes the service's prometheus metrics on a private
// registry.
package metric

import (
	"net/http"
	"time"
)

type (
	Factory interface {
		HTTP() HTTP
		Orders() Orders
		Handler() http.Handler
	}

	HTTP interface {
		Request(method, route string, status int, duration time.Duration)
	}

	// Orders counts use-case outcomes. result is "success" or an error kind
	// such as "validation", "duplicate", "not_found" or "storage".
	Orders interface {
		Operation(operation, result string)
		Overdue(count int)
	}
)
